package driven

import (
	"context"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
)

// OCREngine recognises text in a page image. The engine is a black box:
// it returns whitespace-separated tokens with per-token confidences in
// [0,100], which the pipeline normalises to [0,1].
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (*domain.OCRResult, error)
}
