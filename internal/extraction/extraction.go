// Package extraction turns raw document bytes into text plus an
// OCR-usage record. PDFs are tried for embedded text first and fall
// back to rasterize-and-OCR; raster images go straight to OCR.
//
// Extraction never fails a batch: any OCR or parsing failure degrades
// to an empty result with the reason recorded.
package extraction

import (
	"context"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/confidence"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driven"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/logger"
)

// pdfTextThreshold is the minimum embedded-text length for a PDF to be
// accepted without OCR. Scanned PDFs often carry little or no text layer.
const pdfTextThreshold = 40

// maxConcurrent bounds parallel per-document extraction; OCR
// rasterization is the only CPU/IO-heavy stage in the pipeline.
const maxConcurrent = 4

// imageExtensions are raster formats that always take the OCR path.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true,
}

// Service acquires text from uploaded documents.
type Service struct {
	pdfText driven.PDFTextExtractor
	raster  driven.PageRasterizer
	ocr     driven.OCREngine
}

// NewService creates a text acquisition service.
func NewService(pdfText driven.PDFTextExtractor, raster driven.PageRasterizer, ocr driven.OCREngine) *Service {
	return &Service{pdfText: pdfText, raster: raster, ocr: ocr}
}

// Acquire extracts text from a single document.
func (s *Service) Acquire(ctx context.Context, doc domain.RawDocument) domain.Extraction {
	ext := strings.ToLower(filepath.Ext(doc.Filename))

	switch {
	case ext == ".pdf":
		return s.acquirePDF(ctx, doc)
	case imageExtensions[ext]:
		text, conf, reason := s.ocrImage(ctx, doc.Content)
		return domain.Extraction{
			Text:          text,
			OCRUsed:       true,
			OCRConfidence: conf,
			Degraded:      text == "" && reason != "",
			Reason:        reason,
		}
	default:
		return domain.Extraction{Degraded: true, Reason: "unsupported file extension"}
	}
}

// AcquireAll extracts text from every document, in parallel. Results
// are positionally aligned with the input.
func (s *Service) AcquireAll(ctx context.Context, docs []domain.RawDocument) []domain.Extraction {
	results := make([]domain.Extraction, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, doc := range docs {
		g.Go(func() error {
			results[i] = s.Acquire(ctx, doc)
			return nil
		})
	}
	_ = g.Wait() // Acquire degrades instead of failing.

	return results
}

func (s *Service) acquirePDF(ctx context.Context, doc domain.RawDocument) domain.Extraction {
	text, err := s.pdfText.ExtractText(ctx, doc.Content)
	if err != nil {
		logger.Debug("embedded text extraction failed for %s: %v", doc.Filename, err)
		text = ""
	}
	if len(strings.TrimSpace(text)) >= pdfTextThreshold {
		return domain.Extraction{Text: text, OCRConfidence: 1.0}
	}

	pages, err := s.raster.Rasterize(ctx, doc.Content)
	if err != nil {
		logger.Warn("rasterization failed for %s: %v", doc.Filename, err)
		return domain.Extraction{OCRUsed: true, Degraded: true, Reason: "rasterization failed"}
	}

	var pageTexts []string
	var confSum float64
	for _, page := range pages {
		pageText, pageConf, _ := s.ocrImage(ctx, page)
		if strings.TrimSpace(pageText) != "" {
			pageTexts = append(pageTexts, pageText)
		}
		confSum += pageConf
	}

	merged := strings.Join(pageTexts, "\n")
	avgConf := 0.0
	if len(pages) > 0 {
		avgConf = confidence.Round2(confSum / float64(len(pages)))
	}
	return domain.Extraction{
		Text:          merged,
		OCRUsed:       true,
		OCRConfidence: avgConf,
		Degraded:      merged == "",
		Reason:        degradedReason(merged, "no text recognised"),
	}
}

// ocrImage runs one image through the OCR engine. Page confidence is
// the mean of token confidences normalised to [0,1], 0.0 when the
// engine found no tokens.
func (s *Service) ocrImage(ctx context.Context, image []byte) (string, float64, string) {
	result, err := s.ocr.Recognize(ctx, image)
	if err != nil {
		logger.Debug("ocr failed: %v", err)
		return "", 0, "ocr failed"
	}
	if len(result.Tokens) == 0 {
		return "", 0, "no text recognised"
	}

	var confSum float64
	for _, c := range result.Confidences {
		confSum += c
	}
	avg := 0.0
	if len(result.Confidences) > 0 {
		avg = confidence.Round2(confSum / float64(len(result.Confidences)) / 100)
	}
	return strings.Join(result.Tokens, " "), avg, ""
}

func degradedReason(text, reason string) string {
	if text != "" {
		return ""
	}
	return reason
}
