package driven

import "context"

// PDFTextExtractor recovers embedded text from a PDF, best effort.
// Implementations return an empty string rather than partial garbage
// when the document carries no text layer.
type PDFTextExtractor interface {
	ExtractText(ctx context.Context, pdf []byte) (string, error)
}

// PageRasterizer renders each PDF page to an image suitable for OCR.
// Pages are rendered at 2.0 scale for legibility.
type PageRasterizer interface {
	Rasterize(ctx context.Context, pdf []byte) ([][]byte, error)
}
