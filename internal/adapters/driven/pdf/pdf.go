// Package pdf provides PDF text extraction and page rasterization
// backed by the poppler command-line tools, plus pdfcpu-based
// structural validation.
//
// pdftotext pulls the embedded text layer; pdftoppm renders pages to
// PNG for the OCR fallback. Both are invoked through a CommandRunner
// so tests can substitute a mock.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driven"
)

// ErrPDFToolNotFound is returned when the poppler tools are not installed.
var ErrPDFToolNotFound = errors.New("pdftotext/pdftoppm not found in PATH")

// rasterDPI renders pages at 2x the PDF's 72dpi user space, which is
// enough resolution for OCR of typical statement scans.
const rasterDPI = "144"

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands using os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// CheckAvailable verifies the poppler tools are installed.
func CheckAvailable() error {
	for _, tool := range []string{"pdftotext", "pdftoppm"} {
		if _, err := exec.LookPath(tool); err != nil {
			return ErrPDFToolNotFound
		}
	}
	return nil
}

// InstallInstructions returns platform-specific install guidance.
func InstallInstructions() string {
	return `pdftotext and pdftoppm are required for PDF processing:
  macOS:         brew install poppler
  Debian/Ubuntu: sudo apt install poppler-utils
  Fedora:        sudo dnf install poppler-utils`
}

// Ensure adapters implement the interfaces.
var (
	_ driven.PDFTextExtractor = (*Extractor)(nil)
	_ driven.PageRasterizer   = (*Rasterizer)(nil)
)

// Extractor pulls the embedded text layer from a PDF via pdftotext.
type Extractor struct {
	runner CommandRunner
}

// NewExtractor creates a text extractor using the system pdftotext.
func NewExtractor() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewExtractorWithRunner creates an extractor with a custom command runner.
func NewExtractorWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// ExtractText returns the PDF's embedded text layer. Scanned PDFs
// typically yield little or nothing here.
func (e *Extractor) ExtractText(ctx context.Context, content []byte) (string, error) {
	if len(content) == 0 {
		return "", domain.ErrInvalidInput
	}

	path, cleanup, err := writeTemp(content)
	if err != nil {
		return "", err
	}
	defer cleanup()

	// -layout preserves column positions, which keeps salary tables
	// parseable by the whitespace row patterns.
	out, err := e.runner.Run(ctx, "pdftotext", "-layout", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(out), nil
}

// Rasterizer renders PDF pages to PNG images via pdftoppm.
type Rasterizer struct {
	runner CommandRunner
}

// NewRasterizer creates a rasterizer using the system pdftoppm.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{runner: execRunner{}}
}

// NewRasterizerWithRunner creates a rasterizer with a custom command runner.
func NewRasterizerWithRunner(runner CommandRunner) *Rasterizer {
	return &Rasterizer{runner: runner}
}

// Rasterize renders each page of the PDF to a PNG, in page order.
func (r *Rasterizer) Rasterize(ctx context.Context, content []byte) ([][]byte, error) {
	if len(content) == 0 {
		return nil, domain.ErrInvalidInput
	}

	dir, err := os.MkdirTemp("", "financy-raster-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(dir)

	pdfPath := filepath.Join(dir, "in.pdf")
	if err := os.WriteFile(pdfPath, content, 0600); err != nil {
		return nil, fmt.Errorf("writing temp pdf: %w", err)
	}

	prefix := filepath.Join(dir, "page")
	if _, err := r.runner.Run(ctx, "pdftoppm", "-png", "-r", rasterDPI, pdfPath, prefix); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w", err)
	}

	paths, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("globbing pages: %w", err)
	}
	if len(paths) == 0 {
		return nil, errors.New("pdftoppm produced no pages")
	}
	sortByPageNumber(paths)

	pages := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading page %s: %w", p, err)
		}
		pages = append(pages, data)
	}
	return pages, nil
}

// PageCount returns the number of pages in the PDF, or an error when
// the bytes are not a structurally valid PDF. Validation is relaxed,
// matching what scanners and statement portals actually emit.
func PageCount(content []byte) (int, error) {
	if len(content) == 0 {
		return 0, domain.ErrInvalidInput
	}

	path, cleanup, err := writeTemp(content)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return count, nil
}

// Optimize rewrites a PDF file with pdfcpu's relaxed validation,
// normalising structure and compressing streams.
func Optimize(inPath, outPath string) error {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return api.OptimizeFile(inPath, outPath, cfg)
}

// writeTemp writes content to a temp .pdf and returns its path with a
// cleanup func.
func writeTemp(content []byte) (string, func(), error) {
	tmp, err := os.CreateTemp("", "financy-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp pdf: %w", err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp pdf: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp pdf: %w", err)
	}
	return tmp.Name(), cleanup, nil
}

// sortByPageNumber orders pdftoppm outputs numerically; the tool only
// zero-pads page numbers when the document has ten or more pages.
func sortByPageNumber(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return pageNumber(paths[i]) < pageNumber(paths[j])
	})
}

func pageNumber(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), ".png")
	idx := strings.LastIndex(base, "-")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(base[idx+1:])
	if err != nil {
		return 0
	}
	return n
}
