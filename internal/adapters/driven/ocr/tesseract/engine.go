// Package tesseract provides an OCR engine backed by the tesseract
// command-line tool. Recognition output is requested in TSV form so
// per-token confidences survive the round trip.
package tesseract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driven"
)

// ErrOCRToolNotFound is returned when tesseract is not installed.
var ErrOCRToolNotFound = errors.New("tesseract not found in PATH")

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands using os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Engine recognises text in raster images via tesseract.
type Engine struct {
	runner CommandRunner
}

// New creates an OCR engine using the system tesseract binary.
func New() *Engine {
	return &Engine{runner: execRunner{}}
}

// NewWithRunner creates an engine with a custom command runner.
func NewWithRunner(runner CommandRunner) *Engine {
	return &Engine{runner: runner}
}

// CheckAvailable verifies tesseract is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return ErrOCRToolNotFound
	}
	return nil
}

// InstallInstructions returns platform-specific install guidance.
func InstallInstructions() string {
	return `tesseract is required for OCR of scanned documents:
  macOS:         brew install tesseract
  Debian/Ubuntu: sudo apt install tesseract-ocr
  Fedora:        sudo dnf install tesseract`
}

// Recognize runs tesseract over the image and returns the recognised
// tokens with their confidences on tesseract's 0-100 scale.
func (e *Engine) Recognize(ctx context.Context, image []byte) (*domain.OCRResult, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidInput
	}

	tmp, err := os.CreateTemp("", "financy-ocr-*.img")
	if err != nil {
		return nil, fmt.Errorf("creating temp image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("writing temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing temp image: %w", err)
	}

	out, err := e.runner.Run(ctx, "tesseract", tmp.Name(), "stdout", "tsv")
	if err != nil {
		return nil, fmt.Errorf("tesseract failed: %w", err)
	}

	return parseTSV(string(out)), nil
}

// parseTSV extracts word tokens and confidences from tesseract TSV
// output. Structural rows carry a confidence of -1 and are dropped;
// rows with empty text still contribute their confidence, matching
// how tesseract reports whitespace regions.
func parseTSV(output string) *domain.OCRResult {
	result := &domain.OCRResult{}

	lines := strings.Split(output, "\n")
	for i, line := range lines {
		if i == 0 {
			continue // header row
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 12 {
			continue
		}

		conf, err := strconv.ParseFloat(fields[10], 64)
		if err != nil {
			conf = -1
		}

		text := strings.TrimSpace(fields[11])
		if text != "" {
			result.Tokens = append(result.Tokens, text)
		}
		if conf >= 0 {
			result.Confidences = append(result.Confidences, conf)
		}
	}

	return result
}
