// Command financy runs the document intelligence CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/adapters/driven/config/file"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/adapters/driven/ocr/tesseract"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/adapters/driven/pdf"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/adapters/driven/render"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/adapters/driven/storage/sqlite"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/adapters/driving/cli"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/services"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/extraction"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// FINANCY_CONFIG_DIR and FINANCY_DATA_DIR override the ~/.financy
	// defaults, mainly for containerised deployments.
	rules, err := file.NewRuleStore(os.Getenv("FINANCY_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("loading rule tables: %w", err)
	}

	store, err := sqlite.NewStore(os.Getenv("FINANCY_DATA_DIR"))
	if err != nil {
		return fmt.Errorf("opening report store: %w", err)
	}
	defer store.Close()

	if err := pdf.CheckAvailable(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n%s\n", err, pdf.InstallInstructions())
	}
	if err := tesseract.CheckAvailable(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n%s\n", err, tesseract.InstallInstructions())
	}

	extractor := extraction.NewService(pdf.NewExtractor(), pdf.NewRasterizer(), tesseract.New())
	service := services.NewReportService(extractor, rules, store, render.New())

	cli.Initialize(service)
	return cli.Execute()
}
