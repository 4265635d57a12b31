// Package cli implements the financy command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driving"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// reportService is injected by Initialize before Execute runs.
var reportService driving.ReportService

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "financy",
	Short: "Financial document intelligence for loan eligibility",
	Long: `financy ingests salary slips, bank statements, and identity proofs,
derives a financial profile, and evaluates loan eligibility against
configurable rules.

Documents are processed locally: embedded PDF text is used when
present and scanned pages fall back to OCR.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
}

// Initialize injects the services the commands depend on.
func Initialize(service driving.ReportService) {
	reportService = service
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
