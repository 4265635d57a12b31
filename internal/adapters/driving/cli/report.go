package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
)

var reportPDFOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect stored eligibility reports",
}

var reportShowCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Print a stored report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportShow,
}

var reportPDFCmd = &cobra.Command{
	Use:   "pdf <report-id>",
	Short: "Render a stored report to a PDF file",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportPDF,
}

func init() {
	reportPDFCmd.Flags().StringVarP(&reportPDFOutput, "output", "o", "", "output file (defaults to report_<id>.pdf)")
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportPDFCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportShow(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	report, err := reportService.Get(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("report %s not found", args[0])
		}
		return fmt.Errorf("fetching report: %w", err)
	}
	return printJSON(cmd, report)
}

func runReportPDF(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	id := args[0]
	content, err := reportService.RenderPDF(context.Background(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("report %s not found", id)
		}
		return fmt.Errorf("rendering report: %w", err)
	}

	out := reportPDFOutput
	if out == "" {
		out = fmt.Sprintf("report_%s.pdf", id)
	}
	if err := os.WriteFile(out, content, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	cmd.Printf("Wrote %s (%d bytes)\n", out, len(content))
	return nil
}
