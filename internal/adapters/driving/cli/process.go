package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driving"
)

var (
	processUserID   string
	processCategory string
	processJSON     bool
)

var processCmd = &cobra.Command{
	Use:   "process <file>...",
	Short: "Process documents and produce an eligibility report",
	Long: `Reads the given PDF or image files, runs the document intelligence
pipeline, and stores the resulting consolidated report.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processUserID, "user", "", "applicant user ID recorded in the report")
	processCmd.Flags().StringVar(&processCategory, "category", "", "loan category recorded in the report")
	processCmd.Flags().BoolVar(&processJSON, "json", false, "print the full report as JSON")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	docs := make([]domain.RawDocument, 0, len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		docs = append(docs, domain.RawDocument{
			Filename: filepath.Base(path),
			Content:  content,
		})
	}

	report, err := reportService.Process(context.Background(), docs, driving.UploadOptions{
		UserID:   processUserID,
		Category: processCategory,
	})
	if err != nil {
		if errors.Is(err, domain.ErrLowQuality) {
			return errors.New("document quality is low, please provide a clearer scan")
		}
		return fmt.Errorf("processing documents: %w", err)
	}

	if processJSON {
		return printJSON(cmd, report)
	}

	printSummary(cmd, report)
	return nil
}

// printSummary writes the human-readable report digest.
func printSummary(cmd *cobra.Command, report *domain.Report) {
	cmd.Printf("Report ID: %s\n", report.ID)
	if report.Eligible {
		cmd.Println("Eligibility: Eligible")
	} else {
		cmd.Println("Eligibility: Not Eligible")
	}
	cmd.Printf("Overall confidence: %.2f\n", report.Confidence.OverallConfidence)

	if len(report.Decisions) > 0 {
		cmd.Println("\nRule decisions:")
		for _, d := range report.Decisions {
			verdict := "FAIL"
			if d.Passed {
				verdict = "PASS"
			}
			cmd.Printf("  [%s] %s: %s\n", verdict, d.RuleName, d.Message)
		}
	}

	if len(report.MissingDocuments) > 0 {
		cmd.Println("\nMissing documents:")
		for _, doc := range report.MissingDocuments {
			cmd.Printf("  - %s\n", doc)
		}
	}

	if len(report.PendingForms) > 0 {
		cmd.Println("\nPending forms:")
		for _, form := range report.PendingForms {
			cmd.Printf("  %s (%s): %s\n", form.FormCode, form.FormName, form.Reason)
		}
	}

	if len(report.PredictedQueries) > 0 {
		cmd.Println("\nLikely credit-team queries:")
		for _, q := range report.PredictedQueries {
			cmd.Printf("  %.2f  %s\n", q.Confidence, q.Query)
		}
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
