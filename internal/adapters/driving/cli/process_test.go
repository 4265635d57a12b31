package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driving"
)

// fakeService is a test double for driving.ReportService.
type fakeService struct {
	report     *domain.Report
	processErr error
	getErr     error
	pdf        []byte

	gotDocs []domain.RawDocument
	gotOpts driving.UploadOptions
}

func (f *fakeService) Process(_ context.Context, docs []domain.RawDocument, opts driving.UploadOptions) (*domain.Report, error) {
	f.gotDocs = docs
	f.gotOpts = opts
	if f.processErr != nil {
		return nil, f.processErr
	}
	return f.report, nil
}

func (f *fakeService) Get(_ context.Context, _ string) (*domain.Report, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.report, nil
}

func (f *fakeService) RenderPDF(_ context.Context, _ string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.pdf, nil
}

func fakeReport() *domain.Report {
	return &domain.Report{
		ID:        "r-42",
		CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Eligible:  true,
		Decisions: []domain.RuleDecision{
			{RuleName: "Minimum monthly salary", Passed: true, Message: "monthly_salary=55000 >= 25000"},
		},
		MissingDocuments: []domain.DocumentType{domain.DocTypePANCard},
		Confidence:       domain.ConfidenceSummary{OverallConfidence: 0.81},
	}
}

// runCommand executes the root command with the given args, restoring
// global state afterwards.
func runCommand(t *testing.T, svc driving.ReportService, args ...string) (string, error) {
	t.Helper()

	originalService := reportService
	reportService = svc
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		reportService = originalService
		rootCmd.SetArgs(nil)
		processUserID = ""
		processCategory = ""
		processJSON = false
		reportPDFOutput = ""
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeTempDoc(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("fake-bytes"), 0600))
	return path
}

func TestProcessCmd_Summary(t *testing.T) {
	svc := &fakeService{report: fakeReport()}
	path := writeTempDoc(t, "salary_slip.pdf")

	out, err := runCommand(t, svc, "process", path, "--user", "u-1", "--category", "personal_loan")
	require.NoError(t, err)

	assert.Contains(t, out, "Report ID: r-42")
	assert.Contains(t, out, "Eligibility: Eligible")
	assert.Contains(t, out, "[PASS] Minimum monthly salary")
	assert.Contains(t, out, "pan_card")

	require.Len(t, svc.gotDocs, 1)
	assert.Equal(t, "salary_slip.pdf", svc.gotDocs[0].Filename)
	assert.Equal(t, "u-1", svc.gotOpts.UserID)
	assert.Equal(t, "personal_loan", svc.gotOpts.Category)
}

func TestProcessCmd_JSON(t *testing.T) {
	svc := &fakeService{report: fakeReport()}
	path := writeTempDoc(t, "statement.pdf")

	out, err := runCommand(t, svc, "process", path, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"report_id": "r-42"`)
}

func TestProcessCmd_LowQuality(t *testing.T) {
	svc := &fakeService{processErr: domain.ErrLowQuality}
	path := writeTempDoc(t, "scan.pdf")

	_, err := runCommand(t, svc, "process", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quality is low")
}

func TestProcessCmd_MissingFile(t *testing.T) {
	svc := &fakeService{report: fakeReport()}

	_, err := runCommand(t, svc, "process", "/does/not/exist.pdf")
	assert.Error(t, err)
}

func TestProcessCmd_NoServiceConfigured(t *testing.T) {
	path := writeTempDoc(t, "salary_slip.pdf")

	_, err := runCommand(t, nil, "process", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
