// Package render produces the downloadable PDF rendition of a report.
//
// Pages are composed as plain PDF text objects and the result is run
// through pdfcpu, which validates the structure and compresses the
// streams. No rasterization or external tooling is involved.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/adapters/driven/pdf"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.ReportRenderer = (*Renderer)(nil)

// A4 page geometry in PDF user-space points.
const (
	pageWidth  = 595
	pageHeight = 842
	marginX    = 50
	topY       = 780
	bottomY    = 60
)

const (
	titleSize   = 16
	headingSize = 12
	bodySize    = 9
)

// line is one typeset row of the report.
type line struct {
	text string
	size int
}

// Renderer renders consolidated eligibility reports as PDF.
type Renderer struct{}

// New creates a report renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render produces the PDF bytes for a report.
func (r *Renderer) Render(_ context.Context, report *domain.Report) ([]byte, error) {
	if report == nil {
		return nil, domain.ErrInvalidInput
	}

	raw := buildPDF(buildLines(report))

	dir, err := os.MkdirTemp("", "financy-render-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "report.pdf")
	outPath := filepath.Join(dir, "report-opt.pdf")
	if err := os.WriteFile(inPath, raw, 0600); err != nil {
		return nil, fmt.Errorf("writing draft pdf: %w", err)
	}
	if err := pdf.Optimize(inPath, outPath); err != nil {
		return nil, fmt.Errorf("optimizing pdf: %w", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("reading optimized pdf: %w", err)
	}
	return out, nil
}

// buildLines lays the report out section by section, in the order the
// credit team reviews it.
func buildLines(report *domain.Report) []line {
	var lines []line
	heading := func(text string) {
		lines = append(lines, line{}, line{text: text, size: headingSize})
	}
	body := func(format string, args ...any) {
		lines = append(lines, line{text: fmt.Sprintf(format, args...), size: bodySize})
	}

	lines = append(lines, line{text: "Consolidated Eligibility Report", size: titleSize})
	body("Report ID: %s", report.ID)
	body("Generated At: %s", report.CreatedAt.Format("2006-01-02 15:04:05 UTC"))

	heading("1. Eligibility Check Result")
	status := "Not Eligible"
	if report.Eligible {
		status = "Eligible"
	}
	body("Status: %s", status)
	body("Overall Confidence: %.2f", report.Confidence.OverallConfidence)
	for _, d := range report.Decisions {
		verdict := "Fail"
		if d.Passed {
			verdict = "Pass"
		}
		body("  [%s] %s: %s", verdict, d.RuleName, d.Message)
	}

	heading("2. Monthly Salary Breakdown")
	if len(report.SalaryBreakdown) == 0 {
		body("  No salary rows extracted.")
	}
	for _, row := range report.SalaryBreakdown {
		body("  %s  %s  %.2f  (confidence %.2f)", row.Month, row.Employer, row.Amount, row.Confidence)
	}

	heading("3. Current Obligations")
	if len(report.Obligations) == 0 {
		body("  No obligations detected.")
	}
	for _, row := range report.Obligations {
		body("  %s  %s  monthly %.2f  outstanding %.2f",
			row.Lender, row.ObligationType, row.MonthlyAmount, row.OutstandingAmount)
	}

	heading("4. Pending Documents")
	if len(report.MissingDocuments) == 0 {
		body("  No pending documents.")
	}
	for _, doc := range report.MissingDocuments {
		body("  - %s", doc)
	}

	heading("5. Pending Form Details")
	if len(report.PendingForms) == 0 {
		body("  All mandatory forms complete.")
	}
	for _, form := range report.PendingForms {
		body("  %s  %s: %s", form.FormCode, form.FormName, form.Reason)
	}

	heading("6. Probable Credit-Team Queries")
	if len(report.PredictedQueries) == 0 {
		body("  No likely queries predicted.")
	}
	for _, q := range report.PredictedQueries {
		body("  %s (%.2f) - %s", q.Query, q.Confidence, q.Rationale)
	}

	return lines
}

// buildPDF assembles a single-font PDF from typeset lines, paginating
// on A4 pages.
func buildPDF(lines []line) []byte {
	streams := paginate(lines)
	numPages := len(streams)

	// Object layout: 1 catalog, 2 page tree, 3 font, then alternating
	// page and content objects.
	var kids []string
	for i := 0; i < numPages; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), numPages))
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	for i, stream := range streams {
		writeObj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			pageWidth, pageHeight, 5+2*i))
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefOffset)

	return buf.Bytes()
}

// paginate converts lines into per-page content streams.
func paginate(lines []line) []string {
	var streams []string
	var page strings.Builder
	y := topY

	flush := func() {
		streams = append(streams, "BT\n"+page.String()+"ET")
		page.Reset()
		y = topY
	}

	for _, l := range lines {
		if l.size == 0 {
			y -= bodySize // blank spacer row
			continue
		}
		if y < bottomY {
			flush()
		}
		fmt.Fprintf(&page, "/F1 %d Tf\n1 0 0 1 %d %d Tm\n(%s) Tj\n", l.size, marginX, y, escapeText(l.text))
		y -= l.size + 5
	}
	flush()
	return streams
}

// escapeText makes a string safe for a PDF literal string. Non-ASCII
// runes are dropped; the base font has no glyphs for them.
func escapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r >= 32 && r < 127:
			b.WriteRune(r)
		}
	}
	return b.String()
}
