package salarytable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
)

func TestParse_DelimiterRows(t *testing.T) {
	text := "Salary Slip\nJan 2026 | Acme Corp | INR 50,000\nFeb 2026 | Acme Corp | INR 52,000"
	rows := Parse(text)
	require.Len(t, rows, 2)

	SortByMonth(rows)
	assert.Equal(t, "2026-01", rows[0].Month)
	assert.Equal(t, "Acme Corp", rows[0].Employer)
	assert.Equal(t, 50000.0, rows[0].Amount)
	assert.Equal(t, "2026-02", rows[1].Month)
	assert.Equal(t, 52000.0, rows[1].Amount)

	assert.Equal(t, 51000.0, Average(rows))
	assert.Equal(t, 52000.0, rows[len(rows)-1].Amount)
}

func TestParse_WhitespaceRows(t *testing.T) {
	text := "salary statement\nMar 2026 Globex Ltd 48,500"
	rows := Parse(text)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-03", rows[0].Month)
	assert.Equal(t, "Globex Ltd", rows[0].Employer)
	assert.Equal(t, 48500.0, rows[0].Amount)
}

func TestParse_RequiresLabel(t *testing.T) {
	// Without a salary-table label the parser stays inactive even when
	// rows would match.
	text := "Jan 2026 | Acme Corp | INR 50,000"
	assert.Nil(t, Parse(text))
}

func TestParse_DedupKeepsLast(t *testing.T) {
	text := "Salary Summary\nJan 2026 | Acme Corp | 50,000\nJan 2026 | Acme Corp | 51,000"
	rows := Parse(text)
	require.Len(t, rows, 1)
	assert.Equal(t, 51000.0, rows[0].Amount)
}

func TestParse_SeparateEmployersKept(t *testing.T) {
	text := "Salary Summary\nJan 2026 | Acme Corp | 50,000\nJan 2026 | Globex Ltd | 30,000"
	rows := Parse(text)
	assert.Len(t, rows, 2)
}

func TestParse_TrimsEmployerPunctuation(t *testing.T) {
	text := "Salary Slip\nJan 2026 | Acme Corp :- | 50,000"
	rows := Parse(text)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme Corp", rows[0].Employer)
}

func TestParse_CurrencyVariants(t *testing.T) {
	text := "Salary Slip\nJan 2026 | Acme | Rs. 40,000\nFeb 2026 | Acme | ₹ 41,000"
	rows := Parse(text)
	require.Len(t, rows, 2)
	SortByMonth(rows)
	assert.Equal(t, 40000.0, rows[0].Amount)
	assert.Equal(t, 41000.0, rows[1].Amount)
}

func TestParse_RowConfidence(t *testing.T) {
	text := "Salary Slip\nJan 2026 | Acme Corp | 50,000"
	rows := Parse(text)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.92, rows[0].Confidence)
}

func TestSortByMonth_SentinelYearSortsFirst(t *testing.T) {
	rows := []domain.SalaryRow{
		{Month: "2026-01"},
		{Month: "0000-05"},
	}
	SortByMonth(rows)
	assert.Equal(t, "0000-05", rows[0].Month)
}

func TestAverage_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
}
