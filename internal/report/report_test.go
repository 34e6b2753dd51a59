package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hi4requency/fynstra/internal/fhi"
	"github.com/hi4requency/fynstra/internal/models"
)

func TestFileName(t *testing.T) {
	now := time.Date(2025, 8, 31, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "fynstra_report_20250831.txt", FileName(now))
}

func TestGenerate(t *testing.T) {
	s := models.FinancialSnapshot{
		Age:              28,
		MonthlyIncome:    50000,
		MonthlyExpenses:  20000,
		MonthlySavings:   10000,
		MonthlyDebt:      5000,
		TotalInvestments: 60000,
		NetWorth:         200000,
		EmergencyFund:    80000,
	}
	result, err := fhi.Calculate(s)
	require.NoError(t, err)

	text := Generate("maria", s, result, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, text, "Prepared for: maria")
	assert.Contains(t, text, "Overall FHI Score: 48.25 / 100")
	assert.Contains(t, text, "Needs Improvement")
	for _, cs := range result.Components.Ordered() {
		assert.Contains(t, text, cs.Label)
	}
	// Weak components carry improvement tips.
	assert.Contains(t, text, "Start small and invest regularly.")
}
