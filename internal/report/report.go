// Package report renders the financial health report as plain text from
// already-computed data.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/hi4requency/fynstra/internal/fhi"
	"github.com/hi4requency/fynstra/internal/models"
)

// FileName returns the download name for a report generated now.
func FileName(now time.Time) string {
	return fmt.Sprintf("fynstra_report_%s.txt", now.Format("20060102"))
}

// Generate builds the text report for a scored snapshot.
func Generate(username string, s models.FinancialSnapshot, result *models.FHIResult, now time.Time) string {
	var b strings.Builder

	b.WriteString("FYNSTRA FINANCIAL HEALTH REPORT\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "Prepared for: %s\n", username)
	fmt.Fprintf(&b, "Date: %s\n\n", now.Format("2006-01-02"))

	fmt.Fprintf(&b, "Overall FHI Score: %.2f / 100 (%s)\n\n", result.FHI, verdictText(result.FHI))

	b.WriteString("Your Inputs\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&b, "Age:               %d\n", s.Age)
	fmt.Fprintf(&b, "Monthly Income:    %.2f\n", s.MonthlyIncome)
	fmt.Fprintf(&b, "Monthly Expenses:  %.2f\n", s.MonthlyExpenses)
	fmt.Fprintf(&b, "Monthly Savings:   %.2f\n", s.MonthlySavings)
	fmt.Fprintf(&b, "Monthly Debt:      %.2f\n", s.MonthlyDebt)
	fmt.Fprintf(&b, "Total Investments: %.2f\n", s.TotalInvestments)
	fmt.Fprintf(&b, "Net Worth:         %.2f\n", s.NetWorth)
	fmt.Fprintf(&b, "Emergency Fund:    %.2f\n\n", s.EmergencyFund)

	b.WriteString("Component Scores\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, cs := range result.Components.Ordered() {
		fmt.Fprintf(&b, "%-16s %6.1f / 100\n", cs.Label+":", cs.Score)
	}
	b.WriteString("\n")

	breakdown := fhi.Explain(result.Components)
	b.WriteString("Score Breakdown\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, c := range breakdown.Contributions {
		fmt.Fprintf(&b, "%-16s %5.2f (weight %.0f%%)\n", c.Label+":", c.Contribution, c.Weight*100)
	}
	fmt.Fprintf(&b, "%-16s %5.2f\n", "Base Score:", breakdown.BaseOffset)
	fmt.Fprintf(&b, "%-16s %5.2f\n\n", "Total:", breakdown.WeightedSum+breakdown.BaseOffset)

	if weak := fhi.WeakAreas(result.Components); len(weak) > 0 {
		b.WriteString("Areas Needing Improvement\n")
		b.WriteString(strings.Repeat("-", 40) + "\n")
		for _, label := range weak {
			in := fhi.Interpret(label, componentScore(result.Components, label))
			fmt.Fprintf(&b, "* %s: %s\n", label, in.Summary)
			for _, tip := range in.Suggestions {
				fmt.Fprintf(&b, "  - %s\n", tip)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("Generated by Fynstra - Forecast, Yield, Navigate.\n")
	return b.String()
}

func componentScore(c models.Components, label string) float64 {
	for _, cs := range c.Ordered() {
		if cs.Label == label {
			return cs.Score
		}
	}
	return 0
}

func verdictText(score float64) string {
	switch fhi.Verdict(score) {
	case fhi.VerdictExcellent:
		return "Excellent"
	case fhi.VerdictGood:
		return "Good"
	case fhi.VerdictFair:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}
