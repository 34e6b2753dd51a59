// Package fhi computes the Financial Health Index: five normalized
// sub-scores combined into one composite score with age-banded targets.
package fhi

import (
	"errors"
	"math"

	"github.com/hi4requency/fynstra/internal/models"
)

// ErrMissingRequiredInput is returned when income or expenses are not
// positive. The caller should prompt the user instead of showing a
// degenerate score.
var ErrMissingRequiredInput = errors.New("monthly income and expenses are required")

// Component weights. They sum to 0.85; the flat base offset of 15 lifts
// the floor so an all-zero profile still scores 15, not 0. This asymmetry
// is intentional product behavior.
const (
	WeightNetWorth      = 0.20
	WeightDebtToIncome  = 0.15
	WeightSavingsRate   = 0.15
	WeightInvestment    = 0.15
	WeightEmergencyFund = 0.20
	BaseOffset          = 15.0
)

// emergencyFundTargetMonths is the expense-coverage target for a full
// emergency-fund score.
const emergencyFundTargetMonths = 6.0

// TargetMultipliers returns the age-banded (alpha, beta) targets: how many
// years of annual income should be held as net worth and as investments.
// The targets tighten with age.
func TargetMultipliers(age int) (alpha, beta float64) {
	switch {
	case age < 30:
		return 2.5, 2.0
	case age < 40:
		return 3.0, 3.0
	case age < 50:
		return 3.5, 4.0
	default:
		return 4.0, 5.0
	}
}

// Calculate scores a user-submitted snapshot. It refuses when income or
// expenses are not positive so the caller can prompt for the form instead
// of displaying a degenerate score.
func Calculate(s models.FinancialSnapshot) (*models.FHIResult, error) {
	if s.MonthlyIncome <= 0 || s.MonthlyExpenses <= 0 {
		return nil, ErrMissingRequiredInput
	}
	return Score(s), nil
}

// Score maps a snapshot to the five sub-scores and the composite FHI.
// Every sub-score whose denominator is zero contributes 0, so the score
// is defined for any snapshot, including derived ones with no income.
// The composite is rounded to two decimals; sub-scores are left unrounded
// so weighted breakdowns do not compound rounding error.
func Score(s models.FinancialSnapshot) *models.FHIResult {
	alpha, beta := TargetMultipliers(s.Age)
	annualIncome := s.MonthlyIncome * 12

	var c models.Components
	if annualIncome > 0 {
		c.NetWorth = clamp(s.NetWorth/(annualIncome*alpha)*100, 0, 100)
		c.Investment = clamp(s.TotalInvestments/(beta*annualIncome)*100, 0, 100)
	}
	if s.MonthlyIncome > 0 {
		c.DebtToIncome = 100 - clamp(s.MonthlyDebt/s.MonthlyIncome*100, 0, 100)
		c.SavingsRate = clamp(s.MonthlySavings/s.MonthlyIncome*100, 0, 100)
	}
	if s.MonthlyExpenses > 0 {
		c.EmergencyFund = clamp((s.EmergencyFund/s.MonthlyExpenses)/emergencyFundTargetMonths*100, 0, 100)
	}

	fhi := WeightNetWorth*c.NetWorth +
		WeightDebtToIncome*c.DebtToIncome +
		WeightSavingsRate*c.SavingsRate +
		WeightInvestment*c.Investment +
		WeightEmergencyFund*c.EmergencyFund +
		BaseOffset

	return &models.FHIResult{
		Components: c,
		FHI:        Round2(fhi),
	}
}

// Round2 rounds to two decimal places for display and storage.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
