// Package scenario recomputes the FHI under what-if adjustments to a
// baseline snapshot and derives comparison analytics.
package scenario

import (
	"sort"

	"github.com/hi4requency/fynstra/internal/fhi"
	"github.com/hi4requency/fynstra/internal/models"
)

// Delta holds per-field percentage changes plus the one-off absolute
// adjustments used by presets. Age and net worth are scenario-invariant
// anchors and are never perturbed.
type Delta struct {
	IncomePct       float64 `json:"income_pct"`
	ExpensesPct     float64 `json:"expenses_pct"`
	SavingsPct      float64 `json:"savings_pct"`
	DebtPct         float64 `json:"debt_pct"`
	InvestPct       float64 `json:"invest_pct"`
	EmergencyPct    float64 `json:"efund_pct"`
	SavingsAbsDelta float64 `json:"savings_abs_delta"`
	DebtAbsDelta    float64 `json:"debt_abs_delta"`
}

// ComponentChange is one sub-score's movement between baseline and
// scenario.
type ComponentChange struct {
	Label  string  `json:"label"`
	Change float64 `json:"change"`
}

// Impact levels for the overall FHI movement.
const (
	ImpactMinimal  = "minimal"
	ImpactLow      = "low"
	ImpactModerate = "moderate"
	ImpactHigh     = "high"
)

// Comparison is the outcome of one scenario run.
type Comparison struct {
	Baseline          *models.FHIResult        `json:"baseline"`
	Scenario          *models.FHIResult        `json:"scenario"`
	BaselineSnapshot  models.FinancialSnapshot `json:"baseline_snapshot"`
	ScenarioSnapshot  models.FinancialSnapshot `json:"scenario_snapshot"`
	FHIChange         float64                  `json:"fhi_change"`
	Impact            string                   `json:"impact"`
	Improvements      []ComponentChange        `json:"improvements"`
	Declines          []ComponentChange        `json:"declines"`
	BaselineBreakdown fhi.Breakdown            `json:"baseline_breakdown"`
	ScenarioBreakdown fhi.Breakdown            `json:"scenario_breakdown"`
}

// Apply derives the scenario snapshot. Percentage deltas scale
// multiplicatively; absolute deltas are added after scaling; every field
// floors at zero.
func Apply(base models.FinancialSnapshot, d Delta) models.FinancialSnapshot {
	out := base
	out.MonthlyIncome = scaled(base.MonthlyIncome, d.IncomePct, 0)
	out.MonthlyExpenses = scaled(base.MonthlyExpenses, d.ExpensesPct, 0)
	out.MonthlySavings = scaled(base.MonthlySavings, d.SavingsPct, d.SavingsAbsDelta)
	out.MonthlyDebt = scaled(base.MonthlyDebt, d.DebtPct, d.DebtAbsDelta)
	out.TotalInvestments = scaled(base.TotalInvestments, d.InvestPct, 0)
	out.EmergencyFund = scaled(base.EmergencyFund, d.EmergencyPct, 0)
	return out
}

func scaled(value, pct, abs float64) float64 {
	return max(0, value*(1+pct/100)+abs)
}

// Run scores the baseline and the adjusted snapshot independently and
// packages the comparison. No state is shared between the two passes.
// The baseline must be a valid user snapshot; the derived scenario leg is
// scored with zero-denominator guards so extreme deltas (a job loss that
// zeroes income) still yield a comparison instead of a refusal.
func Run(base models.FinancialSnapshot, d Delta, topK int) (*Comparison, error) {
	baseline, err := fhi.Calculate(base)
	if err != nil {
		return nil, err
	}

	adjusted := Apply(base, d)
	result := fhi.Score(adjusted)

	change := fhi.Round2(result.FHI - baseline.FHI)
	gains, losses := TopComponentChanges(baseline.Components, result.Components, topK)

	return &Comparison{
		Baseline:          baseline,
		Scenario:          result,
		BaselineSnapshot:  base,
		ScenarioSnapshot:  adjusted,
		FHIChange:         change,
		Impact:            impactLevel(change),
		Improvements:      gains,
		Declines:          losses,
		BaselineBreakdown: fhi.Explain(baseline.Components),
		ScenarioBreakdown: fhi.Explain(result.Components),
	}, nil
}

func impactLevel(change float64) string {
	abs := change
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < 1:
		return ImpactMinimal
	case abs < 5:
		return ImpactLow
	case abs < 10:
		return ImpactModerate
	default:
		return ImpactHigh
	}
}

// TopComponentChanges returns the k largest positive deltas and the k most
// negative deltas, each sorted by magnitude. Ties keep the canonical
// component order.
func TopComponentChanges(before, after models.Components, k int) (gains, losses []ComponentChange) {
	oldScores := before.Ordered()
	for i, cs := range after.Ordered() {
		change := fhi.Round2(cs.Score - oldScores[i].Score)
		switch {
		case change > 0:
			gains = append(gains, ComponentChange{Label: cs.Label, Change: change})
		case change < 0:
			losses = append(losses, ComponentChange{Label: cs.Label, Change: change})
		}
	}
	sort.SliceStable(gains, func(i, j int) bool { return gains[i].Change > gains[j].Change })
	sort.SliceStable(losses, func(i, j int) bool { return losses[i].Change < losses[j].Change })
	if len(gains) > k {
		gains = gains[:k]
	}
	if len(losses) > k {
		losses = losses[:k]
	}
	return gains, losses
}
