package fhi

import "github.com/hi4requency/fynstra/internal/models"

// Interpretation is the narrative reading of one sub-score.
type Interpretation struct {
	Label       string   `json:"label"`
	Score       float64  `json:"score"`
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
}

// weakThreshold marks a sub-score as needing improvement.
const weakThreshold = 60.0

// Verdict bands for the composite score.
const (
	VerdictExcellent        = "excellent"
	VerdictGood             = "good"
	VerdictFair             = "fair"
	VerdictNeedsImprovement = "needs_improvement"
)

// Verdict classifies the composite FHI into the display bands.
func Verdict(fhi float64) string {
	switch {
	case fhi >= 85:
		return VerdictExcellent
	case fhi >= 70:
		return VerdictGood
	case fhi >= 50:
		return VerdictFair
	default:
		return VerdictNeedsImprovement
	}
}

// WeakAreas lists the components scoring below the improvement threshold,
// in canonical order.
func WeakAreas(c models.Components) []string {
	var weak []string
	for _, cs := range c.Ordered() {
		if cs.Score < weakThreshold {
			weak = append(weak, cs.Label)
		}
	}
	return weak
}

// Interpret returns the narrative summary and improvement tips for one
// component score. Bands: below 40, below 70, and 70 or above.
func Interpret(label string, score float64) Interpretation {
	in := Interpretation{Label: label, Score: score}
	switch label {
	case models.LabelNetWorth:
		in.Summary = pick(score,
			"Your net worth is low relative to your income.",
			"Your net worth is progressing, but still has room to grow.",
			"You have a strong net worth relative to your income.")
		in.Suggestions = []string{
			"Build your assets by saving and investing consistently.",
			"Reduce liabilities such as debts and loans.",
			"Track your net worth regularly to monitor growth.",
		}
	case models.LabelDebtToIncome:
		in.Summary = pick(score,
			"Your debt is taking a big chunk of your income.",
			"You're managing debt moderately well, but aim to lower it further.",
			"Your debt load is well-managed.")
		in.Suggestions = []string{
			"Pay down high-interest debts first.",
			"Avoid taking on new unnecessary credit obligations.",
			"Increase income to improve your ratio.",
		}
	case models.LabelSavingsRate:
		in.Summary = pick(score,
			"You're saving very little monthly.",
			"Your savings rate is okay, but can be improved.",
			"You're saving consistently and strongly.")
		in.Suggestions = []string{
			"Automate savings transfers if possible.",
			"Set a target of saving at least 20% of income.",
			"Review expenses to increase what's saved.",
		}
	case models.LabelInvestment:
		in.Summary = pick(score,
			"You're not investing much yet.",
			"You're starting to invest; try to boost it.",
			"You're investing well and building wealth.")
		in.Suggestions = []string{
			"Start small and invest regularly.",
			"Diversify your portfolio for stability.",
			"Aim for long-term investing over short-term speculation.",
		}
	case models.LabelEmergencyFund:
		in.Summary = pick(score,
			"You have less than 1 month saved for emergencies.",
			"You're halfway to a full emergency buffer.",
			"Your emergency fund is solid.")
		in.Suggestions = []string{
			"Build up to 3-6 months of essential expenses.",
			"Keep it liquid and easily accessible.",
			"Set a monthly auto-save amount.",
		}
	}
	return in
}

// InterpretAll interprets every component in canonical order.
func InterpretAll(c models.Components) []Interpretation {
	ordered := c.Ordered()
	out := make([]Interpretation, 0, len(ordered))
	for _, cs := range ordered {
		out = append(out, Interpret(cs.Label, cs.Score))
	}
	return out
}

func pick(score float64, low, mid, high string) string {
	if score < 40 {
		return low
	}
	if score < 70 {
		return mid
	}
	return high
}
