package fhi

import "github.com/hi4requency/fynstra/internal/models"

// Contribution is one component's weighted share of the composite score.
type Contribution struct {
	Label        string  `json:"label"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Breakdown makes the composite formula transparent: each component's
// weighted contribution, their sum, and the flat base offset.
type Breakdown struct {
	Contributions []Contribution `json:"contributions"`
	WeightedSum   float64        `json:"weighted_sum"`
	BaseOffset    float64        `json:"base_offset"`
}

// Weights returns the component weights keyed by canonical label.
func Weights() map[string]float64 {
	return map[string]float64{
		models.LabelNetWorth:      WeightNetWorth,
		models.LabelDebtToIncome:  WeightDebtToIncome,
		models.LabelSavingsRate:   WeightSavingsRate,
		models.LabelInvestment:    WeightInvestment,
		models.LabelEmergencyFund: WeightEmergencyFund,
	}
}

// Explain computes the weighted contribution of each sub-score using the
// exact weights of the composite formula.
func Explain(c models.Components) Breakdown {
	w := Weights()
	var b Breakdown
	var sum float64
	for _, cs := range c.Ordered() {
		contrib := Round2(cs.Score * w[cs.Label])
		sum += contrib
		b.Contributions = append(b.Contributions, Contribution{
			Label:        cs.Label,
			Score:        cs.Score,
			Weight:       w[cs.Label],
			Contribution: contrib,
		})
	}
	b.WeightedSum = Round2(sum)
	b.BaseOffset = BaseOffset
	return b
}
