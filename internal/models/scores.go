package models

// Component labels, in the canonical presentation order.
const (
	LabelNetWorth      = "Net Worth"
	LabelDebtToIncome  = "Debt-to-Income"
	LabelSavingsRate   = "Savings Rate"
	LabelInvestment    = "Investment"
	LabelEmergencyFund = "Emergency Fund"
)

// Components holds the five FHI sub-scores, each in [0,100].
type Components struct {
	NetWorth      float64 `json:"net_worth"`
	DebtToIncome  float64 `json:"debt_to_income"`
	SavingsRate   float64 `json:"savings_rate"`
	Investment    float64 `json:"investment"`
	EmergencyFund float64 `json:"emergency_fund"`
}

// ComponentScore pairs a sub-score with its display label.
type ComponentScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Ordered returns the sub-scores in canonical order for charting and
// tie-breaking.
func (c Components) Ordered() []ComponentScore {
	return []ComponentScore{
		{LabelNetWorth, c.NetWorth},
		{LabelDebtToIncome, c.DebtToIncome},
		{LabelSavingsRate, c.SavingsRate},
		{LabelInvestment, c.Investment},
		{LabelEmergencyFund, c.EmergencyFund},
	}
}

// FHIResult is the outcome of one scoring pass: the five sub-scores plus
// the composite index, rounded to two decimals.
type FHIResult struct {
	Components Components `json:"components"`
	FHI        float64    `json:"fhi"`
}
