package models

// FinancialSnapshot is a point-in-time picture of a user's finances.
// All currency fields share the same unit. Cross-field consistency is
// not enforced: savings above income simply saturates the sub-score.
type FinancialSnapshot struct {
	Age              int     `json:"age"`
	MonthlyIncome    float64 `json:"monthly_income"`
	MonthlyExpenses  float64 `json:"monthly_expenses"`
	MonthlySavings   float64 `json:"monthly_savings"`
	MonthlyDebt      float64 `json:"monthly_debt"`
	TotalInvestments float64 `json:"total_investments"`
	NetWorth         float64 `json:"net_worth"`
	EmergencyFund    float64 `json:"emergency_fund"`
}

// MissingFields lists snapshot fields that are unset or zero. Used to warn
// the user before computing a score on partial data.
func (s FinancialSnapshot) MissingFields() []string {
	var missing []string
	checks := []struct {
		label string
		value float64
	}{
		{"Monthly Income", s.MonthlyIncome},
		{"Monthly Expenses", s.MonthlyExpenses},
		{"Net Worth", s.NetWorth},
		{"Total Investments", s.TotalInvestments},
		{"Emergency Fund", s.EmergencyFund},
		{"Monthly Savings", s.MonthlySavings},
		{"Monthly Debt Payments", s.MonthlyDebt},
	}
	for _, c := range checks {
		if c.value == 0 {
			missing = append(missing, c.label)
		}
	}
	return missing
}
