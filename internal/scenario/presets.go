package scenario

// Preset is a named, ready-made scenario.
type Preset struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description"`
	Delta       Delta  `json:"delta"`
}

// Preset keys accepted by the scenario endpoint.
const (
	PresetJobLoss        = "job_loss"
	PresetSalaryRaise    = "salary_raise"
	PresetDebtPayoff     = "debt_payoff"
	PresetStartInvesting = "start_investing"
)

// Presets returns the built-in quick scenarios.
func Presets() []Preset {
	return []Preset{
		{
			Key:         PresetJobLoss,
			Name:        "2-Month Job Loss",
			Description: "Model a period without income or savings contributions",
			Delta:       Delta{IncomePct: -100, SavingsPct: -100},
		},
		{
			Key:         PresetSalaryRaise,
			Name:        "15% Salary Raise",
			Description: "15% increase in monthly income",
			Delta:       Delta{IncomePct: 15},
		},
		{
			Key:         PresetDebtPayoff,
			Name:        "Extra Debt Payment",
			Description: "Pay off 5,000 additional debt monthly",
			Delta:       Delta{DebtAbsDelta: -5000},
		},
		{
			Key:         PresetStartInvesting,
			Name:        "Start Investment Plan",
			Description: "Begin saving 3,000 monthly and grow investments by 20%",
			Delta:       Delta{SavingsAbsDelta: 3000, InvestPct: 20},
		},
	}
}

// PresetByKey looks up a built-in scenario by key.
func PresetByKey(key string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}
