package models

// Goal is a user savings goal with a month-by-month contribution record.
// Progress maps canonical month keys ("YYYY-MM") to a contribution-made
// flag. Goals are owned exclusively by the goal store and visible only to
// the user that created them.
type Goal struct {
	ID                string          `json:"id"`
	OwnerID           int64           `json:"-"`
	Name              string          `json:"name"`
	Emoji             string          `json:"emoji"`
	GoalAmount        float64         `json:"goal_amount"`
	StartDate         Date            `json:"start_date"`
	TargetDate        Date            `json:"target_date"`
	UseRecommendedFHI bool            `json:"use_recommended_fhi"`
	MinFHI            float64         `json:"min_fhi"`
	Progress          map[string]bool `json:"progress"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

// MinimumFHI resolves the FHI gate for feasibility checks: the user's live
// FHI when the recommended setting is on, otherwise the manual threshold.
func (g *Goal) MinimumFHI(liveFHI float64) float64 {
	if g.UseRecommendedFHI {
		return liveFHI
	}
	return g.MinFHI
}

// Clone returns a deep copy so store reads never alias internal state.
func (g *Goal) Clone() *Goal {
	cp := *g
	cp.Progress = make(map[string]bool, len(g.Progress))
	for k, v := range g.Progress {
		cp.Progress[k] = v
	}
	return &cp
}
