package goals

import (
	"github.com/hi4requency/fynstra/internal/models"
	"github.com/hi4requency/fynstra/internal/roadmap"
)

// Suggestion codes surfaced when a goal is off track.
const (
	SuggestOverspending = "overspending" // expenses at or above income
	SuggestStretchGoal  = "stretch_goal" // requirement above the surplus
	SuggestLowFHI       = "low_fhi"      // live FHI below the goal's gate
	SuggestNearlyThere  = "nearly_there" // gap within the close-call margin
)

// nearlyThereMargin is the requirement/surplus gap under which small
// spending tweaks are enough to recover.
const nearlyThereMargin = 1000.0

// Status is a goal's schedule plus its feasibility verdict.
type Status struct {
	Goal            *models.Goal      `json:"goal"`
	Schedule        *roadmap.Schedule `json:"schedule"`
	MinFHI          float64           `json:"min_fhi"`
	AvailableToSave float64           `json:"available_to_save"`
	OnTrack         bool              `json:"on_track"`
	Suggestions     []string          `json:"suggestions,omitempty"`
}

// Status evaluates one goal against the user's snapshot and live FHI.
// Each goal is judged independently; overcommitting the same surplus
// across goals is not detected here.
func (s *Store) Status(owner int64, id string, snapshot models.FinancialSnapshot, liveFHI float64, currentSavings float64) (*Status, error) {
	g, err := s.Get(owner, id)
	if err != nil {
		return nil, err
	}

	schedule, err := roadmap.Build(g.GoalAmount, g.StartDate.Time, g.TargetDate.Time, currentSavings, g.Progress)
	if err != nil {
		return nil, err
	}

	minFHI := g.MinimumFHI(liveFHI)
	available := max(snapshot.MonthlyIncome-snapshot.MonthlyExpenses, 0)
	onTrack := roadmap.Feasible(schedule.RequiredMonthly, snapshot.MonthlyIncome, snapshot.MonthlyExpenses, liveFHI, minFHI)

	st := &Status{
		Goal:            g,
		Schedule:        schedule,
		MinFHI:          minFHI,
		AvailableToSave: available,
		OnTrack:         onTrack,
	}
	if !onTrack {
		if available <= 0 {
			st.Suggestions = append(st.Suggestions, SuggestOverspending)
		} else if schedule.RequiredMonthly > available {
			st.Suggestions = append(st.Suggestions, SuggestStretchGoal)
		}
		if liveFHI < minFHI {
			st.Suggestions = append(st.Suggestions, SuggestLowFHI)
		}
		if schedule.RequiredMonthly-available <= nearlyThereMargin {
			st.Suggestions = append(st.Suggestions, SuggestNearlyThere)
		}
	}
	return st, nil
}
