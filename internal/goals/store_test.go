package goals

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hi4requency/fynstra/internal/models"
	"github.com/hi4requency/fynstra/internal/roadmap"
)

const owner int64 = 1

func newTestStore() *Store {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewStore(log)
}

func snapshot() models.FinancialSnapshot {
	return models.FinancialSnapshot{
		Age:             28,
		MonthlyIncome:   50000,
		MonthlyExpenses: 20000,
		MonthlySavings:  10000,
	}
}

func TestCreate_Defaults(t *testing.T) {
	s := newTestStore()
	g := s.Create(owner)

	assert.NotEmpty(t, g.ID)
	assert.Equal(t, owner, g.OwnerID)
	assert.Equal(t, "New Goal 1", g.Name)
	assert.Equal(t, DefaultEmoji, g.Emoji)
	assert.Equal(t, DefaultGoalAmount, g.GoalAmount)
	assert.Equal(t, g.StartDate, g.TargetDate)
	assert.True(t, g.UseRecommendedFHI)
	assert.Equal(t, DefaultMinFHI, g.MinFHI)
	assert.Empty(t, g.Progress)

	second := s.Create(owner)
	assert.Equal(t, "New Goal 2", second.Name)
	assert.NotEqual(t, g.ID, second.ID)
}

func TestCreate_NumbersGoalsPerOwner(t *testing.T) {
	s := newTestStore()
	s.Create(owner)
	s.Create(owner)

	other := s.Create(2)
	assert.Equal(t, "New Goal 1", other.Name)
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := newTestStore()
	g := s.Create(owner)

	got, err := s.Get(owner, g.ID)
	require.NoError(t, err)
	got.Progress["2025-01"] = true
	got.Name = "mutated"

	again, err := s.Get(owner, g.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Progress)
	assert.Equal(t, "New Goal 1", again.Name)
}

func TestGet_UnknownID(t *testing.T) {
	s := newTestStore()
	_, err := s.Get(owner, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGoalsAreScopedToOwner(t *testing.T) {
	s := newTestStore()
	mine := s.Create(owner)
	theirs := s.Create(2)

	list := s.List(owner)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	// Another user's goal is invisible to every operation.
	_, err := s.Get(owner, theirs.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	name := "hijacked"
	_, err = s.Apply(owner, theirs.ID, Update{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.SetMonth(owner, theirs.ID, "2025-02", true)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(owner, theirs.ID), ErrNotFound)

	// And untouched for its actual owner.
	kept, err := s.Get(2, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Goal 1", kept.Name)
}

func TestApply_UpdatesOnlyProvidedFields(t *testing.T) {
	s := newTestStore()
	g := s.Create(owner)

	name := "House Downpayment"
	amount := 250000.0
	start := models.NewDate(2025, 1, 15)
	target := models.NewDate(2025, 4, 10)
	manual := false
	minFHI := 65.0

	updated, err := s.Apply(owner, g.ID, Update{
		Name:              &name,
		GoalAmount:        &amount,
		StartDate:         &start,
		TargetDate:        &target,
		UseRecommendedFHI: &manual,
		MinFHI:            &minFHI,
	})
	require.NoError(t, err)

	assert.Equal(t, name, updated.Name)
	assert.Equal(t, amount, updated.GoalAmount)
	assert.Equal(t, start, updated.StartDate)
	assert.False(t, updated.UseRecommendedFHI)
	assert.Equal(t, minFHI, updated.MinFHI)
	// Untouched fields keep defaults.
	assert.Equal(t, DefaultEmoji, updated.Emoji)
}

func TestSetMonth(t *testing.T) {
	s := newTestStore()
	g := s.Create(owner)

	updated, err := s.SetMonth(owner, g.ID, "2025-02", true)
	require.NoError(t, err)
	assert.True(t, updated.Progress["2025-02"])

	updated, err = s.SetMonth(owner, g.ID, "2025-02", false)
	require.NoError(t, err)
	assert.False(t, updated.Progress["2025-02"])

	_, err = s.SetMonth(owner, g.ID, "February 2025", true)
	assert.Error(t, err)

	_, err = s.SetMonth(owner, "nope", "2025-02", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore()
	g := s.Create(owner)

	require.NoError(t, s.Delete(owner, g.ID))
	_, err := s.Get(owner, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(owner, g.ID), ErrNotFound)
}

func TestList_OrderedByCreation(t *testing.T) {
	s := newTestStore()
	first := s.Create(owner)
	second := s.Create(owner)
	third := s.Create(owner)

	list := s.List(owner)
	require.Len(t, list, 3)
	ids := []string{list[0].ID, list[1].ID, list[2].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
	assert.Contains(t, ids, third.ID)
}

func setDates(t *testing.T, s *Store, id string, amount float64, start, target models.Date) {
	t.Helper()
	_, err := s.Apply(owner, id, Update{GoalAmount: &amount, StartDate: &start, TargetDate: &target})
	require.NoError(t, err)
}

func TestRoadmap_InvalidRangeForFreshGoal(t *testing.T) {
	s := newTestStore()
	g := s.Create(owner)

	// start == target on creation, so the schedule is refused until the
	// user picks a later target date.
	_, err := s.Roadmap(owner, g.ID, 0)
	assert.ErrorIs(t, err, roadmap.ErrInvalidDateRange)
}

func TestStatus_OnTrack(t *testing.T) {
	s := newTestStore()
	g := s.Create(owner)
	setDates(t, s, g.ID, 1200, models.NewDate(2025, 1, 15), models.NewDate(2025, 4, 10))

	st, err := s.Status(owner, g.ID, snapshot(), 62.5, 0)
	require.NoError(t, err)

	assert.True(t, st.OnTrack)
	assert.Equal(t, 62.5, st.MinFHI) // recommended gate uses the live FHI
	assert.Equal(t, 30000.0, st.AvailableToSave)
	assert.Equal(t, 300.0, st.Schedule.RequiredMonthly)
	assert.Empty(t, st.Suggestions)
}

func TestStatus_StretchGoal(t *testing.T) {
	s := newTestStore()
	g := s.Create(owner)
	setDates(t, s, g.ID, 1e7, models.NewDate(2025, 1, 15), models.NewDate(2025, 4, 10))

	st, err := s.Status(owner, g.ID, snapshot(), 62.5, 0)
	require.NoError(t, err)

	assert.False(t, st.OnTrack)
	assert.Contains(t, st.Suggestions, SuggestStretchGoal)
	assert.NotContains(t, st.Suggestions, SuggestNearlyThere)
}

func TestStatus_LowFHIWithManualGate(t *testing.T) {
	s := newTestStore()
	g := s.Create(owner)
	setDates(t, s, g.ID, 1200, models.NewDate(2025, 1, 15), models.NewDate(2025, 4, 10))
	manual := false
	gate := 80.0
	_, err := s.Apply(owner, g.ID, Update{UseRecommendedFHI: &manual, MinFHI: &gate})
	require.NoError(t, err)

	st, err := s.Status(owner, g.ID, snapshot(), 62.5, 0)
	require.NoError(t, err)

	assert.False(t, st.OnTrack)
	assert.Equal(t, 80.0, st.MinFHI)
	assert.Contains(t, st.Suggestions, SuggestLowFHI)
	// The requirement itself fits the surplus, so the close-call hint
	// also applies.
	assert.Contains(t, st.Suggestions, SuggestNearlyThere)
}

func TestStatus_Overspending(t *testing.T) {
	s := newTestStore()
	g := s.Create(owner)
	setDates(t, s, g.ID, 1200, models.NewDate(2025, 1, 15), models.NewDate(2025, 4, 10))

	broke := snapshot()
	broke.MonthlyExpenses = broke.MonthlyIncome

	st, err := s.Status(owner, g.ID, broke, 62.5, 0)
	require.NoError(t, err)
	assert.False(t, st.OnTrack)
	assert.Contains(t, st.Suggestions, SuggestOverspending)
}

func TestStatus_GoalsAreJudgedIndependently(t *testing.T) {
	// Known gap: two goals can both be on track while jointly exceeding
	// the monthly surplus. The store does not reconcile across goals.
	s := newTestStore()
	a := s.Create(owner)
	b := s.Create(owner)
	setDates(t, s, a.ID, 80000, models.NewDate(2025, 1, 15), models.NewDate(2025, 4, 10))
	setDates(t, s, b.ID, 80000, models.NewDate(2025, 1, 15), models.NewDate(2025, 4, 10))

	stA, err := s.Status(owner, a.ID, snapshot(), 62.5, 0)
	require.NoError(t, err)
	stB, err := s.Status(owner, b.ID, snapshot(), 62.5, 0)
	require.NoError(t, err)

	assert.True(t, stA.OnTrack)
	assert.True(t, stB.OnTrack)
	assert.Greater(t, stA.Schedule.RequiredMonthly+stB.Schedule.RequiredMonthly, stA.AvailableToSave)
}
