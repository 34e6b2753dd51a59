package service

import (
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hi4requency/fynstra/internal/config"
	"github.com/hi4requency/fynstra/internal/fhi"
	"github.com/hi4requency/fynstra/internal/goals"
	"github.com/hi4requency/fynstra/internal/integrations/peerstats"
	"github.com/hi4requency/fynstra/internal/integrations/sheets"
	"github.com/hi4requency/fynstra/internal/middleware"
	"github.com/hi4requency/fynstra/internal/models"
	"github.com/hi4requency/fynstra/internal/repository"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{JWTSecret: "test-secret"}

	svc := NewService(repository.NewRepository(db), goals.NewStore(log),
		peerstats.NewClient(cfg, log), sheets.NewClient(cfg, log), log, cfg)
	return svc, mock
}

func authedCtx(id string) context.Context {
	return middleware.WithUserID(context.Background(), id)
}

func expectSnapshot(mock sqlmock.Sqlmock, s models.FinancialSnapshot) {
	rows := sqlmock.NewRows([]string{
		"age", "monthly_income", "monthly_expenses", "monthly_savings",
		"monthly_debt", "total_investments", "net_worth", "emergency_fund",
	}).AddRow(s.Age, s.MonthlyIncome, s.MonthlyExpenses, s.MonthlySavings,
		s.MonthlyDebt, s.TotalInvestments, s.NetWorth, s.EmergencyFund)
	mock.ExpectQuery("SELECT age, monthly_income").WillReturnRows(rows)
}

func TestGoalStatus_RefusedWithoutSnapshot(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := authedCtx("1")

	g, err := svc.CreateGoal(ctx)
	require.NoError(t, err)

	// A user who never filled the FHI form has no snapshot row; the store
	// returns a zero snapshot and scoring must refuse it.
	mock.ExpectQuery("SELECT age, monthly_income").WillReturnError(sql.ErrNoRows)

	_, err = svc.GoalStatus(ctx, g.ID)
	assert.ErrorIs(t, err, fhi.ErrMissingRequiredInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalStatus_UsesLiveFHI(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := authedCtx("1")

	g, err := svc.CreateGoal(ctx)
	require.NoError(t, err)

	amount := 1200.0
	start := models.NewDate(2025, 1, 15)
	target := models.NewDate(2025, 4, 10)
	_, err = svc.UpdateGoal(ctx, g.ID, goals.Update{
		GoalAmount: &amount, StartDate: &start, TargetDate: &target,
	})
	require.NoError(t, err)

	expectSnapshot(mock, models.FinancialSnapshot{
		Age:              28,
		MonthlyIncome:    50000,
		MonthlyExpenses:  20000,
		MonthlySavings:   10000,
		MonthlyDebt:      5000,
		TotalInvestments: 60000,
		NetWorth:         200000,
		EmergencyFund:    80000,
	})

	st, err := svc.GoalStatus(ctx, g.ID)
	require.NoError(t, err)

	assert.True(t, st.OnTrack)
	assert.InDelta(t, 48.25, st.MinFHI, 0.01) // recommended gate is the live FHI
	assert.Equal(t, 300.0, st.Schedule.RequiredMonthly)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoals_ScopedToAuthenticatedUser(t *testing.T) {
	svc, _ := newTestService(t)

	mine, err := svc.CreateGoal(authedCtx("1"))
	require.NoError(t, err)

	// A second user cannot see or touch the first user's goal.
	other := authedCtx("2")
	list, err := svc.ListGoals(other)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Goal(other, mine.ID)
	assert.ErrorIs(t, err, goals.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteGoal(other, mine.ID), goals.ErrNotFound)

	kept, err := svc.Goal(authedCtx("1"), mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, kept.ID)
}

func TestUserID_RequiresAuthContext(t *testing.T) {
	_, err := userID(context.Background())
	assert.Error(t, err)
}
