// Package roadmap turns a goal's date range and per-month contribution
// record into a savings schedule with rollover of missed months.
package roadmap

import (
	"errors"
	"time"

	"github.com/hi4requency/fynstra/internal/models"
)

var (
	// ErrInvalidDateRange is returned when the start date is not strictly
	// before the target date. No partial schedule is produced.
	ErrInvalidDateRange = errors.New("start date must be earlier than target date")

	// ErrEmptySchedule is returned when a valid range yields no grid
	// months. The month-stepping algorithm should never produce this once
	// the range is valid, but it is defended against.
	ErrEmptySchedule = errors.New("date range yields no schedule months")
)

// MonthKeyFormat is the canonical progress-map key layout.
const MonthKeyFormat = "2006-01"

// MonthKey returns the canonical "YYYY-MM" key for a date.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyFormat)
}

// Schedule is the computed savings plan for one goal. It is recomputed
// from the full goal state on every read; there is no cached derived
// state.
type Schedule struct {
	Months          []models.Date `json:"months"`
	TotalMonths     int           `json:"total_months"`
	BasePerMonth    float64       `json:"base_per_month"`
	CheckedCount    int           `json:"checked_count"`
	SavedAmount     float64       `json:"saved_amount"`
	Progress        float64       `json:"progress"`
	RemainingAmount float64       `json:"remaining_amount"`
	RequiredMonthly float64       `json:"required_monthly"`
	OpenSlots       int           `json:"open_slots"`
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthGrid generates the first-of-month dates from month(start) through
// month(target) inclusive, stepping one calendar month at a time.
func MonthGrid(start, target time.Time) ([]time.Time, error) {
	if !start.Before(target) {
		return nil, ErrInvalidDateRange
	}
	var months []time.Time
	last := monthStart(target)
	for m := monthStart(start); !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	if len(months) == 0 {
		return nil, ErrEmptySchedule
	}
	return months, nil
}

// Build computes the schedule for a goal. Progress maps month keys to a
// contribution-made flag; months absent from the map count as unchecked.
//
// The forward-looking requirement redistributes the remaining pool across
// the open slots after the last checked month in grid order. Skipping a
// month therefore does not inflate the very next month's quota; the
// shortfall is spread over whatever future slots are still open.
func Build(goalAmount float64, start, target time.Time, currentSavings float64, progress map[string]bool) (*Schedule, error) {
	months, err := MonthGrid(start, target)
	if err != nil {
		return nil, err
	}

	totalMonths := len(months)
	basePool := max(goalAmount-currentSavings, 0)
	basePerMonth := basePool / float64(totalMonths)

	lastChecked := -1
	checkedCount := 0
	for i, m := range months {
		if progress[MonthKey(m)] {
			checkedCount++
			lastChecked = i
		}
	}

	savedAmount := float64(checkedCount) * basePerMonth
	var frac float64
	if goalAmount > 0 {
		frac = min(savedAmount/goalAmount, 1.0)
	}
	remaining := max(basePool-savedAmount, 0)

	// Months strictly after the last checked one; with nothing checked,
	// every month is still ahead.
	future := months[lastChecked+1:]
	openSlots := 0
	for _, m := range future {
		if !progress[MonthKey(m)] {
			openSlots++
		}
	}

	var required float64
	if openSlots > 0 {
		required = remaining / float64(openSlots)
	}

	grid := make([]models.Date, totalMonths)
	for i, m := range months {
		grid[i] = models.Date{Time: m}
	}

	return &Schedule{
		Months:          grid,
		TotalMonths:     totalMonths,
		BasePerMonth:    basePerMonth,
		CheckedCount:    checkedCount,
		SavedAmount:     savedAmount,
		Progress:        frac,
		RemainingAmount: remaining,
		RequiredMonthly: required,
		OpenSlots:       openSlots,
	}, nil
}

// Feasible reports whether the forward-looking requirement fits the
// monthly surplus and the live FHI clears the goal's minimum.
func Feasible(requiredMonthly, monthlyIncome, monthlyExpenses, currentFHI, minFHI float64) bool {
	available := max(monthlyIncome-monthlyExpenses, 0)
	return requiredMonthly <= available && currentFHI >= minFHI
}
