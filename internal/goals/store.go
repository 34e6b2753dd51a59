// Package goals owns the collection of savings goals and their schedules.
package goals

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hi4requency/fynstra/internal/models"
	"github.com/hi4requency/fynstra/internal/roadmap"
)

// ErrNotFound is returned when a goal id is unknown to the store or the
// goal belongs to another user.
var ErrNotFound = errors.New("goal not found")

// Defaults for a freshly created goal.
const (
	DefaultGoalAmount = 1000.0
	DefaultEmoji      = "🎯"
	DefaultMinFHI     = 50.0
)

// Store keeps goals in memory keyed by id, each owned by one user. Every
// operation is scoped to an owner; a goal is invisible outside its owner.
// Goals are independent of each other: feasibility is judged per goal, and
// the combined commitment across goals is never reconciled against the
// single savings surplus.
type Store struct {
	mu    sync.RWMutex
	goals map[string]*models.Goal
	log   *logrus.Logger
}

// NewStore initializes an empty goal store
func NewStore(log *logrus.Logger) *Store {
	return &Store{
		goals: make(map[string]*models.Goal),
		log:   log,
	}
}

// Create adds a goal for the owner with default field values and an empty
// progress map, and returns a copy of it.
func (s *Store) Create(owner int64) *models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, g := range s.goals {
		if g.OwnerID == owner {
			count++
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	today := models.Today()
	g := &models.Goal{
		ID:                uuid.NewString(),
		OwnerID:           owner,
		Name:              fmt.Sprintf("New Goal %d", count+1),
		Emoji:             DefaultEmoji,
		GoalAmount:        DefaultGoalAmount,
		StartDate:         today,
		TargetDate:        today,
		UseRecommendedFHI: true,
		MinFHI:            DefaultMinFHI,
		Progress:          make(map[string]bool),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.goals[g.ID] = g

	s.log.Infof("Goal created: %s (user %d)", g.ID, owner)
	return g.Clone()
}

// get returns the live goal when it exists and belongs to the owner.
// Callers must hold the lock.
func (s *Store) get(owner int64, id string) (*models.Goal, error) {
	g, ok := s.goals[id]
	if !ok || g.OwnerID != owner {
		return nil, ErrNotFound
	}
	return g, nil
}

// Get returns a copy of the owner's goal with the given id.
func (s *Store) Get(owner int64, id string) (*models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.get(owner, id)
	if err != nil {
		return nil, err
	}
	return g.Clone(), nil
}

// List returns copies of the owner's goals ordered by creation time,
// oldest first.
func (s *Store) List(owner int64) []*models.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Goal
	for _, g := range s.goals {
		if g.OwnerID == owner {
			out = append(out, g.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt == out[j].CreatedAt {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out
}

// Update is the set of goal fields the user can edit in place.
type Update struct {
	Name              *string      `json:"name"`
	Emoji             *string      `json:"emoji"`
	GoalAmount        *float64     `json:"goal_amount"`
	StartDate         *models.Date `json:"start_date"`
	TargetDate        *models.Date `json:"target_date"`
	UseRecommendedFHI *bool        `json:"use_recommended_fhi"`
	MinFHI            *float64     `json:"min_fhi"`
}

// Apply mutates the stored goal with the non-nil fields of the update and
// returns a copy of the result.
func (s *Store) Apply(owner int64, id string, u Update) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.get(owner, id)
	if err != nil {
		return nil, err
	}

	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.Emoji != nil {
		g.Emoji = *u.Emoji
	}
	if u.GoalAmount != nil {
		g.GoalAmount = *u.GoalAmount
	}
	if u.StartDate != nil {
		g.StartDate = *u.StartDate
	}
	if u.TargetDate != nil {
		g.TargetDate = *u.TargetDate
	}
	if u.UseRecommendedFHI != nil {
		g.UseRecommendedFHI = *u.UseRecommendedFHI
	}
	if u.MinFHI != nil {
		g.MinFHI = *u.MinFHI
	}
	g.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	return g.Clone(), nil
}

// SetMonth marks a roadmap month as contributed or not. The key must use
// the canonical "YYYY-MM" layout.
func (s *Store) SetMonth(owner int64, id, monthKey string, checked bool) (*models.Goal, error) {
	if _, err := time.Parse(roadmap.MonthKeyFormat, monthKey); err != nil {
		return nil, fmt.Errorf("invalid month key %q: %w", monthKey, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.get(owner, id)
	if err != nil {
		return nil, err
	}
	g.Progress[monthKey] = checked
	g.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	return g.Clone(), nil
}

// Delete removes the owner's goal from the store.
func (s *Store) Delete(owner int64, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.get(owner, id); err != nil {
		return err
	}
	delete(s.goals, id)

	s.log.Infof("Goal deleted: %s (user %d)", id, owner)
	return nil
}

// Roadmap recomputes the goal's schedule from its full state. Nothing is
// cached between calls.
func (s *Store) Roadmap(owner int64, id string, currentSavings float64) (*roadmap.Schedule, error) {
	g, err := s.Get(owner, id)
	if err != nil {
		return nil, err
	}
	return roadmap.Build(g.GoalAmount, g.StartDate.Time, g.TargetDate.Time, currentSavings, g.Progress)
}
