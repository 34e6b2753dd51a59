package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/hi4requency/fynstra/internal/config"
	"github.com/hi4requency/fynstra/internal/fhi"
	"github.com/hi4requency/fynstra/internal/goals"
	"github.com/hi4requency/fynstra/internal/integrations/peerstats"
	"github.com/hi4requency/fynstra/internal/integrations/sheets"
	"github.com/hi4requency/fynstra/internal/middleware"
	"github.com/hi4requency/fynstra/internal/models"
	"github.com/hi4requency/fynstra/internal/repository"
	"github.com/hi4requency/fynstra/internal/scenario"
)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	goals  *goals.Store
	peers  *peerstats.Client
	sheets *sheets.Client
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, goalStore *goals.Store, peers *peerstats.Client,
	sheetSync *sheets.Client, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		goals:  goalStore,
		peers:  peers,
		sheets: sheetSync,
		log:    log,
		config: cfg,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// userID extracts the authenticated user id from the request context.
func userID(ctx context.Context) (int64, error) {
	idStr, ok := middleware.UserIDFrom(ctx)
	if !ok || idStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return id, nil
}

// HealthCheck is the outcome of one FHI computation for a user.
type HealthCheck struct {
	Result          *models.FHIResult    `json:"result"`
	Verdict         string               `json:"verdict"`
	WeakAreas       []string             `json:"weak_areas,omitempty"`
	Breakdown       fhi.Breakdown        `json:"breakdown"`
	Interpretations []fhi.Interpretation `json:"interpretations"`
	Peers           peerstats.Comparison `json:"peers"`
	MissingFields   []string             `json:"missing_fields,omitempty"`
}

// CheckFinancialHealth scores a snapshot, persists it for the user and
// mirrors it to the spreadsheet sink.
func (s *Service) CheckFinancialHealth(ctx context.Context, snapshot models.FinancialSnapshot) (*HealthCheck, error) {
	id, err := userID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := fhi.Calculate(snapshot)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveSnapshot(id, snapshot); err != nil {
		return nil, err
	}
	if err := s.sheets.SaveSnapshot(ctx, id, snapshot, result.FHI); err != nil {
		// The sheet is a mirror, not the source of truth.
		s.log.Warnf("Sheet sync failed for user %d: %v", id, err)
	}

	s.log.Infof("FHI computed for user %d: %.2f", id, result.FHI)
	return &HealthCheck{
		Result:          result,
		Verdict:         fhi.Verdict(result.FHI),
		WeakAreas:       fhi.WeakAreas(result.Components),
		Breakdown:       fhi.Explain(result.Components),
		Interpretations: fhi.InterpretAll(result.Components),
		Peers:           s.peers.Compare(snapshot.Age, result),
		MissingFields:   snapshot.MissingFields(),
	}, nil
}

// Snapshot loads the caller's stored snapshot.
func (s *Service) Snapshot(ctx context.Context) (models.FinancialSnapshot, error) {
	id, err := userID(ctx)
	if err != nil {
		return models.FinancialSnapshot{}, err
	}
	return s.repo.LoadSnapshot(id)
}

// SaveSnapshot stores the caller's snapshot without scoring it.
func (s *Service) SaveSnapshot(ctx context.Context, snapshot models.FinancialSnapshot) error {
	id, err := userID(ctx)
	if err != nil {
		return err
	}
	return s.repo.SaveSnapshot(id, snapshot)
}

// RunScenario applies a delta to the caller's stored snapshot and returns
// the baseline/scenario comparison. A preset key may stand in for an
// explicit delta.
func (s *Service) RunScenario(ctx context.Context, presetKey string, delta scenario.Delta) (*scenario.Comparison, error) {
	id, err := userID(ctx)
	if err != nil {
		return nil, err
	}

	base, err := s.repo.LoadSnapshot(id)
	if err != nil {
		return nil, err
	}

	if presetKey != "" {
		preset, ok := scenario.PresetByKey(presetKey)
		if !ok {
			return nil, fmt.Errorf("unknown scenario preset: %s", presetKey)
		}
		delta = preset.Delta
	}

	return scenario.Run(base, delta, 2)
}

// GoalStatus evaluates one goal against the caller's live data. A user
// without a scoreable snapshot is refused so the client can prompt for
// the FHI form first.
func (s *Service) GoalStatus(ctx context.Context, goalID string) (*goals.Status, error) {
	id, err := userID(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.repo.LoadSnapshot(id)
	if err != nil {
		return nil, err
	}

	result, err := fhi.Calculate(snapshot)
	if err != nil {
		return nil, err
	}

	return s.goals.Status(id, goalID, snapshot, result.FHI, snapshot.MonthlySavings)
}

// CreateGoal adds a default goal owned by the caller.
func (s *Service) CreateGoal(ctx context.Context) (*models.Goal, error) {
	id, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	return s.goals.Create(id), nil
}

// ListGoals returns the caller's goals.
func (s *Service) ListGoals(ctx context.Context) ([]*models.Goal, error) {
	id, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	return s.goals.List(id), nil
}

// Goal returns one of the caller's goals.
func (s *Service) Goal(ctx context.Context, goalID string) (*models.Goal, error) {
	id, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	return s.goals.Get(id, goalID)
}

// UpdateGoal applies an update to one of the caller's goals.
func (s *Service) UpdateGoal(ctx context.Context, goalID string, u goals.Update) (*models.Goal, error) {
	id, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	return s.goals.Apply(id, goalID, u)
}

// DeleteGoal removes one of the caller's goals.
func (s *Service) DeleteGoal(ctx context.Context, goalID string) error {
	id, err := userID(ctx)
	if err != nil {
		return err
	}
	return s.goals.Delete(id, goalID)
}

// SetGoalMonth toggles a roadmap month on one of the caller's goals.
func (s *Service) SetGoalMonth(ctx context.Context, goalID, monthKey string, checked bool) (*models.Goal, error) {
	id, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	return s.goals.SetMonth(id, goalID, monthKey, checked)
}
