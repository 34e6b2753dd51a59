package repository

import (
	"database/sql"
	"fmt"

	"github.com/hi4requency/fynstra/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO fynstra.users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM fynstra.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM fynstra.users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SaveSnapshot upserts the user's financial snapshot
func (r *Repository) SaveSnapshot(userID int64, s models.FinancialSnapshot) error {
	query := `
		INSERT INTO fynstra.snapshots (
			user_id, age, monthly_income, monthly_expenses, monthly_savings,
			monthly_debt, total_investments, net_worth, emergency_fund, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE SET
			age = EXCLUDED.age,
			monthly_income = EXCLUDED.monthly_income,
			monthly_expenses = EXCLUDED.monthly_expenses,
			monthly_savings = EXCLUDED.monthly_savings,
			monthly_debt = EXCLUDED.monthly_debt,
			total_investments = EXCLUDED.total_investments,
			net_worth = EXCLUDED.net_worth,
			emergency_fund = EXCLUDED.emergency_fund,
			updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.Exec(query, userID, s.Age, s.MonthlyIncome, s.MonthlyExpenses,
		s.MonthlySavings, s.MonthlyDebt, s.TotalInvestments, s.NetWorth, s.EmergencyFund); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot retrieves the user's financial snapshot. Missing fields
// come back as zero; a user without a saved snapshot gets a zero value.
func (r *Repository) LoadSnapshot(userID int64) (models.FinancialSnapshot, error) {
	var s models.FinancialSnapshot
	query := `
		SELECT age, monthly_income, monthly_expenses, monthly_savings,
		       monthly_debt, total_investments, net_worth, emergency_fund
		FROM fynstra.snapshots
		WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).
		Scan(&s.Age, &s.MonthlyIncome, &s.MonthlyExpenses, &s.MonthlySavings,
			&s.MonthlyDebt, &s.TotalInvestments, &s.NetWorth, &s.EmergencyFund)
	if err == sql.ErrNoRows {
		return models.FinancialSnapshot{}, nil
	}
	if err != nil {
		return models.FinancialSnapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return s, nil
}

// ListUsersWithSnapshots returns every user that has a saved snapshot,
// for the monthly reminder job.
func (r *Repository) ListUsersWithSnapshots() ([]*models.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.created_at, u.updated_at
		FROM fynstra.users u
		JOIN fynstra.snapshots s ON s.user_id = u.id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
