package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/apperrors"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
)

// UserRepository provides data access methods for the users table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user row. The caller is responsible for hashing
// the password before it reaches this layer.
func (r *UserRepository) CreateUser(user model.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, risk_profile, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		user.ID,
		user.Username,
		user.PasswordHash,
		string(user.RiskProfile),
		user.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves a user by username, including the password hash
// for credential verification.
func (r *UserRepository) GetUserByUsername(username string) (model.User, error) {
	query := `
		SELECT id, username, password_hash, risk_profile, created_at
		FROM users
		WHERE username = ?
	`

	var u model.User
	var profile string
	var createdAt time.Time

	err := r.db.QueryRow(query, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&profile,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query users table: %w", err)
	}

	u.RiskProfile = model.RiskProfile(profile)
	u.CreatedAt = createdAt.UTC()

	return u, nil
}

// GetUserOnID retrieves a user by its ID.
func (r *UserRepository) GetUserOnID(userID string) (model.User, error) {
	query := `
		SELECT id, username, password_hash, risk_profile, created_at
		FROM users
		WHERE id = ?
	`

	var u model.User
	var profile string
	var createdAt time.Time

	err := r.db.QueryRow(query, userID).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&profile,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query users table: %w", err)
	}

	u.RiskProfile = model.RiskProfile(profile)
	u.CreatedAt = createdAt.UTC()

	return u, nil
}

// UsernameExists reports whether a user with the given username already exists.
func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query users table: %w", err)
	}
	return count > 0, nil
}
