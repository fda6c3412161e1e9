package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/apperrors"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// CreatePortfolio inserts a new portfolio row.
func (r *PortfolioRepository) CreatePortfolio(p model.Portfolio) error {
	query := `
		INSERT INTO portfolio (id, user_id, name, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, p.ID, p.UserID, p.Name, p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return nil
}

// GetPortfolioOnID retrieves a single portfolio by its ID.
func (r *PortfolioRepository) GetPortfolioOnID(portfolioID string) (model.Portfolio, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM portfolio
		WHERE id = ?
	`

	var p model.Portfolio
	var createdAt time.Time

	err := r.db.QueryRow(query, portfolioID).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio table: %w", err)
	}

	p.CreatedAt = createdAt.UTC()

	return p, nil
}

// GetPortfoliosByUserID retrieves all portfolios owned by a user.
// Returns an empty slice if the user owns no portfolios (not an error).
func (r *PortfolioRepository) GetPortfoliosByUserID(userID string) ([]model.Portfolio, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM portfolio
		WHERE user_id = ?
		ORDER BY created_at
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		var p model.Portfolio
		var createdAt time.Time

		err := rows.Scan(&p.ID, &p.UserID, &p.Name, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}

		p.CreatedAt = createdAt.UTC()
		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}
