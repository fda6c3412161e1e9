package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
)

// LotRepository provides data access methods for the holding table.
// The table is an append-only ledger of purchase lots: rows are write-once
// and there are deliberately no update or delete operations.
type LotRepository struct {
	db *sql.DB
}

// NewLotRepository creates a new LotRepository with the provided database connection.
func NewLotRepository(db *sql.DB) *LotRepository {
	return &LotRepository{db: db}
}

// AddLot appends a new immutable lot to a portfolio's ledger.
func (r *LotRepository) AddLot(lot model.Lot) error {
	query := `
		INSERT INTO holding (id, portfolio_id, symbol, quantity, purchase_price, purchase_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		lot.ID,
		lot.PortfolioID,
		lot.Symbol,
		lot.Quantity,
		lot.PurchasePrice,
		lot.PurchaseDate.UTC().Format("2006-01-02"),
		lot.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert holding: %w", err)
	}

	return nil
}

// GetLotsByPortfolioID retrieves all lots for a portfolio in insertion order.
// Returns an empty slice when the portfolio has no lots (not an error).
func (r *LotRepository) GetLotsByPortfolioID(portfolioID string) ([]model.Lot, error) {
	query := `
		SELECT id, portfolio_id, symbol, quantity, purchase_price, purchase_date, created_at
		FROM holding
		WHERE portfolio_id = ?
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	lots := []model.Lot{}

	for rows.Next() {
		var l model.Lot
		var purchaseDate string
		var createdAt time.Time

		err := rows.Scan(
			&l.ID,
			&l.PortfolioID,
			&l.Symbol,
			&l.Quantity,
			&l.PurchasePrice,
			&purchaseDate,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding table results: %w", err)
		}

		l.PurchaseDate, err = ParseTime(purchaseDate)
		if err != nil {
			return nil, err
		}
		l.CreatedAt = createdAt.UTC()

		lots = append(lots, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return lots, nil
}

// GetAllSymbols returns the distinct symbols present across all ledgers.
// Used by the background refresh job to know which quotes to keep warm.
func (r *LotRepository) GetAllSymbols() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT symbol FROM holding ORDER BY symbol")
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan holding table results: %w", err)
		}
		symbols = append(symbols, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return symbols, nil
}
