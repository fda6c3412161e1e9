package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
)

// QuoteRepository provides data access methods for the market_data table,
// the durable price cache. One row per symbol, last write wins. The cache
// never self-evicts: staleness is visible through last_updated and refresh
// is always caller-driven.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new QuoteRepository with the provided database connection.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// GetQuotes retrieves cached quotes for the given symbols.
// Only symbols with a cached entry appear in the result; no entry is
// synthesized for a cache miss.
func (r *QuoteRepository) GetQuotes(symbols []string) (map[string]model.Quote, error) {
	results := make(map[string]model.Quote)
	if len(symbols) == 0 {
		return results, nil
	}

	placeholders := make([]string, len(symbols))
	args := make([]any, len(symbols))
	for i, s := range symbols {
		placeholders[i] = "?"
		args[i] = s
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT symbol, price, change, change_percent, volume, last_updated
		FROM market_data
		WHERE symbol IN (` + strings.Join(placeholders, ",") + `)
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query market_data table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q model.Quote
		var lastUpdated time.Time

		err := rows.Scan(
			&q.Symbol,
			&q.Price,
			&q.Change,
			&q.ChangePercent,
			&q.Volume,
			&lastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan market_data table results: %w", err)
		}

		q.LastUpdated = lastUpdated.UTC()
		results[q.Symbol] = q
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market_data table: %w", err)
	}

	return results, nil
}

// UpsertQuotes replaces the cached entries for the given quotes in a single
// transaction, upserting by symbol. Entries for symbols not in the map are
// left untouched.
func (r *QuoteRepository) UpsertQuotes(quotes map[string]model.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin market_data transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT INTO market_data (symbol, price, change, change_percent, volume, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			price = excluded.price,
			change = excluded.change,
			change_percent = excluded.change_percent,
			volume = excluded.volume,
			last_updated = excluded.last_updated
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare market_data upsert: %w", err)
	}
	defer stmt.Close()

	for _, q := range quotes {
		_, err := stmt.Exec(
			q.Symbol,
			q.Price,
			q.Change,
			q.ChangePercent,
			q.Volume,
			q.LastUpdated.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert quote for %s: %w", q.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit market_data transaction: %w", err)
	}

	return nil
}

// GetCachedSymbols returns every symbol currently present in the cache.
func (r *QuoteRepository) GetCachedSymbols() ([]string, error) {
	rows, err := r.db.Query("SELECT symbol FROM market_data ORDER BY symbol")
	if err != nil {
		return nil, fmt.Errorf("failed to query market_data table: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan market_data table results: %w", err)
		}
		symbols = append(symbols, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market_data table: %w", err)
	}

	return symbols, nil
}
