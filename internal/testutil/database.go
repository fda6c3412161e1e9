package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Users table
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			username VARCHAR(100) NOT NULL UNIQUE,
			password_hash VARCHAR(100) NOT NULL,
			risk_profile VARCHAR(20) NOT NULL,
			created_at DATETIME NOT NULL
		);

		-- Portfolio table
		CREATE TABLE IF NOT EXISTS portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			name VARCHAR(100) NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		);

		-- Holding ledger (append-only purchase lots)
		CREATE TABLE IF NOT EXISTS holding (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			symbol VARCHAR(10) NOT NULL,
			quantity REAL NOT NULL,
			purchase_price REAL NOT NULL,
			purchase_date DATE NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE
		);

		-- Quote cache, one row per symbol
		CREATE TABLE IF NOT EXISTS market_data (
			symbol VARCHAR(10) NOT NULL PRIMARY KEY,
			price REAL NOT NULL,
			change REAL NOT NULL,
			change_percent VARCHAR(20) NOT NULL,
			volume INTEGER NOT NULL,
			last_updated DATETIME NOT NULL
		);

		-- System settings key/value store
		CREATE TABLE IF NOT EXISTS system_setting (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			"key" VARCHAR(100) NOT NULL UNIQUE,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_portfolio_user ON portfolio(user_id);
		CREATE INDEX IF NOT EXISTS idx_holding_portfolio ON holding(portfolio_id);
		CREATE INDEX IF NOT EXISTS idx_holding_symbol ON holding(symbol);
	`

	_, err := db.Exec(schema)
	return err
}
