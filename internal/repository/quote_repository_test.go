package repository_test

import (
	"testing"
	"time"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/repository"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/testutil"
)

// TestQuoteRepository_UpsertQuotes tests the durable price cache writes.
//
// WHY: The cache holds exactly one row per symbol with last-write-wins
// semantics; a refresh must replace stale prices, never duplicate rows.
func TestQuoteRepository_UpsertQuotes(t *testing.T) {
	newQuote := func(symbol string, price float64) model.Quote {
		return model.Quote{
			Symbol:        symbol,
			Price:         price,
			Change:        1.0,
			ChangePercent: "1.0%",
			Volume:        1000,
			LastUpdated:   time.Now().UTC(),
		}
	}

	t.Run("inserts new symbols", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewQuoteRepository(db)

		// Execute
		err := repo.UpsertQuotes(map[string]model.Quote{
			"AAPL": newQuote("AAPL", 150),
			"MSFT": newQuote("MSFT", 300),
		})

		// Assert
		if err != nil {
			t.Fatalf("UpsertQuotes() returned unexpected error: %v", err)
		}

		quotes, err := repo.GetQuotes([]string{"AAPL", "MSFT"})
		if err != nil {
			t.Fatalf("GetQuotes() returned unexpected error: %v", err)
		}
		if len(quotes) != 2 {
			t.Errorf("Expected 2 cached quotes, got %d", len(quotes))
		}
	})

	t.Run("last write wins per symbol", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewQuoteRepository(db)

		if err := repo.UpsertQuotes(map[string]model.Quote{"AAPL": newQuote("AAPL", 150)}); err != nil {
			t.Fatalf("UpsertQuotes() returned unexpected error: %v", err)
		}

		// Execute
		if err := repo.UpsertQuotes(map[string]model.Quote{"AAPL": newQuote("AAPL", 175)}); err != nil {
			t.Fatalf("UpsertQuotes() returned unexpected error: %v", err)
		}

		// Assert
		quotes, err := repo.GetQuotes([]string{"AAPL"})
		if err != nil {
			t.Fatalf("GetQuotes() returned unexpected error: %v", err)
		}
		if quotes["AAPL"].Price != 175 {
			t.Errorf("Expected price 175 after overwrite, got %v", quotes["AAPL"].Price)
		}

		symbols, err := repo.GetCachedSymbols()
		if err != nil {
			t.Fatalf("GetCachedSymbols() returned unexpected error: %v", err)
		}
		if len(symbols) != 1 {
			t.Errorf("Expected a single row for the symbol, got %d", len(symbols))
		}
	})

	t.Run("leaves other symbols untouched", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewQuoteRepository(db)

		if err := repo.UpsertQuotes(map[string]model.Quote{
			"AAPL": newQuote("AAPL", 150),
			"MSFT": newQuote("MSFT", 300),
		}); err != nil {
			t.Fatalf("UpsertQuotes() returned unexpected error: %v", err)
		}

		// Execute: refresh only AAPL
		if err := repo.UpsertQuotes(map[string]model.Quote{"AAPL": newQuote("AAPL", 160)}); err != nil {
			t.Fatalf("UpsertQuotes() returned unexpected error: %v", err)
		}

		// Assert
		quotes, err := repo.GetQuotes([]string{"AAPL", "MSFT"})
		if err != nil {
			t.Fatalf("GetQuotes() returned unexpected error: %v", err)
		}
		if quotes["MSFT"].Price != 300 {
			t.Errorf("Expected MSFT untouched at 300, got %v", quotes["MSFT"].Price)
		}
	})

	t.Run("accepts an empty map as a no-op", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewQuoteRepository(db)

		// Execute
		if err := repo.UpsertQuotes(nil); err != nil {
			t.Fatalf("UpsertQuotes(nil) returned unexpected error: %v", err)
		}
	})
}

// TestQuoteRepository_GetQuotes tests cache reads.
//
// WHY: A cache miss must surface as an absent key, not as a synthesized
// entry; the pricing policy for misses lives in the valuation layer.
func TestQuoteRepository_GetQuotes(t *testing.T) {
	t.Run("returns only cached symbols", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewQuoteRepository(db)
		testutil.CreateQuote(t, db, "AAPL", 150)

		// Execute
		quotes, err := repo.GetQuotes([]string{"AAPL", "MSFT"})

		// Assert
		if err != nil {
			t.Fatalf("GetQuotes() returned unexpected error: %v", err)
		}
		if len(quotes) != 1 {
			t.Fatalf("Expected 1 quote, got %d", len(quotes))
		}
		if _, ok := quotes["MSFT"]; ok {
			t.Error("Uncached symbol must be absent from the result")
		}
	})

	t.Run("returns an empty map for no symbols", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewQuoteRepository(db)

		// Execute
		quotes, err := repo.GetQuotes(nil)

		// Assert
		if err != nil {
			t.Fatalf("GetQuotes() returned unexpected error: %v", err)
		}
		if len(quotes) != 0 {
			t.Errorf("Expected empty map, got %v", quotes)
		}
	})
}
