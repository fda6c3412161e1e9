package testutil

import (
	"database/sql"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
)

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, db)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithUsername("alice").
//	    WithPassword("s3cret").
//	    WithRiskProfile(model.RiskProfileConservative).
//	    Build(t, db)
type UserBuilder struct {
	ID          string
	Username    string
	Password    string
	RiskProfile model.RiskProfile
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:          MakeID(),
		Username:    MakeUsername("testuser"),
		Password:    "password123",
		RiskProfile: model.RiskProfileModerate,
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithUsername sets a custom username.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

// WithPassword sets the plaintext password to hash and store.
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.Password = password
	return b
}

// WithRiskProfile sets a custom risk profile.
func (b *UserBuilder) WithRiskProfile(profile model.RiskProfile) *UserBuilder {
	b.RiskProfile = profile
	return b
}

// Build creates the user in the database and returns it.
// The password is bcrypt-hashed at MinCost to keep tests fast.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(b.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	createdAt := time.Now().UTC()

	query := `
		INSERT INTO users (id, username, password_hash, risk_profile, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = db.Exec(query, b.ID, b.Username, string(hash), string(b.RiskProfile), createdAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:           b.ID,
		Username:     b.Username,
		PasswordHash: string(hash),
		RiskProfile:  b.RiskProfile,
		CreatedAt:    createdAt,
	}
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	portfolio := testutil.NewPortfolio(user.ID).
//	    WithName("Retirement").
//	    Build(t, db)
type PortfolioBuilder struct {
	ID     string
	UserID string
	Name   string
}

// NewPortfolio creates a PortfolioBuilder owned by the given user.
func NewPortfolio(userID string) *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:     MakeID(),
		UserID: userID,
		Name:   MakePortfolioName("Test Portfolio"),
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	createdAt := time.Now().UTC()

	query := `
		INSERT INTO portfolio (id, user_id, name, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.UserID, b.Name, createdAt)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:        b.ID,
		UserID:    b.UserID,
		Name:      b.Name,
		CreatedAt: createdAt,
	}
}

// LotBuilder provides a fluent interface for creating test purchase lots.
//
// Example usage:
//
//	lot := testutil.NewLot(portfolio.ID).
//	    WithSymbol("AAPL").
//	    WithQuantity(10).
//	    WithPurchasePrice(100).
//	    Build(t, db)
type LotBuilder struct {
	ID            string
	PortfolioID   string
	Symbol        string
	Quantity      float64
	PurchasePrice float64
	PurchaseDate  time.Time
}

// NewLot creates a LotBuilder with sensible defaults for the given portfolio.
func NewLot(portfolioID string) *LotBuilder {
	return &LotBuilder{
		ID:            MakeID(),
		PortfolioID:   portfolioID,
		Symbol:        "AAPL",
		Quantity:      10,
		PurchasePrice: 100,
		PurchaseDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

// WithSymbol sets a custom symbol.
func (b *LotBuilder) WithSymbol(symbol string) *LotBuilder {
	b.Symbol = symbol
	return b
}

// WithQuantity sets a custom quantity.
func (b *LotBuilder) WithQuantity(quantity float64) *LotBuilder {
	b.Quantity = quantity
	return b
}

// WithPurchasePrice sets a custom purchase price.
func (b *LotBuilder) WithPurchasePrice(price float64) *LotBuilder {
	b.PurchasePrice = price
	return b
}

// WithPurchaseDate sets a custom purchase date.
func (b *LotBuilder) WithPurchaseDate(date time.Time) *LotBuilder {
	b.PurchaseDate = date
	return b
}

// Build creates the lot in the database and returns it.
func (b *LotBuilder) Build(t *testing.T, db *sql.DB) model.Lot {
	t.Helper()

	createdAt := time.Now().UTC()

	query := `
		INSERT INTO holding (id, portfolio_id, symbol, quantity, purchase_price, purchase_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.PortfolioID,
		b.Symbol,
		b.Quantity,
		b.PurchasePrice,
		b.PurchaseDate.UTC().Format("2006-01-02"),
		createdAt,
	)
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}

	return model.Lot{
		ID:            b.ID,
		PortfolioID:   b.PortfolioID,
		Symbol:        b.Symbol,
		Quantity:      b.Quantity,
		PurchasePrice: b.PurchasePrice,
		PurchaseDate:  b.PurchaseDate.UTC(),
		CreatedAt:     createdAt,
	}
}

// QuoteBuilder provides a fluent interface for seeding the quote cache.
//
// Example usage:
//
//	testutil.NewQuote("AAPL").WithPrice(150).Build(t, db)
type QuoteBuilder struct {
	Symbol        string
	Price         float64
	Change        float64
	ChangePercent string
	Volume        int64
}

// NewQuote creates a QuoteBuilder with sensible defaults for the given symbol.
func NewQuote(symbol string) *QuoteBuilder {
	return &QuoteBuilder{
		Symbol:        symbol,
		Price:         100,
		Change:        1.5,
		ChangePercent: "1.5%",
		Volume:        1000000,
	}
}

// WithPrice sets a custom price.
func (b *QuoteBuilder) WithPrice(price float64) *QuoteBuilder {
	b.Price = price
	return b
}

// WithChange sets a custom change.
func (b *QuoteBuilder) WithChange(change float64) *QuoteBuilder {
	b.Change = change
	return b
}

// WithVolume sets a custom volume.
func (b *QuoteBuilder) WithVolume(volume int64) *QuoteBuilder {
	b.Volume = volume
	return b
}

// Build inserts the quote into the cache and returns it.
func (b *QuoteBuilder) Build(t *testing.T, db *sql.DB) model.Quote {
	t.Helper()

	lastUpdated := time.Now().UTC()

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

	_, err := db.Exec(query, b.Symbol, b.Price, b.Change, b.ChangePercent, b.Volume, lastUpdated)
	if err != nil {
		t.Fatalf("Failed to create test quote: %v", err)
	}

	return model.Quote{
		Symbol:        b.Symbol,
		Price:         b.Price,
		Change:        b.Change,
		ChangePercent: b.ChangePercent,
		Volume:        b.Volume,
		LastUpdated:   lastUpdated,
	}
}

// Convenience functions

// CreateQuote seeds the cache with a quote at the given price.
//
// Example usage:
//
//	testutil.CreateQuote(t, db, "AAPL", 150)
func CreateQuote(t *testing.T, db *sql.DB, symbol string, price float64) model.Quote {
	t.Helper()
	return NewQuote(symbol).WithPrice(price).Build(t, db)
}

// CreateLot appends a lot with the given symbol, quantity and price.
//
// Example usage:
//
//	testutil.CreateLot(t, db, portfolio.ID, "AAPL", 10, 100)
func CreateLot(t *testing.T, db *sql.DB, portfolioID, symbol string, quantity, price float64) model.Lot {
	t.Helper()
	return NewLot(portfolioID).
		WithSymbol(symbol).
		WithQuantity(quantity).
		WithPurchasePrice(price).
		Build(t, db)
}
