package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/marketdata"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/repository"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/service"
)

func NewTestAuthService(t *testing.T, db *sql.DB) *service.AuthService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)

	return service.NewAuthService(userRepo)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	portfolioRepo := repository.NewPortfolioRepository(db)
	lotRepo := repository.NewLotRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	return service.NewPortfolioService(
		portfolioRepo,
		lotRepo,
		quoteRepo,
	)
}

// NewTestMarketService wires a MarketService around the given client with a
// small concurrency limit and a short timeout suitable for tests.
func NewTestMarketService(t *testing.T, db *sql.DB, client marketdata.Client) *service.MarketService {
	t.Helper()

	quoteRepo := repository.NewQuoteRepository(db)
	lotRepo := repository.NewLotRepository(db)

	return service.NewMarketService(
		client,
		quoteRepo,
		lotRepo,
		2,
		5*time.Second,
	)
}

func NewTestSettingsService(t *testing.T, db *sql.DB, encryptionKey string) *service.SettingsService {
	t.Helper()

	settingRepo := repository.NewSettingRepository(db)

	svc, err := service.NewSettingsService(settingRepo, encryptionKey)
	if err != nil {
		t.Fatalf("Failed to create settings service: %v", err)
	}

	return svc
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// GenerateFernetKey generates a fresh base64 fernet key for settings tests.
func GenerateFernetKey(t *testing.T) string {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return key.Encode()
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeUsername generates a unique username for testing.
//
// Example usage:
//
//	name := testutil.MakeUsername("alice")
//	// Returns: "alice_AB12CD"
func MakeUsername(base string) string {
	if base == "" {
		base = "user"
	}
	return base + "_" + randomAlphanumeric(6)
}

// MakeSymbol generates a stock ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("TEST")
//	// Returns: "TEST1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakePortfolioName generates a unique portfolio name for testing.
//
// Example usage:
//
//	name := testutil.MakePortfolioName("MyPortfolio")
//	// Returns: "MyPortfolio ABC123"
func MakePortfolioName(base string) string {
	if base == "" {
		base = "Portfolio"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))] //nolint:gosec // test data only
	}
	return string(result)
}
