package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that a user with the given ID or username does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrQuoteNotFound indicates that no cached quote exists for a symbol.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrSettingNotFound indicates that a system setting key has not been stored.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
// They are raised before any state mutation takes place.
var (
	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordMismatch indicates that password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrUsernameTaken indicates that a user with the same username already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidRiskProfile indicates a risk profile outside the known set.
	ErrInvalidRiskProfile = errors.New("unknown risk profile")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeQuantity indicates that a lot quantity has an invalid negative value.
	ErrNegativeQuantity = errors.New("quantity cannot be negative")

	// ErrNegativePrice indicates that a purchase price has an invalid negative value.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These are distinct from not-found conditions: the entity may
// exist but the persistence layer or external provider could not be reached.
var (
	ErrFailedToRetrievePortfolio  = errors.New("failed to retrieve portfolio")
	ErrFailedToRetrievePortfolios = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrieveHoldings   = errors.New("failed to retrieve holdings")
	ErrFailedToRetrieveQuotes     = errors.New("failed to retrieve quotes")
	ErrFailedToComputeMetrics     = errors.New("failed to compute metrics")
	ErrFailedToFetchMarketData    = errors.New("failed to fetch market data")
	ErrFailedToGetVersionInfo     = errors.New("failed to get version information")
	ErrFailedToStoreSetting       = errors.New("failed to store setting")
)
