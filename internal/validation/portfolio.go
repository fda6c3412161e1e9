package validation

import (
	"strings"
	"time"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/api/request"
)

// ValidateCreatePortfolio validates a portfolio creation request.
//
// Required fields:
//   - userId: Must be a valid UUID
//   - name: non-empty
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.UserID); err != nil {
		errors["userId"] = err.Error()
	}

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateAddLot validates a lot append request.
//
// Required fields:
//   - symbol: non-empty
//   - quantity: >= 0
//   - purchasePrice: >= 0
//   - purchaseDate: YYYY-MM-DD or RFC3339, not in the future
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateAddLot(req request.AddLotRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if req.Quantity < 0 {
		errors["quantity"] = "quantity cannot be negative"
	}

	if req.PurchasePrice < 0 {
		errors["purchasePrice"] = "purchasePrice cannot be negative"
	}

	if strings.TrimSpace(req.PurchaseDate) == "" {
		errors["purchaseDate"] = "purchaseDate is required"
	} else {
		date, err := ParseTime(req.PurchaseDate)
		if err != nil {
			errors["purchaseDate"] = err.Error()
		} else if date.After(time.Now().UTC()) {
			errors["purchaseDate"] = "purchaseDate cannot be in the future"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
