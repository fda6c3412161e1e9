package validation

import (
	"strings"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/api/request"
)

// ValidateRefreshMarketData validates a quote refresh request.
// At least one non-blank symbol is required.
func ValidateRefreshMarketData(req request.RefreshMarketDataRequest) error {
	errors := make(map[string]string)

	if len(req.Symbols) == 0 {
		errors["symbols"] = "at least one symbol is required"
	}
	for _, s := range req.Symbols {
		if strings.TrimSpace(s) == "" {
			errors["symbols"] = "symbols cannot be blank"
			break
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
