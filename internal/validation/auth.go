package validation

import (
	"fmt"
	"strings"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/api/request"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
)

// ValidateRegister validates a user registration request.
//
// Required fields:
//   - username: non-empty
//   - password: non-empty, must equal confirmPassword
//   - riskProfile: one of conservative, moderate, aggressive
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateRegister(req request.RegisterRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Username) == "" {
		errors["username"] = "username is required"
	}

	if req.Password == "" {
		errors["password"] = "password is required"
	} else if req.Password != req.ConfirmPassword {
		errors["confirmPassword"] = "passwords do not match"
	}

	if !model.RiskProfile(req.RiskProfile).Valid() {
		errors["riskProfile"] = fmt.Sprintf("invalid risk profile: %s", req.RiskProfile)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateLogin validates a login request.
func ValidateLogin(req request.LoginRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Username) == "" {
		errors["username"] = "username is required"
	}
	if req.Password == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
