package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/apperrors"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/testutil"
)

// TestAuthService_Register tests account creation.
//
// WHY: Registration is the trust anchor of the system. Passwords must only
// ever be stored hashed, and invalid input must be rejected before any state
// mutation.
func TestAuthService_Register(t *testing.T) {
	t.Run("creates a user with a hashed password", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		// Execute
		user, err := svc.Register("alice", "s3cret-pw", "s3cret-pw", model.RiskProfileModerate)

		// Assert
		if err != nil {
			t.Fatalf("Register() returned unexpected error: %v", err)
		}

		if user.ID == "" {
			t.Error("Expected a generated user ID")
		}
		if user.PasswordHash == "" || user.PasswordHash == "s3cret-pw" {
			t.Error("Password must be stored as a hash, never in the clear")
		}
		if !strings.HasPrefix(user.PasswordHash, "$2") {
			t.Errorf("Expected a bcrypt hash, got %q", user.PasswordHash)
		}
	})

	t.Run("rejects mismatched password confirmation", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		// Execute
		_, err := svc.Register("alice", "one", "two", model.RiskProfileModerate)

		// Assert
		if !errors.Is(err, apperrors.ErrPasswordMismatch) {
			t.Errorf("Expected ErrPasswordMismatch, got %v", err)
		}
	})

	t.Run("rejects an unknown risk profile", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		// Execute
		_, err := svc.Register("alice", "pw", "pw", model.RiskProfile("reckless"))

		// Assert
		if !errors.Is(err, apperrors.ErrInvalidRiskProfile) {
			t.Errorf("Expected ErrInvalidRiskProfile, got %v", err)
		}
	})

	t.Run("rejects a duplicate username", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		if _, err := svc.Register("alice", "pw", "pw", model.RiskProfileModerate); err != nil {
			t.Fatalf("Register() returned unexpected error: %v", err)
		}

		// Execute
		_, err := svc.Register("alice", "other", "other", model.RiskProfileAggressive)

		// Assert
		if !errors.Is(err, apperrors.ErrUsernameTaken) {
			t.Errorf("Expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("rejects empty username or password", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		// Execute
		_, err := svc.Register("", "pw", "pw", model.RiskProfileModerate)

		// Assert
		if !errors.Is(err, apperrors.ErrMissingRequiredField) {
			t.Errorf("Expected ErrMissingRequiredField, got %v", err)
		}
	})
}

// TestAuthService_Authenticate tests credential verification.
//
// WHY: Login must accept the right password, reject the wrong one, and give
// an attacker no signal about whether the username exists.
func TestAuthService_Authenticate(t *testing.T) {
	t.Run("round-trips register and login", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		registered, err := svc.Register("alice", "s3cret-pw", "s3cret-pw", model.RiskProfileConservative)
		if err != nil {
			t.Fatalf("Register() returned unexpected error: %v", err)
		}

		// Execute
		user, err := svc.Authenticate("alice", "s3cret-pw")

		// Assert
		if err != nil {
			t.Fatalf("Authenticate() returned unexpected error: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("Expected user %s, got %s", registered.ID, user.ID)
		}
		if user.RiskProfile != model.RiskProfileConservative {
			t.Errorf("Expected conservative profile, got %s", user.RiskProfile)
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		if _, err := svc.Register("alice", "right", "right", model.RiskProfileModerate); err != nil {
			t.Fatalf("Register() returned unexpected error: %v", err)
		}

		// Execute
		_, err := svc.Authenticate("alice", "wrong")

		// Assert
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("returns the same error for an unknown username", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		// Execute
		_, err := svc.Authenticate("nobody", "whatever")

		// Assert
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})
}

// TestAuthService_GetUser tests user lookup by ID.
func TestAuthService_GetUser(t *testing.T) {
	t.Run("retrieves an existing user", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)
		created := testutil.NewUser().Build(t, db)

		// Execute
		user, err := svc.GetUser(created.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetUser() returned unexpected error: %v", err)
		}
		if user.Username != created.Username {
			t.Errorf("Expected username %s, got %s", created.Username, user.Username)
		}
	})

	t.Run("returns not found for an unknown ID", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		// Execute
		_, err := svc.GetUser(testutil.MakeID())

		// Assert
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}
