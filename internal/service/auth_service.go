package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/apperrors"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/repository"
)

// AuthService handles user registration and credential verification.
// Passwords are stored as bcrypt hashes; the hash never leaves this layer.
type AuthService struct {
	userRepo *repository.UserRepository
}

// NewAuthService creates a new AuthService with the provided repository dependency.
func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new user account.
// Validation failures (mismatched confirmation, unknown risk profile,
// duplicate username) are rejected before any state mutation.
func (s *AuthService) Register(username, password, confirmPassword string, riskProfile model.RiskProfile) (model.User, error) {
	if username == "" || password == "" {
		return model.User{}, apperrors.ErrMissingRequiredField
	}
	if password != confirmPassword {
		return model.User{}, apperrors.ErrPasswordMismatch
	}
	if !riskProfile.Valid() {
		return model.User{}, apperrors.ErrInvalidRiskProfile
	}

	taken, err := s.userRepo.UsernameExists(username)
	if err != nil {
		return model.User{}, err
	}
	if taken {
		return model.User{}, apperrors.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		RiskProfile:  riskProfile,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return model.User{}, err
	}

	log.Printf("Created user %s with ID %s", user.Username, user.ID)

	return user, nil
}

// Authenticate verifies a username/password pair and returns the user on
// success. An unknown username and a wrong password both return
// ErrInvalidCredentials so callers cannot distinguish the two.
func (s *AuthService) Authenticate(username, password string) (model.User, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return model.User{}, apperrors.ErrInvalidCredentials
		}
		return model.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(userID string) (model.User, error) {
	return s.userRepo.GetUserOnID(userID)
}
