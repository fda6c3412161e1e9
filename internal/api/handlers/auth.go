package handlers

import (
	"errors"
	"net/http"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/api/request"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/api/response"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/apperrors"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/service"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/validation"
)

// AuthHandler handles HTTP requests for registration and login.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the authService.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the provided service dependency.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// UserResponse represents a user in API responses. The password hash is
// deliberately absent.
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	RiskProfile string `json:"riskProfile"`
}

// Register handles POST requests to create a new user account.
//
// Endpoint: POST /api/auth/register
// Request Body: RegisterRequest (username, password, confirmPassword, riskProfile)
// Response: 201 Created with UserResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the username is already taken
// Error: 500 Internal Server Error if creation fails
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RegisterRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRegister(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	user, err := h.authService.Register(req.Username, req.Password, req.ConfirmPassword, model.RiskProfile(req.RiskProfile))
	if err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrUsernameTaken.Error(), "")
			return
		}
		if errors.Is(err, apperrors.ErrPasswordMismatch) || errors.Is(err, apperrors.ErrInvalidRiskProfile) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create user", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		RiskProfile: string(user.RiskProfile),
	})
}

// Login handles POST requests to verify credentials.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (username, password)
// Response: 200 OK with UserResponse
// Error: 400 Bad Request if request body is invalid
// Error: 401 Unauthorized if credentials do not match
// Error: 500 Internal Server Error if verification fails
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	user, err := h.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to verify credentials", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		RiskProfile: string(user.RiskProfile),
	})
}
