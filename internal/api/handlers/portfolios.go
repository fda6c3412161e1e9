package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/api/request"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/api/response"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/apperrors"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/service"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/validation"
)

// PortfolioHandler handles HTTP requests for portfolios, holdings, valuation
// and derived analytics.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	metricsService   *service.MetricsService
	authService      *service.AuthService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependencies.
func NewPortfolioHandler(
	portfolioService *service.PortfolioService,
	metricsService *service.MetricsService,
	authService *service.AuthService,
) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		metricsService:   metricsService,
		authService:      authService,
	}
}

// MetricsResponse is the payload for the portfolio metrics endpoint.
type MetricsResponse struct {
	AvgReturn        float64            `json:"avgReturn"`
	Volatility       float64            `json:"volatility"`
	SharpeRatio      float64            `json:"sharpeRatio"`
	HasReturns       bool               `json:"hasReturns"`
	SectorAllocation map[string]float64 `json:"sectorAllocation"`
	RiskLevel        string             `json:"riskLevel"`
}

// CreatePortfolio handles POST requests to create a portfolio for a user.
//
// Endpoint: POST /api/portfolio
// Request Body: CreatePortfolioRequest (userId, name)
// Response: 201 Created with the created portfolio
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the user does not exist
// Error: 500 Internal Server Error if creation fails
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	// The owner must exist before a portfolio can reference them.
	if _, err := h.authService.GetUser(req.UserID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to look up user", err.Error())
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(req.UserID, req.Name)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// GetPortfoliosForUser handles GET requests to list a user's portfolios.
//
// Endpoint: GET /api/portfolio/user/{uuid}
// Response: 200 OK with a list of portfolios (empty list when none exist)
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) GetPortfoliosForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uuid")

	portfolios, err := h.portfolioService.GetPortfoliosForUser(userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// GetPortfolio handles GET requests for a portfolio's valuation snapshot.
//
// Endpoint: GET /api/portfolio/{uuid}
// Response: 200 OK with the valuation snapshot (holdings priced against the cache)
// Error: 404 Not Found if the portfolio does not exist
// Error: 500 Internal Server Error if valuation fails
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	snapshot, err := h.portfolioService.GetValuation(portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// AddHolding handles POST requests to append a purchase lot to a portfolio.
//
// Endpoint: POST /api/portfolio/{uuid}/holding
// Request Body: AddLotRequest (symbol, quantity, purchasePrice, purchaseDate)
// Response: 201 Created with the recorded lot
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the portfolio does not exist
// Error: 500 Internal Server Error if persistence fails
func (h *PortfolioHandler) AddHolding(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.AddLotRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAddLot(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	purchaseDate, err := validation.ParseTime(req.PurchaseDate)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid purchase date", err.Error())
		return
	}

	lot, err := h.portfolioService.AddLot(portfolioID, req.Symbol, req.Quantity, req.PurchasePrice, purchaseDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to add holding", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, lot)
}

// GetMetrics handles GET requests for a portfolio's derived metrics.
//
// Endpoint: GET /api/portfolio/{uuid}/metrics
// Response: 200 OK with MetricsResponse, or an empty object when the
// portfolio has no holdings
// Error: 404 Not Found if the portfolio does not exist
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	snapshot, err := h.portfolioService.GetValuation(portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeMetrics.Error(), err.Error())
		return
	}

	metrics, ok := h.metricsService.ComputeMetrics(snapshot)
	if !ok {
		// No holdings: empty object rather than an error.
		response.RespondJSON(w, http.StatusOK, struct{}{})
		return
	}

	response.RespondJSON(w, http.StatusOK, MetricsResponse{
		AvgReturn:        metrics.AvgReturn,
		Volatility:       metrics.Volatility,
		SharpeRatio:      metrics.SharpeRatio,
		HasReturns:       metrics.HasReturns,
		SectorAllocation: metrics.SectorAllocation,
		RiskLevel:        string(metrics.RiskLevel),
	})
}

// GetRecommendations handles GET requests for rule-based portfolio advice.
//
// Endpoint: GET /api/portfolio/{uuid}/recommendations
// Response: 200 OK with a list of recommendations (empty list when none apply)
// Error: 404 Not Found if the portfolio or its owner does not exist
// Error: 500 Internal Server Error if evaluation fails
func (h *PortfolioHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	snapshot, err := h.portfolioService.GetValuation(portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), err.Error())
		return
	}

	// The owner's risk profile steers the rule set.
	user, err := h.authService.GetUser(snapshot.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to look up user", err.Error())
		return
	}

	recommendations := h.metricsService.Recommendations(snapshot, user.RiskProfile)

	response.RespondJSON(w, http.StatusOK, recommendations)
}

// GetRiskProfiles handles GET requests for the static risk-profile targets.
//
// Endpoint: GET /api/riskprofile
// Response: 200 OK with the target asset mix per risk profile
func (h *PortfolioHandler) GetRiskProfiles(w http.ResponseWriter, _ *http.Request) {
	targets := h.metricsService.RiskProfileTargets()

	// Keyed by profile name for a stable JSON shape.
	payload := make(map[string]model.RiskProfileTarget, len(targets))
	for profile, target := range targets {
		payload[string(profile)] = target
	}

	response.RespondJSON(w, http.StatusOK, payload)
}
