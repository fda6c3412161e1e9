package handlers

import (
	"net/http"
	"strings"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/api/request"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/api/response"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/apperrors"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/service"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/validation"
)

// MarketHandler handles HTTP requests for market data refresh and cached
// quote lookup.
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler with the provided service dependency.
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// Refresh handles POST requests to fetch fresh quotes for a set of symbols.
//
// Symbols that fail to fetch are omitted from the response rather than
// failing the whole batch.
//
// Endpoint: POST /api/market/refresh
// Request Body: RefreshMarketDataRequest (symbols)
// Response: 200 OK with a map of symbol to fetched quote
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if the cache write fails
func (h *MarketHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RefreshMarketDataRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRefreshMarketData(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	quotes, err := h.marketService.FetchMarketData(r.Context(), req.Symbols)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToFetchMarketData.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}

// Quotes handles GET requests for cached quotes.
//
// Endpoint: GET /api/market/quotes?symbols=AAPL,MSFT
// Response: 200 OK with a map of symbol to cached quote; symbols with no
// cache entry are absent from the map
// Error: 400 Bad Request if the symbols parameter is missing or empty
// Error: 500 Internal Server Error if retrieval fails
func (h *MarketHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symbols")

	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}

	if len(symbols) == 0 {
		response.RespondError(w, http.StatusBadRequest, "symbols query parameter is required", "")
		return
	}

	quotes, err := h.marketService.GetCachedQuotes(symbols)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveQuotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}
