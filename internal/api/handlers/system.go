package handlers

import (
	"net/http"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/api/request"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/api/response"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/service"
)

// SystemHandler handles system-level HTTP requests: health, version and
// runtime settings.
type SystemHandler struct {
	systemService   *service.SystemService
	settingsService *service.SettingsService

	// applyAPIKey pushes a newly stored provider key into the live market
	// client so the change takes effect without a restart. May be nil.
	applyAPIKey func(string)
}

// NewSystemHandler creates a new SystemHandler with the provided dependencies.
func NewSystemHandler(
	systemService *service.SystemService,
	settingsService *service.SettingsService,
	applyAPIKey func(string),
) *SystemHandler {
	return &SystemHandler{
		systemService:   systemService,
		settingsService: settingsService,
		applyAPIKey:     applyAPIKey,
	}
}

// HealthResponse is the payload for the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// VersionResponse is the payload for the version endpoint.
type VersionResponse struct {
	Version string `json:"version"`
}

// Health handles GET requests for a liveness check backed by a database ping.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with {"status": "ok"}
// Error: 503 Service Unavailable if the database is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, "unhealthy", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Version handles GET requests for the running application version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with {"version": "..."}
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, VersionResponse{Version: h.systemService.CheckVersion()})
}

// SetAPIKey handles PUT requests to store the market-data provider API key.
// The key is encrypted at rest and applied to the live client immediately.
//
// Endpoint: PUT /api/system/settings/apikey
// Request Body: SetAPIKeyRequest (apiKey)
// Response: 200 OK
// Error: 400 Bad Request if the key is missing or secret storage is disabled
// Error: 500 Internal Server Error if storage fails
func (h *SystemHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetAPIKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.APIKey == "" {
		response.RespondError(w, http.StatusBadRequest, "apiKey is required", "")
		return
	}

	if !h.settingsService.SecretsEnabled() {
		response.RespondError(w, http.StatusBadRequest, "secret storage is not configured", "")
		return
	}

	if err := h.settingsService.SetMarketAPIKey(req.APIKey); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store api key", err.Error())
		return
	}

	if h.applyAPIKey != nil {
		h.applyAPIKey(req.APIKey)
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
