// Package api wires HTTP handlers, middleware and routes into a single router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/api/handlers"
	custommiddleware "github.com/avanwijk/portfolio-analyzer-backend/internal/api/middleware"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/config"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/service"
)

// RouterDeps carries the services the router needs. ApplyAPIKey propagates a
// newly stored provider key to the live market client; it may be nil.
type RouterDeps struct {
	AuthService      *service.AuthService
	PortfolioService *service.PortfolioService
	MetricsService   *service.MetricsService
	MarketService    *service.MarketService
	SettingsService  *service.SettingsService
	SystemService    *service.SystemService
	ApplyAPIKey      func(string)
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps RouterDeps, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(deps.AuthService)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		portfolioHandler := handlers.NewPortfolioHandler(deps.PortfolioService, deps.MetricsService, deps.AuthService)

		r.Get("/riskprofile", portfolioHandler.GetRiskProfiles)

		r.Route("/portfolio", func(r chi.Router) {
			r.Post("/", portfolioHandler.CreatePortfolio)

			r.Route("/user/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfoliosForUser)
			})

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfolio)
				r.Post("/holding", portfolioHandler.AddHolding)
				r.Get("/metrics", portfolioHandler.GetMetrics)
				r.Get("/recommendations", portfolioHandler.GetRecommendations)
			})
		})

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(deps.MarketService)
			r.Post("/refresh", marketHandler.Refresh)
			r.Get("/quotes", marketHandler.Quotes)
		})

		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(deps.SystemService, deps.SettingsService, deps.ApplyAPIKey)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Put("/settings/apikey", systemHandler.SetAPIKey)
		})
	})

	return r
}
