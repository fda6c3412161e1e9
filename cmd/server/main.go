package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/api"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/apperrors"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/config"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/database"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/marketdata"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/repository"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	lotRepo := repository.NewLotRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	authService := service.NewAuthService(userRepo)
	portfolioService := service.NewPortfolioService(portfolioRepo, lotRepo, quoteRepo)
	metricsService := service.NewMetricsService()

	settingsService, err := service.NewSettingsService(settingRepo, cfg.Market.SettingsKey)
	if err != nil {
		log.Fatalf("Failed to initialize settings service: %v", err)
	}

	quoteClient := marketdata.NewQuoteClient(cfg.Market.BaseURL, cfg.Market.APIKey)

	// A key stored through the settings endpoint wins over the environment.
	if storedKey, err := settingsService.GetMarketAPIKey(); err == nil {
		quoteClient.SetAPIKey(storedKey)
	} else if !errors.Is(err, apperrors.ErrSettingNotFound) {
		log.Printf("Warning: could not load stored api key: %v", err)
	}

	marketService := service.NewMarketService(
		quoteClient,
		quoteRepo,
		lotRepo,
		cfg.Market.MaxConcurrency,
		cfg.Market.FetchTimeout,
	)

	// Optional background refresh of the quote cache
	var scheduler *service.RefreshScheduler
	if cfg.Market.RefreshSchedule != "" {
		scheduler, err = service.NewRefreshScheduler(marketService, cfg.Market.RefreshSchedule)
		if err != nil {
			log.Fatalf("Failed to initialize refresh scheduler: %v", err)
		}
		scheduler.Start()
		log.Printf("Market refresh scheduled: %s", cfg.Market.RefreshSchedule)
	}

	// Create router
	router := api.NewRouter(api.RouterDeps{
		AuthService:      authService,
		PortfolioService: portfolioService,
		MetricsService:   metricsService,
		MarketService:    marketService,
		SettingsService:  settingsService,
		SystemService:    systemService,
		ApplyAPIKey:      quoteClient.SetAPIKey,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
