package main

import (
	"context"
	"time"

	"realassist/internal/analytics"
	"realassist/internal/cache"
	"realassist/internal/config"
	"realassist/internal/database"
	"realassist/internal/email"
	"realassist/internal/llm"
	"realassist/internal/pipeline"
	"realassist/internal/retrieval"
	"realassist/internal/server"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger
	logger := cfg.SetupLogger()

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize database connection
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Database connection failed")
	}
	logger.Info().Msg("Database connection established")

	store, err := database.NewInquiryStore(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize inquiry store")
	}

	// Language model gateway
	gateway, err := llm.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize language model client")
	}

	// Retrieval provider: new -> ready lifecycle, usable only after Init
	provider, err := retrieval.New(cfg, gateway)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create retrieval provider")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := provider.Init(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize retrieval provider")
	}
	logger.Info().Str("collection", cfg.QdrantCollection).Msg("Retrieval provider ready")

	// Notifier
	notifier := email.NewService(cfg.SendGridAPIKey, cfg.FromEmail, cfg.FromName, cfg.EmailEnabled)
	if !notifier.Enabled() {
		logger.Info().Msg("Email delivery disabled by configuration")
	}

	pipe := pipeline.New(gateway, provider, notifier, logger)

	analyticsService, err := analytics.NewService(store, cache.New(), time.Duration(cfg.AnalyticsCacheTTL)*time.Minute)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize analytics service")
	}

	srv := server.New(cfg, db, logger, pipe, store, analyticsService, provider)
	srv.Initialize()

	if err := srv.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped")
	}
}
