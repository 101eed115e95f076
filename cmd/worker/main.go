package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"

	"app/internal/config"
	"app/internal/logger"
	"app/internal/pgmq"
	"app/internal/repository"
	"app/internal/service"
	"app/internal/worker/aggregation"

	"github.com/joho/godotenv"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Load .env before anything reads the environment
	envErr := godotenv.Load()

	logger := logger.New()
	if envErr != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	// Initialize DB connection
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		logger.Fatal().Msgf("Failed to open DB connection: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal().Msgf("Failed to ping DB: %v", err)
	}
	logger.Info().Msg("Database connection established")

	// Initialize PGMQ client
	pgmqClient := pgmq.New(db)
	logger.Info().Msg("PGMQ client initialized")

	statsRepo := repository.NewStatsRepo(db)
	dlqSvc := service.NewDLQService(repository.NewDLQRepository(db))

	// Set up context with graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := aggregation.Run(ctx, logger, cfg, pgmqClient, statsRepo, dlqSvc); err != nil {
		logger.Fatal().Msgf("Aggregation worker failed: %v", err)
	}

	logger.Info().Msg("Aggregation worker stopped gracefully")
}
