package main

import (
	"context"
	"database/sql"
	"time"

	"app/internal/config"
	"app/internal/logger"
	"app/internal/pgmq"

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
	logger.Info().Msg("Starting queue setup.")

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// pgmq.create is idempotent, so rerunning the setup is safe.
	pgmqClient := pgmq.New(db)
	if err := pgmqClient.CreateQueue(ctx, cfg.AggregationQueueName); err != nil {
		logger.Fatal().Msgf("Failed to create queue %s: %v", cfg.AggregationQueueName, err)
	}
	logger.Info().Msgf("Queue %s is ready", cfg.AggregationQueueName)

	logger.Info().Msg("Queue setup complete.")
}
