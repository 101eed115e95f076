package aggregation

import (
	"context"
	"encoding/json"
	"time"

	"app/internal/config"
	"app/internal/pgmq"
	"app/internal/repository"
	"app/internal/service"

	"github.com/rs/zerolog"
)

// Run consumes assessment change events and rebuilds the per-type
// aggregates. It blocks until ctx is cancelled.
func Run(ctx context.Context, logger zerolog.Logger, cfg *config.Config, client *pgmq.Client, statsRepo repository.StatsRepository, dlqSvc service.DLQService) error {
	queue := cfg.AggregationQueueName
	logger.Info().Str("queue", queue).Msg("Starting aggregation worker")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Shutting down aggregation worker")
			return nil
		default:
		}

		msgs, err := client.ReadWithPoll(ctx, queue, cfg.AggregationVisibilitySec, cfg.AggregationPollMaxMsg, cfg.AggregationPollTimeoutSec)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info().Msg("Shutting down aggregation worker")
				return nil
			}
			logger.Error().Err(err).Msg("Error reading aggregation queue")
			time.Sleep(time.Second)
			continue
		}
		if len(msgs) == 0 {
			continue
		}

		msg := msgs[0]
		var event struct {
			InstructorCode string `json:"instructor_code"`
			CourseCode     string `json:"course_code"`
			Trigger        string `json:"trigger"`
		}
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logger.Error().Err(err).Int64("msg_id", msg.ID).Msg("Failed to unmarshal aggregation event; deleting message")
			if err := client.Delete(ctx, queue, []int64{msg.ID}); err != nil {
				logger.Error().Err(err).Msg("Error deleting malformed aggregation message")
			}
			continue
		}
		logger.Info().
			Int64("msg_id", msg.ID).
			Str("course_code", event.CourseCode).
			Str("trigger", event.Trigger).
			Msg("Received aggregation event")

		// Every event triggers a full rebuild, so the payload only matters
		// for the log trail.
		backoff := time.Duration(cfg.AggregationBackoffInitialSec) * time.Second
		var rebuildErr error
		for attempt := 1; attempt <= cfg.AggregationMaxRetries; attempt++ {
			rebuildErr = statsRepo.Rebuild(ctx)
			if rebuildErr == nil {
				break
			}
			if ctx.Err() != nil {
				// The message stays invisible until its timeout lapses, then
				// the next run picks it up.
				logger.Info().Msg("Shutting down aggregation worker")
				return nil
			}
			logger.Error().Err(rebuildErr).Int("attempt", attempt).Msg("Aggregate rebuild failed, retrying")
			time.Sleep(backoff)
			backoff *= 2
			if limit := time.Duration(cfg.AggregationBackoffMaxSec) * time.Second; backoff > limit {
				backoff = limit
			}
		}
		if rebuildErr != nil {
			if err := dlqSvc.Record(ctx, queue, msg.ID, msg.Data, rebuildErr.Error()); err != nil {
				logger.Error().Err(err).Int64("msg_id", msg.ID).Msg("Failed to record dead letter")
			}
			// Acknowledge (delete) the original message so it won't retry
			if err := client.Delete(ctx, queue, []int64{msg.ID}); err != nil {
				logger.Error().Err(err).Msg("Error deleting aggregation message after failure")
			}
			logger.Warn().
				Int("attempts", cfg.AggregationMaxRetries).
				Int64("msg_id", msg.ID).
				Err(rebuildErr).
				Msg("Exhausted all rebuild retries; message parked in dead letters")
			continue
		}

		// Acknowledge message
		if err := client.Delete(ctx, queue, []int64{msg.ID}); err != nil {
			logger.Error().Err(err).Msg("Error deleting aggregation message")
		}
	}
}
