package service

import (
	"context"
	"fmt"

	"app/internal/model"
	"app/internal/repository"
)

// DLQService parks queue messages that exhausted their retries so an
// operator can inspect and replay them.
type DLQService interface {
	Record(ctx context.Context, queueName string, messageID int64, payload []byte, errorDetails string) error
	// List returns parked messages, newest first.
	List(ctx context.Context, limit, offset int) ([]model.DeadLetterMessage, error)
}

type dlqService struct {
	repo repository.DLQRepository
}

// NewDLQService creates a new dead-letter service.
func NewDLQService(repo repository.DLQRepository) DLQService {
	return &dlqService{repo: repo}
}

func (s *dlqService) Record(ctx context.Context, queueName string, messageID int64, payload []byte, errorDetails string) error {
	message := &model.DeadLetterMessage{
		QueueName:    queueName,
		MessageID:    messageID,
		Payload:      string(payload),
		ErrorDetails: errorDetails,
		Status:       "unprocessed", // Default status
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return fmt.Errorf("failed to record dead letter: %w", err)
	}
	return nil
}

func (s *dlqService) List(ctx context.Context, limit, offset int) ([]model.DeadLetterMessage, error) {
	messages, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list dead letters: %w", err)
	}
	return messages, nil
}
