package repository

import (
	"context"
	"database/sql"
	"fmt"

	"app/internal/model"
)

type DLQRepository interface {
	Create(ctx context.Context, message *model.DeadLetterMessage) error
	List(ctx context.Context, limit, offset int) ([]model.DeadLetterMessage, error)
}

type dlqRepository struct {
	db *sql.DB
}

func NewDLQRepository(db *sql.DB) DLQRepository {
	return &dlqRepository{db: db}
}

func (r *dlqRepository) Create(ctx context.Context, message *model.DeadLetterMessage) error {
	query := `
        INSERT INTO dead_letter_messages (queue_name, message_id, payload, error_details, status)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.ExecContext(
		ctx,
		query,
		message.QueueName,
		message.MessageID,
		message.Payload,
		message.ErrorDetails,
		message.Status,
	)
	return err
}

func (r *dlqRepository) List(ctx context.Context, limit, offset int) ([]model.DeadLetterMessage, error) {
	query := `
		SELECT id, queue_name, message_id, payload, error_details, status, created_at
		FROM dead_letter_messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query dead letters: %w", err)
	}
	defer rows.Close()

	var messages []model.DeadLetterMessage
	for rows.Next() {
		var m model.DeadLetterMessage
		if err := rows.Scan(
			&m.ID,
			&m.QueueName,
			&m.MessageID,
			&m.Payload,
			&m.ErrorDetails,
			&m.Status,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dead letter row: %w", err)
		}
		messages = append(messages, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return messages, nil
}
