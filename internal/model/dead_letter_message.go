package model

import "time"

// DeadLetterMessage is a queue message that exhausted its retries, parked in
// the database for operator review.
type DeadLetterMessage struct {
	ID           int64     `db:"id"`
	QueueName    string    `db:"queue_name"`
	MessageID    int64     `db:"message_id"`
	Payload      string    `db:"payload"` // raw JSON payload of the failed message
	ErrorDetails string    `db:"error_details"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}
