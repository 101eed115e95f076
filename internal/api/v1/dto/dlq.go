package dto

import "time"

// DeadLetterMessageDTO is one parked queue message, for operator review.
type DeadLetterMessageDTO struct {
	ID           int64     `json:"id"`
	QueueName    string    `json:"queue_name"`
	MessageID    int64     `json:"message_id"`
	Payload      string    `json:"payload"`
	ErrorDetails string    `json:"error_details"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// DeadLettersResponseDTO wraps the parked-message list.
type DeadLettersResponseDTO struct {
	DeadLetters []DeadLetterMessageDTO `json:"dead_letters"`
}
