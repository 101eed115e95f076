package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// QueueSender publishes event payloads onto a queue. *pgmq.Client satisfies
// it.
type QueueSender interface {
	Send(ctx context.Context, queue string, payload []byte) error
}

// publishAssessmentEvent tells the aggregation worker that the assessment
// data for a course changed. Failures are logged and swallowed: the
// operation that triggered the event has already been persisted.
func publishAssessmentEvent(ctx context.Context, queue QueueSender, queueName string, logger zerolog.Logger, instructorCode, courseCode, trigger string) {
	payload := struct {
		InstructorCode string `json:"instructor_code"`
		CourseCode     string `json:"course_code"`
		Trigger        string `json:"trigger"`
	}{
		InstructorCode: instructorCode,
		CourseCode:     courseCode,
		Trigger:        trigger,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error().Err(err).Str("trigger", trigger).Msg("Failed to marshal assessment event")
		return
	}
	if err := queue.Send(ctx, queueName, data); err != nil {
		logger.Error().Err(err).Str("queue", queueName).Str("trigger", trigger).Msg("Failed to publish assessment event")
	}
}
