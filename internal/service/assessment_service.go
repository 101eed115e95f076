package service

import (
	"context"
	"fmt"

	"app/internal/matrix"
	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// AssessmentService owns the read and write paths for course assessment
// matrices: reads reconcile stored rows onto the fixed registry shape,
// writes validate the percent total and replace the stored set wholesale.
type AssessmentService interface {
	// GetMatrix loads the stored rows for a course and reconciles them onto
	// the registry. The result always has one row per registered type.
	GetMatrix(ctx context.Context, instructorCode, courseCode string) ([]model.AssessmentRecord, error)
	// SaveMatrix validates the submitted matrix, replaces the stored rows,
	// and returns the persisted matrix reconciled onto the registry. A
	// *matrix.PercentSumError means nothing was written and the caller
	// should fix the percents and resubmit.
	SaveMatrix(ctx context.Context, instructorCode, courseCode string, rows []model.AssessmentRecord) ([]model.AssessmentRecord, error)
}

type assessmentService struct {
	repo      repository.AssessmentRepository
	queue     QueueSender
	queueName string
	logger    zerolog.Logger
}

// NewAssessmentService creates a new assessment service.
func NewAssessmentService(repo repository.AssessmentRepository, queue QueueSender, queueName string, logger zerolog.Logger) AssessmentService {
	return &assessmentService{
		repo:      repo,
		queue:     queue,
		queueName: queueName,
		logger:    logger.With().Str("service", "AssessmentService").Logger(),
	}
}

func (s *assessmentService) GetMatrix(ctx context.Context, instructorCode, courseCode string) ([]model.AssessmentRecord, error) {
	stored, err := s.repo.ListForCourse(ctx, instructorCode, courseCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessments: %w", err)
	}
	return matrix.Reconcile(stored), nil
}

func (s *assessmentService) SaveMatrix(ctx context.Context, instructorCode, courseCode string, rows []model.AssessmentRecord) ([]model.AssessmentRecord, error) {
	validated, err := matrix.Validate(rows)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceForCourse(ctx, instructorCode, courseCode, validated); err != nil {
		return nil, fmt.Errorf("failed to replace assessments: %w", err)
	}

	publishAssessmentEvent(ctx, s.queue, s.queueName, s.logger, instructorCode, courseCode, "assessments_replaced")

	return matrix.Reconcile(validated.Rows()), nil
}
