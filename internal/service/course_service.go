package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// ErrCourseNotFound covers both a missing course id and a course owned by a
// different instructor; callers cannot tell the two apart.
var ErrCourseNotFound = errors.New("course not found")

// CourseService manages an instructor's courses. Every operation is scoped
// to the calling instructor's code.
type CourseService interface {
	ListCourses(ctx context.Context, instructorCode string) ([]model.Course, error)
	CreateCourse(ctx context.Context, course *model.Course) (*model.Course, error)
	GetCourse(ctx context.Context, id, instructorCode string) (*model.Course, error)
	UpdateCourse(ctx context.Context, course *model.Course) (*model.Course, error)
	// DeleteCourse removes the course and its assessment rows in one
	// transaction, then notifies the aggregation worker.
	DeleteCourse(ctx context.Context, id, instructorCode string) error
}

type courseService struct {
	repo      repository.CourseRepository
	queue     QueueSender
	queueName string
	logger    zerolog.Logger
}

// NewCourseService creates a new course service.
func NewCourseService(repo repository.CourseRepository, queue QueueSender, queueName string, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:      repo,
		queue:     queue,
		queueName: queueName,
		logger:    logger.With().Str("service", "CourseService").Logger(),
	}
}

func (s *courseService) ListCourses(ctx context.Context, instructorCode string) ([]model.Course, error) {
	courses, err := s.repo.ListByInstructor(ctx, instructorCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) CreateCourse(ctx context.Context, course *model.Course) (*model.Course, error) {
	trimCourseFields(course)
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, nil
}

func (s *courseService) GetCourse(ctx context.Context, id, instructorCode string) (*model.Course, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil || course.InstructorCode != instructorCode {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, course *model.Course) (*model.Course, error) {
	existing, err := s.GetCourse(ctx, course.ID, course.InstructorCode)
	if err != nil {
		return nil, err
	}

	// The course code is immutable once created; carry it over.
	course.CourseCode = existing.CourseCode
	trimCourseFields(course)

	if err := s.repo.Update(ctx, course); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, id, instructorCode string) error {
	existing, err := s.GetCourse(ctx, id, instructorCode)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, instructorCode, existing.CourseCode); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	publishAssessmentEvent(ctx, s.queue, s.queueName, s.logger, instructorCode, existing.CourseCode, "course_deleted")

	return nil
}

func trimCourseFields(course *model.Course) {
	course.CourseCode = strings.TrimSpace(course.CourseCode)
	course.CourseTitle = strings.TrimSpace(course.CourseTitle)
	course.Term = strings.TrimSpace(course.Term)
	course.Level = strings.TrimSpace(course.Level)
	course.Modality = strings.TrimSpace(course.Modality)
}
