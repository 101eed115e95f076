package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"app/internal/model"
)

// CourseRepository defines the interface for interacting with course data.
type CourseRepository interface {
	// ListByInstructor returns the instructor's courses, newest first.
	ListByInstructor(ctx context.Context, instructorCode string) ([]model.Course, error)
	// Create inserts a new course and fills in the generated id and
	// created_at.
	Create(ctx context.Context, c *model.Course) error
	// GetByID retrieves a course by its generated id. Returns nil, nil when
	// no such course exists.
	GetByID(ctx context.Context, id string) (*model.Course, error)
	// Update replaces every mutable field wholesale. The course code is
	// immutable and not part of the update.
	Update(ctx context.Context, c *model.Course) error
	// Delete removes the course row together with every assessment row for
	// its (instructor_code, course_code) pair.
	Delete(ctx context.Context, id, instructorCode, courseCode string) error
	// ListAll returns every course, for export snapshots.
	ListAll(ctx context.Context) ([]model.Course, error)
}

type courseRepo struct {
	db *sql.DB
}

// NewCourseRepo creates a new CourseRepository.
func NewCourseRepo(db *sql.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) ListByInstructor(ctx context.Context, instructorCode string) ([]model.Course, error) {
	query := `
		SELECT id, instructor_code, course_code, course_title, term, level, modality, approx_students, created_at
		FROM courses
		WHERE instructor_code = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, instructorCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(
			&c.ID,
			&c.InstructorCode,
			&c.CourseCode,
			&c.CourseTitle,
			&c.Term,
			&c.Level,
			&c.Modality,
			&c.ApproxStudents,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	// If no courses found, return an empty slice, not nil.
	if len(courses) == 0 {
		return []model.Course{}, nil
	}

	return courses, nil
}

func (r *courseRepo) Create(ctx context.Context, c *model.Course) error {
	query := `
		INSERT INTO courses (instructor_code, course_code, course_title, term, level, modality, approx_students)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		c.InstructorCode, c.CourseCode, c.CourseTitle, c.Term, c.Level, c.Modality, c.ApproxStudents,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	query := `
		SELECT id, instructor_code, course_code, course_title, term, level, modality, approx_students, created_at
		FROM courses
		WHERE id = $1
	`
	var c model.Course
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.InstructorCode,
		&c.CourseCode,
		&c.CourseTitle,
		&c.Term,
		&c.Level,
		&c.Modality,
		&c.ApproxStudents,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *courseRepo) Update(ctx context.Context, c *model.Course) error {
	query := `
		UPDATE courses
		SET course_title = $1, term = $2, level = $3, modality = $4, approx_students = $5
		WHERE id = $6 AND instructor_code = $7
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		c.CourseTitle, c.Term, c.Level, c.Modality, c.ApproxStudents, c.ID, c.InstructorCode,
	).Scan(&c.CreatedAt)
}

// Delete removes the assessments first and the course row second, in one
// transaction. Keep that order: a course without assessments re-defaults on
// the next read, assessments without a course are orphaned for good.
func (r *courseRepo) Delete(ctx context.Context, id, instructorCode, courseCode string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteAssessments := `DELETE FROM assessments WHERE instructor_code = $1 AND course_code = $2`
	if _, err := tx.ExecContext(ctx, deleteAssessments, instructorCode, courseCode); err != nil {
		return fmt.Errorf("failed to delete assessments for course: %w", err)
	}

	deleteCourse := `DELETE FROM courses WHERE id = $1 AND instructor_code = $2`
	if _, err := tx.ExecContext(ctx, deleteCourse, id, instructorCode); err != nil {
		return fmt.Errorf("failed to delete course row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}
	return nil
}

func (r *courseRepo) ListAll(ctx context.Context) ([]model.Course, error) {
	query := `
		SELECT id, instructor_code, course_code, course_title, term, level, modality, approx_students, created_at
		FROM courses
		ORDER BY instructor_code, course_code, created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all courses: %w", err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(
			&c.ID,
			&c.InstructorCode,
			&c.CourseCode,
			&c.CourseTitle,
			&c.Term,
			&c.Level,
			&c.Modality,
			&c.ApproxStudents,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return courses, nil
}
