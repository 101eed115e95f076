package repository

import (
	"context"
	"database/sql"
	"fmt"

	"app/internal/matrix"
	"app/internal/model"
)

// AssessmentRepository is the persistence boundary for assessment matrices.
// A course's rows are only ever written as a complete validated set; there
// is no per-row upsert.
type AssessmentRepository interface {
	// ListForCourse returns whatever rows are stored for the pair, in no
	// particular shape. Callers reconcile them onto the registry.
	ListForCourse(ctx context.Context, instructorCode, courseCode string) ([]model.AssessmentRecord, error)
	// ReplaceForCourse swaps the persisted set for the pair with the
	// validated matrix.
	ReplaceForCourse(ctx context.Context, instructorCode, courseCode string, vm matrix.ValidatedMatrix) error
	// ListAll returns every stored row, for export snapshots.
	ListAll(ctx context.Context) ([]model.AssessmentRecord, error)
}

type assessmentRepo struct {
	db *sql.DB
}

func NewAssessmentRepo(db *sql.DB) AssessmentRepository {
	return &assessmentRepo{db: db}
}

func (r *assessmentRepo) ListForCourse(ctx context.Context, instructorCode, courseCode string) ([]model.AssessmentRecord, error) {
	query := `
		SELECT instructor_code, course_code, assessment_type,
		       percent_of_class_assessment, ai_misuse_susceptibility, modification_level
		FROM assessments
		WHERE instructor_code = $1 AND course_code = $2
	`

	rows, err := r.db.QueryContext(ctx, query, instructorCode, courseCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var records []model.AssessmentRecord
	for rows.Next() {
		var rec model.AssessmentRecord
		if err := rows.Scan(
			&rec.InstructorCode,
			&rec.CourseCode,
			&rec.AssessmentType,
			&rec.PercentOfClassAssessment,
			&rec.AIMisuseSusceptibility,
			&rec.ModificationLevel,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// ReplaceForCourse deletes every row stored for (instructorCode, courseCode)
// and inserts the validated set, inside one transaction. A concurrent reader
// never observes the intermediate zero-row state, and a failure rolls back
// to the prior complete set. The codes on the inserted rows come from the
// arguments, not from the row fields.
func (r *assessmentRepo) ReplaceForCourse(ctx context.Context, instructorCode, courseCode string, vm matrix.ValidatedMatrix) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin replace transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery := `DELETE FROM assessments WHERE instructor_code = $1 AND course_code = $2`
	if _, err := tx.ExecContext(ctx, deleteQuery, instructorCode, courseCode); err != nil {
		return fmt.Errorf("failed to delete existing assessments: %w", err)
	}

	insertQuery := `
		INSERT INTO assessments (instructor_code, course_code, assessment_type,
		    percent_of_class_assessment, ai_misuse_susceptibility, modification_level)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, rec := range vm.Rows() {
		if _, err := tx.ExecContext(ctx, insertQuery,
			instructorCode,
			courseCode,
			rec.AssessmentType,
			rec.PercentOfClassAssessment,
			rec.AIMisuseSusceptibility,
			rec.ModificationLevel,
		); err != nil {
			return fmt.Errorf("failed to insert assessment row %q: %w", rec.AssessmentType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit replace transaction: %w", err)
	}
	return nil
}

func (r *assessmentRepo) ListAll(ctx context.Context) ([]model.AssessmentRecord, error) {
	query := `
		SELECT instructor_code, course_code, assessment_type,
		       percent_of_class_assessment, ai_misuse_susceptibility, modification_level
		FROM assessments
		ORDER BY instructor_code, course_code, assessment_type
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all assessments: %w", err)
	}
	defer rows.Close()

	var records []model.AssessmentRecord
	for rows.Next() {
		var rec model.AssessmentRecord
		if err := rows.Scan(
			&rec.InstructorCode,
			&rec.CourseCode,
			&rec.AssessmentType,
			&rec.PercentOfClassAssessment,
			&rec.AIMisuseSusceptibility,
			&rec.ModificationLevel,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}
