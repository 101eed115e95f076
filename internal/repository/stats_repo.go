package repository

import (
	"context"
	"database/sql"
	"fmt"

	"app/internal/model"
)

// StatsRepository maintains the derived per-assessment-type aggregates.
type StatsRepository interface {
	// Rebuild recomputes every aggregate row from the assessments table,
	// replacing the previous set wholesale.
	Rebuild(ctx context.Context) error
	// List returns the current aggregates.
	List(ctx context.Context) ([]model.AssessmentTypeStat, error)
}

type statsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) Rebuild(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin stats rebuild transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assessment_type_stats`); err != nil {
		return fmt.Errorf("failed to clear stats: %w", err)
	}

	insertQuery := `
		INSERT INTO assessment_type_stats
		    (assessment_type, course_count, avg_percent, avg_susceptibility, avg_modification, updated_at)
		SELECT assessment_type,
		       COUNT(*),
		       AVG(percent_of_class_assessment),
		       AVG(ai_misuse_susceptibility),
		       AVG(modification_level),
		       NOW()
		FROM assessments
		GROUP BY assessment_type
	`
	if _, err := tx.ExecContext(ctx, insertQuery); err != nil {
		return fmt.Errorf("failed to insert stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stats rebuild: %w", err)
	}
	return nil
}

func (r *statsRepo) List(ctx context.Context) ([]model.AssessmentTypeStat, error) {
	query := `
		SELECT assessment_type, course_count, avg_percent, avg_susceptibility, avg_modification, updated_at
		FROM assessment_type_stats
		ORDER BY assessment_type
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	var stats []model.AssessmentTypeStat
	for rows.Next() {
		var s model.AssessmentTypeStat
		if err := rows.Scan(
			&s.AssessmentType,
			&s.CourseCount,
			&s.AvgPercent,
			&s.AvgSusceptibility,
			&s.AvgModification,
			&s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats = append(stats, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return stats, nil
}
