package repository

import (
	"context"
	"database/sql"
	"errors"

	"app/internal/model"
)

// InstructorRepository reads instructor rows. Instructors are provisioned
// out-of-band; there is no write path here.
type InstructorRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Instructor, error)
}

type instructorRepo struct {
	db *sql.DB
}

func NewInstructorRepo(db *sql.DB) InstructorRepository {
	return &instructorRepo{db: db}
}

// GetByCode looks up an instructor by access code. Returns nil, nil when the
// code is unknown.
func (r *instructorRepo) GetByCode(ctx context.Context, code string) (*model.Instructor, error) {
	var ins model.Instructor
	query := `SELECT code, name, email FROM instructors WHERE code = $1`
	row := r.db.QueryRowContext(ctx, query, code)
	if err := row.Scan(&ins.Code, &ins.Name, &ins.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ins, nil
}
