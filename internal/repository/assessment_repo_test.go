package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"app/internal/matrix"
	"app/internal/model"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// These tests run against a real Postgres with the schema from
// db/schema.sql applied. They are skipped unless TEST_DATABASE_URL is set.

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set, skip repository integration test")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("failed to open DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func validatedMatrix(t *testing.T, percents map[int]float64) matrix.ValidatedMatrix {
	t.Helper()
	rows := matrix.Reconcile(nil)
	if len(percents) > 0 {
		for i := range rows {
			rows[i].PercentOfClassAssessment = percents[i]
		}
	}
	vm, err := matrix.Validate(rows)
	if err != nil {
		t.Fatalf("failed to build validated matrix: %v", err)
	}
	return vm
}

func TestReplaceForCourseIdempotence(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewAssessmentRepo(db)

	instructorCode := "it-" + uuid.New().String()
	courseCode := "TEST 101"
	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, `DELETE FROM assessments WHERE instructor_code = $1`, instructorCode)
	})

	vm := validatedMatrix(t, map[int]float64{0: 60, 3: 40})

	if err := repo.ReplaceForCourse(ctx, instructorCode, courseCode, vm); err != nil {
		t.Fatalf("first replace failed: %v", err)
	}
	first, err := repo.ListForCourse(ctx, instructorCode, courseCode)
	if err != nil {
		t.Fatalf("failed to list after first replace: %v", err)
	}

	if err := repo.ReplaceForCourse(ctx, instructorCode, courseCode, vm); err != nil {
		t.Fatalf("second replace failed: %v", err)
	}
	second, err := repo.ListForCourse(ctx, instructorCode, courseCode)
	if err != nil {
		t.Fatalf("failed to list after second replace: %v", err)
	}

	if len(first) != 11 || len(second) != 11 {
		t.Fatalf("expected 11 rows after each replace, got %d then %d", len(first), len(second))
	}

	a, b := matrix.Reconcile(first), matrix.Reconcile(second)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("row %d differs between replaces: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestCourseDeleteCascade(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	courses := NewCourseRepo(db)
	assessments := NewAssessmentRepo(db)

	instructorCode := "it-" + uuid.New().String()
	course := &model.Course{
		InstructorCode: instructorCode,
		CourseCode:     "TEST 202",
		CourseTitle:    "Integration Testing",
		Term:           "Fall 2025",
		Level:          "Undergraduate",
		Modality:       "In person",
		ApproxStudents: 30,
	}
	if err := courses.Create(ctx, course); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, `DELETE FROM assessments WHERE instructor_code = $1`, instructorCode)
		_, _ = db.ExecContext(ctx, `DELETE FROM courses WHERE instructor_code = $1`, instructorCode)
	})
	if course.ID == "" {
		t.Fatal("expected generated course id")
	}

	vm := validatedMatrix(t, nil)
	if err := assessments.ReplaceForCourse(ctx, instructorCode, course.CourseCode, vm); err != nil {
		t.Fatalf("failed to save matrix: %v", err)
	}

	if err := courses.Delete(ctx, course.ID, instructorCode, course.CourseCode); err != nil {
		t.Fatalf("failed to delete course: %v", err)
	}

	stored, err := assessments.ListForCourse(ctx, instructorCode, course.CourseCode)
	if err != nil {
		t.Fatalf("failed to list assessments after delete: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected no assessment rows after cascade delete, got %d", len(stored))
	}

	// With nothing stored, the next read reconciles to the seeded default.
	rows := matrix.Reconcile(stored)
	if rows[0].PercentOfClassAssessment != 100 {
		t.Errorf("expected default-seeded matrix after cascade, got first percent %v", rows[0].PercentOfClassAssessment)
	}

	gone, err := courses.GetByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("failed to look up deleted course: %v", err)
	}
	if gone != nil {
		t.Fatal("expected course row to be deleted")
	}
}
