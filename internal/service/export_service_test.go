package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"app/internal/matrix"
	"app/internal/model"

	"github.com/rs/zerolog"
)

func TestExportUnknownDataset(t *testing.T) {
	svc := NewExportService(&fakeAssessmentRepo{}, &fakeCourseRepo{}, nil, "exports", 15*time.Minute, zerolog.Nop())

	if _, err := svc.Export(context.Background(), "instructors"); !errors.Is(err, ErrUnknownDataset) {
		t.Fatalf("expected ErrUnknownDataset, got %v", err)
	}
}

func TestAssessmentCSVRecords(t *testing.T) {
	rows := []model.AssessmentRecord{
		{
			InstructorCode:           "f. lastname",
			CourseCode:               "ACCT 2001",
			AssessmentType:           matrix.Types()[0],
			PercentOfClassAssessment: 62.5,
			AIMisuseSusceptibility:   2,
			ModificationLevel:        1,
		},
	}
	records := assessmentCSVRecords(rows)

	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	if records[0][0] != "instructor_code" || records[0][3] != "percent_of_class_assessment" {
		t.Errorf("unexpected header: %v", records[0])
	}
	row := records[1]
	if row[1] != "ACCT 2001" || row[3] != "62.5" || row[4] != "2" {
		t.Errorf("unexpected row: %v", row)
	}
}

func TestCourseCSVRecords(t *testing.T) {
	created := time.Date(2025, 8, 14, 9, 30, 0, 0, time.UTC)
	records := courseCSVRecords([]model.Course{{
		ID:             "c1",
		InstructorCode: "f. lastname",
		CourseCode:     "ACCT 2001",
		CourseTitle:    "Intro to Financial Accounting",
		Term:           "Fall 2025",
		Level:          "Undergraduate",
		Modality:       "In person",
		ApproxStudents: 45,
		CreatedAt:      created,
	}})

	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	row := records[1]
	if row[7] != "45" {
		t.Errorf("expected approx_students of 45, got %q", row[7])
	}
	if row[8] != "2025-08-14T09:30:00Z" {
		t.Errorf("unexpected created_at formatting: %q", row[8])
	}
}
