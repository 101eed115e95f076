package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"app/internal/matrix"
	"app/internal/model"

	"github.com/rs/zerolog"
)

type fakeAssessmentRepo struct {
	stored     []model.AssessmentRecord
	replaced   []model.AssessmentRecord
	replaces   int
	replaceErr error
}

func (f *fakeAssessmentRepo) ListForCourse(ctx context.Context, instructorCode, courseCode string) ([]model.AssessmentRecord, error) {
	return f.stored, nil
}

func (f *fakeAssessmentRepo) ReplaceForCourse(ctx context.Context, instructorCode, courseCode string, vm matrix.ValidatedMatrix) error {
	f.replaces++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = vm.Rows()
	return nil
}

func (f *fakeAssessmentRepo) ListAll(ctx context.Context) ([]model.AssessmentRecord, error) {
	return f.stored, nil
}

type fakeQueue struct {
	queue    string
	payloads [][]byte
	err      error
}

func (f *fakeQueue) Send(ctx context.Context, queue string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.queue = queue
	f.payloads = append(f.payloads, payload)
	return nil
}

type queueEvent struct {
	InstructorCode string `json:"instructor_code"`
	CourseCode     string `json:"course_code"`
	Trigger        string `json:"trigger"`
}

func decodeEvent(t *testing.T, payload []byte) queueEvent {
	t.Helper()
	var event queueEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		t.Fatalf("failed to unmarshal event payload: %v", err)
	}
	return event
}

func TestGetMatrixReconcilesStoredRows(t *testing.T) {
	types := matrix.Types()
	repo := &fakeAssessmentRepo{stored: []model.AssessmentRecord{
		{
			InstructorCode:           "f. lastname",
			CourseCode:               "ACCT 2001",
			AssessmentType:           types[3],
			PercentOfClassAssessment: 60,
			AIMisuseSusceptibility:   2,
			ModificationLevel:        1,
		},
	}}
	svc := NewAssessmentService(repo, &fakeQueue{}, "assessment_events", zerolog.Nop())

	rows, err := svc.GetMatrix(context.Background(), "f. lastname", "ACCT 2001")
	if err != nil {
		t.Fatalf("GetMatrix failed: %v", err)
	}
	if len(rows) != len(types) {
		t.Fatalf("expected %d rows, got %d", len(types), len(rows))
	}
	if rows[3].PercentOfClassAssessment != 60 || rows[3].AIMisuseSusceptibility != 2 {
		t.Errorf("stored values not carried onto the registry row: %+v", rows[3])
	}
	if rows[0].PercentOfClassAssessment != 0 {
		t.Errorf("partial matrices must not be re-seeded, got %v on row 0", rows[0].PercentOfClassAssessment)
	}
}

func TestGetMatrixSeedsDefaultWhenEmpty(t *testing.T) {
	repo := &fakeAssessmentRepo{}
	svc := NewAssessmentService(repo, &fakeQueue{}, "assessment_events", zerolog.Nop())

	rows, err := svc.GetMatrix(context.Background(), "f. lastname", "ACCT 2001")
	if err != nil {
		t.Fatalf("GetMatrix failed: %v", err)
	}
	if got := matrix.PercentTotal(rows); got != 100 {
		t.Fatalf("expected default matrix to total 100, got %v", got)
	}
	if rows[0].PercentOfClassAssessment != 100 {
		t.Errorf("expected the first registry row to hold the default percent, got %v", rows[0].PercentOfClassAssessment)
	}
}

func TestSaveMatrixReplacesAndPublishes(t *testing.T) {
	types := matrix.Types()
	repo := &fakeAssessmentRepo{}
	queue := &fakeQueue{}
	svc := NewAssessmentService(repo, queue, "assessment_events", zerolog.Nop())

	submitted := []model.AssessmentRecord{
		{AssessmentType: types[0], PercentOfClassAssessment: 60},
		{AssessmentType: types[5], PercentOfClassAssessment: 40, AIMisuseSusceptibility: 3},
	}
	rows, err := svc.SaveMatrix(context.Background(), "f. lastname", "ACCT 2001", submitted)
	if err != nil {
		t.Fatalf("SaveMatrix failed: %v", err)
	}
	if repo.replaces != 1 {
		t.Fatalf("expected one replace, got %d", repo.replaces)
	}
	if len(rows) != len(types) {
		t.Fatalf("expected %d reconciled rows back, got %d", len(types), len(rows))
	}
	if queue.queue != "assessment_events" || len(queue.payloads) != 1 {
		t.Fatalf("expected one event on assessment_events, got %d on %q", len(queue.payloads), queue.queue)
	}
	event := decodeEvent(t, queue.payloads[0])
	if event.Trigger != "assessments_replaced" || event.CourseCode != "ACCT 2001" || event.InstructorCode != "f. lastname" {
		t.Errorf("unexpected event payload: %+v", event)
	}
}

func TestSaveMatrixRejectsBadPercentTotal(t *testing.T) {
	types := matrix.Types()
	repo := &fakeAssessmentRepo{}
	queue := &fakeQueue{}
	svc := NewAssessmentService(repo, queue, "assessment_events", zerolog.Nop())

	submitted := []model.AssessmentRecord{
		{AssessmentType: types[0], PercentOfClassAssessment: 60},
		{AssessmentType: types[1], PercentOfClassAssessment: 50},
	}
	_, err := svc.SaveMatrix(context.Background(), "f. lastname", "ACCT 2001", submitted)

	var sumErr *matrix.PercentSumError
	if !errors.As(err, &sumErr) {
		t.Fatalf("expected PercentSumError, got %v", err)
	}
	if sumErr.Total != 110.0 {
		t.Errorf("expected reported total 110.0, got %v", sumErr.Total)
	}
	if repo.replaces != 0 {
		t.Errorf("the store must not be touched on validation failure, got %d replaces", repo.replaces)
	}
	if len(queue.payloads) != 0 {
		t.Errorf("no event should be published on validation failure")
	}
}

func TestSaveMatrixStoreFailurePublishesNothing(t *testing.T) {
	repo := &fakeAssessmentRepo{replaceErr: errors.New("connection reset")}
	queue := &fakeQueue{}
	svc := NewAssessmentService(repo, queue, "assessment_events", zerolog.Nop())

	submitted := []model.AssessmentRecord{
		{AssessmentType: matrix.Types()[0], PercentOfClassAssessment: 100},
	}
	if _, err := svc.SaveMatrix(context.Background(), "f. lastname", "ACCT 2001", submitted); err == nil {
		t.Fatal("expected the store error to surface")
	}
	if len(queue.payloads) != 0 {
		t.Errorf("no event should be published when the replace failed")
	}
}

func TestSaveMatrixSurvivesPublishFailure(t *testing.T) {
	repo := &fakeAssessmentRepo{}
	queue := &fakeQueue{err: errors.New("queue does not exist")}
	svc := NewAssessmentService(repo, queue, "assessment_events", zerolog.Nop())

	submitted := []model.AssessmentRecord{
		{AssessmentType: matrix.Types()[0], PercentOfClassAssessment: 100},
	}
	rows, err := svc.SaveMatrix(context.Background(), "f. lastname", "ACCT 2001", submitted)
	if err != nil {
		t.Fatalf("save must not fail when the event cannot be published: %v", err)
	}
	if repo.replaces != 1 {
		t.Errorf("expected the matrix to be persisted, got %d replaces", repo.replaces)
	}
	if len(rows) != len(matrix.Types()) {
		t.Errorf("expected a reconciled matrix back, got %d rows", len(rows))
	}
}
