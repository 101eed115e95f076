package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"app/internal/model"

	"github.com/rs/zerolog"
)

type courseDeleteCall struct {
	id             string
	instructorCode string
	courseCode     string
}

type fakeCourseRepo struct {
	course  *model.Course
	created *model.Course
	updated *model.Course
	deletes []courseDeleteCall
}

func (f *fakeCourseRepo) ListByInstructor(ctx context.Context, instructorCode string) ([]model.Course, error) {
	if f.course == nil || f.course.InstructorCode != instructorCode {
		return []model.Course{}, nil
	}
	return []model.Course{*f.course}, nil
}

func (f *fakeCourseRepo) Create(ctx context.Context, c *model.Course) error {
	c.ID = "generated-id"
	c.CreatedAt = time.Now()
	f.created = c
	return nil
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	if f.course != nil && f.course.ID == id {
		found := *f.course
		return &found, nil
	}
	return nil, nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, c *model.Course) error {
	f.updated = c
	return nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id, instructorCode, courseCode string) error {
	f.deletes = append(f.deletes, courseDeleteCall{id, instructorCode, courseCode})
	return nil
}

func (f *fakeCourseRepo) ListAll(ctx context.Context) ([]model.Course, error) {
	if f.course == nil {
		return []model.Course{}, nil
	}
	return []model.Course{*f.course}, nil
}

func TestDeleteCoursePublishesCourseDeleted(t *testing.T) {
	repo := &fakeCourseRepo{course: &model.Course{ID: "c1", InstructorCode: "f. lastname", CourseCode: "ACCT 2001"}}
	queue := &fakeQueue{}
	svc := NewCourseService(repo, queue, "assessment_events", zerolog.Nop())

	if err := svc.DeleteCourse(context.Background(), "c1", "f. lastname"); err != nil {
		t.Fatalf("DeleteCourse failed: %v", err)
	}
	if len(repo.deletes) != 1 {
		t.Fatalf("expected one delete, got %d", len(repo.deletes))
	}
	call := repo.deletes[0]
	if call.id != "c1" || call.instructorCode != "f. lastname" || call.courseCode != "ACCT 2001" {
		t.Errorf("unexpected delete call: %+v", call)
	}
	if len(queue.payloads) != 1 {
		t.Fatalf("expected one event, got %d", len(queue.payloads))
	}
	event := decodeEvent(t, queue.payloads[0])
	if event.Trigger != "course_deleted" || event.CourseCode != "ACCT 2001" {
		t.Errorf("unexpected event payload: %+v", event)
	}
}

func TestDeleteCourseOwnedByAnotherInstructor(t *testing.T) {
	repo := &fakeCourseRepo{course: &model.Course{ID: "c1", InstructorCode: "f. lastname", CourseCode: "ACCT 2001"}}
	queue := &fakeQueue{}
	svc := NewCourseService(repo, queue, "assessment_events", zerolog.Nop())

	err := svc.DeleteCourse(context.Background(), "c1", "someone else")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	if len(repo.deletes) != 0 {
		t.Errorf("delete must not reach the store for another instructor's course")
	}
	if len(queue.payloads) != 0 {
		t.Errorf("no event should be published when nothing was deleted")
	}
}

func TestUpdateCourseKeepsCourseCode(t *testing.T) {
	repo := &fakeCourseRepo{course: &model.Course{
		ID:             "c1",
		InstructorCode: "f. lastname",
		CourseCode:     "ACCT 2001",
		CourseTitle:    "Intro to Financial Accounting",
	}}
	svc := NewCourseService(repo, &fakeQueue{}, "assessment_events", zerolog.Nop())

	updated, err := svc.UpdateCourse(context.Background(), &model.Course{
		ID:             "c1",
		InstructorCode: "f. lastname",
		CourseCode:     "HACK 9999",
		CourseTitle:    "  Intermediate Accounting  ",
	})
	if err != nil {
		t.Fatalf("UpdateCourse failed: %v", err)
	}
	if updated.CourseCode != "ACCT 2001" {
		t.Errorf("course code must stay immutable, got %q", updated.CourseCode)
	}
	if updated.CourseTitle != "Intermediate Accounting" {
		t.Errorf("expected trimmed title, got %q", updated.CourseTitle)
	}
	if repo.updated == nil {
		t.Fatal("expected the update to reach the store")
	}
}

func TestCreateCourseTrimsFields(t *testing.T) {
	repo := &fakeCourseRepo{}
	svc := NewCourseService(repo, &fakeQueue{}, "assessment_events", zerolog.Nop())

	created, err := svc.CreateCourse(context.Background(), &model.Course{
		InstructorCode: "f. lastname",
		CourseCode:     " ACCT 2001 ",
		Term:           " Fall 2025 ",
	})
	if err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}
	if created.CourseCode != "ACCT 2001" || created.Term != "Fall 2025" {
		t.Errorf("expected trimmed fields, got %q / %q", created.CourseCode, created.Term)
	}
	if created.ID == "" {
		t.Error("expected the generated id to be filled in")
	}
}

func TestGetCourseNotFound(t *testing.T) {
	svc := NewCourseService(&fakeCourseRepo{}, &fakeQueue{}, "assessment_events", zerolog.Nop())

	if _, err := svc.GetCourse(context.Background(), "missing", "f. lastname"); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}
