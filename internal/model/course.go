package model

import "time"

// Course is one course entry owned by an instructor. CourseCode is chosen by
// the instructor and immutable after creation; uniqueness within an
// instructor's list is expected but not enforced. Instructors teaching the
// same course in several modalities enter it once per modality.
type Course struct {
	ID             string    `db:"id" json:"id"`
	InstructorCode string    `db:"instructor_code" json:"instructor_code"`
	CourseCode     string    `db:"course_code" json:"course_code"`
	CourseTitle    string    `db:"course_title" json:"course_title"`
	Term           string    `db:"term" json:"term"`
	Level          string    `db:"level" json:"level"`
	Modality       string    `db:"modality" json:"modality"`
	ApproxStudents int       `db:"approx_students" json:"approx_students"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
