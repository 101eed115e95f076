package dto

import "time"

// CourseCreateDTO is used for incoming course creation requests. Level and
// modality take the fixed survey values; empty means not answered.
type CourseCreateDTO struct {
	CourseCode     string `json:"course_code" validate:"required"`
	CourseTitle    string `json:"course_title"`
	Term           string `json:"term"`
	Level          string `json:"level" validate:"omitempty,oneof=Undergraduate Graduate Other"`
	Modality       string `json:"modality" validate:"omitempty,oneof='In person' 'Online asynchronous' 'Online synchronous'"`
	ApproxStudents int    `json:"approx_students" validate:"gte=0,lte=1000"`
}

// CourseUpdateDTO is used for incoming course update requests. Every mutable
// field is replaced wholesale; the course code cannot change after creation.
type CourseUpdateDTO struct {
	CourseTitle    string `json:"course_title"`
	Term           string `json:"term"`
	Level          string `json:"level" validate:"omitempty,oneof=Undergraduate Graduate Other"`
	Modality       string `json:"modality" validate:"omitempty,oneof='In person' 'Online asynchronous' 'Online synchronous'"`
	ApproxStudents int    `json:"approx_students" validate:"gte=0,lte=1000"`
}

// CourseResponseDTO is returned in API responses for courses
type CourseResponseDTO struct {
	ID             string    `json:"id"`
	InstructorCode string    `json:"instructor_code"`
	CourseCode     string    `json:"course_code"`
	CourseTitle    string    `json:"course_title"`
	Term           string    `json:"term"`
	Level          string    `json:"level"`
	Modality       string    `json:"modality"`
	ApproxStudents int       `json:"approx_students"`
	CreatedAt      time.Time `json:"created_at"`
}

// CourseListResponseDTO wraps an instructor's course list.
type CourseListResponseDTO struct {
	Courses []CourseResponseDTO `json:"courses"`
}
