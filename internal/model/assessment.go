package model

// AssessmentRecord is one row of a course's assessment matrix: how much the
// assessment type contributes to the course grade, how susceptible it is to
// AI misuse, and how far it has been redesigned since AI tools became
// common. Rows are keyed by (instructor_code, course_code, assessment_type)
// and are always persisted as a complete set for one course; there is no
// per-row lifecycle.
type AssessmentRecord struct {
	InstructorCode           string  `db:"instructor_code" json:"instructor_code"`
	CourseCode               string  `db:"course_code" json:"course_code"`
	AssessmentType           string  `db:"assessment_type" json:"assessment_type"`
	PercentOfClassAssessment float64 `db:"percent_of_class_assessment" json:"percent_of_class_assessment"`
	AIMisuseSusceptibility   float64 `db:"ai_misuse_susceptibility" json:"ai_misuse_susceptibility"`
	ModificationLevel        float64 `db:"modification_level" json:"modification_level"`
}
