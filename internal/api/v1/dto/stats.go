package dto

import "time"

// AssessmentTypeStatDTO is one aggregate row over all stored assessments.
type AssessmentTypeStatDTO struct {
	AssessmentType    string    `json:"assessment_type"`
	CourseCount       int64     `json:"course_count"`
	AvgPercent        float64   `json:"avg_percent"`
	AvgSusceptibility float64   `json:"avg_susceptibility"`
	AvgModification   float64   `json:"avg_modification"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// StatsResponseDTO wraps the aggregate list.
type StatsResponseDTO struct {
	Stats []AssessmentTypeStatDTO `json:"stats"`
}
