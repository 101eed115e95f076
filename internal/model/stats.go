package model

import "time"

// AssessmentTypeStat is one row of the derived per-type aggregate table.
// The aggregation worker rebuilds these wholesale after every matrix save or
// course delete; nothing else writes them.
type AssessmentTypeStat struct {
	AssessmentType    string    `db:"assessment_type" json:"assessment_type"`
	CourseCount       int64     `db:"course_count" json:"course_count"`
	AvgPercent        float64   `db:"avg_percent" json:"avg_percent"`
	AvgSusceptibility float64   `db:"avg_susceptibility" json:"avg_susceptibility"`
	AvgModification   float64   `db:"avg_modification" json:"avg_modification"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
