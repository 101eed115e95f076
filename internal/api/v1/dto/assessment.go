package dto

// AssessmentTypesResponseDTO lists the fixed assessment type registry in
// display order.
type AssessmentTypesResponseDTO struct {
	AssessmentTypes []string `json:"assessment_types"`
}

// AssessmentRowDTO is one editable row of a course's assessment matrix.
// Numeric fields the caller leaves out default to zero.
type AssessmentRowDTO struct {
	AssessmentType           string  `json:"assessment_type"`
	PercentOfClassAssessment float64 `json:"percent_of_class_assessment"`
	AIMisuseSusceptibility   float64 `json:"ai_misuse_susceptibility"`
	ModificationLevel        float64 `json:"modification_level"`
}

// MatrixSaveDTO is the caller-edited matrix submitted for persistence.
type MatrixSaveDTO struct {
	Rows []AssessmentRowDTO `json:"rows" validate:"required"`
}

// MatrixResponseDTO is the reconciled matrix for one course plus the percent
// total the edit surface displays.
type MatrixResponseDTO struct {
	Rows  []AssessmentRowDTO `json:"rows"`
	Total float64            `json:"total"`
}
