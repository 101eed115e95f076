package matrix

import (
	"fmt"
	"math"
	"strings"

	"app/internal/model"
)

// PercentSumTolerance is how far the percent column may drift from 100
// before a save is rejected. It allows slight rounding error, nothing more.
const PercentSumTolerance = 0.5

// PercentSumError reports a candidate matrix whose percent-of-assessment
// column does not sum to 100. Total carries the observed sum so callers can
// show it to the instructor.
type PercentSumError struct {
	Total float64
}

func (e *PercentSumError) Error() string {
	return fmt.Sprintf(
		"The 'Percent of class assessment' values must sum to 100. Right now they sum to %.1f. Please adjust the numbers and try again.",
		e.Total,
	)
}

// ValidatedMatrix holds rows that passed Validate. The assessment store only
// accepts this type, so every path into persistence has been checked against
// the percent-sum rule.
type ValidatedMatrix struct {
	rows []model.AssessmentRecord
}

// Rows returns a copy of the validated rows.
func (m ValidatedMatrix) Rows() []model.AssessmentRecord {
	out := make([]model.AssessmentRecord, len(m.rows))
	copy(out, m.rows)
	return out
}

// Validate checks a caller-edited matrix against the percent-sum rule.
// Labels are trimmed of surrounding whitespace before anything else; numeric
// fields the caller never set are already zero, which is the defaulting the
// rule expects. Individual values outside 0-100 are accepted: bounds are an
// input-capture hint, only the sum is enforced at the save boundary.
func Validate(rows []model.AssessmentRecord) (ValidatedMatrix, error) {
	normalized := make([]model.AssessmentRecord, len(rows))
	var total float64
	for i, rec := range rows {
		rec.AssessmentType = strings.TrimSpace(rec.AssessmentType)
		total += rec.PercentOfClassAssessment
		normalized[i] = rec
	}

	if math.Abs(total-100.0) > PercentSumTolerance {
		return ValidatedMatrix{}, &PercentSumError{Total: total}
	}

	return ValidatedMatrix{rows: normalized}, nil
}

// PercentTotal sums the percent-of-assessment column. The edit surface shows
// this running total alongside the matrix.
func PercentTotal(rows []model.AssessmentRecord) float64 {
	var total float64
	for _, rec := range rows {
		total += rec.PercentOfClassAssessment
	}
	return total
}
