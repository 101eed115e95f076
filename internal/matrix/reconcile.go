package matrix

import "app/internal/model"

// A fresh course starts with the full assessment weight on this registry
// type, so the default matrix already satisfies the percent-sum rule.
var defaultSeedType = assessmentTypes[0]

const defaultSeedPercent = 100.0

// Reconcile merges whatever rows are stored for one course onto the fixed
// registry shape. The result always has exactly one row per registry type,
// in registry order: stored rows whose label is not in the registry are
// dropped, and registry types with no stored row are zero-filled.
//
// When stored is empty the matrix is seeded with defaultSeedPercent on the
// first registry type. Partial input is not re-seeded; the caller is
// expected to re-balance before saving. Reconcile never fails.
func Reconcile(stored []model.AssessmentRecord) []model.AssessmentRecord {
	byType := make(map[string]model.AssessmentRecord, len(stored))
	for _, rec := range stored {
		// Labels join exactly. A stored label that drifted (whitespace,
		// case) does not match and is left behind as an orphan; its
		// registry row comes back zero-filled.
		if _, ok := byType[rec.AssessmentType]; !ok {
			byType[rec.AssessmentType] = rec
		}
	}

	rows := make([]model.AssessmentRecord, len(assessmentTypes))
	for i, label := range assessmentTypes {
		if rec, ok := byType[label]; ok {
			rows[i] = rec
			continue
		}
		rows[i] = model.AssessmentRecord{AssessmentType: label}
	}

	if len(stored) == 0 {
		// Seed by registry lookup, not by row position.
		if i := TypeIndex(defaultSeedType); i >= 0 {
			rows[i].PercentOfClassAssessment = defaultSeedPercent
		}
	}

	return rows
}
