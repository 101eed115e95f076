package matrix

// assessmentTypes is the closed registry of assessment categories. Order is
// significant: it drives default seeding and display order, and stored rows
// are always reconciled back onto this shape. There is no operation that
// adds, renames, or removes an entry.
var assessmentTypes = []string{
	"In-person exam/quiz, closed resources, no AI",
	"In-person exam/quiz, limited resources (notes/book), no AI",
	"In-person exam/quiz, open resources, AI allowed",
	"Online timed exam/quiz, closed resources, no AI",
	"Online timed exam/quiz, limited resources (notes/book), no AI",
	"Online timed exam/quiz, open resources, AI allowed",
	"Out-of-class untimed exam/quiz, closed resources, no AI",
	"Out-of-class untimed exam/quiz, limited resources (notes/book), no AI",
	"Out-of-class untimed exam/quiz, open resources, AI allowed",
	"In-person participation/presentations, no AI",
	"In-person participation/presentations, AI allowed",
}

// Types returns the ordered list of assessment type labels. The returned
// slice is a copy; callers may modify it freely.
func Types() []string {
	out := make([]string, len(assessmentTypes))
	copy(out, assessmentTypes)
	return out
}

// TypeIndex returns the registry position of label, or -1 when label is not
// a registered assessment type. Matching is exact: no trimming, no case
// folding.
func TypeIndex(label string) int {
	for i, t := range assessmentTypes {
		if t == label {
			return i
		}
	}
	return -1
}
