package model

// Instructor represents a study participant. Rows are provisioned
// out-of-band by the study team; this service only reads them.
type Instructor struct {
	Code  string `db:"code" json:"code"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}
