package dto

// LoginRequestDTO carries the access code an instructor received
// out-of-band.
type LoginRequestDTO struct {
	Code string `json:"code" validate:"required"`
}

// InstructorResponseDTO is the instructor profile returned on login and
// profile reads.
type InstructorResponseDTO struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponseDTO is the session token plus the profile it belongs to.
type LoginResponseDTO struct {
	Token      string                `json:"token"`
	Instructor InstructorResponseDTO `json:"instructor"`
}
