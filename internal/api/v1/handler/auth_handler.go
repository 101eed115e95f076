package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// AuthHandler handles instructor login.
type AuthHandler struct {
	instructorService service.InstructorService
	validate          *validator.Validate
	logger            zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(instructorService service.InstructorService, validate *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{instructorService: instructorService, validate: validate, logger: logger}
}

// RegisterRoutes mounts the login route. Login is the only route served
// without a session token.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/auth/login", http.HandlerFunc(h.login))
}

// login godoc
// @Summary Log in with an instructor access code
// @Description Verifies the access code against the roster and returns a session token plus the instructor profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequestDTO true "Login request"
// @Success 200 {object} dto.LoginResponseDTO
// @Failure 400 {object} map[string]string "Invalid JSON payload or blank code"
// @Failure 401 {object} map[string]string "Unknown access code"
// @Failure 500 {object} map[string]string "Roster unreachable"
// @Router /auth/login [post]
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Please enter a code.")
		return
	}

	token, instructor, err := h.instructorService.Login(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			writeError(w, http.StatusUnauthorized, "Invalid code. Please check your code or contact the organizer.")
			return
		}
		h.logger.Error().Err(err).Msg("Login lookup failed")
		writeError(w, http.StatusInternalServerError, "There was a problem connecting to the database while checking your code. Please try again in a moment or contact David.")
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponseDTO{
		Token: token,
		Instructor: dto.InstructorResponseDTO{
			Code:  instructor.Code,
			Name:  instructor.Name,
			Email: instructor.Email,
		},
	})
}
