package handler

import (
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/rs/zerolog"
)

// InstructorHandler serves the authenticated instructor's profile.
type InstructorHandler struct {
	instructorService service.InstructorService
	logger            zerolog.Logger
}

// NewInstructorHandler creates a new InstructorHandler.
func NewInstructorHandler(instructorService service.InstructorService, logger zerolog.Logger) *InstructorHandler {
	return &InstructorHandler{instructorService: instructorService, logger: logger}
}

// RegisterRoutes mounts instructor routes
func (h *InstructorHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/instructors/me", authMw(http.HandlerFunc(h.me)))
}

// me godoc
// @Summary Get the authenticated instructor's profile
// @Description Returns the profile for the instructor the session token belongs to.
// @Tags instructors
// @Produce json
// @Success 200 {object} dto.InstructorResponseDTO
// @Failure 401 {object} map[string]string "Missing or stale session"
// @Failure 500 {object} map[string]string "Roster unreachable"
// @Router /instructors/me [get]
func (h *InstructorHandler) me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	code, ok := r.Context().Value(middleware.InstructorContextKey).(string)
	if !ok || code == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized: instructor code not found in context")
		return
	}

	instructor, err := h.instructorService.Get(r.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrInstructorNotFound) {
			// The code was removed from the roster after the token was issued.
			writeError(w, http.StatusUnauthorized, "Invalid code. Please check your code or contact the organizer.")
			return
		}
		h.logger.Error().Err(err).Msg("Failed to load instructor profile")
		writeError(w, http.StatusInternalServerError, "There was a problem connecting to the database while checking your code. Please try again in a moment or contact David.")
		return
	}

	writeJSON(w, http.StatusOK, dto.InstructorResponseDTO{
		Code:  instructor.Code,
		Name:  instructor.Name,
		Email: instructor.Email,
	})
}
