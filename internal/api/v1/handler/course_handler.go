package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/matrix"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CourseHandler handles course endpoints, including the assessment matrix
// nested under each course.
type CourseHandler struct {
	courseService     service.CourseService
	assessmentService service.AssessmentService
	validate          *validator.Validate
	logger            zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, assessmentService service.AssessmentService, validate *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService:     courseService,
		assessmentService: assessmentService,
		validate:          validate,
		logger:            logger,
	}
}

// RegisterRoutes mounts course routes
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/courses", authMw(http.HandlerFunc(h.handleCourses)))
	mux.Handle("/courses/", authMw(http.HandlerFunc(h.handleCourse)))
	mux.Handle("/assessment-types", authMw(http.HandlerFunc(h.listAssessmentTypes)))
}

func (h *CourseHandler) handleCourses(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/courses" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.listCourses(w, r)
	case http.MethodPost:
		h.createCourse(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CourseHandler) handleCourse(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/courses/")
	if path == "" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		if strings.HasSuffix(path, "/assessments") {
			h.getMatrix(w, r)
			return
		}
		h.getCourse(w, r)
	case http.MethodPut:
		if strings.HasSuffix(path, "/assessments") {
			h.saveMatrix(w, r)
			return
		}
		h.updateCourse(w, r)
	case http.MethodDelete:
		h.deleteCourse(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// instructorCode pulls the authenticated instructor's code out of the
// request context. A miss means the auth middleware did not run.
func instructorCode(w http.ResponseWriter, r *http.Request) (string, bool) {
	code, ok := r.Context().Value(middleware.InstructorContextKey).(string)
	if !ok || code == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized: instructor code not found in context")
		return "", false
	}
	return code, true
}

// listAssessmentTypes godoc
// @Summary List the fixed assessment type registry
// @Description Returns the eleven assessment types every matrix is keyed by, in display order.
// @Tags assessments
// @Produce json
// @Success 200 {object} dto.AssessmentTypesResponseDTO
// @Router /assessment-types [get]
func (h *CourseHandler) listAssessmentTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, dto.AssessmentTypesResponseDTO{AssessmentTypes: matrix.Types()})
}

// listCourses godoc
// @Summary List the instructor's courses
// @Description Returns the authenticated instructor's courses, newest first.
// @Tags courses
// @Produce json
// @Success 200 {object} dto.CourseListResponseDTO
// @Failure 401 {object} map[string]string "Missing session"
// @Failure 500 {object} map[string]string "Course list unavailable"
// @Router /courses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	code, ok := instructorCode(w, r)
	if !ok {
		return
	}
	courses, err := h.courseService.ListCourses(r.Context(), code)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list courses")
		writeError(w, http.StatusInternalServerError, "There was an error loading your courses from the database. Please refresh the page or try again later.")
		return
	}
	resp := dto.CourseListResponseDTO{Courses: make([]dto.CourseResponseDTO, 0, len(courses))}
	for i := range courses {
		resp.Courses = append(resp.Courses, courseResponse(&courses[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// createCourse godoc
// @Summary Add a course
// @Description Creates a course for the authenticated instructor.
// @Tags courses
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateDTO true "Course creation request"
// @Success 201 {object} dto.CourseResponseDTO
// @Failure 400 {object} map[string]string "Invalid JSON payload or validation failed"
// @Failure 401 {object} map[string]string "Missing session"
// @Failure 500 {object} map[string]string "Course could not be saved"
// @Router /courses [post]
func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	code, ok := instructorCode(w, r)
	if !ok {
		return
	}
	var req dto.CourseCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}
	if strings.TrimSpace(req.CourseCode) == "" {
		writeError(w, http.StatusBadRequest, "Course code is required.")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	course := &model.Course{
		InstructorCode: code,
		CourseCode:     req.CourseCode,
		CourseTitle:    req.CourseTitle,
		Term:           req.Term,
		Level:          req.Level,
		Modality:       req.Modality,
		ApproxStudents: req.ApproxStudents,
	}
	created, err := h.courseService.CreateCourse(r.Context(), course)
	if err != nil {
		h.logger.Error().Err(err).Str("course_code", req.CourseCode).Msg("Failed to create course")
		writeError(w, http.StatusInternalServerError, "There was an error while saving this course. Please try again, and if the problem persists, contact David.")
		return
	}
	writeJSON(w, http.StatusCreated, courseResponse(created))
}

// getCourse godoc
// @Summary Get a course
// @Description Retrieves one of the authenticated instructor's courses by id.
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 401 {object} map[string]string "Missing session"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Course unavailable"
// @Router /courses/{courseId} [get]
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	code, ok := instructorCode(w, r)
	if !ok {
		return
	}
	courseID := strings.TrimPrefix(r.URL.Path, "/courses/")
	course, ok := h.lookupCourse(w, r, courseID, code)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, courseResponse(course))
}

// updateCourse godoc
// @Summary Update a course
// @Description Replaces the editable fields of a course. The course code itself cannot change.
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param course body dto.CourseUpdateDTO true "Course update request"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 400 {object} map[string]string "Invalid JSON payload or validation failed"
// @Failure 401 {object} map[string]string "Missing session"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Course could not be updated"
// @Router /courses/{courseId} [put]
func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	code, ok := instructorCode(w, r)
	if !ok {
		return
	}
	courseID := strings.TrimPrefix(r.URL.Path, "/courses/")
	var req dto.CourseUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	course := &model.Course{
		ID:             courseID,
		InstructorCode: code,
		CourseTitle:    req.CourseTitle,
		Term:           req.Term,
		Level:          req.Level,
		Modality:       req.Modality,
		ApproxStudents: req.ApproxStudents,
	}
	updated, err := h.courseService.UpdateCourse(r.Context(), course)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			writeError(w, http.StatusNotFound, "Course not found")
			return
		}
		h.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to update course")
		writeError(w, http.StatusInternalServerError, "There was an error updating this course. Please try again, and if the problem continues, contact David.")
		return
	}
	writeJSON(w, http.StatusOK, courseResponse(updated))
}

// deleteCourse godoc
// @Summary Delete a course
// @Description Deletes a course together with its assessment rows.
// @Tags courses
// @Param courseId path string true "Course ID"
// @Success 204 {string} string "Deleted"
// @Failure 401 {object} map[string]string "Missing session"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Course could not be deleted"
// @Router /courses/{courseId} [delete]
func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	code, ok := instructorCode(w, r)
	if !ok {
		return
	}
	courseID := strings.TrimPrefix(r.URL.Path, "/courses/")
	if err := h.courseService.DeleteCourse(r.Context(), courseID, code); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			writeError(w, http.StatusNotFound, "Course not found")
			return
		}
		h.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to delete course")
		writeError(w, http.StatusInternalServerError, "There was an error deleting this course. Please try again, and if the problem continues, contact David.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getMatrix godoc
// @Summary Get a course's assessment matrix
// @Description Returns the course's assessment matrix reconciled onto the fixed type registry, one row per type.
// @Tags assessments
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.MatrixResponseDTO
// @Failure 401 {object} map[string]string "Missing session"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Assessment data unavailable"
// @Router /courses/{courseId}/assessments [get]
func (h *CourseHandler) getMatrix(w http.ResponseWriter, r *http.Request) {
	code, ok := instructorCode(w, r)
	if !ok {
		return
	}
	courseID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/courses/"), "/assessments")
	course, ok := h.lookupCourse(w, r, courseID, code)
	if !ok {
		return
	}

	rows, err := h.assessmentService.GetMatrix(r.Context(), code, course.CourseCode)
	if err != nil {
		h.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to load assessments")
		writeError(w, http.StatusInternalServerError, "There was an error loading the assessment data for this course. Please refresh the page or try another course.")
		return
	}
	writeJSON(w, http.StatusOK, matrixResponse(rows))
}

// saveMatrix godoc
// @Summary Save a course's assessment matrix
// @Description Validates that the percent column sums to 100 and replaces the stored matrix wholesale.
// @Tags assessments
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param matrix body dto.MatrixSaveDTO true "Edited assessment matrix"
// @Success 200 {object} dto.MatrixResponseDTO
// @Failure 400 {object} map[string]string "Invalid JSON payload or validation failed"
// @Failure 401 {object} map[string]string "Missing session"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 422 {object} map[string]string "Percent column does not sum to 100"
// @Failure 500 {object} map[string]string "Assessments could not be saved"
// @Router /courses/{courseId}/assessments [put]
func (h *CourseHandler) saveMatrix(w http.ResponseWriter, r *http.Request) {
	code, ok := instructorCode(w, r)
	if !ok {
		return
	}
	courseID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/courses/"), "/assessments")
	course, ok := h.lookupCourse(w, r, courseID, code)
	if !ok {
		return
	}

	var req dto.MatrixSaveDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	records := make([]model.AssessmentRecord, 0, len(req.Rows))
	for _, row := range req.Rows {
		records = append(records, model.AssessmentRecord{
			InstructorCode:           code,
			CourseCode:               course.CourseCode,
			AssessmentType:           row.AssessmentType,
			PercentOfClassAssessment: row.PercentOfClassAssessment,
			AIMisuseSusceptibility:   row.AIMisuseSusceptibility,
			ModificationLevel:        row.ModificationLevel,
		})
	}

	saved, err := h.assessmentService.SaveMatrix(r.Context(), code, course.CourseCode, records)
	if err != nil {
		var sumErr *matrix.PercentSumError
		if errors.As(err, &sumErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error": sumErr.Error(),
				"total": sumErr.Total,
			})
			return
		}
		h.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to save assessments")
		writeError(w, http.StatusInternalServerError, "There was an unexpected error while saving your assessments. You can try again, and if the problem continues, please contact David.")
		return
	}
	writeJSON(w, http.StatusOK, matrixResponse(saved))
}

// lookupCourse resolves a course id to one of the caller's courses, writing
// the error response on failure.
func (h *CourseHandler) lookupCourse(w http.ResponseWriter, r *http.Request, courseID, code string) (*model.Course, bool) {
	course, err := h.courseService.GetCourse(r.Context(), courseID, code)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			writeError(w, http.StatusNotFound, "Course not found")
			return nil, false
		}
		h.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to retrieve course")
		writeError(w, http.StatusInternalServerError, "There was an error loading your courses from the database. Please refresh the page or try again later.")
		return nil, false
	}
	return course, true
}

func courseResponse(c *model.Course) dto.CourseResponseDTO {
	return dto.CourseResponseDTO{
		ID:             c.ID,
		InstructorCode: c.InstructorCode,
		CourseCode:     c.CourseCode,
		CourseTitle:    c.CourseTitle,
		Term:           c.Term,
		Level:          c.Level,
		Modality:       c.Modality,
		ApproxStudents: c.ApproxStudents,
		CreatedAt:      c.CreatedAt,
	}
}

func matrixResponse(rows []model.AssessmentRecord) dto.MatrixResponseDTO {
	resp := dto.MatrixResponseDTO{
		Rows:  make([]dto.AssessmentRowDTO, 0, len(rows)),
		Total: matrix.PercentTotal(rows),
	}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, dto.AssessmentRowDTO{
			AssessmentType:           row.AssessmentType,
			PercentOfClassAssessment: row.PercentOfClassAssessment,
			AIMisuseSusceptibility:   row.AIMisuseSusceptibility,
			ModificationLevel:        row.ModificationLevel,
		})
	}
	return resp
}
