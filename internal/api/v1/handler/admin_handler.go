package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"app/internal/api/v1/dto"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// AdminHandler serves the operator-only surface: CSV exports, aggregate
// stats, and the dead-letter queue.
type AdminHandler struct {
	exportService service.ExportService
	statsService  service.StatsService
	dlqService    service.DLQService
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(exportService service.ExportService, statsService service.StatsService, dlqService service.DLQService, validate *validator.Validate, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		exportService: exportService,
		statsService:  statsService,
		dlqService:    dlqService,
		validate:      validate,
		logger:        logger,
	}
}

// RegisterRoutes mounts the admin routes behind the admin-token middleware.
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux, adminMw func(http.Handler) http.Handler) {
	mux.Handle("/admin/exports", adminMw(http.HandlerFunc(h.createExport)))
	mux.Handle("/admin/stats", adminMw(http.HandlerFunc(h.listStats)))
	mux.Handle("/admin/dead-letters", adminMw(http.HandlerFunc(h.listDeadLetters)))
}

// createExport godoc
// @Summary Export a dataset to CSV
// @Description Snapshots the requested dataset to object storage and returns a short-lived download URL.
// @Tags admin
// @Accept json
// @Produce json
// @Param export body dto.ExportCreateDTO true "Dataset selection"
// @Success 201 {object} dto.ExportResponseDTO
// @Failure 400 {object} map[string]string "Invalid JSON payload or unknown dataset"
// @Failure 401 {object} map[string]string "Missing or wrong admin token"
// @Failure 500 {object} map[string]string "Export failed"
// @Router /admin/exports [post]
func (h *AdminHandler) createExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.ExportCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "dataset must be one of: assessments, courses")
		return
	}

	snapshot, err := h.exportService.Export(r.Context(), req.Dataset)
	if err != nil {
		if errors.Is(err, service.ErrUnknownDataset) {
			writeError(w, http.StatusBadRequest, "dataset must be one of: assessments, courses")
			return
		}
		h.logger.Error().Err(err).Str("dataset", req.Dataset).Msg("failed to create export")
		writeError(w, http.StatusInternalServerError, "failed to create export")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExportResponseDTO{
		Dataset:     snapshot.Dataset,
		ObjectKey:   snapshot.ObjectKey,
		DownloadURL: snapshot.DownloadURL,
		RowCount:    snapshot.RowCount,
		ExpiresAt:   snapshot.ExpiresAt,
	})
}

// listStats godoc
// @Summary List per-type assessment aggregates
// @Description Returns the aggregates maintained by the aggregation worker, in registry order.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.StatsResponseDTO
// @Failure 401 {object} map[string]string "Missing or wrong admin token"
// @Failure 500 {object} map[string]string "Stats unavailable"
// @Router /admin/stats [get]
func (h *AdminHandler) listStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	stats, err := h.statsService.ListStats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list stats")
		writeError(w, http.StatusInternalServerError, "failed to list stats")
		return
	}

	resp := dto.StatsResponseDTO{Stats: make([]dto.AssessmentTypeStatDTO, 0, len(stats))}
	for _, s := range stats {
		resp.Stats = append(resp.Stats, dto.AssessmentTypeStatDTO{
			AssessmentType:    s.AssessmentType,
			CourseCount:       s.CourseCount,
			AvgPercent:        s.AvgPercent,
			AvgSusceptibility: s.AvgSusceptibility,
			AvgModification:   s.AvgModification,
			UpdatedAt:         s.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// listDeadLetters godoc
// @Summary List parked queue messages
// @Description Returns messages that exhausted their retries, newest first.
// @Tags admin
// @Produce json
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Offset into the list"
// @Success 200 {object} dto.DeadLettersResponseDTO
// @Failure 401 {object} map[string]string "Missing or wrong admin token"
// @Failure 500 {object} map[string]string "Dead letters unavailable"
// @Router /admin/dead-letters [get]
func (h *AdminHandler) listDeadLetters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	limit := 50
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	offset := 0
	if o := q.Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	messages, err := h.dlqService.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list dead letters")
		writeError(w, http.StatusInternalServerError, "failed to list dead letters")
		return
	}

	resp := dto.DeadLettersResponseDTO{DeadLetters: make([]dto.DeadLetterMessageDTO, 0, len(messages))}
	for _, m := range messages {
		resp.DeadLetters = append(resp.DeadLetters, dto.DeadLetterMessageDTO{
			ID:           m.ID,
			QueueName:    m.QueueName,
			MessageID:    m.MessageID,
			Payload:      m.Payload,
			ErrorDetails: m.ErrorDetails,
			Status:       m.Status,
			CreatedAt:    m.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
