package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/service"
)

// ReportHandler handles admin analytics HTTP requests.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("handler", "report").Logger(),
	}
}

// Dashboard handles GET /api/admin/reports/dashboard requests.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
