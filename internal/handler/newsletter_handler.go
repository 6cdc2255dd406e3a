package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/service"
)

// NewsletterHandler handles newsletter HTTP requests.
type NewsletterHandler struct {
	service service.NewsletterService
	logger  zerolog.Logger
}

// NewNewsletterHandler creates a new newsletter handler.
func NewNewsletterHandler(service service.NewsletterService, logger zerolog.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		service: service,
		logger:  logger.With().Str("handler", "newsletter").Logger(),
	}
}

// Subscribe handles POST /api/newsletter/subscribe requests.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req model.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	sub, err := h.service.Subscribe(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// Unsubscribe handles POST /api/newsletter/unsubscribe requests.
func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req model.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	sub, err := h.service.Unsubscribe(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

// List handles GET /api/admin/newsletter requests.
func (h *NewsletterHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	subs, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, subs)
}
