package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/service"
)

// PaymentSettingsHandler handles payment-settings HTTP requests.
type PaymentSettingsHandler struct {
	service service.PaymentSettingsService
	logger  zerolog.Logger
}

// NewPaymentSettingsHandler creates a new payment settings handler.
func NewPaymentSettingsHandler(service service.PaymentSettingsService, logger zerolog.Logger) *PaymentSettingsHandler {
	return &PaymentSettingsHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment_settings").Logger(),
	}
}

// GetActive handles GET /api/payment-settings requests. The storefront
// uses this to render bank and UPI details at checkout.
func (h *PaymentSettingsHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetActive(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// List handles GET /api/admin/payment-settings requests.
func (h *PaymentSettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// Create handles POST /api/admin/payment-settings requests.
func (h *PaymentSettingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	settings, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, settings)
}

// Update handles PUT /api/admin/payment-settings/{id} requests.
func (h *PaymentSettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings ID format", h.logger)
		return
	}

	var req model.PaymentSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	settings, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// Delete handles DELETE /api/admin/payment-settings/{id} requests.
func (h *PaymentSettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings ID format", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "payment settings deleted"})
}

// Activate handles PUT /api/admin/payment-settings/{id}/activate
// requests.
func (h *PaymentSettingsHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings ID format", h.logger)
		return
	}

	settings, err := h.service.Activate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
