// internal/handlers/purchases.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ammerola/resell-pos/internal/core/ports"
)

// PurchaseHandler handles supplier purchase HTTP requests
type PurchaseHandler struct {
	service ports.PurchaseService
	logger  *slog.Logger
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(service ports.PurchaseService, logger *slog.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "purchases")),
	}
}

// CreatePurchase handles POST /api/v1/purchases
func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	purchase := req.ToDomain()
	if err := h.service.CreatePurchase(r.Context(), purchase); err != nil {
		respondServiceError(w, r, h.logger, err, "create purchase")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, purchase)
}

// GetPurchase handles GET /api/v1/purchases/{id}
func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid purchase ID format")
		return
	}

	purchase, err := h.service.GetPurchase(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "retrieve purchase")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, purchase)
}

// ListPurchases handles GET /api/v1/purchases
func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ListPurchases(r.Context(), params)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "list purchases")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// UpdatePurchase handles PUT /api/v1/purchases/{id}
func (h *PurchaseHandler) UpdatePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid purchase ID format")
		return
	}

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	purchase := req.ToDomain()
	if err := h.service.UpdatePurchase(r.Context(), id, purchase); err != nil {
		respondServiceError(w, r, h.logger, err, "update purchase")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, purchase)
}

// DeletePurchase handles DELETE /api/v1/purchases/{id}
func (h *PurchaseHandler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid purchase ID format")
		return
	}

	if err := h.service.DeletePurchase(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, err, "delete purchase")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
