// internal/handlers/sales.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/resell-pos/internal/core/ports"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	service ports.SaleService
	logger  *slog.Logger
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(service ports.SaleService, logger *slog.Logger) *SaleHandler {
	return &SaleHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "sales")),
	}
}

// CreateSale handles POST /api/v1/sales
func (h *SaleHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	sale := req.ToDomain()
	if err := h.service.CreateSale(r.Context(), sale); err != nil {
		respondServiceError(w, r, h.logger, err, "create sale")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, sale)
}

// GetSale handles GET /api/v1/sales/{id}
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	sale, err := h.service.GetSale(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "retrieve sale")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, sale)
}

// ListSales handles GET /api/v1/sales
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ListSales(r.Context(), params)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "list sales")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// UpdateSale handles PUT /api/v1/sales/{id}
func (h *SaleHandler) UpdateSale(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	var req SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	sale := req.ToDomain()
	if err := h.service.UpdateSale(r.Context(), id, sale); err != nil {
		respondServiceError(w, r, h.logger, err, "update sale")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, sale)
}

// DeleteSale handles DELETE /api/v1/sales/{id}
func (h *SaleHandler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	if err := h.service.DeleteSale(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, err, "delete sale")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PayInstallment handles POST /api/v1/sales/{id}/installments/{number}/pay.
// The body is optional; without paid_at the installment is paid now.
func (h *SaleHandler) PayInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid sale ID format")
		return
	}
	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil || number < 1 {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid installment number")
		return
	}

	var req PayInstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	var paidAt time.Time
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	sale, err := h.service.PayInstallment(r.Context(), id, number, paidAt)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "pay installment")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, sale)
}
