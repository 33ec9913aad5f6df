// internal/handlers/response.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ammerola/resell-pos/internal/core/domain"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error      string                     `json:"error"`
	Violations []domain.InsufficientStock `json:"violations,omitempty"`
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error onto a status code. Inconsistency
// is checked first: it wraps the store error that caused it.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, action string) {
	ctx := r.Context()

	var insufficient *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrInventoryInconsistent):
		logger.ErrorContext(ctx, action+" left inventory inconsistent",
			slog.String("error", err.Error()))
		respondError(w, logger, http.StatusInternalServerError,
			"Inventory is inconsistent and needs manual correction; the incident has been reported")

	case errors.As(err, &insufficient):
		respondJSON(w, logger, http.StatusConflict, ErrorResponse{
			Error:      "Insufficient stock",
			Violations: insufficient.Violations,
		})

	case errors.Is(err, domain.ErrSaleNotFound):
		respondError(w, logger, http.StatusNotFound, "Sale not found")

	case errors.Is(err, domain.ErrPurchaseNotFound):
		respondError(w, logger, http.StatusNotFound, "Purchase not found")

	case errors.Is(err, domain.ErrInstallmentNotFound):
		respondError(w, logger, http.StatusNotFound, "Installment not found")

	case errors.Is(err, domain.ErrInstallmentAlreadyPaid):
		respondError(w, logger, http.StatusConflict, "Installment already paid")

	case errors.Is(err, domain.ErrInvalidLine),
		errors.Is(err, domain.ErrInvalidSale),
		errors.Is(err, domain.ErrInvalidPurchase):
		respondError(w, logger, http.StatusBadRequest, err.Error())

	case errors.Is(err, domain.ErrStoreUnavailable):
		logger.WarnContext(ctx, action+" failed, stock store unavailable",
			slog.String("error", err.Error()))
		respondError(w, logger, http.StatusServiceUnavailable, "Stock store unavailable, try again")

	default:
		logger.ErrorContext(ctx, action+" failed",
			slog.String("error", err.Error()))
		respondError(w, logger, http.StatusInternalServerError, "Failed to "+action)
	}
}
