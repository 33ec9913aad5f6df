// internal/handlers/stock.go
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
)

// maxStockQueryIDs caps how many variants one stock request may ask for
const maxStockQueryIDs = 200

// StockHandler serves stock levels
type StockHandler struct {
	service ports.StockService
	logger  *slog.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(service ports.StockService, logger *slog.Logger) *StockHandler {
	return &StockHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "stock")),
	}
}

// GetStock handles GET /api/v1/stock?ids=1,2&ids=3
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	ids, err := parseVariantIDs(r.URL.Query()["ids"])
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	levels, err := h.service.GetLevels(r.Context(), ids)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "read stock")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, levels)
}

func parseVariantIDs(values []string) ([]domain.VariantID, error) {
	var ids []domain.VariantID
	for _, value := range values {
		for _, raw := range strings.Split(value, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := domain.ParseVariantID(raw)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("ids query parameter is required")
	}
	if len(ids) > maxStockQueryIDs {
		return nil, fmt.Errorf("at most %d ids per request", maxStockQueryIDs)
	}
	return ids, nil
}
