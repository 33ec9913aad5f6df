// internal/core/ports/services.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/google/uuid"
)

// SaleService defines the application service port for sales.
type SaleService interface {
	CreateSale(ctx context.Context, sale *domain.Sale) error
	UpdateSale(ctx context.Context, id uuid.UUID, sale *domain.Sale) error
	DeleteSale(ctx context.Context, id uuid.UUID) error
	GetSale(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	ListSales(ctx context.Context, params ListParams) (*ListResult[*domain.Sale], error)
	PayInstallment(ctx context.Context, saleID uuid.UUID, number int, paidAt time.Time) (*domain.Sale, error)
}

// PurchaseService defines the application service port for purchases.
type PurchaseService interface {
	CreatePurchase(ctx context.Context, purchase *domain.Purchase) error
	UpdatePurchase(ctx context.Context, id uuid.UUID, purchase *domain.Purchase) error
	DeletePurchase(ctx context.Context, id uuid.UUID) error
	GetPurchase(ctx context.Context, id uuid.UUID) (*domain.Purchase, error)
	ListPurchases(ctx context.Context, params ListParams) (*ListResult[*domain.Purchase], error)
}

// StockService serves read-only stock levels.
type StockService interface {
	GetLevels(ctx context.Context, ids []domain.VariantID) ([]domain.StockLevel, error)
}

// ListResult holds one page of results
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// NewListResult computes paging metadata for a page of items
func NewListResult[T any](items []T, totalCount int64, params ListParams) *ListResult[T] {
	var totalPages int
	if params.PageSize > 0 {
		totalPages = int(totalCount) / params.PageSize
		if int(totalCount)%params.PageSize > 0 {
			totalPages++
		}
	}
	if items == nil {
		items = []T{}
	}

	return &ListResult[T]{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
