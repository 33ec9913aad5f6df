// internal/core/ports/sale_repository.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/google/uuid"
)

// SaleRepository defines the persistence port for sales.
// Header and lines are written separately so the stock delta can be
// applied between them.
type SaleRepository interface {
	CreateHeader(ctx context.Context, sale *domain.Sale) error
	UpdateHeader(ctx context.Context, sale *domain.Sale) error
	ReplaceLines(ctx context.Context, saleID uuid.UUID, lines domain.ReservationSet, plan []domain.Installment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	List(ctx context.Context, params ListParams) ([]*domain.Sale, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkInstallmentPaid(ctx context.Context, saleID uuid.UUID, number int, paidAt time.Time) error
}

// ListParams holds parameters for listing sales and purchases
type ListParams struct {
	From      *time.Time
	To        *time.Time
	Search    string
	SortOrder string
	Page      int
	PageSize  int
}

// Offset returns the row offset of the requested page
func (p ListParams) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
