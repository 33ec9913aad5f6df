// internal/core/ports/purchase_repository.go
package ports

import (
	"context"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/google/uuid"
)

// PurchaseRepository defines the persistence port for supplier purchases.
type PurchaseRepository interface {
	CreateHeader(ctx context.Context, purchase *domain.Purchase) error
	UpdateHeader(ctx context.Context, purchase *domain.Purchase) error
	ReplaceLines(ctx context.Context, purchaseID uuid.UUID, lines domain.ReservationSet) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Purchase, error)
	List(ctx context.Context, params ListParams) ([]*domain.Purchase, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
