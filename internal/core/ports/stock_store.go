// internal/core/ports/stock_store.go
package ports

import (
	"context"

	"github.com/ammerola/resell-pos/internal/core/domain"
)

// VariantStockStore is the persisted on-hand quantity per variant.
// Each call is atomic on its own; nothing spans calls.
type VariantStockStore interface {
	// GetQuantities returns an entry for every requested id. Unknown ids map to 0.
	GetQuantities(ctx context.Context, ids []domain.VariantID) (map[domain.VariantID]int, error)
	// SetQuantity writes an absolute quantity, creating the row if needed.
	SetQuantity(ctx context.Context, id domain.VariantID, qty int) error
}
