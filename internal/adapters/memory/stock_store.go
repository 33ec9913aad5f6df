// internal/adapters/memory/stock_store.go
package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
)

// StockStore keeps variant quantities in process memory. It backs local
// runs, the seeder dry run and service tests.
type StockStore struct {
	mu         sync.RWMutex
	quantities map[domain.VariantID]int
}

var _ ports.VariantStockStore = (*StockStore)(nil)

// NewStockStore creates a store seeded with the given levels
func NewStockStore(levels map[domain.VariantID]int) *StockStore {
	s := &StockStore{quantities: make(map[domain.VariantID]int, len(levels))}
	for id, qty := range levels {
		s.quantities[id] = qty
	}
	return s
}

// GetQuantities returns the stored quantity of each id; unknown ids are 0
func (s *StockStore) GetQuantities(ctx context.Context, ids []domain.VariantID) (map[domain.VariantID]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.VariantID]int, len(ids))
	for _, id := range ids {
		out[id] = s.quantities[id]
	}
	return out, nil
}

// SetQuantity overwrites the quantity of one variant
func (s *StockStore) SetQuantity(ctx context.Context, id domain.VariantID, quantity int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if quantity < 0 {
		return fmt.Errorf("quantity for variant %s cannot be negative: %d", id, quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.quantities[id] = quantity
	return nil
}

// Snapshot returns a copy of every stored level
func (s *StockStore) Snapshot() map[domain.VariantID]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.quantities)
}
