// internal/core/services/stock.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
)

// StockService serves stock levels through an optional read cache
type StockService struct {
	store  ports.VariantStockStore
	cache  ports.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

// Statically assert that *StockService implements the StockService interface.
var _ ports.StockService = (*StockService)(nil)

// NewStockService creates a stock reader. A nil cache reads the store directly.
func NewStockService(store ports.VariantStockStore, cache ports.CacheRepository, ttl time.Duration, logger *slog.Logger) *StockService {
	if ttl <= 0 {
		ttl = StockCacheTTL
	}
	return &StockService{
		store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(slog.String("service", "stock")),
	}
}

// GetLevels returns the level of every requested variant in ascending id
// order. Unknown variants report zero.
func (s *StockService) GetLevels(ctx context.Context, ids []domain.VariantID) ([]domain.StockLevel, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []domain.StockLevel{}, nil
	}

	if s.cache == nil {
		quantities, err := s.store.GetQuantities(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to read stock: %w", storeError(err))
		}
		levels := make([]domain.StockLevel, 0, len(ids))
		for _, id := range ids {
			levels = append(levels, domain.StockLevel{VariantID: id, Quantity: quantities[id]})
		}
		return levels, nil
	}

	levels := make([]domain.StockLevel, 0, len(ids))
	for _, id := range ids {
		var qty int
		err := s.cache.GetOrSet(ctx, StockCacheKey(id), &qty, func() (interface{}, error) {
			quantities, err := s.store.GetQuantities(ctx, []domain.VariantID{id})
			if err != nil {
				return nil, storeError(err)
			}
			return quantities[id], nil
		}, s.ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to read stock for variant %s: %w", id, err)
		}
		levels = append(levels, domain.StockLevel{VariantID: id, Quantity: qty})
	}

	s.logger.DebugContext(ctx, "stock levels served", slog.Int("variants", len(levels)))
	return levels, nil
}

func uniqueIDs(ids []domain.VariantID) []domain.VariantID {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
