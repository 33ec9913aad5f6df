// internal/adapters/redis_adapter/stock_store.go
package redis_a

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
)

// StockStore keeps variant quantities in one Redis hash, field = variant id.
type StockStore struct {
	client redis.UniversalClient
	key    string
	logger *slog.Logger
}

var _ ports.VariantStockStore = (*StockStore)(nil)

// NewStockStore creates a hash backed stock store under key
func NewStockStore(client redis.UniversalClient, key string, logger *slog.Logger) *StockStore {
	return &StockStore{
		client: client,
		key:    key,
		logger: logger.With(slog.String("component", "redis_stock"), slog.String("key", key)),
	}
}

// GetQuantities reads every requested field with one HMGET
func (s *StockStore) GetQuantities(ctx context.Context, ids []domain.VariantID) (map[domain.VariantID]int, error) {
	result := make(map[domain.VariantID]int, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	fields := make([]string, len(ids))
	for i, id := range ids {
		fields[i] = id.String()
	}

	values, err := s.client.HMGet(ctx, s.key, fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: hmget %s: %w", domain.ErrStoreUnavailable, s.key, err)
	}

	for i, id := range ids {
		result[id] = 0
		raw, ok := values[i].(string)
		if !ok {
			continue
		}
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: corrupt quantity %q for variant %s", domain.ErrStoreUnavailable, raw, id)
		}
		result[id] = qty
	}
	return result, nil
}

// SetQuantity writes one field with HSET
func (s *StockStore) SetQuantity(ctx context.Context, id domain.VariantID, qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: negative quantity %d for variant %s", domain.ErrInvalidLine, qty, id)
	}

	if err := s.client.HSet(ctx, s.key, id.String(), qty).Err(); err != nil {
		s.logger.ErrorContext(ctx, "failed to write stock",
			slog.String("variant_id", id.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: hset %s: %w", domain.ErrStoreUnavailable, s.key, err)
	}
	return nil
}
