// internal/adapters/db/stock_store.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
)

// stockStore implements ports.VariantStockStore on the variant_stock table.
// Each call is its own statement; no transaction spans calls.
type stockStore struct {
	db     *Database
	logger *slog.Logger
}

// NewStockStore creates a Postgres backed stock store
func NewStockStore(db *Database, logger *slog.Logger) ports.VariantStockStore {
	return &stockStore{
		db:     db,
		logger: logger.With(slog.String("repository", "variant_stock")),
	}
}

// GetQuantities reads the requested variants in one query. Variants
// without a row report zero.
func (s *stockStore) GetQuantities(ctx context.Context, ids []domain.VariantID) (map[domain.VariantID]int, error) {
	result := make(map[domain.VariantID]int, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	keys := make([]int64, len(ids))
	for i, id := range ids {
		keys[i] = int64(id)
		result[id] = 0
	}

	query, args, err := psql.
		Select("variant_id", "quantity").
		From("variant_stock").
		Where("variant_id = ANY(?)", keys).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stock query: %w", err)
	}

	rows, err := s.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query stock: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var qty int
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, fmt.Errorf("%w: failed to scan stock row: %w", domain.ErrStoreUnavailable, err)
		}
		result[domain.VariantID(id)] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read stock rows: %w", domain.ErrStoreUnavailable, err)
	}

	return result, nil
}

// SetQuantity upserts the quantity of one variant
func (s *stockStore) SetQuantity(ctx context.Context, id domain.VariantID, quantity int) error {
	insert := psql.
		Insert("variant_stock").
		Columns("variant_id", "quantity", "updated_at").
		Values(int64(id), quantity, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (variant_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at")

	if _, err := execBuilder(ctx, s.db.Pool(), insert); err != nil {
		return fmt.Errorf("%w: failed to write stock for variant %s: %w", domain.ErrStoreUnavailable, id, err)
	}

	s.logger.DebugContext(ctx, "stock level written",
		slog.String("variant_id", id.String()),
		slog.Int("quantity", quantity))

	return nil
}
