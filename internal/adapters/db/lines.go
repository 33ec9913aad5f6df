// internal/adapters/db/lines.go
package db

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/resell-pos/internal/core/domain"
)

// lineTable names a line table and the column pointing at its header
type lineTable struct {
	name   string
	parent string
}

var (
	saleLines     = lineTable{name: "sale_lines", parent: "sale_id"}
	purchaseLines = lineTable{name: "purchase_lines", parent: "purchase_id"}
)

// replace deletes the current lines of parentID and inserts lines in order
func (t lineTable) replace(ctx context.Context, q querier, parentID uuid.UUID, lines domain.ReservationSet) error {
	del := psql.Delete(t.name).Where(squirrel.Eq{t.parent: parentID})
	if _, err := execBuilder(ctx, q, del); err != nil {
		return fmt.Errorf("failed to delete %s: %w", t.name, err)
	}
	if len(lines) == 0 {
		return nil
	}

	insert := psql.Insert(t.name).Columns(t.parent, "position", "variant_id", "quantity", "unit_price")
	for i, line := range lines {
		insert = insert.Values(parentID, i+1, int64(line.VariantID), line.Quantity, line.UnitPrice)
	}
	if _, err := execBuilder(ctx, q, insert); err != nil {
		return fmt.Errorf("failed to insert %s: %w", t.name, err)
	}
	return nil
}

// load returns the lines of every parent id, ordered by position
func (t lineTable) load(ctx context.Context, q querier, parentIDs []uuid.UUID) (map[uuid.UUID]domain.ReservationSet, error) {
	result := make(map[uuid.UUID]domain.ReservationSet, len(parentIDs))
	if len(parentIDs) == 0 {
		return result, nil
	}

	query, args, err := psql.
		Select(t.parent, "variant_id", "quantity", "unit_price").
		From(t.name).
		Where(squirrel.Eq{t.parent: parentIDs}).
		OrderBy(t.parent, "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", t.name, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			parentID  uuid.UUID
			variantID int64
			quantity  int
			unitPrice decimal.Decimal
		)
		if err := rows.Scan(&parentID, &variantID, &quantity, &unitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", t.name, err)
		}
		result[parentID] = append(result[parentID], domain.ReservationLine{
			VariantID: domain.VariantID(variantID),
			Quantity:  quantity,
			UnitPrice: unitPrice,
		})
	}

	return result, rows.Err()
}
