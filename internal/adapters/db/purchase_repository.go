// internal/adapters/db/purchase_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
)

var purchaseColumns = []string{
	"id", "supplier", "reference", "total", "purchased_at", "created_at", "updated_at",
}

// purchaseRepository implements ports.PurchaseRepository
type purchaseRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *Database, logger *slog.Logger) ports.PurchaseRepository {
	return &purchaseRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "purchases")),
	}
}

func (r *purchaseRepository) CreateHeader(ctx context.Context, p *domain.Purchase) error {
	insert := psql.Insert("purchases").
		Columns(purchaseColumns...).
		Values(p.ID, p.Supplier, p.Reference, p.Total, p.PurchasedAt, p.CreatedAt, p.UpdatedAt)

	if _, err := execBuilder(ctx, r.db.Pool(), insert); err != nil {
		return fmt.Errorf("failed to insert purchase: %w", err)
	}

	r.logger.DebugContext(ctx, "purchase header created", slog.String("purchase_id", p.ID.String()))
	return nil
}

func (r *purchaseRepository) UpdateHeader(ctx context.Context, p *domain.Purchase) error {
	update := psql.Update("purchases").
		SetMap(map[string]interface{}{
			"supplier":     p.Supplier,
			"reference":    p.Reference,
			"total":        p.Total,
			"purchased_at": p.PurchasedAt,
			"updated_at":   p.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": p.ID})

	tag, err := execBuilder(ctx, r.db.Pool(), update)
	if err != nil {
		return fmt.Errorf("failed to update purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPurchaseNotFound, p.ID)
	}
	return nil
}

func (r *purchaseRepository) ReplaceLines(ctx context.Context, purchaseID uuid.UUID, lines domain.ReservationSet) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		return purchaseLines.replace(ctx, tx, purchaseID, lines)
	})
}

func (r *purchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Purchase, error) {
	query, args, err := psql.Select(purchaseColumns...).From("purchases").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build purchase query: %w", err)
	}

	p, err := ScanOne(r.db.Pool().QueryRow(ctx, query, args...), scanPurchase)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	if p == nil {
		return nil, nil
	}

	lines, err := purchaseLines.load(ctx, r.db.Pool(), []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	p.Lines = lines[id]
	return p, nil
}

func (r *purchaseRepository) List(ctx context.Context, params ports.ListParams) ([]*domain.Purchase, int64, error) {
	filter := squirrel.And{}
	if params.From != nil {
		filter = append(filter, squirrel.GtOrEq{"purchased_at": *params.From})
	}
	if params.To != nil {
		filter = append(filter, squirrel.Lt{"purchased_at": *params.To})
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		filter = append(filter, squirrel.Or{
			squirrel.ILike{"supplier": pattern},
			squirrel.ILike{"reference": pattern},
		})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("purchases").Where(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.Pool().QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	query, args, err := psql.Select(purchaseColumns...).
		From("purchases").
		Where(filter).
		OrderBy("purchased_at " + orderDirection(params.SortOrder)).
		Limit(uint64(params.PageSize)).
		Offset(uint64(params.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchases: %w", err)
	}

	purchases, err := ScanMany(rows, func(rows pgx.Rows) (*domain.Purchase, error) { return scanPurchase(rows) })
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan purchases: %w", err)
	}

	ids := make([]uuid.UUID, len(purchases))
	for i, p := range purchases {
		ids[i] = p.ID
	}
	lines, err := purchaseLines.load(ctx, r.db.Pool(), ids)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range purchases {
		p.Lines = lines[p.ID]
	}

	return purchases, total, nil
}

func (r *purchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := execBuilder(ctx, r.db.Pool(), psql.Delete("purchases").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPurchaseNotFound, id)
	}
	return nil
}

func scanPurchase(row pgx.Row) (*domain.Purchase, error) {
	p := &domain.Purchase{}
	err := row.Scan(&p.ID, &p.Supplier, &p.Reference, &p.Total, &p.PurchasedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
