// internal/adapters/db/sale_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
)

var saleColumns = []string{
	"id", "customer_name", "payment_method", "installment_count",
	"total", "notes", "sold_at", "created_at", "updated_at",
}

// saleRepository implements ports.SaleRepository
type saleRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *Database, logger *slog.Logger) ports.SaleRepository {
	return &saleRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "sales")),
	}
}

// CreateHeader inserts the sale row without lines
func (r *saleRepository) CreateHeader(ctx context.Context, sale *domain.Sale) error {
	insert := psql.Insert("sales").
		Columns(saleColumns...).
		Values(sale.ID, sale.CustomerName, string(sale.PaymentMethod), sale.InstallmentCount,
			sale.Total, sale.Notes, sale.SoldAt, sale.CreatedAt, sale.UpdatedAt)

	if _, err := execBuilder(ctx, r.db.Pool(), insert); err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	r.logger.DebugContext(ctx, "sale header created", slog.String("sale_id", sale.ID.String()))
	return nil
}

// UpdateHeader overwrites the sale row
func (r *saleRepository) UpdateHeader(ctx context.Context, sale *domain.Sale) error {
	update := psql.Update("sales").
		SetMap(map[string]interface{}{
			"customer_name":     sale.CustomerName,
			"payment_method":    string(sale.PaymentMethod),
			"installment_count": sale.InstallmentCount,
			"total":             sale.Total,
			"notes":             sale.Notes,
			"sold_at":           sale.SoldAt,
			"updated_at":        sale.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": sale.ID})

	tag, err := execBuilder(ctx, r.db.Pool(), update)
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSaleNotFound, sale.ID)
	}
	return nil
}

// ReplaceLines swaps the lines and installment plan of a sale in one transaction
func (r *saleRepository) ReplaceLines(ctx context.Context, saleID uuid.UUID, lines domain.ReservationSet, plan []domain.Installment) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		if err := saleLines.replace(ctx, tx, saleID, lines); err != nil {
			return err
		}

		del := psql.Delete("sale_installments").Where(squirrel.Eq{"sale_id": saleID})
		if _, err := execBuilder(ctx, tx, del); err != nil {
			return fmt.Errorf("failed to delete installments: %w", err)
		}
		if len(plan) == 0 {
			return nil
		}

		insert := psql.Insert("sale_installments").Columns("sale_id", "number", "amount", "due_date", "paid_at")
		for _, inst := range plan {
			insert = insert.Values(saleID, inst.Number, inst.Amount, inst.DueDate, inst.PaidAt)
		}
		if _, err := execBuilder(ctx, tx, insert); err != nil {
			return fmt.Errorf("failed to insert installments: %w", err)
		}
		return nil
	})
}

// FindByID returns the sale with lines and installments, or nil when absent
func (r *saleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	query, args, err := psql.Select(saleColumns...).From("sales").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sale query: %w", err)
	}

	sale, err := ScanOne(r.db.Pool().QueryRow(ctx, query, args...), scanSale)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	if sale == nil {
		return nil, nil
	}

	if err := r.attach(ctx, []*domain.Sale{sale}); err != nil {
		return nil, err
	}
	return sale, nil
}

// List returns one page of sales ordered by sold_at
func (r *saleRepository) List(ctx context.Context, params ports.ListParams) ([]*domain.Sale, int64, error) {
	filter := squirrel.And{}
	if params.From != nil {
		filter = append(filter, squirrel.GtOrEq{"sold_at": *params.From})
	}
	if params.To != nil {
		filter = append(filter, squirrel.Lt{"sold_at": *params.To})
	}
	if params.Search != "" {
		filter = append(filter, squirrel.ILike{"customer_name": "%" + params.Search + "%"})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("sales").Where(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.Pool().QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	query, args, err := psql.Select(saleColumns...).
		From("sales").
		Where(filter).
		OrderBy("sold_at " + orderDirection(params.SortOrder)).
		Limit(uint64(params.PageSize)).
		Offset(uint64(params.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sales: %w", err)
	}

	sales, err := ScanMany(rows, func(rows pgx.Rows) (*domain.Sale, error) { return scanSale(rows) })
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan sales: %w", err)
	}

	if err := r.attach(ctx, sales); err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

// Delete removes a sale; lines and installments cascade
func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := execBuilder(ctx, r.db.Pool(), psql.Delete("sales").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSaleNotFound, id)
	}
	return nil
}

// MarkInstallmentPaid sets paid_at on an unpaid installment
func (r *saleRepository) MarkInstallmentPaid(ctx context.Context, saleID uuid.UUID, number int, paidAt time.Time) error {
	update := psql.Update("sale_installments").
		Set("paid_at", paidAt).
		Where(squirrel.Eq{"sale_id": saleID, "number": number, "paid_at": nil})

	tag, err := execBuilder(ctx, r.db.Pool(), update)
	if err != nil {
		return fmt.Errorf("failed to mark installment paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: installment %d of sale %s", domain.ErrInstallmentAlreadyPaid, number, saleID)
	}
	return nil
}

// attach loads lines and installments for the given sales
func (r *saleRepository) attach(ctx context.Context, sales []*domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
	}

	lines, err := saleLines.load(ctx, r.db.Pool(), ids)
	if err != nil {
		return err
	}

	query, args, err := psql.
		Select("sale_id", "number", "amount", "due_date", "paid_at").
		From("sale_installments").
		Where(squirrel.Eq{"sale_id": ids}).
		OrderBy("sale_id", "number").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build installments query: %w", err)
	}

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query installments: %w", err)
	}
	installments, err := ScanMany(rows, func(rows pgx.Rows) (*domain.Installment, error) {
		inst := &domain.Installment{}
		err := rows.Scan(&inst.SaleID, &inst.Number, &inst.Amount, &inst.DueDate, &inst.PaidAt)
		return inst, err
	})
	if err != nil {
		return fmt.Errorf("failed to scan installments: %w", err)
	}

	plans := make(map[uuid.UUID][]domain.Installment, len(sales))
	for _, inst := range installments {
		plans[inst.SaleID] = append(plans[inst.SaleID], *inst)
	}

	for _, s := range sales {
		s.Lines = lines[s.ID]
		s.Installments = plans[s.ID]
	}
	return nil
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	sale := &domain.Sale{}
	var method string
	err := row.Scan(
		&sale.ID, &sale.CustomerName, &method, &sale.InstallmentCount,
		&sale.Total, &sale.Notes, &sale.SoldAt, &sale.CreatedAt, &sale.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sale.PaymentMethod = domain.PaymentMethod(method)
	return sale, nil
}

func orderDirection(order string) string {
	if order == "asc" {
		return "ASC"
	}
	return "DESC"
}
