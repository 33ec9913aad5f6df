// internal/core/services/sales.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
	"github.com/google/uuid"
)

// SaleService commits sales against the stock ledger
type SaleService struct {
	repo    ports.SaleRepository
	commits *committer
	logger  *slog.Logger
}

// Statically assert that *SaleService implements the SaleService interface.
var _ ports.SaleService = (*SaleService)(nil)

// NewSaleService creates a new sale service. notifier and cache may be nil.
func NewSaleService(
	repo ports.SaleRepository,
	reconciler *StockLedgerReconciler,
	notifier ports.IncidentNotifier,
	cache ports.CacheRepository,
	logger *slog.Logger,
) *SaleService {
	logger = logger.With(slog.String("service", "sales"))
	return &SaleService{
		repo: repo,
		commits: &committer{
			reconciler: reconciler,
			notifier:   notifier,
			cache:      cache,
			logger:     logger,
		},
		logger: logger,
	}
}

// CreateSale validates stock for the new lines, then stores the sale and
// removes the sold units.
func (s *SaleService) CreateSale(ctx context.Context, sale *domain.Sale) error {
	if err := sale.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	sale.PrepareForStorage()

	err := s.commits.run(ctx, stockCommit{
		operation:   domain.OperationCreateSale,
		referenceID: sale.ID,
		requested:   sale.Lines,
		delta:       domain.ComputeDelta(nil, sale.Lines),
		persistHeader: func(ctx context.Context) error {
			return s.repo.CreateHeader(ctx, sale)
		},
		revertHeader: func(ctx context.Context) error {
			return s.repo.Delete(ctx, sale.ID)
		},
		persistLines: func(ctx context.Context) error {
			return s.repo.ReplaceLines(ctx, sale.ID, sale.Lines, sale.Installments)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}

	s.logger.InfoContext(ctx, "sale created",
		slog.String("sale_id", sale.ID.String()),
		slog.Int("lines", len(sale.Lines)),
		slog.String("total", sale.Total.StringFixed(2)))

	return nil
}

// UpdateSale replaces the lines of an existing sale. Units from the old
// lines count as available when checking the new ones.
func (s *SaleService) UpdateSale(ctx context.Context, id uuid.UUID, sale *domain.Sale) error {
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	sale.ID = id
	sale.CreatedAt = existing.CreatedAt
	if sale.SoldAt.IsZero() {
		sale.SoldAt = existing.SoldAt
	}
	if err := sale.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	sale.PrepareForStorage()
	carryPayments(sale.Installments, existing.Installments)

	err = s.commits.run(ctx, stockCommit{
		operation:   domain.OperationUpdateSale,
		referenceID: id,
		requested:   sale.Lines,
		credited:    existing.Lines,
		delta:       domain.ComputeDelta(existing.Lines, sale.Lines),
		persistHeader: func(ctx context.Context) error {
			return s.repo.UpdateHeader(ctx, sale)
		},
		revertHeader: func(ctx context.Context) error {
			return s.repo.UpdateHeader(ctx, existing)
		},
		persistLines: func(ctx context.Context) error {
			return s.repo.ReplaceLines(ctx, id, sale.Lines, sale.Installments)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}

	s.logger.InfoContext(ctx, "sale updated",
		slog.String("sale_id", id.String()),
		slog.Int("lines", len(sale.Lines)))

	return nil
}

// DeleteSale removes a sale and returns its units to stock
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	err = s.commits.run(ctx, stockCommit{
		operation:   domain.OperationDeleteSale,
		referenceID: id,
		credited:    existing.Lines,
		delta:       domain.ComputeDelta(existing.Lines, nil),
		persistLines: func(ctx context.Context) error {
			return s.repo.Delete(ctx, id)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	s.logger.InfoContext(ctx, "sale deleted", slog.String("sale_id", id.String()))
	return nil
}

// GetSale retrieves a sale with lines and installments
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	return s.find(ctx, id)
}

// ListSales returns one page of sales
func (s *SaleService) ListSales(ctx context.Context, params ports.ListParams) (*ports.ListResult[*domain.Sale], error) {
	params = normalizeListParams(params)

	sales, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	return ports.NewListResult(sales, total, params), nil
}

// PayInstallment marks one installment of a credit sale as paid
func (s *SaleService) PayInstallment(ctx context.Context, saleID uuid.UUID, number int, paidAt time.Time) (*domain.Sale, error) {
	sale, err := s.find(ctx, saleID)
	if err != nil {
		return nil, err
	}

	var target *domain.Installment
	for i := range sale.Installments {
		if sale.Installments[i].Number == number {
			target = &sale.Installments[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: installment %d of sale %s", domain.ErrInstallmentNotFound, number, saleID)
	}

	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	if err := target.Pay(paidAt); err != nil {
		return nil, err
	}

	if err := s.repo.MarkInstallmentPaid(ctx, saleID, number, paidAt); err != nil {
		return nil, fmt.Errorf("failed to mark installment paid: %w", err)
	}

	s.logger.InfoContext(ctx, "installment paid",
		slog.String("sale_id", saleID.String()),
		slog.Int("number", number),
		slog.String("amount", target.Amount.StringFixed(2)))

	return sale, nil
}

func (s *SaleService) find(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSaleNotFound, id)
	}
	return sale, nil
}

// carryPayments keeps the paid status of installments whose number and
// amount survive an edit.
func carryPayments(plan, previous []domain.Installment) {
	paid := make(map[int]domain.Installment, len(previous))
	for _, inst := range previous {
		if inst.IsPaid() {
			paid[inst.Number] = inst
		}
	}
	for i := range plan {
		if prev, ok := paid[plan[i].Number]; ok && prev.Amount.Equal(plan[i].Amount) {
			plan[i].PaidAt = prev.PaidAt
		}
	}
}

func normalizeListParams(params ports.ListParams) ports.ListParams {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}
	if params.SortOrder != "asc" {
		params.SortOrder = "desc"
	}
	return params
}
