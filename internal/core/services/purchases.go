// internal/core/services/purchases.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
	"github.com/google/uuid"
)

// PurchaseService commits supplier purchases against the stock ledger.
// Purchases add stock, so the sets are swapped relative to sales: the
// previous purchase is what has to stay covered by current stock.
type PurchaseService struct {
	repo    ports.PurchaseRepository
	commits *committer
	logger  *slog.Logger
}

// Statically assert that *PurchaseService implements the PurchaseService interface.
var _ ports.PurchaseService = (*PurchaseService)(nil)

// NewPurchaseService creates a new purchase service. notifier and cache may be nil.
func NewPurchaseService(
	repo ports.PurchaseRepository,
	reconciler *StockLedgerReconciler,
	notifier ports.IncidentNotifier,
	cache ports.CacheRepository,
	logger *slog.Logger,
) *PurchaseService {
	logger = logger.With(slog.String("service", "purchases"))
	return &PurchaseService{
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

// CreatePurchase stores a purchase and adds its units to stock
func (s *PurchaseService) CreatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	if err := purchase.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	purchase.PrepareForStorage()

	err := s.commits.run(ctx, stockCommit{
		operation:   domain.OperationCreatePurchase,
		referenceID: purchase.ID,
		credited:    purchase.Lines,
		delta:       domain.ComputeDelta(purchase.Lines, nil),
		persistHeader: func(ctx context.Context) error {
			return s.repo.CreateHeader(ctx, purchase)
		},
		revertHeader: func(ctx context.Context) error {
			return s.repo.Delete(ctx, purchase.ID)
		},
		persistLines: func(ctx context.Context) error {
			return s.repo.ReplaceLines(ctx, purchase.ID, purchase.Lines)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	s.logger.InfoContext(ctx, "purchase created",
		slog.String("purchase_id", purchase.ID.String()),
		slog.String("supplier", purchase.Supplier),
		slog.Int("lines", len(purchase.Lines)))

	return nil
}

// UpdatePurchase replaces the lines of a purchase. Shrinking a purchase
// fails when the units it brought in have already been sold.
func (s *PurchaseService) UpdatePurchase(ctx context.Context, id uuid.UUID, purchase *domain.Purchase) error {
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	purchase.ID = id
	purchase.CreatedAt = existing.CreatedAt
	if purchase.PurchasedAt.IsZero() {
		purchase.PurchasedAt = existing.PurchasedAt
	}
	if err := purchase.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	purchase.PrepareForStorage()

	err = s.commits.run(ctx, stockCommit{
		operation:   domain.OperationUpdatePurchase,
		referenceID: id,
		requested:   existing.Lines,
		credited:    purchase.Lines,
		delta:       domain.ComputeDelta(purchase.Lines, existing.Lines),
		persistHeader: func(ctx context.Context) error {
			return s.repo.UpdateHeader(ctx, purchase)
		},
		revertHeader: func(ctx context.Context) error {
			return s.repo.UpdateHeader(ctx, existing)
		},
		persistLines: func(ctx context.Context) error {
			return s.repo.ReplaceLines(ctx, id, purchase.Lines)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update purchase: %w", err)
	}

	s.logger.InfoContext(ctx, "purchase updated",
		slog.String("purchase_id", id.String()),
		slog.Int("lines", len(purchase.Lines)))

	return nil
}

// DeletePurchase removes a purchase and takes its units back out of stock
func (s *PurchaseService) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	err = s.commits.run(ctx, stockCommit{
		operation:   domain.OperationDeletePurchase,
		referenceID: id,
		requested:   existing.Lines,
		delta:       domain.ComputeDelta(nil, existing.Lines),
		persistLines: func(ctx context.Context) error {
			return s.repo.Delete(ctx, id)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}

	s.logger.InfoContext(ctx, "purchase deleted", slog.String("purchase_id", id.String()))
	return nil
}

// GetPurchase retrieves a purchase with its lines
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*domain.Purchase, error) {
	return s.find(ctx, id)
}

// ListPurchases returns one page of purchases
func (s *PurchaseService) ListPurchases(ctx context.Context, params ports.ListParams) (*ports.ListResult[*domain.Purchase], error) {
	params = normalizeListParams(params)

	purchases, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	return ports.NewListResult(purchases, total, params), nil
}

func (s *PurchaseService) find(ctx context.Context, id uuid.UUID) (*domain.Purchase, error) {
	purchase, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	if purchase == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPurchaseNotFound, id)
	}
	return purchase, nil
}
