// internal/core/services/reconciler.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
)

// StockLedgerReconciler turns old/new reservation sets into a validated,
// applied stock delta and undoes it when a later commit step fails.
//
// The store gives no multi-row atomicity, so every variant is written on
// its own and a partial apply is reported with the exact prefix written.
type StockLedgerReconciler struct {
	store  ports.VariantStockStore
	logger *slog.Logger
}

// NewStockLedgerReconciler creates a reconciler over the given store
func NewStockLedgerReconciler(store ports.VariantStockStore, logger *slog.Logger) *StockLedgerReconciler {
	return &StockLedgerReconciler{
		store:  store,
		logger: logger.With(slog.String("component", "reconciler")),
	}
}

// ComputeDelta returns totals(oldSet) - totals(newSet) per variant
func (r *StockLedgerReconciler) ComputeDelta(oldSet, newSet domain.ReservationSet) domain.DeltaMap {
	return domain.ComputeDelta(oldSet, newSet)
}

// Inverse negates a delta
func (r *StockLedgerReconciler) Inverse(delta domain.DeltaMap) domain.DeltaMap {
	return delta.Inverse()
}

// Validate checks that newSet can be covered by current stock plus what
// oldSet gives back. Every violation is returned; the error is reserved
// for store failures.
func (r *StockLedgerReconciler) Validate(ctx context.Context, newSet, oldSet domain.ReservationSet) ([]domain.InsufficientStock, error) {
	newTotals := newSet.Totals()
	if len(newTotals) == 0 {
		return nil, nil
	}
	oldTotals := oldSet.Totals()

	ids := unionIDs(newTotals, oldTotals)
	current, err := r.store.GetQuantities(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to read stock for validation: %w", storeError(err))
	}

	var violations []domain.InsufficientStock
	for _, id := range newSet.IDs() {
		available := current[id] + oldTotals[id]
		if requested := newTotals[id]; available < requested {
			violations = append(violations, domain.InsufficientStock{
				VariantID: id,
				Available: available,
				Requested: requested,
			})
		}
	}

	if len(violations) > 0 {
		r.logger.InfoContext(ctx, "stock validation failed",
			slog.Int("violations", len(violations)))
	}

	return violations, nil
}

// Apply writes the delta one variant at a time in ascending id order.
// Each entry re-reads the current quantity and clamps the result at zero.
// The returned map holds the effective change per variant. On failure the
// error is an *domain.ApplyFailure carrying the entries already written.
func (r *StockLedgerReconciler) Apply(ctx context.Context, delta domain.DeltaMap) (domain.DeltaMap, error) {
	applied := domain.DeltaMap{}
	var written []domain.VariantID

	for _, id := range delta.IDs() {
		amount := delta[id]
		if amount == 0 {
			continue
		}

		quantities, err := r.store.GetQuantities(ctx, []domain.VariantID{id})
		if err != nil {
			return nil, r.applyFailure(ctx, applied, written, id, fmt.Errorf("failed to read stock: %w", storeError(err)))
		}

		current := quantities[id]
		next := current + amount
		if next < 0 {
			r.logger.WarnContext(ctx, "stock clamped at zero",
				slog.String("variant_id", id.String()),
				slog.Int("current", current),
				slog.Int("amount", amount))
			next = 0
		}

		if err := r.store.SetQuantity(ctx, id, next); err != nil {
			return nil, r.applyFailure(ctx, applied, written, id, fmt.Errorf("failed to write stock: %w", storeError(err)))
		}

		written = append(written, id)
		if change := next - current; change != 0 {
			applied[id] = change
		}

		r.logger.DebugContext(ctx, "stock entry applied",
			slog.String("variant_id", id.String()),
			slog.Int("from", current),
			slog.Int("to", next))
	}

	return applied, nil
}

// Rollback applies the inverse of a previously applied delta. If that
// fails the returned error is an *domain.InventoryInconsistentError whose
// Pending field is the part of the inverse that was not written.
func (r *StockLedgerReconciler) Rollback(ctx context.Context, applied domain.DeltaMap) error {
	if applied.IsEmpty() {
		return nil
	}

	inverse := applied.Inverse()
	if _, err := r.Apply(ctx, inverse); err != nil {
		pending := inverse.Clone()
		var failure *domain.ApplyFailure
		if errors.As(err, &failure) {
			for _, id := range failure.Written {
				delete(pending, id)
			}
		}

		r.logger.ErrorContext(ctx, "stock rollback failed",
			slog.Any("pending", pending),
			slog.String("error", err.Error()))

		return &domain.InventoryInconsistentError{Pending: pending, Cause: err}
	}

	r.logger.InfoContext(ctx, "stock rollback applied",
		slog.Int("variants", len(inverse)))

	return nil
}

func (r *StockLedgerReconciler) applyFailure(ctx context.Context, applied domain.DeltaMap, written []domain.VariantID, id domain.VariantID, err error) error {
	r.logger.WarnContext(ctx, "stock apply stopped",
		slog.String("variant_id", id.String()),
		slog.Int("written", len(written)),
		slog.String("error", err.Error()))

	return &domain.ApplyFailure{Applied: applied, Written: written, Variant: id, Err: err}
}

// storeError makes sure store failures match domain.ErrStoreUnavailable
func storeError(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

func unionIDs(a, b map[domain.VariantID]int) []domain.VariantID {
	seen := make(domain.DeltaMap, len(a)+len(b))
	for id := range a {
		seen[id] = 1
	}
	for id := range b {
		seen[id] = 1
	}
	return seen.IDs()
}
