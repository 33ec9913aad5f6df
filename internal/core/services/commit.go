// internal/core/services/commit.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
	"github.com/google/uuid"
)

// StockCacheTTL bounds how stale a cached stock level can be
const StockCacheTTL = 30 * time.Second

// StockCacheKey returns the cache key holding one variant's level
func StockCacheKey(id domain.VariantID) string {
	return "stock:" + id.String()
}

type commitStep func(ctx context.Context) error

// stockCommit describes one ledger write. Requested is the set checked
// against stock, Credited the set whose units count as available again.
type stockCommit struct {
	operation   string
	referenceID uuid.UUID
	requested   domain.ReservationSet
	credited    domain.ReservationSet
	delta       domain.DeltaMap

	persistHeader commitStep
	revertHeader  commitStep
	persistLines  commitStep
}

// committer runs validate -> header -> apply -> lines and compensates
// when a step after the apply fails.
type committer struct {
	reconciler *StockLedgerReconciler
	notifier   ports.IncidentNotifier
	cache      ports.CacheRepository
	logger     *slog.Logger
}

func (c *committer) run(ctx context.Context, plan stockCommit) error {
	violations, err := c.reconciler.Validate(ctx, plan.requested, plan.credited)
	if err != nil {
		return fmt.Errorf("failed to validate stock: %w", err)
	}
	if len(violations) > 0 {
		return &domain.InsufficientStockError{Violations: violations}
	}

	if plan.persistHeader != nil {
		if err := plan.persistHeader(ctx); err != nil {
			return fmt.Errorf("failed to persist header: %w", err)
		}
	}

	applied, err := c.reconciler.Apply(ctx, plan.delta)
	if err != nil {
		var failure *domain.ApplyFailure
		prefix := domain.DeltaMap{}
		if errors.As(err, &failure) {
			prefix = failure.Applied
		}
		return c.compensate(ctx, plan, prefix, fmt.Errorf("failed to apply stock delta: %w", err))
	}

	if err := plan.persistLines(ctx); err != nil {
		return c.compensate(ctx, plan, applied, fmt.Errorf("failed to persist lines: %w", err))
	}

	c.invalidate(ctx, plan.delta)
	return nil
}

// compensate restores stock and header after a failed commit. The caller's
// context may already be cancelled, so compensation runs detached from it.
func (c *committer) compensate(ctx context.Context, plan stockCommit, applied domain.DeltaMap, cause error) error {
	rctx := context.WithoutCancel(ctx)
	result := cause

	if err := c.reconciler.Rollback(rctx, applied); err != nil {
		incident := domain.NewInventoryIncident(plan.operation, plan.referenceID, err)
		c.logger.ErrorContext(rctx, "inventory left inconsistent",
			slog.String("operation", plan.operation),
			slog.String("reference_id", plan.referenceID.String()),
			slog.Any("pending", incident.Pending),
			slog.String("cause", cause.Error()))

		if c.notifier != nil {
			if nErr := c.notifier.NotifyInconsistency(rctx, incident); nErr != nil {
				c.logger.ErrorContext(rctx, "failed to publish inventory incident",
					slog.String("incident_id", incident.ID.String()),
					slog.String("error", nErr.Error()))
			}
		}
		result = fmt.Errorf("%w (commit failed: %v)", err, cause)
	}

	if plan.revertHeader != nil {
		if err := plan.revertHeader(rctx); err != nil {
			c.logger.ErrorContext(rctx, "failed to revert header",
				slog.String("operation", plan.operation),
				slog.String("reference_id", plan.referenceID.String()),
				slog.String("error", err.Error()))
			result = errors.Join(result, fmt.Errorf("failed to revert header: %w", err))
		}
	}

	c.invalidate(rctx, applied)
	return result
}

func (c *committer) invalidate(ctx context.Context, delta domain.DeltaMap) {
	if c.cache == nil || len(delta) == 0 {
		return
	}

	keys := make([]string, 0, len(delta))
	for _, id := range delta.IDs() {
		keys = append(keys, StockCacheKey(id))
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate stock cache",
			slog.Int("keys", len(keys)),
			slog.String("error", err.Error()))
	}
}
