// internal/core/ports/incidents.go
package ports

import (
	"context"

	"github.com/ammerola/resell-pos/internal/core/domain"
)

// IncidentNotifier publishes inventory incidents for operators.
type IncidentNotifier interface {
	NotifyInconsistency(ctx context.Context, incident *domain.InventoryIncident) error
}

// IncidentRepository stores incidents once they are picked up by a worker.
type IncidentRepository interface {
	Save(ctx context.Context, incident *domain.InventoryIncident) error
	ListOpen(ctx context.Context, limit int) ([]*domain.InventoryIncident, error)
}
