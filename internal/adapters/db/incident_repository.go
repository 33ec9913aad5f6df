// internal/adapters/db/incident_repository.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
)

// incidentRepository implements ports.IncidentRepository
type incidentRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewIncidentRepository creates a new incident repository
func NewIncidentRepository(db *Database, logger *slog.Logger) ports.IncidentRepository {
	return &incidentRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "inventory_incidents")),
	}
}

// Save stores an incident. Redelivered tasks carry the same id and are ignored.
func (r *incidentRepository) Save(ctx context.Context, incident *domain.InventoryIncident) error {
	pending, err := json.Marshal(incident.Pending)
	if err != nil {
		return fmt.Errorf("failed to encode pending delta: %w", err)
	}

	insert := psql.Insert("inventory_incidents").
		Columns("id", "operation", "reference_id", "pending", "cause", "detected_at").
		Values(incident.ID, incident.Operation, incident.ReferenceID, pending, incident.Cause, incident.DetectedAt).
		Suffix("ON CONFLICT (id) DO NOTHING")

	if _, err := execBuilder(ctx, r.db.Pool(), insert); err != nil {
		return fmt.Errorf("failed to save incident: %w", err)
	}

	r.logger.DebugContext(ctx, "incident saved", slog.String("incident_id", incident.ID.String()))
	return nil
}

// ListOpen returns unresolved incidents, oldest first
func (r *incidentRepository) ListOpen(ctx context.Context, limit int) ([]*domain.InventoryIncident, error) {
	if limit <= 0 {
		limit = 50
	}

	query, args, err := psql.
		Select("id", "operation", "reference_id", "pending", "cause", "detected_at").
		From("inventory_incidents").
		Where("resolved_at IS NULL").
		OrderBy("detected_at").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build incident query: %w", err)
	}

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}

	return ScanMany(rows, func(rows pgx.Rows) (*domain.InventoryIncident, error) {
		incident := &domain.InventoryIncident{}
		var pending []byte
		if err := rows.Scan(&incident.ID, &incident.Operation, &incident.ReferenceID,
			&pending, &incident.Cause, &incident.DetectedAt); err != nil {
			return nil, err
		}
		incident.Pending = domain.DeltaMap{}
		if err := json.Unmarshal(pending, &incident.Pending); err != nil {
			return nil, fmt.Errorf("failed to decode pending delta: %w", err)
		}
		return incident, nil
	})
}
