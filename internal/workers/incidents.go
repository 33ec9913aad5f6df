// internal/workers/incidents.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
)

const (
	TypeInventoryInconsistent = "inventory:inconsistent"
	TypeReportOpenIncidents   = "inventory:report_open"

	QueueCritical = "critical"
	QueueDefault  = "default"
)

// Enqueuer is the part of *asynq.Client the notifier uses
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// IncidentNotifier publishes inventory incidents as asynq tasks
type IncidentNotifier struct {
	client Enqueuer
	logger *slog.Logger
}

var _ ports.IncidentNotifier = (*IncidentNotifier)(nil)

// NewIncidentNotifier creates a notifier on top of an asynq client
func NewIncidentNotifier(client Enqueuer, logger *slog.Logger) *IncidentNotifier {
	return &IncidentNotifier{
		client: client,
		logger: logger.With(slog.String("component", "incident_notifier")),
	}
}

// NotifyInconsistency enqueues the incident on the critical queue. The
// incident id doubles as the task id so a retried publish is not duplicated.
func (n *IncidentNotifier) NotifyInconsistency(ctx context.Context, incident *domain.InventoryIncident) error {
	payload, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to encode incident: %w", err)
	}

	task := asynq.NewTask(TypeInventoryInconsistent, payload)
	info, err := n.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueCritical),
		asynq.TaskID(incident.ID.String()),
		asynq.MaxRetry(25),
		asynq.Retention(7*24*time.Hour),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue incident %s: %w", incident.ID, err)
	}

	n.logger.InfoContext(ctx, "incident enqueued",
		slog.String("incident_id", incident.ID.String()),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue))
	return nil
}

// IncidentProcessor stores incidents picked up from the queue
type IncidentProcessor struct {
	repo   ports.IncidentRepository
	logger *slog.Logger
}

// NewIncidentProcessor creates a new incident processor
func NewIncidentProcessor(repo ports.IncidentRepository, logger *slog.Logger) *IncidentProcessor {
	return &IncidentProcessor{
		repo:   repo,
		logger: logger.With(slog.String("processor", "incidents")),
	}
}

// HandleInconsistency persists one incident. Malformed payloads are not retried.
func (p *IncidentProcessor) HandleInconsistency(ctx context.Context, t *asynq.Task) error {
	var incident domain.InventoryIncident
	if err := json.Unmarshal(t.Payload(), &incident); err != nil {
		return fmt.Errorf("failed to unmarshal incident: %v: %w", err, asynq.SkipRetry)
	}

	if err := p.repo.Save(ctx, &incident); err != nil {
		return fmt.Errorf("failed to save incident %s: %w", incident.ID, err)
	}

	p.logger.ErrorContext(ctx, "inventory inconsistent, manual correction required",
		slog.String("incident_id", incident.ID.String()),
		slog.String("operation", incident.Operation),
		slog.String("reference_id", incident.ReferenceID.String()),
		slog.Any("pending", incident.Pending),
		slog.String("cause", incident.Cause))
	return nil
}

// ReportOpen logs every unresolved incident. It runs on a schedule.
func (p *IncidentProcessor) ReportOpen(ctx context.Context, _ *asynq.Task) error {
	open, err := p.repo.ListOpen(ctx, 100)
	if err != nil {
		return fmt.Errorf("failed to list open incidents: %w", err)
	}

	if len(open) == 0 {
		p.logger.DebugContext(ctx, "no open incidents")
		return nil
	}

	for _, incident := range open {
		p.logger.WarnContext(ctx, "open inventory incident",
			slog.String("incident_id", incident.ID.String()),
			slog.String("operation", incident.Operation),
			slog.Any("pending", incident.Pending),
			slog.Duration("age", time.Since(incident.DetectedAt)))
	}
	p.logger.WarnContext(ctx, "open incidents pending correction", slog.Int("count", len(open)))
	return nil
}
