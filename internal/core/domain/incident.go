// internal/core/domain/incident.go
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Operation names recorded on incidents
const (
	OperationCreateSale     = "create_sale"
	OperationUpdateSale     = "update_sale"
	OperationDeleteSale     = "delete_sale"
	OperationCreatePurchase = "create_purchase"
	OperationUpdatePurchase = "update_purchase"
	OperationDeletePurchase = "delete_purchase"
)

// InventoryIncident records a commit whose stock compensation failed.
// Pending is the delta an operator has to apply to restore stock.
type InventoryIncident struct {
	ID          uuid.UUID `json:"id"`
	Operation   string    `json:"operation"`
	ReferenceID uuid.UUID `json:"reference_id"`
	Pending     DeltaMap  `json:"pending"`
	Cause       string    `json:"cause"`
	DetectedAt  time.Time `json:"detected_at"`
}

// NewInventoryIncident builds an incident from a failed rollback
func NewInventoryIncident(operation string, referenceID uuid.UUID, err error) *InventoryIncident {
	incident := &InventoryIncident{
		ID:          uuid.New(),
		Operation:   operation,
		ReferenceID: referenceID,
		Pending:     DeltaMap{},
		DetectedAt:  time.Now().UTC(),
	}
	if err == nil {
		return incident
	}

	incident.Cause = err.Error()
	var inconsistent *InventoryInconsistentError
	if errors.As(err, &inconsistent) {
		incident.Pending = inconsistent.Pending.Clone()
	}
	return incident
}
