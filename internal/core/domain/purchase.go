// internal/core/domain/purchase.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is a supplier intake that brings units into stock.
type Purchase struct {
	ID          uuid.UUID       `json:"id"`
	Supplier    string          `json:"supplier"`
	Reference   string          `json:"reference,omitempty"`
	Lines       ReservationSet  `json:"lines"`
	Total       decimal.Decimal `json:"total"`
	PurchasedAt time.Time       `json:"purchased_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Validate performs domain validation on the purchase
func (p *Purchase) Validate() error {
	if p.Supplier == "" {
		return fmt.Errorf("%w: supplier is required", ErrInvalidPurchase)
	}
	if len(p.Lines) == 0 {
		return fmt.Errorf("%w: at least one line is required", ErrInvalidPurchase)
	}
	return p.Lines.Validate()
}

// PrepareForStorage fills derived fields before persistence
func (p *Purchase) PrepareForStorage() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Total = p.Lines.Total()

	now := time.Now()
	if p.PurchasedAt.IsZero() {
		p.PurchasedAt = now
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
