// internal/core/domain/sale.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a sale is settled
type PaymentMethod string

// Payment method constants
const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCredit   PaymentMethod = "credit"
)

// MaxInstallments bounds the credit plan length
const MaxInstallments = 24

// Valid reports whether the payment method is known
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentCredit:
		return true
	}
	return false
}

// Sale is a customer sale header plus its lines.
type Sale struct {
	ID               uuid.UUID       `json:"id"`
	CustomerName     string          `json:"customer_name,omitempty"`
	PaymentMethod    PaymentMethod   `json:"payment_method"`
	InstallmentCount int             `json:"installment_count,omitempty"`
	Lines            ReservationSet  `json:"lines"`
	Total            decimal.Decimal `json:"total"`
	Installments     []Installment   `json:"installments,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	SoldAt           time.Time       `json:"sold_at"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Installment is one scheduled payment of a credit sale
type Installment struct {
	SaleID  uuid.UUID       `json:"sale_id"`
	Number  int             `json:"number"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
	PaidAt  *time.Time      `json:"paid_at,omitempty"`
}

// IsPaid reports whether the installment has been settled
func (i *Installment) IsPaid() bool {
	return i.PaidAt != nil
}

// Pay marks the installment as paid at the given time
func (i *Installment) Pay(at time.Time) error {
	if i.IsPaid() {
		return fmt.Errorf("%w: installment %d of sale %s", ErrInstallmentAlreadyPaid, i.Number, i.SaleID)
	}
	i.PaidAt = &at
	return nil
}

// Validate performs domain validation on the sale
func (s *Sale) Validate() error {
	if len(s.Lines) == 0 {
		return fmt.Errorf("%w: at least one line is required", ErrInvalidSale)
	}
	if err := s.Lines.Validate(); err != nil {
		return err
	}
	if s.PaymentMethod == "" {
		s.PaymentMethod = PaymentCash
	}
	if !s.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidSale, s.PaymentMethod)
	}
	if s.PaymentMethod == PaymentCredit {
		if s.InstallmentCount < 1 || s.InstallmentCount > MaxInstallments {
			return fmt.Errorf("%w: installment_count must be between 1 and %d", ErrInvalidSale, MaxInstallments)
		}
	} else {
		s.InstallmentCount = 0
	}
	return nil
}

// PrepareForStorage fills derived fields before persistence
func (s *Sale) PrepareForStorage() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	s.Total = s.Lines.Total()

	now := time.Now()
	if s.SoldAt.IsZero() {
		s.SoldAt = now
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	s.Installments = nil
	if s.PaymentMethod == PaymentCredit {
		s.Installments = BuildInstallmentPlan(s.ID, s.Total, s.InstallmentCount, s.SoldAt.AddDate(0, 1, 0))
	}
}

// BuildInstallmentPlan splits total into count monthly installments rounded
// down to cents. The rounding remainder is added to the last installment.
func BuildInstallmentPlan(saleID uuid.UUID, total decimal.Decimal, count int, firstDue time.Time) []Installment {
	if count <= 0 {
		return nil
	}

	share := total.Div(decimal.NewFromInt(int64(count))).RoundDown(2)
	plan := make([]Installment, count)
	allocated := decimal.Zero

	for i := 0; i < count; i++ {
		amount := share
		if i == count-1 {
			amount = total.Sub(allocated)
		}
		allocated = allocated.Add(amount)

		plan[i] = Installment{
			SaleID:  saleID,
			Number:  i + 1,
			Amount:  amount,
			DueDate: firstDue.AddDate(0, i, 0),
		}
	}

	return plan
}
