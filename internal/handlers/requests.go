// internal/handlers/requests.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
)

// LineRequest is one line of a sale or purchase body
type LineRequest struct {
	VariantID int64           `json:"variant_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func toReservationSet(lines []LineRequest) domain.ReservationSet {
	set := make(domain.ReservationSet, len(lines))
	for i, l := range lines {
		set[i] = domain.ReservationLine{
			VariantID: domain.VariantID(l.VariantID),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return set
}

func validateLineCount(lines []LineRequest) error {
	if len(lines) == 0 {
		return fmt.Errorf("lines are required")
	}
	if len(lines) > domain.MaxLines {
		return fmt.Errorf("at most %d lines are allowed", domain.MaxLines)
	}
	return nil
}

// SaleRequest is the body of POST and PUT /sales
type SaleRequest struct {
	CustomerName     string        `json:"customer_name,omitempty"`
	PaymentMethod    string        `json:"payment_method,omitempty"`
	InstallmentCount int           `json:"installment_count,omitempty"`
	Lines            []LineRequest `json:"lines"`
	Notes            string        `json:"notes,omitempty"`
	SoldAt           *time.Time    `json:"sold_at,omitempty"`
}

// Validate checks the request shape; business rules are checked by the domain
func (r *SaleRequest) Validate() error {
	return validateLineCount(r.Lines)
}

// ToDomain converts the request to a domain model
func (r *SaleRequest) ToDomain() *domain.Sale {
	sale := &domain.Sale{
		CustomerName:     r.CustomerName,
		PaymentMethod:    domain.PaymentMethod(r.PaymentMethod),
		InstallmentCount: r.InstallmentCount,
		Lines:            toReservationSet(r.Lines),
		Notes:            r.Notes,
	}
	if r.SoldAt != nil {
		sale.SoldAt = *r.SoldAt
	}
	return sale
}

// PurchaseRequest is the body of POST and PUT /purchases
type PurchaseRequest struct {
	Supplier    string        `json:"supplier"`
	Reference   string        `json:"reference,omitempty"`
	Lines       []LineRequest `json:"lines"`
	PurchasedAt *time.Time    `json:"purchased_at,omitempty"`
}

// Validate checks the request shape
func (r *PurchaseRequest) Validate() error {
	if r.Supplier == "" {
		return fmt.Errorf("supplier is required")
	}
	return validateLineCount(r.Lines)
}

// ToDomain converts the request to a domain model
func (r *PurchaseRequest) ToDomain() *domain.Purchase {
	purchase := &domain.Purchase{
		Supplier:  r.Supplier,
		Reference: r.Reference,
		Lines:     toReservationSet(r.Lines),
	}
	if r.PurchasedAt != nil {
		purchase.PurchasedAt = *r.PurchasedAt
	}
	return purchase
}

// PayInstallmentRequest is the optional body of the pay endpoint
type PayInstallmentRequest struct {
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

// parseListParams reads paging and filters shared by the list endpoints.
// from/to accept RFC 3339 timestamps or plain dates.
func parseListParams(r *http.Request) (ports.ListParams, error) {
	q := r.URL.Query()
	params := ports.ListParams{
		Page:      1,
		PageSize:  20,
		SortOrder: "desc",
		Search:    q.Get("search"),
	}

	if page := q.Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}
	if limit := q.Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			params.PageSize = min(l, 100)
		}
	}
	if order := q.Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	for _, bound := range []struct {
		name string
		dst  **time.Time
	}{{"from", &params.From}, {"to", &params.To}} {
		raw := q.Get(bound.name)
		if raw == "" {
			continue
		}
		t, err := parseTime(raw)
		if err != nil {
			return params, fmt.Errorf("invalid %s: %q", bound.name, raw)
		}
		*bound.dst = &t
	}

	return params, nil
}

func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}
