// internal/core/domain/stock.go
package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// VariantID identifies a sellable stock unit (product x color x size).
type VariantID int64

// ParseVariantID converts external input into a VariantID.
// Only positive integers are accepted.
func ParseVariantID(raw string) (VariantID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: variant_id is required", ErrInvalidLine)
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: variant_id %q is not an integer", ErrInvalidLine, raw)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: variant_id must be positive", ErrInvalidLine)
	}

	return VariantID(n), nil
}

// String implements fmt.Stringer
func (id VariantID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Valid reports whether the id can reference a stored variant
func (id VariantID) Valid() bool {
	return id > 0
}

// StockLevel is the persisted on-hand quantity of one variant.
type StockLevel struct {
	VariantID VariantID `json:"variant_id"`
	Quantity  int       `json:"quantity"`
}

// ReservationLine is one line of a sale or purchase.
// UnitPrice is carried for totals only.
type ReservationLine struct {
	VariantID VariantID       `json:"variant_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Validate checks a single line
func (l ReservationLine) Validate() error {
	if !l.VariantID.Valid() {
		return fmt.Errorf("%w: variant_id must be positive", ErrInvalidLine)
	}
	if l.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive for variant %s", ErrInvalidLine, l.VariantID)
	}
	if l.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit_price cannot be negative for variant %s", ErrInvalidLine, l.VariantID)
	}
	if !l.UnitPrice.Equal(l.UnitPrice.Round(2)) {
		return fmt.Errorf("%w: unit_price %s has more than 2 decimal places for variant %s",
			ErrInvalidLine, l.UnitPrice, l.VariantID)
	}
	return nil
}

// Subtotal returns quantity * unit price
func (l ReservationLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// MaxLines bounds a single sale or purchase. Lines are written in one
// multi-row insert, which Postgres limits to 65535 bind parameters.
const MaxLines = 500

// ReservationSet holds the lines of one transaction. A variant may appear
// on more than one line.
type ReservationSet []ReservationLine

// Validate checks every line of the set
func (s ReservationSet) Validate() error {
	if len(s) > MaxLines {
		return fmt.Errorf("%w: at most %d lines per transaction, got %d", ErrInvalidLine, MaxLines, len(s))
	}
	for i, line := range s {
		if err := line.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}

// Totals sums quantities per variant.
func (s ReservationSet) Totals() map[VariantID]int {
	totals := make(map[VariantID]int, len(s))
	for _, line := range s {
		totals[line.VariantID] += line.Quantity
	}
	return totals
}

// IDs returns the distinct variant ids of the set in ascending order.
func (s ReservationSet) IDs() []VariantID {
	return sortedKeys(s.Totals())
}

// Total returns the money value of the set
func (s ReservationSet) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s {
		total = total.Add(line.Subtotal())
	}
	return total
}

// DeltaMap is a signed per-variant stock change. Positive amounts return
// units to stock, negative amounts remove them. Zero entries are never stored.
type DeltaMap map[VariantID]int

// ComputeDelta returns totals(old) - totals(new) per variant.
func ComputeDelta(oldSet, newSet ReservationSet) DeltaMap {
	delta := DeltaMap{}
	for id, qty := range oldSet.Totals() {
		delta[id] += qty
	}
	for id, qty := range newSet.Totals() {
		delta[id] -= qty
	}
	for id, amount := range delta {
		if amount == 0 {
			delete(delta, id)
		}
	}
	return delta
}

// Inverse negates every entry.
func (d DeltaMap) Inverse() DeltaMap {
	inv := make(DeltaMap, len(d))
	for id, amount := range d {
		if amount != 0 {
			inv[id] = -amount
		}
	}
	return inv
}

// IDs returns the variants touched by the delta in ascending order.
func (d DeltaMap) IDs() []VariantID {
	return sortedKeys(d)
}

// IsEmpty reports whether the delta changes nothing
func (d DeltaMap) IsEmpty() bool {
	for _, amount := range d {
		if amount != 0 {
			return false
		}
	}
	return true
}

// Clone returns a copy without zero entries
func (d DeltaMap) Clone() DeltaMap {
	out := make(DeltaMap, len(d))
	for id, amount := range d {
		if amount != 0 {
			out[id] = amount
		}
	}
	return out
}

// InsufficientStock describes one variant that cannot cover a request.
type InsufficientStock struct {
	VariantID VariantID `json:"variant_id"`
	Available int       `json:"available"`
	Requested int       `json:"requested"`
}

func sortedKeys[V any](m map[VariantID]V) []VariantID {
	ids := make([]VariantID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
