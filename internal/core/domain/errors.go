// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidLine            = errors.New("invalid line")
	ErrInvalidSale            = errors.New("invalid sale")
	ErrInvalidPurchase        = errors.New("invalid purchase")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrStoreUnavailable       = errors.New("stock store unavailable")
	ErrApplyFailed            = errors.New("stock delta partially applied")
	ErrInventoryInconsistent  = errors.New("inventory inconsistent")
	ErrSaleNotFound           = errors.New("sale not found")
	ErrPurchaseNotFound       = errors.New("purchase not found")
	ErrInstallmentNotFound    = errors.New("installment not found")
	ErrInstallmentAlreadyPaid = errors.New("installment already paid")
)

// InsufficientStockError lists every variant that failed availability.
type InsufficientStockError struct {
	Violations []InsufficientStock
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("variant %s (available %d, requested %d)",
			v.VariantID, v.Available, v.Requested))
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientStock, strings.Join(parts, ", "))
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ApplyFailure is returned when applying a delta stops part way. Applied
// holds the effective change of every entry written before the failure.
// Written lists those entries in write order, including writes whose
// change was clamped to zero and so are absent from Applied.
type ApplyFailure struct {
	Applied DeltaMap
	Written []VariantID
	Variant VariantID
	Err     error
}

func (e *ApplyFailure) Error() string {
	return fmt.Sprintf("%s at variant %s after %d entries: %v",
		ErrApplyFailed, e.Variant, len(e.Written), e.Err)
}

func (e *ApplyFailure) Is(target error) bool {
	return target == ErrApplyFailed
}

func (e *ApplyFailure) Unwrap() error {
	return e.Err
}

// InventoryInconsistentError means a compensation could not be written.
// Pending is the change that still has to be applied by hand.
type InventoryInconsistentError struct {
	Pending DeltaMap
	Cause   error
}

func (e *InventoryInconsistentError) Error() string {
	return fmt.Sprintf("%s: rollback of %d variants failed: %v",
		ErrInventoryInconsistent, len(e.Pending), e.Cause)
}

func (e *InventoryInconsistentError) Is(target error) bool {
	return target == ErrInventoryInconsistent
}

func (e *InventoryInconsistentError) Unwrap() error {
	return e.Cause
}
