package service

import (
	"errors"
	"fmt"
)

// Validation failures are distinct sentinels so the transport layer can
// map each one to its own status code. Anything that breaks inside the
// persistence transaction collapses into ErrCreateOrder; the real cause
// is logged server-side only.
var (
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrVariantNotFound  = errors.New("one or more product variants not found")
	ErrVoucherNotFound  = errors.New("voucher not found")
	ErrVoucherExpired   = errors.New("voucher is expired")
	ErrVoucherExhausted = errors.New("voucher is out of stock")
	ErrCreateOrder      = errors.New("failed to create order")
)

// InsufficientStockError names the first offending SKU; the whole
// request is rejected, never partially accepted.
type InsufficientStockError struct {
	SKU string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for variant %s", e.SKU)
}
