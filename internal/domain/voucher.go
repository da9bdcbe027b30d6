package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED_AMOUNT"
)

// Voucher stock counts redemptions, not units: one successful order
// consumes exactly one unit of stock regardless of quantity ordered.
type Voucher struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	DiscountType  DiscountType    `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	ValidUntil    time.Time       `json:"validUntil"`
	Stock         int             `json:"stock"`
}

func (v *Voucher) Expired(now time.Time) bool {
	return v.ValidUntil.Before(now)
}

func (v *Voucher) Exhausted() bool {
	return v.Stock <= 0
}
