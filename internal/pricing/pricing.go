// Package pricing computes order totals. Everything here is pure:
// callers resolve variants and validate vouchers first.
package pricing

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

type Quote struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Calculate prices the given lines against an optional voucher.
//
// A PERCENTAGE voucher discounts subtotal * value/100; a FIXED_AMOUNT
// voucher discounts its flat value even when that exceeds the subtotal.
// The final total is floored at zero, the stored discount is not.
func Calculate(lines []Line, voucher *domain.Voucher) Quote {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	discount := decimal.Zero
	if voucher != nil {
		switch voucher.DiscountType {
		case domain.DiscountPercentage:
			discount = subtotal.Mul(voucher.DiscountValue).Div(oneHundred)
		case domain.DiscountFixed:
			discount = voucher.DiscountValue
		}
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Quote{Subtotal: subtotal, Discount: discount, Total: total}
}
