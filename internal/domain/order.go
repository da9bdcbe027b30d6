package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderCancelled OrderStatus = "CANCELLED"
)

type DeliveryStatus string

const (
	// DeliveryPreparing means every line item ships immediately.
	DeliveryPreparing DeliveryStatus = "PREPARING"
	// DeliveryScheduled means at least one line item is a pre-order and
	// the delivery date was computed from its rule.
	DeliveryScheduled DeliveryStatus = "SCHEDULED"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// Order is the aggregate root persisted by the checkout transaction.
// TotalFinal = max(0, Subtotal - TotalDiscount).
type Order struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	Status        OrderStatus     `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TotalFinal    decimal.Decimal `json:"totalFinal"`
	VoucherID     *uuid.UUID      `json:"voucherId,omitempty"`
	OrderDate     time.Time       `json:"orderDate"`
	OrderDetails  []OrderDetail   `json:"orderDetails"`
	Delivery      *Delivery       `json:"delivery"`
	Payments      []Payment       `json:"payments"`
	Voucher       *Voucher        `json:"voucher,omitempty"`
}

// OrderDetail snapshots one line item. PriceAtOrder is captured from
// the variant at checkout and never recomputed, so historical orders
// are immune to later price changes.
type OrderDetail struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"orderId"`
	VariantID    uuid.UUID       `json:"variantId"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"priceAtOrder"`
	Variant      *ProductVariant `json:"variant,omitempty"`
}

type Delivery struct {
	ID             uuid.UUID       `json:"id"`
	OrderID        uuid.UUID       `json:"orderId"`
	Address        string          `json:"address"`
	RecipientName  string          `json:"recipientName"`
	RecipientPhone string          `json:"recipientPhone"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	Status         DeliveryStatus  `json:"status"`
	DeliveryDate   time.Time       `json:"deliveryDate"`
}

type Payment struct {
	ID            uuid.UUID       `json:"id"`
	OrderID       uuid.UUID       `json:"orderId"`
	PaymentMethod string          `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	Status        PaymentStatus   `json:"status"`
}
