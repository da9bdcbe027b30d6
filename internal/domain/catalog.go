package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	PreOrderRule *PreOrderRule `json:"preOrderRule,omitempty"`
}

// ProductVariant is a purchasable SKU. Price and stock live here, the
// pre-order rule lives on the parent product.
type ProductVariant struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Product   *Product        `json:"product,omitempty"`
}
