package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine represents a persisted cart row. There is at most one line per product.
type CartLine struct {
	ID           int64           `json:"id" db:"id"`
	ProductID    string          `json:"productId" db:"product_id"`
	ProductName  string          `json:"productName" db:"product_name"`
	ProductImage string          `json:"productImage" db:"product_image"`
	UnitPrice    decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Quantity     int             `json:"quantity" db:"quantity"`
	AddedAt      time.Time       `json:"addedAt" db:"added_at"`
}

// LineTotal returns unit price times quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NewCartLine snapshots a product into a cart line with quantity 1.
func NewCartLine(p Product, addedAt time.Time) CartLine {
	return CartLine{
		ProductID:    p.ID,
		ProductName:  p.Name,
		ProductImage: p.Image,
		UnitPrice:    p.Price,
		Quantity:     1,
		AddedAt:      addedAt,
	}
}

// CartSummary holds the cart aggregates.
type CartSummary struct {
	ItemCount  int             `json:"itemCount"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// CartSnapshot is the full cart state delivered to live subscribers.
type CartSnapshot struct {
	Items []CartLine `json:"items"`
	CartSummary
}

// QuantityRequest represents the request payload for setting a line quantity.
type QuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// AddToCartRequest represents the request payload for adding a product to the cart.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
}
