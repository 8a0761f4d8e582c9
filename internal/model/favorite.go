package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FavoriteEntry is a favourited product snapshot, keyed by product ID.
type FavoriteEntry struct {
	ProductID    string          `json:"productId" db:"product_id"`
	ProductName  string          `json:"productName" db:"product_name"`
	ProductImage string          `json:"productImage" db:"product_image"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Description  string          `json:"description" db:"description"`
	Model        string          `json:"model" db:"model"`
	Brand        string          `json:"brand" db:"brand"`
	AddedAt      time.Time       `json:"addedAt" db:"added_at"`
}

// NewFavoriteEntry snapshots the display fields of a product.
func NewFavoriteEntry(p Product, addedAt time.Time) FavoriteEntry {
	return FavoriteEntry{
		ProductID:    p.ID,
		ProductName:  p.Name,
		ProductImage: p.Image,
		Price:        p.Price,
		Description:  p.Description,
		Model:        p.Model,
		Brand:        p.Brand,
		AddedAt:      addedAt,
	}
}

// Product converts the entry back into a product view. CreatedAt is not
// part of the snapshot and stays empty.
func (f FavoriteEntry) Product() Product {
	return Product{
		ID:          f.ProductID,
		Name:        f.ProductName,
		Image:       f.ProductImage,
		Price:       f.Price,
		Description: f.Description,
		Model:       f.Model,
		Brand:       f.Brand,
	}
}

// ToggleResponse reports the favourite state after a toggle.
type ToggleResponse struct {
	ProductID string `json:"productId"`
	Favorite  bool   `json:"favorite"`
}
