package model

import "github.com/shopspring/decimal"

// Product represents an entry of the remote product catalogue.
// Products are never mutated locally.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Model       string          `json:"model"`
	Brand       string          `json:"brand"`
	CreatedAt   string          `json:"createdAt"`
}

// FilterOptions lists the distinct brands and models present in the catalogue.
type FilterOptions struct {
	Brands []string `json:"brands"`
	Models []string `json:"models"`
}
