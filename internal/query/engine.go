// Package query filters, searches and sorts product lists in memory.
package query

import (
	"cmp"
	"slices"
	"strings"

	"mini-shop/internal/model"
)

// Apply returns the products whose name contains searchText (case-insensitive)
// and which pass the brand and model restrictions of filter, ordered by
// filter.SortBy. The sort is stable and the input slice is left untouched.
func Apply(products []model.Product, searchText string, filter model.Filter) []model.Product {
	needle := strings.ToLower(searchText)

	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if !filter.AllowsBrand(p.Brand) || !filter.AllowsModel(p.Model) {
			continue
		}
		result = append(result, p)
	}

	slices.SortStableFunc(result, comparator(filter.SortBy))
	return result
}

// comparator returns the ordering for a sort type. CreatedAt is compared as a
// plain string.
func comparator(sortBy model.SortType) func(a, b model.Product) int {
	switch sortBy {
	case model.SortCreatedDesc:
		return func(a, b model.Product) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) }
	case model.SortPriceAsc:
		return func(a, b model.Product) int { return a.Price.Cmp(b.Price) }
	case model.SortPriceDesc:
		return func(a, b model.Product) int { return b.Price.Cmp(a.Price) }
	default:
		return func(a, b model.Product) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) }
	}
}
