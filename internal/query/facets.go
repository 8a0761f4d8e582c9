package query

import (
	"slices"

	"mini-shop/internal/model"
)

// Facets returns the sorted distinct brands and models of the products.
// Empty values are skipped.
func Facets(products []model.Product) model.FilterOptions {
	brands := make(map[string]struct{})
	models := make(map[string]struct{})
	for _, p := range products {
		if p.Brand != "" {
			brands[p.Brand] = struct{}{}
		}
		if p.Model != "" {
			models[p.Model] = struct{}{}
		}
	}

	return model.FilterOptions{
		Brands: sortedKeys(brands),
		Models: sortedKeys(models),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
