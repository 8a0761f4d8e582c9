package model

import "fmt"

// SortType selects the ordering of a product query.
type SortType string

const (
	SortCreatedAsc  SortType = "created_asc"
	SortCreatedDesc SortType = "created_desc"
	SortPriceAsc    SortType = "price_asc"
	SortPriceDesc   SortType = "price_desc"
)

// ParseSortType converts a query parameter into a SortType.
// An empty value selects the default ordering.
func ParseSortType(s string) (SortType, error) {
	switch SortType(s) {
	case "":
		return SortCreatedAsc, nil
	case SortCreatedAsc, SortCreatedDesc, SortPriceAsc, SortPriceDesc:
		return SortType(s), nil
	default:
		return "", fmt.Errorf("%w: unknown sort %q", ErrInvalidFilter, s)
	}
}

// Filter holds the structured criteria of a product query.
// The zero value sorts by creation ascending and applies no restriction.
type Filter struct {
	SortBy         SortType
	SelectedBrands map[string]struct{}
	SelectedModels map[string]struct{}
}

// NewFilter builds a filter from brand and model lists.
func NewFilter(sortBy SortType, brands, models []string) Filter {
	return Filter{
		SortBy:         sortBy,
		SelectedBrands: toSet(brands),
		SelectedModels: toSet(models),
	}
}

// AllowsBrand reports whether the brand passes the brand restriction.
func (f Filter) AllowsBrand(brand string) bool {
	if len(f.SelectedBrands) == 0 {
		return true
	}
	_, ok := f.SelectedBrands[brand]
	return ok
}

// AllowsModel reports whether the model passes the model restriction.
func (f Filter) AllowsModel(m string) bool {
	if len(f.SelectedModels) == 0 {
		return true
	}
	_, ok := f.SelectedModels[m]
	return ok
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
