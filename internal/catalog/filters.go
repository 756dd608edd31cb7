// Package catalog turns raw query parameters into a FilterSpec and applies it
// to a product set.
package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"shophub/internal/domain"
)

// Query parameter names accepted by ParseFilters
const (
	ParamCategory    = "category"
	ParamSearch      = "search"
	ParamMinPrice    = "minPrice"
	ParamMaxPrice    = "maxPrice"
	ParamInStockOnly = "inStockOnly"
	ParamSortBy      = "sortBy"
)

// ParseFilters normalizes raw filter input. It never fails: a field that
// cannot be interpreted is treated as absent. An inverted price range is
// swapped so that MinPrice <= MaxPrice always holds.
func ParseFilters(values url.Values) domain.FilterSpec {
	spec := domain.FilterSpec{
		Category:    strings.TrimSpace(values.Get(ParamCategory)),
		Search:      strings.TrimSpace(values.Get(ParamSearch)),
		MinPrice:    parsePrice(values.Get(ParamMinPrice)),
		MaxPrice:    parsePrice(values.Get(ParamMaxPrice)),
		InStockOnly: values.Get(ParamInStockOnly) == "true",
		Sort:        parseSort(values.Get(ParamSortBy)),
	}

	if spec.MinPrice != nil && spec.MaxPrice != nil && *spec.MinPrice > *spec.MaxPrice {
		spec.MinPrice, spec.MaxPrice = spec.MaxPrice, spec.MinPrice
	}

	return spec
}

// Encode is the inverse of ParseFilters, used by clients and tests to build
// query strings.
func Encode(spec domain.FilterSpec) url.Values {
	values := url.Values{}
	if spec.Category != "" {
		values.Set(ParamCategory, spec.Category)
	}
	if spec.Search != "" {
		values.Set(ParamSearch, spec.Search)
	}
	if spec.MinPrice != nil {
		values.Set(ParamMinPrice, strconv.FormatFloat(*spec.MinPrice, 'f', -1, 64))
	}
	if spec.MaxPrice != nil {
		values.Set(ParamMaxPrice, strconv.FormatFloat(*spec.MaxPrice, 'f', -1, 64))
	}
	if spec.InStockOnly {
		values.Set(ParamInStockOnly, "true")
	}
	if spec.Sort != "" && spec.Sort != domain.SortNewest {
		values.Set(ParamSortBy, string(spec.Sort))
	}
	return values
}

func parsePrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseSort(raw string) domain.SortKey {
	key := domain.SortKey(strings.TrimSpace(raw))
	if !key.Valid() {
		return domain.SortNewest
	}
	return key
}
