package domain

// SortKey selects the primary ordering of a catalog query
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortName      SortKey = "name"
	SortRating    SortKey = "rating"
)

// Valid reports whether k is one of the known sort keys
func (k SortKey) Valid() bool {
	switch k {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortName, SortRating:
		return true
	}
	return false
}

// FilterSpec is the normalized form of a catalog query. Zero values impose no
// constraint: an empty Category or Search matches everything and a nil price
// bound is open.
type FilterSpec struct {
	Category    string
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
	Sort        SortKey
}

// IsOpen reports whether the spec constrains nothing
func (f FilterSpec) IsOpen() bool {
	return f.Category == "" && f.Search == "" && f.MinPrice == nil && f.MaxPrice == nil && !f.InStockOnly
}
