package catalog

import (
	"sort"
	"strings"

	"shophub/internal/domain"
)

// Query is an executable plan for a FilterSpec: a conjunctive predicate and a
// strict total order over products.
type Query struct {
	spec   domain.FilterSpec
	needle string
}

// Plan compiles spec into a Query. An unknown sort key falls back to newest.
func Plan(spec domain.FilterSpec) Query {
	if !spec.Sort.Valid() {
		spec.Sort = domain.SortNewest
	}
	return Query{
		spec:   spec,
		needle: strings.ToLower(spec.Search),
	}
}

// Spec returns the filter the query was planned from
func (q Query) Spec() domain.FilterSpec {
	return q.spec
}

// Match reports whether p satisfies every clause of the filter
func (q Query) Match(p *domain.Product) bool {
	if q.spec.Category != "" && p.Category != q.spec.Category {
		return false
	}
	if q.needle != "" && !q.matchSearch(p) {
		return false
	}
	if q.spec.MinPrice != nil && p.Price < *q.spec.MinPrice {
		return false
	}
	if q.spec.MaxPrice != nil && p.Price > *q.spec.MaxPrice {
		return false
	}
	if q.spec.InStockOnly && !(p.InStock && p.StockQuantity > 0) {
		return false
	}
	return true
}

func (q Query) matchSearch(p *domain.Product) bool {
	if strings.Contains(strings.ToLower(p.Name), q.needle) ||
		strings.Contains(strings.ToLower(p.Description), q.needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q.needle) {
			return true
		}
	}
	return false
}

// Compare orders a before b (-1), after b (1), or reports 0 only when both
// carry the same ID.
func (q Query) Compare(a, b *domain.Product) int {
	if c := q.comparePrimary(a, b); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// Less is Compare(a, b) < 0
func (q Query) Less(a, b *domain.Product) bool {
	return q.Compare(a, b) < 0
}

func (q Query) comparePrimary(a, b *domain.Product) int {
	switch q.spec.Sort {
	case domain.SortPriceAsc:
		return compareFloat(a.Price, b.Price)
	case domain.SortPriceDesc:
		return compareFloat(b.Price, a.Price)
	case domain.SortName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case domain.SortRating:
		// unrated products sort after every rated one
		switch {
		case a.Rating == nil && b.Rating == nil:
			return 0
		case a.Rating == nil:
			return 1
		case b.Rating == nil:
			return -1
		}
		return compareFloat(*b.Rating, *a.Rating)
	default:
		switch {
		case a.CreatedAt.After(b.CreatedAt):
			return -1
		case a.CreatedAt.Before(b.CreatedAt):
			return 1
		}
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Sort orders products in place
func (q Query) Sort(products []*domain.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return q.Less(products[i], products[j])
	})
}

// Apply returns the matching products in query order. The input slice and
// the products it points to are left untouched.
func (q Query) Apply(products []*domain.Product) []*domain.Product {
	result := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if q.Match(p) {
			result = append(result, p)
		}
	}
	q.Sort(result)
	return result
}

// Categories returns the distinct category names of products in ascending order
func Categories(products []*domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	names := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok || p.Category == "" {
			continue
		}
		seen[p.Category] = struct{}{}
		names = append(names, p.Category)
	}
	sort.Strings(names)
	return names
}

// CountByCategory tallies products per category name
func CountByCategory(products []*domain.Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}
	return counts
}
