package domain

import (
	"cmp"
	"slices"
	"strings"
)

// SortField names a column products may be ordered by.
type SortField string

// Allowed sort fields.
const (
	SortByName        SortField = "name"
	SortByPrice       SortField = "price"
	SortBySupermarket SortField = "supermarket"

	DefaultSortField = SortByName
)

// SortOrder is the direction of a listing sort.
type SortOrder string

// Allowed sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"

	DefaultSortOrder = SortAsc
)

// SortFields lists every allowed SortField.
var SortFields = []SortField{SortByName, SortByPrice, SortBySupermarket}

// ParseSortField returns the matching SortField or DefaultSortField.
func ParseSortField(raw string) SortField {
	f := SortField(raw)
	if slices.Contains(SortFields, f) {
		return f
	}
	return DefaultSortField
}

// ParseSortOrder returns the matching SortOrder or DefaultSortOrder.
func ParseSortOrder(raw string) SortOrder {
	switch SortOrder(raw) {
	case SortAsc, SortDesc:
		return SortOrder(raw)
	default:
		return DefaultSortOrder
	}
}

// ListQuery describes one page of the active-product listing.
type ListQuery struct {
	Page Page
	// Supermarket filters by equality when non-empty.
	Supermarket string
	SortBy      SortField
	SortOrder   SortOrder
}

// Normalized returns a copy with unknown sort values replaced by defaults.
func (q ListQuery) Normalized() ListQuery {
	q.SortBy = ParseSortField(string(q.SortBy))
	q.SortOrder = ParseSortOrder(string(q.SortOrder))
	q.Supermarket = strings.TrimSpace(q.Supermarket)
	return q
}

// Matches reports whether p passes the query's filter.
func (q ListQuery) Matches(p Product) bool {
	return q.Supermarket == "" || p.Supermarket == q.Supermarket
}

// SortProducts stable-sorts products in place by the query's field and order.
func (q ListQuery) SortProducts(products []Product) {
	compare := func(a, b Product) int {
		switch q.SortBy {
		case SortByPrice:
			return a.Price.Cmp(b.Price)
		case SortBySupermarket:
			return cmp.Compare(a.Supermarket, b.Supermarket)
		default:
			return cmp.Compare(a.Name, b.Name)
		}
	}
	slices.SortStableFunc(products, func(a, b Product) int {
		if q.SortOrder == SortDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
}
