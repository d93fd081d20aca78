package domain

import "math"

// Pagination bounds applied to incoming page/pagesize parameters.
const (
	DefaultPage     = 1
	DefaultPageSize = 12
	MaxPageSize     = 100

	// NoLimit marks a Page that returns every row from Offset onward.
	NoLimit = -1
)

// Page is an offset/limit window over an ordered result set.
type Page struct {
	Offset int
	Limit  int
}

// NewPage clamps page and pagesize and converts them to an offset/limit window.
// page < 1 becomes DefaultPage; pagesize outside [0, MaxPageSize] becomes DefaultPageSize.
// The offset saturates at math.MaxInt instead of overflowing.
func NewPage(page, pageSize int) Page {
	page, pageSize = ClampPagination(page, pageSize)
	offset := math.MaxInt
	if pageSize == 0 || page-1 <= math.MaxInt/pageSize {
		offset = (page - 1) * pageSize
	}
	return Page{
		Offset: offset,
		Limit:  pageSize,
	}
}

// Unbounded returns a Page covering the whole result set.
func Unbounded() Page {
	return Page{Offset: 0, Limit: NoLimit}
}

// ClampPagination applies the silent defaulting rules; it never fails.
func ClampPagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 0 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// IsUnbounded reports whether the page has no limit.
func (p Page) IsUnbounded() bool {
	return p.Limit < 0
}

// LimitArg returns the limit as a query argument: nil when unbounded.
// Postgres treats LIMIT NULL as no limit.
func (p Page) LimitArg() *int {
	if p.IsUnbounded() {
		return nil
	}
	limit := p.Limit
	return &limit
}

// Apply slices items to the page window. A negative offset yields no items.
func Apply[T any](items []T, p Page) []T {
	if p.Offset < 0 || p.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if !p.IsUnbounded() && p.Limit < end-p.Offset {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end]
}
