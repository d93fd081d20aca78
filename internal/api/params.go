package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/optimal-labs/optimal-api/internal/domain"
)

var validate = validator.New()

const (
	sortFieldRule = "oneof=name price supermarket"
	sortOrderRule = "oneof=asc desc"
)

// SearchParams are the normalized query parameters of the search endpoint.
type SearchParams struct {
	Term         string
	Page         int
	PageSize     int
	IncludeTotal bool
}

// Window returns the offset/limit window for the requested page.
func (p SearchParams) Window() domain.Page {
	return domain.NewPage(p.Page, p.PageSize)
}

// ListParams are the normalized query parameters of the listing endpoint.
type ListParams struct {
	Page         int
	PageSize     int
	Supermarket  string
	SortBy       domain.SortField
	SortOrder    domain.SortOrder
	IncludeTotal bool
}

// Query returns the listing query for the requested page.
func (p ListParams) Query() domain.ListQuery {
	return domain.ListQuery{
		Page:        domain.NewPage(p.Page, p.PageSize),
		Supermarket: p.Supermarket,
		SortBy:      p.SortBy,
		SortOrder:   p.SortOrder,
	}
}

// Filters returns the applied values that differ from the defaults,
// or nil when every value is a default.
func (p ListParams) Filters() *FiltersDTO {
	f := FiltersDTO{Supermarket: p.Supermarket}
	if p.SortBy != domain.DefaultSortField {
		f.SortBy = string(p.SortBy)
	}
	if p.SortOrder != domain.DefaultSortOrder {
		f.SortOrder = string(p.SortOrder)
	}
	if f == (FiltersDTO{}) {
		return nil
	}
	return &f
}

// NormalizePagination applies the silent defaulting rules to page and pagesize.
func NormalizePagination(page, pageSize int) (int, int) {
	return domain.ClampPagination(page, pageSize)
}

// ParseSearchParams reads term, page, pagesize and include_total.
// It never fails: bad values fall back to their defaults.
func ParseSearchParams(r *http.Request) SearchParams {
	q := r.URL.Query()
	page, pageSize := parsePagination(q.Get("page"), q.Get("pagesize"))
	return SearchParams{
		Term:         strings.TrimSpace(q.Get("term")),
		Page:         page,
		PageSize:     pageSize,
		IncludeTotal: parseFlag(q.Get("include_total")),
	}
}

// ParseListParams reads page, pagesize, supermarket, sort_by, sort_order
// and include_total. It never fails: bad values fall back to their defaults.
func ParseListParams(r *http.Request) ListParams {
	q := r.URL.Query()
	page, pageSize := parsePagination(q.Get("page"), q.Get("pagesize"))

	sortBy := domain.DefaultSortField
	if raw := strings.ToLower(strings.TrimSpace(q.Get("sort_by"))); validate.Var(raw, sortFieldRule) == nil {
		sortBy = domain.SortField(raw)
	}
	sortOrder := domain.DefaultSortOrder
	if raw := strings.ToLower(strings.TrimSpace(q.Get("sort_order"))); validate.Var(raw, sortOrderRule) == nil {
		sortOrder = domain.SortOrder(raw)
	}

	return ListParams{
		Page:         page,
		PageSize:     pageSize,
		Supermarket:  strings.TrimSpace(q.Get("supermarket")),
		SortBy:       sortBy,
		SortOrder:    sortOrder,
		IncludeTotal: parseFlag(q.Get("include_total")),
	}
}

func parsePagination(rawPage, rawPageSize string) (int, int) {
	return NormalizePagination(
		parseIntOr(rawPage, domain.DefaultPage),
		parseIntOr(rawPageSize, domain.DefaultPageSize),
	)
}

func parseIntOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
