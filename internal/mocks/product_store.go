package mocks

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/optimal-labs/optimal-api/internal/domain"
	"github.com/optimal-labs/optimal-api/internal/store"
)

// SearchCall records the arguments of one SearchByTerm call.
type SearchCall struct {
	Term string
	Page domain.Page
}

// InMemoryProductStore implements store.ProductStore over a fixed slice.
// Search matches the term case-insensitively against the name and orders by id.
// Listing filters active products, sorts and then paginates.
type InMemoryProductStore struct {
	// Function fields for customizable behavior
	SearchByTermFn func(ctx context.Context, term string, page domain.Page) ([]domain.Product, error)
	ListProductsFn func(ctx context.Context, query domain.ListQuery) ([]domain.Product, error)

	// Errors returned by the default implementation
	SearchErr error
	ListErr   error

	mu          sync.Mutex
	products    []domain.Product
	searchCalls []SearchCall
	listCalls   []domain.ListQuery
}

// Ensure InMemoryProductStore implements store.ProductStore interface
var _ store.ProductStore = (*InMemoryProductStore)(nil)

// NewInMemoryProductStore creates a store holding products.
func NewInMemoryProductStore(products ...domain.Product) *InMemoryProductStore {
	return &InMemoryProductStore{products: slices.Clone(products)}
}

// SearchByTerm implements the store.ProductSearcher interface
func (m *InMemoryProductStore) SearchByTerm(
	ctx context.Context,
	term string,
	page domain.Page,
) ([]domain.Product, error) {
	m.mu.Lock()
	m.searchCalls = append(m.searchCalls, SearchCall{Term: term, Page: page})
	m.mu.Unlock()

	if m.SearchByTermFn != nil {
		return m.SearchByTermFn(ctx, term, page)
	}
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError("product", "search", "query cancelled", err)
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	matched := make([]domain.Product, 0)
	for _, p := range m.snapshot() {
		if needle == "" || strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	slices.SortStableFunc(matched, func(a, b domain.Product) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	return slices.Clone(domain.Apply(matched, page)), nil
}

// ListProducts implements the store.ProductLister interface
func (m *InMemoryProductStore) ListProducts(
	ctx context.Context,
	query domain.ListQuery,
) ([]domain.Product, error) {
	m.mu.Lock()
	m.listCalls = append(m.listCalls, query)
	m.mu.Unlock()

	if m.ListProductsFn != nil {
		return m.ListProductsFn(ctx, query)
	}
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError("product", "list", "query cancelled", err)
	}

	query = query.Normalized()
	matched := make([]domain.Product, 0)
	for _, p := range m.snapshot() {
		if query.Matches(p) {
			matched = append(matched, p)
		}
	}
	query.SortProducts(matched)

	return slices.Clone(domain.Apply(matched, query.Page)), nil
}

// SearchCalls returns the recorded SearchByTerm calls.
func (m *InMemoryProductStore) SearchCalls() []SearchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.searchCalls)
}

// ListCalls returns the recorded ListProducts calls.
func (m *InMemoryProductStore) ListCalls() []domain.ListQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.listCalls)
}

// Reset clears recorded calls.
func (m *InMemoryProductStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls = nil
	m.listCalls = nil
}

func (m *InMemoryProductStore) snapshot() []domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.products)
}

// SearchOnlyStore exposes only store.ProductSearcher, for exercising the
// listing fallback.
type SearchOnlyStore struct {
	Inner *InMemoryProductStore
}

// SearchByTerm implements the store.ProductSearcher interface
func (s SearchOnlyStore) SearchByTerm(
	ctx context.Context,
	term string,
	page domain.Page,
) ([]domain.Product, error) {
	return s.Inner.SearchByTerm(ctx, term, page)
}
