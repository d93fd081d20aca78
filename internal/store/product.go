package store

import (
	"context"

	"github.com/optimal-labs/optimal-api/internal/domain"
)

// ProductSearcher finds products matching a free-text term.
type ProductSearcher interface {
	// SearchByTerm returns products matching term, ordered by relevance.
	// An empty term matches every product. page may be domain.Unbounded().
	// Returns an error wrapping ErrRepository on any query failure.
	SearchByTerm(ctx context.Context, term string, page domain.Page) ([]domain.Product, error)
}

// ProductLister lists active products with an optional filter and sort.
type ProductLister interface {
	// ListProducts returns the active products selected by query.
	// Filtering and sorting are applied before the page window.
	// Returns an error wrapping ErrRepository on any query failure.
	ListProducts(ctx context.Context, query domain.ListQuery) ([]domain.Product, error)
}

// ProductStore defines the interface for product data access.
// Version: 1.0
type ProductStore interface {
	ProductSearcher
	ProductLister
}
