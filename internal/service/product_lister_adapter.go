package service

import (
	"context"

	"github.com/optimal-labs/optimal-api/internal/domain"
	"github.com/optimal-labs/optimal-api/internal/store"
)

// NewSearchListerAdapter creates an adapter that lets a store.ProductSearcher
// serve listings. It fetches every product through an unbounded empty-term
// search and applies filter, sort and the page window in memory, in that
// order, so pages stay correct.
func NewSearchListerAdapter(searcher store.ProductSearcher) store.ProductLister {
	return &searchListerAdapter{searcher: searcher}
}

// searchListerAdapter adapts a store.ProductSearcher to store.ProductLister
type searchListerAdapter struct {
	searcher store.ProductSearcher
}

// ListProducts implements store.ProductLister.ListProducts
func (a *searchListerAdapter) ListProducts(ctx context.Context, query domain.ListQuery) ([]domain.Product, error) {
	query = query.Normalized()

	all, err := a.searcher.SearchByTerm(ctx, "", domain.Unbounded())
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if query.Matches(p) {
			matched = append(matched, p)
		}
	}
	query.SortProducts(matched)

	return domain.Apply(matched, query.Page), nil
}
