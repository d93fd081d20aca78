package mocks

import (
	"context"
	"sync/atomic"

	"github.com/optimal-labs/optimal-api/internal/domain"
	"github.com/optimal-labs/optimal-api/internal/service"
)

// MockProductService implements service.ProductService for testing
type MockProductService struct {
	SearchProductsFn func(ctx context.Context, term string, page domain.Page) ([]domain.Product, error)
	ListProductsFn   func(ctx context.Context, query domain.ListQuery) ([]domain.Product, error)

	// Default values used when function fields aren't defined
	Products []domain.Product
	Err      error

	searchCalls atomic.Int64
	listCalls   atomic.Int64
}

// Ensure MockProductService implements service.ProductService interface
var _ service.ProductService = (*MockProductService)(nil)

// SearchProducts implements the service.ProductService interface
func (m *MockProductService) SearchProducts(
	ctx context.Context,
	term string,
	page domain.Page,
) ([]domain.Product, error) {
	m.searchCalls.Add(1)
	if m.SearchProductsFn != nil {
		return m.SearchProductsFn(ctx, term, page)
	}
	return m.Products, m.Err
}

// ListProducts implements the service.ProductService interface
func (m *MockProductService) ListProducts(
	ctx context.Context,
	query domain.ListQuery,
) ([]domain.Product, error) {
	m.listCalls.Add(1)
	if m.ListProductsFn != nil {
		return m.ListProductsFn(ctx, query)
	}
	return m.Products, m.Err
}

// Calls returns the total number of use-case invocations.
func (m *MockProductService) Calls() int {
	return int(m.searchCalls.Load() + m.listCalls.Load())
}
