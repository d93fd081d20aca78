package service

import (
	"context"
	"log/slog"

	"github.com/optimal-labs/optimal-api/internal/domain"
	"github.com/optimal-labs/optimal-api/internal/platform/logger"
	"github.com/optimal-labs/optimal-api/internal/redact"
	"github.com/optimal-labs/optimal-api/internal/store"
)

// ProductService provides the product search and listing use cases.
type ProductService interface {
	// SearchProducts returns the products matching term within page.
	// It performs exactly one repository call.
	SearchProducts(ctx context.Context, term string, page domain.Page) ([]domain.Product, error)

	// ListProducts returns the active products selected by query.
	ListProducts(ctx context.Context, query domain.ListQuery) ([]domain.Product, error)
}

// productServiceImpl implements the ProductService interface
type productServiceImpl struct {
	searcher store.ProductSearcher
	lister   store.ProductLister
	logger   *slog.Logger
}

// NewProductService creates a new ProductService.
// If searcher also implements store.ProductLister, listings are delegated to it;
// otherwise listings go through NewSearchListerAdapter.
func NewProductService(searcher store.ProductSearcher, logger *slog.Logger) (ProductService, error) {
	if searcher == nil {
		return nil, domain.NewValidationError("searcher", "cannot be nil", ErrNilRepository)
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "product_service"))

	lister, ok := searcher.(store.ProductLister)
	if !ok {
		logger.Warn("product store cannot list; falling back to in-memory listing")
		lister = NewSearchListerAdapter(searcher)
	}

	return &productServiceImpl{
		searcher: searcher,
		lister:   lister,
		logger:   logger,
	}, nil
}

// SearchProducts implements ProductService.SearchProducts
func (s *productServiceImpl) SearchProducts(
	ctx context.Context,
	term string,
	page domain.Page,
) ([]domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	products, err := s.searcher.SearchByTerm(ctx, term, page)
	if err != nil {
		log.Error("product search failed",
			slog.String("error", redact.Error(err)),
			slog.String("term", term))
		return nil, NewProductServiceError("search", "repository query failed", err)
	}

	log.Debug("product search completed",
		slog.String("term", term),
		slog.Int("count", len(products)))
	return products, nil
}

// ListProducts implements ProductService.ListProducts
func (s *productServiceImpl) ListProducts(
	ctx context.Context,
	query domain.ListQuery,
) ([]domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	products, err := s.lister.ListProducts(ctx, query.Normalized())
	if err != nil {
		log.Error("product listing failed",
			slog.String("error", redact.Error(err)),
			slog.String("supermarket", query.Supermarket))
		return nil, NewProductServiceError("list", "repository query failed", err)
	}

	log.Debug("product listing completed",
		slog.String("supermarket", query.Supermarket),
		slog.Int("count", len(products)))
	return products, nil
}
