package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/optimal-labs/optimal-api/internal/domain"
	"github.com/optimal-labs/optimal-api/internal/platform/logger"
	"github.com/optimal-labs/optimal-api/internal/redact"
	"github.com/optimal-labs/optimal-api/internal/store"
	"github.com/shopspring/decimal"
)

const productEntity = "product"

const searchProductsQuery = `
		SELECT id, name, url, image, price, price_per_unit, supermarket, rank
		FROM prod.search_products($1)
		ORDER BY rank DESC NULLS LAST, id
		OFFSET $2 LIMIT $3
	`

const listProductsSelect = `
		SELECT id, name, url, image, price, price_per_unit, supermarket
		FROM prod.products
		WHERE is_active`

// sortColumns maps allowed sort fields to SQL columns. Anything not in
// this map never reaches the ORDER BY clause.
var sortColumns = map[domain.SortField]string{
	domain.SortByName:        "name",
	domain.SortByPrice:       "price",
	domain.SortBySupermarket: "supermarket",
}

var sortDirections = map[domain.SortOrder]string{
	domain.SortAsc:  "ASC",
	domain.SortDesc: "DESC",
}

// productRow is the scan target for product queries.
type productRow struct {
	ID           int64           `db:"id"`
	Name         string          `db:"name"`
	URL          string          `db:"url"`
	Image        *string         `db:"image"`
	Price        decimal.Decimal `db:"price"`
	PricePerUnit *string         `db:"price_per_unit"`
	Supermarket  string          `db:"supermarket"`
	Rank         *float64        `db:"rank"`
}

func (r productRow) toDomain() domain.Product {
	return domain.Product{
		ID:           r.ID,
		Name:         r.Name,
		URL:          r.URL,
		Image:        r.Image,
		Price:        r.Price,
		PricePerUnit: r.PricePerUnit,
		Supermarket:  r.Supermarket,
		Rank:         r.Rank,
	}
}

// PostgresProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a new PostgreSQL implementation of the ProductStore interface.
// It accepts a database handle that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure PostgresProductStore implements store.ProductStore interface
var _ store.ProductStore = (*PostgresProductStore)(nil)

// SearchByTerm implements store.ProductSearcher.SearchByTerm.
// Results are ordered by rank (highest first, unranked last) and then by id.
func (s *PostgresProductStore) SearchByTerm(
	ctx context.Context,
	term string,
	page domain.Page,
) ([]domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("searching products",
		slog.String("term", term),
		slog.Int("offset", page.Offset),
		slog.Int("limit", page.Limit))

	var rows []productRow
	err := s.db.SelectContext(ctx, &rows, searchProductsQuery, term, page.Offset, limitArg(page))
	if err != nil {
		log.Error("failed to search products",
			slog.String("error", redact.Error(err)),
			slog.String("term", term))
		return nil, MapError(productEntity, "search", err)
	}

	return toProducts(log, rows), nil
}

// ListProducts implements store.ProductLister.ListProducts.
// Filtering and ordering happen in SQL before OFFSET/LIMIT.
func (s *PostgresProductStore) ListProducts(
	ctx context.Context,
	query domain.ListQuery,
) ([]domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sqlQuery, args := buildListQuery(query)

	log.Debug("listing products",
		slog.String("supermarket", query.Supermarket),
		slog.String("sort_by", string(query.SortBy)),
		slog.String("sort_order", string(query.SortOrder)),
		slog.Int("offset", query.Page.Offset),
		slog.Int("limit", query.Page.Limit))

	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		log.Error("failed to list products",
			slog.String("error", redact.Error(err)),
			slog.String("supermarket", query.Supermarket))
		return nil, MapError(productEntity, "list", err)
	}

	return toProducts(log, rows), nil
}

// buildListQuery renders the listing SQL and its positional arguments.
// Sort column and direction come only from the allow-list maps.
func buildListQuery(query domain.ListQuery) (string, []any) {
	query = query.Normalized()

	var b strings.Builder
	args := make([]any, 0, 3)

	b.WriteString(listProductsSelect)
	if query.Supermarket != "" {
		args = append(args, query.Supermarket)
		fmt.Fprintf(&b, " AND supermarket = $%d", len(args))
	}

	fmt.Fprintf(&b, "\n\t\tORDER BY %s %s, id %s",
		sortColumns[query.SortBy],
		sortDirections[query.SortOrder],
		sortDirections[query.SortOrder])

	args = append(args, query.Page.Offset)
	fmt.Fprintf(&b, "\n\t\tOFFSET $%d", len(args))
	args = append(args, limitArg(query.Page))
	fmt.Fprintf(&b, " LIMIT $%d", len(args))

	return b.String(), args
}

// limitArg returns nil for an unbounded page; Postgres treats LIMIT NULL as no limit.
func limitArg(page domain.Page) any {
	if limit := page.LimitArg(); limit != nil {
		return *limit
	}
	return nil
}

// toProducts converts rows; rows failing Product.Validate are logged and dropped.
func toProducts(log *slog.Logger, rows []productRow) []domain.Product {
	products := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		p := r.toDomain()
		if err := p.Validate(); err != nil {
			log.Warn("skipping invalid product row",
				slog.Int64("id", r.ID),
				slog.String("error", err.Error()))
			continue
		}
		products = append(products, p)
	}
	return products
}
