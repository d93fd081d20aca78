package api

import (
	"log/slog"
	"net/http"

	"github.com/optimal-labs/optimal-api/internal/api/shared"
	"github.com/optimal-labs/optimal-api/internal/domain"
	"github.com/optimal-labs/optimal-api/internal/platform/logger"
	"github.com/optimal-labs/optimal-api/internal/service"
)

// ProductHandler serves the product search and listing endpoints.
type ProductHandler struct {
	productService service.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService, log *slog.Logger) *ProductHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ProductHandler{
		productService: productService,
		logger:         log.With("component", "product_handler"),
	}
}

// SearchProducts handles GET /api/products/search.
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := ParseSearchParams(r)
	log := logger.FromContextOrDefault(ctx, h.logger)

	products, err := h.productService.SearchProducts(ctx, params.Term, params.Window())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := newProductListResponse(products, params.Page, params.PageSize)
	if params.IncludeTotal {
		all, err := h.productService.SearchProducts(ctx, params.Term, domain.Unbounded())
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		total := len(all)
		resp.Total = &total
	}

	log.Debug("product search served",
		"page", params.Page,
		"pagesize", params.PageSize,
		"count", len(products))

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// ListProducts handles GET /api/products/.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := ParseListParams(r)
	log := logger.FromContextOrDefault(ctx, h.logger)
	query := params.Query()

	products, err := h.productService.ListProducts(ctx, query)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := newProductListResponse(products, params.Page, params.PageSize)
	resp.Filters = params.Filters()
	if params.IncludeTotal {
		query.Page = domain.Unbounded()
		all, err := h.productService.ListProducts(ctx, query)
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		total := len(all)
		resp.Total = &total
	}

	log.Debug("product listing served",
		"page", params.Page,
		"pagesize", params.PageSize,
		"supermarket", params.Supermarket,
		"sort_by", params.SortBy,
		"sort_order", params.SortOrder,
		"count", len(products))

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
