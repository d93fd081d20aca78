package api

import (
	"encoding/json"

	"github.com/optimal-labs/optimal-api/internal/domain"
)

// ProductDTO is the wire form of a product.
type ProductDTO struct {
	Name         string      `json:"name"`
	URL          string      `json:"url"`
	Image        *string     `json:"image"`
	Price        json.Number `json:"price"`
	PricePerUnit *string     `json:"price_per_unit"`
	Supermarket  string      `json:"supermarket"`
}

// FiltersDTO echoes the non-default filter and sort values of a listing.
type FiltersDTO struct {
	Supermarket string `json:"supermarket,omitempty"`
	SortBy      string `json:"sort_by,omitempty"`
	SortOrder   string `json:"sort_order,omitempty"`
}

// ProductListResponse is the envelope of both product endpoints.
//
// HasMore is true when the page came back full. A full last page therefore
// reports HasMore even though the next page is empty.
type ProductListResponse struct {
	Products []ProductDTO `json:"products"`
	Page     int          `json:"page"`
	PageSize int          `json:"pagesize"`
	HasMore  bool         `json:"has_more"`
	Total    *int         `json:"total,omitempty"`
	Filters  *FiltersDTO  `json:"filters,omitempty"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

func toProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		Name:         p.Name,
		URL:          p.URL,
		Image:        p.Image,
		Price:        json.Number(p.Price.String()),
		PricePerUnit: p.PricePerUnit,
		Supermarket:  p.Supermarket,
	}
}

func toProductDTOs(products []domain.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toProductDTO(p))
	}
	return dtos
}

func newProductListResponse(products []domain.Product, page, pageSize int) ProductListResponse {
	return ProductListResponse{
		Products: toProductDTOs(products),
		Page:     page,
		PageSize: pageSize,
		HasMore:  len(products) == pageSize,
	}
}
