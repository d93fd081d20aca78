package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a grocery item offered by one supermarket.
// Products are produced by the store per call and never shared across requests.
type Product struct {
	ID           int64
	Name         string
	URL          string
	Image        *string
	Price        decimal.Decimal
	PricePerUnit *string
	Supermarket  string
	// Rank is the relevance score of a term search; nil for listings.
	Rank *float64
}

// Validate checks the invariants every returned product must satisfy.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("name", "is required", ErrProductNameEmpty)
	}
	if strings.TrimSpace(p.URL) == "" {
		return NewValidationError("url", "is required", ErrProductURLEmpty)
	}
	if p.Price.IsNegative() {
		return NewValidationError("price", "must be >= 0", ErrNegativePrice)
	}
	return nil
}
