package testutils

import (
	"fmt"
	"testing"

	"github.com/optimal-labs/optimal-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// NewTestProduct creates a valid product for testing.
func NewTestProduct(t *testing.T, id int64, name, supermarket, price string) domain.Product {
	t.Helper()

	p := domain.Product{
		ID:          id,
		Name:        name,
		URL:         fmt.Sprintf("https://shop.example.com/%s/%d", supermarket, id),
		Price:       decimal.RequireFromString(price),
		Supermarket: supermarket,
	}
	require.NoError(t, p.Validate(), "invalid test product")
	return p
}

// MilkCatalog returns 30 products named "Milk NN" spread over three
// supermarkets, with prices increasing by id.
func MilkCatalog(t *testing.T) []domain.Product {
	t.Helper()

	supermarkets := []string{"carrefour", "dia", "mercadona"}
	products := make([]domain.Product, 0, 30)
	for i := 1; i <= 30; i++ {
		price := decimal.NewFromInt(int64(i)).Div(decimal.NewFromInt(10)).StringFixed(2)
		products = append(products, NewTestProduct(t,
			int64(i),
			fmt.Sprintf("Milk %02d", i),
			supermarkets[(i-1)%len(supermarkets)],
			price,
		))
	}
	return products
}
