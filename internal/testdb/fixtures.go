package testdb

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ProductFixture describes a row inserted into prod.products.
// Zero values are replaced with usable defaults.
type ProductFixture struct {
	Name         string
	Supermarket  string
	Price        string
	URL          string
	Image        *string
	PricePerUnit *string
	Inactive     bool
}

// InsertProduct inserts fixture and returns its generated id.
func InsertProduct(t *testing.T, tx *sqlx.Tx, fixture ProductFixture) int64 {
	t.Helper()

	if fixture.Name == "" {
		fixture.Name = "Test product"
	}
	if fixture.Supermarket == "" {
		fixture.Supermarket = "carrefour"
	}
	if fixture.Price == "" {
		fixture.Price = "1.00"
	}
	if fixture.URL == "" {
		fixture.URL = "https://example.com/products/" + fixture.Name
	}

	price, err := decimal.NewFromString(fixture.Price)
	require.NoError(t, err, "invalid fixture price")

	var id int64
	err = tx.GetContext(context.Background(), &id, `
		INSERT INTO prod.products (name, supermarket, price, url, image, price_per_unit, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, fixture.Name, fixture.Supermarket, price, fixture.URL, fixture.Image, fixture.PricePerUnit, !fixture.Inactive)
	require.NoError(t, err, "Failed to insert product fixture")

	return id
}
