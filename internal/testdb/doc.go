// Package testdb provides utilities for Postgres integration tests.
//
// Tests run only when DATABASE_URL (or OPTIMAL_TEST_DB_URL) is set; otherwise
// they are skipped. The embedded goose migrations are applied once per
// connection, and each test runs inside a transaction that is rolled back when
// the test completes, so tests never see each other's rows.
//
//	func TestListProducts(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
//	        productStore := postgres.NewPostgresProductStore(tx, nil)
//	        testdb.InsertProduct(t, tx, testdb.ProductFixture{Name: "Leche"})
//	        ...
//	    })
//	}
package testdb
