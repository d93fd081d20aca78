package store

import (
	"context"
)

// DBTX is an interface that abstracts the database access layer.
// It is implemented by both *sqlx.DB and *sqlx.Tx, allowing the stores
// to scan rows straight into structs with either a pooled connection
// or a transaction.
type DBTX interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}
