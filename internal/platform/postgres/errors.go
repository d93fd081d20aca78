package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/optimal-labs/optimal-api/internal/store"
)

// PostgreSQL error codes
const (
	// queryCanceledCode is raised when a statement is cancelled, e.g. by context cancellation
	queryCanceledCode = "57014"

	// undefinedTableCode is raised when prod.products is missing
	undefinedTableCode = "42P01"

	// undefinedFunctionCode is raised when prod.search_products is missing
	undefinedFunctionCode = "42883"

	// connectionExceptionClass is the class prefix for connection failures
	connectionExceptionClass = "08"
)

// MapError wraps a database error into a *store.StoreError, which always
// matches store.ErrRepository. The original error stays in the chain so
// pgconn codes and context errors remain inspectable.
func MapError(entity, operation string, err error) error {
	if err == nil {
		return nil
	}

	message := "query failed"

	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		message = "query cancelled"
	case errors.As(err, &pgErr):
		switch {
		case pgErr.Code == queryCanceledCode:
			message = "query cancelled"
		case pgErr.Code == undefinedTableCode, pgErr.Code == undefinedFunctionCode:
			message = "schema object missing"
		case strings.HasPrefix(pgErr.Code, connectionExceptionClass):
			message = "connection failure"
		}
	case pgconn.SafeToRetry(err):
		message = "connection failure"
	}

	return store.NewStoreError(entity, operation, message, err)
}

// IsQueryCanceled checks if the given error is a PostgreSQL statement cancellation.
func IsQueryCanceled(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == queryCanceledCode
}

// IsUndefinedObject checks if the given error reports a missing table or function.
// This usually means migrations have not been applied.
func IsUndefinedObject(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		(pgErr.Code == undefinedTableCode || pgErr.Code == undefinedFunctionCode)
}
