// Package middleware contains the HTTP middleware chain for the product API:
// trace ID and request-scoped logger injection, bearer-token access control,
// panic recovery with a JSON body, request logging and API version headers.
package middleware
