// Package shared holds the request-context helpers and JSON response
// envelope used by both the API handlers and the middleware.
package shared
