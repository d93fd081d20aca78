// Package api handles incoming HTTP requests for the product endpoints:
// query parameter normalization, calls into the product use cases and
// response formatting. It translates HTTP concerns to service calls and
// service errors back to status codes.
package api
