// Package service contains the application-specific use cases: searching
// products by term and listing active products with filter, sort and
// pagination. It orchestrates the repository interfaces defined in
// internal/store and never depends on a specific storage implementation.
//
// Services receive dependencies through constructor injection, hold no
// per-request state and are safe for concurrent use.
package service
