// Package domain contains the core business entities and value objects of the
// product search API: products, page requests, listing filter/sort specs and
// caller identities. It is independent of any specific infrastructure or
// delivery mechanism.
package domain
