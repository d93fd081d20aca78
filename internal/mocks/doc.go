// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout the application,
// facilitating consistent testing across the codebase. Mocks expose function fields for
// per-test behavior and fall back to simple in-memory defaults.
//
// Usage:
//
//	import "github.com/optimal-labs/optimal-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    productStore := mocks.NewInMemoryProductStore(products...)
//	    svc, _ := service.NewProductService(productStore, nil)
//
//	    // exercise svc, then assert on productStore.SearchCalls()
//	}
package mocks
