package domain

import "errors"

var (
	// ErrInvalidQuery is returned when the perfume name is empty after trimming
	ErrInvalidQuery = errors.New("perfume name must not be empty")

	// ErrProductNotFound is returned by an adapter when the retailer does not carry the product
	ErrProductNotFound = errors.New("product not found on retailer site")

	// ErrSourceUnreachable is returned when the retailer site cannot be reached
	ErrSourceUnreachable = errors.New("retailer site unreachable")

	// ErrParseFailure is returned when the retailer page did not match the expected structure
	ErrParseFailure = errors.New("retailer page structure did not match expectations")

	// ErrSourceTimeout is returned when an adapter call exceeds its deadline
	ErrSourceTimeout = errors.New("retailer request timed out")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
