package domain

import (
	"context"
	"time"
)

// Source is one retailer adapter. Fetch returns at most one raw extraction
// for the named perfume, or one of the sentinel source errors
// (ErrProductNotFound, ErrSourceUnreachable, ErrParseFailure,
// ErrSourceTimeout). Adapters hold no shared mutable state and must honor
// cancellation of the passed context.
type Source interface {
	Name() string
	Fetch(ctx context.Context, perfumeName string) (*RawExtraction, error)
}

// CacheRepository defines the interface for caching comparison results.
type CacheRepository interface {
	Get(ctx context.Context, key string) (*ComparisonResult, error)
	Set(ctx context.Context, key string, value *ComparisonResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
