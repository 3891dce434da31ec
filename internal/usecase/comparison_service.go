package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/scentscan/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	CacheTTL         time.Duration
	SourceTimeout    time.Duration
	AggregateTimeout time.Duration
	OnSourceFailure  FailureObserver
}

// ComparisonService is the price-comparison entry point: it composes the
// aggregator and the ranker behind a cache-aside lookup.
type ComparisonService struct {
	cache      domain.CacheRepository
	aggregator *Aggregator
	cacheTTL   time.Duration
}

// NewComparisonService creates a comparison service over a fixed source set.
// The cache may be nil to disable caching.
func NewComparisonService(
	cache domain.CacheRepository,
	sources []domain.Source,
	config ComparisonServiceConfig,
) *ComparisonService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Hour
	}

	return &ComparisonService{
		cache: cache,
		aggregator: NewAggregator(sources, AggregatorConfig{
			SourceTimeout:    config.SourceTimeout,
			AggregateTimeout: config.AggregateTimeout,
			OnFailure:        config.OnSourceFailure,
		}),
		cacheTTL: cacheTTL,
	}
}

// Compare looks up prices for a perfume across all sources and selects the
// best deal. The only failure mode is an invalid query; an all-sources-failed
// run still succeeds with an empty result list and no best deal.
func (s *ComparisonService) Compare(ctx context.Context, perfumeName string) (*domain.ComparisonResult, error) {
	query := strings.TrimSpace(perfumeName)
	if query == "" {
		return nil, domain.ErrInvalidQuery
	}

	cacheKey := s.generateCacheKey(query)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
			log.Printf("[COMPARE] cache hit for %q", query)
			return cached, nil
		}
	}

	results := s.aggregator.Aggregate(ctx, query)
	comparison := &domain.ComparisonResult{
		PerfumeName: query,
		Results:     results,
		BestDeal:    SelectBest(results),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, comparison, s.cacheTTL); err != nil {
			log.Printf("[COMPARE] failed to cache result for %q: %v", query, err)
		}
	}

	return comparison, nil
}

// generateCacheKey creates a normalized cache key from the query.
// Format: "prices:{normalized_perfume_name}"
func (s *ComparisonService) generateCacheKey(query string) string {
	normalized := strings.ToLower(query)
	normalized = nonAlphanumericRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	return fmt.Sprintf("prices:%s", strings.TrimSpace(normalized))
}
