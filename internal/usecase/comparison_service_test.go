package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scentscan/backend/internal/domain"
)

// mockCache is an in-memory domain.CacheRepository for service tests.
type mockCache struct {
	data      map[string]*domain.ComparisonResult
	getCalled bool
	setCalled bool
	setError  error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]*domain.ComparisonResult)}
}

func (m *mockCache) Get(ctx context.Context, key string) (*domain.ComparisonResult, error) {
	m.getCalled = true
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value *domain.ComparisonResult, ttl time.Duration) error {
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestCompare_InvalidQuery(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
	}{
		{name: "empty string", query: ""},
		{name: "whitespace only", query: "   "},
		{name: "tabs and newlines", query: "\t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeSource{name: "A", raw: rawOffer("$50.00", "100 ml")}
			svc := NewComparisonService(nil, []domain.Source{source}, ComparisonServiceConfig{})

			result, err := svc.Compare(ctx, tt.query)
			if !errors.Is(err, domain.ErrInvalidQuery) {
				t.Errorf("error = %v, want ErrInvalidQuery", err)
			}
			if result != nil {
				t.Errorf("result = %+v, want nil", result)
			}
			// rejection happens before any adapter runs
			if source.callCount() != 0 {
				t.Errorf("source called %d times, want 0", source.callCount())
			}
		})
	}
}

func TestCompare_BestDealByPerMLCost(t *testing.T) {
	ctx := context.Background()

	// A: 100 ml for $50 (0.50/ml), B: 50 ml for $30 (0.60/ml), C: not carried.
	// Delays fix the completion order so assertions are deterministic.
	sources := []domain.Source{
		&fakeSource{name: "A", raw: rawOffer("$50.00", "100 ml"), delay: 10 * time.Millisecond},
		&fakeSource{name: "B", raw: rawOffer("$30.00", "50 ml"), delay: 30 * time.Millisecond},
		&fakeSource{name: "C", err: domain.ErrProductNotFound, delay: 50 * time.Millisecond},
	}
	svc := NewComparisonService(nil, sources, ComparisonServiceConfig{})

	result, err := svc.Compare(ctx, "Chanel No 5")
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if result.PerfumeName != "Chanel No 5" {
		t.Errorf("PerfumeName = %q, want query echoed back", result.PerfumeName)
	}
	if len(result.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(result.Results))
	}
	if result.Results[0].Site != "A" || result.Results[1].Site != "B" {
		t.Errorf("result order = %q, %q; want A, B", result.Results[0].Site, result.Results[1].Site)
	}

	if ppm := result.Results[0].PricePerML; ppm == nil || *ppm != 0.50 {
		t.Errorf("A PricePerML = %v, want 0.50", ppm)
	}
	if ppm := result.Results[1].PricePerML; ppm == nil || *ppm != 0.60 {
		t.Errorf("B PricePerML = %v, want 0.60", ppm)
	}

	// A wins on per-ml cost despite the higher absolute price
	if result.BestDeal == nil || result.BestDeal.Site != "A" {
		t.Fatalf("BestDeal = %+v, want site A", result.BestDeal)
	}
}

func TestCompare_AllSourcesUnreachable(t *testing.T) {
	ctx := context.Background()
	sources := []domain.Source{
		&fakeSource{name: "A", err: domain.ErrSourceUnreachable},
		&fakeSource{name: "B", err: domain.ErrSourceUnreachable},
	}
	svc := NewComparisonService(nil, sources, ComparisonServiceConfig{})

	result, err := svc.Compare(ctx, "Chanel No 5")
	if err != nil {
		t.Fatalf("Compare() error = %v, want nil (no deals is a valid answer)", err)
	}
	if result.Results == nil {
		t.Fatal("Results = nil, want empty slice")
	}
	if len(result.Results) != 0 {
		t.Errorf("got %d results, want 0", len(result.Results))
	}
	if result.BestDeal != nil {
		t.Errorf("BestDeal = %+v, want nil", result.BestDeal)
	}
}

func TestCompare_Idempotence(t *testing.T) {
	ctx := context.Background()
	sources := []domain.Source{
		&fakeSource{name: "A", raw: rawOffer("$50.00", "100 ml"), delay: 10 * time.Millisecond},
		&fakeSource{name: "B", raw: rawOffer("$30.00", "50 ml"), delay: 40 * time.Millisecond},
	}
	svc := NewComparisonService(nil, sources, ComparisonServiceConfig{})

	first, err := svc.Compare(ctx, "Dior Sauvage")
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	second, err := svc.Compare(ctx, "Dior Sauvage")
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(first.Results) != len(second.Results) {
		t.Fatalf("result counts differ: %d vs %d", len(first.Results), len(second.Results))
	}
	for i := range first.Results {
		if first.Results[i].Site != second.Results[i].Site {
			t.Errorf("results[%d] = %q vs %q, want identical ordering", i, first.Results[i].Site, second.Results[i].Site)
		}
	}
	if first.BestDeal.Site != second.BestDeal.Site {
		t.Errorf("best deals differ: %q vs %q", first.BestDeal.Site, second.BestDeal.Site)
	}
}

func TestCompare_CacheHitSkipsSources(t *testing.T) {
	ctx := context.Background()
	cached := &domain.ComparisonResult{
		PerfumeName: "Chanel No 5",
		Results:     []domain.PriceResult{},
	}

	cache := newMockCache()
	cache.data["prices:chanel no 5"] = cached

	source := &fakeSource{name: "A", raw: rawOffer("$50.00", "100 ml")}
	svc := NewComparisonService(cache, []domain.Source{source}, ComparisonServiceConfig{})

	result, err := svc.Compare(ctx, "  Chanel No. 5 ")
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if result != cached {
		t.Error("expected the cached comparison to be returned")
	}
	if source.callCount() != 0 {
		t.Errorf("source called %d times on cache hit, want 0", source.callCount())
	}
}

func TestCompare_CacheMissStoresResult(t *testing.T) {
	ctx := context.Background()
	cache := newMockCache()
	source := &fakeSource{name: "A", raw: rawOffer("$50.00", "100 ml")}
	svc := NewComparisonService(cache, []domain.Source{source}, ComparisonServiceConfig{})

	if _, err := svc.Compare(ctx, "Chanel No 5"); err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if !cache.setCalled {
		t.Error("expected result to be cached")
	}
	if _, ok := cache.data["prices:chanel no 5"]; !ok {
		t.Errorf("cache keys = %v, want prices:chanel no 5", cache.data)
	}
}

func TestCompare_CacheWriteFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	cache := newMockCache()
	cache.setError = errors.New("cache unavailable")

	source := &fakeSource{name: "A", raw: rawOffer("$50.00", "100 ml")}
	svc := NewComparisonService(cache, []domain.Source{source}, ComparisonServiceConfig{})

	result, err := svc.Compare(ctx, "Chanel No 5")
	if err != nil {
		t.Fatalf("Compare() error = %v, want nil", err)
	}
	if len(result.Results) != 1 {
		t.Errorf("got %d results, want 1", len(result.Results))
	}
}

func TestCompare_HungSourceDoesNotDelayReturn(t *testing.T) {
	ctx := context.Background()
	sources := []domain.Source{
		&fakeSource{name: "Fast", raw: rawOffer("$50.00", "100 ml"), delay: 10 * time.Millisecond},
		&fakeSource{name: "Hung", block: true},
	}
	svc := NewComparisonService(nil, sources, ComparisonServiceConfig{
		SourceTimeout:    100 * time.Millisecond,
		AggregateTimeout: 200 * time.Millisecond,
	})

	start := time.Now()
	result, err := svc.Compare(ctx, "Chanel No 5")
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if elapsed > 1*time.Second {
		t.Errorf("Compare took %s, aggregate deadline was 200ms", elapsed)
	}
	if len(result.Results) != 1 || result.Results[0].Site != "Fast" {
		t.Fatalf("results = %+v, want only Fast", result.Results)
	}
}
