package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/scentscan/backend/internal/domain"
)

// FailureObserver receives per-source failures the aggregator absorbs.
// Failures never surface in the returned result list; this hook exists for
// logging/metrics only.
type FailureObserver func(site string, err error)

// AggregatorConfig holds configuration for the aggregator
type AggregatorConfig struct {
	SourceTimeout    time.Duration
	AggregateTimeout time.Duration
	OnFailure        FailureObserver
}

// Aggregator fans a query out to every registered source concurrently and
// assembles the normalized rows in completion order.
type Aggregator struct {
	sources          []domain.Source
	sourceTimeout    time.Duration
	aggregateTimeout time.Duration
	onFailure        FailureObserver
}

// NewAggregator creates an aggregator over a fixed source set
func NewAggregator(sources []domain.Source, config AggregatorConfig) *Aggregator {
	sourceTimeout := config.SourceTimeout
	if sourceTimeout == 0 {
		sourceTimeout = 8 * time.Second
	}
	aggregateTimeout := config.AggregateTimeout
	if aggregateTimeout == 0 {
		aggregateTimeout = 15 * time.Second
	}

	return &Aggregator{
		sources:          sources,
		sourceTimeout:    sourceTimeout,
		aggregateTimeout: aggregateTimeout,
		onFailure:        config.OnFailure,
	}
}

// sourceOutcome is one adapter's settled result, written to its own slot on
// the outcome channel. The merge loop is the only reader, so no lock is
// needed for the cross-task merge.
type sourceOutcome struct {
	site string
	raw  *domain.RawExtraction
	err  error
}

// Aggregate invokes every source in parallel under the aggregate deadline
// and returns normalized rows in the order sources completed. NotFound
// sources are omitted silently; other failures are omitted and reported to
// the failure observer. Sources still pending at deadline expiry are treated
// as timed out and their contexts cancelled.
func (a *Aggregator) Aggregate(ctx context.Context, perfumeName string) []domain.PriceResult {
	ctx, cancel := context.WithTimeout(ctx, a.aggregateTimeout)
	defer cancel()

	outcomes := make(chan sourceOutcome, len(a.sources))
	for _, src := range a.sources {
		go func(src domain.Source) {
			srcCtx, srcCancel := context.WithTimeout(ctx, a.sourceTimeout)
			defer srcCancel()

			raw, err := src.Fetch(srcCtx, perfumeName)
			if err != nil && errors.Is(err, context.DeadlineExceeded) {
				err = domain.ErrSourceTimeout
			}
			outcomes <- sourceOutcome{site: src.Name(), raw: raw, err: err}
		}(src)
	}

	results := make([]domain.PriceResult, 0, len(a.sources))
	settled := make(map[string]bool, len(a.sources))

	for len(settled) < len(a.sources) {
		select {
		case outcome := <-outcomes:
			settled[outcome.site] = true
			if outcome.err != nil {
				a.recordFailure(outcome.site, outcome.err)
				continue
			}
			results = append(results, Normalize(outcome.site, outcome.raw))
		case <-ctx.Done():
			// Deadline expired: whatever has not settled counts as a
			// timeout. Cancellation has already propagated to the
			// pending fetches via the shared context.
			for _, src := range a.sources {
				if !settled[src.Name()] {
					a.recordFailure(src.Name(), domain.ErrSourceTimeout)
				}
			}
			return results
		}
	}

	return results
}

// recordFailure absorbs one source failure. NotFound means the retailer does
// not carry the product, which is not worth surfacing or counting.
func (a *Aggregator) recordFailure(site string, err error) {
	if errors.Is(err, domain.ErrProductNotFound) {
		log.Printf("[AGGREGATE] %s: no matching product", site)
		return
	}

	log.Printf("[AGGREGATE] %s failed: %v", site, err)
	if a.onFailure != nil {
		a.onFailure(site, err)
	}
}
