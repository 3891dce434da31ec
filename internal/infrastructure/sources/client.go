package sources

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/scentscan/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles HTTP communication with a retailer storefront. Each adapter
// owns its own Client so rate limiting is per site.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	rateLimiter *rate.Limiter
}

// NewClient creates a fetch client with a per-site rate limit expressed in
// requests per minute.
func NewClient(userAgent string, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent:   userAgent,
		rateLimiter: limiter,
	}
}

// FetchDocument GETs a storefront URL and parses the body into a goquery
// document. Transient failures (transport errors, 5xx) are retried up to 3
// times with a short backoff; error returns map onto the source error
// taxonomy so callers never see raw transport errors.
func (c *Client) FetchDocument(ctx context.Context, reqURL string) (*goquery.Document, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, domain.ErrSourceTimeout
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, domain.ErrSourceTimeout
			}
			log.Printf("[FETCH] request error (attempt %d) %s: %v", attempt, reqURL, err)
			lastErr = fmt.Errorf("%w: %v", domain.ErrSourceUnreachable, err)
			if !sleepBackoff(ctx, attempt) {
				return nil, domain.ErrSourceTimeout
			}
			continue
		}

		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return nil, domain.ErrProductNotFound
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			log.Printf("[FETCH] status %d (attempt %d) %s", resp.StatusCode, attempt, reqURL)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrSourceUnreachable, resp.StatusCode)
			if !sleepBackoff(ctx, attempt) {
				return nil, domain.ErrSourceTimeout
			}
			continue
		}

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
		}
		return doc, nil
	}

	return nil, lastErr
}

// doRequest executes an HTTP GET request with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	return c.httpClient.Do(req)
}

// sleepBackoff waits attempt*500ms or until the context is done. Returns
// false when the context fired.
func sleepBackoff(ctx context.Context, attempt int) bool {
	timer := time.NewTimer(time.Duration(attempt*500) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
