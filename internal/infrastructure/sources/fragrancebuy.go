package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/scentscan/backend/internal/domain"
)

// FragranceBuy scrapes www.fragrancebuy.ca, whose search results only exist
// after client-side rendering, so it drives a headless browser instead of
// the plain HTTP client.
type FragranceBuy struct {
	baseURL    string
	userAgent  string
	renderWait time.Duration
}

// NewFragranceBuy creates the FragranceBuy source adapter
func NewFragranceBuy(userAgent string) *FragranceBuy {
	return &FragranceBuy{
		baseURL:    "https://www.fragrancebuy.ca",
		userAgent:  userAgent,
		renderWait: 2 * time.Second,
	}
}

// Name implements domain.Source
func (s *FragranceBuy) Name() string {
	return "FragranceBuy"
}

// Fetch implements domain.Source
func (s *FragranceBuy) Fetch(ctx context.Context, perfumeName string) (*domain.RawExtraction, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", s.baseURL, searchQuery(perfumeName))

	html, err := s.renderPage(ctx, searchURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, domain.ErrSourceTimeout
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnreachable, err)
	}

	return s.parseSearchPage(html)
}

// renderPage loads a URL in a fresh headless browser tab and returns the
// rendered markup. One browser per call keeps adapters free of shared state.
func (s *FragranceBuy) renderPage(ctx context.Context, pageURL string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.UserAgent(s.userAgent),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTab()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(s.renderWait), // give JS time to render the results grid
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

// parseSearchPage extracts the first product from rendered search markup.
// Split out from Fetch so it is testable without a browser.
func (s *FragranceBuy) parseSearchPage(html string) (*domain.RawExtraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}

	return extractFirstProduct(doc, s.baseURL, selectorSet{
		products: ".product-card",
		name:     ".product-card__title",
		price:    ".product-card__price",
		image:    ".product-card__image img",
		stock:    ".product-card__availability",
	})
}
