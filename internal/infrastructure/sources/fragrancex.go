package sources

import (
	"context"
	"fmt"

	"github.com/scentscan/backend/internal/domain"
)

// FragranceX scrapes www.fragrancex.com search results.
type FragranceX struct {
	client  *Client
	baseURL string
}

// NewFragranceX creates the FragranceX source adapter
func NewFragranceX(client *Client) *FragranceX {
	return &FragranceX{
		client:  client,
		baseURL: "https://www.fragrancex.com",
	}
}

// Name implements domain.Source
func (s *FragranceX) Name() string {
	return "FragranceX"
}

// Fetch implements domain.Source
func (s *FragranceX) Fetch(ctx context.Context, perfumeName string) (*domain.RawExtraction, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", s.baseURL, searchQuery(perfumeName))

	doc, err := s.client.FetchDocument(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	return extractFirstProduct(doc, s.baseURL, selectorSet{
		products: ".product",
		name:     ".product-title",
		price:    ".price-current",
		image:    ".product-image img",
		stock:    ".availability",
	})
}
