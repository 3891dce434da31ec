package sources

import (
	"context"
	"fmt"

	"github.com/scentscan/backend/internal/domain"
)

// FragranceShop scrapes www.fragranceshop.com search results.
type FragranceShop struct {
	client  *Client
	baseURL string
}

// NewFragranceShop creates the FragranceShop source adapter
func NewFragranceShop(client *Client) *FragranceShop {
	return &FragranceShop{
		client:  client,
		baseURL: "https://www.fragranceshop.com",
	}
}

// Name implements domain.Source
func (s *FragranceShop) Name() string {
	return "FragranceShop"
}

// Fetch implements domain.Source
func (s *FragranceShop) Fetch(ctx context.Context, perfumeName string) (*domain.RawExtraction, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", s.baseURL, searchQuery(perfumeName))

	doc, err := s.client.FetchDocument(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	return extractFirstProduct(doc, s.baseURL, selectorSet{
		products: ".product-item",
		name:     ".product-name",
		price:    ".price",
		image:    ".product-image img",
		stock:    ".stock",
	})
}
