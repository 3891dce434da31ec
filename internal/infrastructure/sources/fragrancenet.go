package sources

import (
	"context"
	"fmt"

	"github.com/scentscan/backend/internal/domain"
)

// FragranceNet scrapes www.fragrancenet.com search results.
type FragranceNet struct {
	client  *Client
	baseURL string
}

// NewFragranceNet creates the FragranceNet source adapter
func NewFragranceNet(client *Client) *FragranceNet {
	return &FragranceNet{
		client:  client,
		baseURL: "https://www.fragrancenet.com",
	}
}

// Name implements domain.Source
func (s *FragranceNet) Name() string {
	return "FragranceNet"
}

// Fetch implements domain.Source
func (s *FragranceNet) Fetch(ctx context.Context, perfumeName string) (*domain.RawExtraction, error) {
	searchURL := fmt.Sprintf("%s/search?searchTerm=%s", s.baseURL, searchQuery(perfumeName))

	doc, err := s.client.FetchDocument(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	return extractFirstProduct(doc, s.baseURL, selectorSet{
		products: ".product-item",
		name:     ".product-name",
		price:    ".price",
		image:    ".product-image img",
		stock:    ".stock-status",
	})
}
