package sources

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/scentscan/backend/internal/domain"
)

// selectorSet describes where a storefront's search page keeps each product
// field. The size and stock selectors are optional: perfume storefronts
// usually put the bottle size in the product title, so the title doubles as
// the raw size text when no dedicated element exists.
type selectorSet struct {
	products string
	name     string
	price    string
	image    string
	size     string
	stock    string
}

// extractFirstProduct pulls the first usable product listing from a search
// results page. No matching products means the retailer does not carry the
// perfume; products that all lack a name or price mean the page structure
// has drifted from the selectors.
func extractFirstProduct(doc *goquery.Document, baseURL string, sel selectorSet) (*domain.RawExtraction, error) {
	products := doc.Find(sel.products)
	if products.Length() == 0 {
		return nil, domain.ErrProductNotFound
	}

	var raw *domain.RawExtraction
	products.EachWithBreak(func(_ int, product *goquery.Selection) bool {
		name := strings.TrimSpace(product.Find(sel.name).Text())
		priceText := strings.TrimSpace(product.Find(sel.price).Text())
		if name == "" || priceText == "" {
			return true
		}

		extraction := &domain.RawExtraction{
			PriceText: priceText,
			SizeText:  name,
		}

		if sel.size != "" {
			if sizeText := strings.TrimSpace(product.Find(sel.size).Text()); sizeText != "" {
				extraction.SizeText = sizeText
			}
		}
		if sel.stock != "" {
			extraction.StockText = strings.TrimSpace(product.Find(sel.stock).Text())
		}

		if href, ok := product.Find("a").First().Attr("href"); ok {
			extraction.URL = resolveURL(baseURL, href)
		}
		if src, ok := product.Find(sel.image).First().Attr("src"); ok {
			extraction.ImageURL = resolveURL(baseURL, src)
		}

		raw = extraction
		return false
	})

	if raw == nil {
		return nil, fmt.Errorf("%w: no product listing had both name and price", domain.ErrParseFailure)
	}
	if raw.URL == "" {
		return nil, fmt.Errorf("%w: product link missing", domain.ErrParseFailure)
	}

	return raw, nil
}

// resolveURL turns a relative storefront href into an absolute URL.
func resolveURL(baseURL, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "/") {
		return baseURL + href
	}
	return href
}

// searchQuery encodes a perfume name for use in a search URL.
func searchQuery(perfumeName string) string {
	return url.QueryEscape(perfumeName)
}
