package usecase

import (
	"testing"

	"github.com/scentscan/backend/internal/domain"
)

func TestNormalize_Price(t *testing.T) {
	tests := []struct {
		name      string
		priceText string
		want      float64
		wantNil   bool
	}{
		{name: "dollar price", priceText: "$54.99", want: 54.99},
		{name: "price with thousands separator", priceText: "$1,299.00", want: 1299.00},
		{name: "bare number", priceText: "30", want: 30},
		{name: "price with surrounding text", priceText: "Now only $42.50!", want: 42.50},
		{name: "no number", priceText: "Call for price", wantNil: true},
		{name: "empty", priceText: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize("TestSite", &domain.RawExtraction{
				PriceText: tt.priceText,
				URL:       "https://example.com/p/1",
			})

			if tt.wantNil {
				if result.Price != nil {
					t.Errorf("Price = %v, want nil", *result.Price)
				}
				if result.PricePerML != nil {
					t.Errorf("PricePerML = %v, want nil when price absent", *result.PricePerML)
				}
				return
			}

			if result.Price == nil {
				t.Fatalf("Price = nil, want %v", tt.want)
			}
			if *result.Price != tt.want {
				t.Errorf("Price = %v, want %v", *result.Price, tt.want)
			}
		})
	}
}

func TestNormalize_SizeAndPricePerML(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		size     string
		wantSize string
		wantPPM  float64
		noPPM    bool
	}{
		{name: "milliliters", price: "$50.00", size: "100 ml", wantSize: "100 ml", wantPPM: 0.50},
		{name: "milliliters in product title", price: "$30.00", size: "Dior Sauvage EDT 50ml", wantSize: "50ml", wantPPM: 0.60},
		{name: "ounces", price: "$100.00", size: "3.4 oz", wantSize: "3.4 oz", wantPPM: 0.99},
		{name: "fluid ounces", price: "$75.38", size: "1.7 fl oz", wantSize: "1.7 fl oz", wantPPM: 1.50},
		{name: "unrecognized size keeps raw text", price: "$25.00", size: "Travel spray", wantSize: "Travel spray", noPPM: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize("TestSite", &domain.RawExtraction{
				PriceText: tt.price,
				SizeText:  tt.size,
				URL:       "https://example.com/p/1",
			})

			if result.Size == nil {
				t.Fatalf("Size = nil, want %q", tt.wantSize)
			}
			if *result.Size != tt.wantSize {
				t.Errorf("Size = %q, want %q", *result.Size, tt.wantSize)
			}

			if tt.noPPM {
				if result.PricePerML != nil {
					t.Errorf("PricePerML = %v, want nil", *result.PricePerML)
				}
				return
			}

			if result.PricePerML == nil {
				t.Fatalf("PricePerML = nil, want %v", tt.wantPPM)
			}
			if *result.PricePerML != tt.wantPPM {
				t.Errorf("PricePerML = %v, want %v", *result.PricePerML, tt.wantPPM)
			}
		})
	}
}

func TestNormalize_StockStatus(t *testing.T) {
	tests := []struct {
		stockText string
		want      domain.StockStatus
	}{
		{"In Stock", domain.StockStatusInStock},
		{"available online", domain.StockStatusInStock},
		{"Sold Out", domain.StockStatusOutOfStock},
		{"OUT OF STOCK", domain.StockStatusOutOfStock},
		{"ships in 2 weeks", domain.StockStatusUnknown},
		{"", domain.StockStatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.stockText, func(t *testing.T) {
			result := Normalize("TestSite", &domain.RawExtraction{
				StockText: tt.stockText,
				URL:       "https://example.com/p/1",
			})
			if result.StockStatus != tt.want {
				t.Errorf("StockStatus = %q, want %q", result.StockStatus, tt.want)
			}
		})
	}
}

func TestNormalize_MalformedInputDegrades(t *testing.T) {
	t.Run("everything unparseable still yields a row", func(t *testing.T) {
		result := Normalize("TestSite", &domain.RawExtraction{
			PriceText: "???",
			SizeText:  "??",
			StockText: "??",
			URL:       "https://example.com/p/1",
		})

		if result.Site != "TestSite" {
			t.Errorf("Site = %q, want TestSite", result.Site)
		}
		if result.URL != "https://example.com/p/1" {
			t.Errorf("URL = %q", result.URL)
		}
		if result.Price != nil {
			t.Errorf("Price = %v, want nil", *result.Price)
		}
		if result.PricePerML != nil {
			t.Errorf("PricePerML = %v, want nil", *result.PricePerML)
		}
		if result.StockStatus != domain.StockStatusUnknown {
			t.Errorf("StockStatus = %q, want Unknown", result.StockStatus)
		}
	})

	t.Run("image absent stays nil", func(t *testing.T) {
		result := Normalize("TestSite", &domain.RawExtraction{URL: "https://example.com/p/1"})
		if result.ImageURL != nil {
			t.Errorf("ImageURL = %v, want nil", *result.ImageURL)
		}
	})

	t.Run("image present is carried over", func(t *testing.T) {
		result := Normalize("TestSite", &domain.RawExtraction{
			URL:      "https://example.com/p/1",
			ImageURL: "https://example.com/img/1.jpg",
		})
		if result.ImageURL == nil || *result.ImageURL != "https://example.com/img/1.jpg" {
			t.Errorf("ImageURL = %v, want image link", result.ImageURL)
		}
	})
}
