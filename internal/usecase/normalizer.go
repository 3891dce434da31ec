package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/scentscan/backend/internal/domain"
)

// mlPerOunce is the fixed fluid-ounce to milliliter conversion factor.
const mlPerOunce = 29.5735

// Package-level compiled regex patterns for performance
var (
	priceNumberRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)
	sizeRegex        = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(fl\s*oz|oz|ml)`)
)

// Normalize converts one raw extraction into the canonical PriceResult shape.
// Malformed input never fails the record: unparseable fields degrade to
// absent so the source still contributes a row.
func Normalize(site string, raw *domain.RawExtraction) domain.PriceResult {
	result := domain.PriceResult{
		Site:        site,
		URL:         raw.URL,
		StockStatus: normalizeStock(raw.StockText),
	}

	if raw.ImageURL != "" {
		imageURL := raw.ImageURL
		result.ImageURL = &imageURL
	}

	price, priceOK := parsePrice(raw.PriceText)
	if priceOK {
		result.Price = &price
	}

	size, volumeML, sizeOK := parseSize(raw.SizeText)
	if raw.SizeText != "" {
		// Unrecognized size text is kept as the raw display string
		// with no derived volume.
		display := size
		if !sizeOK {
			display = strings.TrimSpace(raw.SizeText)
		}
		if display != "" {
			result.Size = &display
		}
	}

	if priceOK && sizeOK && volumeML > 0 {
		perML := roundTo2(price / volumeML)
		result.PricePerML = &perML
	}

	return result
}

// parsePrice extracts a numeric price from free-form price text like
// "$54.99" or "R 1,299.00".
func parsePrice(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	cleaned := strings.ReplaceAll(text, ",", "")
	match := priceNumberRegex.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// parseSize extracts a display size and its volume in milliliters from
// free-form size text. Recognized units: ml, oz, fl oz.
func parseSize(text string) (string, float64, bool) {
	match := sizeRegex.FindStringSubmatch(text)
	if match == nil {
		return "", 0, false
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return "", 0, false
	}

	unit := strings.ReplaceAll(strings.ToLower(match[2]), " ", "")
	volumeML := value
	if strings.Contains(unit, "oz") {
		volumeML = value * mlPerOunce
	}

	return strings.TrimSpace(match[0]), volumeML, true
}

// normalizeStock maps raw retailer stock text to the closed StockStatus set
// with a case-insensitive keyword match.
func normalizeStock(text string) domain.StockStatus {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "out"):
		return domain.StockStatusOutOfStock
	case strings.Contains(lowered, "in stock"), strings.Contains(lowered, "available"):
		return domain.StockStatusInStock
	default:
		return domain.StockStatusUnknown
	}
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
