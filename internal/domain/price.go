package domain

// StockStatus is the closed set of retailer stock states.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "In Stock"
	StockStatusOutOfStock StockStatus = "Out of Stock"
	StockStatusUnknown    StockStatus = "Unknown"
)

// PriceResult is one retailer's offer for the queried perfume.
// Pointer fields serialize as JSON null when absent; consumers rely on
// every field being present in the payload.
type PriceResult struct {
	Site        string      `json:"site"`
	Price       *float64    `json:"price"`
	Size        *string     `json:"size"`
	PricePerML  *float64    `json:"price_per_ml"`
	URL         string      `json:"url"`
	StockStatus StockStatus `json:"stock_status"`
	ImageURL    *string     `json:"image_url"`
}

// ComparisonResult is the full answer for one query. Results are ordered by
// source completion, not by price.
type ComparisonResult struct {
	PerfumeName string        `json:"perfume_name"`
	Results     []PriceResult `json:"results"`
	BestDeal    *PriceResult  `json:"best_deal"`
}

// RawExtraction is the unnormalized bag of fields one adapter pulls from a
// retailer page, before any unit or price normalization.
type RawExtraction struct {
	PriceText string
	SizeText  string
	StockText string
	URL       string
	ImageURL  string
}

// SearchRequest is the transport-level request body for a price search.
type SearchRequest struct {
	Name string `json:"name" binding:"required"`
}
