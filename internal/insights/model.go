package insights

import "time"

// CategorySnapshot represents aggregated pricing for one grocery category
type CategorySnapshot struct {
	Category            string    `json:"category"`
	AvgCheapestPrice    float64   `json:"avgCheapestPrice"`
	MedianCheapestPrice float64   `json:"medianCheapestPrice"`
	AvgSpread           float64   `json:"avgSpread"`
	SampleSize          int       `json:"sampleSize"`
	LeadingStore        string    `json:"leadingStore"`
	ComputedAt          time.Time `json:"computedAt"`
}

// StoreStanding ranks one store against the rest of the directory.
// PriceIndex 1.0 means the store charges the market average.
type StoreStanding struct {
	StoreID       string  `json:"storeId"`
	StoreName     string  `json:"storeName"`
	ItemCount     int     `json:"itemCount"`
	CheapestCount int     `json:"cheapestCount"`
	PriceIndex    float64 `json:"priceIndex"`
}
