package grocery

import "time"

// Store is a retailer in the price directory
type Store struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Logo string `json:"logo,omitempty" yaml:"logo,omitempty"`
}

// StorePrice is one store's offer for an item, computed per read
type StorePrice struct {
	StoreID     string    `json:"storeId"`
	StoreName   string    `json:"storeName"`
	Price       float64   `json:"price"`
	Unit        string    `json:"unit"`
	InStock     bool      `json:"inStock"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// GroceryItem is assembled fresh from a catalog entry on every query.
// CheapestPrice considers in-stock offers only.
type GroceryItem struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Category         string       `json:"category,omitempty"`
	Quantity         int          `json:"quantity"`
	Unit             string       `json:"unit"`
	Prices           []StorePrice `json:"prices"`
	CheapestPrice    *StorePrice  `json:"cheapestPrice,omitempty"`
	AveragePrice     *float64     `json:"averagePrice,omitempty"`
	PotentialSavings *float64     `json:"potentialSavings,omitempty"`
}

type ShoppingListItem struct {
	GroceryItem
	Checked bool      `json:"checked"`
	AddedAt time.Time `json:"addedAt"`
	Notes   string    `json:"notes,omitempty"`
}

type ShoppingList struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Items            []ShoppingListItem `json:"items"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
	TotalEstimate    float64            `json:"totalEstimate"`
	PotentialSavings float64            `json:"potentialSavings"`
}

// --------------------------------------------------
// Query contract
// --------------------------------------------------

type SearchParams struct {
	Query    string `json:"query"`
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

type SearchResult struct {
	Items      []GroceryItem `json:"items"`
	TotalCount int           `json:"totalCount"`
}

// PriceComparisonResult reports the full price spread for one item.
// Savings is mostExpensive - cheapest, not the average-based figure
// used on search results.
type PriceComparisonResult struct {
	ItemID        string       `json:"itemId"`
	ItemName      string       `json:"itemName"`
	Prices        []StorePrice `json:"prices"`
	Cheapest      StorePrice   `json:"cheapest"`
	MostExpensive StorePrice   `json:"mostExpensive"`
	AveragePrice  float64      `json:"averagePrice"`
	Savings       float64      `json:"savings"`
}

// ListLine is one requested row of a shopping list estimate
type ListLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}
