package grocery

import (
	"sort"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// every store offer is quoted per piece
const storePriceUnit = "each"

// buildStorePrices draws fresh stock flags for every base price.
// The result keeps catalog (table) order.
func buildStorePrices(entry CatalogEntry, stock StockOracle, now time.Time) []StorePrice {
	prices := make([]StorePrice, 0, len(entry.BasePrices))
	for _, bp := range entry.BasePrices {
		prices = append(prices, StorePrice{
			StoreID:     bp.StoreID,
			StoreName:   bp.StoreName,
			Price:       bp.Price,
			Unit:        storePriceUnit,
			InStock:     stock.InStock(entry.Name, bp.StoreID),
			LastUpdated: now,
		})
	}
	return prices
}

// findCheapest picks the lowest in-stock offer. With nothing in stock
// it falls back to the first offer in table order.
func findCheapest(prices []StorePrice) *StorePrice {
	if len(prices) == 0 {
		return nil
	}

	var cheapest *StorePrice
	for i := range prices {
		p := &prices[i]
		if !p.InStock {
			continue
		}
		if cheapest == nil || p.Price < cheapest.Price {
			cheapest = p
		}
	}
	if cheapest == nil {
		cheapest = &prices[0]
	}

	out := *cheapest
	return &out
}

// averagePrice is the mean over all offers, stock ignored, rounded to cents
func averagePrice(prices []StorePrice) float64 {
	if len(prices) == 0 {
		return 0
	}

	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(decimal.NewFromFloat(p.Price))
	}
	return sum.Div(decimal.NewFromInt(int64(len(prices)))).Round(2).InexactFloat64()
}

// sortedByPrice returns an ascending copy; ties keep table order
func sortedByPrice(prices []StorePrice) []StorePrice {
	sorted := append([]StorePrice(nil), prices...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price < sorted[j].Price
	})
	return sorted
}

func subtractPrices(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).InexactFloat64()
}

func roundCents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func itemID(normalizedName string) string {
	return "item-" + normalizedName
}

// displayName upper-cases only the first letter: "orange juice" -> "Orange juice"
func displayName(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
