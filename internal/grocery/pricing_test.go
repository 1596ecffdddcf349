package grocery

import (
	"testing"
	"time"
)

func offers(prices ...float64) []StorePrice {
	out := make([]StorePrice, len(prices))
	for i, p := range prices {
		out[i] = StorePrice{StoreID: string(rune('a' + i)), Price: p, InStock: true}
	}
	return out
}

func TestFindCheapest(t *testing.T) {
	if findCheapest(nil) != nil {
		t.Error("no offers means no cheapest")
	}

	prices := offers(3, 1, 2)
	if got := findCheapest(prices); got.StoreID != "b" {
		t.Errorf("expected b, got %s", got.StoreID)
	}

	prices[1].InStock = false
	if got := findCheapest(prices); got.StoreID != "c" {
		t.Errorf("expected in-stock c, got %s", got.StoreID)
	}

	for i := range prices {
		prices[i].InStock = false
	}
	if got := findCheapest(prices); got.StoreID != "a" {
		t.Errorf("expected fallback to first offer, got %s", got.StoreID)
	}
}

func TestFindCheapest_TiesKeepFirst(t *testing.T) {
	got := findCheapest(offers(2, 1, 1))
	if got.StoreID != "b" {
		t.Errorf("expected first of the tied offers, got %s", got.StoreID)
	}
}

func TestFindCheapest_ReturnsCopy(t *testing.T) {
	prices := offers(1)
	got := findCheapest(prices)
	got.Price = 50

	if prices[0].Price != 1 {
		t.Error("cheapest must not alias the price slice")
	}
}

func TestAveragePrice(t *testing.T) {
	cases := []struct {
		prices []float64
		want   float64
	}{
		{nil, 0},
		{[]float64{4.29, 3.99, 4.49, 3.79}, 4.14},
		{[]float64{0.69, 0.59, 0.79, 0.49}, 0.64},
		{[]float64{1, 2}, 1.5},
		{[]float64{1, 1, 2}, 1.33},
	}

	for _, tc := range cases {
		if got := averagePrice(offers(tc.prices...)); !approx(got, tc.want) {
			t.Errorf("average of %v: got %v, want %v", tc.prices, got, tc.want)
		}
	}
}

func TestSortedByPrice(t *testing.T) {
	prices := offers(3, 1, 2, 1)
	sorted := sortedByPrice(prices)

	order := ""
	for _, p := range sorted {
		order += p.StoreID
	}
	if order != "bdca" {
		t.Errorf("expected stable ascending order bdca, got %s", order)
	}
	if prices[0].StoreID != "a" {
		t.Error("input must not be reordered")
	}
}

func TestSubtractPrices(t *testing.T) {
	if got := subtractPrices(4.49, 3.79); !approx(got, 0.7) {
		t.Errorf("expected 0.7, got %v", got)
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"milk":         "Milk",
		"orange juice": "Orange juice",
		"":             "",
		"éclair":       "Éclair",
	}
	for in, want := range cases {
		if got := displayName(in); got != want {
			t.Errorf("displayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildStorePrices(t *testing.T) {
	milk, _ := DefaultCatalog().Lookup("milk")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	calls := 0
	stock := StockFunc(func(item, store string) bool {
		calls++
		return store != "store-4"
	})

	prices := buildStorePrices(milk, stock, now)
	if calls != 4 {
		t.Errorf("expected a stock draw per offer, got %d", calls)
	}
	if prices[3].InStock || !prices[0].InStock {
		t.Errorf("stock flags not applied: %+v", prices)
	}
	if !prices[2].LastUpdated.Equal(now) || prices[2].Unit != "each" {
		t.Errorf("unexpected offer %+v", prices[2])
	}
}

func TestRandomStock(t *testing.T) {
	always := NewRandomStock(1, 0)
	never := NewRandomStock(1, 1)

	for i := 0; i < 100; i++ {
		if !always.InStock("milk", "store-1") {
			t.Fatal("rate 0 should keep everything in stock")
		}
		if never.InStock("milk", "store-1") {
			t.Fatal("rate 1 should keep everything out of stock")
		}
	}

	a, b := NewRandomStock(42, 0.5), NewRandomStock(42, 0.5)
	for i := 0; i < 50; i++ {
		if a.InStock("x", "y") != b.InStock("x", "y") {
			t.Fatal("same seed should give the same sequence")
		}
	}
}
