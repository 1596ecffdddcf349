package grocery

// DefaultCatalog returns the reference store directory and item table
func DefaultCatalog() *Catalog {
	stores := []Store{
		{ID: "store-1", Name: "FreshMart"},
		{ID: "store-2", Name: "ValueGrocer"},
		{ID: "store-3", Name: "QuickStop"},
		{ID: "store-4", Name: "BudgetBuy"},
	}

	row := func(name, category, unit string, p1, p2, p3, p4 float64) CatalogEntry {
		return CatalogEntry{
			Name:     name,
			Category: category,
			Unit:     unit,
			BasePrices: []BasePrice{
				{StoreID: "store-1", Price: p1},
				{StoreID: "store-2", Price: p2},
				{StoreID: "store-3", Price: p3},
				{StoreID: "store-4", Price: p4},
			},
		}
	}

	entries := []CatalogEntry{
		row("milk", "Dairy", "gallon", 4.29, 3.99, 4.49, 3.79),
		row("bread", "Bakery", "loaf", 3.49, 2.99, 3.29, 2.79),
		row("eggs", "Dairy", "dozen", 5.99, 5.49, 6.29, 4.99),
		row("butter", "Dairy", "lb", 4.99, 4.49, 5.29, 4.29),
		row("cheese", "Dairy", "lb", 6.99, 5.99, 7.49, 5.49),
		row("chicken", "Meat", "lb", 5.99, 4.99, 6.49, 4.49),
		row("beef", "Meat", "lb", 8.99, 7.99, 9.49, 7.49),
		row("salmon", "Seafood", "lb", 12.99, 11.49, 13.99, 10.99),
		row("apples", "Produce", "lb", 2.49, 1.99, 2.79, 1.79),
		row("bananas", "Produce", "lb", 0.69, 0.59, 0.79, 0.49),
		row("oranges", "Produce", "lb", 1.99, 1.49, 2.29, 1.29),
		row("tomatoes", "Produce", "lb", 2.99, 2.49, 3.29, 2.29),
		row("lettuce", "Produce", "head", 2.49, 1.99, 2.79, 1.69),
		row("onions", "Produce", "lb", 1.29, 0.99, 1.49, 0.89),
		row("potatoes", "Produce", "lb", 0.99, 0.79, 1.19, 0.69),
		row("rice", "Pantry", "lb", 2.49, 1.99, 2.79, 1.79),
		row("pasta", "Pantry", "box", 1.99, 1.49, 2.29, 1.29),
		row("cereal", "Pantry", "box", 4.49, 3.99, 4.99, 3.49),
		row("coffee", "Beverages", "bag", 9.99, 8.49, 10.99, 7.99),
		row("orange juice", "Beverages", "half-gallon", 4.99, 4.49, 5.49, 3.99),
	}

	c, err := NewCatalog(stores, entries)
	if err != nil {
		panic("grocery: reference catalog is invalid: " + err.Error())
	}
	return c
}
