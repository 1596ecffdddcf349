package grocery

// prices go first so the item foreign key never blocks a delete
var clearOrder = []string{"grocery_prices", "grocery_items", "grocery_stores"}

// entryFolder rebuilds entries from joined (item, store) rows.
// Rows of one item may arrive in any order; first sight fixes its position.
type entryFolder struct {
	entries []CatalogEntry
	index   map[string]int
}

func newEntryFolder() *entryFolder {
	return &entryFolder{index: map[string]int{}}
}

func (f *entryFolder) add(name, category, unit string, bp BasePrice) {
	i, ok := f.index[name]
	if !ok {
		i = len(f.entries)
		f.index[name] = i
		f.entries = append(f.entries, CatalogEntry{
			Name:     name,
			Category: category,
			Unit:     unit,
		})
	}
	f.entries[i].BasePrices = append(f.entries[i].BasePrices, bp)
}
