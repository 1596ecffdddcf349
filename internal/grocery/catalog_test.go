package grocery

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewCatalog_Validation(t *testing.T) {
	stores := []Store{{ID: "s1", Name: "One"}}
	price := []BasePrice{{StoreID: "s1", Price: 1}}

	cases := map[string]struct {
		stores  []Store
		entries []CatalogEntry
	}{
		"empty store id":  {[]Store{{Name: "x"}}, nil},
		"duplicate store": {[]Store{{ID: "s1"}, {ID: "s1"}}, nil},
		"empty item name": {stores, []CatalogEntry{{Name: "  ", BasePrices: price}}},
		"duplicate item": {stores, []CatalogEntry{
			{Name: "Milk", BasePrices: price},
			{Name: " milk", BasePrices: price},
		}},
		"no prices":      {stores, []CatalogEntry{{Name: "milk"}}},
		"zero price":     {stores, []CatalogEntry{{Name: "milk", BasePrices: []BasePrice{{StoreID: "s1"}}}}},
		"negative price": {stores, []CatalogEntry{{Name: "milk", BasePrices: []BasePrice{{StoreID: "s1", Price: -2}}}}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewCatalog(tc.stores, tc.entries); !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestNewCatalog_UnknownStore(t *testing.T) {
	c, err := NewCatalog(
		[]Store{{ID: "s1", Name: "One"}},
		[]CatalogEntry{{Name: "Tea", BasePrices: []BasePrice{
			{StoreID: "s1", Price: 2},
			{StoreID: "gone", Price: 3},
		}}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, ok := c.Lookup("TEA ")
	if !ok {
		t.Fatal("lookup should be case-insensitive")
	}
	if entry.BasePrices[0].StoreName != "One" || entry.BasePrices[1].StoreName != "Unknown" {
		t.Errorf("unexpected store names %+v", entry.BasePrices)
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := DefaultCatalog()

	entries := c.Entries()
	entries[0].BasePrices[0].Price = 99

	milk, _ := c.Lookup("milk")
	if milk.BasePrices[0].Price != 4.29 {
		t.Error("mutating returned entries must not change the catalog")
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	if c.Len() != 20 {
		t.Fatalf("expected 20 items, got %d", c.Len())
	}
	if len(c.Stores()) != 4 {
		t.Fatalf("expected 4 stores, got %d", len(c.Stores()))
	}
	names := c.Names()
	if names[0] != "milk" || names[len(names)-1] != "orange juice" {
		t.Errorf("unexpected catalog order %v", names)
	}
}

func TestEncodeDecodeCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeCatalog(&buf, DefaultCatalog()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(buf.String(), `"store_id": "store-4"`) {
		t.Errorf("unexpected snapshot format:\n%s", buf.String())
	}

	c, err := DecodeCatalog(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := DefaultCatalog()
	if strings.Join(c.Names(), ",") != strings.Join(want.Names(), ",") {
		t.Error("item order changed across a snapshot")
	}

	salmon, _ := c.Lookup("salmon")
	if salmon.BasePrices[3].StoreName != "BudgetBuy" || salmon.BasePrices[3].Price != 10.99 {
		t.Errorf("store names should be resolved again on decode, got %+v", salmon.BasePrices[3])
	}
}

func TestDecodeCatalog_Invalid(t *testing.T) {
	if _, err := DecodeCatalog(strings.NewReader("{not json")); err == nil {
		t.Error("expected a decode error")
	}

	doc := `{"stores":[{"id":"s1","name":"One"}],"items":[{"name":"milk","prices":[]}]}`
	if _, err := DecodeCatalog(strings.NewReader(doc)); !errors.Is(err, ErrInvalidCatalog) {
		t.Errorf("expected ErrInvalidCatalog, got %v", err)
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{
		"stores": [{"id": "s1", "name": "Corner Shop"}],
		"items": [{"name": "Tea", "category": "Beverages", "unit": "box", "prices": [{"store_id": "s1", "price": 2.5}]}]
	}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tea, ok := c.Lookup("tea")
	if !ok || tea.Category != "Beverages" || tea.BasePrices[0].StoreName != "Corner Shop" {
		t.Errorf("unexpected entry %+v", tea)
	}

	if _, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestLoadCatalogFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
stores:
  - id: s1
    name: Corner Shop
  - id: s2
    name: Farm Stand
items:
  - name: Honey
    category: Pantry
    unit: jar
    prices:
      - store_id: s1
        price: 6.5
      - store_id: s2
        price: 5.25
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	honey, ok := c.Lookup("honey")
	if !ok || len(honey.BasePrices) != 2 || honey.BasePrices[1].StoreName != "Farm Stand" || honey.BasePrices[1].Price != 5.25 {
		t.Errorf("unexpected entry %+v", honey)
	}

	if _, err := DecodeCatalogYAML(strings.NewReader("items: [")); err == nil {
		t.Error("expected a decode error for broken YAML")
	}
}
