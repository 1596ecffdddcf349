package grocery

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const unknownStoreName = "Unknown"

// BasePrice is a store's list price for a catalog entry
type BasePrice struct {
	StoreID   string  `json:"store_id" yaml:"store_id"`
	StoreName string  `json:"-" yaml:"-"`
	Price     float64 `json:"price" yaml:"price"`
}

// CatalogEntry is the source-of-truth row for one grocery item.
// Name is always normalized (lowercase, trimmed).
type CatalogEntry struct {
	Name       string      `json:"name" yaml:"name"`
	Category   string      `json:"category" yaml:"category"`
	Unit       string      `json:"unit" yaml:"unit"`
	BasePrices []BasePrice `json:"prices" yaml:"prices"`
}

// Catalog is an immutable, ordered store directory plus item table.
// Iteration order is the order entries were given to NewCatalog.
type Catalog struct {
	stores  []Store
	entries []CatalogEntry
	index   map[string]int
}

func NewCatalog(stores []Store, entries []CatalogEntry) (*Catalog, error) {
	storeNames := make(map[string]string, len(stores))
	for _, s := range stores {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: store id is empty", ErrInvalidCatalog)
		}
		if _, dup := storeNames[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate store %q", ErrInvalidCatalog, s.ID)
		}
		storeNames[s.ID] = s.Name
	}

	c := &Catalog{
		stores:  append([]Store(nil), stores...),
		entries: make([]CatalogEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		name := normalize(e.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: item name is empty", ErrInvalidCatalog)
		}
		if _, dup := c.index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate item %q", ErrInvalidCatalog, name)
		}
		if len(e.BasePrices) == 0 {
			return nil, fmt.Errorf("%w: item %q has no prices", ErrInvalidCatalog, name)
		}

		prices := make([]BasePrice, 0, len(e.BasePrices))
		for _, p := range e.BasePrices {
			if p.Price <= 0 {
				return nil, fmt.Errorf("%w: item %q has non-positive price at %q", ErrInvalidCatalog, name, p.StoreID)
			}
			storeName, ok := storeNames[p.StoreID]
			if !ok {
				storeName = unknownStoreName
			}
			prices = append(prices, BasePrice{
				StoreID:   p.StoreID,
				StoreName: storeName,
				Price:     p.Price,
			})
		}

		c.index[name] = len(c.entries)
		c.entries = append(c.entries, CatalogEntry{
			Name:       name,
			Category:   e.Category,
			Unit:       e.Unit,
			BasePrices: prices,
		})
	}

	return c, nil
}

// Stores returns a copy of the store directory
func (c *Catalog) Stores() []Store {
	return append([]Store(nil), c.stores...)
}

// Entries returns copies of every entry in catalog order
func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.clone()
	}
	return out
}

// Lookup finds an entry by case-insensitive exact name
func (c *Catalog) Lookup(name string) (CatalogEntry, bool) {
	i, ok := c.index[normalize(name)]
	if !ok {
		return CatalogEntry{}, false
	}
	return c.entries[i].clone(), true
}

func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

func (e CatalogEntry) clone() CatalogEntry {
	e.BasePrices = append([]BasePrice(nil), e.BasePrices...)
	return e
}

// --------------------------------------------------
// JSON snapshots
// --------------------------------------------------

type catalogDocument struct {
	Stores []Store        `json:"stores" yaml:"stores"`
	Items  []CatalogEntry `json:"items" yaml:"items"`
}

// DecodeCatalog reads a JSON catalog snapshot
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var doc catalogDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(doc.Stores, doc.Items)
}

// DecodeCatalogYAML reads the same snapshot document written as YAML
func DecodeCatalogYAML(r io.Reader) (*Catalog, error) {
	var doc catalogDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(doc.Stores, doc.Items)
}

// LoadCatalogFile picks the decoder from the file extension (.yaml/.yml or JSON)
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeCatalogYAML(f)
	default:
		return DecodeCatalog(f)
	}
}

// EncodeCatalog writes c in the snapshot format DecodeCatalog reads
func EncodeCatalog(w io.Writer, c *Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(catalogDocument{
		Stores: c.Stores(),
		Items:  c.Entries(),
	})
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
