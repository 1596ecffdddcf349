package grocery

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"smartshopper/internal/middleware"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

const (
	defaultSearchLimit = 10
	maxSuggestions     = 5
	defaultListName    = "Shopping list"
)

// list names and notes come from users and are echoed back to a web UI
var textPolicy = bluemonday.StrictPolicy()

// cleanText decodes entities before sanitizing so encoded markup is stripped
// too. The result is HTML-escaped text and is never unescaped again.
func cleanText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(html.UnescapeString(s)))
}

type Service struct {
	repo  Repository
	stock StockOracle
	now   func() time.Time
}

// NewService wires the catalog source and the stock oracle.
// A nil oracle treats every offer as in stock.
func NewService(repo Repository, stock StockOracle) *Service {
	if stock == nil {
		stock = AllInStock
	}
	return &Service{
		repo:  repo,
		stock: stock,
		now:   time.Now,
	}
}

// --------------------------------------------------
// Search (bidirectional substring match)
// --------------------------------------------------
func (s *Service) SearchGroceries(
	ctx context.Context,
	params SearchParams,
) (*SearchResult, error) {

	query := normalize(params.Query)
	if query == "" {
		return &SearchResult{Items: []GroceryItem{}}, nil
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	category := normalize(params.Category)

	entries, err := s.repo.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("search groceries: %w", err)
	}

	now := s.now()
	items := []GroceryItem{}
	total := 0

	for _, entry := range entries {
		if !strings.Contains(entry.Name, query) && !strings.Contains(query, entry.Name) {
			continue
		}
		if category != "" && normalize(entry.Category) != category {
			continue
		}

		total++
		if len(items) < limit {
			items = append(items, s.buildItem(entry, now))
		}
	}

	log.Printf(
		"[GROCERY] req=%s search %q → %d matches (limit=%d)",
		middleware.RequestIDFrom(ctx), query, total, limit,
	)

	return &SearchResult{
		Items:      items,
		TotalCount: total,
	}, nil
}

// --------------------------------------------------
// Suggestions (name-only, prefix typing)
// --------------------------------------------------
func (s *Service) GetSuggestions(ctx context.Context, query string) ([]string, error) {
	q := normalize(query)
	if q == "" {
		return []string{}, nil
	}

	names, err := s.repo.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}

	out := []string{}
	for _, name := range names {
		if !strings.Contains(name, q) {
			continue
		}
		out = append(out, displayName(name))
		if len(out) == maxSuggestions {
			break
		}
	}
	return out, nil
}

// --------------------------------------------------
// Price comparison (exact name)
// --------------------------------------------------
func (s *Service) GetPriceComparison(
	ctx context.Context,
	itemName string,
) (*PriceComparisonResult, error) {

	name := normalize(itemName)
	if name == "" {
		return nil, ErrItemNotFound
	}

	entry, err := s.repo.Entry(ctx, name)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("price comparison: %w", err)
	}
	if len(entry.BasePrices) == 0 {
		return nil, ErrItemNotFound
	}

	prices := buildStorePrices(*entry, s.stock, s.now())
	sorted := sortedByPrice(prices)
	cheapest := sorted[0]
	mostExpensive := sorted[len(sorted)-1]

	return &PriceComparisonResult{
		ItemID:        itemID(entry.Name),
		ItemName:      displayName(entry.Name),
		Prices:        prices,
		Cheapest:      cheapest,
		MostExpensive: mostExpensive,
		AveragePrice:  averagePrice(prices),
		Savings:       subtractPrices(mostExpensive.Price, cheapest.Price),
	}, nil
}

func (s *Service) GetStores(ctx context.Context) ([]Store, error) {
	stores, err := s.repo.Stores(ctx)
	if err != nil {
		return nil, fmt.Errorf("stores: %w", err)
	}
	return append([]Store{}, stores...), nil
}

// --------------------------------------------------
// Shopping list estimate
// --------------------------------------------------

// EstimateList prices every line at its cheapest offer. Names the catalog
// does not know become custom, unpriced items instead of failing the list.
func (s *Service) EstimateList(
	ctx context.Context,
	name string,
	lines []ListLine,
) (*ShoppingList, error) {

	now := s.now()
	list := &ShoppingList{
		ID:        uuid.New().String(),
		Name:      cleanText(name),
		Items:     []ShoppingListItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if list.Name == "" {
		list.Name = defaultListName
	}

	total := decimal.Zero
	savings := decimal.Zero

	for _, line := range lines {
		lineName := normalize(cleanText(line.Name))
		if lineName == "" {
			continue
		}
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}

		var item GroceryItem
		entry, err := s.repo.Entry(ctx, lineName)
		switch {
		case err == nil:
			item = s.buildItem(*entry, now)
		case errors.Is(err, ErrItemNotFound):
			item = customItem(lineName)
		default:
			return nil, fmt.Errorf("estimate list: %w", err)
		}
		item.Quantity = qty

		q := decimal.NewFromInt(int64(qty))
		if item.CheapestPrice != nil {
			total = total.Add(decimal.NewFromFloat(item.CheapestPrice.Price).Mul(q))
		}
		if item.PotentialSavings != nil {
			savings = savings.Add(decimal.NewFromFloat(*item.PotentialSavings).Mul(q))
		}

		list.Items = append(list.Items, ShoppingListItem{
			GroceryItem: item,
			AddedAt:     now,
			Notes:       cleanText(line.Notes),
		})
	}

	list.TotalEstimate = roundCents(total)
	list.PotentialSavings = roundCents(savings)

	log.Printf(
		"[GROCERY] req=%s estimate %s items=%d total=%.2f savings=%.2f",
		middleware.RequestIDFrom(ctx), list.ID, len(list.Items), list.TotalEstimate, list.PotentialSavings,
	)

	return list, nil
}

// --------------------------------------------------
// Derived fields
// --------------------------------------------------
func (s *Service) buildItem(entry CatalogEntry, now time.Time) GroceryItem {
	prices := buildStorePrices(entry, s.stock, now)
	cheapest := findCheapest(prices)
	avg := averagePrice(prices)

	potential := 0.0
	if cheapest != nil {
		potential = subtractPrices(avg, cheapest.Price)
	}

	return GroceryItem{
		ID:               itemID(entry.Name),
		Name:             displayName(entry.Name),
		Category:         entry.Category,
		Quantity:         1,
		Unit:             entry.Unit,
		Prices:           prices,
		CheapestPrice:    cheapest,
		AveragePrice:     &avg,
		PotentialSavings: &potential,
	}
}

func customItem(name string) GroceryItem {
	return GroceryItem{
		ID:       itemID(name),
		Name:     displayName(name),
		Quantity: 1,
		Unit:     storePriceUnit,
		Prices:   []StorePrice{},
	}
}
