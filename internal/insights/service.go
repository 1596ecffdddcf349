package insights

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"smartshopper/internal/grocery"

	"github.com/shopspring/decimal"
)

// minSamples is the smallest category worth summarising
const minSamples = 2

var ErrNoData = errors.New("not enough price data")

type Service struct {
	repo grocery.Repository
	now  func() time.Time
}

func NewService(repo grocery.Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// category accumulator, one per distinct category
type bucket struct {
	name     string
	cheapest []decimal.Decimal
	spreads  []decimal.Decimal
	wins     map[string]int
}

// --------------------------------------------------
// Category snapshots
// --------------------------------------------------
func (s *Service) CategorySnapshots(ctx context.Context) ([]CategorySnapshot, error) {
	stores, err := s.repo.Stores(ctx)
	if err != nil {
		return nil, fmt.Errorf("category snapshots: %w", err)
	}
	entries, err := s.repo.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("category snapshots: %w", err)
	}

	var order []string
	buckets := map[string]*bucket{}

	for _, e := range entries {
		if len(e.BasePrices) == 0 {
			continue
		}
		key := strings.ToLower(e.Category)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{name: e.Category, wins: map[string]int{}}
			buckets[key] = b
			order = append(order, key)
		}

		low, high := cheapestAndDearest(e.BasePrices)
		b.cheapest = append(b.cheapest, decimal.NewFromFloat(low.Price))
		b.spreads = append(b.spreads, decimal.NewFromFloat(high.Price).Sub(decimal.NewFromFloat(low.Price)))
		b.wins[low.StoreID]++
	}

	now := s.now()
	snapshots := []CategorySnapshot{}

	for _, key := range order {
		b := buckets[key]

		// Require minimum samples
		if len(b.cheapest) < minSamples {
			log.Printf(
				"[INSIGHTS] Skipping %s (samples=%d)",
				b.name, len(b.cheapest),
			)
			continue
		}

		snap := CategorySnapshot{
			Category:            b.name,
			AvgCheapestPrice:    mean(b.cheapest).Round(2).InexactFloat64(),
			MedianCheapestPrice: median(b.cheapest).Round(2).InexactFloat64(),
			AvgSpread:           mean(b.spreads).Round(2).InexactFloat64(),
			SampleSize:          len(b.cheapest),
			LeadingStore:        leader(b.wins, stores),
			ComputedAt:          now,
		}

		log.Printf(
			"[INSIGHTS] %s → avg=%.2f median=%.2f samples=%d leader=%s",
			snap.Category, snap.AvgCheapestPrice, snap.MedianCheapestPrice, snap.SampleSize, snap.LeadingStore,
		)
		snapshots = append(snapshots, snap)
	}

	return snapshots, nil
}

func (s *Service) CategorySnapshot(ctx context.Context, category string) (*CategorySnapshot, error) {
	want := strings.ToLower(strings.TrimSpace(category))
	if want == "" {
		return nil, ErrNoData
	}

	snapshots, err := s.CategorySnapshots(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snapshots {
		if strings.ToLower(snapshots[i].Category) == want {
			return &snapshots[i], nil
		}
	}
	return nil, ErrNoData
}

// --------------------------------------------------
// Store standings
// --------------------------------------------------
func (s *Service) StoreStandings(ctx context.Context) ([]StoreStanding, error) {
	stores, err := s.repo.Stores(ctx)
	if err != nil {
		return nil, fmt.Errorf("store standings: %w", err)
	}
	entries, err := s.repo.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("store standings: %w", err)
	}

	type tally struct {
		items    int
		cheapest int
		ratios   []decimal.Decimal
	}
	tallies := make(map[string]*tally, len(stores))
	for _, st := range stores {
		tallies[st.ID] = &tally{}
	}

	for _, e := range entries {
		if len(e.BasePrices) == 0 {
			continue
		}

		prices := make([]decimal.Decimal, len(e.BasePrices))
		for i, bp := range e.BasePrices {
			prices[i] = decimal.NewFromFloat(bp.Price)
		}
		avg := mean(prices)
		low, _ := cheapestAndDearest(e.BasePrices)

		for i, bp := range e.BasePrices {
			t, ok := tallies[bp.StoreID]
			if !ok {
				continue
			}
			t.items++
			t.ratios = append(t.ratios, prices[i].Div(avg))
			if bp.StoreID == low.StoreID {
				t.cheapest++
			}
		}
	}

	standings := make([]StoreStanding, 0, len(stores))
	for _, st := range stores {
		t := tallies[st.ID]
		standing := StoreStanding{
			StoreID:       st.ID,
			StoreName:     st.Name,
			ItemCount:     t.items,
			CheapestCount: t.cheapest,
		}
		if len(t.ratios) > 0 {
			standing.PriceIndex = mean(t.ratios).Round(3).InexactFloat64()
		}
		standings = append(standings, standing)
	}

	return standings, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

// cheapestAndDearest scans list prices; ties keep the earlier offer
func cheapestAndDearest(prices []grocery.BasePrice) (low, high grocery.BasePrice) {
	low, high = prices[0], prices[0]
	for _, p := range prices[1:] {
		if p.Price < low.Price {
			low = p
		}
		if p.Price > high.Price {
			high = p
		}
	}
	return low, high
}

func mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values))))
}

func median(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}

	sorted := append([]decimal.Decimal(nil), values...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

// leader names the store with the most wins, directory order breaking ties
func leader(wins map[string]int, stores []grocery.Store) string {
	best, bestWins := "", 0
	for _, st := range stores {
		if n := wins[st.ID]; n > bestWins {
			best, bestWins = st.Name, n
		}
	}
	if best == "" {
		return "Unknown"
	}
	return best
}
