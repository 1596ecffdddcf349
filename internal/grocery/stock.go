package grocery

import (
	"math/rand/v2"
	"sync"
)

// StockOracle decides per read whether a store currently has an item
type StockOracle interface {
	InStock(itemName, storeID string) bool
}

type StockFunc func(itemName, storeID string) bool

func (f StockFunc) InStock(itemName, storeID string) bool {
	return f(itemName, storeID)
}

var (
	AllInStock  StockOracle = StockFunc(func(string, string) bool { return true })
	NoneInStock StockOracle = StockFunc(func(string, string) bool { return false })
)

// RandomStock simulates live availability from a seeded generator.
// Safe for concurrent use.
type RandomStock struct {
	mu             sync.Mutex
	rng            *rand.Rand
	outOfStockRate float64
}

func NewRandomStock(seed uint64, outOfStockRate float64) *RandomStock {
	return &RandomStock{
		rng:            rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		outOfStockRate: outOfStockRate,
	}
}

func (r *RandomStock) InStock(string, string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() > r.outOfStockRate
}
