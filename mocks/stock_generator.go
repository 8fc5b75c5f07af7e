package mocks

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/argo-movers/internal/types"
)

// StockGenerator generates realistic most-active batches for testing.
type StockGenerator struct {
	rng *rand.Rand
}

// NewStockGenerator creates a new StockGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewStockGenerator(seed int64) *StockGenerator {
	return &StockGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how stocks are generated.
type GeneratorConfig struct {
	// Count is the number of records to generate
	Count int
	// MinPrice and MaxPrice bound the generated price
	MinPrice float64
	MaxPrice float64
	// MaxMovePercent bounds the absolute percentage change (5 = 5%)
	MaxMovePercent float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Count:          10,
		MinPrice:       1,
		MaxPrice:       500,
		MaxMovePercent: 15,
	}
}

// Generate creates Count stocks with unique symbols and no Id.
// Change and ChangesPercentage are consistent with Price.
func (g *StockGenerator) Generate(config GeneratorConfig) []types.Stock {
	stocks := make([]types.Stock, config.Count)

	for i := 0; i < config.Count; i++ {
		price := config.MinPrice + g.rng.Float64()*(config.MaxPrice-config.MinPrice)
		percent := (g.rng.Float64()*2 - 1) * config.MaxMovePercent
		previous := price / (1 + percent/100)
		change := price - previous

		symbol := tickerFor(i)
		stocks[i] = types.Stock{
			Id:                "",
			Symbol:            symbol,
			Name:              fmt.Sprintf("%s Holdings Inc.", symbol),
			Change:            decimal.NewFromFloat(roundToDecimals(change, 2)),
			Price:             decimal.NewFromFloat(roundToDecimals(price, 2)),
			ChangesPercentage: decimal.NewFromFloat(roundToDecimals(percent, 4)),
		}
	}

	return stocks
}

// GenerateN is a convenience function returning n stocks with default
// settings and a fixed seed.
func GenerateN(n int) []types.Stock {
	gen := NewStockGenerator(42)
	config := DefaultConfig()
	config.Count = n
	return gen.Generate(config)
}

// tickerFor maps i to a unique upper-case ticker: 0 -> A, 25 -> Z, 26 -> AA.
func tickerFor(i int) string {
	ticker := ""
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		ticker = string(rune('A'+(n-1)%26)) + ticker
	}
	return ticker
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
