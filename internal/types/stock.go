package types

import "github.com/shopspring/decimal"

// Stock is a market snapshot of one of the most actively traded instruments.
type Stock struct {
	// Id is assigned locally when a batch is published and is unique within it.
	// The upstream payload is never trusted to carry a usable key.
	Id string `json:"id"`
	// Symbol is the ticker, e.g. AAPL.
	Symbol string `json:"symbol"`
	// Name is the human readable instrument name.
	Name string `json:"name"`
	// Change is the signed price delta.
	Change decimal.Decimal `json:"change"`
	// Price is the current price.
	Price decimal.Decimal `json:"price"`
	// ChangesPercentage is the signed percentage delta.
	ChangesPercentage decimal.Decimal `json:"changesPercentage"`
}

// IsGainer reports whether the price moved up.
func (s Stock) IsGainer() bool {
	return s.Change.IsPositive()
}

// IsLoser reports whether the price moved down.
func (s Stock) IsLoser() bool {
	return s.Change.IsNegative()
}

// WithId returns a copy of s carrying id.
func (s Stock) WithId(id string) Stock {
	s.Id = id

	return s
}
