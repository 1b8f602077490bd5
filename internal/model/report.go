package model

// AssetRSI is one asset's RSI reading for a cycle. OK is false when the
// series was too short or the value did not resolve to a number.
type AssetRSI struct {
	Tag   string // report clause label, e.g. "brsi"
	Value float64
	OK    bool
}

// RSISnapshot holds all per-asset readings produced by one collection cycle.
type RSISnapshot struct {
	Readings []AssetRSI
}

// PriceQuote is the latest traded price for a trading pair.
type PriceQuote struct {
	Symbol string
	Price  float64
}
