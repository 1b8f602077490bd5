package collector

import (
	"context"

	"CryptoPulse/internal/config"
	"CryptoPulse/internal/model"
)

// extraSamples is how many samples beyond the lookback window are requested
// from the candle API and generated by the synthetic fallback.
const extraSamples = 5

// Provider supplies recent price history for an asset.
type Provider interface {
	FetchSeries(ctx context.Context, asset config.Asset, windowMinutes int) (model.PriceSeries, error)
	Name() string
}

// Quoter returns the latest spot price for an asset.
type Quoter interface {
	QuoteLatest(ctx context.Context, asset config.Asset) (float64, error)
	Name() string
}
