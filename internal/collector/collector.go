package collector

import (
	"context"
	"fmt"
	"log"

	"CryptoPulse/internal/calculator"
	"CryptoPulse/internal/config"
	"CryptoPulse/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Series model.PriceSeries
	Err    error
	Calls  int
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchSeries(_ context.Context, _ config.Asset, _ int) (model.PriceSeries, error) {
	m.Calls++
	return m.Series, m.Err
}

// MockQuoter returns a fixed quote for development and testing.
type MockQuoter struct {
	Price float64
	Err   error
}

func (m *MockQuoter) Name() string { return "mock" }

func (m *MockQuoter) QuoteLatest(_ context.Context, _ config.Asset) (float64, error) {
	return m.Price, m.Err
}

// Collector orchestrates data acquisition and RSI computation. Providers are
// tried in priority order; the first series meeting the minimum sample count
// wins. Every cycle builds its series from scratch, nothing is cached.
type Collector struct {
	Providers  []Provider
	Assets     []config.Asset
	Window     int // lookback window, minutes
	Period     int // RSI period
	MinSamples int
}

// NewCollector creates a Collector for the configured assets and provider chain.
func NewCollector(cfg *config.Config, providers ...Provider) *Collector {
	return &Collector{
		Providers:  providers,
		Assets:     cfg.Assets,
		Window:     cfg.Indicator.LookbackMinutes,
		Period:     cfg.Indicator.RSIPeriod,
		MinSamples: cfg.Indicator.MinSamples,
	}
}

// CollectSeries returns the asset's price history from the first provider
// that yields at least MinSamples samples. Provider errors and short results
// are logged and the next provider is tried.
func (c *Collector) CollectSeries(ctx context.Context, asset config.Asset) (model.PriceSeries, error) {
	var lastErr error
	for _, p := range c.Providers {
		series, err := p.FetchSeries(ctx, asset, c.Window)
		if err != nil {
			log.Printf("[WARN] fetch %s history via %s: %v", asset.CoinID, p.Name(), err)
			lastErr = err
			continue
		}
		if len(series) < c.MinSamples {
			log.Printf("[WARN] %s yielded %d samples for %s, need %d, trying next source",
				p.Name(), len(series), asset.CoinID, c.MinSamples)
			continue
		}
		return series, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("collect %s series: %w", asset.CoinID, lastErr)
	}
	return nil, fmt.Errorf("collect %s series: no source yielded %d samples", asset.CoinID, c.MinSamples)
}

// Collect runs one full cycle: for each asset, acquire a series and reduce it
// to an RSI reading. A failed asset yields an absent reading, not an error.
func (c *Collector) Collect(ctx context.Context) *model.RSISnapshot {
	snap := &model.RSISnapshot{Readings: make([]model.AssetRSI, 0, len(c.Assets))}
	for _, asset := range c.Assets {
		reading := model.AssetRSI{Tag: asset.Tag}
		series, err := c.CollectSeries(ctx, asset)
		if err != nil {
			log.Printf("[ERROR] collect %s: %v", asset.CoinID, err)
		} else {
			series.SortByTime()
			reading.Value, reading.OK = calculator.CalculateRSI(series.Prices(), c.Period)
		}
		snap.Readings = append(snap.Readings, reading)
	}
	return snap
}
