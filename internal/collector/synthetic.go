package collector

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"CryptoPulse/internal/config"
	"CryptoPulse/internal/model"
)

// syntheticStdDev is the relative standard deviation applied when perturbing
// the live quote (1% of price).
const syntheticStdDev = 0.01

// SyntheticProvider is the last-resort data source: it takes one live quote
// and fabricates a windowMinutes+5 sample series around it, timestamps one
// minute apart ending at now. It fails only when every quote source fails.
type SyntheticProvider struct {
	Quoters []Quoter
	Gauss   func() float64 // standard normal draws, replaceable in tests
}

// NewSyntheticProvider creates a synthetic provider quoting from the given
// sources in priority order.
func NewSyntheticProvider(quoters ...Quoter) *SyntheticProvider {
	return &SyntheticProvider{
		Quoters: quoters,
		Gauss:   rand.NormFloat64,
	}
}

func (p *SyntheticProvider) Name() string { return "synthetic" }

// FetchSeries generates the synthetic series. The most recent sample carries
// the live quote unchanged; earlier samples perturb it with independent
// zero-mean Gaussian draws.
func (p *SyntheticProvider) FetchSeries(ctx context.Context, asset config.Asset, windowMinutes int) (model.PriceSeries, error) {
	var quote float64
	var lastErr error
	quoted := false
	for _, q := range p.Quoters {
		price, err := q.QuoteLatest(ctx, asset)
		if err != nil {
			log.Printf("[WARN] quote %s via %s: %v", asset.CoinID, q.Name(), err)
			lastErr = err
			continue
		}
		quote = price
		quoted = true
		break
	}
	if !quoted {
		return nil, fmt.Errorf("synthetic series for %s: all quote sources failed: %w", asset.CoinID, lastErr)
	}

	count := windowMinutes + extraSamples
	now := time.Now()
	series := make(model.PriceSeries, count)
	for i := 0; i < count; i++ {
		price := quote
		if i < count-1 {
			price = quote * (1 + p.Gauss()*syntheticStdDev)
		}
		series[i] = model.PriceSample{
			Time:  now.Add(-time.Duration(count-1-i) * time.Minute),
			Price: price,
		}
	}
	return series, nil
}
