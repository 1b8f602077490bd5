package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"CryptoPulse/internal/config"
	"CryptoPulse/internal/model"
)

// CoinGeckoProvider fetches price history and spot quotes from the CoinGecko
// public API.
type CoinGeckoProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewCoinGeckoProvider creates a new CoinGecko provider with optional proxy support.
func NewCoinGeckoProvider(baseURL, proxyURL string) *CoinGeckoProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGeckoProvider{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

func (p *CoinGeckoProvider) Name() string { return "coingecko" }

// geckoChart is the market_chart response shape: prices as [ms, price] pairs.
type geckoChart struct {
	Prices [][2]float64 `json:"prices"`
}

// FetchSeries fetches a 1-day market chart and keeps only the samples that
// fall inside the requested lookback window.
func (p *CoinGeckoProvider) FetchSeries(ctx context.Context, asset config.Asset, windowMinutes int) (model.PriceSeries, error) {
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=1",
		p.BaseURL, url.PathEscape(asset.CoinID))

	body, err := p.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("coingecko chart: %w", err)
	}

	var chart geckoChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("coingecko decode: %w", err)
	}

	now := time.Now()
	cutoff := now.Add(-time.Duration(windowMinutes) * time.Minute)
	var series model.PriceSeries
	for _, pt := range chart.Prices {
		ts := time.UnixMilli(int64(pt[0]))
		if ts.Before(cutoff) || ts.After(now) {
			continue
		}
		series = append(series, model.PriceSample{Time: ts, Price: pt[1]})
	}
	series.SortByTime()
	return series, nil
}

// QuoteLatest returns the current USD price from the simple-price endpoint.
func (p *CoinGeckoProvider) QuoteLatest(ctx context.Context, asset config.Asset) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		p.BaseURL, url.QueryEscape(asset.CoinID))

	body, err := p.get(ctx, endpoint)
	if err != nil {
		return 0, fmt.Errorf("coingecko quote: %w", err)
	}

	var quotes map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := json.Unmarshal(body, &quotes); err != nil {
		return 0, fmt.Errorf("coingecko quote decode: %w", err)
	}
	q, ok := quotes[asset.CoinID]
	if !ok {
		return 0, fmt.Errorf("coingecko quote: no entry for %s", asset.CoinID)
	}
	if q.USD <= 0 {
		return 0, fmt.Errorf("coingecko quote: invalid price %f for %s", q.USD, asset.CoinID)
	}
	return q.USD, nil
}

func (p *CoinGeckoProvider) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
