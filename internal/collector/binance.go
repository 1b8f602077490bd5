package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"CryptoPulse/internal/config"
	"CryptoPulse/internal/model"
)

// BinanceProvider fetches minute candles and ticker quotes from the Binance
// public API.
type BinanceProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceProvider creates a new Binance provider with optional proxy support.
func NewBinanceProvider(baseURL, proxyURL string) *BinanceProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BinanceProvider{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

func (p *BinanceProvider) Name() string { return "binance" }

// FetchSeries requests windowMinutes+5 one-minute klines for the asset's
// trading pair and takes the candle close as the sample price.
//
// A kline is a mixed-type JSON array: open time in ms at index 0 (number),
// close price at index 4 (string).
func (p *BinanceProvider) FetchSeries(ctx context.Context, asset config.Asset, windowMinutes int) (model.PriceSeries, error) {
	endpoint := fmt.Sprintf("%s/klines?symbol=%s&interval=1m&limit=%d",
		p.BaseURL, url.QueryEscape(asset.Symbol), windowMinutes+extraSamples)

	body, err := p.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("binance klines: %w", err)
	}

	var klines [][]interface{}
	if err := json.Unmarshal(body, &klines); err != nil {
		return nil, fmt.Errorf("binance decode: %w", err)
	}

	series := make(model.PriceSeries, 0, len(klines))
	for _, k := range klines {
		if len(k) < 5 {
			continue
		}
		ms, ok := k[0].(float64)
		if !ok {
			continue
		}
		closeStr, ok := k[4].(string)
		if !ok {
			continue
		}
		closePrice, err := strconv.ParseFloat(closeStr, 64)
		if err != nil {
			continue
		}
		series = append(series, model.PriceSample{
			Time:  time.UnixMilli(int64(ms)),
			Price: closePrice,
		})
	}
	series.SortByTime()
	return series, nil
}

// binanceTicker is the ticker/price response shape; the price is a string.
type binanceTicker struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// QuoteLatest returns the latest traded price for the asset's trading pair.
func (p *BinanceProvider) QuoteLatest(ctx context.Context, asset config.Asset) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	endpoint := fmt.Sprintf("%s/ticker/price?symbol=%s", p.BaseURL, url.QueryEscape(asset.Symbol))
	body, err := p.get(ctx, endpoint)
	if err != nil {
		return 0, fmt.Errorf("binance ticker: %w", err)
	}

	var ticker binanceTicker
	if err := json.Unmarshal(body, &ticker); err != nil {
		return 0, fmt.Errorf("binance ticker decode: %w", err)
	}
	price, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("binance ticker parse price %q: %w", ticker.Price, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("binance ticker: invalid price %f for %s", price, asset.Symbol)
	}
	return price, nil
}

func (p *BinanceProvider) get(ctx context.Context, endpoint string) ([]byte, error) {
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
