package scheduler

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"CryptoPulse/internal/collector"
	"CryptoPulse/internal/config"
	"CryptoPulse/internal/model"
)

func risingSeries() model.PriceSeries {
	prices := []float64{10, 11, 10.5, 11.5, 12}
	base := time.Now().Add(-time.Duration(len(prices)) * time.Minute)
	s := make(model.PriceSeries, len(prices))
	for i, p := range prices {
		s[i] = model.PriceSample{Time: base.Add(time.Duration(i) * time.Minute), Price: p}
	}
	return s
}

type stubQuoter struct {
	prices map[string]float64
}

func (s *stubQuoter) Name() string { return "stub" }

func (s *stubQuoter) QuoteLatest(_ context.Context, a config.Asset) (float64, error) {
	p, ok := s.prices[a.Symbol]
	if !ok {
		return 0, errors.New("no quote")
	}
	return p, nil
}

func testAssets() []config.Asset {
	return []config.Asset{
		{CoinID: "bitcoin", Symbol: "BTCUSDT", Tag: "brsi"},
		{CoinID: "ethereum", Symbol: "ETHUSDT", Tag: "ersi"},
	}
}

func TestSnapshotTask_FixedOrder(t *testing.T) {
	quoter := &stubQuoter{prices: map[string]float64{
		"BTCUSDT": 67234.51,
		"ETHUSDT": 3500.25,
	}}
	var out bytes.Buffer
	s := NewScheduler(context.Background(), nil, quoter, testAssets(), &out)

	s.RunSnapshotNow()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out.String())
	}
	if lines[0] != "67234.51" || lines[1] != "3500.25" {
		t.Errorf("expected BTC line before ETH line, got %v", lines)
	}
}

func TestSnapshotTask_FailedSymbolOmitted(t *testing.T) {
	quoter := &stubQuoter{prices: map[string]float64{
		"ETHUSDT": 3500.25,
	}}
	var out bytes.Buffer
	s := NewScheduler(context.Background(), nil, quoter, testAssets(), &out)

	s.RunSnapshotNow()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 || lines[0] != "3500.25" {
		t.Errorf("expected only the ETH line, got %q", out.String())
	}
}

func TestRSIReportTask_WritesOneLine(t *testing.T) {
	cfg, err := config.Load("nonexistent.yaml")
	if err != nil {
		t.Fatal(err)
	}
	col := collector.NewCollector(cfg, &collector.MockProvider{Series: risingSeries()})

	var out bytes.Buffer
	s := NewScheduler(context.Background(), col, nil, cfg.Assets, &out)

	s.RunRSIReportNow()

	line := strings.TrimSpace(out.String())
	if !strings.HasPrefix(line, "rsi brsi ") {
		t.Errorf("unexpected report line: %q", line)
	}
	if !strings.Contains(line, " ersi ") {
		t.Errorf("expected ersi clause: %q", line)
	}
}

func TestRSIReportTask_FailureLine(t *testing.T) {
	cfg, err := config.Load("nonexistent.yaml")
	if err != nil {
		t.Fatal(err)
	}
	col := collector.NewCollector(cfg, &collector.MockProvider{Err: errors.New("total outage")})

	var out bytes.Buffer
	s := NewScheduler(context.Background(), col, nil, cfg.Assets, &out)

	s.RunRSIReportNow()

	if got := strings.TrimSpace(out.String()); got != "rsi unavailable" {
		t.Errorf("expected sentinel failure line, got %q", got)
	}
}

// blockingProvider parks the first fetch until released so a cycle can be
// held in flight while the scheduler shuts down.
type blockingProvider struct {
	series  model.PriceSeries
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (p *blockingProvider) Name() string { return "blocking" }

func (p *blockingProvider) FetchSeries(_ context.Context, _ config.Asset, _ int) (model.PriceSeries, error) {
	p.once.Do(func() { close(p.started) })
	<-p.release
	return p.series, nil
}

func TestStop_WaitsForInFlightCycle(t *testing.T) {
	cfg, err := config.Load("nonexistent.yaml")
	if err != nil {
		t.Fatal(err)
	}
	provider := &blockingProvider{
		series:  risingSeries(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	col := collector.NewCollector(cfg, provider)

	var out bytes.Buffer
	s := NewScheduler(context.Background(), col, nil, cfg.Assets, &out)
	if err := s.RegisterRSIReport("* * * * * *"); err != nil {
		t.Fatal(err)
	}
	s.Start()

	select {
	case <-provider.started:
	case <-time.After(3 * time.Second):
		t.Fatal("cycle never started")
	}

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a cycle was still in flight")
	case <-time.After(100 * time.Millisecond):
	}

	close(provider.release)

	select {
	case <-stopped:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not return after the cycle completed")
	}

	// The held cycle must have finished cleanly, not degraded to the
	// failure line.
	line := strings.TrimSpace(out.String())
	if !strings.HasPrefix(line, "rsi brsi ") {
		t.Errorf("expected a completed report line, got %q", line)
	}
}

func TestRegister_BadCronSpec(t *testing.T) {
	s := NewScheduler(context.Background(), nil, nil, nil, &bytes.Buffer{})
	if err := s.RegisterRSIReport("not a cron spec"); err == nil {
		t.Error("expected error for invalid rsi cron spec")
	}
	if err := s.RegisterSnapshot("also bad"); err == nil {
		t.Error("expected error for invalid snapshot cron spec")
	}
}
