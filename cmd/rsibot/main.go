package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"CryptoPulse/internal/collector"
	"CryptoPulse/internal/config"
	"CryptoPulse/internal/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] rsibot starting...")

	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Provider chain: CoinGecko chart, Binance klines, synthetic last resort.
	gecko := collector.NewCoinGeckoProvider(cfg.DataSource.CoinGeckoBaseURL, cfg.Proxy)
	binance := collector.NewBinanceProvider(cfg.DataSource.BinanceBaseURL, cfg.Proxy)
	synthetic := collector.NewSyntheticProvider(gecko, binance)

	col := collector.NewCollector(cfg, gecko, binance, synthetic)
	log.Printf("[INFO] tracking %d assets, lookback %dm, RSI period %d",
		len(cfg.Assets), cfg.Indicator.LookbackMinutes, cfg.Indicator.RSIPeriod)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, nil, cfg.Assets, os.Stdout)
	if err := sched.RegisterRSIReport(cfg.Schedule.RSICron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()

	// First report without waiting for the first tick.
	sched.RunRSIReportNow()

	log.Println("[INFO] rsibot is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	// Let any in-flight cycle finish before tearing down its context.
	log.Println("[INFO] shutdown signal received, stopping...")
	sched.Stop()
	log.Println("[INFO] rsibot stopped")
}
