package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Asset identifies one tracked asset across the external APIs.
type Asset struct {
	CoinID string `yaml:"coin_id"` // CoinGecko coin id, e.g. "bitcoin"
	Symbol string `yaml:"symbol"`  // Binance trading pair, e.g. "BTCUSDT"
	Tag    string `yaml:"tag"`     // RSI report clause label, e.g. "brsi"
}

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		CoinGeckoBaseURL string `yaml:"coingecko_base_url"`
		BinanceBaseURL   string `yaml:"binance_base_url"`
	} `yaml:"data_source"`
	Assets    []Asset `yaml:"assets"`
	Indicator struct {
		LookbackMinutes int `yaml:"lookback_minutes"`
		RSIPeriod       int `yaml:"rsi_period"`
		MinSamples      int `yaml:"min_samples"`
	} `yaml:"indicator"`
	Schedule struct {
		RSICron      string `yaml:"rsi_cron"`
		SnapshotCron string `yaml:"snapshot_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.DataSource.CoinGeckoBaseURL = v
	}
	if v := os.Getenv("BINANCE_BASE_URL"); v != "" {
		cfg.DataSource.BinanceBaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("RSI_PERIOD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Indicator.RSIPeriod = n
		}
	}
	if v := os.Getenv("LOOKBACK_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Indicator.LookbackMinutes = n
		}
	}
	if v := os.Getenv("CRON_RSI"); v != "" {
		cfg.Schedule.RSICron = v
	}
	if v := os.Getenv("CRON_SNAPSHOT"); v != "" {
		cfg.Schedule.SnapshotCron = v
	}

	// Defaults
	if cfg.DataSource.CoinGeckoBaseURL == "" {
		cfg.DataSource.CoinGeckoBaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.DataSource.BinanceBaseURL == "" {
		cfg.DataSource.BinanceBaseURL = "https://api.binance.com/api/v3"
	}
	if len(cfg.Assets) == 0 {
		cfg.Assets = []Asset{
			{CoinID: "bitcoin", Symbol: "BTCUSDT", Tag: "brsi"},
			{CoinID: "ethereum", Symbol: "ETHUSDT", Tag: "ersi"},
		}
	}
	if cfg.Indicator.LookbackMinutes == 0 {
		cfg.Indicator.LookbackMinutes = 3
	}
	if cfg.Indicator.RSIPeriod == 0 {
		cfg.Indicator.RSIPeriod = 3
	}
	if cfg.Indicator.MinSamples == 0 {
		cfg.Indicator.MinSamples = 3
	}
	if cfg.Schedule.RSICron == "" {
		cfg.Schedule.RSICron = "*/3 * * * * *"
	}
	if cfg.Schedule.SnapshotCron == "" {
		cfg.Schedule.SnapshotCron = "* * * * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.DataSource.CoinGeckoBaseURL == "" {
		return fmt.Errorf("data_source.coingecko_base_url is required")
	}
	if c.DataSource.BinanceBaseURL == "" {
		return fmt.Errorf("data_source.binance_base_url is required")
	}
	if len(c.Assets) == 0 {
		return fmt.Errorf("at least one asset is required")
	}
	for i, a := range c.Assets {
		if a.CoinID == "" || a.Symbol == "" || a.Tag == "" {
			return fmt.Errorf("assets[%d]: coin_id, symbol and tag are all required", i)
		}
	}
	if c.Indicator.LookbackMinutes <= 0 {
		return fmt.Errorf("indicator.lookback_minutes must be positive")
	}
	if c.Indicator.RSIPeriod <= 0 {
		return fmt.Errorf("indicator.rsi_period must be positive")
	}
	if c.Indicator.MinSamples <= 0 {
		return fmt.Errorf("indicator.min_samples must be positive")
	}
	return nil
}
