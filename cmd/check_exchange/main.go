package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vitos/crypto_gainers/internal/infrastructure/exchange"
	"github.com/vitos/crypto_gainers/internal/usecase"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Exchange struct {
		RESTEndpoint string `yaml:"rest_endpoint"`
		QuoteSuffix  string `yaml:"quote_suffix"`
		TopN         int    `yaml:"top_n"`
	} `yaml:"exchange"`
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	cfg, err := loadConfig("config/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Testing Binance Interaction...\n")
	fmt.Printf("Endpoint: %s\n", cfg.Exchange.RESTEndpoint)

	adapter := exchange.NewBinanceAdapter(cfg.Exchange.RESTEndpoint)
	ranker := usecase.NewRankerService(adapter, cfg.Exchange.QuoteSuffix, cfg.Exchange.TopN, zap.NewNop())

	entries, err := ranker.TopGainers(context.Background())
	if err != nil {
		fmt.Printf("❌ Failed to fetch top gainers: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Top %d gainers (%s pairs):\n", len(entries), ranker.QuoteSuffix())
	for i, e := range entries {
		fmt.Printf("%d. %-12s price=%g 24h=%+.2f%%\n", i+1, e.Symbol, e.Price, e.GainPercent)
	}
}
