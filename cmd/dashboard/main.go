package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vitos/crypto_gainers/internal/domain"
	"github.com/vitos/crypto_gainers/internal/infrastructure/exchange"
	"github.com/vitos/crypto_gainers/internal/infrastructure/insight"
	"github.com/vitos/crypto_gainers/internal/infrastructure/logger"
	"github.com/vitos/crypto_gainers/internal/infrastructure/storage"
	"github.com/vitos/crypto_gainers/internal/usecase"
	"github.com/vitos/crypto_gainers/internal/web"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Exchange struct {
		RESTEndpoint string `yaml:"rest_endpoint"`
		QuoteSuffix  string `yaml:"quote_suffix"`
		TopN         int    `yaml:"top_n"`
	} `yaml:"exchange"`
	Insight struct {
		Endpoint string `yaml:"endpoint"`
		Model    string `yaml:"model"`
	} `yaml:"insight"`
	Storage struct {
		Backend string `yaml:"backend"` // memory or sqlite
		Path    string `yaml:"path"`
	} `yaml:"storage"`
	Polling struct {
		RefreshMs int `yaml:"refresh_ms"`
	} `yaml:"polling"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Server struct {
		Port         int    `yaml:"port"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"server"`
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
	// 1. Load Config (.env carries the insight credential)
	_ = godotenv.Load()

	cfg, err := loadConfig("config/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Init Storage
	var store domain.KeyValueStore
	switch cfg.Storage.Backend {
	case "sqlite":
		s, err := storage.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			log.Fatal("Failed to init sqlite store", zap.Error(err))
		}
		defer s.Close()
		store = s
	default:
		s, err := storage.NewMemoryStore()
		if err != nil {
			log.Fatal("Failed to init session store", zap.Error(err))
		}
		defer s.Close()
		store = s
	}

	// 4. Init Adapters
	binance := exchange.NewBinanceAdapter(cfg.Exchange.RESTEndpoint)
	gemini := insight.NewGeminiClient(cfg.Insight.Endpoint, cfg.Insight.Model, os.Getenv("INSIGHT_API_KEY"))

	// 5. Init Services
	ranker := usecase.NewRankerService(binance, cfg.Exchange.QuoteSuffix, cfg.Exchange.TopN, log)
	tracker := usecase.NewTrackerService(ranker, store, log)
	insightSvc := usecase.NewInsightService(gemini, log)

	if err := tracker.Restore(context.Background()); err != nil {
		log.Error("Failed to restore tracker state", zap.Error(err))
	}

	// 6. Init Web Server
	templatesDir := cfg.Server.TemplatesDir
	if templatesDir == "" {
		templatesDir = "web/templates"
	}
	if err := web.InitTemplates(templatesDir); err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}
	server := web.NewServer(cfg.Server.Port, tracker, insightSvc, log)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	// 7. Periodic Refresh Loop
	refreshMs := cfg.Polling.RefreshMs
	if refreshMs <= 0 {
		refreshMs = 60000
	}
	go func() {
		ticker := time.NewTicker(time.Duration(refreshMs) * time.Millisecond)
		defer ticker.Stop()

		runRefresh := func() {
			if _, err := tracker.Refresh(context.Background()); err != nil {
				log.Warn("Refresh skipped", zap.Error(err))
			}
		}
		runRefresh()

		for {
			select {
			case <-ticker.C:
				runRefresh()
			case <-done:
				return
			}
		}
	}()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Web server failed", zap.Error(err))
		}
	}()

	<-stop
	close(done)
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Shutdown error", zap.Error(err))
	}
}
