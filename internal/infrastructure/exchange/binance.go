package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/vitos/crypto_gainers/internal/domain"
)

const BinanceBaseURL = "https://api.binance.com"

// BinanceAdapter reads 24h ticker statistics from the Binance spot REST API.
// Public endpoint, no credentials, no retries: a failed call is the caller's
// problem to degrade from.
type BinanceAdapter struct {
	client *resty.Client
}

func NewBinanceAdapter(baseURL string) *BinanceAdapter {
	if baseURL == "" {
		baseURL = BinanceBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	return &BinanceAdapter{client: client}
}

// GetTickers returns the full 24h ticker set. Price and percent fields are
// kept textual as delivered by the exchange.
func (b *BinanceAdapter) GetTickers(ctx context.Context) ([]domain.Ticker, error) {
	var tickers []domain.Ticker
	resp, err := b.client.R().
		SetContext(ctx).
		SetResult(&tickers).
		Get("/api/v3/ticker/24hr")
	if err != nil {
		return nil, errors.Wrap(err, "binance 24hr tickers")
	}
	if resp.IsError() {
		return nil, fmt.Errorf("binance 24hr tickers: status %d: %s", resp.StatusCode(), resp.String())
	}
	return tickers, nil
}
