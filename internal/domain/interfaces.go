package domain

import "context"

// Ticker is one raw 24h statistics row as delivered by the exchange.
// Price and percent fields stay textual here; parsing belongs to the ranker.
type Ticker struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
}

// TickerSource delivers the full 24h ticker set of an exchange.
type TickerSource interface {
	GetTickers(ctx context.Context) ([]Ticker, error)
}

// KeyValueStore is the session-scoped persistence port. Get reports whether
// the key was present; an absent key is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// InsightProvider turns a prompt into a short natural-language text.
type InsightProvider interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}
