package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/crypto_gainers/internal/domain"
	"go.uber.org/zap"
)

// MockTickerSource for RankerService
type MockTickerSource struct {
	Tickers []domain.Ticker
	Err     error
	Calls   int
}

func (m *MockTickerSource) GetTickers(ctx context.Context) ([]domain.Ticker, error) {
	m.Calls++
	return m.Tickers, m.Err
}

func TestRanker_SuffixFilterAndRanking(t *testing.T) {
	source := &MockTickerSource{Tickers: []domain.Ticker{
		{Symbol: "BTCUSDT", LastPrice: "50000", PriceChangePercent: "5"},
		{Symbol: "ETHUSDT", LastPrice: "3000", PriceChangePercent: "10"},
		{Symbol: "XXXBTC", LastPrice: "1", PriceChangePercent: "50"},
	}}
	ranker := NewRankerService(source, "USDT", 2, zap.NewNop())

	entries, err := ranker.TopGainers(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// XXXBTC is excluded by the suffix filter despite the biggest move.
	assert.Equal(t, "ETHUSDT", entries[0].Symbol)
	assert.Equal(t, 10.0, entries[0].GainPercent)
	assert.Equal(t, "BTCUSDT", entries[1].Symbol)
	assert.Equal(t, 5.0, entries[1].GainPercent)
	assert.Equal(t, 3000.0, entries[0].Price)
}

func TestRanker_CapAndOrder(t *testing.T) {
	source := &MockTickerSource{Tickers: []domain.Ticker{
		{Symbol: "AUSDT", LastPrice: "1", PriceChangePercent: "1.5"},
		{Symbol: "BUSDT", LastPrice: "2", PriceChangePercent: "-3"},
		{Symbol: "CUSDT", LastPrice: "3", PriceChangePercent: "7.25"},
		{Symbol: "DUSDT", LastPrice: "4", PriceChangePercent: "0"},
		{Symbol: "EUSDT", LastPrice: "5", PriceChangePercent: "12"},
		{Symbol: "FUSDT", LastPrice: "6", PriceChangePercent: "4"},
		{Symbol: "GUSDT", LastPrice: "7", PriceChangePercent: "9"},
	}}
	ranker := NewRankerService(source, "USDT", 5, zap.NewNop())

	entries, err := ranker.TopGainers(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 5)

	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].GainPercent, entries[i].GainPercent,
			"entries must be sorted by gain descending")
	}
	for _, e := range entries {
		assert.Contains(t, e.Symbol, "USDT")
	}
}

func TestRanker_TiesKeepUpstreamOrder(t *testing.T) {
	source := &MockTickerSource{Tickers: []domain.Ticker{
		{Symbol: "AUSDT", LastPrice: "1", PriceChangePercent: "5"},
		{Symbol: "BUSDT", LastPrice: "2", PriceChangePercent: "5"},
		{Symbol: "CUSDT", LastPrice: "3", PriceChangePercent: "5"},
	}}
	ranker := NewRankerService(source, "USDT", 5, zap.NewNop())

	entries, err := ranker.TopGainers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AUSDT", "BUSDT", "CUSDT"},
		[]string{entries[0].Symbol, entries[1].Symbol, entries[2].Symbol})
}

func TestRanker_SkipsUnparseableTickers(t *testing.T) {
	source := &MockTickerSource{Tickers: []domain.Ticker{
		{Symbol: "OKUSDT", LastPrice: "10", PriceChangePercent: "2"},
		{Symbol: "BADUSDT", LastPrice: "not-a-number", PriceChangePercent: "3"},
		{Symbol: "WORSEUSDT", LastPrice: "5", PriceChangePercent: ""},
	}}
	ranker := NewRankerService(source, "USDT", 5, zap.NewNop())

	entries, err := ranker.TopGainers(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "OKUSDT", entries[0].Symbol)
}

func TestRanker_FetchErrorIsFetchFailure(t *testing.T) {
	source := &MockTickerSource{Err: errors.New("connection refused")}
	ranker := NewRankerService(source, "USDT", 5, zap.NewNop())

	entries, err := ranker.TopGainers(context.Background())
	assert.Nil(t, entries)

	var failure *domain.FetchFailure
	require.ErrorAs(t, err, &failure)
}
