package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinanceAdapter_GetTickers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/24hr", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"symbol":"BTCUSDT","lastPrice":"50000.00","priceChangePercent":"5.000"},
			{"symbol":"ETHBTC","lastPrice":"0.055","priceChangePercent":"-1.200"}
		]`))
	}))
	defer srv.Close()

	adapter := NewBinanceAdapter(srv.URL)
	tickers, err := adapter.GetTickers(context.Background())
	require.NoError(t, err)
	require.Len(t, tickers, 2)

	assert.Equal(t, "BTCUSDT", tickers[0].Symbol)
	assert.Equal(t, "50000.00", tickers[0].LastPrice)
	assert.Equal(t, "5.000", tickers[0].PriceChangePercent)
}

func TestBinanceAdapter_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	adapter := NewBinanceAdapter(srv.URL)
	tickers, err := adapter.GetTickers(context.Background())
	assert.Nil(t, tickers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
