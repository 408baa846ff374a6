package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/vitos/crypto_gainers/internal/domain"
	"go.uber.org/zap"
)

const (
	DefaultQuoteSuffix = "USDT"
	DefaultTopN        = 5
)

// RankerService ranks the exchange's 24h tickers by percentage gain within
// one quote-asset family and returns the top N.
type RankerService struct {
	source      domain.TickerSource
	quoteSuffix string
	topN        int
	logger      *zap.Logger
}

func NewRankerService(source domain.TickerSource, quoteSuffix string, topN int, logger *zap.Logger) *RankerService {
	if quoteSuffix == "" {
		quoteSuffix = DefaultQuoteSuffix
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &RankerService{
		source:      source,
		quoteSuffix: quoteSuffix,
		topN:        topN,
		logger:      logger,
	}
}

// TopGainers fetches the full ticker set and returns at most topN entries,
// sorted by 24h percentage change descending. Ties keep the upstream order.
// A transport or status error comes back as *domain.FetchFailure with a nil
// entry slice; callers decide how to degrade.
func (r *RankerService) TopGainers(ctx context.Context) ([]domain.GainerEntry, error) {
	tickers, err := r.source.GetTickers(ctx)
	if err != nil {
		return nil, &domain.FetchFailure{Cause: err}
	}

	entries := make([]domain.GainerEntry, 0, len(tickers))
	for _, t := range tickers {
		if !strings.HasSuffix(t.Symbol, r.quoteSuffix) {
			continue
		}
		price, err := strconv.ParseFloat(t.LastPrice, 64)
		if err != nil || price < 0 {
			r.logger.Warn("Skipping ticker with bad price",
				zap.String("symbol", t.Symbol), zap.String("last_price", t.LastPrice))
			continue
		}
		pcnt, err := strconv.ParseFloat(t.PriceChangePercent, 64)
		if err != nil {
			r.logger.Warn("Skipping ticker with bad percent",
				zap.String("symbol", t.Symbol), zap.String("percent", t.PriceChangePercent))
			continue
		}
		entries = append(entries, domain.GainerEntry{
			Symbol:      t.Symbol,
			Price:       price,
			GainPercent: pcnt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].GainPercent > entries[j].GainPercent
	})

	if len(entries) > r.topN {
		entries = entries[:r.topN]
	}
	return entries, nil
}

func (r *RankerService) QuoteSuffix() string {
	return r.quoteSuffix
}
