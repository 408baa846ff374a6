package usecase

import (
	"context"
	"fmt"

	"github.com/vitos/crypto_gainers/internal/domain"
	"go.uber.org/zap"
)

// InsightPlaceholder is shown in place of a summary when the insight call
// fails or returns a malformed response.
const InsightPlaceholder = "Market summary is unavailable right now. Please try again later."

// InsightService builds a per-asset prompt and asks the provider for a short
// market summary.
type InsightService struct {
	provider domain.InsightProvider
	logger   *zap.Logger
}

func NewInsightService(provider domain.InsightProvider, logger *zap.Logger) *InsightService {
	return &InsightService{provider: provider, logger: logger}
}

// MarketSummary returns the provider's text for one gainer entry. On failure
// it returns the fixed placeholder together with an *domain.InsightFailure so
// the caller can surface the condition however it wants.
func (s *InsightService) MarketSummary(ctx context.Context, entry domain.GainerEntry) (string, error) {
	prompt := fmt.Sprintf(
		"Give a concise market summary for the crypto trading pair %s. "+
			"Its last price is %.8g and it moved %+.2f%% over the last 24 hours. "+
			"Two or three sentences, no financial advice.",
		entry.Symbol, entry.Price, entry.GainPercent)

	text, err := s.provider.Summarize(ctx, prompt)
	if err != nil {
		s.logger.Error("Insight request failed",
			zap.String("symbol", entry.Symbol), zap.Error(err))
		return InsightPlaceholder, &domain.InsightFailure{Cause: err}
	}
	return text, nil
}
