package internal

import (
	"testing"

	"portfoliopulse/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_SentimentLabelFor(t *testing.T) {
	cfg := DefaultValuationConfig()

	tests := []struct {
		score float64
		want  domain.SentimentLabel
	}{
		{0.5, domain.SentimentPositive},
		{0.11, domain.SentimentPositive},
		{0.1, domain.SentimentNeutral},
		{0, domain.SentimentNeutral},
		{-0.1, domain.SentimentNeutral},
		{-0.11, domain.SentimentNegative},
		{-1, domain.SentimentNegative},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, SentimentLabelFor(tc.score, cfg), "score %v", tc.score)
	}
}

func Test_Evaluate_valuationBands(t *testing.T) {
	cfg := DefaultValuationConfig()
	holding := domain.Holding{Ticker: "AAPL", Quantity: 10, AvgCostKRW: 1_000_000}

	snapshot := func(per float64) domain.QuoteSnapshot {
		return domain.QuoteSnapshot{Ticker: "AAPL", Price: 100, PERatio: per, Sector: "Technology"}
	}

	t.Run("non-positive multiple defers, regardless of sentiment", func(t *testing.T) {
		for _, score := range []float64{-0.9, 0, 0.9} {
			outcome := Evaluate(holding, snapshot(0), score, cfg)
			require.False(t, outcome.Skipped())
			require.Equal(t, domain.ValuationIndeterminate, outcome.Record.Valuation)
			require.Equal(t, domain.RecommendationDeferred, outcome.Record.Recommendation)
		}
		outcome := Evaluate(holding, snapshot(-4), 0.9, cfg)
		require.Equal(t, domain.ValuationIndeterminate, outcome.Record.Valuation)
	})

	t.Run("boundary multiples fall in the fair band", func(t *testing.T) {
		for _, per := range []float64{50, 20, 35} {
			outcome := Evaluate(holding, snapshot(per), 0.5, cfg)
			require.Equal(t, domain.ValuationFair, outcome.Record.Valuation, "per %v", per)
			require.Equal(t, domain.RecommendationHold, outcome.Record.Recommendation)
		}
	})

	t.Run("overvalued splits on negative sentiment", func(t *testing.T) {
		outcome := Evaluate(holding, snapshot(60), -0.3, cfg)
		require.Equal(t, domain.ValuationOvervalued, outcome.Record.Valuation)
		require.Equal(t, domain.RecommendationStrongSell, outcome.Record.Recommendation)

		outcome = Evaluate(holding, snapshot(60), 0.05, cfg)
		require.Equal(t, domain.ValuationOvervalued, outcome.Record.Valuation)
		require.Equal(t, domain.RecommendationOverheated, outcome.Record.Recommendation)
	})

	t.Run("undervalued splits on positive sentiment", func(t *testing.T) {
		outcome := Evaluate(holding, snapshot(15), 0.2, cfg)
		require.Equal(t, domain.ValuationUndervalued, outcome.Record.Valuation)
		require.Equal(t, domain.RecommendationStrongBuy, outcome.Record.Recommendation)

		outcome = Evaluate(holding, snapshot(15), 0, cfg)
		require.Equal(t, domain.ValuationUndervalued, outcome.Record.Valuation)
		require.Equal(t, domain.RecommendationAccumulate, outcome.Record.Recommendation)

		// exactly on the positive bound is not positive enough
		outcome = Evaluate(holding, snapshot(15), 0.1, cfg)
		require.Equal(t, domain.RecommendationAccumulate, outcome.Record.Recommendation)
	})

	t.Run("variant thresholds are configuration", func(t *testing.T) {
		variant := cfg
		variant.HighPERatio = 55
		variant.LowPERatio = 25
		variant.PositiveSentiment = 0.2
		variant.NegativeSentiment = -0.2

		outcome := Evaluate(holding, snapshot(52), 0, variant)
		require.Equal(t, domain.ValuationFair, outcome.Record.Valuation)

		outcome = Evaluate(holding, snapshot(24), 0.15, variant)
		require.Equal(t, domain.ValuationUndervalued, outcome.Record.Valuation)
		require.Equal(t, domain.RecommendationAccumulate, outcome.Record.Recommendation)
		require.Equal(t, domain.SentimentNeutral, outcome.Record.SentimentLabel)
	})
}

func Test_Evaluate_profitAndMarketValue(t *testing.T) {
	cfg := DefaultValuationConfig()
	holding := domain.Holding{Ticker: "MSFT", Quantity: 10, AvgCostKRW: 200_000}
	snapshot := domain.QuoteSnapshot{Ticker: "MSFT", Price: 100, PERatio: 30, Sector: "Technology"}

	outcome := Evaluate(holding, snapshot, 0, cfg)
	require.False(t, outcome.Skipped())

	// (100 * 1450 - 200,000) / 200,000 * 100 = -27.5%
	require.InDelta(t, -27.5, outcome.Record.ProfitRatePct, 1e-9)
	// 100 * 10 * 1450 = 1,450,000 won
	require.Equal(t, int64(1_450_000), outcome.Record.MarketValueKRW)
	require.Equal(t, "기술주", outcome.Record.Sector)
}

func Test_Evaluate_skipsWithoutUsablePrice(t *testing.T) {
	cfg := DefaultValuationConfig()
	holding := domain.Holding{Ticker: "GOOG", Quantity: 1, AvgCostKRW: 100_000}

	outcome := Evaluate(holding, domain.QuoteSnapshot{Ticker: "GOOG", Price: 0, PERatio: 12}, 0.5, cfg)
	require.True(t, outcome.Skipped())
	require.Equal(t, domain.SkipNoUsablePrice, outcome.SkipReason)
	require.Nil(t, outcome.Record)
}

func Test_Evaluate_isIdempotent(t *testing.T) {
	cfg := DefaultValuationConfig()
	holding := domain.Holding{Ticker: "NVDA", Quantity: 3, AvgCostKRW: 700_000}
	snapshot := domain.QuoteSnapshot{Ticker: "NVDA", Price: 480.25, PERatio: 63.1, Sector: "Technology"}

	first := Evaluate(holding, snapshot, -0.42, cfg)
	second := Evaluate(holding, snapshot, -0.42, cfg)
	require.Empty(t, cmp.Diff(first.Record, second.Record))
}

func Test_Evaluate_unknownSectorFallsBack(t *testing.T) {
	cfg := DefaultValuationConfig()
	holding := domain.Holding{Ticker: "SPY", Quantity: 2, AvgCostKRW: 500_000}

	outcome := Evaluate(holding, domain.QuoteSnapshot{Ticker: "SPY", Price: 430, PERatio: 0, Sector: ""}, 0, cfg)
	require.Equal(t, domain.SectorFallback, outcome.Record.Sector)

	outcome = Evaluate(holding, domain.QuoteSnapshot{Ticker: "SPY", Price: 430, PERatio: 0, Sector: "Quantum Widgets"}, 0, cfg)
	require.Equal(t, domain.SectorFallback, outcome.Record.Sector)
}
