package internal

import (
	"portfoliopulse/internal/domain"

	"github.com/shopspring/decimal"
)

// ValuationConfig holds the decision thresholds. Variants of this dashboard
// have shipped with 55/25 PE bands and ±0.15/±0.2 sentiment bands, so these
// are configuration, not literals.
type ValuationConfig struct {
	// HighPERatio is the exclusive lower bound of the overvalued band.
	HighPERatio float64
	// LowPERatio is the exclusive upper bound of the undervalued band.
	LowPERatio float64
	// PositiveSentiment / NegativeSentiment bound the neutral band; both are
	// exclusive, so a score exactly on the bound stays neutral.
	PositiveSentiment float64
	NegativeSentiment float64
	// FxRateKRWPerUSD converts provider prices (USD) to won.
	FxRateKRWPerUSD float64
}

func DefaultValuationConfig() ValuationConfig {
	return ValuationConfig{
		HighPERatio:       50,
		LowPERatio:        20,
		PositiveSentiment: 0.1,
		NegativeSentiment: -0.1,
		FxRateKRWPerUSD:   1450,
	}
}

// SentimentLabelFor buckets a score into the tri-state news indicator.
func SentimentLabelFor(score float64, cfg ValuationConfig) domain.SentimentLabel {
	switch {
	case score > cfg.PositiveSentiment:
		return domain.SentimentPositive
	case score < cfg.NegativeSentiment:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

// Evaluate combines one holding with its market snapshot and sentiment score
// into a TickerOutcome. A snapshot without a usable price yields a skip, never
// a zero-filled record. Re-running on identical inputs gives identical output.
func Evaluate(holding domain.Holding, snapshot domain.QuoteSnapshot, sentimentScore float64, cfg ValuationConfig) domain.TickerOutcome {
	if snapshot.Price <= 0 {
		return domain.TickerOutcome{
			Ticker:     holding.Ticker,
			SkipReason: domain.SkipNoUsablePrice,
		}
	}

	valuation, recommendation := classify(snapshot.PERatio, sentimentScore, cfg)

	record := domain.PositionRecord{
		Ticker:         holding.Ticker,
		Price:          snapshot.Price,
		PERatio:        snapshot.PERatio,
		SentimentScore: sentimentScore,
		SentimentLabel: SentimentLabelFor(sentimentScore, cfg),
		Valuation:      valuation,
		Recommendation: recommendation,
		ProfitRatePct:  profitRatePct(snapshot.Price, holding.AvgCostKRW, cfg.FxRateKRWPerUSD),
		MarketValueKRW: marketValueKRW(snapshot.Price, holding.Quantity, cfg.FxRateKRWPerUSD),
		Sector:         domain.LocalizedSector(snapshot.Sector),
	}

	return domain.TickerOutcome{Ticker: holding.Ticker, Record: &record}
}

// classify applies the PE bands. Comparisons are strict, so a multiple exactly
// on a threshold lands in the fair band. A non-positive multiple means the
// earnings picture is undefined and sentiment is not consulted.
func classify(per float64, sentimentScore float64, cfg ValuationConfig) (domain.ValuationLabel, domain.Recommendation) {
	switch {
	case per <= 0:
		return domain.ValuationIndeterminate, domain.RecommendationDeferred
	case per > cfg.HighPERatio:
		if sentimentScore < 0 {
			return domain.ValuationOvervalued, domain.RecommendationStrongSell
		}
		return domain.ValuationOvervalued, domain.RecommendationOverheated
	case per < cfg.LowPERatio:
		if sentimentScore > cfg.PositiveSentiment {
			return domain.ValuationUndervalued, domain.RecommendationStrongBuy
		}
		return domain.ValuationUndervalued, domain.RecommendationAccumulate
	default:
		return domain.ValuationFair, domain.RecommendationHold
	}
}

func profitRatePct(priceUSD, avgCostKRW, fxRate float64) float64 {
	return ((priceUSD * fxRate) - avgCostKRW) / avgCostKRW * 100
}

// marketValueKRW computes price * quantity * fx truncated to whole won,
// through decimal so large positions don't pick up float error.
func marketValueKRW(priceUSD, quantity, fxRate float64) int64 {
	return decimal.NewFromFloat(priceUSD).
		Mul(decimal.NewFromFloat(quantity)).
		Mul(decimal.NewFromFloat(fxRate)).
		IntPart()
}
