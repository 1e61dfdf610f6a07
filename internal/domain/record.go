package domain

// SentimentLabel buckets a sentiment score into the dashboard's tri-state
// news indicator.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// ValuationLabel classifies the PE multiple.
type ValuationLabel string

const (
	ValuationOvervalued    ValuationLabel = "overvalued"
	ValuationUndervalued   ValuationLabel = "undervalued"
	ValuationFair          ValuationLabel = "fair value"
	ValuationIndeterminate ValuationLabel = "indeterminate"
)

// Recommendation is the combined valuation + sentiment verdict.
type Recommendation string

const (
	RecommendationStrongSell Recommendation = "strong sell"
	RecommendationOverheated Recommendation = "caution: overheated"
	RecommendationStrongBuy  Recommendation = "strong buy"
	RecommendationAccumulate Recommendation = "accumulate gradually"
	RecommendationHold       Recommendation = "hold / watch"
	RecommendationDeferred   Recommendation = "deferred: insufficient data"
)

// PositionRecord is the per-holding output of the valuation engine.
// ProfitRatePct keeps full precision; display rounding happens at the API
// layer. MarketValueKRW is truncated to whole won.
type PositionRecord struct {
	Ticker         string
	Price          float64
	PERatio        float64
	SentimentScore float64
	SentimentLabel SentimentLabel
	Valuation      ValuationLabel
	Recommendation Recommendation
	ProfitRatePct  float64
	MarketValueKRW int64
	Sector         string
}

// SkipReason says why a holding produced no record this cycle.
type SkipReason string

const (
	SkipQuoteUnavailable SkipReason = "quote_unavailable"
	SkipNoUsablePrice    SkipReason = "no_usable_price"
	SkipTickerNotFound   SkipReason = "ticker_not_found"
)

// TickerOutcome is the per-ticker result of a cycle: either a record or a
// skip with an inspectable reason. Exactly one of Record / SkipReason is set.
type TickerOutcome struct {
	Ticker     string
	Record     *PositionRecord
	SkipReason SkipReason
	Err        error
}

func (o TickerOutcome) Skipped() bool {
	return o.Record == nil
}
