package domain

import "time"

// PortfolioSummary is derived from the current record set on every pass and
// has no lifecycle of its own.
type PortfolioSummary struct {
	TotalValueKRW     int64
	MeanProfitRatePct float64
	BestTicker        string
	BestProfitRatePct float64
	SectorValuesKRW   map[string]int64
	PositionCount     int
}

// AnalysisState describes what the dashboard should show for a pass.
type AnalysisState string

const (
	StateOK             AnalysisState = "ok"
	StateNoData         AnalysisState = "no_data"
	StateQuotaExhausted AnalysisState = "quota_exhausted"
)

// AnalysisResult is one completed (or aborted) refresh pass. Records are in
// canonical display order: descending profit rate. Summary is nil when there
// are no usable records.
type AnalysisResult struct {
	CycleID     string
	State       AnalysisState
	Records     []PositionRecord
	Skips       []TickerOutcome
	Summary     *PortfolioSummary
	Notice      string
	CompletedAt time.Time
}
