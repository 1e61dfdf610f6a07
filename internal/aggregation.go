package internal

import (
	"errors"

	"portfoliopulse/internal/domain"

	"github.com/montanaflynn/stats"
)

// ErrNoRecords is returned when Summarize is called on an empty record set.
// Summary statistics are undefined with no positions; the caller is expected
// to branch to the no-data display state instead.
var ErrNoRecords = errors.New("no position records to summarize")

// Summarize reduces a pass's records into the dashboard summary. Best
// performer ties break to the first-seen record.
func Summarize(records []domain.PositionRecord) (*domain.PortfolioSummary, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	var totalValue int64
	profitRates := make(stats.Float64Data, 0, len(records))
	sectorValues := map[string]int64{}

	best := records[0]
	for _, record := range records {
		totalValue += record.MarketValueKRW
		profitRates = append(profitRates, record.ProfitRatePct)
		sectorValues[record.Sector] += record.MarketValueKRW
		if record.ProfitRatePct > best.ProfitRatePct {
			best = record
		}
	}

	meanProfit, err := stats.Mean(profitRates)
	if err != nil {
		return nil, err
	}

	return &domain.PortfolioSummary{
		TotalValueKRW:     totalValue,
		MeanProfitRatePct: meanProfit,
		BestTicker:        best.Ticker,
		BestProfitRatePct: best.ProfitRatePct,
		SectorValuesKRW:   sectorValues,
		PositionCount:     len(records),
	}, nil
}
