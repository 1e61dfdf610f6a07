package api

import (
	"time"

	"portfoliopulse/internal/domain"
	"portfoliopulse/internal/logger"
	"portfoliopulse/internal/util"

	"github.com/gin-gonic/gin"
)

type PositionView struct {
	Ticker         string  `json:"ticker"`
	Valuation      string  `json:"valuation"`
	Recommendation string  `json:"recommendation"`
	Price          float64 `json:"price"`
	PERatio        float64 `json:"peRatio"`
	ProfitRatePct  float64 `json:"profitRatePct"`
	MarketValueKRW int64   `json:"marketValueKrw"`
	Sector         string  `json:"sector"`
	SentimentLabel string  `json:"newsSentiment"`
	SentimentScore float64 `json:"newsSentimentScore"`
}

type SummaryView struct {
	TotalValueKRW     int64            `json:"totalValueKrw"`
	MeanProfitRatePct float64          `json:"meanProfitRatePct"`
	BestTicker        string           `json:"bestTicker"`
	BestProfitRatePct float64          `json:"bestProfitRatePct"`
	SectorValuesKRW   map[string]int64 `json:"sectorValuesKrw"`
	PositionCount     int              `json:"positionCount"`
}

type SkipView struct {
	Ticker string `json:"ticker"`
	Reason string `json:"reason"`
}

type DashboardResponse struct {
	State     string         `json:"state"`
	Notice    string         `json:"notice,omitempty"`
	CycleID   string         `json:"cycleId"`
	AsOf      time.Time      `json:"asOf"`
	Positions []PositionView `json:"positions"`
	Summary   *SummaryView   `json:"summary,omitempty"`
	Skips     []SkipView     `json:"skips,omitempty"`
}

func (m ApiHandler) dashboard(c *gin.Context) {
	ctx := logger.ToContext(c.Request.Context(), m.Log)

	result, err := m.AnalysisService.GetDashboard(ctx)
	if err != nil {
		m.Log.Errorw("dashboard request failed", "error", err)
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, toDashboardResponse(result))
}

func toDashboardResponse(result *domain.AnalysisResult) DashboardResponse {
	resp := DashboardResponse{
		State:     string(result.State),
		Notice:    result.Notice,
		CycleID:   result.CycleID,
		AsOf:      result.CompletedAt,
		Positions: make([]PositionView, 0, len(result.Records)),
	}

	for _, record := range result.Records {
		resp.Positions = append(resp.Positions, PositionView{
			Ticker:         record.Ticker,
			Valuation:      string(record.Valuation),
			Recommendation: string(record.Recommendation),
			Price:          util.Round2(record.Price),
			PERatio:        util.Round2(record.PERatio),
			ProfitRatePct:  util.Round2(record.ProfitRatePct),
			MarketValueKRW: record.MarketValueKRW,
			Sector:         record.Sector,
			SentimentLabel: string(record.SentimentLabel),
			SentimentScore: util.Round2(record.SentimentScore),
		})
	}

	for _, skip := range result.Skips {
		resp.Skips = append(resp.Skips, SkipView{
			Ticker: skip.Ticker,
			Reason: string(skip.SkipReason),
		})
	}

	if result.Summary != nil {
		resp.Summary = &SummaryView{
			TotalValueKRW:     result.Summary.TotalValueKRW,
			MeanProfitRatePct: util.Round2(result.Summary.MeanProfitRatePct),
			BestTicker:        result.Summary.BestTicker,
			BestProfitRatePct: util.Round2(result.Summary.BestProfitRatePct),
			SectorValuesKRW:   result.Summary.SectorValuesKRW,
			PositionCount:     result.Summary.PositionCount,
		}
	}

	return resp
}
