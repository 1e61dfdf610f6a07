package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfoliopulse/internal/domain"
	"portfoliopulse/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubAnalysisService struct {
	result    *domain.AnalysisResult
	refreshed bool
}

func (s *stubAnalysisService) GetDashboard(ctx context.Context) (*domain.AnalysisResult, error) {
	return s.result, nil
}

func (s *stubAnalysisService) Refresh(ctx context.Context) (*domain.AnalysisResult, error) {
	s.refreshed = true
	return s.result, nil
}

func testRouter(svc *stubAnalysisService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := ApiHandler{AnalysisService: svc, Log: logger.New()}
	router := gin.New()
	router.GET("/dashboard", handler.dashboard)
	router.POST("/refresh", handler.refresh)
	return router
}

func Test_dashboard(t *testing.T) {
	svc := &stubAnalysisService{
		result: &domain.AnalysisResult{
			CycleID: "cycle-1",
			State:   domain.StateOK,
			Records: []domain.PositionRecord{
				{
					Ticker:         "MSFT",
					Price:          400.456,
					PERatio:        15.333,
					SentimentScore: 0.25111,
					SentimentLabel: domain.SentimentPositive,
					Valuation:      domain.ValuationUndervalued,
					Recommendation: domain.RecommendationStrongBuy,
					ProfitRatePct:  16.0001,
					MarketValueKRW: 1_160_000,
					Sector:         "기술주",
				},
			},
			Skips: []domain.TickerOutcome{
				{Ticker: "NOPE", SkipReason: domain.SkipTickerNotFound},
			},
			Summary: &domain.PortfolioSummary{
				TotalValueKRW:     1_160_000,
				MeanProfitRatePct: 16.0001,
				BestTicker:        "MSFT",
				BestProfitRatePct: 16.0001,
				SectorValuesKRW:   map[string]int64{"기술주": 1_160_000},
				PositionCount:     1,
			},
			CompletedAt: time.Now().UTC(),
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	testRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Equal(t, "ok", resp.State)
	require.Len(t, resp.Positions, 1)
	// display values are rounded to 2dp
	require.Equal(t, 400.46, resp.Positions[0].Price)
	require.Equal(t, 15.33, resp.Positions[0].PERatio)
	require.Equal(t, 16.0, resp.Positions[0].ProfitRatePct)
	require.Equal(t, "strong buy", resp.Positions[0].Recommendation)
	require.Equal(t, "기술주", resp.Positions[0].Sector)
	require.Len(t, resp.Skips, 1)
	require.Equal(t, "ticker_not_found", resp.Skips[0].Reason)
	require.NotNil(t, resp.Summary)
	require.Equal(t, int64(1_160_000), resp.Summary.TotalValueKRW)
}

func Test_refresh(t *testing.T) {
	svc := &stubAnalysisService{
		result: &domain.AnalysisResult{
			CycleID:     "cycle-2",
			State:       domain.StateNoData,
			Notice:      "no usable positions this cycle",
			CompletedAt: time.Now().UTC(),
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	testRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, svc.refreshed)

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "no_data", resp.State)
	require.NotEmpty(t, resp.Notice)
	require.Nil(t, resp.Summary)
	require.Empty(t, resp.Positions)
}
