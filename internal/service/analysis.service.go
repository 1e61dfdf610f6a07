package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"portfoliopulse/internal"
	"portfoliopulse/internal/domain"
	"portfoliopulse/internal/logger"
	"portfoliopulse/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProgressFunc is invoked once per holding as the cycle walks the sheet, so a
// UI can show "analyzing AAPL (3/12)" without the pipeline knowing about it.
// index is 1-based.
type ProgressFunc func(ticker string, index int, total int)

// AnalysisConfig carries the cycle tunables. The zero value is not usable;
// start from DefaultAnalysisConfig.
type AnalysisConfig struct {
	Valuation internal.ValuationConfig
	// NewsLimit bounds the headline sample per ticker.
	NewsLimit int
	// PauseBetweenTickers spaces out the per-ticker call bursts to stay under
	// the provider's rate ceiling. Zero disables the pause (tests).
	PauseBetweenTickers time.Duration
	// CacheTTL is how long a completed pass is served without refetching.
	CacheTTL time.Duration
	// KeepPartialOnQuotaExhausted controls the mid-cycle quota policy: false
	// discards the partial pass and keeps serving the last completed one,
	// true serves whatever the cycle completed before the abort.
	KeepPartialOnQuotaExhausted bool
}

func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Valuation:           internal.DefaultValuationConfig(),
		NewsLimit:           3,
		PauseBetweenTickers: time.Second,
		CacheTTL:            time.Hour,
	}
}

// AnalysisService runs refresh cycles and hands out the current result set.
type AnalysisService interface {
	// GetDashboard returns the cached pass when fresh, otherwise runs a new one.
	GetDashboard(ctx context.Context) (*domain.AnalysisResult, error)
	// Refresh always runs a new pass.
	Refresh(ctx context.Context) (*domain.AnalysisResult, error)
}

func NewAnalysisService(
	holdingsRepository repository.HoldingsRepository,
	marketDataRepository repository.MarketDataRepository,
	sentimentService internal.SentimentService,
	config AnalysisConfig,
	onProgress ProgressFunc,
) AnalysisService {
	return &analysisServiceHandler{
		HoldingsRepository:   holdingsRepository,
		MarketDataRepository: marketDataRepository,
		SentimentService:     sentimentService,
		Config:               config,
		OnProgress:           onProgress,
		cache:                newResultCache(config.CacheTTL),
	}
}

type analysisServiceHandler struct {
	HoldingsRepository   repository.HoldingsRepository
	MarketDataRepository repository.MarketDataRepository
	SentimentService     internal.SentimentService
	Config               AnalysisConfig
	OnProgress           ProgressFunc

	cache *resultCache

	mu   sync.Mutex
	last *domain.AnalysisResult
}

func (h *analysisServiceHandler) GetDashboard(ctx context.Context) (*domain.AnalysisResult, error) {
	return h.runCycle(ctx, false)
}

func (h *analysisServiceHandler) Refresh(ctx context.Context) (*domain.AnalysisResult, error) {
	h.cache.invalidate()
	return h.runCycle(ctx, true)
}

func (h *analysisServiceHandler) runCycle(ctx context.Context, force bool) (*domain.AnalysisResult, error) {
	log := logger.FromContext(ctx)
	cycleID := uuid.NewString()

	holdings, contentHash, err := h.HoldingsRepository.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSourceUnavailable) {
			log.Warnw("holdings source unavailable", "cycleID", cycleID, "error", err)
			return &domain.AnalysisResult{
				CycleID:     cycleID,
				State:       domain.StateNoData,
				Notice:      "holdings sheet could not be read",
				CompletedAt: time.Now().UTC(),
			}, nil
		}
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	cacheKey := contentHash + ":" + h.MarketDataRepository.Name()
	if !force {
		if cached, ok := h.cache.get(cacheKey); ok {
			return cached, nil
		}
	}

	log.Infow("starting analysis cycle",
		"cycleID", cycleID,
		"provider", h.MarketDataRepository.Name(),
		"holdings", len(holdings),
	)

	outcomes, quotaExhausted, aborted := h.evaluateHoldings(ctx, holdings)

	records := make([]domain.PositionRecord, 0, len(outcomes))
	skips := make([]domain.TickerOutcome, 0)
	for _, outcome := range outcomes {
		if outcome.Skipped() {
			skips = append(skips, outcome)
			continue
		}
		records = append(records, *outcome.Record)
	}

	// Canonical display order: best performer first.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ProfitRatePct > records[j].ProfitRatePct
	})

	if quotaExhausted {
		return h.quotaResult(cycleID, records, skips, log)
	}

	// A cancelled cycle is incomplete: never cache or swap in a partial pass.
	if aborted {
		log.Warnw("cycle aborted before completion, discarding partial pass", "cycleID", cycleID)
		if last := h.getLast(); last != nil {
			return last, nil
		}
		return nil, fmt.Errorf("analysis cycle aborted: %w", ctx.Err())
	}

	result := &domain.AnalysisResult{
		CycleID:     cycleID,
		State:       domain.StateOK,
		Records:     records,
		Skips:       skips,
		CompletedAt: time.Now().UTC(),
	}
	if len(records) == 0 {
		result.State = domain.StateNoData
		result.Notice = "no usable positions this cycle"
	} else {
		summary, err := internal.Summarize(records)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize records: %w", err)
		}
		result.Summary = summary
	}

	// Only a pass with usable records is cached and swapped in: a transient
	// all-ticker outage should not pin the no-data state for a full ttl.
	if result.State == domain.StateOK {
		h.cache.set(cacheKey, result)
		h.setLast(result)
	}

	log.Infow("analysis cycle complete",
		"cycleID", cycleID,
		"records", len(records),
		"skips", len(skips),
	)
	return result, nil
}

// evaluateHoldings walks the sheet sequentially: one quote + profile + news
// round per holding, then a pause. A quota-exhausted signal from any call
// aborts the remainder of the cycle, as does context cancellation; the
// aborted return distinguishes the latter so the caller discards the partial
// pass instead of serving it.
func (h *analysisServiceHandler) evaluateHoldings(ctx context.Context, holdings []domain.Holding) (outcomes []domain.TickerOutcome, quotaExhausted bool, aborted bool) {
	log := logger.FromContext(ctx)

	outcomes = make([]domain.TickerOutcome, 0, len(holdings))
	for i, holding := range holdings {
		if ctx.Err() != nil {
			return outcomes, false, true
		}
		if h.OnProgress != nil {
			h.OnProgress(holding.Ticker, i+1, len(holdings))
		}

		quote, err := h.MarketDataRepository.GetQuote(ctx, holding.Ticker)
		if err != nil {
			if errors.Is(err, repository.ErrQuotaExhausted) {
				log.Warnw("provider quota exhausted, aborting cycle", "ticker", holding.Ticker)
				return outcomes, true, false
			}
			// A cancelled context surfaces here as a fetch error; that is an
			// aborted cycle, not a skippable ticker.
			if ctx.Err() != nil {
				return outcomes, false, true
			}
			reason := domain.SkipQuoteUnavailable
			if errors.Is(err, repository.ErrTickerNotFound) {
				reason = domain.SkipTickerNotFound
			}
			log.Warnw("skipping holding", "ticker", holding.Ticker, "reason", reason, "error", err)
			outcomes = append(outcomes, domain.TickerOutcome{
				Ticker:     holding.Ticker,
				SkipReason: reason,
				Err:        err,
			})
			continue
		}

		// Profile and news failures are tolerated: the record still gets
		// built with the fallback sector / neutral sentiment.
		sector := ""
		profile, err := h.MarketDataRepository.GetProfile(ctx, holding.Ticker)
		if err != nil {
			if errors.Is(err, repository.ErrQuotaExhausted) {
				log.Warnw("provider quota exhausted, aborting cycle", "ticker", holding.Ticker)
				return outcomes, true, false
			}
			log.Warnw("profile unavailable, using fallback sector", "ticker", holding.Ticker, "error", err)
		} else {
			sector = profile.Sector
		}

		var headlines []string
		news, err := h.MarketDataRepository.GetNews(ctx, holding.Ticker, h.Config.NewsLimit)
		if err != nil {
			if errors.Is(err, repository.ErrQuotaExhausted) {
				log.Warnw("provider quota exhausted, aborting cycle", "ticker", holding.Ticker)
				return outcomes, true, false
			}
			log.Warnw("news unavailable, defaulting to neutral sentiment", "ticker", holding.Ticker, "error", err)
		} else {
			headlines = news.Titles()
		}
		sentimentScore := h.SentimentService.Score(headlines)

		snapshot := domain.QuoteSnapshot{
			Ticker:  holding.Ticker,
			Price:   quote.Price,
			PERatio: quote.PERatio,
			Sector:  sector,
		}
		outcomes = append(outcomes, internal.Evaluate(holding, snapshot, sentimentScore, h.Config.Valuation))

		if h.Config.PauseBetweenTickers > 0 && i < len(holdings)-1 {
			select {
			case <-ctx.Done():
				return outcomes, false, true
			case <-time.After(h.Config.PauseBetweenTickers):
			}
		}
	}
	return outcomes, false, false
}

const quotaNotice = "market data quota exhausted, come back after the daily limit resets"

// quotaResult applies the configured partial-results policy. Quota results are
// never cached: the next request should probe whether the quota has reset.
func (h *analysisServiceHandler) quotaResult(cycleID string, records []domain.PositionRecord, skips []domain.TickerOutcome, log *zap.SugaredLogger) (*domain.AnalysisResult, error) {
	if h.Config.KeepPartialOnQuotaExhausted {
		result := &domain.AnalysisResult{
			CycleID:     cycleID,
			State:       domain.StateQuotaExhausted,
			Records:     records,
			Skips:       skips,
			Notice:      quotaNotice,
			CompletedAt: time.Now().UTC(),
		}
		if len(records) > 0 {
			summary, err := internal.Summarize(records)
			if err != nil {
				return nil, fmt.Errorf("failed to summarize partial records: %w", err)
			}
			result.Summary = summary
		}
		h.setLast(result)
		return result, nil
	}

	// Discard the partial pass; fall back to the last completed one.
	if last := h.getLast(); last != nil {
		log.Warnw("discarding partial pass, serving last completed cycle", "cycleID", cycleID, "servedCycleID", last.CycleID)
		fallback := *last
		fallback.State = domain.StateQuotaExhausted
		fallback.Notice = quotaNotice
		return &fallback, nil
	}

	return &domain.AnalysisResult{
		CycleID:     cycleID,
		State:       domain.StateQuotaExhausted,
		Notice:      quotaNotice,
		CompletedAt: time.Now().UTC(),
	}, nil
}

func (h *analysisServiceHandler) setLast(result *domain.AnalysisResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = result
}

func (h *analysisServiceHandler) getLast() *domain.AnalysisResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}
