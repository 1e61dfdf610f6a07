package repository

import (
	"context"
	"fmt"

	"portfoliopulse/internal/domain"

	"github.com/piquette/finance-go/equity"
)

// NewYahooRepository builds the Yahoo-backed alternate provider. Yahoo's quote
// surface has no sector classification and no headline feed, so GetProfile
// returns an empty sector (localized to the fallback label downstream) and
// GetNews returns an empty sample (scored as neutral).
func NewYahooRepository() MarketDataRepository {
	return yahooRepositoryHandler{}
}

type yahooRepositoryHandler struct{}

func (h yahooRepositoryHandler) Name() string {
	return "yahoo"
}

func (h yahooRepositoryHandler) GetQuote(ctx context.Context, ticker string) (*domain.Quote, error) {
	q, err := equity.Get(ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to get yahoo quote for %s: %w", ticker, err)
	}
	if q == nil {
		return nil, fmt.Errorf("no yahoo quote for %s: %w", ticker, ErrTickerNotFound)
	}
	return &domain.Quote{
		Ticker:  ticker,
		Price:   q.RegularMarketPrice,
		PERatio: q.TrailingPE,
	}, nil
}

func (h yahooRepositoryHandler) GetProfile(ctx context.Context, ticker string) (*domain.CompanyProfile, error) {
	return &domain.CompanyProfile{Ticker: ticker}, nil
}

func (h yahooRepositoryHandler) GetNews(ctx context.Context, ticker string, limit int) (domain.NewsSample, error) {
	return domain.NewsSample{}, nil
}
