package repository

import (
	"context"
	"errors"

	"portfoliopulse/internal/domain"
)

// ErrQuotaExhausted means the provider's daily call budget is gone. It is
// cycle-fatal: retrying other tickers would burn the same wall.
var ErrQuotaExhausted = errors.New("market data provider quota exhausted")

// ErrTickerNotFound means the provider does not know the symbol. Per-ticker,
// recoverable by skipping the holding.
var ErrTickerNotFound = errors.New("ticker not found")

// MarketDataRepository is the swappable provider surface. The three calls may
// fail or come back empty independently; callers tolerate partial
// availability, except that a missing quote skips the holding.
type MarketDataRepository interface {
	GetQuote(ctx context.Context, ticker string) (*domain.Quote, error)
	GetProfile(ctx context.Context, ticker string) (*domain.CompanyProfile, error)
	GetNews(ctx context.Context, ticker string, limit int) (domain.NewsSample, error)
	Name() string
}
