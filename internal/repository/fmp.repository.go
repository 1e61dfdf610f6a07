package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"portfoliopulse/internal/domain"
)

const fmpDefaultEndpoint = "https://financialmodelingprep.com"

// NewFMPRepository builds a Financial Modeling Prep client. endpoint is
// overridable for tests; pass "" for the real API.
func NewFMPRepository(apiKey string, endpoint string) MarketDataRepository {
	if endpoint == "" {
		endpoint = fmpDefaultEndpoint
	}
	return &fmpRepositoryHandler{
		apiKey:   apiKey,
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type fmpRepositoryHandler struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func (h fmpRepositoryHandler) Name() string {
	return "fmp"
}

type fmpQuote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	PE     float64 `json:"pe"`
}

func (h fmpRepositoryHandler) GetQuote(ctx context.Context, ticker string) (*domain.Quote, error) {
	var quotes []fmpQuote
	err := h.getJSON(ctx, "/api/v3/quote/"+url.PathEscape(ticker), nil, &quotes)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no quote for %s: %w", ticker, ErrTickerNotFound)
	}
	return &domain.Quote{
		Ticker:  ticker,
		Price:   quotes[0].Price,
		PERatio: quotes[0].PE,
	}, nil
}

type fmpProfile struct {
	Symbol string `json:"symbol"`
	Sector string `json:"sector"`
}

func (h fmpRepositoryHandler) GetProfile(ctx context.Context, ticker string) (*domain.CompanyProfile, error) {
	var profiles []fmpProfile
	err := h.getJSON(ctx, "/api/v3/profile/"+url.PathEscape(ticker), nil, &profiles)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profile for %s: %w", ticker, ErrTickerNotFound)
	}
	return &domain.CompanyProfile{
		Ticker: ticker,
		Sector: profiles[0].Sector,
	}, nil
}

type fmpNewsItem struct {
	Title string `json:"title"`
	Site  string `json:"site"`
}

func (h fmpRepositoryHandler) GetNews(ctx context.Context, ticker string, limit int) (domain.NewsSample, error) {
	params := url.Values{}
	params.Set("tickers", ticker)
	params.Set("limit", strconv.Itoa(limit))

	var items []fmpNewsItem
	err := h.getJSON(ctx, "/api/v3/stock_news", params, &items)
	if err != nil {
		return nil, err
	}

	sample := make(domain.NewsSample, 0, len(items))
	for _, item := range items {
		sample = append(sample, domain.NewsItem{Title: item.Title, Site: item.Site})
	}
	return sample, nil
}

// fmpErrorBody is FMP's error envelope. Quota exhaustion comes back as a
// "Limit Reach" message, distinct from unknown-symbol responses.
type fmpErrorBody struct {
	ErrorMessage string `json:"Error Message"`
}

func (h fmpRepositoryHandler) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", h.apiKey)
	reqURL := h.endpoint + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("fmp returned status 429: %w", ErrQuotaExhausted)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fmp returned status %d: %s", resp.StatusCode, string(body))
	}

	// FMP also reports quota exhaustion inside a 200 error envelope.
	var errBody fmpErrorBody
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.ErrorMessage != "" {
		if strings.Contains(strings.ToLower(errBody.ErrorMessage), "limit reach") {
			return fmt.Errorf("fmp: %s: %w", errBody.ErrorMessage, ErrQuotaExhausted)
		}
		return fmt.Errorf("fmp error: %s", errBody.ErrorMessage)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
