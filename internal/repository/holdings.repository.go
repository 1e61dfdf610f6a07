package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"portfoliopulse/internal/domain"
	"portfoliopulse/internal/logger"

	"github.com/gocarina/gocsv"
)

// ErrSourceUnavailable means the holdings sheet could not be read at all.
// Non-fatal: the caller shows the no-data state.
var ErrSourceUnavailable = errors.New("holdings source unavailable")

// HoldingsRepository loads the user's holdings rows. The returned hash
// fingerprints the raw sheet content and keys the result cache.
type HoldingsRepository interface {
	Load(ctx context.Context) (holdings []domain.Holding, contentHash string, err error)
}

// NewSheetHoldingsRepository reads a CSV holdings sheet from an http(s) URL
// (Google Sheets csv export, as the production setup uses) or a local path.
func NewSheetHoldingsRepository(source string) HoldingsRepository {
	return sheetHoldingsRepositoryHandler{
		source: source,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type sheetHoldingsRepositoryHandler struct {
	source string
	client *http.Client
}

// holdingRow matches the sheet's column headers: 티커 (ticker),
// 수량 (quantity), 평단가_원 (average cost, won).
type holdingRow struct {
	Ticker     string  `csv:"티커"`
	Quantity   float64 `csv:"수량"`
	AvgCostKRW float64 `csv:"평단가_원"`
}

func (h sheetHoldingsRepositoryHandler) Load(ctx context.Context) ([]domain.Holding, string, error) {
	log := logger.FromContext(ctx)

	raw, err := h.read(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var rows []*holdingRow
	if err := gocsv.UnmarshalBytes(raw, &rows); err != nil {
		return nil, "", fmt.Errorf("%w: malformed csv: %v", ErrSourceUnavailable, err)
	}

	holdings := make([]domain.Holding, 0, len(rows))
	for _, row := range rows {
		holding := domain.Holding{
			Ticker:     domain.NormalizeTicker(row.Ticker),
			Quantity:   row.Quantity,
			AvgCostKRW: row.AvgCostKRW,
		}
		if !holding.Valid() {
			log.Warnw("dropping malformed holdings row",
				"ticker", row.Ticker,
				"quantity", row.Quantity,
				"avgCost", row.AvgCostKRW,
			)
			continue
		}
		holdings = append(holdings, holding)
	}

	sum := sha256.Sum256(raw)
	return holdings, hex.EncodeToString(sum[:]), nil
}

func (h sheetHoldingsRepositoryHandler) read(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(h.source, "http://") && !strings.HasPrefix(h.source, "https://") {
		return os.ReadFile(h.source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
