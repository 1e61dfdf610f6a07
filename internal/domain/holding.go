package domain

import "strings"

// Holding is one row of the holdings sheet: what the user owns and what they
// paid for it. AvgCostKRW is the average cost per share in won.
type Holding struct {
	Ticker     string
	Quantity   float64
	AvgCostKRW float64
}

// NormalizeTicker matches the sheet's free-form ticker cells to provider
// symbols ("  aapl " -> "AAPL").
func NormalizeTicker(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Valid reports whether the row is usable. Zero or negative quantity/cost rows
// are treated as malformed and dropped at load time.
func (h Holding) Valid() bool {
	return h.Ticker != "" && h.Quantity > 0 && h.AvgCostKRW > 0
}
