package domain

// Quote is the raw price/multiple pair returned by a market data provider.
// Price is in the provider's currency (USD). PERatio == 0 means the multiple
// is not meaningful (negative or undefined earnings).
type Quote struct {
	Ticker  string
	Price   float64
	PERatio float64
}

// CompanyProfile carries the provider's classification for a ticker. Sector
// uses the provider's taxonomy; it is localized at evaluation time.
type CompanyProfile struct {
	Ticker string
	Sector string
}

// NewsItem is a single headline for a ticker.
type NewsItem struct {
	Title string
	Site  string
}

// NewsSample is the bounded set of recent headlines fed to the sentiment
// scorer.
type NewsSample []NewsItem

// Titles extracts the headline strings in published order.
func (s NewsSample) Titles() []string {
	titles := make([]string, 0, len(s))
	for _, item := range s {
		titles = append(titles, item.Title)
	}
	return titles
}

// QuoteSnapshot is the assembled per-ticker market view the valuation engine
// consumes: quote plus localized-sector input. Fetched fresh each cycle, never
// persisted.
type QuoteSnapshot struct {
	Ticker  string
	Price   float64
	PERatio float64
	Sector  string
}
