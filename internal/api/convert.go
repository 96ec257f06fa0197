package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/rmoran/folio-data/internal/model"
)

// DollarsToPrice converts a dollar string to internal representation.
// "189.43" -> 1894300, "0.5250" -> 5250
// Returns 0 for empty or invalid input.
func DollarsToPrice(dollars string) int64 {
	if dollars == "" {
		return 0
	}

	dollars = strings.TrimSpace(dollars)

	f, err := strconv.ParseFloat(dollars, 64)
	if err != nil {
		return 0
	}

	// Multiply by 10,000 and round
	return int64(f*10000 + 0.5)
}

// ParseTimestamp parses an ISO 8601 timestamp to microseconds since epoch.
// Returns 0 for empty or invalid input.
func ParseTimestamp(iso string) int64 {
	if iso == "" {
		return 0
	}

	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		// Try without timezone
		t, err = time.Parse("2006-01-02T15:04:05", iso)
		if err != nil {
			return 0
		}
	}

	return t.UnixMicro()
}

// NowMicro returns the current time in microseconds since epoch.
func NowMicro() int64 {
	return time.Now().UnixMicro()
}

// ConvertQuote converts an API quote to the internal model.
func ConvertQuote(q APIQuote) model.Quote {
	return model.Quote{
		Symbol:     q.Symbol,
		Name:       q.Name,
		Last:       DollarsToPrice(q.LastDollars),
		Bid:        DollarsToPrice(q.BidDollars),
		Ask:        DollarsToPrice(q.AskDollars),
		PrevClose:  DollarsToPrice(q.PrevCloseDollars),
		Volume:     q.Volume,
		UpdatedAt:  ParseTimestamp(q.UpdatedTime),
		MarketOpen: q.MarketOpen,
	}
}

// ConvertPosition converts an API position to the internal model.
func ConvertPosition(p APIPosition) model.Position {
	return model.Position{
		Symbol:    p.Symbol,
		Quantity:  p.Quantity,
		AvgCost:   DollarsToPrice(p.AvgCostDollars),
		UpdatedAt: ParseTimestamp(p.UpdatedTime),
	}
}

// ConvertWatchlist converts an API watchlist to the internal model.
func ConvertWatchlist(w APIWatchlist) model.Watchlist {
	return model.Watchlist{
		ID:        w.ID,
		Name:      w.Name,
		Symbols:   w.Symbols,
		UpdatedAt: ParseTimestamp(w.UpdatedTime),
	}
}

// ConvertNewsItem converts an API news item to the internal model.
func ConvertNewsItem(n APINewsItem) model.NewsItem {
	return model.NewsItem{
		ID:          n.ID,
		Headline:    n.Headline,
		Source:      n.Source,
		URL:         n.URL,
		Symbols:     n.Symbols,
		PublishedAt: ParseTimestamp(n.PublishedTime),
	}
}

// ConvertValuePoint converts an API portfolio sample to the internal model.
func ConvertValuePoint(p APIValuePoint) model.ValuePoint {
	return model.ValuePoint{
		TS:    ParseTimestamp(p.Time),
		Value: DollarsToPrice(p.ValueDollars),
	}
}
