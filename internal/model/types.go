package model

import "github.com/google/uuid"

// Quote is the current trading snapshot for one symbol.
type Quote struct {
	Symbol     string // Primary key (e.g., "AAPL")
	Name       string // Display name
	Last       int64  // Last trade price (hundredths of a cent)
	Bid        int64  // Best bid (hundredths of a cent)
	Ask        int64  // Best ask (hundredths of a cent)
	PrevClose  int64  // Previous session close (hundredths of a cent)
	Volume     int64  // Session volume
	UpdatedAt  int64  // Last update (µs since epoch)
	MarketOpen bool   // Whether the venue is currently trading
}

// Change returns the price change against the previous close.
func (q Quote) Change() int64 {
	return q.Last - q.PrevClose
}

// Spread returns the bid/ask spread, or 0 when either side is missing.
func (q Quote) Spread() int64 {
	if q.Bid == 0 || q.Ask == 0 {
		return 0
	}
	return q.Ask - q.Bid
}

// Tick is one live price update from the stream.
type Tick struct {
	ID         uuid.UUID // Tick ID assigned by the feed
	Symbol     string    // Symbol the update is for
	Price      int64     // Trade price (hundredths of a cent)
	Size       int64     // Trade size
	ExchangeTS int64     // Venue timestamp (µs since epoch)
	ReceivedAt int64     // Local receive timestamp (µs since epoch)
}

// Position is an aggregate holding in the portfolio.
type Position struct {
	Symbol    string // Symbol held
	Quantity  int64  // Shares held (negative = short)
	AvgCost   int64  // Average cost per share (hundredths of a cent)
	UpdatedAt int64  // Last update (µs since epoch)
}

// MarketValue returns the position value at the given last price.
func (p Position) MarketValue(last int64) int64 {
	return p.Quantity * last
}

// UnrealizedPL returns the open profit or loss at the given last price.
func (p Position) UnrealizedPL(last int64) int64 {
	return p.Quantity * (last - p.AvgCost)
}

// Lot is a single fill contributing to a position.
type Lot struct {
	ID         uuid.UUID // Fill ID from the broker
	Symbol     string    // Symbol traded
	Quantity   int64     // Shares in this fill
	Price      int64     // Fill price (hundredths of a cent)
	ExecutedTS int64     // Execution time (µs since epoch)
}

// Watchlist is a named, ordered set of symbols.
type Watchlist struct {
	ID        string   // Watchlist ID
	Name      string   // Display name
	Symbols   []string // Symbols in display order
	UpdatedAt int64    // Last update (µs since epoch)
}

// NewsItem is one headline from the dashboard's news feed.
type NewsItem struct {
	ID          string   // Article ID
	Headline    string   // Headline text
	Source      string   // Publisher name
	URL         string   // Canonical article URL
	Symbols     []string // Symbols the article mentions
	PublishedAt int64    // Publication time (µs since epoch)
}

// ValuePoint is one sample of total portfolio value over time.
type ValuePoint struct {
	TS    int64 // Sample time (µs since epoch)
	Value int64 // Portfolio value (hundredths of a cent)
}
