package api

// SingleQuoteResponse from GET /quotes/{symbol}
type SingleQuoteResponse struct {
	Quote APIQuote `json:"quote"`
}

// QuotesResponse from GET /quotes
type QuotesResponse struct {
	Quotes []APIQuote `json:"quotes"`
}

// APIQuote represents a quote from the dashboard API.
type APIQuote struct {
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	MarketOpen bool   `json:"market_open"`

	// Prices as dollar strings (sub-penny)
	LastDollars      string `json:"last_dollars"`
	BidDollars       string `json:"bid_dollars"`
	AskDollars       string `json:"ask_dollars"`
	PrevCloseDollars string `json:"prev_close_dollars"`

	// Volume
	Volume int64 `json:"volume"`

	// Timestamps (ISO 8601)
	UpdatedTime string `json:"updated_time"`
}

// MarketsResponse from GET /markets
type MarketsResponse struct {
	Markets []APIMarket `json:"markets"`
	Cursor  string      `json:"cursor"`
}

// APIMarket represents a listed instrument from the dashboard API.
type APIMarket struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Status   string `json:"status"` // "open", "halted", "closed", "delisted"
}

// PositionsResponse from GET /portfolio/positions
type PositionsResponse struct {
	Positions []APIPosition `json:"positions"`
}

// APIPosition represents a portfolio position from the dashboard API.
type APIPosition struct {
	Symbol         string `json:"symbol"`
	Quantity       int64  `json:"quantity"`
	AvgCostDollars string `json:"avg_cost_dollars"`
	UpdatedTime    string `json:"updated_time"`
}

// WatchlistsResponse from GET /watchlists
type WatchlistsResponse struct {
	Watchlists []APIWatchlist `json:"watchlists"`
}

// SingleWatchlistResponse from GET /watchlists/{id}
type SingleWatchlistResponse struct {
	Watchlist APIWatchlist `json:"watchlist"`
}

// APIWatchlist represents a watchlist from the dashboard API.
type APIWatchlist struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Symbols     []string `json:"symbols"`
	UpdatedTime string   `json:"updated_time"`
}

// NewsResponse from GET /news
type NewsResponse struct {
	Items []APINewsItem `json:"items"`
}

// APINewsItem represents a news headline from the dashboard API.
type APINewsItem struct {
	ID            string   `json:"id"`
	Headline      string   `json:"headline"`
	Source        string   `json:"source"`
	URL           string   `json:"url"`
	Symbols       []string `json:"symbols"`
	PublishedTime string   `json:"published_time"`
}

// PortfolioHistoryResponse from GET /portfolio/history
type PortfolioHistoryResponse struct {
	Points []APIValuePoint `json:"points"`
}

// APIValuePoint represents one portfolio value sample from the dashboard API.
type APIValuePoint struct {
	Time         string `json:"time"`
	ValueDollars string `json:"value_dollars"`
}

// GetMarketsOptions configures a GetMarkets request.
type GetMarketsOptions struct {
	Limit    int
	Cursor   string
	Exchange string
	Status   string
}
