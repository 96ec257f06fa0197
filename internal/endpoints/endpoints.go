// Package endpoints maps logical dashboard resources to API path strings.
//
// Both the REST client and the stream client build their paths from this
// table so the two layers cannot drift apart.
package endpoints

// Versioned path roots.
const (
	Markets    = "/api/v1/markets"
	Quotes     = "/api/v1/quotes"
	Portfolio  = "/api/v1/portfolio"
	Watchlists = "/api/v1/watchlists"
	News       = "/api/v1/news"

	// Stream is the WebSocket path for live quote updates.
	Stream = "/api/v1/stream"
)

// Market returns the path for a single market.
func Market(ticker string) string {
	return Markets + "/" + ticker
}

// Quote returns the path for a single symbol quote.
func Quote(symbol string) string {
	return Quotes + "/" + symbol
}

// Watchlist returns the path for a single watchlist.
func Watchlist(id string) string {
	return Watchlists + "/" + id
}

// PortfolioPositions returns the path for the positions listing.
func PortfolioPositions() string {
	return Portfolio + "/positions"
}

// PortfolioHistory returns the path for portfolio value history.
func PortfolioHistory() string {
	return Portfolio + "/history"
}
