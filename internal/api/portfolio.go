package api

import (
	"context"
	"fmt"

	"github.com/rmoran/folio-data/internal/endpoints"
	"github.com/rmoran/folio-data/internal/model"
)

// GetPositions fetches the portfolio's current positions.
func (c *Client) GetPositions(ctx context.Context) ([]model.Position, error) {
	var resp PositionsResponse
	if err := c.get(ctx, endpoints.PortfolioPositions(), nil, &resp); err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}

	positions := make([]model.Position, 0, len(resp.Positions))
	for _, p := range resp.Positions {
		positions = append(positions, ConvertPosition(p))
	}
	return positions, nil
}

// GetPortfolioHistory fetches the portfolio's value-over-time samples.
func (c *Client) GetPortfolioHistory(ctx context.Context) ([]model.ValuePoint, error) {
	var resp PortfolioHistoryResponse
	if err := c.get(ctx, endpoints.PortfolioHistory(), nil, &resp); err != nil {
		return nil, fmt.Errorf("get portfolio history: %w", err)
	}

	points := make([]model.ValuePoint, 0, len(resp.Points))
	for _, p := range resp.Points {
		points = append(points, ConvertValuePoint(p))
	}
	return points, nil
}

// GetWatchlists fetches all of the user's watchlists.
func (c *Client) GetWatchlists(ctx context.Context) ([]model.Watchlist, error) {
	var resp WatchlistsResponse
	if err := c.get(ctx, endpoints.Watchlists, nil, &resp); err != nil {
		return nil, fmt.Errorf("get watchlists: %w", err)
	}

	lists := make([]model.Watchlist, 0, len(resp.Watchlists))
	for _, w := range resp.Watchlists {
		lists = append(lists, ConvertWatchlist(w))
	}
	return lists, nil
}

// GetWatchlist fetches a single watchlist by ID.
func (c *Client) GetWatchlist(ctx context.Context, id string) (*model.Watchlist, error) {
	var resp SingleWatchlistResponse
	if err := c.get(ctx, endpoints.Watchlist(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("get watchlist %s: %w", id, err)
	}

	w := ConvertWatchlist(resp.Watchlist)
	return &w, nil
}
