package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rmoran/folio-data/internal/endpoints"
)

// GetMarkets fetches one page of listed instruments.
func (c *Client) GetMarkets(ctx context.Context, opts GetMarketsOptions) (*MarketsResponse, error) {
	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}
	if opts.Exchange != "" {
		query.Set("exchange", opts.Exchange)
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}

	var resp MarketsResponse
	if err := c.get(ctx, endpoints.Markets, query, &resp); err != nil {
		return nil, fmt.Errorf("get markets: %w", err)
	}
	return &resp, nil
}

// GetAllMarkets follows cursors until the listing is exhausted.
func (c *Client) GetAllMarkets(ctx context.Context, opts GetMarketsOptions) ([]APIMarket, error) {
	var all []APIMarket

	for {
		page, err := c.GetMarkets(ctx, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Markets...)

		if page.Cursor == "" {
			return all, nil
		}
		opts.Cursor = page.Cursor
	}
}
