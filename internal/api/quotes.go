package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rmoran/folio-data/internal/endpoints"
	"github.com/rmoran/folio-data/internal/model"
)

// GetQuote fetches the current quote for one symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	var resp SingleQuoteResponse
	if err := c.get(ctx, endpoints.Quote(symbol), nil, &resp); err != nil {
		return nil, fmt.Errorf("get quote %s: %w", symbol, err)
	}

	q := ConvertQuote(resp.Quote)
	return &q, nil
}

// GetQuotes fetches current quotes for a batch of symbols.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]model.Quote, error) {
	query := url.Values{}
	if len(symbols) > 0 {
		query.Set("symbols", strings.Join(symbols, ","))
	}

	var resp QuotesResponse
	if err := c.get(ctx, endpoints.Quotes, query, &resp); err != nil {
		return nil, fmt.Errorf("get quotes: %w", err)
	}

	quotes := make([]model.Quote, 0, len(resp.Quotes))
	for _, q := range resp.Quotes {
		quotes = append(quotes, ConvertQuote(q))
	}
	return quotes, nil
}
