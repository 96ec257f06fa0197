package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rmoran/folio-data/internal/endpoints"
	"github.com/rmoran/folio-data/internal/model"
)

// GetNews fetches recent headlines, optionally filtered by symbols.
// A limit of 0 leaves paging to the server default.
func (c *Client) GetNews(ctx context.Context, symbols []string, limit int) ([]model.NewsItem, error) {
	query := url.Values{}
	if len(symbols) > 0 {
		query.Set("symbols", strings.Join(symbols, ","))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp NewsResponse
	if err := c.get(ctx, endpoints.News, query, &resp); err != nil {
		return nil, fmt.Errorf("get news: %w", err)
	}

	items := make([]model.NewsItem, 0, len(resp.Items))
	for _, n := range resp.Items {
		items = append(items, ConvertNewsItem(n))
	}
	return items, nil
}
