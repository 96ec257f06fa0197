package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rmoran/folio-data/internal/config"
)

// Client provides access to the dashboard REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger

	maxRetries   int
	retryBackoff time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a REST API client with the shipped defaults.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: config.DefaultAPITimeout,
		},
		logger:       slog.Default(),
		maxRetries:   config.DefaultMaxRetries,
		retryBackoff: config.DefaultRetryBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewClientFromConfig creates a client from the api config section.
// Options applied afterwards win over config values.
func NewClientFromConfig(cfg config.APIConfig, opts ...ClientOption) *Client {
	base := []ClientOption{}
	if cfg.Timeout > 0 {
		base = append(base, WithTimeout(cfg.Timeout))
	}
	if cfg.MaxRetries > 0 {
		base = append(base, WithRetries(cfg.MaxRetries, config.DefaultRetryBackoff))
	}
	return NewClient(cfg.BaseURL, cfg.APIKey, append(base, opts...)...)
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}
