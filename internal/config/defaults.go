package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL          = "https://app.folio.dev"
	DefaultStreamEndpoint   = "/api/v1/stream"
	DefaultAPITimeout       = 30 * time.Second
	DefaultMaxRetries       = 3
	DefaultStaleTime        = 30 * time.Second
	DefaultCacheTime        = 5 * time.Minute
	DefaultCacheRetries     = 3
	DefaultRetryBackoff     = 500 * time.Millisecond
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultWriteTimeout     = 5 * time.Second
	DefaultPingInterval     = 30 * time.Second
	DefaultDBPort           = 5432
	DefaultDBSSLMode        = "prefer"
	DefaultMaxConns         = 10
	DefaultMinConns         = 2
	DefaultBatchSize        = 1000
	DefaultFlushInterval    = 1 * time.Second
	DefaultBufferSize       = 10000
	DefaultServerPort       = 8080
)

func (c *DashboardConfig) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}

	// Stream defaults
	if c.Stream.Endpoint == "" {
		c.Stream.Endpoint = DefaultStreamEndpoint
	}
	if c.Stream.Origin == "" {
		c.Stream.Origin = c.API.BaseURL
	}
	if c.Stream.HandshakeTimeout == 0 {
		c.Stream.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.Stream.WriteTimeout == 0 {
		c.Stream.WriteTimeout = DefaultWriteTimeout
	}
	if c.Stream.PingInterval == 0 {
		c.Stream.PingInterval = DefaultPingInterval
	}

	// Cache defaults
	if c.Cache.StaleTime == 0 {
		c.Cache.StaleTime = DefaultStaleTime
	}
	if c.Cache.CacheTime == 0 {
		c.Cache.CacheTime = DefaultCacheTime
	}
	if c.Cache.Retries == 0 {
		c.Cache.Retries = DefaultCacheRetries
	}
	if c.Cache.RetryBackoff == 0 {
		c.Cache.RetryBackoff = DefaultRetryBackoff
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Recorder defaults
	if c.Recorder.BatchSize == 0 {
		c.Recorder.BatchSize = DefaultBatchSize
	}
	if c.Recorder.FlushInterval == 0 {
		c.Recorder.FlushInterval = DefaultFlushInterval
	}
	if c.Recorder.BufferSize == 0 {
		c.Recorder.BufferSize = DefaultBufferSize
	}

	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
}
