package config

import "time"

// DashboardConfig is the root configuration for the dashboard data plane.
type DashboardConfig struct {
	Instance InstanceConfig `yaml:"instance"`
	API      APIConfig      `yaml:"api"`
	Stream   StreamConfig   `yaml:"stream"`
	Cache    CacheConfig    `yaml:"cache"`
	Database DBConfig       `yaml:"database"`
	Recorder RecorderConfig `yaml:"recorder"`
	Server   ServerConfig   `yaml:"server"`
}

// InstanceConfig identifies this process.
type InstanceConfig struct {
	ID  string `yaml:"id"`
	Env string `yaml:"env"`
}

// APIConfig holds dashboard REST API settings.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// StreamConfig holds WebSocket stream client settings.
type StreamConfig struct {
	Endpoint         string        `yaml:"endpoint"` // ws(s) URL or path resolved against origin
	Origin           string        `yaml:"origin"`
	AutoConnect      bool          `yaml:"auto_connect"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	PingInterval     time.Duration `yaml:"ping_interval"`
}

// CacheConfig holds the data-fetching cache policy.
type CacheConfig struct {
	StaleTime    time.Duration `yaml:"stale_time"`
	CacheTime    time.Duration `yaml:"cache_time"`
	Retries      int           `yaml:"retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// DBConfig holds the tick-store connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// RecorderConfig holds tick recorder settings.
type RecorderConfig struct {
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	BufferSize    int           `yaml:"buffer_size"`
}

// ServerConfig holds the health/debug HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}
