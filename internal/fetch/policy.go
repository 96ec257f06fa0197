package fetch

import (
	"time"

	"github.com/rmoran/folio-data/internal/config"
)

// Policy declares how cached fetches behave. It is configuration only;
// the Cache enforces it.
type Policy struct {
	StaleTime    time.Duration // how long a result counts as fresh
	CacheTime    time.Duration // how long an unused entry survives before Purge evicts it
	Retries      int           // retry attempts after the first failure
	RetryBackoff time.Duration // base backoff, doubled per attempt with jitter
}

// DefaultPolicy returns the policy the dashboard ships with.
func DefaultPolicy() Policy {
	return Policy{
		StaleTime:    30 * time.Second,
		CacheTime:    5 * time.Minute,
		Retries:      3,
		RetryBackoff: 500 * time.Millisecond,
	}
}

// PolicyFromConfig builds a Policy from the cache config section,
// filling unset fields from DefaultPolicy.
func PolicyFromConfig(cfg config.CacheConfig) Policy {
	p := DefaultPolicy()
	if cfg.StaleTime > 0 {
		p.StaleTime = cfg.StaleTime
	}
	if cfg.CacheTime > 0 {
		p.CacheTime = cfg.CacheTime
	}
	if cfg.Retries > 0 {
		p.Retries = cfg.Retries
	}
	if cfg.RetryBackoff > 0 {
		p.RetryBackoff = cfg.RetryBackoff
	}
	return p
}
