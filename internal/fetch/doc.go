// Package fetch provides the dashboard's data-fetching cache.
//
// A Policy declares staleness, eviction, and retry behavior; a Cache
// enforces it in front of arbitrary fetch functions, typically the REST
// API client. The stream layer does not use this cache.
package fetch
