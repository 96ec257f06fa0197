// Package api provides the REST client for the dashboard backend.
//
// Paths come from the endpoints table; retries use exponential backoff
// with jitter, retrying only 5xx and 429 responses.
package api
