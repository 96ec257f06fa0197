package stream

import (
	"fmt"
	"net/url"
	"strings"
)

// ResolveEndpoint turns a stream target into a dialable WebSocket URL.
//
// A target that already carries a ws:// or wss:// scheme (case-insensitive)
// is returned verbatim. Anything else is treated as a path relative to the
// dashboard origin: an https origin yields wss, http yields ws, the host
// (including port) is preserved, and the path is normalized to a single
// leading slash. Query strings and fragments ride along untouched.
func ResolveEndpoint(target, origin string) (string, error) {
	if hasWebSocketScheme(target) {
		return target, nil
	}

	if origin == "" {
		return "", fmt.Errorf("resolve endpoint %q: no origin configured", target)
	}

	u, err := url.Parse(origin)
	if err != nil {
		return "", fmt.Errorf("resolve endpoint %q: parse origin: %w", target, err)
	}

	var scheme string
	switch strings.ToLower(u.Scheme) {
	case "https":
		scheme = "wss"
	case "http":
		scheme = "ws"
	default:
		return "", fmt.Errorf("resolve endpoint %q: unsupported origin scheme %q", target, u.Scheme)
	}

	if u.Host == "" {
		return "", fmt.Errorf("resolve endpoint %q: origin %q has no host", target, origin)
	}

	path := target
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return scheme + "://" + u.Host + path, nil
}

// hasWebSocketScheme reports whether s starts with ws:// or wss://,
// case-insensitive.
func hasWebSocketScheme(s string) bool {
	i := strings.Index(s, "://")
	if i < 0 {
		return false
	}
	switch strings.ToLower(s[:i]) {
	case "ws", "wss":
		return true
	}
	return false
}
