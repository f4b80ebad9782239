// Package urlutil provides URL helpers used for same-origin checks.
package urlutil

import (
	"net/url"
	"strings"
)

// GetOrigin returns the origin (scheme://host[:port]) of rawURL.
// The scheme and host are lowercased; an explicit port is kept as written.
// Returns false when the URL has no scheme or no host (e.g. "about:blank").
func GetOrigin(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if u.Scheme == "" || u.Host == "" {
		return "", false
	}

	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host), true
}

// SameOrigin reports whether a and b share an origin.
// URLs without an origin never match anything.
func SameOrigin(a, b string) bool {
	originA, okA := GetOrigin(a)
	originB, okB := GetOrigin(b)
	return okA && okB && originA == originB
}
