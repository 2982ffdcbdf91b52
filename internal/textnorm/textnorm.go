// Package textnorm canonicalizes free-text tokens before dictionary lookups so
// that visually identical tokens from different feeds collide.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies Unicode compatibility normalization (NFKC) and trims
// surrounding whitespace. Full-width and half-width forms fold to one
// representation, e.g. "ＣＯＶＩＤ－１９ " -> "COVID-19". An empty (missing)
// token is returned unchanged.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(norm.NFKC.String(s))
}

// NormalizeKeys returns a copy of m with every key normalized. When two keys
// collide after normalization the later one in iteration order wins, so
// callers should not rely on which of two colliding entries survives.
func NormalizeKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[Normalize(k)] = v
	}
	return out
}
