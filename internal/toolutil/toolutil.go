// Package toolutil provides input validation shared by the MCP tools and the REST API.
package toolutil

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidInput marks errors caused by the caller's arguments.
var ErrInvalidInput = errors.New("invalid input")

// MaxQueryLen bounds free-text queries.
const MaxQueryLen = 500

// RequireQuery trims q and rejects empty or oversized queries.
func RequireQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if len([]rune(q)) > MaxQueryLen {
		return "", fmt.Errorf("%w: query longer than %d characters", ErrInvalidInput, MaxQueryLen)
	}
	return q, nil
}

// RequireURL trims raw and accepts only absolute http(s) URLs.
func RequireURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidInput, raw)
	}
	return raw, nil
}

// ClampWait bounds a render wait in milliseconds to [0, maxMs].
func ClampWait(ms, maxMs int) int {
	if ms < 0 {
		return 0
	}
	if ms > maxMs {
		return maxMs
	}
	return ms
}
