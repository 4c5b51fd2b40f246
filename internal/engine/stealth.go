package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Re-export stealth types and functions for engine consumers.
type BrowserClient = stealth.BrowserClient

func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }
func RandomUserAgent() string          { return stealth.RandomUserAgent() }

const maxPageBytes = 4 * 1024 * 1024

// FetchPage GETs a page for local parsing. With BrowserFallback enabled and a
// BrowserClient configured it goes through the stealth client, otherwise plain HTTP.
func FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	metrics.FetchRequests.Add(1)
	data, err := fetchPage(ctx, pageURL)
	if err != nil {
		metrics.FetchErrors.Add(1)
	}
	return data, err
}

func fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	if cfg.BrowserFallback && cfg.BrowserClient != nil {
		headers := ChromeHeaders()
		headers["accept-language"] = "en-US,en;q=0.9"
		data, _, status, err := cfg.BrowserClient.Do(http.MethodGet, pageURL, headers, nil)
		if err != nil {
			return nil, fmt.Errorf("stealth fetch %s: %w", pageURL, err)
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("stealth fetch %s: HTTP %d", pageURL, status)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", RandomUserAgent())
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	resp, err := HTTPClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", pageURL, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
}
