package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	QueryRequests        atomic.Int64
	QueryErrors          atomic.Int64
	ImageSearchRequests  atomic.Int64
	ImageSourceErrors    atomic.Int64
	ScrapeRequests       atomic.Int64
	ScrapeErrors         atomic.Int64
	YouTubeInfoRequests  atomic.Int64
	YouTubeNotesRequests atomic.Int64
	LLMCalls             atomic.Int64
	LLMErrors            atomic.Int64
	FetchRequests        atomic.Int64
	FetchErrors          atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"query_requests":         metrics.QueryRequests.Load(),
		"query_errors":           metrics.QueryErrors.Load(),
		"image_search_requests":  metrics.ImageSearchRequests.Load(),
		"image_source_errors":    metrics.ImageSourceErrors.Load(),
		"scrape_requests":        metrics.ScrapeRequests.Load(),
		"scrape_errors":          metrics.ScrapeErrors.Load(),
		"youtube_info_requests":  metrics.YouTubeInfoRequests.Load(),
		"youtube_notes_requests": metrics.YouTubeNotesRequests.Load(),
		"llm_calls":              metrics.LLMCalls.Load(),
		"llm_errors":             metrics.LLMErrors.Load(),
		"fetch_requests":         metrics.FetchRequests.Load(),
		"fetch_errors":           metrics.FetchErrors.Load(),
		"cache_hits":             hits,
		"cache_misses":           misses,
	}
}

var metricKeys = []string{
	"query_requests", "query_errors",
	"image_search_requests", "image_source_errors",
	"scrape_requests", "scrape_errors",
	"youtube_info_requests", "youtube_notes_requests",
	"llm_calls", "llm_errors",
	"fetch_requests", "fetch_errors",
	"cache_hits", "cache_misses",
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for lookup/ and sources/ sub-packages.
func IncrQueryRequests()       { metrics.QueryRequests.Add(1) }
func IncrQueryErrors()         { metrics.QueryErrors.Add(1) }
func IncrImageSearchRequests() { metrics.ImageSearchRequests.Add(1) }
func IncrImageSourceErrors()   { metrics.ImageSourceErrors.Add(1) }
func IncrScrapeRequests()      { metrics.ScrapeRequests.Add(1) }
func IncrScrapeErrors()        { metrics.ScrapeErrors.Add(1) }
func IncrYouTubeInfo()         { metrics.YouTubeInfoRequests.Add(1) }
func IncrYouTubeNotes()        { metrics.YouTubeNotesRequests.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
