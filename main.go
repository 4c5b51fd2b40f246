// go_mediahub — media hub MCP server.
//
// Exposes five MCP tools: web_query, image_search, scrape_url, youtube_info, youtube_notes.
// Optionally serves the same operations as a REST JSON API on HTTP_ADDR.
package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/anatolykoptev/go_mediahub/internal/engine"
	"github.com/anatolykoptev/go_mediahub/internal/engine/extract"
	"github.com/anatolykoptev/go_mediahub/internal/engine/lookup"
	"github.com/anatolykoptev/go_mediahub/internal/httpapi"
	"github.com/anatolykoptev/go_mediahub/internal/logger"
	"github.com/anatolykoptev/go_mediahub/internal/mediaserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version  = "dev"
	mcpPort  = env.Str("MCP_PORT", "8893")
	httpAddr = env.Str("HTTP_ADDR", "")
)

func main() {
	logger.Init(os.Stdout, logger.ParseLevel(env.Str("LOG_LEVEL", "info")))
	initEngine()

	slog.Info("starting go_mediahub",
		slog.String("port", mcpPort),
		slog.String("http_addr", httpAddr),
	)

	if httpAddr != "" {
		go serveREST(httpAddr)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_mediahub",
		Version: version,
	}, nil)

	mediaserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", mediaserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_mediahub",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 300 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func serveREST(addr string) {
	// A nil *extract.Client still satisfies both interfaces and reports the missing key.
	ex := engine.Cfg.Extractor
	h := httpapi.NewHandler(ex, ex, nil)
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      300 * time.Second,
	}
	slog.Info("rest api listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("rest api failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		FirecrawlAPIKey:      env.Str("FIRECRAWL_API_KEY", ""),
		SearchURLTemplate:    env.Str("SEARCH_URL_TEMPLATE", lookup.DefaultSearchURLTemplate),
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:             env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.3),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 4096),
		MaxContentChars:      env.Int("MAX_CONTENT_CHARS", 10000),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 15*time.Second),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		BrowserFallback:      env.Str("BROWSER_FALLBACK", "true") != "false",
	}
	c.HTTPClient = engine.NewHTTPClient(c.FetchTimeout)

	ex, err := extract.NewClient(extractConfig(c.FirecrawlAPIKey))
	if err != nil {
		slog.Warn("extraction disabled", slog.Any("error", err))
	} else {
		c.Extractor = ex
		slog.Info("extraction client ready")
	}

	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(15))

	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Error("stealth client init failed", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("stealth browser client initialized")
	}

	if c.LLMAPIKey != "" {
		c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
			llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
			llm.WithMaxTokens(c.LLMMaxTokens),
			llm.WithTemperature(c.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
		)
	} else {
		slog.Warn("LLM_API_KEY not set, youtube_notes disabled")
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", time.Hour)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}

// extractConfig reads the extraction provider settings from env.
func extractConfig(apiKey string) extract.Config {
	return extract.Config{
		APIKey:     apiKey,
		BaseURL:    env.Str("FIRECRAWL_BASE_URL", extract.DefaultBaseURL),
		Timeout:    env.Duration("EXTRACT_TIMEOUT", extract.DefaultTimeout),
		MaxRetries: env.Int("EXTRACT_MAX_RETRIES", 0),
		RetryWait:  env.Duration("EXTRACT_RETRY_WAIT", 500*time.Millisecond),
		RateLimit:  env.Float("EXTRACT_RATE_LIMIT", 0),
		Burst:      env.Int("EXTRACT_BURST", 5),
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}
