package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go_mediahub/internal/engine/extract"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	FirecrawlAPIKey      string
	Extractor            *extract.Client // nil = extraction disabled (missing API key)
	SearchURLTemplate    string          // "{query}" is replaced by the encoded query
	LLMAPIKey            string
	LLMAPIKeyFallbacks   []string
	LLMAPIBase           string
	LLMModel             string
	LLMTemperature       float64
	LLMMaxTokens         int
	LLMClient            *llm.Client
	MaxContentChars      int
	FetchTimeout         time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
	BrowserClient        *BrowserClient // nil = plain HTTP for page fallbacks
	BrowserFallback      bool
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (lookup, sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}

// HTTPClient returns the configured client, or a default with FetchTimeout.
func HTTPClient() *http.Client {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient
	}
	return NewHTTPClient(cfg.FetchTimeout)
}

// NewHTTPClient builds the pooled client used for page fetches. timeout <= 0 gives 15s.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}
}
