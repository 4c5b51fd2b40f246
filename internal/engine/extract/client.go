// Package extract is the client for the structured-extraction provider.
//
// One Extract call is one POST to the provider's scrape endpoint with an
// llm-extraction schema. Responses are unwrapped from the provider envelope
// and validated against the declared Schema before they are returned, so a
// caller only ever sees a validated *Result or a typed *Error.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.firecrawl.dev"
	DefaultTimeout = 45 * time.Second
	scrapePath     = "/v0/scrape"
	maxBodyBytes   = 8 * 1024 * 1024
)

// Config holds client settings. Only APIKey is required.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration // per call, including the body read
	MaxRetries int           // 0 = exactly one attempt
	RetryWait  time.Duration // initial backoff when MaxRetries > 0
	RateLimit  float64       // outbound requests per second, 0 = unlimited
	Burst      int
	HTTPClient *http.Client
}

// Client talks to the extraction provider. Safe for concurrent use.
type Client struct {
	apiKey     string
	endpoint   string
	timeout    time.Duration
	maxRetries int
	retryWait  time.Duration
	limiter    *rate.Limiter
	http       *http.Client
}

// Request is one extraction: a target page and the shape expected back.
type Request struct {
	URL    string
	Schema Schema
	Prompt string
}

// Metadata is the page metadata kept from the provider response.
type Metadata struct {
	Title     string `json:"title,omitempty"`
	Favicon   string `json:"favicon,omitempty"`
	SourceURL string `json:"sourceURL,omitempty"`
}

// Result is a validated extraction.
type Result struct {
	URL      string
	Data     map[string]any
	Metadata Metadata
}

// Decode copies the validated payload into v.
func (r *Result) Decode(v any) error {
	data, err := json.Marshal(r.Data)
	if err != nil {
		return malformed(r.URL, "", "re-encode payload", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return malformed(r.URL, "", "decode payload", err)
	}
	return nil
}

// NewClient validates cfg and builds a client. A missing API key returns ErrMissingAPIKey.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, &Error{Kind: KindConfiguration, Message: "invalid provider base URL " + base, Err: err}
	}
	c := &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		endpoint:   base + scrapePath,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryWait:  cfg.RetryWait,
		http:       cfg.HTTPClient,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.retryWait <= 0 {
		c.retryWait = 500 * time.Millisecond
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c, nil
}

// Ready reports whether the client can issue requests.
func (c *Client) Ready() error {
	if c == nil || c.apiKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Extract runs one structured extraction for req.URL.
func (c *Client) Extract(ctx context.Context, req Request) (*Result, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}
	if err := validateTarget(req.URL); err != nil {
		return nil, err
	}
	if len(req.Schema.Fields) == 0 {
		return nil, malformed(req.URL, "", "empty extraction schema", nil)
	}

	page, err := c.call(ctx, req.URL, scrapeBody{
		URL:         req.URL,
		PageOptions: pageOptions{OnlyMainContent: true},
		ExtractorOptions: &extractorOptions{
			Mode:             "llm-extraction",
			ExtractionPrompt: req.Prompt,
			JSONSchema:       req.Schema.JSONSchema(),
		},
	})
	if err != nil {
		return nil, err
	}

	payload, err := page.extraction(req.URL)
	if err != nil {
		return nil, err
	}
	data, err := req.Schema.Validate(payload)
	if err != nil {
		var xe *Error
		if errors.As(err, &xe) {
			xe.URL = req.URL
		}
		return nil, err
	}
	return &Result{URL: req.URL, Data: data, Metadata: page.metadata()}, nil
}

// call sends body and unwraps the provider envelope.
func (c *Client) call(ctx context.Context, target string, body scrapeBody) (*pageData, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, malformed(target, "", "encode request", err)
	}
	raw, err := c.send(ctx, target, payload)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(target, raw)
}

// send performs the POST, with exponential backoff on retryable failures when enabled.
func (c *Client) send(ctx context.Context, target string, payload []byte) ([]byte, error) {
	if c.maxRetries <= 0 {
		return c.post(ctx, target, payload)
	}

	attempt := 0
	operation := func() ([]byte, error) {
		attempt++
		data, err := c.post(ctx, target, payload)
		if err == nil {
			return data, nil
		}
		var xe *Error
		if errors.As(err, &xe) && !xe.Retryable() {
			return nil, backoff.Permanent(err)
		}
		slog.Debug("extract: retrying", slog.String("url", target), slog.Int("attempt", attempt), slog.Any("error", err))
		return nil, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryWait
	bo.MaxInterval = 10 * c.retryWait

	data, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(uint(c.maxRetries+1)))
	if err != nil {
		var xe *Error
		if errors.As(err, &xe) {
			return nil, xe
		}
		return nil, &Error{Kind: KindProviderUnreachable, URL: target, Err: err}
	}
	return data, nil
}

func (c *Client) post(ctx context.Context, target string, payload []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Kind: KindProviderUnreachable, URL: target, Message: "rate limiter", Err: err}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Kind: KindConfiguration, URL: target, Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindProviderUnreachable, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Kind: KindProviderUnreachable, URL: target, StatusCode: resp.StatusCode, Message: "read body", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Kind: KindProviderError, URL: target, StatusCode: resp.StatusCode, Body: providerMessage(data)}
	}
	return data, nil
}

// validateTarget accepts only absolute http(s) URLs with a host.
func validateTarget(target string) error {
	if strings.TrimSpace(target) == "" {
		return malformed(target, "", "empty target URL", nil)
	}
	u, err := url.Parse(target)
	if err != nil {
		return malformed(target, "", "invalid target URL", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return malformed(target, "", "target URL must be absolute http(s)", nil)
	}
	return nil
}
