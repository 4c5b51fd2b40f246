package extract

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrape_Defaults(t *testing.T) {
	var body struct {
		URL         string `json:"url"`
		PageOptions struct {
			Render  *bool `json:"render"`
			WaitFor int   `json:"waitFor"`
		} `json:"pageOptions"`
		ExtractorOptions map[string]any `json:"extractorOptions"`
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		writeJSON(w, map[string]any{"success": true, "data": map[string]any{
			"markdown": "# Title\n\nBody",
			"metadata": map[string]any{"title": "Title"},
		}})
	})

	page, err := c.Scrape(context.Background(), ScrapeRequest{URL: "https://example.com/a"})
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nBody", page.Markdown)
	assert.Equal(t, "Title", page.Metadata.Title)

	require.NotNil(t, body.PageOptions.Render)
	assert.True(t, *body.PageOptions.Render)
	assert.Equal(t, 2000, body.PageOptions.WaitFor)
	assert.Nil(t, body.ExtractorOptions)
}

func TestScrape_HTMLFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"success": true, "data": map[string]any{
			"html": "<h1>Hello</h1><p>world</p>",
		}})
	})
	page, err := c.Scrape(context.Background(), ScrapeRequest{URL: "https://example.com"})
	require.NoError(t, err)
	assert.Contains(t, page.Markdown, "# Hello")
	assert.Contains(t, page.Markdown, "world")
}

func TestScrape_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"success": true, "data": map[string]any{}})
	})
	_, err := c.Scrape(context.Background(), ScrapeRequest{URL: "https://example.com"})
	assert.Equal(t, KindMissingExpectedField, KindOf(err))
}

func TestScrape_MissingKey(t *testing.T) {
	var c *Client
	_, err := c.Scrape(context.Background(), ScrapeRequest{URL: "https://example.com"})
	assert.Equal(t, KindConfiguration, KindOf(err))
}
