package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_mediahub/internal/engine/extract"
)

func TestQuery_Card(t *testing.T) {
	ex := &fakeExtractor{routes: map[string]fakeRoute{
		"google.com": {
			data: map[string]any{
				"summary":      "Go is an open source language.",
				"bulletPoints": []any{"Compiled", "Garbage collected"},
				"table":        []any{map[string]any{"version": "1.26"}},
				"links":        []any{map[string]any{"title": "Go", "url": "https://go.dev"}},
			},
			meta: extract.Metadata{Title: "golang - Search", Favicon: "https://google.com/favicon.ico", SourceURL: "https://www.google.com/search?q=golang"},
		},
	}}

	card, err := QueryFrom(context.Background(), ex, "", "golang")
	require.NoError(t, err)
	assert.Equal(t, "Go is an open source language.", card.Summary)
	assert.Equal(t, []string{"Compiled", "Garbage collected"}, card.BulletPoints)
	require.Len(t, card.Links, 1)
	assert.Equal(t, "https://go.dev", card.Links[0].URL)
	assert.Equal(t, "1.26", card.Table[0]["version"])
	assert.Equal(t, "golang - Search", card.Title)
	assert.Equal(t, "https://google.com/favicon.ico", card.Favicon)

	require.Equal(t, 1, ex.callCount())
	assert.Equal(t, "https://www.google.com/search?q=golang", ex.calls[0].URL)
}

func TestQuery_EncodesQuery(t *testing.T) {
	ex := &fakeExtractor{routes: map[string]fakeRoute{
		"search": {data: map[string]any{"summary": "x"}},
	}}
	_, err := QueryFrom(context.Background(), ex, "https://search.example/?q={query}", "what is 2+2 & why?")
	require.NoError(t, err)
	assert.Equal(t, "https://search.example/?q=what%20is%202%2B2%20%26%20why%3F", ex.calls[0].URL)
}

func TestQuery_Errors(t *testing.T) {
	t.Run("blank query", func(t *testing.T) {
		ex := &fakeExtractor{}
		_, err := QueryFrom(context.Background(), ex, "", "  ")
		assert.ErrorIs(t, err, ErrEmptyQuery)
		assert.Zero(t, ex.callCount())
	})

	t.Run("nil extractor", func(t *testing.T) {
		_, err := QueryFrom(context.Background(), nil, "", "golang")
		assert.ErrorIs(t, err, extract.ErrMissingAPIKey)
	})

	t.Run("provider failure keeps kind", func(t *testing.T) {
		ex := &fakeExtractor{routes: map[string]fakeRoute{
			"google.com": {err: &extract.Error{Kind: extract.KindProviderError, URL: "https://www.google.com/search?q=golang", StatusCode: 502}},
		}}
		card, err := QueryFrom(context.Background(), ex, "", "golang")
		assert.Nil(t, card)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `query "golang"`)
		var xe *extract.Error
		require.True(t, errors.As(err, &xe))
		assert.Equal(t, 502, xe.StatusCode)
	})
}

func TestQuery_SummaryAbsentFromExtractor(t *testing.T) {
	for name, data := range map[string]map[string]any{
		"absent": {"bulletPoints": []any{"a"}},
		"blank":  {"summary": "   ", "bulletPoints": []any{"a"}},
	} {
		t.Run(name, func(t *testing.T) {
			ex := &fakeExtractor{routes: map[string]fakeRoute{"google.com": {data: data}}}

			card, err := QueryFrom(context.Background(), ex, "", "golang")
			assert.Nil(t, card)
			require.Error(t, err)
			assert.Equal(t, extract.KindMissingExpectedField, extract.KindOf(err))
			assert.Contains(t, err.Error(), `query "golang"`)

			var xe *extract.Error
			require.True(t, errors.As(err, &xe))
			assert.Equal(t, "summary", xe.Field)
			assert.Equal(t, "https://www.google.com/search?q=golang", xe.URL)
		})
	}
}

// providerServer fakes the extraction provider; respond picks a reply by target URL.
func providerServer(t *testing.T, respond func(target string) (int, string)) (*extract.Client, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		data, _ := io.ReadAll(r.Body)
		var body struct {
			URL string `json:"url"`
		}
		_ = json.Unmarshal(data, &body)
		status, reply := respond(body.URL)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	c, err := extract.NewClient(extract.Config{APIKey: "k", BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c, &calls
}

func TestQuery_EndToEnd(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		reply    string
		wantKind extract.Kind
		wantText string
	}{
		{
			name:   "summary present",
			status: 200,
			reply:  `{"success":true,"data":{"llm_extraction":{"summary":"An answer."},"metadata":{"title":"T"}}}`,
		},
		{
			name:     "http 500",
			status:   500,
			reply:    `{"error":"boom"}`,
			wantKind: extract.KindProviderError,
			wantText: "500",
		},
		{
			name:     "summary missing",
			status:   200,
			reply:    `{"success":true,"data":{"llm_extraction":{"bulletPoints":["a","b"]}}}`,
			wantKind: extract.KindMissingExpectedField,
			wantText: "summary",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, calls := providerServer(t, func(string) (int, string) { return tt.status, tt.reply })

			card, err := QueryFrom(context.Background(), c, "", "golang")
			assert.Equal(t, int32(1), calls.Load(), "exactly one provider request")

			// Either a card with a summary or an error, never both.
			if tt.wantKind == "" {
				require.NoError(t, err)
				require.NotNil(t, card)
				assert.NotEmpty(t, card.Summary)
				return
			}
			assert.Nil(t, card)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, extract.KindOf(err))
			assert.Contains(t, err.Error(), tt.wantText)
		})
	}
}

func TestSearchImages_EndToEnd(t *testing.T) {
	c, calls := providerServer(t, func(target string) (int, string) {
		switch {
		case strings.Contains(target, "unsplash"):
			return 200, `{"success":true,"data":{"llm_extraction":{"images":[{"src":"https://u/1.jpg","alt":"one"},{"alt":"no src"}]}}}`
		case strings.Contains(target, "pexels"):
			return 200, `{"success":true,"data":{"llm_extraction":{}}}`
		default:
			return 200, `{"success":true,"data":{"llm_extraction":{"images":[{"src":"https://p/1.jpg"}]}}}`
		}
	})

	imgs, err := SearchImages(context.Background(), c, "kittens")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []string{"Unsplash", "Pixabay"}, []string{imgs[0].Source, imgs[1].Source})
	assert.Len(t, imgs, 2, "missing images field contributes nothing; item without src is dropped")
}
