package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_mediahub/internal/engine"
	"github.com/anatolykoptev/go_mediahub/internal/engine/extract"
)

// ErrEmptyQuery is returned before any extraction when the query is blank.
var ErrEmptyQuery = errors.New("query is empty")

var cardSchema = extract.Schema{Fields: []extract.Field{
	{Name: "summary", Type: extract.String, Required: true},
	{Name: "bulletPoints", Type: extract.StringArray},
	{Name: "table", Type: extract.ObjectArray},
	{Name: "links", Type: extract.LinkArray},
}}

const cardPrompt = "Based on the search results on this page, write a concise summary that answers the query. " +
	"Add the key facts as bullet points, a table of structured data if the results contain any, " +
	"and the most relevant links with their titles."

// Query extracts a knowledge card for query from the configured search page.
// Failures are returned whole; there is no partial card.
func Query(ctx context.Context, ex Extractor, query string) (*engine.KnowledgeCard, error) {
	return QueryFrom(ctx, ex, engine.Cfg.SearchURLTemplate, query)
}

// QueryFrom is Query against an explicit search URL template.
func QueryFrom(ctx context.Context, ex Extractor, template, query string) (*engine.KnowledgeCard, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if err := checkExtractor(ex); err != nil {
		return nil, fmt.Errorf("query %q: %w", query, err)
	}
	if template == "" {
		template = DefaultSearchURLTemplate
	}
	engine.IncrQueryRequests()

	target := TargetURL(template, query)
	var res *extract.Result
	err := engine.TrackOperation(ctx, "query", func(ctx context.Context) error {
		var err error
		res, err = ex.Extract(ctx, extract.Request{URL: target, Schema: cardSchema, Prompt: cardPrompt})
		return err
	})
	if err != nil {
		engine.IncrQueryErrors()
		slog.Warn("query: extraction failed", slog.String("query", query), slog.String("kind", string(extract.KindOf(err))), slog.Any("error", err))
		return nil, fmt.Errorf("query %q: %w", query, err)
	}

	var card engine.KnowledgeCard
	if err := res.Decode(&card); err != nil {
		engine.IncrQueryErrors()
		return nil, fmt.Errorf("query %q: %w", query, err)
	}
	// Extractor implementations other than *extract.Client may skip validation.
	if strings.TrimSpace(card.Summary) == "" {
		engine.IncrQueryErrors()
		return nil, fmt.Errorf("query %q: %w", query,
			&extract.Error{Kind: extract.KindMissingExpectedField, URL: target, Field: "summary"})
	}
	card.Title = res.Metadata.Title
	card.Favicon = res.Metadata.Favicon
	card.SourceURL = res.Metadata.SourceURL
	return &card, nil
}
