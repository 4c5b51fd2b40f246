package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/anatolykoptev/go_mediahub/internal/engine"
	"github.com/anatolykoptev/go_mediahub/internal/engine/extract"
)

// Scraper fetches a page as markdown. *extract.Client implements it.
type Scraper interface {
	Scrape(ctx context.Context, req extract.ScrapeRequest) (*extract.Page, error)
}

const defaultScrapeChars = 10000

// Scrape fetches in.URL through s and trims the markdown to the requested length.
func Scrape(ctx context.Context, s Scraper, in engine.ScrapeInput) (*engine.ScrapeOutput, error) {
	if s == nil {
		return nil, extract.ErrMissingAPIKey
	}
	if r, ok := s.(readier); ok {
		if err := r.Ready(); err != nil {
			return nil, err
		}
	}
	engine.IncrScrapeRequests()

	var page *extract.Page
	err := engine.TrackOperation(ctx, "scrape", func(ctx context.Context) error {
		var err error
		page, err = s.Scrape(ctx, extract.ScrapeRequest{
			URL:     in.URL,
			Render:  in.Render,
			WaitFor: time.Duration(in.WaitForMs) * time.Millisecond,
		})
		return err
	})
	if err != nil {
		engine.IncrScrapeErrors()
		return nil, fmt.Errorf("scrape %s: %w", in.URL, err)
	}

	limit := in.MaxLength
	if limit <= 0 {
		limit = engine.Cfg.MaxContentChars
	}
	if limit <= 0 {
		limit = defaultScrapeChars
	}
	content := engine.TruncateRunes(page.Markdown, limit, "")
	return &engine.ScrapeOutput{
		URL:       page.URL,
		Title:     page.Metadata.Title,
		Favicon:   page.Metadata.Favicon,
		Content:   content,
		Truncated: len(content) < len(page.Markdown),
	}, nil
}
