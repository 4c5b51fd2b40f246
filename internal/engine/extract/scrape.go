package extract

import (
	"context"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// DefaultWaitFor is how long the provider waits for client-side rendering.
const DefaultWaitFor = 2 * time.Second

// ScrapeRequest asks for a page as markdown, without schema extraction.
type ScrapeRequest struct {
	URL     string
	Render  *bool         // nil = render
	WaitFor time.Duration // 0 = DefaultWaitFor
}

// Page is a scraped page.
type Page struct {
	URL      string
	Markdown string
	Metadata Metadata
}

// Scrape fetches req.URL through the provider and returns its main content as markdown.
// When the provider returns only HTML it is converted locally.
func (c *Client) Scrape(ctx context.Context, req ScrapeRequest) (*Page, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}
	if err := validateTarget(req.URL); err != nil {
		return nil, err
	}

	render := true
	if req.Render != nil {
		render = *req.Render
	}
	wait := req.WaitFor
	if wait <= 0 {
		wait = DefaultWaitFor
	}

	page, err := c.call(ctx, req.URL, scrapeBody{
		URL: req.URL,
		PageOptions: pageOptions{
			OnlyMainContent: true,
			Render:          &render,
			WaitFor:         int(wait / time.Millisecond),
		},
	})
	if err != nil {
		return nil, err
	}

	md := strings.TrimSpace(page.Markdown)
	if md == "" && strings.TrimSpace(page.HTML) != "" {
		converted, convErr := htmltomarkdown.ConvertString(page.HTML)
		if convErr != nil {
			return nil, malformed(req.URL, "html", "convert html to markdown", convErr)
		}
		md = strings.TrimSpace(converted)
	}
	if md == "" {
		return nil, missingField(req.URL, "markdown")
	}
	return &Page{URL: req.URL, Markdown: md, Metadata: page.metadata()}, nil
}
