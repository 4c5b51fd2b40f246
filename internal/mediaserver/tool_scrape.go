package mediaserver

import (
	"context"

	"github.com/anatolykoptev/go_mediahub/internal/engine"
	"github.com/anatolykoptev/go_mediahub/internal/engine/lookup"
	"github.com/anatolykoptev/go_mediahub/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxWaitMs caps how long a scrape may wait for client-side rendering.
const maxWaitMs = 30000

func registerScrapeURL(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scrape_url",
		Description: "Fetch a web page through the extraction provider (JavaScript rendered by default) and return its main content as markdown.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ScrapeInput) (*mcp.CallToolResult, *engine.ScrapeOutput, error) {
		u, err := toolutil.RequireURL(input.URL)
		if err != nil {
			return nil, nil, err
		}
		input.URL = u
		input.WaitForMs = toolutil.ClampWait(input.WaitForMs, maxWaitMs)
		out, err := lookup.Scrape(ctx, engine.Cfg.Extractor, input)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}
