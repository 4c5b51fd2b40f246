package mediaserver

import (
	"context"

	"github.com/anatolykoptev/go_mediahub/internal/engine"
	"github.com/anatolykoptev/go_mediahub/internal/engine/lookup"
	"github.com/anatolykoptev/go_mediahub/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerWebQuery(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "web_query",
		Description: "Answer a free-text query with a knowledge card extracted from live web search results: a summary, key bullet points, an optional data table and the most relevant links. Results are never cached.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.QueryInput) (*mcp.CallToolResult, *engine.KnowledgeCard, error) {
		q, err := toolutil.RequireQuery(input.Query)
		if err != nil {
			return nil, nil, err
		}
		card, err := lookup.Query(ctx, engine.Cfg.Extractor, q)
		if err != nil {
			return nil, nil, err
		}
		return nil, card, nil
	})
}
