package mediaserver

import (
	"context"

	"github.com/anatolykoptev/go_mediahub/internal/engine"
	"github.com/anatolykoptev/go_mediahub/internal/engine/lookup"
	"github.com/anatolykoptev/go_mediahub/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerImageSearch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "image_search",
		Description: "Search Unsplash, Pexels and Pixabay at once. Returns up to 20 images per site, each tagged with its source, in a fixed site order. A site that fails is skipped rather than failing the search.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ImageSearchInput) (*mcp.CallToolResult, engine.ImageSearchOutput, error) {
		q, err := toolutil.RequireQuery(input.Query)
		if err != nil {
			return nil, engine.ImageSearchOutput{}, err
		}
		imgs, err := lookup.SearchImages(ctx, engine.Cfg.Extractor, q)
		if err != nil {
			return nil, engine.ImageSearchOutput{}, err
		}
		return nil, engine.ImageSearchOutput{Query: q, Total: len(imgs), Images: imgs}, nil
	})
}
