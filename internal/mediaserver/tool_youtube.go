package mediaserver

import (
	"context"

	"github.com/anatolykoptev/go_mediahub/internal/engine"
	"github.com/anatolykoptev/go_mediahub/internal/engine/sources"
	"github.com/anatolykoptev/go_mediahub/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerYouTubeInfo(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_info",
		Description: "Get a YouTube video's title, thumbnail, duration and channel, plus suggested mp3/mp4 download filenames. Accepts watch, shorts, embed, live and youtu.be URLs.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.YouTubeInput) (*mcp.CallToolResult, *engine.YouTubeInfo, error) {
		u, err := toolutil.RequireURL(input.URL)
		if err != nil {
			return nil, nil, err
		}
		info, err := sources.FetchYouTubeInfo(ctx, u)
		if err != nil {
			return nil, nil, err
		}
		return nil, info, nil
	})
}

func registerYouTubeNotes(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_notes",
		Description: "Generate concise study notes for a YouTube video from its title, channel and description. Requires an LLM API key.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.YouTubeInput) (*mcp.CallToolResult, *engine.YouTubeNotesOutput, error) {
		u, err := toolutil.RequireURL(input.URL)
		if err != nil {
			return nil, nil, err
		}
		out, err := sources.YouTubeNotes(ctx, u)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}
