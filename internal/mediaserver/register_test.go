package mediaserver

import (
	"context"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_mediahub/internal/engine"
)

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := mcp.NewServer(&mcp.Implementation{Name: "go_mediahub", Version: "test"}, nil)
	RegisterTools(server)

	st, ct := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func TestRegisterTools(t *testing.T) {
	cs := connect(t)

	var names []string
	for tool, err := range cs.Tools(context.Background(), nil) {
		require.NoError(t, err)
		names = append(names, tool.Name)
		assert.True(t, tool.Annotations != nil && tool.Annotations.ReadOnlyHint, tool.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"image_search", "scrape_url", "web_query", "youtube_info", "youtube_notes"}, names)
	assert.Len(t, names, ToolCount)
}

func TestToolsWithoutCredentials(t *testing.T) {
	engine.Init(engine.Config{})
	cs := connect(t)

	tests := []struct {
		tool string
		args map[string]any
	}{
		{"web_query", map[string]any{"query": "golang"}},
		{"image_search", map[string]any{"query": "cats"}},
		{"scrape_url", map[string]any{"url": "https://example.com"}},
		{"web_query", map[string]any{"query": "  "}},
		{"youtube_notes", map[string]any{"url": "https://youtu.be/aaaaaaaaaaa"}},
	}
	for _, tt := range tests {
		res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: tt.tool, Arguments: tt.args})
		require.NoError(t, err, tt.tool)
		assert.True(t, res.IsError, "%s %v should report a tool error", tt.tool, tt.args)
	}
}
