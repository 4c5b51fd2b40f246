// Package mediaserver exposes the media hub operations as MCP tools.
package mediaserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 5

// RegisterTools registers all media hub tools on the given MCP server:
// web_query, image_search, scrape_url, youtube_info, youtube_notes.
func RegisterTools(server *mcp.Server) {
	registerWebQuery(server)
	registerImageSearch(server)
	registerScrapeURL(server)
	registerYouTubeInfo(server)
	registerYouTubeNotes(server)
}
