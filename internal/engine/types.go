package engine

// --- Tool inputs ---

type QueryInput struct {
	Query string `json:"query" jsonschema:"Free-text question or search query"`
}

type ImageSearchInput struct {
	Query string `json:"query" jsonschema:"Image search query"`
}

type ScrapeInput struct {
	URL       string `json:"url" jsonschema:"Absolute http(s) URL to scrape"`
	Render    *bool  `json:"render,omitempty" jsonschema:"Render client-side JavaScript before scraping (default: true)"`
	WaitForMs int    `json:"wait_for_ms,omitempty" jsonschema:"Milliseconds to wait for rendering (default: 2000)"`
	MaxLength int    `json:"max_length,omitempty" jsonschema:"Max characters of markdown (default: MAX_CONTENT_CHARS)"`
}

type YouTubeInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL (watch, shorts, embed, live or youtu.be)"`
}

// --- Outputs (JSON responses) ---

// Link is a titled hyperlink from a knowledge card.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// KnowledgeCard is the structured answer to a query. Summary is always set.
type KnowledgeCard struct {
	Title        string           `json:"title,omitempty"`
	Summary      string           `json:"summary"`
	BulletPoints []string         `json:"bulletPoints,omitempty"`
	Table        []map[string]any `json:"table,omitempty"`
	Links        []Link           `json:"links,omitempty"`
	Favicon      string           `json:"favicon,omitempty"`
	SourceURL    string           `json:"sourceURL,omitempty"`
}

// TaggedImage is one image result labelled with the provider it came from.
type TaggedImage struct {
	Src    string `json:"src"`
	Alt    string `json:"alt,omitempty"`
	Source string `json:"source"`
}

type ImageSearchOutput struct {
	Query  string        `json:"query"`
	Total  int           `json:"total"`
	Images []TaggedImage `json:"images"`
}

type ScrapeOutput struct {
	URL       string `json:"url"`
	Title     string `json:"title,omitempty"`
	Favicon   string `json:"favicon,omitempty"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
}

// YouTubeInfo is the metadata needed to present and download a video.
type YouTubeInfo struct {
	VideoID         string            `json:"videoId"`
	URL             string            `json:"url"`
	Title           string            `json:"title"`
	Thumbnail       string            `json:"thumbnail,omitempty"`
	DurationSeconds int               `json:"durationSeconds"`
	Duration        string            `json:"duration,omitempty"`
	Channel         string            `json:"channel,omitempty"`
	Description     string            `json:"description,omitempty"`
	Filenames       map[string]string `json:"filenames,omitempty"` // format → suggested download filename
}

type YouTubeNotesOutput struct {
	VideoID string   `json:"videoId"`
	Title   string   `json:"title"`
	Channel string   `json:"channel,omitempty"`
	Notes   []string `json:"notes"`
}
