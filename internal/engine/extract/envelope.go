package extract

import (
	"encoding/json"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// Provider wire types (Firecrawl v0 /scrape).

type scrapeBody struct {
	URL              string            `json:"url"`
	PageOptions      pageOptions       `json:"pageOptions"`
	ExtractorOptions *extractorOptions `json:"extractorOptions,omitempty"`
}

type pageOptions struct {
	OnlyMainContent bool  `json:"onlyMainContent,omitempty"`
	Render          *bool `json:"render,omitempty"`
	WaitFor         int   `json:"waitFor,omitempty"` // milliseconds
}

type extractorOptions struct {
	Mode             string         `json:"mode"`
	ExtractionPrompt string         `json:"extractionPrompt,omitempty"`
	JSONSchema       map[string]any `json:"jsonSchema"`
}

type envelope struct {
	Success *bool           `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type pageData struct {
	LLMExtraction json.RawMessage `json:"llm_extraction"`
	Markdown      string          `json:"markdown"`
	HTML          string          `json:"html"`
	Metadata      map[string]any  `json:"metadata"`
}

const maxErrorBody = 512

// decodeEnvelope unwraps the provider envelope, keeping only the page data.
func decodeEnvelope(target string, raw []byte) (*pageData, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, malformed(target, "", "response is not a JSON object", err)
	}
	if env.Success != nil && !*env.Success {
		msg := env.Error
		if msg == "" {
			msg = "provider reported an unsuccessful extraction"
		}
		return nil, &Error{Kind: KindProviderError, URL: target, StatusCode: 200, Body: truncateBody(msg)}
	}
	if isNull(env.Data) {
		return nil, malformed(target, "data", "response has no data", nil)
	}
	var page pageData
	if err := json.Unmarshal(env.Data, &page); err != nil {
		return nil, malformed(target, "data", "data is not an object", err)
	}
	return &page, nil
}

// extraction returns the llm_extraction object; absent or null decodes as empty.
func (p *pageData) extraction(target string) (map[string]any, error) {
	if isNull(p.LLMExtraction) {
		return map[string]any{}, nil
	}
	var obj map[string]any
	if err := json.Unmarshal(p.LLMExtraction, &obj); err != nil {
		return nil, malformed(target, "llm_extraction", "extraction is not an object", err)
	}
	return obj, nil
}

func (p *pageData) metadata() Metadata {
	return Metadata{
		Title:     metaString(p.Metadata, "title"),
		Favicon:   metaString(p.Metadata, "favicon"),
		SourceURL: metaString(p.Metadata, "sourceURL"),
	}
}

func metaString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// providerMessage prefers the JSON "error" field of a non-2xx body.
func providerMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return truncateBody(e.Error)
	}
	return truncateBody(strings.TrimSpace(string(body)))
}

func truncateBody(s string) string {
	return strutil.TruncateWith(s, maxErrorBody, "...")
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}
