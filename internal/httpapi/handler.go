// Package httpapi is the REST JSON surface of the media hub.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/anatolykoptev/go_mediahub/internal/engine"
	"github.com/anatolykoptev/go_mediahub/internal/engine/extract"
	"github.com/anatolykoptev/go_mediahub/internal/engine/lookup"
	"github.com/anatolykoptev/go_mediahub/internal/engine/sources"
	"github.com/anatolykoptev/go_mediahub/internal/toolutil"
)

const maxBodyBytes = 1 << 20

// YouTubeInfoFunc resolves video metadata for a URL.
type YouTubeInfoFunc func(ctx context.Context, rawURL string) (*engine.YouTubeInfo, error)

// Handler serves the REST endpoints.
type Handler struct {
	extractor   lookup.Extractor
	scraper     lookup.Scraper
	youtubeInfo YouTubeInfoFunc
}

// NewHandler builds a Handler. A nil youtubeInfo uses sources.FetchYouTubeInfo.
func NewHandler(ex lookup.Extractor, sc lookup.Scraper, youtubeInfo YouTubeInfoFunc) *Handler {
	if youtubeInfo == nil {
		youtubeInfo = sources.FetchYouTubeInfo
	}
	return &Handler{extractor: ex, scraper: sc, youtubeInfo: youtubeInfo}
}

type queryRequest struct {
	Query string `json:"query"`
}

type healthResponse struct {
	Status     string `json:"status"`
	Extraction bool   `json:"extraction"`
	LLM        bool   `json:"llm"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	ready := h.extractor != nil
	if r, ok := h.extractor.(interface{ Ready() error }); ok {
		ready = r.Ready() == nil
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Extraction: ready, LLM: engine.LLMReady()})
}

func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := toolutil.RequireQuery(req.Query)
	if err != nil {
		writeError(w, "query", "", err)
		return
	}
	card, err := lookup.Query(r.Context(), h.extractor, q)
	if err != nil {
		writeError(w, "query", fmt.Sprintf("query %q", q), err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *Handler) HandleImages(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := toolutil.RequireQuery(req.Query)
	if err != nil {
		writeError(w, "images", "", err)
		return
	}
	imgs, err := lookup.SearchImages(r.Context(), h.extractor, q)
	if err != nil {
		writeError(w, "images", fmt.Sprintf("image search %q", q), err)
		return
	}
	writeJSON(w, http.StatusOK, engine.ImageSearchOutput{Query: q, Total: len(imgs), Images: imgs})
}

func (h *Handler) HandleScrape(w http.ResponseWriter, r *http.Request) {
	var in engine.ScrapeInput
	if !decodeBody(w, r, &in) {
		return
	}
	u, err := toolutil.RequireURL(in.URL)
	if err != nil {
		writeError(w, "scrape", "", err)
		return
	}
	in.URL = u
	in.WaitForMs = toolutil.ClampWait(in.WaitForMs, 30000)
	out, err := lookup.Scrape(r.Context(), h.scraper, in)
	if err != nil {
		writeError(w, "scrape", "scrape "+u, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleYouTubeInfo(w http.ResponseWriter, r *http.Request) {
	u, err := toolutil.RequireURL(r.URL.Query().Get("url"))
	if err != nil {
		writeError(w, "youtube_info", "", err)
		return
	}
	info, err := h.youtubeInfo(r.Context(), u)
	if err != nil {
		writeError(w, "youtube_info", "youtube info "+u, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body", Kind: "invalid_input"})
		return false
	}
	return true
}

// statusFor maps an operation error onto an HTTP status and error kind.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, toolutil.ErrInvalidInput),
		errors.Is(err, lookup.ErrEmptyQuery),
		errors.Is(err, sources.ErrInvalidVideoURL):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, engine.ErrLLMNotConfigured):
		return http.StatusServiceUnavailable, string(extract.KindConfiguration)
	}
	switch kind := extract.KindOf(err); kind {
	case "":
		return http.StatusBadGateway, "upstream"
	case extract.KindConfiguration:
		return http.StatusServiceUnavailable, string(kind)
	default:
		return http.StatusBadGateway, string(kind)
	}
}

// writeError reports err for op. A non-empty subject names the failed input
// (e.g. `query "golang"`) and prefixes the provider's user message.
func writeError(w http.ResponseWriter, op, subject string, err error) {
	status, kind := statusFor(err)
	operationErrors.WithLabelValues(op, kind).Inc()

	msg := err.Error()
	var xe *extract.Error
	if errors.As(err, &xe) {
		msg = xe.UserMessage()
		if subject != "" {
			msg = subject + ": " + msg
		}
	}
	if status >= 500 {
		slog.Warn("api: operation failed", slog.String("op", op), slog.String("kind", kind), slog.Any("error", err))
	}
	writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("api: encode response", slog.Any("error", err))
	}
}
