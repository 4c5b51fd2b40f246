package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the REST endpoints, /metrics and the logging/metrics middleware.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("POST /api/query", h.HandleQuery)
	mux.HandleFunc("POST /api/images", h.HandleImages)
	mux.HandleFunc("POST /api/scrape", h.HandleScrape)
	mux.HandleFunc("GET /api/youtube/info", h.HandleYouTubeInfo)

	mux.Handle("GET /metrics", promhttp.Handler())

	var chained http.Handler = mux
	chained = withMetrics(chained)
	chained = withLogging(chained)
	return chained
}
