// Package sources fetches media metadata from third-party sites.
package sources

// YouTube implementation is split across three files by responsibility:
//   youtube_innertube.go  — Innertube API types, constants, and the ANDROID /player call
//   youtube_info.go       — video ID parsing, player → watch page fallback, caching
//   youtube_notes.go      — LLM study notes from video metadata
