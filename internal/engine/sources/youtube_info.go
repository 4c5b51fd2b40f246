package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/anatolykoptev/go_mediahub/internal/engine"
)

// ErrInvalidVideoURL is returned for URLs that do not identify a YouTube video.
var ErrInvalidVideoURL = errors.New("not a YouTube video URL")

var videoIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ExtractVideoID pulls the 11-char video ID from any YouTube URL format:
// watch?v=, youtu.be/, /shorts/, /embed/, /live/ and /v/.
func ExtractVideoID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoURL, rawURL)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if u.Path == "/watch" {
			id = u.Query().Get("v")
			break
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 2 {
			switch parts[0] {
			case "shorts", "embed", "live", "v":
				id = parts[1]
			}
		}
	}
	if !videoIDRe.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoURL, rawURL)
	}
	return id, nil
}

// downloadFormats are the formats a suggested filename is produced for.
var downloadFormats = []string{"mp3", "mp4"}

// FetchYouTubeInfo returns title, thumbnail, duration and channel for a video.
// Tries the Innertube player endpoint first, then the watch page. Cached for CACHE_TTL.
func FetchYouTubeInfo(ctx context.Context, rawURL string) (*engine.YouTubeInfo, error) {
	id, err := ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}
	engine.IncrYouTubeInfo()

	key := engine.CacheKey("yt_info", id)
	if cached, ok := engine.CacheLoadJSON[engine.YouTubeInfo](ctx, key); ok {
		return &cached, nil
	}

	var info *engine.YouTubeInfo
	err = engine.TrackOperation(ctx, "youtube_info", func(ctx context.Context) error {
		var perr error
		info, perr = fetchPlayerInfo(ctx, id)
		if perr == nil {
			return nil
		}
		slog.Debug("youtube: player failed, trying watch page", slog.String("video", id), slog.Any("error", perr))

		var werr error
		info, werr = fetchWatchPageInfo(ctx, id)
		if werr != nil {
			return fmt.Errorf("youtube info %s: %w", id, errors.Join(perr, werr))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	info.VideoID = id
	info.URL = "https://www.youtube.com/watch?v=" + id
	if info.Thumbnail == "" {
		info.Thumbnail = "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg"
	}
	info.Duration = engine.FormatDuration(info.DurationSeconds)
	info.Filenames = make(map[string]string, len(downloadFormats))
	for _, f := range downloadFormats {
		info.Filenames[f] = engine.SafeFilename(info.Title, f)
	}

	engine.CacheStoreJSON(ctx, key, *info)
	return info, nil
}

// fetchWatchPageInfo parses OpenGraph and itemprop tags from the watch page.
func fetchWatchPageInfo(ctx context.Context, id string) (*engine.YouTubeInfo, error) {
	body, err := engine.FetchPage(ctx, ytWatchURL+id)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	info := &engine.YouTubeInfo{
		VideoID:     id,
		Title:       metaContent(doc, `meta[property="og:title"]`, `meta[name="title"]`),
		Thumbnail:   metaContent(doc, `meta[property="og:image"]`),
		Description: metaContent(doc, `meta[property="og:description"]`, `meta[name="description"]`),
		Channel:     metaContent(doc, `span[itemprop="author"] link[itemprop="name"]`, `link[itemprop="name"]`),
	}
	if info.Title == "" {
		info.Title = strings.TrimSuffix(strings.TrimSpace(doc.Find("title").First().Text()), " - YouTube")
	}
	if info.Title == "" {
		return nil, fmt.Errorf("watch page %s: no title", id)
	}
	info.DurationSeconds = engine.ParseISODuration(metaContent(doc, `meta[itemprop="duration"]`))
	return info, nil
}

// metaContent returns the first non-empty content attribute among selectors.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		s := doc.Find(sel).First()
		if v, ok := s.Attr("content"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
