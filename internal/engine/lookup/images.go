package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anatolykoptev/go_mediahub/internal/engine"
	"github.com/anatolykoptev/go_mediahub/internal/engine/extract"
)

// ImageProvider is one image search site. URLTemplate contains "{query}".
type ImageProvider struct {
	Name        string
	URLTemplate string
}

// DefaultImageProviders are queried in this order and merged in this order.
// Pinterest is left out: it blocks the extraction provider.
var DefaultImageProviders = []ImageProvider{
	{Name: "Unsplash", URLTemplate: "https://unsplash.com/s/photos/{query}"},
	{Name: "Pexels", URLTemplate: "https://www.pexels.com/search/{query}/"},
	{Name: "Pixabay", URLTemplate: "https://pixabay.com/images/search/{query}/"},
}

var imageSchema = extract.Schema{Fields: []extract.Field{
	{Name: "images", Type: extract.ObjectArray, Required: true, Items: []extract.Field{
		{Name: "src", Type: extract.String, Required: true},
		{Name: "alt", Type: extract.String},
	}},
}}

const imagePrompt = "Extract all image results shown on this page. For every image return its full-size " +
	"source URL as src and its alternative text or caption as alt."

type extractedImages struct {
	Images []struct {
		Src string `json:"src"`
		Alt string `json:"alt"`
	} `json:"images"`
}

// SearchImages queries DefaultImageProviders concurrently.
func SearchImages(ctx context.Context, ex Extractor, query string) ([]engine.TaggedImage, error) {
	return SearchImagesFrom(ctx, ex, query, DefaultImageProviders)
}

// SearchImagesFrom queries every provider concurrently and concatenates their
// results in provider order, at most MaxImagesPerSource per provider.
// A failing provider contributes nothing; the call itself only fails when it
// cannot start (blank query, missing extractor or credential).
func SearchImagesFrom(ctx context.Context, ex Extractor, query string, providers []ImageProvider) ([]engine.TaggedImage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if err := checkExtractor(ex); err != nil {
		return nil, fmt.Errorf("image search %q: %w", query, err)
	}
	engine.IncrImageSearchRequests()

	perSource := make([][]engine.TaggedImage, len(providers))
	start := time.Now()

	var g errgroup.Group
	for i, p := range providers {
		g.Go(func() error {
			perSource[i] = fetchProviderImages(ctx, ex, p, query)
			return nil
		})
	}
	_ = g.Wait()

	var out []engine.TaggedImage
	for _, imgs := range perSource {
		out = append(out, imgs...)
	}
	slog.Debug("images: search done",
		slog.String("query", query),
		slog.Int("providers", len(providers)),
		slog.Int("images", len(out)),
		slog.Duration("elapsed", time.Since(start)),
	)
	if out == nil {
		out = []engine.TaggedImage{}
	}
	return out, nil
}

// fetchProviderImages runs one provider's extraction. Errors are logged and swallowed.
func fetchProviderImages(ctx context.Context, ex Extractor, p ImageProvider, query string) []engine.TaggedImage {
	target := TargetURL(p.URLTemplate, query)
	res, err := ex.Extract(ctx, extract.Request{URL: target, Schema: imageSchema, Prompt: imagePrompt})
	if err != nil {
		engine.IncrImageSourceErrors()
		slog.Warn("images: source failed",
			slog.String("source", p.Name),
			slog.String("url", target),
			slog.String("kind", string(extract.KindOf(err))),
			slog.Any("error", err),
		)
		return nil
	}

	var payload extractedImages
	if err := res.Decode(&payload); err != nil {
		engine.IncrImageSourceErrors()
		slog.Warn("images: decode failed", slog.String("source", p.Name), slog.Any("error", err))
		return nil
	}

	tagged := make([]engine.TaggedImage, 0, min(len(payload.Images), MaxImagesPerSource))
	for _, img := range payload.Images {
		if len(tagged) == MaxImagesPerSource {
			break
		}
		src := strings.TrimSpace(img.Src)
		if src == "" {
			continue
		}
		tagged = append(tagged, engine.TaggedImage{Src: src, Alt: img.Alt, Source: p.Name})
	}
	return tagged
}
