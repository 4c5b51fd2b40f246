// Package lookup builds user-facing answers out of structured extractions:
// knowledge cards for free-text queries and tagged image lists gathered from
// several stock-photo sites at once.
package lookup

import (
	"context"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_mediahub/internal/engine/extract"
)

// DefaultSearchURLTemplate is the page a knowledge card is extracted from.
const DefaultSearchURLTemplate = "https://www.google.com/search?q={query}"

// MaxImagesPerSource caps each provider's contribution before tagging.
const MaxImagesPerSource = 20

// Extractor runs one structured extraction. *extract.Client implements it.
type Extractor interface {
	Extract(ctx context.Context, req extract.Request) (*extract.Result, error)
}

// readier is implemented by extractors that can report a missing credential up front.
type readier interface {
	Ready() error
}

// checkExtractor rejects nil extractors and ones that report they are not configured.
func checkExtractor(ex Extractor) error {
	if ex == nil {
		return extract.ErrMissingAPIKey
	}
	if r, ok := ex.(readier); ok {
		return r.Ready()
	}
	return nil
}

// EncodeQuery percent-encodes q for use inside a URL path or query value.
// Spaces become %20 in both positions.
func EncodeQuery(q string) string {
	return strings.ReplaceAll(url.QueryEscape(q), "+", "%20")
}

// TargetURL substitutes the encoded query into a "{query}" template.
func TargetURL(template, query string) string {
	return strings.ReplaceAll(template, "{query}", EncodeQuery(query))
}
