package lookup

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/anatolykoptev/go_mediahub/internal/engine/extract"
)

// fakeExtractor answers by matching a substring of the target URL.
type fakeExtractor struct {
	mu       sync.Mutex
	calls    []extract.Request
	routes   map[string]fakeRoute
	notReady error
}

type fakeRoute struct {
	delay time.Duration
	data  map[string]any
	meta  extract.Metadata
	err   error
}

func (f *fakeExtractor) Extract(ctx context.Context, req extract.Request) (*extract.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	for key, r := range f.routes {
		if !strings.Contains(req.URL, key) {
			continue
		}
		if r.delay > 0 {
			select {
			case <-time.After(r.delay):
			case <-ctx.Done():
				return nil, &extract.Error{Kind: extract.KindProviderUnreachable, URL: req.URL, Err: ctx.Err()}
			}
		}
		if r.err != nil {
			return nil, r.err
		}
		return &extract.Result{URL: req.URL, Data: r.data, Metadata: r.meta}, nil
	}
	return nil, &extract.Error{Kind: extract.KindProviderError, URL: req.URL, StatusCode: 404}
}

func (f *fakeExtractor) Ready() error { return f.notReady }

func (f *fakeExtractor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// imagePayload builds a validated images payload with n entries named after prefix.
func imagePayload(prefix string, n int) map[string]any {
	imgs := make([]any, 0, n)
	for i := range n {
		imgs = append(imgs, map[string]any{
			"src": fmt.Sprintf("https://img.example/%s/%d.jpg", prefix, i),
			"alt": fmt.Sprintf("%s %d", prefix, i),
		})
	}
	return map[string]any{"images": imgs}
}
