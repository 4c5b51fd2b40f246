package engine

import (
	"testing"
	"time"
)

func TestNewHTTPClientTimeout(t *testing.T) {
	if got := NewHTTPClient(3 * time.Second).Timeout; got != 3*time.Second {
		t.Errorf("NewHTTPClient(3s).Timeout = %v", got)
	}
	if got := NewHTTPClient(0).Timeout; got != 15*time.Second {
		t.Errorf("NewHTTPClient(0).Timeout = %v, want 15s", got)
	}
}

func TestHTTPClientUsesFetchTimeout(t *testing.T) {
	Init(Config{FetchTimeout: 7 * time.Second})
	t.Cleanup(func() { Init(Config{}) })
	if got := HTTPClient().Timeout; got != 7*time.Second {
		t.Errorf("HTTPClient().Timeout = %v, want 7s", got)
	}
}
