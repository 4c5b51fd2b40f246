package main

import (
	"testing"
	"time"

	"github.com/anatolykoptev/go_mediahub/internal/engine/extract"
)

func TestExtractConfigFromEnv(t *testing.T) {
	t.Setenv("EXTRACT_MAX_RETRIES", "2")
	t.Setenv("EXTRACT_RETRY_WAIT", "2s")
	t.Setenv("EXTRACT_TIMEOUT", "10s")

	c := extractConfig("key")
	if c.APIKey != "key" {
		t.Errorf("APIKey = %q", c.APIKey)
	}
	if c.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", c.MaxRetries)
	}
	if c.RetryWait != 2*time.Second {
		t.Errorf("RetryWait = %v, want 2s", c.RetryWait)
	}
	if c.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", c.Timeout)
	}
}

func TestExtractConfigDefaults(t *testing.T) {
	c := extractConfig("")
	if c.BaseURL != extract.DefaultBaseURL {
		t.Errorf("BaseURL = %q", c.BaseURL)
	}
	if c.MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want 0 (retries off by default)", c.MaxRetries)
	}
	if c.RetryWait != 500*time.Millisecond {
		t.Errorf("RetryWait = %v, want 500ms", c.RetryWait)
	}
}
