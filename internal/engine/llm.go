package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// ErrLLMNotConfigured is returned by LLM helpers when no API key was configured.
var ErrLLMNotConfigured = errors.New("llm not configured (set LLM_API_KEY)")

// LLMReady reports whether an LLM client is available.
func LLMReady() bool {
	return cfg.LLMClient != nil && cfg.LLMAPIKey != ""
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// VideoNotes asks the LLM for study notes on a video and returns them as a list.
func VideoNotes(ctx context.Context, title, channel, description string) ([]string, error) {
	limit := cfg.MaxContentChars
	if limit <= 0 {
		limit = 6000
	}
	if !LLMReady() {
		return nil, ErrLLMNotConfigured
	}
	prompt := fmt.Sprintf(videoNotesPrompt, title, channel, TruncateRunes(description, limit, "..."))
	metrics.LLMCalls.Add(1)
	raw, err := cfg.LLMClient.Complete(ctx, "", prompt,
		llm.WithChatTemperature(0.3),
		llm.WithChatMaxTokens(1024),
	)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return nil, err
	}
	return parseNotes(stripFences(raw))
}

// parseNotes accepts a JSON string array, falling back to one note per bullet line.
func parseNotes(raw string) ([]string, error) {
	var notes []string
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		notes = nil
		for _, line := range strings.Split(raw, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimLeft(line, "-*• ")
			if line != "" {
				notes = append(notes, line)
			}
		}
	}
	notes = compactNotes(notes)
	if len(notes) == 0 {
		return nil, fmt.Errorf("notes: empty LLM response")
	}
	return notes, nil
}

func compactNotes(in []string) []string {
	out := in[:0]
	for _, n := range in {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
