package sources

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_mediahub/internal/engine"
)

// YouTubeNotes generates study notes for a video from its title, channel and description.
func YouTubeNotes(ctx context.Context, rawURL string) (*engine.YouTubeNotesOutput, error) {
	if !engine.LLMReady() {
		return nil, engine.ErrLLMNotConfigured
	}
	info, err := FetchYouTubeInfo(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	engine.IncrYouTubeNotes()

	notes, err := engine.VideoNotes(ctx, info.Title, info.Channel, info.Description)
	if err != nil {
		return nil, fmt.Errorf("youtube notes %s: %w", info.VideoID, err)
	}
	return &engine.YouTubeNotesOutput{
		VideoID: info.VideoID,
		Title:   info.Title,
		Channel: info.Channel,
		Notes:   notes,
	}, nil
}
