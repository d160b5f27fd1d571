package driven

import (
	"context"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// VideoLookup fetches video metadata from an external service.
type VideoLookup interface {
	// Lookup returns metadata for one video.
	// Returns domain.ErrNotFound if the service does not know the video.
	Lookup(ctx context.Context, videoID string) (*domain.VideoMetadata, error)
}

// SubtitleFetcher downloads caption files for a video.
type SubtitleFetcher interface {
	// Fetch saves the captions of src into dir, named after the
	// DATE_TITLE_VIDEOID.<lang>.vtt convention, and returns the saved file.
	// Returns domain.ErrFetchFailed if no caption file was produced.
	Fetch(ctx context.Context, src domain.SourceDocument, lang, dir string) (*domain.FetchedCaption, error)
}
