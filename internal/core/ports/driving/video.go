package driving

import (
	"context"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// VideoService exposes per-video information and caption acquisition.
type VideoService interface {
	// Videos lists the indexed videos.
	Videos(ctx context.Context) ([]domain.VideoSummary, error)

	// Stats summarises the index.
	Stats(ctx context.Context) (*domain.IndexStats, error)

	// Info looks up video metadata from the external service.
	Info(ctx context.Context, videoID string) (*domain.VideoMetadata, error)

	// Fetch downloads captions for a video into the caption directory.
	// Date and title come from the metadata service unless overridden in hint.
	Fetch(ctx context.Context, videoID string, hint domain.SourceDocument) (*domain.FetchedCaption, error)
}
