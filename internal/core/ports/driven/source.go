package driven

import (
	"context"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// TranscriptSource provides access to the caption corpus.
type TranscriptSource interface {
	// List returns the paths of all caption files in lexicographic order.
	// The order decides which file wins when two share a video ID.
	List(ctx context.Context) ([]string, error)

	// Read loads a single caption file.
	Read(ctx context.Context, path string) (*domain.CaptionFile, error)

	// Root returns the directory the source reads from.
	Root() string
}
