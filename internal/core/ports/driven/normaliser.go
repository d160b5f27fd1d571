package driven

import (
	"context"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// Normaliser transforms a caption file into its source document and cues.
type Normaliser interface {
	// Extensions returns the file extensions this normaliser handles (e.g. ".vtt").
	Extensions() []string

	// Normalise parses metadata from the filename and cues from the content.
	// Returns domain.ErrMalformedFilename when the name does not carry metadata.
	Normalise(ctx context.Context, file *domain.CaptionFile) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Cues are raw: deduplication is handled by the CuePipeline.
type NormaliseResult struct {
	// Source is the document identity derived from the filename.
	Source domain.SourceDocument

	// Cues are the parsed cues in file order.
	Cues []domain.Cue
}
