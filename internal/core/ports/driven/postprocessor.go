package driven

import (
	"context"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// CueProcessor transforms the cues of one document.
// CueProcessors are chained in a pipeline (e.g. deduplication).
type CueProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process receives the cues of a single document and returns the kept cues.
	// Processors must preserve order.
	Process(ctx context.Context, src domain.SourceDocument, cues []domain.Cue) ([]domain.Cue, error)
}

// CuePipeline chains multiple CueProcessors.
type CuePipeline interface {
	// Process runs the cues through all processors in order.
	Process(ctx context.Context, src domain.SourceDocument, cues []domain.Cue) ([]domain.Cue, error)
}

// RecordBuilder turns the cleaned cues of a document into index records.
type RecordBuilder interface {
	// Build creates one record per cue, preserving order.
	Build(src domain.SourceDocument, cues []domain.Cue) []domain.Record
}
