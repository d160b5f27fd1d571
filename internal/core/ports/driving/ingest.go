package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// ProgressFunc receives the number of records committed so far.
type ProgressFunc func(committed int)

// IngestService turns the caption corpus into a searchable index.
type IngestService interface {
	// Rebuild replaces the index with the current contents of the caption directory.
	Rebuild(ctx context.Context, progress ProgressFunc) (*domain.RebuildReport, error)

	// Export writes the records the caption directory would produce to w
	// in the interchange format, without touching the index.
	Export(ctx context.Context, w io.Writer) (*domain.RebuildReport, error)

	// Import replaces the index with the records read from r.
	Import(ctx context.Context, r io.Reader, progress ProgressFunc) (*domain.RebuildReport, error)
}

// WatchService rebuilds the index whenever the caption directory changes.
type WatchService interface {
	// Run blocks until ctx is cancelled. onRebuild is called after every rebuild.
	Run(ctx context.Context, onRebuild func(*domain.RebuildReport, error)) error
}
