package driven

import (
	"context"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// IndexStore owns the persisted full-text index.
//
// Queries read the live index. Rebuilds write a separate staging index
// that replaces the live one only on Commit, so readers never observe a
// partially built index.
type IndexStore interface {
	// BeginRebuild takes the exclusive rebuild lock and opens an empty staging index.
	// Returns domain.ErrRebuildInProgress if another rebuild holds the lock.
	BeginRebuild(ctx context.Context) (IndexWriter, error)

	// Search returns up to opts.Limit records whose text matches query,
	// in the engine's native order.
	// Returns domain.ErrIndexNotFound when no index exists and
	// domain.ErrQueryFailed when the engine rejects the query.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Record, error)

	// Stats summarises the live index.
	Stats(ctx context.Context) (*domain.IndexStats, error)

	// Videos lists indexed videos, newest first.
	Videos(ctx context.Context) ([]domain.VideoSummary, error)

	// Phase reports the current lifecycle phase of the index.
	Phase() domain.IndexPhase

	// Path returns the live index location.
	Path() string
}

// IndexWriter fills a staging index during a rebuild.
// After Commit or Abort every method returns domain.ErrRebuildFinished.
type IndexWriter interface {
	// RunID identifies this rebuild.
	RunID() string

	// InsertBatch writes records in a single committed transaction.
	InsertBatch(ctx context.Context, records []domain.Record) error

	// Commit atomically replaces the live index with the staging index
	// and releases the rebuild lock.
	Commit(ctx context.Context) error

	// Abort discards the staging index and releases the rebuild lock.
	// The live index is left untouched.
	Abort() error
}
