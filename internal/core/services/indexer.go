package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
	"github.com/custodia-labs/captionsearch/internal/logger"
)

// IndexBuilder fills a fresh index from a record stream.
type IndexBuilder struct {
	store     driven.IndexStore
	batchSize int
}

// NewIndexBuilder creates a new index builder.
// batchSize is the number of records committed per transaction.
func NewIndexBuilder(store driven.IndexStore, batchSize int) *IndexBuilder {
	if batchSize <= 0 {
		batchSize = domain.DefaultBatchSize
	}
	return &IndexBuilder{
		store:     store,
		batchSize: batchSize,
	}
}

// Build drains it into a staging index and swaps it in as the live index.
//
// Every full batch, and the final partial one, is committed before progress
// is reported. On any error the staging index is discarded and the live
// index is left untouched.
func (b *IndexBuilder) Build(
	ctx context.Context, it driven.RecordIterator, progress driving.ProgressFunc,
) (report *domain.RebuildReport, err error) {
	start := time.Now()

	writer, err := b.store.BeginRebuild(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin rebuild: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if abortErr := writer.Abort(); abortErr != nil {
			logger.Warn("discard staging index: %v", abortErr)
		}
	}()

	report = &domain.RebuildReport{RunID: writer.RunID()}
	logger.Info("Rebuild %s: batches of %d", report.RunID, b.batchSize)

	batch := make([]domain.Record, 0, b.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := writer.InsertBatch(ctx, batch); err != nil {
			return fmt.Errorf("insert batch: %w", err)
		}
		report.Records += len(batch)
		batch = batch[:0]
		logger.Debug("Committed %d records", report.Records)
		if progress != nil {
			progress(report.Records)
		}
		return nil
	}

	for {
		rec, nextErr := it.Next(ctx)
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			return nil, fmt.Errorf("read records: %w", nextErr)
		}

		batch = append(batch, rec)
		if len(batch) >= b.batchSize {
			if err = flush(); err != nil {
				return nil, err
			}
		}
	}
	if err = flush(); err != nil {
		return nil, err
	}

	if err = writer.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit rebuild: %w", err)
	}

	report.Duration = time.Since(start)
	logger.Info("Rebuild %s complete: %d records in %s", report.RunID, report.Records, report.Duration)
	return report, nil
}
