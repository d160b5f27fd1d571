package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// RecordIterator yields records one at a time.
// Next returns io.EOF once the stream is exhausted.
type RecordIterator interface {
	Next(ctx context.Context) (domain.Record, error)
}

// RecordWriter serialises records to a stream.
type RecordWriter interface {
	Write(rec domain.Record) error

	// Flush writes any buffered data to the underlying stream.
	Flush() error
}

// RecordCodec creates record readers and writers for an interchange format.
type RecordCodec interface {
	// Name returns the format name (e.g. "jsonl").
	Name() string

	NewWriter(w io.Writer) RecordWriter
	NewReader(r io.Reader) RecordIterator
}
