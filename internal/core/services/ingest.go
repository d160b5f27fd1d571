package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
	"github.com/custodia-labs/captionsearch/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService turns caption files into index records.
type IngestService struct {
	source     driven.TranscriptSource
	normaliser driven.Normaliser
	pipeline   driven.CuePipeline
	builder    driven.RecordBuilder
	indexer    *IndexBuilder
	codec      driven.RecordCodec
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	source driven.TranscriptSource,
	normaliser driven.Normaliser,
	pipeline driven.CuePipeline,
	builder driven.RecordBuilder,
	indexer *IndexBuilder,
) *IngestService {
	return &IngestService{
		source:     source,
		normaliser: normaliser,
		pipeline:   pipeline,
		builder:    builder,
		indexer:    indexer,
	}
}

// SetCodec sets the interchange format used by Export and Import.
func (s *IngestService) SetCodec(codec driven.RecordCodec) {
	s.codec = codec
}

// Rebuild replaces the index with the records of every caption file.
func (s *IngestService) Rebuild(ctx context.Context, progress driving.ProgressFunc) (*domain.RebuildReport, error) {
	logger.Section("Rebuild")
	defer logger.Timed("rebuild")()

	it, err := s.transcripts(ctx)
	if err != nil {
		return nil, err
	}

	report, err := s.indexer.Build(ctx, it, progress)
	if err != nil {
		return nil, err
	}
	it.fill(report)
	return report, nil
}

// Export writes the records of every caption file to w without touching the index.
func (s *IngestService) Export(ctx context.Context, w io.Writer) (*domain.RebuildReport, error) {
	logger.Section("Export")
	if s.codec == nil {
		return nil, fmt.Errorf("%w: no export format configured", domain.ErrInvalidInput)
	}

	it, err := s.transcripts(ctx)
	if err != nil {
		return nil, err
	}

	out := s.codec.NewWriter(w)
	report := &domain.RebuildReport{}
	for {
		rec, err := it.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := out.Write(rec); err != nil {
			return nil, fmt.Errorf("write %s: %w", s.codec.Name(), err)
		}
		report.Records++
	}
	if err := out.Flush(); err != nil {
		return nil, fmt.Errorf("write %s: %w", s.codec.Name(), err)
	}

	it.fill(report)
	logger.Info("Exported %d records from %d documents", report.Records, report.Documents)
	return report, nil
}

// Import replaces the index with the records read from r.
func (s *IngestService) Import(
	ctx context.Context, r io.Reader, progress driving.ProgressFunc,
) (*domain.RebuildReport, error) {
	logger.Section("Import")
	if s.codec == nil {
		return nil, fmt.Errorf("%w: no import format configured", domain.ErrInvalidInput)
	}
	return s.indexer.Build(ctx, s.codec.NewReader(r), progress)
}

// transcripts lists the caption files and returns a lazy record iterator over them.
func (s *IngestService) transcripts(ctx context.Context) (*transcriptIterator, error) {
	paths, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list caption files: %w", err)
	}
	logger.Info("Found %d caption files in %s", len(paths), s.source.Root())

	return &transcriptIterator{
		svc:   s,
		paths: s.supported(paths),
		seen:  make(map[string]struct{}),
	}, nil
}

// supported filters paths to the extensions the normaliser handles.
func (s *IngestService) supported(paths []string) []string {
	exts := s.normaliser.Extensions()
	out := paths[:0:0]
	for _, p := range paths {
		ext := strings.ToLower(filepath.Ext(p))
		for _, e := range exts {
			if ext == e {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// transcriptIterator yields the records of one caption file at a time.
// A video ID is claimed by the first file that ingests successfully;
// later files with the same ID are skipped.
type transcriptIterator struct {
	svc     *IngestService
	paths   []string
	pos     int
	pending []domain.Record
	seen    map[string]struct{}

	files      int
	documents  int
	malformed  int
	duplicates int
	failed     int
}

// Next returns the next record, or io.EOF when all files are consumed.
func (it *transcriptIterator) Next(ctx context.Context) (domain.Record, error) {
	for len(it.pending) == 0 {
		if err := ctx.Err(); err != nil {
			return domain.Record{}, err
		}
		if it.pos >= len(it.paths) {
			return domain.Record{}, io.EOF
		}
		path := it.paths[it.pos]
		it.pos++
		it.pending = it.load(ctx, path)
	}

	rec := it.pending[0]
	it.pending = it.pending[1:]
	return rec, nil
}

// load turns one caption file into records. Failures are logged and counted.
func (it *transcriptIterator) load(ctx context.Context, path string) []domain.Record {
	it.files++
	s := it.svc

	file, err := s.source.Read(ctx, path)
	if err != nil {
		it.failed++
		logger.Warn("read %s: %v", path, err)
		return nil
	}

	result, err := s.normaliser.Normalise(ctx, file)
	if errors.Is(err, domain.ErrMalformedFilename) {
		it.malformed++
		logger.Warn("skipping %s: %v", file.Name, err)
		return nil
	}
	if err != nil {
		it.failed++
		logger.Warn("normalise %s: %v", file.Name, err)
		return nil
	}

	src := result.Source
	if _, dup := it.seen[src.VideoID]; dup {
		it.duplicates++
		logger.Debug("Skipping %s: video %s already ingested", file.Name, src.VideoID)
		return nil
	}

	cues, err := s.pipeline.Process(ctx, src, result.Cues)
	if err != nil {
		it.failed++
		logger.Warn("process %s: %v", file.Name, err)
		return nil
	}

	records := s.builder.Build(src, cues)
	it.seen[src.VideoID] = struct{}{}
	it.documents++
	logger.Debug("%s: %d cues, %d records", file.Name, len(result.Cues), len(records))
	return records
}

// fill copies the per-file counters into report.
func (it *transcriptIterator) fill(report *domain.RebuildReport) {
	report.Files = it.files
	report.Documents = it.documents
	report.Malformed = it.malformed
	report.Duplicates = it.duplicates
	report.Failed = it.failed
}
