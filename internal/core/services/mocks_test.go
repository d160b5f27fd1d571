package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
)

// --- Index store ---

// mockIndexWriter records the batches written during a rebuild.
type mockIndexWriter struct {
	runID     string
	batches   [][]domain.Record
	insertErr error
	commitErr error
	committed bool
	aborted   bool
}

func (m *mockIndexWriter) RunID() string { return m.runID }

func (m *mockIndexWriter) InsertBatch(_ context.Context, records []domain.Record) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.batches = append(m.batches, append([]domain.Record(nil), records...))
	return nil
}

func (m *mockIndexWriter) Commit(_ context.Context) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.committed = true
	return nil
}

func (m *mockIndexWriter) Abort() error {
	m.aborted = true
	return nil
}

func (m *mockIndexWriter) records() []domain.Record {
	var out []domain.Record
	for _, b := range m.batches {
		out = append(out, b...)
	}
	return out
}

// mockIndexStore implements driven.IndexStore for testing.
type mockIndexStore struct {
	beginErr error
	writers  []*mockIndexWriter
	// newWriter customises writers created by BeginRebuild.
	newWriter func() *mockIndexWriter

	searchRecords []domain.Record
	searchErr     error
	searchCalls   int
	lastQuery     string
	lastOpts      domain.SearchOptions

	stats    *domain.IndexStats
	videos   []domain.VideoSummary
	statsErr error
}

func (m *mockIndexStore) BeginRebuild(_ context.Context) (driven.IndexWriter, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	w := &mockIndexWriter{runID: "run-test"}
	if m.newWriter != nil {
		w = m.newWriter()
	}
	m.writers = append(m.writers, w)
	return w, nil
}

func (m *mockIndexStore) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.Record, error) {
	m.searchCalls++
	m.lastQuery = query
	m.lastOpts = opts
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if opts.Limit > 0 && len(m.searchRecords) > opts.Limit {
		return m.searchRecords[:opts.Limit], nil
	}
	return m.searchRecords, nil
}

func (m *mockIndexStore) Stats(_ context.Context) (*domain.IndexStats, error) {
	return m.stats, m.statsErr
}

func (m *mockIndexStore) Videos(_ context.Context) ([]domain.VideoSummary, error) {
	return m.videos, m.statsErr
}

func (m *mockIndexStore) Phase() domain.IndexPhase { return domain.IndexPhaseValid }
func (m *mockIndexStore) Path() string             { return "/tmp/captions.db" }

func (m *mockIndexStore) lastWriter() *mockIndexWriter {
	if len(m.writers) == 0 {
		return nil
	}
	return m.writers[len(m.writers)-1]
}

// --- Transcript source ---

// mockSource serves caption files from memory.
type mockSource struct {
	files   map[string]string
	readErr map[string]error
	listErr error
}

func (m *mockSource) List(_ context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (m *mockSource) Read(_ context.Context, path string) (*domain.CaptionFile, error) {
	if err := m.readErr[path]; err != nil {
		return nil, err
	}
	content, ok := m.files[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.CaptionFile{
		Name:    path[strings.LastIndex(path, "/")+1:],
		Path:    path,
		Content: []byte(content),
	}, nil
}

func (m *mockSource) Root() string { return "/subs" }

// --- Record streams ---

// sliceIterator yields records from a slice.
type sliceIterator struct {
	records []domain.Record
	err     error
}

func (s *sliceIterator) Next(_ context.Context) (domain.Record, error) {
	if len(s.records) == 0 {
		if s.err != nil {
			return domain.Record{}, s.err
		}
		return domain.Record{}, io.EOF
	}
	rec := s.records[0]
	s.records = s.records[1:]
	return rec, nil
}

// lineCodec writes one record text per line and reads lines back as records.
type lineCodec struct{}

func (lineCodec) Name() string { return "lines" }

func (lineCodec) NewWriter(w io.Writer) driven.RecordWriter { return &lineWriter{w: w} }

func (lineCodec) NewReader(r io.Reader) driven.RecordIterator {
	data, _ := io.ReadAll(r)
	var records []domain.Record
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line != "" {
			records = append(records, domain.Record{VideoID: "abc12345678", Text: line})
		}
	}
	return &sliceIterator{records: records}
}

type lineWriter struct {
	w io.Writer
}

func (l *lineWriter) Write(rec domain.Record) error {
	_, err := io.WriteString(l.w, rec.Text+"\n")
	return err
}

func (l *lineWriter) Flush() error { return nil }

// --- Config store ---

// mockConfigStore is an in-memory driven.ConfigStore.
type mockConfigStore struct {
	mu     sync.Mutex
	data   map[string]any
	setErr error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	v, _ := m.Get(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	v, _ := m.Get(key)
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	v, _ := m.Get(key)
	s, _ := v.([]string)
	return s
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- Video collaborators ---

type mockLookup struct {
	meta  *domain.VideoMetadata
	err   error
	calls int
}

func (m *mockLookup) Lookup(_ context.Context, _ string) (*domain.VideoMetadata, error) {
	m.calls++
	return m.meta, m.err
}

type mockFetcher struct {
	got  domain.SourceDocument
	lang string
	dir  string
	err  error
}

func (m *mockFetcher) Fetch(_ context.Context, src domain.SourceDocument, lang, dir string) (*domain.FetchedCaption, error) {
	m.got, m.lang, m.dir = src, lang, dir
	if m.err != nil {
		return nil, m.err
	}
	return &domain.FetchedCaption{Source: src, Path: dir + "/" + src.VideoID + ".vtt"}, nil
}

// --- Watcher ---

// mockWatcher delivers the given paths, then blocks until cancelled.
type mockWatcher struct {
	paths []string
	err   error
}

func (m *mockWatcher) Watch(ctx context.Context, _ string, onChange func(string)) error {
	if m.err != nil {
		return m.err
	}
	for _, p := range m.paths {
		onChange(p)
	}
	<-ctx.Done()
	return nil
}

// mockIngest counts rebuilds.
type mockIngest struct {
	mu       sync.Mutex
	rebuilds int
	err      error
}

func (m *mockIngest) Rebuild(_ context.Context, _ driving.ProgressFunc) (*domain.RebuildReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rebuilds++
	if m.err != nil {
		return nil, m.err
	}
	return &domain.RebuildReport{Records: 1}, nil
}

func (m *mockIngest) Export(_ context.Context, _ io.Writer) (*domain.RebuildReport, error) {
	return nil, errors.New("not implemented")
}

func (m *mockIngest) Import(_ context.Context, _ io.Reader, _ driving.ProgressFunc) (*domain.RebuildReport, error) {
	return nil, errors.New("not implemented")
}

func (m *mockIngest) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rebuilds
}
