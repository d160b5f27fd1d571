package cli

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
)

type mockSearchService struct {
	result *domain.SearchResult
	err    error
	query  string
	opts   domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error) {
	m.query = query
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockIngestService struct {
	report   *domain.RebuildReport
	err      error
	exported string
	imported string
	rebuilds int
}

func (m *mockIngestService) Rebuild(_ context.Context, progress driving.ProgressFunc) (*domain.RebuildReport, error) {
	m.rebuilds++
	if m.err != nil {
		return nil, m.err
	}
	if progress != nil {
		progress(m.report.Records)
	}
	return m.report, nil
}

func (m *mockIngestService) Export(_ context.Context, w io.Writer) (*domain.RebuildReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	if _, err := io.WriteString(w, m.exported); err != nil {
		return nil, err
	}
	return m.report, nil
}

func (m *mockIngestService) Import(_ context.Context, r io.Reader, _ driving.ProgressFunc) (*domain.RebuildReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.imported = string(data)
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

type mockVideoService struct {
	videos  []domain.VideoSummary
	stats   *domain.IndexStats
	meta    *domain.VideoMetadata
	caption *domain.FetchedCaption
	err     error
	hint    domain.SourceDocument
}

func (m *mockVideoService) Videos(_ context.Context) ([]domain.VideoSummary, error) {
	return m.videos, m.err
}

func (m *mockVideoService) Stats(_ context.Context) (*domain.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockVideoService) Info(_ context.Context, _ string) (*domain.VideoMetadata, error) {
	return m.meta, m.err
}

func (m *mockVideoService) Fetch(_ context.Context, _ string, hint domain.SourceDocument) (*domain.FetchedCaption, error) {
	m.hint = hint
	return m.caption, m.err
}

type mockSettingsService struct {
	entries []domain.SettingEntry
	set     map[string]string
	err     error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := domain.DefaultAppSettings()
	return &s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Entries() ([]domain.SettingEntry, error) {
	return m.entries, m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

type mockWatchService struct {
	reports []*domain.RebuildReport
	errs    []error
}

func (m *mockWatchService) Run(_ context.Context, onRebuild func(*domain.RebuildReport, error)) error {
	for i, r := range m.reports {
		onRebuild(r, m.errs[i])
	}
	return nil
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	search   *mockSearchService
	ingest   *mockIngestService
	video    *mockVideoService
	settings *mockSettingsService
	watch    *mockWatchService
}

func sampleSearchResult() *domain.SearchResult {
	return &domain.SearchResult{
		Query:        "hello",
		Executed:     true,
		TotalMatches: 3,
		TotalVideos:  2,
		Groups: []domain.VideoGroup{
			{
				Date:  "20240101",
				Title: "New Year Stream",
				Matches: []domain.Match{
					{Text: "hello everyone", Timestamp: "00:00:05", URL: "https://www.youtube.com/watch?v=bbbbbbbbbbb&t=5s"},
				},
			},
			{
				Date:  "20231128",
				Title: "Morning Stream",
				Matches: []domain.Match{
					{Text: "hello world", Timestamp: "01:02:05", URL: "https://www.youtube.com/watch?v=aaaaaaaaaaa&t=3725s"},
					{Text: "hello again", Timestamp: "01:03:00", URL: "https://www.youtube.com/watch?v=aaaaaaaaaaa&t=3780s"},
				},
			},
		},
	}
}

// setupTestServices installs mocks for every port and resets command flags.
// The returned cleanup restores an empty service set.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		search: &mockSearchService{result: sampleSearchResult()},
		ingest: &mockIngestService{
			report: &domain.RebuildReport{Files: 3, Documents: 2, Malformed: 1, Records: 42, Duration: 1500 * time.Millisecond},
		},
		video:    &mockVideoService{},
		settings: &mockSettingsService{},
		watch:    &mockWatchService{},
	}
	SetServices(&Services{
		Search:   ts.search,
		Ingest:   ts.ingest,
		Watch:    ts.watch,
		Video:    ts.video,
		Settings: ts.settings,
	})
	resetFlags()

	return ts, func() {
		SetServices(nil)
		resetFlags()
	}
}

// resetFlags clears flag variables, which cobra keeps between executions.
func resetFlags() {
	searchLimit = 0
	searchVideo = ""
	searchFrom = ""
	searchTo = ""
	searchJSON = false
	fetchDate = ""
	fetchTitle = ""
	fetchNoRebuild = false
	mcpHTTPAddr = ""
	verbose = false
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	if stdin != nil {
		rootCmd.SetIn(stdin)
	}
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}
