package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.IndexStore = (*Index)(nil)

// Index is the SQLite FTS5 caption index stored in a single file.
type Index struct {
	path string
	lock *flock.Flock

	// optimize merges FTS5 segments before a rebuild is published.
	optimize bool

	mu       sync.Mutex
	building bool
}

// Option configures an Index.
type Option func(*Index)

// WithoutOptimize skips the FTS5 segment merge on commit. Rebuilds finish
// sooner and queries on the new index are slightly slower.
func WithoutOptimize() Option {
	return func(x *Index) {
		x.optimize = false
	}
}

// NewIndex creates an index handle for the file at path.
// The parent directory is created; the file itself is only written by a rebuild.
func NewIndex(path string, opts ...Option) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: index path is empty", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	x := &Index{
		path:     path,
		lock:     flock.New(path + ".lock"),
		optimize: true,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x, nil
}

// Path returns the live index file path.
func (x *Index) Path() string {
	return x.path
}

// Phase reports the lifecycle phase as seen by this process.
func (x *Index) Phase() domain.IndexPhase {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.building {
		return domain.IndexPhaseBuilding
	}
	return x.restingPhase()
}

// restingPhase is the phase when no rebuild runs in this process.
func (x *Index) restingPhase() domain.IndexPhase {
	if _, err := os.Stat(x.path); err == nil {
		return domain.IndexPhaseValid
	}
	return domain.IndexPhaseMissing
}

// transition moves the in-process phase, rejecting invalid moves.
func (x *Index) transition(next domain.IndexPhase) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	current := x.restingPhase()
	if x.building {
		current = domain.IndexPhaseBuilding
	}
	if !current.CanTransition(next) {
		return fmt.Errorf("%w: index cannot move from %s to %s", domain.ErrRebuildInProgress, current, next)
	}
	x.building = next == domain.IndexPhaseBuilding
	return nil
}

// openReadOnly opens the live index for queries.
func (x *Index) openReadOnly(ctx context.Context) (*sql.DB, error) {
	if _, err := os.Stat(x.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (run rebuild first)", domain.ErrIndexNotFound, x.path)
		}
		return nil, fmt.Errorf("stat index: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+x.path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening index: %w", err)
	}
	return db, nil
}

// Search returns records whose text matches query, in the engine's native order.
func (x *Index) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Record, error) {
	db, err := x.openReadOnly(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	stmt, args := buildSearchQuery(query, opts)
	rows, err := db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for rows.Next() {
		var r domain.Record
		if err := rows.Scan(&r.VideoID, &r.Date, &r.Title, &r.Text, &r.Timestamp, &r.URL); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}
	return records, nil
}

// buildSearchQuery renders the MATCH statement with optional projection filters.
func buildSearchQuery(query string, opts domain.SearchOptions) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT video_id, date, title, text, timestamp, url FROM subtitles WHERE subtitles MATCH ?`)
	args := []any{query}

	if opts.VideoID != "" {
		sb.WriteString(` AND video_id = ?`)
		args = append(args, opts.VideoID)
	}
	if opts.DateFrom != "" {
		sb.WriteString(` AND date >= ? AND date <> ?`)
		args = append(args, opts.DateFrom, domain.UnknownDate)
	}
	if opts.DateTo != "" {
		sb.WriteString(` AND date <= ?`)
		args = append(args, opts.DateTo)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultMaxResults
	}
	sb.WriteString(` LIMIT ?`)
	args = append(args, limit)

	return sb.String(), args
}

// Stats summarises the live index.
func (x *Index) Stats(ctx context.Context) (*domain.IndexStats, error) {
	db, err := x.openReadOnly(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	stats := &domain.IndexStats{Path: x.path}
	var oldest, newest sql.NullString
	err = db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT video_id),
			MIN(CASE WHEN date <> ? THEN date END),
			MAX(CASE WHEN date <> ? THEN date END)
		FROM subtitles
	`, domain.UnknownDate, domain.UnknownDate).Scan(&stats.Records, &stats.Videos, &oldest, &newest)
	if err != nil {
		return nil, fmt.Errorf("reading index stats: %w", err)
	}
	stats.Oldest = oldest.String
	stats.Newest = newest.String
	return stats, nil
}

// Videos lists indexed videos, newest first. Unknown dates sort last.
func (x *Index) Videos(ctx context.Context) ([]domain.VideoSummary, error) {
	db, err := x.openReadOnly(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT video_id, MIN(date), MIN(title), COUNT(*)
		FROM subtitles
		GROUP BY video_id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	defer rows.Close()

	var videos []domain.VideoSummary
	for rows.Next() {
		var v domain.VideoSummary
		if err := rows.Scan(&v.VideoID, &v.Date, &v.Title, &v.Records); err != nil {
			return nil, fmt.Errorf("scanning video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}

	sort.SliceStable(videos, func(i, j int) bool {
		a, b := videos[i], videos[j]
		if (a.Date == domain.UnknownDate) != (b.Date == domain.UnknownDate) {
			return b.Date == domain.UnknownDate
		}
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		return a.VideoID < b.VideoID
	})
	return videos, nil
}

// migrate runs all pending migrations against db.
func migrate(db *sql.DB, fsys fs.FS) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_subtitles.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}
