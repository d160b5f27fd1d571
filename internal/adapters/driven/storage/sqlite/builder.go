package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/captionsearch/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/logger"
)

// Ensure writer implements the interface.
var _ driven.IndexWriter = (*writer)(nil)

const stagingSuffix = ".staging"

// writer fills a staging file that replaces the live index on commit.
type writer struct {
	index   *Index
	runID   string
	staging string
	db      *sql.DB

	mu       sync.Mutex
	records  int
	finished bool
}

// BeginRebuild takes the rebuild lock and opens a fresh staging database.
// A second concurrent rebuild, in this process or another, fails with
// domain.ErrRebuildInProgress.
func (x *Index) BeginRebuild(ctx context.Context) (driven.IndexWriter, error) {
	if err := x.transition(domain.IndexPhaseBuilding); err != nil {
		return nil, err
	}

	locked, err := x.lock.TryLock()
	if err != nil || !locked {
		x.release()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRebuildInProgress, err)
		}
		return nil, fmt.Errorf("%w: %s is locked", domain.ErrRebuildInProgress, x.lock.Path())
	}

	x.removeStaleStaging()

	runID := uuid.New().String()
	staging := fmt.Sprintf("%s.%s%s", x.path, runID, stagingSuffix)

	db, err := openStaging(ctx, staging)
	if err != nil {
		x.unlock()
		removeStagingFiles(staging)
		return nil, err
	}

	logger.Debug("Rebuild %s staging at %s", runID, staging)
	return &writer{
		index:   x,
		runID:   runID,
		staging: staging,
		db:      db,
	}, nil
}

// openStaging creates the staging database and applies the schema.
func openStaging(ctx context.Context, path string) (*sql.DB, error) {
	// Rollback journal keeps the staging index a single file at rename time.
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(DELETE)&_pragma=synchronous(OFF)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening staging index: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening staging index: %w", err)
	}
	if err := migrate(db, migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// removeStaleStaging deletes staging files left by crashed rebuilds.
// Only called while holding the lock.
func (x *Index) removeStaleStaging() {
	matches, err := filepath.Glob(x.path + ".*" + stagingSuffix + "*")
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err == nil {
			logger.Debug("Removed stale staging file %s", m)
		}
	}
}

// unlock releases the file lock and the in-process phase.
func (x *Index) unlock() {
	if err := x.lock.Unlock(); err != nil {
		logger.Warn("Failed to release index lock: %v", err)
	}
	x.release()
}

func (x *Index) release() {
	x.mu.Lock()
	x.building = false
	x.mu.Unlock()
}

func removeStagingFiles(path string) {
	for _, p := range []string{path, path + "-journal"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to remove %s: %v", p, err)
		}
	}
}

// RunID identifies this rebuild.
func (w *writer) RunID() string {
	return w.runID
}

// InsertBatch writes records in a single transaction.
func (w *writer) InsertBatch(ctx context.Context, records []domain.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return domain.ErrRebuildFinished
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO subtitles (video_id, date, title, text, timestamp, url)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		if _, err := stmt.ExecContext(ctx, r.VideoID, r.Date, r.Title, r.Text, r.Timestamp, r.URL); err != nil {
			return fmt.Errorf("inserting record for %s: %w", r.VideoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	w.records += len(records)
	return nil
}

// Commit publishes the staging index by renaming it over the live file.
func (w *writer) Commit(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return domain.ErrRebuildFinished
	}
	w.finished = true
	defer w.index.unlock()

	if err := w.finalise(ctx); err != nil {
		w.db.Close()
		removeStagingFiles(w.staging)
		return err
	}
	if err := w.db.Close(); err != nil {
		removeStagingFiles(w.staging)
		return fmt.Errorf("closing staging index: %w", err)
	}
	if err := os.Rename(w.staging, w.index.path); err != nil {
		removeStagingFiles(w.staging)
		return fmt.Errorf("publishing index: %w", err)
	}

	logger.Info("Index %s committed (%d records)", w.index.path, w.records)
	return nil
}

// finalise records build metadata and merges segments.
func (w *writer) finalise(ctx context.Context) error {
	meta := map[string]string{
		"run_id":     w.runID,
		"records":    fmt.Sprint(w.records),
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := w.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO index_meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("writing index metadata: %w", err)
		}
	}

	if w.index.optimize {
		if _, err := w.db.ExecContext(ctx, `INSERT INTO subtitles(subtitles) VALUES ('optimize')`); err != nil {
			return fmt.Errorf("optimising index: %w", err)
		}
	}
	return nil
}

// Abort discards the staging index. The live index is untouched.
func (w *writer) Abort() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return domain.ErrRebuildFinished
	}
	w.finished = true
	defer w.index.unlock()

	err := w.db.Close()
	removeStagingFiles(w.staging)
	if err != nil {
		return fmt.Errorf("closing staging index: %w", err)
	}
	logger.Debug("Rebuild %s aborted", w.runID)
	return nil
}

// stagingFiles lists staging files next to the index. Used by tests.
func (x *Index) stagingFiles() []string {
	matches, _ := filepath.Glob(x.path + ".*" + stagingSuffix + "*")
	var out []string
	for _, m := range matches {
		if strings.Contains(filepath.Base(m), stagingSuffix) {
			out = append(out, m)
		}
	}
	return out
}
