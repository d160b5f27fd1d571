package services

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
	"github.com/custodia-labs/captionsearch/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService rebuilds the index after the caption directory settles.
type WatchService struct {
	watcher    driven.ChangeWatcher
	ingest     driving.IngestService
	dir        string
	debounce   time.Duration
	extensions []string
}

// NewWatchService creates a new watch service.
// Only changes to files with one of extensions trigger a rebuild.
func NewWatchService(
	watcher driven.ChangeWatcher,
	ingest driving.IngestService,
	dir string,
	debounce time.Duration,
	extensions []string,
) *WatchService {
	if debounce <= 0 {
		debounce = time.Duration(domain.DefaultWatchDebounceMillis) * time.Millisecond
	}
	return &WatchService{
		watcher:    watcher,
		ingest:     ingest,
		dir:        dir,
		debounce:   debounce,
		extensions: extensions,
	}
}

// Run watches the caption directory until ctx is cancelled.
// A rebuild starts once no relevant change was seen for the debounce period.
// Changes during a rebuild schedule another one.
func (s *WatchService) Run(ctx context.Context, onRebuild func(*domain.RebuildReport, error)) error {
	logger.Section("Watch")
	logger.Info("Watching %s (debounce %s)", s.dir, s.debounce)

	changes := make(chan string, 64)
	watchErr := make(chan error, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		watchErr <- s.watcher.Watch(ctx, s.dir, func(path string) {
			if !s.relevant(path) {
				return
			}
			select {
			case changes <- path:
			default:
				// Buffer full: the queued changes already reset the timer.
			}
		})
	}()
	defer wg.Wait()

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-watchErr:
			return err
		case path := <-changes:
			logger.Debug("Change: %s", path)
			timer.Reset(s.debounce)
		case <-timer.C:
			report, err := s.ingest.Rebuild(ctx, nil)
			if err != nil {
				logger.Warn("rebuild after change: %v", err)
			}
			if onRebuild != nil {
				onRebuild(report, err)
			}
		}
	}
}

func (s *WatchService) relevant(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range s.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
