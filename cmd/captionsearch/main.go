// Command captionsearch indexes WebVTT caption files and searches them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/captionsearch/internal/adapters/driven/codec/jsonl"
	"github.com/custodia-labs/captionsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/captionsearch/internal/adapters/driven/desktop"
	"github.com/custodia-labs/captionsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/captionsearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/captionsearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/captionsearch/internal/connectors/filesystem"
	"github.com/custodia-labs/captionsearch/internal/connectors/youtube"
	"github.com/custodia-labs/captionsearch/internal/connectors/ytdlp"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/core/services"
	"github.com/custodia-labs/captionsearch/internal/logger"
	"github.com/custodia-labs/captionsearch/internal/normalisers/webvtt"
	"github.com/custodia-labs/captionsearch/internal/postprocessors"
	"github.com/custodia-labs/captionsearch/internal/postprocessors/records"
)

// Set by the release build with -ldflags "-X main.version=...".
var version = "dev"

// captionExtension is the only file type ingested and watched.
const captionExtension = ".vtt"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(wire)

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// wire builds the services from the configuration file and flag overrides.
func wire(opts cli.Options) (*cli.Services, error) {
	configStore, dataDir := openConfig(opts.ConfigDir)

	settingsService := services.NewSettingsService(configStore, dataDir)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if opts.IndexFile != "" {
		settings.Paths.IndexFile = opts.IndexFile
	}
	if opts.SubtitlesDir != "" {
		settings.Paths.SubtitlesDir = opts.SubtitlesDir
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	logger.Debug("index %s, captions %s", settings.Paths.IndexFile, settings.Paths.SubtitlesDir)

	index, err := sqlite.NewIndex(settings.Paths.IndexFile)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := postprocessors.FromConfig(registry, settings.Ingest.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("build cue pipeline: %w", err)
	}

	ingestService := services.NewIngestService(
		filesystem.New(settings.Paths.SubtitlesDir, captionExtension),
		webvtt.New(),
		pipeline,
		records.NewBuilder(settings.Links.Template),
		services.NewIndexBuilder(index, settings.Ingest.BatchSize),
	)
	ingestService.SetCodec(jsonl.New())

	watchService := services.NewWatchService(
		filesystem.NewWatcher(),
		ingestService,
		settings.Paths.SubtitlesDir,
		time.Duration(settings.Watch.DebounceMillis)*time.Millisecond,
		[]string{captionExtension},
	)

	var lookup driven.VideoLookup
	if settings.YouTube.IsConfigured() {
		client, err := youtube.NewClient(context.Background(), settings.YouTube.APIKey, settings.YouTube.RequestsPerSecond)
		if err != nil {
			return nil, fmt.Errorf("create youtube client: %w", err)
		}
		lookup = client
	}

	videoService := services.NewVideoService(
		index,
		lookup,
		ytdlp.New(ytdlp.WithBinary(settings.Fetch.YtDlpPath)),
		settings.Fetch,
		settings.Paths.SubtitlesDir,
	)
	videoService.SetLocation(loadLocation(settings.YouTube.Timezone))

	return &cli.Services{
		Search:   services.NewSearchService(index, settings.Search.MaxResults),
		Ingest:   ingestService,
		Watch:    watchService,
		Video:    videoService,
		Settings: settingsService,
		Actions:  services.NewResultActionService(desktop.NewClipboard(), desktop.NewBrowser()),
	}, nil
}

// openConfig returns the TOML store in dir, or an in-memory store holding
// defaults when the configuration directory cannot be used.
func openConfig(dir string) (driven.ConfigStore, string) {
	store, err := file.NewConfigStore(dir)
	if err == nil {
		logger.Debug("config %s", store.Path())
		if dir == "" {
			dir, _ = file.DefaultDir()
		}
		return store, dir
	}

	logger.Warn("config unavailable, using defaults: %v", err)
	if dir == "" {
		dir = os.TempDir()
	}
	return memory.NewConfigStore(), dir
}

func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("unknown timezone %q, using UTC", name)
		return time.UTC
	}
	return loc
}
