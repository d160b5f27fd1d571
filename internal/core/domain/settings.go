package domain

import (
	"fmt"
	"strings"
)

// Defaults applied when a setting is absent from the configuration file.
const (
	// DefaultBatchSize is the number of records committed per index transaction.
	DefaultBatchSize = 10000

	// DefaultLinkTemplate opens a YouTube video at a given second.
	// {id} is replaced by the video ID and {t} by the integer offset.
	DefaultLinkTemplate = "https://www.youtube.com/watch?v={id}&t={t}s"

	// DefaultIndexFile is the index filename inside the data directory.
	DefaultIndexFile = "captions.db"

	// DefaultSubtitlesDir is the caption directory name inside the data directory.
	DefaultSubtitlesDir = "subtitles"

	// DefaultLanguage is the caption language requested from the fetcher.
	DefaultLanguage = "ja"

	// DefaultYtDlpPath is the fetcher binary looked up on PATH.
	DefaultYtDlpPath = "yt-dlp"

	// DefaultRequestsPerSecond throttles the metadata API.
	DefaultRequestsPerSecond = 2.0

	// DefaultWatchDebounceMillis groups bursts of file events into one rebuild.
	DefaultWatchDebounceMillis = 2000
)

// PathSettings holds filesystem locations.
// Every component receives its paths from here; nothing is hard-coded.
type PathSettings struct {
	// DataDir is the root directory for the index and captions.
	DataDir string

	// IndexFile is the full path of the SQLite index.
	IndexFile string

	// SubtitlesDir is the directory scanned for *.vtt files.
	SubtitlesDir string
}

// IngestSettings holds ingestion behaviour.
type IngestSettings struct {
	// BatchSize is the number of records per committed batch.
	BatchSize int

	// Pipeline lists the cue processors applied to every document.
	Pipeline PipelineConfig
}

// SearchSettings holds query behaviour.
type SearchSettings struct {
	// MaxResults caps the matches returned by one query.
	MaxResults int
}

// LinkSettings controls deep link generation.
type LinkSettings struct {
	// Template contains {id} and {t} placeholders.
	Template string
}

// YouTubeSettings configures the metadata lookup collaborator.
type YouTubeSettings struct {
	// APIKey is the YouTube Data API key. Lookup is disabled when empty.
	APIKey string

	// RequestsPerSecond is the sustained request rate.
	RequestsPerSecond float64

	// Timezone is the IANA zone used to derive file dates. Defaults to UTC.
	Timezone string
}

// IsConfigured returns true if the lookup can be used.
func (y YouTubeSettings) IsConfigured() bool {
	return y.APIKey != ""
}

// FetchSettings configures the subtitle fetcher.
type FetchSettings struct {
	// YtDlpPath is the yt-dlp executable.
	YtDlpPath string

	// Language is the caption language code (e.g. "ja").
	Language string
}

// WatchSettings configures automatic rebuilds.
type WatchSettings struct {
	// DebounceMillis is the quiet period before a rebuild starts.
	DebounceMillis int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Paths   PathSettings
	Ingest  IngestSettings
	Search  SearchSettings
	Links   LinkSettings
	YouTube YouTubeSettings
	Fetch   FetchSettings
	Watch   WatchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Paths are left empty; they depend on the data directory and are
// resolved by the settings loader.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Ingest: IngestSettings{
			BatchSize: DefaultBatchSize,
			Pipeline:  DefaultPipelineConfig(),
		},
		Search: SearchSettings{
			MaxResults: DefaultMaxResults,
		},
		Links: LinkSettings{
			Template: DefaultLinkTemplate,
		},
		YouTube: YouTubeSettings{
			RequestsPerSecond: DefaultRequestsPerSecond,
			Timezone:          "UTC",
		},
		Fetch: FetchSettings{
			YtDlpPath: DefaultYtDlpPath,
			Language:  DefaultLanguage,
		},
		Watch: WatchSettings{
			DebounceMillis: DefaultWatchDebounceMillis,
		},
	}
}

// Validate checks settings for values the pipeline cannot work with.
func (s AppSettings) Validate() error {
	if s.Paths.IndexFile == "" {
		return fmt.Errorf("%w: index file path is empty", ErrInvalidInput)
	}
	if s.Paths.SubtitlesDir == "" {
		return fmt.Errorf("%w: subtitles directory is empty", ErrInvalidInput)
	}
	if s.Ingest.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidInput, s.Ingest.BatchSize)
	}
	if s.Search.MaxResults <= 0 {
		return fmt.Errorf("%w: max results must be positive, got %d", ErrInvalidInput, s.Search.MaxResults)
	}
	if !strings.Contains(s.Links.Template, "{id}") {
		return fmt.Errorf("%w: link template must contain {id}", ErrInvalidInput)
	}
	return nil
}

// PipelineConfig holds cue processor pipeline configuration.
// Uses generic map-based config for extensibility - new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// DefaultPipelineConfig returns the default pipeline configuration.
// Consecutive duplicate cues are always collapsed.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{"dedup"},
	}
}

// SettingEntry is one configuration key with its effective value.
type SettingEntry struct {
	Key   string
	Value string

	// IsDefault is true when the key is not set in the configuration file.
	IsDefault bool
}
