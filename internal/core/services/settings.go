package services

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyDataDir         = "paths.data_dir"
	KeyIndexFile       = "paths.index_file"
	KeySubtitlesDir    = "paths.subtitles_dir"
	KeyBatchSize       = "ingest.batch_size"
	KeyProcessors      = "ingest.processors"
	KeyMaxResults      = "search.max_results"
	KeyLinkTemplate    = "links.template"
	KeyYouTubeAPIKey   = "youtube.api_key"
	KeyYouTubeRate     = "youtube.requests_per_second"
	KeyYouTubeTimezone = "youtube.timezone"
	KeyYtDlpPath       = "fetch.ytdlp_path"
	KeyLanguage        = "fetch.language"
	KeyWatchDebounce   = "watch.debounce_ms"
)

type settingKind int

const (
	kindString settingKind = iota
	kindPositiveInt
	kindPositiveFloat
	kindList
)

// settingKeys lists every supported key in display order.
var settingKeys = []struct {
	key    string
	kind   settingKind
	secret bool
}{
	{key: KeyDataDir, kind: kindString},
	{key: KeyIndexFile, kind: kindString},
	{key: KeySubtitlesDir, kind: kindString},
	{key: KeyBatchSize, kind: kindPositiveInt},
	{key: KeyProcessors, kind: kindList},
	{key: KeyMaxResults, kind: kindPositiveInt},
	{key: KeyLinkTemplate, kind: kindString},
	{key: KeyYouTubeAPIKey, kind: kindString, secret: true},
	{key: KeyYouTubeRate, kind: kindPositiveFloat},
	{key: KeyYouTubeTimezone, kind: kindString},
	{key: KeyYtDlpPath, kind: kindString},
	{key: KeyLanguage, kind: kindString},
	{key: KeyWatchDebounce, kind: kindPositiveInt},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore    driven.ConfigStore
	defaultDataDir string
}

// NewSettingsService creates a new settings service.
// defaultDataDir is used when paths.data_dir is not configured.
func NewSettingsService(configStore driven.ConfigStore, defaultDataDir string) *SettingsService {
	return &SettingsService{
		configStore:    configStore,
		defaultDataDir: defaultDataDir,
	}
}

// Get retrieves current application settings.
// Paths not set explicitly are derived from the data directory.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	dataDir := s.getString(KeyDataDir, s.defaultDataDir)
	settings := &domain.AppSettings{
		Paths: domain.PathSettings{
			DataDir:      dataDir,
			IndexFile:    s.getString(KeyIndexFile, filepath.Join(dataDir, domain.DefaultIndexFile)),
			SubtitlesDir: s.getString(KeySubtitlesDir, filepath.Join(dataDir, domain.DefaultSubtitlesDir)),
		},
		Ingest: domain.IngestSettings{
			BatchSize: s.getInt(KeyBatchSize, defaults.Ingest.BatchSize),
			Pipeline:  s.GetPipelineConfig(),
		},
		Search: domain.SearchSettings{
			MaxResults: s.getInt(KeyMaxResults, defaults.Search.MaxResults),
		},
		Links: domain.LinkSettings{
			Template: s.getString(KeyLinkTemplate, defaults.Links.Template),
		},
		YouTube: domain.YouTubeSettings{
			APIKey:            s.configStore.GetString(KeyYouTubeAPIKey),
			RequestsPerSecond: s.getFloat(KeyYouTubeRate, defaults.YouTube.RequestsPerSecond),
			Timezone:          s.getString(KeyYouTubeTimezone, defaults.YouTube.Timezone),
		},
		Fetch: domain.FetchSettings{
			YtDlpPath: s.getString(KeyYtDlpPath, defaults.Fetch.YtDlpPath),
			Language:  s.getString(KeyLanguage, defaults.Fetch.Language),
		},
		Watch: domain.WatchSettings{
			DebounceMillis: s.getInt(KeyWatchDebounce, defaults.Watch.DebounceMillis),
		},
	}

	return settings, nil
}

// Set parses value according to the key's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := lookupKind(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindPositiveInt:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindPositiveFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, key)
		}
		parsed = f
	case kindList:
		parsed = splitList(value)
	default:
		if key == KeyLinkTemplate && !strings.Contains(value, "{id}") {
			return fmt.Errorf("%w: link template must contain {id}", domain.ErrInvalidInput)
		}
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Entries returns every supported setting with its effective value.
// Secrets are masked.
func (s *SettingsService) Entries() ([]domain.SettingEntry, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	values := map[string]string{
		KeyDataDir:         settings.Paths.DataDir,
		KeyIndexFile:       settings.Paths.IndexFile,
		KeySubtitlesDir:    settings.Paths.SubtitlesDir,
		KeyBatchSize:       strconv.Itoa(settings.Ingest.BatchSize),
		KeyProcessors:      strings.Join(settings.Ingest.Pipeline.Processors, ","),
		KeyMaxResults:      strconv.Itoa(settings.Search.MaxResults),
		KeyLinkTemplate:    settings.Links.Template,
		KeyYouTubeAPIKey:   settings.YouTube.APIKey,
		KeyYouTubeRate:     strconv.FormatFloat(settings.YouTube.RequestsPerSecond, 'g', -1, 64),
		KeyYouTubeTimezone: settings.YouTube.Timezone,
		KeyYtDlpPath:       settings.Fetch.YtDlpPath,
		KeyLanguage:        settings.Fetch.Language,
		KeyWatchDebounce:   strconv.Itoa(settings.Watch.DebounceMillis),
	}

	entries := make([]domain.SettingEntry, 0, len(settingKeys))
	for _, k := range settingKeys {
		_, set := s.configStore.Get(k.key)
		value := values[k.key]
		if k.secret && value != "" {
			value = maskSecret(value)
		}
		entries = append(entries, domain.SettingEntry{
			Key:       k.key,
			Value:     value,
			IsDefault: !set,
		})
	}
	return entries, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// GetPipelineConfig returns the cue processor pipeline configuration.
// Returns default configuration if nothing is configured.
func (s *SettingsService) GetPipelineConfig() domain.PipelineConfig {
	cfg := domain.DefaultPipelineConfig()

	if processors := s.configStore.GetStringSlice(KeyProcessors); len(processors) > 0 {
		cfg.Processors = processors
	}

	// Per-processor options live under ingest.<name>.<option>.
	for _, name := range cfg.Processors {
		prefix := "ingest." + name + "."
		for _, key := range s.configStore.Keys() {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			if cfg.ProcessorConfigs == nil {
				cfg.ProcessorConfigs = make(map[string]map[string]any)
			}
			if cfg.ProcessorConfigs[name] == nil {
				cfg.ProcessorConfigs[name] = make(map[string]any)
			}
			val, _ := s.configStore.Get(key)
			cfg.ProcessorConfigs[name][strings.TrimPrefix(key, prefix)] = val
		}
	}

	return cfg
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func lookupKind(key string) (settingKind, bool) {
	for _, k := range settingKeys {
		if k.key == key {
			return k.kind, true
		}
	}
	return kindString, false
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// maskSecret keeps the last four characters of a secret.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
