// Package cli implements the captionsearch command line.
//
// Commands are registered on rootCmd from init functions and reach the core
// through the driving ports held in package variables. The composition root
// supplies those ports either directly with SetServices or lazily through a
// Bootstrap function that receives the persistent flags.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
	"github.com/custodia-labs/captionsearch/internal/logger"
)

var version = "dev"

// Driving ports used by the commands.
var (
	searchService   driving.SearchService
	ingestService   driving.IngestService
	watchService    driving.WatchService
	videoService    driving.VideoService
	settingsService driving.SettingsService
	actionService   driving.ResultActionService
)

// Persistent flags.
var (
	configDir    string
	indexFile    string
	subtitlesDir string
	verbose      bool
)

// Services groups the driving ports the commands use.
type Services struct {
	Search   driving.SearchService
	Ingest   driving.IngestService
	Watch    driving.WatchService
	Video    driving.VideoService
	Settings driving.SettingsService
	Actions  driving.ResultActionService
}

// Options carries the persistent flag values to the composition root.
// Empty fields mean "use the configured value".
type Options struct {
	ConfigDir    string
	IndexFile    string
	SubtitlesDir string
	Verbose      bool
}

// Bootstrap builds the services once flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var bootstrap Bootstrap

// SetBootstrap registers the function that wires services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs the driving ports used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	ingestService = s.Ingest
	watchService = s.Watch
	videoService = s.Video
	settingsService = s.Settings
	actionService = s.Actions
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "captionsearch",
	Short: "Keyword search over video subtitle transcripts",
	Long: `captionsearch indexes WebVTT caption files named
DATE_TITLE_VIDEOID.<lang>.vtt into a local full-text index and answers
keyword queries with timestamped links back to the videos.

Run "captionsearch rebuild" after adding caption files, then search:
  captionsearch search "keyword"`,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.captionsearch)")
	flags.StringVar(&indexFile, "index", "", "index file path (overrides paths.index_file)")
	flags.StringVar(&subtitlesDir, "subtitles", "", "caption directory (overrides paths.subtitles_dir)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// prepare applies logging flags and wires services through the bootstrap.
func prepare(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd == versionCmd {
		return nil
	}

	services, err := bootstrap(Options{
		ConfigDir:    configDir,
		IndexFile:    indexFile,
		SubtitlesDir: subtitlesDir,
		Verbose:      verbose,
	})
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which commands use for cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
