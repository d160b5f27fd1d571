package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the index whenever caption files change",
	Long: `Watches the caption directory and rebuilds the index once changes
settle (watch.debounce_ms, 2000 by default). Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	cmd.Println("Watching for caption changes (Ctrl+C to stop)...")
	return watchService.Run(cmd.Context(), func(report *domain.RebuildReport, err error) {
		if err != nil {
			cmd.PrintErrf("Rebuild failed: %v\n", err)
			return
		}
		printReport(cmd, report)
	})
}
