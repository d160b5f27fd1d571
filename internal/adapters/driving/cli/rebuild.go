package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the index from the caption directory",
	Long: `Reads every caption file in the caption directory and replaces the
index with the result. Files with malformed names are skipped with a
warning, and only the first file of each video ID is used.

The previous index keeps answering queries until the new one is complete.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export caption records as JSON Lines",
	Long: `Writes the records the caption directory produces as JSON Lines,
one {date,title,video_id,text,timestamp,url} object per line. The index is
not touched. Without a file, or with "-", records go to standard output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Rebuild the index from a JSON Lines file",
	Long: `Replaces the index with the records in a JSON Lines file written by
export. With "-" records are read from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runRebuild(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	cmd.Println("Rebuilding index...")
	report, err := ingestService.Rebuild(cmd.Context(), progressPrinter(cmd))
	if err != nil {
		return rebuildError(err)
	}

	printReport(cmd, report)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	var w io.Writer = cmd.OutOrStdout()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	report, err := ingestService.Export(cmd.Context(), w)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	// Keep stdout clean for piping.
	cmd.PrintErrf("Exported %d records from %d files\n", report.Records, report.Documents)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	cmd.Println("Importing records...")
	report, err := ingestService.Import(cmd.Context(), r, progressPrinter(cmd))
	if err != nil {
		return rebuildError(err)
	}

	cmd.Printf("\rIndexed %d records.\n", report.Records)
	return nil
}

// progressPrinter overwrites a single progress line as batches commit.
func progressPrinter(cmd *cobra.Command) driving.ProgressFunc {
	return func(committed int) {
		cmd.Printf("\rIndexed %d records...", committed)
	}
}

func rebuildError(err error) error {
	if errors.Is(err, domain.ErrRebuildInProgress) {
		return fmt.Errorf("another rebuild is running: %w", err)
	}
	return fmt.Errorf("rebuild failed: %w", err)
}

func printReport(cmd *cobra.Command, r *domain.RebuildReport) {
	cmd.Printf("\rIndexed %d records from %d of %d files in %s.\n",
		r.Records, r.Documents, r.Files, r.Duration.Round(time.Millisecond))
	if r.Malformed > 0 {
		cmd.Printf("  Skipped %d files with malformed names\n", r.Malformed)
	}
	if r.Duplicates > 0 {
		cmd.Printf("  Skipped %d duplicate videos\n", r.Duplicates)
	}
	if r.Failed > 0 {
		cmd.Printf("  %d files could not be read\n", r.Failed)
	}
}
