package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List indexed videos",
	Args:  cobra.NoArgs,
	RunE:  runVideos,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var infoCmd = &cobra.Command{
	Use:   "info [video-id]",
	Short: "Look up video metadata",
	Long: `Looks up a video's title, broadcast time and thumbnails through the
YouTube Data API. Requires youtube.api_key to be set.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

var (
	fetchDate      string
	fetchTitle     string
	fetchNoRebuild bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [video-id]",
	Short: "Download captions for a video and rebuild",
	Long: `Downloads captions with yt-dlp into the caption directory, named
DATE_TITLE_VIDEOID.<lang>.vtt, then rebuilds the index.

Date and title come from the YouTube Data API when configured, otherwise
from yt-dlp. Use --date and --title to set them explicitly.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchDate, "date", "", "upload date to use in the filename (YYYYMMDD)")
	fetchCmd.Flags().StringVar(&fetchTitle, "title", "", "title to use in the filename")
	fetchCmd.Flags().BoolVar(&fetchNoRebuild, "no-rebuild", false, "skip the index rebuild")

	rootCmd.AddCommand(videosCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(fetchCmd)
}

func runVideos(cmd *cobra.Command, _ []string) error {
	if videoService == nil {
		return errors.New("video service not configured")
	}

	videos, err := videoService.Videos(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list videos: %w", err)
	}
	if len(videos) == 0 {
		cmd.Println("No videos indexed.")
		return nil
	}

	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, []string{domain.DisplayDate(v.Date), v.Title, v.VideoID, strconv.Itoa(v.Records)})
	}
	cmd.Println(renderTable(
		[]string{"Date", "Title", "Video ID", "Lines"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	))
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	if videoService == nil {
		return errors.New("video service not configured")
	}

	stats, err := videoService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	rows := [][]string{
		{"Index", stats.Path},
		{"Records", strconv.Itoa(stats.Records)},
		{"Videos", strconv.Itoa(stats.Videos)},
		{"Oldest", orDash(domain.DisplayDate(stats.Oldest))},
		{"Newest", orDash(domain.DisplayDate(stats.Newest))},
	}
	cmd.Println(renderTable([]string{"Field", "Value"}, rows, nil))
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	if videoService == nil {
		return errors.New("video service not configured")
	}

	meta, err := videoService.Info(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrLookupUnavailable) {
			return fmt.Errorf("set youtube.api_key to enable lookups: %w", err)
		}
		return fmt.Errorf("lookup failed: %w", err)
	}

	cmd.Printf("Title:     %s\n", meta.Title)
	cmd.Printf("Video ID:  %s\n", meta.VideoID)
	cmd.Printf("Published: %s\n", meta.PublishedAt.Format(time.RFC3339))
	if meta.ScheduledStartAt != nil || meta.LiveStartedAt != nil {
		cmd.Printf("Broadcast: %s\n", meta.BroadcastTime().Format(time.RFC3339))
	}
	if thumb := meta.BestThumbnail(); thumb != "" {
		cmd.Printf("Thumbnail: %s\n", thumb)
	}
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	if videoService == nil {
		return errors.New("video service not configured")
	}

	hint := domain.SourceDocument{Date: fetchDate, Title: fetchTitle}
	caption, err := videoService.Fetch(cmd.Context(), args[0], hint)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	cmd.Printf("Saved %s\n", caption.Path)

	if fetchNoRebuild {
		return nil
	}
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	report, err := ingestService.Rebuild(cmd.Context(), progressPrinter(cmd))
	if err != nil {
		return rebuildError(err)
	}
	printReport(cmd, report)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
