package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

var (
	searchLimit int
	searchVideo string
	searchFrom  string
	searchTo    string
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed captions",
	Long: `Finds caption lines containing the query and groups them by video,
newest first. Matching is substring-based (trigram), so queries need at
least three characters. Without --limit the configured cap applies
(search.max_results, 200 by default).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of matches, up to the configured cap")
	searchCmd.Flags().StringVar(&searchVideo, "video", "", "only match captions of this video ID")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "earliest upload date (YYYYMMDD)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "latest upload date (YYYYMMDD)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query := strings.Join(args, " ")
	opts := domain.SearchOptions{
		Limit:    searchLimit,
		VideoID:  searchVideo,
		DateFrom: searchFrom,
		DateTo:   searchTo,
	}

	result, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return fmt.Errorf("no index yet, run \"captionsearch rebuild\" first: %w", err)
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, result)
	}
	return outputSearchText(cmd, result)
}

func outputSearchJSON(cmd *cobra.Command, result *domain.SearchResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, result *domain.SearchResult) error {
	if !result.Executed {
		cmd.Println("Enter a search query.")
		return nil
	}
	if result.IsEmpty() {
		cmd.Printf("No matches for %q.\n", result.Query)
		return nil
	}

	cmd.Printf("%d matches in %d videos\n\n", result.TotalMatches, result.TotalVideos)
	for _, g := range result.Groups {
		// Format: [YYYY-MM-DD] Title
		cmd.Printf("[%s] %s\n", domain.DisplayDate(g.Date), g.Title)
		for _, m := range g.Matches {
			cmd.Printf("  %s  %s\n", m.Timestamp, m.Text)
			cmd.Printf("            %s\n", m.URL)
		}
		cmd.Println()
	}
	return nil
}
