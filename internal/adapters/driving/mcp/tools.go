package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// SearchInput is the input schema for the search_captions tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"text to find in captions; at least three characters"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of matches (default: configured cap of 200)"`
	VideoID  string `json:"video_id,omitempty" jsonschema:"only search captions of this 11-character video ID"`
	DateFrom string `json:"date_from,omitempty" jsonschema:"earliest upload date as YYYYMMDD"`
	DateTo   string `json:"date_to,omitempty" jsonschema:"latest upload date as YYYYMMDD"`
}

// SearchOutput is the output schema for the search_captions tool.
// Executed is false when the query was blank and no search ran.
type SearchOutput struct {
	Executed     bool          `json:"executed"`
	TotalMatches int           `json:"total_matches"`
	TotalVideos  int           `json:"total_videos"`
	Groups       []GroupOutput `json:"groups"`
}

// GroupOutput is the matches of one video.
type GroupOutput struct {
	Date    string        `json:"date"`
	Title   string        `json:"title"`
	Matches []MatchOutput `json:"matches"`
}

// MatchOutput is one caption line with its deep link.
type MatchOutput struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search_captions",
		Description: "Search video subtitle transcripts for a keyword. " +
			"Returns matching caption lines grouped by video, newest first, " +
			"each with a timestamp and a link that opens the video at that point.",
	}, s.handleSearch)
}

// handleSearch handles the search_captions tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{
		Limit:    input.Limit,
		VideoID:  input.VideoID,
		DateFrom: input.DateFrom,
		DateTo:   input.DateTo,
	}
	result, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Executed:     result.Executed,
		TotalMatches: result.TotalMatches,
		TotalVideos:  result.TotalVideos,
		Groups:       make([]GroupOutput, len(result.Groups)),
	}
	for i, g := range result.Groups {
		group := GroupOutput{
			Date:    domain.DisplayDate(g.Date),
			Title:   g.Title,
			Matches: make([]MatchOutput, len(g.Matches)),
		}
		for j, m := range g.Matches {
			group.Matches[j] = MatchOutput{Text: m.Text, Timestamp: m.Timestamp, URL: m.URL}
		}
		output.Groups[i] = group
	}

	return nil, output, nil
}
