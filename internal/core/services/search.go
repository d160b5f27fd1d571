package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
	"github.com/custodia-labs/captionsearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService runs keyword queries and groups matches by video.
type SearchService struct {
	index      driven.IndexStore
	maxResults int
}

// NewSearchService creates a new search service.
// maxResults caps the matches of every query; callers may only ask for fewer.
func NewSearchService(index driven.IndexStore, maxResults int) *SearchService {
	if maxResults <= 0 {
		maxResults = domain.DefaultMaxResults
	}
	return &SearchService{
		index:      index,
		maxResults: maxResults,
	}
}

// Search runs query against the index.
//
// A blank query does not reach the index and returns a result with
// Executed set to false. Matches are grouped by date and title, groups
// are ordered newest first and matches keep the engine's order.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, nothing executed")
		return &domain.SearchResult{Groups: []domain.VideoGroup{}}, nil
	}

	if opts.Limit <= 0 || opts.Limit > s.maxResults {
		opts.Limit = s.maxResults
	}
	logger.Debug("Limit: %d, video: %q, dates: %q..%q", opts.Limit, opts.VideoID, opts.DateFrom, opts.DateTo)

	records, err := s.index.Search(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Debug("Index returned %d records", len(records))

	groups := groupRecords(records)
	return &domain.SearchResult{
		Query:        query,
		Executed:     true,
		TotalMatches: len(records),
		TotalVideos:  len(groups),
		Groups:       groups,
	}, nil
}

// groupRecords collects records into per-video groups keyed by date and title.
// Groups are stable-sorted by date descending with unknown dates last.
func groupRecords(records []domain.Record) []domain.VideoGroup {
	type groupKey struct {
		date  string
		title string
	}

	groups := make([]domain.VideoGroup, 0)
	positions := make(map[groupKey]int)

	for _, rec := range records {
		key := groupKey{date: rec.Date, title: rec.Title}
		pos, ok := positions[key]
		if !ok {
			pos = len(groups)
			positions[key] = pos
			groups = append(groups, domain.VideoGroup{
				Date:  rec.Date,
				Title: rec.Title,
			})
		}
		groups[pos].Matches = append(groups[pos].Matches, domain.Match{
			Text:      rec.Text,
			Timestamp: rec.Timestamp,
			URL:       rec.URL,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return dateAfter(groups[i].Date, groups[j].Date)
	})
	return groups
}

// dateAfter orders YYYYMMDD dates descending. domain.UnknownDate sorts last.
func dateAfter(a, b string) bool {
	aUnknown, bUnknown := a == domain.UnknownDate, b == domain.UnknownDate
	switch {
	case aUnknown || bUnknown:
		return !aUnknown && bUnknown
	default:
		return a > b
	}
}
