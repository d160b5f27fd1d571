package domain

// DefaultMaxResults caps the number of matches a single query returns.
const DefaultMaxResults = 200

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of matches. Zero, or a value above the
	// configured cap, uses the cap.
	Limit int

	// VideoID restricts matches to one video.
	VideoID string

	// DateFrom and DateTo bound the upload date (YYYYMMDD, inclusive).
	DateFrom string
	DateTo   string
}

// Match is a single utterance returned for a query.
type Match struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}

// VideoGroup collects the matches of one video, in engine order.
type VideoGroup struct {
	Date    string  `json:"date"`
	Title   string  `json:"title"`
	Matches []Match `json:"matches"`
}

// SearchResult is the grouped outcome of a query.
type SearchResult struct {
	// Query is the trimmed query string.
	Query string `json:"query"`

	// Executed is false when the query was blank and no search ran.
	Executed bool `json:"executed"`

	TotalMatches int          `json:"total_matches"`
	TotalVideos  int          `json:"total_videos"`
	Groups       []VideoGroup `json:"groups"`
}

// IsEmpty reports whether a search ran but matched nothing.
func (r *SearchResult) IsEmpty() bool {
	return r.Executed && r.TotalMatches == 0
}

// DisplayDate renders a YYYYMMDD date as YYYY-MM-DD.
// Any other value is returned unchanged.
func DisplayDate(date string) string {
	if len(date) != 8 {
		return date
	}
	for _, r := range date {
		if r < '0' || r > '9' {
			return date
		}
	}
	return date[:4] + "-" + date[4:6] + "-" + date[6:]
}
