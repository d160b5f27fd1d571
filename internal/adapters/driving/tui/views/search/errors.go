package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrNoActionService indicates that result actions are not wired.
	ErrNoActionService = errors.New("result actions are not available")
)
