// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// SearchRequested is a command to perform a search.
type SearchRequested struct {
	Query   string
	Options domain.SearchOptions
}

// SearchCompleted carries a grouped search result back to the model.
type SearchCompleted struct {
	Result *domain.SearchResult
	Err    error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and grouped results view.
	ViewSearch
	// ViewVideos lists the indexed videos.
	ViewVideos
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewVideos:
		return "videos"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// VideosLoaded carries the indexed videos and index statistics.
type VideosLoaded struct {
	Videos []domain.VideoSummary
	Stats  *domain.IndexStats
	Err    error
}

// IndexSummaryLoaded carries index statistics for the home view.
type IndexSummaryLoaded struct {
	Stats *domain.IndexStats
	Err   error
}

// VideoSelected asks the search view to restrict queries to one video.
type VideoSelected struct {
	Video domain.VideoSummary
}

// RebuildCompleted signals an index rebuild finished.
type RebuildCompleted struct {
	Report *domain.RebuildReport
	Err    error
}

// ActionCompleted reports the outcome of a result action such as copying a link.
type ActionCompleted struct {
	Message string
	Err     error
}
