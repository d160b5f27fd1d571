// Package tui provides an interactive terminal user interface for captionsearch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Search runs caption queries. Required.
	Search driving.SearchService

	// Video lists indexed videos. Optional.
	Video driving.VideoService

	// Ingest rebuilds the index from the videos view. Optional.
	Ingest driving.IngestService

	// ResultAction copies and opens match links. Optional.
	ResultAction driving.ResultActionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
