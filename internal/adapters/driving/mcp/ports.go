package mcp

import (
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search runs caption queries. Required.
	Search driving.SearchService

	// Video serves index statistics, the video list and metadata. Optional.
	Video driving.VideoService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
