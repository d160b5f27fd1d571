// Package mcp provides an MCP (Model Context Protocol) server adapter for captionsearch.
// It lets AI assistants search the caption index and read index statistics.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
