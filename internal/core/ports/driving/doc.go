// Package driving declares what the CLI, the TUI and the MCP server may ask
// of the core: search, ingest, watch, video lookups, settings and result
// actions. internal/core/services implements every interface here.
package driving
