// Package sqlite provides the full-text caption index on SQLite FTS5.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Text is tokenised with the trigram
// tokenizer, so substring queries work for scripts without word boundaries.
//
// # Rebuilds
//
// A rebuild writes a new database next to the live one, named
// <index>.<run-id>.staging, and renames it over the live file on commit.
// Readers see either the old or the new index, never a partial one.
// A lock file (<index>.lock) allows one rebuild at a time across processes.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory and applied to every fresh staging database.
//
// # Queries
//
// Every query opens the live file read-only. A missing file is reported
// as domain.ErrIndexNotFound and is never created implicitly.
package sqlite
