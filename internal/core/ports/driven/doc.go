// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TranscriptSource: Lists and reads caption files
//   - Normaliser: Turns a caption file into a source document and cues
//   - CuePipeline: Cleans cues (deduplication) before records are built
//   - IndexStore: Full-text index rebuild and query (SQLite FTS5)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RecordCodec: JSON Lines export and import
//   - VideoLookup: Video metadata service. Without it, fetch needs an explicit date and title.
//   - SubtitleFetcher: Downloads caption files (yt-dlp)
//   - ChangeWatcher: Filesystem notifications for automatic rebuilds
//   - Clipboard, URLOpener: Desktop integration for the TUI result actions
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, normaliser, or postprocessor package
package driven
