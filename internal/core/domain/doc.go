// Package domain defines the core business entities for captionsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CaptionFile: Opaque bytes of one timed-text document
//   - SourceDocument: Video metadata derived from a caption filename
//   - Cue: One timed utterance inside a caption file
//   - Record: The canonical, indexed unit (cue + video metadata + deep link)
//   - SearchResult: Query matches grouped by video
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
