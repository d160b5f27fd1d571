package domain

import "time"

// IndexPhase describes the lifecycle of the persisted index.
//
// A rebuild moves the index from valid to building and back to valid.
// The previous index keeps serving queries until the new one is committed.
type IndexPhase string

const (
	// IndexPhaseMissing means no index has been built yet.
	IndexPhaseMissing IndexPhase = "missing"

	// IndexPhaseValid means a complete index is available.
	IndexPhaseValid IndexPhase = "valid"

	// IndexPhaseBuilding means a staging index is being written.
	IndexPhaseBuilding IndexPhase = "building"
)

// CanTransition reports whether moving from p to next is allowed.
func (p IndexPhase) CanTransition(next IndexPhase) bool {
	switch p {
	case IndexPhaseMissing, IndexPhaseValid:
		return next == IndexPhaseBuilding
	case IndexPhaseBuilding:
		// Commit leads to valid; abort falls back to what was there before.
		return next == IndexPhaseValid || next == IndexPhaseMissing
	default:
		return false
	}
}

// String returns the string representation.
func (p IndexPhase) String() string {
	return string(p)
}

// RebuildReport summarises one ingestion run.
type RebuildReport struct {
	// RunID identifies the rebuild in logs and staging files.
	RunID string

	// Files is the number of caption files considered.
	Files int

	// Documents is the number of files ingested successfully.
	Documents int

	// Malformed counts files skipped because of their filename.
	Malformed int

	// Duplicates counts files skipped because their video was already ingested.
	Duplicates int

	// Failed counts files that could not be read or parsed.
	Failed int

	// Records is the number of records committed to the index.
	Records int

	// Duration is the wall time of the rebuild.
	Duration time.Duration
}

// IndexStats describes the contents of the live index.
type IndexStats struct {
	// Path is the index file location.
	Path string

	Records int
	Videos  int

	// Oldest and Newest are the extreme known upload dates (YYYYMMDD).
	Oldest string
	Newest string
}

// VideoSummary is one row of the per-video listing.
type VideoSummary struct {
	VideoID string
	Date    string
	Title   string
	Records int
}
