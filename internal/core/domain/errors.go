package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Ingestion Errors.

	// ErrMalformedFilename indicates a caption filename does not follow
	// the DATE_TITLE_VIDEOID.<lang>.vtt convention. Such files are skipped.
	ErrMalformedFilename = errors.New("malformed caption filename")

	// ErrRebuildInProgress indicates another process holds the rebuild lock.
	ErrRebuildInProgress = errors.New("index rebuild in progress")

	// ErrRebuildFinished indicates a rebuild writer was used after Commit or Abort.
	ErrRebuildFinished = errors.New("index rebuild already finished")

	// Index Errors.

	// ErrIndexNotFound indicates the index file does not exist.
	// The index is never created implicitly at query time; run a rebuild first.
	ErrIndexNotFound = errors.New("index not found")

	// ErrQueryFailed indicates the search engine rejected or failed a query.
	// The wrapped error carries the engine's message.
	ErrQueryFailed = errors.New("query failed")

	// Collaborator Errors.

	// ErrFetchFailed indicates the subtitle fetcher could not produce a caption file.
	ErrFetchFailed = errors.New("subtitle fetch failed")

	// ErrLookupUnavailable indicates the video metadata service is not configured.
	ErrLookupUnavailable = errors.New("video metadata lookup unavailable")

	// ErrUnsupported indicates a desktop action is not available on this system.
	ErrUnsupported = errors.New("not supported on this system")
)
