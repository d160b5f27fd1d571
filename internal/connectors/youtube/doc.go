// Package youtube looks up video metadata through the YouTube Data API v3.
//
// Requests are throttled with a token bucket and API failures are mapped to
// the package's sentinel errors so callers can tell a missing video from a
// quota or credential problem.
package youtube
