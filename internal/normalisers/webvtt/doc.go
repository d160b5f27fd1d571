// Package webvtt provides a Normaliser implementation for WebVTT caption files.
//
// Document metadata is carried by the filename, which follows the
// DATE_TITLE_VIDEOID.<lang>.vtt convention produced by the subtitle fetcher.
// Cue text is cleaned of inline markup and positioning settings.
package webvtt
