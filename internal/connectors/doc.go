// Package connectors provides the places caption files come from.
// Each connector knows how to list and read timed-text files from one
// kind of storage (currently the local filesystem) and, where supported,
// how to watch it for changes.
package connectors
