// Package file provides the TOML-backed configuration store.
//
// Keys are exposed flattened ("search.max_results") and written back as
// nested tables, so hand-edited files stay readable.
package file
