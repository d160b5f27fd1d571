// Package normalisers provides implementations of the Normaliser interface
// for timed-text formats. Each normaliser knows how to turn a caption file
// into a source document and its cues.
package normalisers
