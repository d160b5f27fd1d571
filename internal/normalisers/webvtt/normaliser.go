package webvtt

import (
	"bytes"
	"context"
	"fmt"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles WebVTT caption files.
type Normaliser struct{}

// New creates a new WebVTT normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".vtt"}
}

// Normalise derives the source document from the filename and parses the cues.
func (n *Normaliser) Normalise(_ context.Context, file *domain.CaptionFile) (*driven.NormaliseResult, error) {
	if file == nil {
		return nil, domain.ErrInvalidInput
	}

	src, err := ParseFilename(file.Name)
	if err != nil {
		return nil, err
	}

	cues, err := ParseCues(bytes.NewReader(file.Content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file.Name, err)
	}

	return &driven.NormaliseResult{
		Source: src,
		Cues:   cues,
	}, nil
}
