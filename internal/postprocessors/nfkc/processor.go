// Package nfkc rewrites cue text to Unicode NFKC form.
//
// Japanese captions mix full-width and half-width forms of the same
// characters (ＡＢＣ and ABC, ｶﾀｶﾅ and カタカナ). Normalising them lets a
// query typed either way find the line.
package nfkc

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
)

// Name is the registry name of the processor.
const Name = "nfkc"

// Ensure Processor implements the interface.
var _ driven.CueProcessor = (*Processor)(nil)

// Processor normalises cue text. Cues that normalise to blank are dropped.
type Processor struct {
	foldCase bool
}

// Option configures the processor.
type Option func(*Processor)

// WithFoldCase also applies Unicode case folding.
func WithFoldCase() Option {
	return func(p *Processor) {
		p.foldCase = true
	}
}

// New creates a new normalisation processor.
func New(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process returns normalised copies of the cues, in order.
// The input slice is not modified.
func (p *Processor) Process(_ context.Context, _ domain.SourceDocument, cues []domain.Cue) ([]domain.Cue, error) {
	// cases.Caser is stateful, so each call gets its own.
	var folder cases.Caser
	if p.foldCase {
		folder = cases.Fold()
	}

	out := make([]domain.Cue, 0, len(cues))
	for _, cue := range cues {
		text := norm.NFKC.String(cue.Text)
		if p.foldCase {
			text = folder.String(text)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		cue.Text = text
		out = append(out, cue)
	}
	return out, nil
}
