// Package dedup removes consecutive duplicate cues.
//
// Auto-generated captions often repeat a line across adjacent cues while the
// caption window scrolls. Only the first cue of such a run is kept.
package dedup

import (
	"context"
	"strings"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
)

// Name is the registry name of the processor.
const Name = "dedup"

// Ensure Processor implements the interface.
var _ driven.CueProcessor = (*Processor)(nil)

// Processor drops a cue whose text equals the previous kept cue's text.
// Non-adjacent repeats survive: A, A, B, A becomes A, B, A.
type Processor struct {
	foldSpace bool
}

// Option configures the processor.
type Option func(*Processor)

// WithFoldSpace compares texts with whitespace runs collapsed to a single space.
func WithFoldSpace() Option {
	return func(p *Processor) {
		p.foldSpace = true
	}
}

// New creates a new deduplication processor.
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

// Process returns the cues without consecutive duplicates, in order.
// The input slice is not modified.
func (p *Processor) Process(_ context.Context, _ domain.SourceDocument, cues []domain.Cue) ([]domain.Cue, error) {
	if len(cues) == 0 {
		return cues, nil
	}

	kept := make([]domain.Cue, 0, len(cues))
	var last string
	for i, cue := range cues {
		key := p.key(cue.Text)
		if i > 0 && key == last {
			continue
		}
		kept = append(kept, cue)
		last = key
	}
	return kept, nil
}

func (p *Processor) key(text string) string {
	if !p.foldSpace {
		return text
	}
	return strings.Join(strings.Fields(text), " ")
}
