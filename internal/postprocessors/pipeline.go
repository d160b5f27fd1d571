// Package postprocessors provides cue processing implementations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/postprocessors/dedup"
)

// Ensure Pipeline implements the interface.
var _ driven.CuePipeline = (*Pipeline)(nil)

// Pipeline chains multiple CueProcessors and runs them in order.
type Pipeline struct {
	processors []driven.CueProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.CueProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// FromConfig builds a pipeline from the configured processor names.
// Dedup always runs last, whatever its configured position, so no stage can
// reintroduce consecutive duplicate cues.
func FromConfig(r *Registry, cfg domain.PipelineConfig) (*Pipeline, error) {
	p := NewPipeline()
	for _, name := range cfg.Processors {
		if name == dedup.Name {
			continue
		}
		processor, err := r.Build(name, cfg.GetProcessorConfig(name))
		if err != nil {
			return nil, err
		}
		p.Add(processor)
	}

	final, err := r.Build(dedup.Name, cfg.GetProcessorConfig(dedup.Name))
	if err != nil {
		return nil, err
	}
	p.Add(final)
	return p, nil
}

// Process runs the cues of one document through all processors in order.
func (p *Pipeline) Process(ctx context.Context, src domain.SourceDocument, cues []domain.Cue) ([]domain.Cue, error) {
	for _, processor := range p.processors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		cues, err = processor.Process(ctx, src, cues)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	return cues, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.CueProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, processor := range p.processors {
		names[i] = processor.Name()
	}
	return names
}
