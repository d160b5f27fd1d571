package postprocessors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
)

// BuilderFunc creates a CueProcessor from the options found under
// ingest.<name>.* in the configuration file. cfg may be nil.
type BuilderFunc func(cfg map[string]any) (driven.CueProcessor, error)

// Registry resolves the names listed in ingest.processors to processors.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates an empty registry. Use RegisterDefaults for the
// built-in processors.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]BuilderFunc)}
}

// Register adds a builder under name, which should equal the processor's
// Name(). Registering a name twice panics.
func (r *Registry) Register(name string, builder BuilderFunc) {
	if _, dup := r.builders[name]; dup {
		panic("postprocessors: Register called twice for " + name)
	}
	r.builders[name] = builder
}

// Build creates the processor registered as name.
// Unknown names wrap domain.ErrInvalidInput and list the known ones.
func (r *Registry) Build(name string, cfg map[string]any) (driven.CueProcessor, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown cue processor %q (known: %s)",
			domain.ErrInvalidInput, name, strings.Join(r.Names(), ", "))
	}
	p, err := builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("configure %s: %w", name, err)
	}
	return p, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
