package postprocessors

import (
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/postprocessors/dedup"
	"github.com/custodia-labs/captionsearch/internal/postprocessors/nfkc"
)

// RegisterDefaults registers all built-in processors with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(dedup.Name, buildDedup)
	r.Register(nfkc.Name, buildNFKC)
}

// buildDedup creates a deduplication processor from generic config.
// Supported config keys:
//   - fold_space (bool): compare texts with whitespace runs collapsed (default: false)
func buildDedup(cfg map[string]any) (driven.CueProcessor, error) {
	var opts []dedup.Option
	if getBoolFromConfig(cfg, "fold_space") {
		opts = append(opts, dedup.WithFoldSpace())
	}
	return dedup.New(opts...), nil
}

// buildNFKC creates a normalisation processor from generic config.
// Supported config keys:
//   - fold_case (bool): also apply Unicode case folding (default: false)
func buildNFKC(cfg map[string]any) (driven.CueProcessor, error) {
	var opts []nfkc.Option
	if getBoolFromConfig(cfg, "fold_case") {
		opts = append(opts, nfkc.WithFoldCase())
	}
	return nfkc.New(opts...), nil
}

// getBoolFromConfig safely extracts a bool from a generic config map.
func getBoolFromConfig(cfg map[string]any, key string) bool {
	if cfg == nil {
		return false
	}
	b, ok := cfg[key].(bool)
	return ok && b
}
