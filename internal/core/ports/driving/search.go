package driving

import (
	"context"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search runs a keyword query and groups the matches by video.
	// A blank query returns a result with Executed set to false.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error)
}
