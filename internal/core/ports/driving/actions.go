package driving

import (
	"context"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// ResultActionService provides actions on search matches for external actors.
type ResultActionService interface {
	// CopyLink copies the match's deep link to the system clipboard.
	CopyLink(ctx context.Context, match *domain.Match) error

	// CopyText copies the caption line to the system clipboard.
	CopyText(ctx context.Context, match *domain.Match) error

	// OpenLink opens the match's deep link in the default browser.
	OpenLink(ctx context.Context, match *domain.Match) error
}
