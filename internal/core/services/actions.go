package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
)

// Ensure ResultActionService implements the interface.
var _ driving.ResultActionService = (*ResultActionService)(nil)

// ResultActionService provides actions on search matches.
type ResultActionService struct {
	clipboard driven.Clipboard
	opener    driven.URLOpener
}

// NewResultActionService creates a new result action service.
// Either collaborator may be nil; the matching actions then return domain.ErrUnsupported.
func NewResultActionService(clipboard driven.Clipboard, opener driven.URLOpener) *ResultActionService {
	return &ResultActionService{
		clipboard: clipboard,
		opener:    opener,
	}
}

// CopyLink copies the match's deep link to the clipboard.
func (s *ResultActionService) CopyLink(_ context.Context, match *domain.Match) error {
	if match == nil || match.URL == "" {
		return fmt.Errorf("%w: match has no link", domain.ErrInvalidInput)
	}
	return s.copy(match.URL)
}

// CopyText copies the caption line to the clipboard.
func (s *ResultActionService) CopyText(_ context.Context, match *domain.Match) error {
	if match == nil {
		return fmt.Errorf("%w: match is nil", domain.ErrInvalidInput)
	}
	return s.copy(match.Text)
}

// OpenLink opens the match's deep link in the browser.
func (s *ResultActionService) OpenLink(_ context.Context, match *domain.Match) error {
	if match == nil || match.URL == "" {
		return fmt.Errorf("%w: match has no link", domain.ErrInvalidInput)
	}
	if s.opener == nil {
		return fmt.Errorf("open link: %w", domain.ErrUnsupported)
	}
	if err := s.opener.Open(match.URL); err != nil {
		return fmt.Errorf("open link: %w", err)
	}
	return nil
}

func (s *ResultActionService) copy(text string) error {
	if s.clipboard == nil {
		return fmt.Errorf("copy: %w", domain.ErrUnsupported)
	}
	if err := s.clipboard.WriteText(text); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}
