package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

type mockClipboard struct {
	text string
	err  error
}

func (m *mockClipboard) WriteText(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

type mockOpener struct {
	url string
	err error
}

func (m *mockOpener) Open(url string) error {
	if m.err != nil {
		return m.err
	}
	m.url = url
	return nil
}

func TestResultActionService_CopyLink(t *testing.T) {
	ctx := context.Background()
	match := &domain.Match{Text: "hello", URL: "https://www.youtube.com/watch?v=abc12345678&t=90s"}

	t.Run("copies url", func(t *testing.T) {
		clip := &mockClipboard{}
		svc := NewResultActionService(clip, nil)

		require.NoError(t, svc.CopyLink(ctx, match))
		assert.Equal(t, match.URL, clip.text)
	})

	t.Run("copies text", func(t *testing.T) {
		clip := &mockClipboard{}
		svc := NewResultActionService(clip, nil)

		require.NoError(t, svc.CopyText(ctx, match))
		assert.Equal(t, "hello", clip.text)
	})

	t.Run("no clipboard", func(t *testing.T) {
		svc := NewResultActionService(nil, nil)
		assert.ErrorIs(t, svc.CopyLink(ctx, match), domain.ErrUnsupported)
	})

	t.Run("nil match", func(t *testing.T) {
		svc := NewResultActionService(&mockClipboard{}, nil)
		assert.ErrorIs(t, svc.CopyLink(ctx, nil), domain.ErrInvalidInput)
		assert.ErrorIs(t, svc.CopyText(ctx, nil), domain.ErrInvalidInput)
	})

	t.Run("clipboard error is wrapped", func(t *testing.T) {
		svc := NewResultActionService(&mockClipboard{err: errors.New("no display")}, nil)
		err := svc.CopyLink(ctx, match)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no display")
	})
}

func TestResultActionService_OpenLink(t *testing.T) {
	ctx := context.Background()
	match := &domain.Match{URL: "https://www.youtube.com/watch?v=abc12345678&t=0s"}

	t.Run("opens url", func(t *testing.T) {
		opener := &mockOpener{}
		svc := NewResultActionService(nil, opener)

		require.NoError(t, svc.OpenLink(ctx, match))
		assert.Equal(t, match.URL, opener.url)
	})

	t.Run("no opener", func(t *testing.T) {
		svc := NewResultActionService(nil, nil)
		assert.ErrorIs(t, svc.OpenLink(ctx, match), domain.ErrUnsupported)
	})

	t.Run("empty url", func(t *testing.T) {
		svc := NewResultActionService(nil, &mockOpener{})
		assert.ErrorIs(t, svc.OpenLink(ctx, &domain.Match{}), domain.ErrInvalidInput)
	})
}
