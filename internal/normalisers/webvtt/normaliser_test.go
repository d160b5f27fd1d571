package webvtt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

func TestNormaliser_Extensions(t *testing.T) {
	assert.Equal(t, []string{".vtt"}, New().Extensions())
}

func TestNormaliser_Normalise(t *testing.T) {
	file := &domain.CaptionFile{
		Name:    "20231128_My_Great_Video_abc12345678.ja.vtt",
		Path:    "/subs/20231128_My_Great_Video_abc12345678.ja.vtt",
		Content: []byte(sampleVTT),
	}

	result, err := New().Normalise(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, "abc12345678", result.Source.VideoID)
	assert.Equal(t, "My_Great_Video", result.Source.Title)
	assert.Len(t, result.Cues, 3)
}

func TestNormaliser_MalformedFilename(t *testing.T) {
	file := &domain.CaptionFile{Name: "random.vtt", Content: []byte(sampleVTT)}

	_, err := New().Normalise(context.Background(), file)
	assert.ErrorIs(t, err, domain.ErrMalformedFilename)
}

func TestNormaliser_NilFile(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
