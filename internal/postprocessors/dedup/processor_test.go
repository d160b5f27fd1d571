package dedup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

func cues(texts ...string) []domain.Cue {
	out := make([]domain.Cue, len(texts))
	for i, text := range texts {
		out[i] = domain.Cue{Start: float64(i), Text: text}
	}
	return out
}

func texts(cues []domain.Cue) []string {
	out := make([]string, len(cues))
	for i, c := range cues {
		out[i] = c.Text
	}
	return out
}

func TestProcessor_Name(t *testing.T) {
	assert.Equal(t, "dedup", New().Name())
}

// TestProcessor_Process tests consecutive duplicate removal
func TestProcessor_Process(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"non-adjacent repeat survives", []string{"A", "A", "B", "A"}, []string{"A", "B", "A"}},
		{"long run collapses", []string{"x", "x", "x", "x"}, []string{"x"}},
		{"no duplicates", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"single cue", []string{"only"}, []string{"only"}},
		{"case sensitive", []string{"Hello", "hello"}, []string{"Hello", "hello"}},
		{"whitespace matters by default", []string{"a  b", "a b"}, []string{"a  b", "a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Process(context.Background(), domain.SourceDocument{}, cues(tt.input...))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, texts(got))
		})
	}
}

// TestProcessor_KeepsFirstOffset tests that the earliest cue of a run is kept
func TestProcessor_KeepsFirstOffset(t *testing.T) {
	input := []domain.Cue{
		{Start: 1.5, Text: "hello"},
		{Start: 3.0, Text: "hello"},
		{Start: 4.5, Text: "world"},
	}

	got, err := New().Process(context.Background(), domain.SourceDocument{}, input)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, 1.5, got[0].Start)
	assert.Equal(t, 4.5, got[1].Start)
	assert.Len(t, input, 3, "input must not be modified")
}

func TestProcessor_Empty(t *testing.T) {
	got, err := New().Process(context.Background(), domain.SourceDocument{}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProcessor_FoldSpace(t *testing.T) {
	got, err := New(WithFoldSpace()).Process(context.Background(), domain.SourceDocument{}, cues("a  b", "a b", " a b "))
	require.NoError(t, err)
	assert.Equal(t, []string{"a  b"}, texts(got))
}
