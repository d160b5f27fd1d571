package jsonl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

func readAll(t *testing.T, input string) ([]domain.Record, error) {
	t.Helper()
	it := New().NewReader(strings.NewReader(input))
	var out []domain.Record
	for {
		rec, err := it.Next(context.Background())
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

func TestWriter_KeyOrder(t *testing.T) {
	var buf bytes.Buffer
	w := New().NewWriter(&buf)

	require.NoError(t, w.Write(domain.Record{
		VideoID:   "abc12345678",
		Date:      "20231128",
		Title:     "Q&A <live>",
		Text:      "hello",
		Timestamp: "00:01:30",
		URL:       "https://www.youtube.com/watch?v=abc12345678&t=90s",
	}))
	assert.Empty(t, buf.String(), "output is buffered until Flush")
	require.NoError(t, w.Flush())

	assert.Equal(t,
		`{"date":"20231128","title":"Q&A <live>","video_id":"abc12345678","text":"hello",`+
			`"timestamp":"00:01:30","url":"https://www.youtube.com/watch?v=abc12345678&t=90s"}`+"\n",
		buf.String())
}

func TestReader(t *testing.T) {
	input := `{"date":"20231128","title":"T","video_id":"abc12345678","text":"one","timestamp":"00:00:01","url":"u1"}

{"video_id":"abc12345678","text":"two"}
`
	records, err := readAll(t, input)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "one", records[0].Text)
	assert.Equal(t, "20231128", records[0].Date)
	assert.Equal(t, domain.UnknownDate, records[1].Date)
}

func TestReader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "invalid json", input: "{\"video_id\":\"x\",\"text\":\"a\"}\nnot json\n", want: "line 2"},
		{name: "missing text", input: `{"video_id":"abc12345678"}`, want: "required"},
		{name: "missing video id", input: `{"text":"hello"}`, want: "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readAll(t, tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().NewReader(strings.NewReader(`{"video_id":"x","text":"a"}`)).Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCodec_Name(t *testing.T) {
	assert.Equal(t, "jsonl", New().Name())
}
