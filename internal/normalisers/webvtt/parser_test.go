package webvtt

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

const sampleVTT = `WEBVTT
Kind: captions
Language: ja

00:00:01.000 --> 00:00:03.500 align:start position:0%
Hello<00:00:01.500><c> world</c>

00:00:03.500 --> 00:00:05.000 align:start position:0%
Hello world

00:01:30.500 --> 00:01:33.000
second&nbsp;line
continues here
`

func TestParseCues_Sample(t *testing.T) {
	cues, err := ParseCues(strings.NewReader(sampleVTT))
	require.NoError(t, err)

	assert.Equal(t, []domain.Cue{
		{Start: 1.0, Text: "Hello world"},
		{Start: 3.5, Text: "Hello world"},
		{Start: 90.5, Text: "second line continues here"},
	}, cues)
}

// TestParseCues_SkipsSettingsLines tests that stray positioning lines are dropped
func TestParseCues_SkipsSettingsLines(t *testing.T) {
	input := "WEBVTT\n\n00:00:02.000 --> 00:00:04.000\nline:0 size:50%\nkept text\n"

	cues, err := ParseCues(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, cues, 1)
	assert.Equal(t, "kept text", cues[0].Text)
}

// TestParseCues_DropsEmptyCues tests that cues with no text after cleaning are dropped
func TestParseCues_DropsEmptyCues(t *testing.T) {
	input := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n<c> </c>\n\n00:00:02.000 --> 00:00:03.000\n\n00:00:03.000 --> 00:00:04.000\nreal\n"

	cues, err := ParseCues(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, cues, 1)
	assert.Equal(t, "real", cues[0].Text)
	assert.Equal(t, 3.0, cues[0].Start)
}

// TestParseCues_DiscardsIdentifiers tests that cue identifiers are not glued to text
func TestParseCues_DiscardsIdentifiers(t *testing.T) {
	input := "WEBVTT\n\n1\n00:00:01.000 --> 00:00:02.000\nfirst\n\nintro-2\n00:00:02.000 --> 00:00:03.000\nsecond\n"

	cues, err := ParseCues(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []domain.Cue{
		{Start: 1, Text: "first"},
		{Start: 2, Text: "second"},
	}, cues)
}

// TestParseCues_SkipsCommentBlocks tests NOTE and STYLE blocks
func TestParseCues_SkipsCommentBlocks(t *testing.T) {
	input := "WEBVTT\n\nNOTE this is a comment\nspanning lines\n\nSTYLE\n::cue { color: red }\n\n00:00:05.000 --> 00:00:06.000\nNOTEBOOK review\n"

	cues, err := ParseCues(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, cues, 1)
	assert.Equal(t, "NOTEBOOK review", cues[0].Text)
}

// TestParseCues_TrailingTextAfterGap tests that text after a final blank line stays with the last cue
func TestParseCues_TrailingTextAfterGap(t *testing.T) {
	input := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nlast\n\ndangling\n"

	cues, err := ParseCues(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, cues, 1)
	assert.Equal(t, "last dangling", cues[0].Text)
}

// autoCaptionVTT follows the layout of YouTube auto-generated captions: the
// first cue has a whitespace-only line before its words, and each later cue
// repeats the previous line.
const autoCaptionVTT = "WEBVTT\nKind: captions\nLanguage: en\n\n" +
	"00:00:00.160 --> 00:00:02.869 align:start position:0%\n" +
	" \n" +
	"all<00:00:00.399><c> right</c><00:00:00.640><c> so</c>\n" +
	"\n" +
	"00:00:02.869 --> 00:00:02.879 align:start position:0%\n" +
	"all right so\n" +
	" \n" +
	"\n" +
	"00:00:02.879 --> 00:00:05.869 align:start position:0%\n" +
	"all right so\n" +
	"here<00:00:03.120><c> we</c><00:00:03.280><c> go</c>\n"

func TestParseCues_AutoCaptionLayout(t *testing.T) {
	cues, err := ParseCues(strings.NewReader(autoCaptionVTT))
	require.NoError(t, err)

	assert.Equal(t, []domain.Cue{
		{Start: 0.16, Text: "all right so"},
		{Start: 2.869, Text: "all right so"},
		{Start: 2.879, Text: "all right so here we go"},
	}, cues)
}

// TestParseCues_TextAfterGapBeforeWords tests that an empty cue takes text that follows a blank line
func TestParseCues_TextAfterGapBeforeWords(t *testing.T) {
	input := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n\nlate words\n\n00:00:02.000 --> 00:00:03.000\nnext\n"

	cues, err := ParseCues(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []domain.Cue{
		{Start: 1, Text: "late words"},
		{Start: 2, Text: "next"},
	}, cues)
}

// TestParseCues_OnlyLastHeldLineIsIdentifier tests that text held after a gap survives an identifier
func TestParseCues_OnlyLastHeldLineIsIdentifier(t *testing.T) {
	input := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nfirst\n\nmore\ncue-2\n00:00:02.000 --> 00:00:03.000\nsecond\n"

	cues, err := ParseCues(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []domain.Cue{
		{Start: 1, Text: "first more"},
		{Start: 2, Text: "second"},
	}, cues)
}

func TestParseCues_HoursOptional(t *testing.T) {
	input := "WEBVTT\n\n01:02.500 --> 01:04.000\nshort form\n"

	cues, err := ParseCues(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, cues, 1)
	assert.InDelta(t, 62.5, cues[0].Start, 0.0001)
}

func TestParseCues_ByteOrderMark(t *testing.T) {
	input := "\ufeffWEBVTT\n\n00:00:01.000 --> 00:00:02.000\ntext\n"

	cues, err := ParseCues(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, cues, 1)
}

func TestParseCues_Empty(t *testing.T) {
	cues, err := ParseCues(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cues)

	cues, err = ParseCues(strings.NewReader("WEBVTT\n\n"))
	require.NoError(t, err)
	assert.Empty(t, cues)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestParseCues_ReadError(t *testing.T) {
	_, err := ParseCues(failingReader{})
	assert.EqualError(t, err, "disk on fire")
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"00:00:00.000", 0},
		{"01:02:05.000", 3725},
		{"00:01:30.700", 90.7},
		{"100:00:00.000", 360000},
		{"02:03.250", 123.25},
		{"garbage", 0},
		{"aa:bb:cc.ddd", 0},
		{"", 0},
		{"00:00:NaN", 0},
		{"1:2:3:4", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseOffset(tt.input), 0.0001)
		})
	}
}
