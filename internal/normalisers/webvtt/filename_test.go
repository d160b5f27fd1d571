package webvtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name string
		file string
		want domain.SourceDocument
	}{
		{
			name: "underscores in title",
			file: "20231128_My_Great_Video_abc12345678.ja.vtt",
			want: domain.SourceDocument{VideoID: "abc12345678", Date: "20231128", Title: "My_Great_Video"},
		},
		{
			name: "underscore and dash in video id",
			file: "20230505_Stream_a_b-c_efghi.ja.vtt",
			want: domain.SourceDocument{VideoID: "a_b-c_efghi", Date: "20230505", Title: "Stream"},
		},
		{
			name: "regional language suffix",
			file: "20230505_Karaoke_xyz98765432.en-US.vtt",
			want: domain.SourceDocument{VideoID: "xyz98765432", Date: "20230505", Title: "Karaoke"},
		},
		{
			name: "original language suffix",
			file: "20230505_Karaoke_xyz98765432.ja-orig.vtt",
			want: domain.SourceDocument{VideoID: "xyz98765432", Date: "20230505", Title: "Karaoke"},
		},
		{
			name: "no date prefix",
			file: "Untitled_Stream_abc12345678.ja.vtt",
			want: domain.SourceDocument{VideoID: "abc12345678", Date: domain.UnknownDate, Title: "Untitled_Stream"},
		},
		{
			name: "digits without separator are not a date",
			file: "202311289_Title_abc12345678.ja.vtt",
			want: domain.SourceDocument{VideoID: "abc12345678", Date: domain.UnknownDate, Title: "202311289_Title"},
		},
		{
			name: "empty title",
			file: "20231128_abc12345678.ja.vtt",
			want: domain.SourceDocument{VideoID: "abc12345678", Date: "20231128", Title: ""},
		},
		{
			name: "japanese title",
			file: "20240101_新年_配信_abc12345678.ja.vtt",
			want: domain.SourceDocument{VideoID: "abc12345678", Date: "20240101", Title: "新年_配信"},
		},
		{
			name: "full path",
			file: "/data/subtitles/20231128_Title_abc12345678.ja.vtt",
			want: domain.SourceDocument{VideoID: "abc12345678", Date: "20231128", Title: "Title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilename(tt.file)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFilename_Malformed(t *testing.T) {
	malformed := []string{
		"notes.txt",
		"20231128_Title_abc12345678.vtt",
		"20231128_tiny.ja.vtt",
		"abc12345678.ja.vtt",
		"20231128_Title_abc12345678.ja.srt",
	}

	for _, name := range malformed {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFilename(name)
			assert.ErrorIs(t, err, domain.ErrMalformedFilename)
		})
	}
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, "ja", Language("20231128_T_abc12345678.ja.vtt"))
	assert.Equal(t, "en-US", Language("20231128_T_abc12345678.en-US.vtt"))
	assert.Equal(t, "", Language("bad.vtt"))
}

func TestFileName_RoundTrip(t *testing.T) {
	sources := []domain.SourceDocument{
		{VideoID: "abc12345678", Date: "20231128", Title: "My_Great_Video"},
		{VideoID: "abc12345678", Date: domain.UnknownDate, Title: "Stream"},
	}

	for _, src := range sources {
		name := FileName(src, "ja")
		got, err := ParseFilename(name)
		require.NoError(t, err, name)
		assert.Equal(t, src, got)
	}
}
