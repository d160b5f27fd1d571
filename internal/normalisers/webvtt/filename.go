package webvtt

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// VideoIDLength is the length of an external video identifier.
const VideoIDLength = 11

// filenamePattern anchors the video ID right before the language suffix:
// PREFIX_VIDEOID.<lang>.vtt where lang is like ja, ja-orig or en-US.
// Underscores in the title and in the ID itself are allowed.
var filenamePattern = regexp.MustCompile(
	`^(.*)_([A-Za-z0-9_-]{11})\.([A-Za-z]{2,3}(?:-[A-Za-z0-9]+)*)\.vtt$`,
)

// ParseFilename extracts the source document from a caption filename.
//
// The date is the first 8 characters when they are digits followed by an
// underscore, otherwise domain.UnknownDate. The title is everything between
// the date and the video ID.
func ParseFilename(name string) (domain.SourceDocument, error) {
	base := filepath.Base(name)
	m := filenamePattern.FindStringSubmatch(base)
	if m == nil {
		return domain.SourceDocument{}, fmt.Errorf("%w: %s", domain.ErrMalformedFilename, base)
	}

	prefix, videoID := m[1], m[2]
	date, title := splitDate(prefix)

	return domain.SourceDocument{
		VideoID: videoID,
		Date:    date,
		Title:   title,
	}, nil
}

// Language returns the language suffix of a caption filename, or "".
func Language(name string) string {
	m := filenamePattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return ""
	}
	return m[3]
}

// FileName builds the caption filename for a source document.
// It is the inverse of ParseFilename for well-formed titles.
func FileName(src domain.SourceDocument, lang string) string {
	if src.Date == "" || src.Date == domain.UnknownDate {
		return fmt.Sprintf("%s_%s.%s.vtt", src.Title, src.VideoID, lang)
	}
	return fmt.Sprintf("%s_%s_%s.%s.vtt", src.Date, src.Title, src.VideoID, lang)
}

// splitDate separates a leading YYYYMMDD from the title.
func splitDate(prefix string) (date, title string) {
	if len(prefix) < 8 || !isDigits(prefix[:8]) {
		return domain.UnknownDate, prefix
	}
	switch {
	case len(prefix) == 8:
		return prefix, ""
	case prefix[8] == '_':
		return prefix[:8], prefix[9:]
	default:
		return domain.UnknownDate, prefix
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
