package ytdlp

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxTitleBytes keeps generated filenames well below common limits.
const maxTitleBytes = 200

var (
	invalidFileRunes = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
	multiSpace       = regexp.MustCompile(`\s+`)
)

// SanitizeTitle makes a video title safe to embed in a filename.
// Characters that are invalid on common filesystems are removed, whitespace
// is collapsed and trailing dots are dropped. The result may be empty.
func SanitizeTitle(title string) string {
	clean := invalidFileRunes.ReplaceAllString(title, "")
	clean = multiSpace.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(clean)
	clean = strings.TrimRight(clean, ". ")

	if len(clean) > maxTitleBytes {
		clean = clean[:maxTitleBytes]
		for !utf8.ValidString(clean) {
			clean = clean[:len(clean)-1]
		}
	}
	return clean
}
