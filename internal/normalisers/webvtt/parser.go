package webvtt

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// maxLineSize bounds a single caption line.
const maxLineSize = 1024 * 1024

var (
	// timingPattern matches a cue timing line and captures the start offset.
	// Hours are optional in WebVTT.
	timingPattern = regexp.MustCompile(`^((?:\d{2,}:)?\d{2}:\d{2}\.\d{3})\s+-->`)

	// offsetPattern splits a timestamp into hours, minutes and seconds.
	offsetPattern = regexp.MustCompile(`^(?:(\d+):)?(\d{1,2}):(\d{1,2}(?:\.\d+)?)$`)

	// settingPattern matches cue positioning settings.
	settingPattern = regexp.MustCompile(`(?:^|\s)(?:align|position|line|size|vertical|region):\S+`)

	// tagPattern matches inline markup such as <c>, </c> and <00:00:01.000>.
	tagPattern = regexp.MustCompile(`<[^>]+>`)

	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
	)
)

// headerPrefixes are lines that carry file or block metadata rather than text.
var headerPrefixes = []string{"WEBVTT", "Kind:", "Language:"}

// blockPrefixes start blocks that run until the next blank line.
var blockPrefixes = []string{"NOTE", "STYLE", "REGION"}

// cueBuilder accumulates the text lines of the cue being read.
type cueBuilder struct {
	start float64
	parts []string
}

func (b *cueBuilder) text() string {
	return strings.TrimSpace(strings.Join(b.parts, " "))
}

// ParseCues reads WebVTT content and returns its cues in file order.
//
// Header lines, comment blocks, cue identifiers and positioning settings are
// skipped. Cues whose text is empty after cleaning are dropped. Only read
// errors are returned; malformed timings produce a zero offset.
func ParseCues(r io.Reader) ([]domain.Cue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		cues    []domain.Cue
		current *cueBuilder
		// held are text lines seen after a blank line once the current cue has
		// text. The last one is an identifier if a timing line follows.
		held      []string
		afterGap  bool
		skipBlock bool
		first     = true
	)

	flush := func() {
		if current == nil {
			return
		}
		if text := current.text(); text != "" {
			cues = append(cues, domain.Cue{Start: current.start, Text: text})
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		trimmed := strings.TrimSpace(line)

		if line == "" {
			afterGap = true
			skipBlock = false
			continue
		}
		// Whitespace-only lines, common after auto-caption timings, are not gaps.
		if trimmed == "" {
			continue
		}
		if skipBlock {
			continue
		}
		if hasPrefix(trimmed, blockPrefixes) {
			skipBlock = true
			continue
		}
		if hasPrefix(trimmed, headerPrefixes) {
			continue
		}

		if m := timingPattern.FindStringSubmatch(trimmed); m != nil {
			if current != nil && len(held) > 1 {
				current.parts = append(current.parts, held[:len(held)-1]...)
			}
			flush()
			current = &cueBuilder{start: ParseOffset(m[1])}
			held = nil
			afterGap = false
			continue
		}

		if settingPattern.MatchString(trimmed) {
			continue
		}
		if current == nil {
			continue
		}

		text := cleanText(trimmed)
		if text == "" {
			continue
		}
		if afterGap && len(current.parts) > 0 {
			held = append(held, text)
			continue
		}
		afterGap = false
		current.parts = append(current.parts, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if current != nil {
		current.parts = append(current.parts, held...)
	}
	flush()

	return cues, nil
}

// ParseOffset converts HH:MM:SS.mmm (or MM:SS.mmm) to seconds.
// Malformed input yields 0.
func ParseOffset(ts string) float64 {
	m := offsetPattern.FindStringSubmatch(strings.TrimSpace(ts))
	if m == nil {
		return 0
	}

	var hours int
	if m[1] != "" {
		hours, _ = strconv.Atoi(m[1])
	}
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.ParseFloat(m[3], 64)

	return float64(hours*3600+minutes*60) + seconds
}

// cleanText strips inline tags and entities from a cue line.
func cleanText(line string) string {
	line = tagPattern.ReplaceAllString(line, "")
	line = entityReplacer.Replace(line)
	return strings.TrimSpace(line)
}

// hasPrefix reports whether line starts with one of prefixes as a whole word.
func hasPrefix(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if !strings.HasPrefix(line, p) {
			continue
		}
		rest := line[len(p):]
		if rest == "" || strings.HasSuffix(p, ":") || rest[0] == ' ' || rest[0] == '\t' {
			return true
		}
	}
	return false
}
