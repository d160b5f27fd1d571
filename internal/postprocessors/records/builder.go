// Package records turns deduplicated cues into searchable records.
package records

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// Builder renders records with deep links from a URL template.
type Builder struct {
	template string
}

// NewBuilder creates a builder for the given link template.
// {id} is replaced with the video ID and {t} with whole seconds.
// An empty template uses domain.DefaultLinkTemplate.
func NewBuilder(template string) *Builder {
	if template == "" {
		template = domain.DefaultLinkTemplate
	}
	return &Builder{template: template}
}

// Build creates one record per cue, preserving order.
func (b *Builder) Build(src domain.SourceDocument, cues []domain.Cue) []domain.Record {
	out := make([]domain.Record, 0, len(cues))
	for _, cue := range cues {
		out = append(out, domain.Record{
			VideoID:   src.VideoID,
			Date:      src.Date,
			Title:     src.Title,
			Text:      cue.Text,
			Timestamp: FormatTimestamp(cue.Start),
			URL:       b.DeepLink(src.VideoID, cue.Start),
		})
	}
	return out
}

// DeepLink returns the URL that opens videoID at offset seconds.
func (b *Builder) DeepLink(videoID string, offset float64) string {
	r := strings.NewReplacer(
		"{id}", videoID,
		"{t}", strconv.Itoa(wholeSeconds(offset)),
	)
	return r.Replace(b.template)
}

// FormatTimestamp renders an offset as HH:MM:SS, truncating fractions.
// Hours are not capped at 24.
func FormatTimestamp(offset float64) string {
	total := wholeSeconds(offset)
	h, rem := total/3600, total%3600
	m, s := rem/60, rem%60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func wholeSeconds(offset float64) int {
	if offset <= 0 {
		return 0
	}
	return int(offset)
}
