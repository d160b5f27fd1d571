package domain

import "time"

// thumbnailPreference lists thumbnail sizes from best to worst.
var thumbnailPreference = []string{"maxres", "standard", "high", "medium", "default"}

// VideoMetadata is what the external metadata service knows about a video.
type VideoMetadata struct {
	VideoID string
	Title   string

	// PublishedAt is the publish time reported by the service.
	PublishedAt time.Time

	// ScheduledStartAt is set for scheduled live streams.
	ScheduledStartAt *time.Time

	// LiveStartedAt is set once a live stream has started.
	LiveStartedAt *time.Time

	// Thumbnails maps a size name (default, medium, high, standard, maxres) to a URL.
	Thumbnails map[string]string
}

// BroadcastTime returns when the content aired. For live streams the
// scheduled start wins over the actual start; uploads use the publish time.
func (m *VideoMetadata) BroadcastTime() time.Time {
	if m.ScheduledStartAt != nil {
		return *m.ScheduledStartAt
	}
	if m.LiveStartedAt != nil {
		return *m.LiveStartedAt
	}
	return m.PublishedAt
}

// FileDate returns the broadcast date as YYYYMMDD in loc.
func (m *VideoMetadata) FileDate(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return m.BroadcastTime().In(loc).Format("20060102")
}

// BestThumbnail returns the largest available thumbnail URL, or "".
func (m *VideoMetadata) BestThumbnail() string {
	for _, size := range thumbnailPreference {
		if url := m.Thumbnails[size]; url != "" {
			return url
		}
	}
	return ""
}

// FetchedCaption describes a caption file produced by the subtitle fetcher.
type FetchedCaption struct {
	Source SourceDocument
	Path   string
}
