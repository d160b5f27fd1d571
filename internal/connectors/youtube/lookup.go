package youtube

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.VideoLookup = (*Client)(nil)

// lookupParts are the resource parts requested per video.
var lookupParts = []string{"snippet", "liveStreamingDetails"}

// Client is a rate-limited YouTube Data API metadata client.
type Client struct {
	service *yt.Service
	limiter *RateLimiter
}

// NewClient creates a client authenticated with apiKey.
// Extra options are passed to the API service (e.g. option.WithEndpoint in tests).
func NewClient(ctx context.Context, apiKey string, requestsPerSecond float64, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, domain.ErrLookupUnavailable
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Client{
		service: service,
		limiter: NewRateLimiter(requestsPerSecond, 1),
	}, nil
}

// Lookup fetches the title, timestamps and thumbnails of one video.
func (c *Client) Lookup(ctx context.Context, videoID string) (*domain.VideoMetadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	logger.Debug("YouTube lookup %s", videoID)
	resp, err := c.service.Videos.List(lookupParts).Id(videoID).Context(ctx).Do()
	if err != nil {
		if IsRateLimited(err) {
			c.limiter.Backoff(0)
		}
		return nil, fmt.Errorf("lookup %s: %w", videoID, WrapError(err))
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}

	return toMetadata(resp.Items[0])
}

// toMetadata maps an API video resource to the domain type.
func toMetadata(v *yt.Video) (*domain.VideoMetadata, error) {
	meta := &domain.VideoMetadata{
		VideoID:    v.Id,
		Title:      v.Snippet.Title,
		Thumbnails: thumbnails(v.Snippet.Thumbnails),
	}

	published, err := parseTime(v.Snippet.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("video %s publishedAt: %w", v.Id, err)
	}
	if published != nil {
		meta.PublishedAt = *published
	}

	if live := v.LiveStreamingDetails; live != nil {
		if meta.ScheduledStartAt, err = parseTime(live.ScheduledStartTime); err != nil {
			return nil, fmt.Errorf("video %s scheduledStartTime: %w", v.Id, err)
		}
		if meta.LiveStartedAt, err = parseTime(live.ActualStartTime); err != nil {
			return nil, fmt.Errorf("video %s actualStartTime: %w", v.Id, err)
		}
	}

	return meta, nil
}

// parseTime parses an RFC 3339 API timestamp; empty yields nil.
func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func thumbnails(d *yt.ThumbnailDetails) map[string]string {
	out := make(map[string]string)
	if d == nil {
		return out
	}
	for name, th := range map[string]*yt.Thumbnail{
		"default":  d.Default,
		"medium":   d.Medium,
		"high":     d.High,
		"standard": d.Standard,
		"maxres":   d.Maxres,
	} {
		if th != nil && th.Url != "" {
			out[name] = th.Url
		}
	}
	return out
}
