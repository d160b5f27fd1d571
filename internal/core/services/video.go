package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
	"github.com/custodia-labs/captionsearch/internal/logger"
)

// Ensure VideoService implements the interface.
var _ driving.VideoService = (*VideoService)(nil)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// VideoService answers per-video questions and downloads captions.
type VideoService struct {
	index        driven.IndexStore
	lookup       driven.VideoLookup
	fetcher      driven.SubtitleFetcher
	subtitlesDir string
	language     string
	location     *time.Location
}

// NewVideoService creates a new video service.
// lookup and fetcher are optional (can be nil).
func NewVideoService(
	index driven.IndexStore,
	lookup driven.VideoLookup,
	fetcher driven.SubtitleFetcher,
	fetch domain.FetchSettings,
	subtitlesDir string,
) *VideoService {
	return &VideoService{
		index:        index,
		lookup:       lookup,
		fetcher:      fetcher,
		subtitlesDir: subtitlesDir,
		language:     fetch.Language,
		location:     time.UTC,
	}
}

// SetLocation sets the time zone used to derive file dates from broadcast times.
func (s *VideoService) SetLocation(loc *time.Location) {
	if loc != nil {
		s.location = loc
	}
}

// Videos lists the indexed videos.
func (s *VideoService) Videos(ctx context.Context) ([]domain.VideoSummary, error) {
	videos, err := s.index.Videos(ctx)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

// Stats summarises the index.
func (s *VideoService) Stats(ctx context.Context) (*domain.IndexStats, error) {
	stats, err := s.index.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("index stats: %w", err)
	}
	return stats, nil
}

// Info looks up video metadata.
func (s *VideoService) Info(ctx context.Context, videoID string) (*domain.VideoMetadata, error) {
	if err := validateVideoID(videoID); err != nil {
		return nil, err
	}
	if s.lookup == nil {
		return nil, domain.ErrLookupUnavailable
	}
	return s.lookup.Lookup(ctx, videoID)
}

// Fetch downloads captions for videoID into the caption directory.
//
// Date and title in hint take precedence. Missing values are filled from
// the metadata service when it is configured; otherwise the date is
// domain.UnknownDate and the title is left empty.
func (s *VideoService) Fetch(
	ctx context.Context, videoID string, hint domain.SourceDocument,
) (*domain.FetchedCaption, error) {
	if err := validateVideoID(videoID); err != nil {
		return nil, err
	}
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: no subtitle fetcher configured", domain.ErrFetchFailed)
	}

	src := hint
	src.VideoID = videoID

	if (src.Date == "" || src.Title == "") && s.lookup != nil {
		meta, err := s.lookup.Lookup(ctx, videoID)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", videoID, err)
		}
		if src.Date == "" {
			src.Date = meta.FileDate(s.location)
		}
		if src.Title == "" {
			src.Title = meta.Title
		}
	}
	if src.Date == "" {
		src.Date = domain.UnknownDate
	}

	logger.Info("Fetching %s captions for %s (%s, %q)", s.language, videoID, src.Date, src.Title)
	caption, err := s.fetcher.Fetch(ctx, src, s.language, s.subtitlesDir)
	if err != nil {
		return nil, err
	}
	return caption, nil
}

func validateVideoID(videoID string) error {
	if !videoIDPattern.MatchString(videoID) {
		return fmt.Errorf("%w: video ID must be 11 characters of [A-Za-z0-9_-], got %q", domain.ErrInvalidInput, videoID)
	}
	return nil
}
