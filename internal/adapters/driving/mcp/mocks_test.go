package mcp

import (
	"context"
	"strings"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result *domain.SearchResult
	err    error
	query  string
	opts   domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResult, error) {
	m.query = query
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	if strings.TrimSpace(query) == "" {
		return &domain.SearchResult{Groups: []domain.VideoGroup{}}, nil
	}
	if m.result == nil {
		return &domain.SearchResult{Query: query, Executed: true, Groups: []domain.VideoGroup{}}, nil
	}
	return m.result, nil
}

// mockVideoService is a mock implementation of driving.VideoService.
type mockVideoService struct {
	videos []domain.VideoSummary
	stats  *domain.IndexStats
	meta   *domain.VideoMetadata
	err    error
	gotID  string
}

func (m *mockVideoService) Videos(_ context.Context) ([]domain.VideoSummary, error) {
	return m.videos, m.err
}

func (m *mockVideoService) Stats(_ context.Context) (*domain.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockVideoService) Info(_ context.Context, videoID string) (*domain.VideoMetadata, error) {
	m.gotID = videoID
	return m.meta, m.err
}

func (m *mockVideoService) Fetch(
	_ context.Context, _ string, _ domain.SourceDocument,
) (*domain.FetchedCaption, error) {
	return nil, m.err
}
