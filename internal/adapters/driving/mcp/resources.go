package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for captionsearch resources.
	uriScheme = "captionsearch://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Index statistics: record count, video count, date range",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "videos",
		Name:        "videos",
		Description: "Indexed videos, newest first",
		MIMEType:    "application/json",
	}, s.handleVideosResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "videos/{videoId}",
		Name:        "video-metadata",
		Description: "Title, broadcast time and thumbnail of a video",
		MIMEType:    "application/json",
	}, s.handleVideoResource)
}

// handleStatsResource returns index statistics.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Video == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	stats, err := s.ports.Video.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}

	return jsonResource(req.Params.URI, map[string]any{
		"records": stats.Records,
		"videos":  stats.Videos,
		"oldest":  stats.Oldest,
		"newest":  stats.Newest,
	})
}

// handleVideosResource returns the indexed videos.
func (s *Server) handleVideosResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Video == nil {
		return jsonResource(req.Params.URI, []any{})
	}

	videos, err := s.ports.Video.Videos(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}

	type videoInfo struct {
		VideoID string `json:"video_id"`
		Date    string `json:"date"`
		Title   string `json:"title"`
		Lines   int    `json:"lines"`
	}

	infos := make([]videoInfo, len(videos))
	for i, v := range videos {
		infos[i] = videoInfo{VideoID: v.VideoID, Date: v.Date, Title: v.Title, Lines: v.Records}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleVideoResource returns metadata for one video.
func (s *Server) handleVideoResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Video == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	videoID := extractVideoID(req.Params.URI)
	if videoID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	meta, err := s.ports.Video.Info(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("looking up video: %w", err)
	}

	return jsonResource(req.Params.URI, map[string]any{
		"video_id":  meta.VideoID,
		"title":     meta.Title,
		"broadcast": meta.BroadcastTime().Format(time.RFC3339),
		"thumbnail": meta.BestThumbnail(),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractVideoID extracts the video ID from a URI like captionsearch://videos/{videoId}.
func extractVideoID(uri string) string {
	const prefix = uriScheme + "videos/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
