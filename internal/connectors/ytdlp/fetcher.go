// Package ytdlp downloads caption files with the yt-dlp command-line tool
// and stores them under the DATE_TITLE_VIDEOID.<lang>.vtt naming convention.
package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/logger"
	"github.com/custodia-labs/captionsearch/internal/normalisers/webvtt"
)

var commandContext = exec.CommandContext

// metadataTemplate is the --print format used to read date, title and ID.
const metadataTemplate = "%(upload_date)s\t%(title)s\t%(id)s"

// Ensure Fetcher implements the interface.
var _ driven.SubtitleFetcher = (*Fetcher)(nil)

// Option configures the fetcher.
type Option func(*Fetcher)

// WithBinary overrides the yt-dlp executable.
func WithBinary(binary string) Option {
	return func(f *Fetcher) {
		if binary != "" {
			f.binary = binary
		}
	}
}

// Fetcher wraps the yt-dlp command.
type Fetcher struct {
	binary string
}

// New creates a fetcher that runs "yt-dlp" from PATH unless overridden.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{binary: domain.DefaultYtDlpPath}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads manual or automatic captions for src.VideoID in lang and
// moves them into dir. A missing date or title is read from yt-dlp.
func (f *Fetcher) Fetch(
	ctx context.Context, src domain.SourceDocument, lang, dir string,
) (*domain.FetchedCaption, error) {
	if lang == "" {
		lang = domain.DefaultLanguage
	}
	url := "https://www.youtube.com/watch?v=" + src.VideoID

	if src.Date == "" || src.Date == domain.UnknownDate || src.Title == "" {
		meta, err := f.metadata(ctx, url)
		if err != nil {
			return nil, err
		}
		if src.Date == "" || src.Date == domain.UnknownDate {
			src.Date = meta.Date
		}
		if src.Title == "" {
			src.Title = meta.Title
		}
	}
	src.Title = SanitizeTitle(src.Title)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create caption directory: %w", err)
	}
	tmp, err := os.MkdirTemp(dir, ".fetch-")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	args := []string{
		"--no-config", "--no-progress", "--no-warnings",
		"--write-sub", "--write-auto-sub",
		"--sub-lang", lang, "--sub-format", "vtt",
		"--skip-download",
		"--output", filepath.Join(tmp, src.VideoID),
		url,
	}
	if _, err := f.run(ctx, args...); err != nil {
		return nil, err
	}

	downloaded := filepath.Join(tmp, src.VideoID+"."+lang+".vtt")
	if _, err := os.Stat(downloaded); err != nil {
		return nil, fmt.Errorf("%w: no %s captions available for %s", domain.ErrFetchFailed, lang, src.VideoID)
	}

	dest := filepath.Join(dir, webvtt.FileName(src, lang))
	if err := os.Rename(downloaded, dest); err != nil {
		return nil, fmt.Errorf("move caption file: %w", err)
	}

	logger.Info("Saved %s", dest)
	return &domain.FetchedCaption{Source: src, Path: dest}, nil
}

// metadata asks yt-dlp for the upload date and title.
func (f *Fetcher) metadata(ctx context.Context, url string) (domain.SourceDocument, error) {
	out, err := f.run(ctx, "--no-config", "--no-warnings", "--skip-download", "--print", metadataTemplate, url)
	if err != nil {
		return domain.SourceDocument{}, err
	}
	return parseMetadata(out)
}

// parseMetadata reads the last tab-separated metadata line of out.
func parseMetadata(out []byte) (domain.SourceDocument, error) {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	line := strings.TrimRight(lines[len(lines)-1], "\r")

	parts := strings.Split(line, "\t")
	if len(parts) != 3 || parts[2] == "" {
		return domain.SourceDocument{}, fmt.Errorf("%w: unexpected metadata output %q", domain.ErrFetchFailed, line)
	}

	date := parts[0]
	if len(date) != 8 || strings.Trim(date, "0123456789") != "" {
		date = domain.UnknownDate
	}
	return domain.SourceDocument{VideoID: parts[2], Date: date, Title: parts[1]}, nil
}

// run executes yt-dlp and returns stdout.
func (f *Fetcher) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := commandContext(ctx, f.binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Running %s %s", f.binary, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s not found on PATH", domain.ErrFetchFailed, f.binary)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrFetchFailed, msg)
	}
	return stdout.Bytes(), nil
}
