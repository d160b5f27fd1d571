// Package videos provides the indexed video list for the TUI.
package videos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
)

// Errors reported when a collaborator is not wired.
var (
	ErrNoVideoService  = errors.New("video service not available")
	ErrNoIngestService = errors.New("rebuild not available")
)

// View lists the indexed videos and can trigger a rebuild.
type View struct {
	styles        *styles.Styles
	videoService  driving.VideoService
	ingestService driving.IngestService
	ctx           context.Context

	videos     []domain.VideoSummary
	stats      *domain.IndexStats
	report     *domain.RebuildReport
	selected   int
	offset     int
	width      int
	height     int
	ready      bool
	err        error
	loading    bool
	rebuilding bool
}

// NewView creates a new video list view. ingestService may be nil.
func NewView(
	s *styles.Styles,
	videoService driving.VideoService,
	ingestService driving.IngestService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		videoService:  videoService,
		ingestService: ingestService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads the video list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadVideos()
}

// loadVideos returns a command that loads videos and stats from the service.
func (v *View) loadVideos() tea.Cmd {
	svc := v.videoService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.VideosLoaded{Err: ErrNoVideoService}
		}
		videos, err := svc.Videos(ctx)
		if err != nil {
			return messages.VideosLoaded{Err: err}
		}
		stats, err := svc.Stats(ctx)
		if err != nil {
			return messages.VideosLoaded{Err: err}
		}
		return messages.VideosLoaded{Videos: videos, Stats: stats}
	}
}

// rebuild returns a command that rebuilds the index.
func (v *View) rebuild() tea.Cmd {
	svc := v.ingestService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.RebuildCompleted{Err: ErrNoIngestService}
		}
		report, err := svc.Rebuild(ctx, nil)
		return messages.RebuildCompleted{Report: report, Err: err}
	}
}

// Update handles messages for the video view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.VideosLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.videos = msg.Videos
		v.stats = msg.Stats
		if v.selected >= len(v.videos) {
			v.selected = 0
			v.offset = 0
		}
		return v, nil

	case messages.RebuildCompleted:
		v.rebuilding = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.report = msg.Report
		v.loading = true
		return v, v.loadVideos()
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.rebuilding {
		return v, nil
	}

	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.videos)-1 {
			v.selected++
		}
	case "enter":
		if v.selected < len(v.videos) {
			video := v.videos[v.selected]
			return v, func() tea.Msg {
				return messages.VideoSelected{Video: video}
			}
		}
	case "r":
		v.loading = true
		return v, v.loadVideos()
	case "b":
		v.rebuilding = true
		v.err = nil
		v.report = nil
		return v, v.rebuild()
	}

	v.scroll()
	return v, nil
}

// scroll keeps the selection inside the visible window.
func (v *View) scroll() {
	visible := v.visibleRows()
	if v.selected < v.offset {
		v.offset = v.selected
	}
	if v.selected >= v.offset+visible {
		v.offset = v.selected - visible + 1
	}
}

func (v *View) visibleRows() int {
	rows := v.height - 9 // title, stats, report, help
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View renders the video list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Videos"))
	b.WriteString("\n\n")

	switch {
	case v.rebuilding:
		b.WriteString(v.styles.Warning.Render("Rebuilding index..."))
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading videos..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.videos) == 0:
		b.WriteString(v.styles.Muted.Render("No videos indexed. Press [b] to rebuild the index."))
	default:
		v.renderList(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderList(b *strings.Builder) {
	if v.stats != nil {
		line := fmt.Sprintf("%d lines in %d videos", v.stats.Records, v.stats.Videos)
		if v.stats.Oldest != "" {
			line += fmt.Sprintf(", %s to %s",
				domain.DisplayDate(v.stats.Oldest), domain.DisplayDate(v.stats.Newest))
		}
		b.WriteString(v.styles.Muted.Render(line))
		b.WriteString("\n")
	}
	if v.report != nil {
		b.WriteString(v.styles.Success.Render(fmt.Sprintf(
			"Rebuilt: %d documents, %d records", v.report.Documents, v.report.Records)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	end := v.offset + v.visibleRows()
	if end > len(v.videos) {
		end = len(v.videos)
	}
	for i := v.offset; i < end; i++ {
		b.WriteString(v.renderVideo(i, &v.videos[i]))
		b.WriteString("\n")
	}
}

// renderVideo renders a single video line.
func (v *View) renderVideo(index int, video *domain.VideoSummary) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	date := fmt.Sprintf("[%s]", domain.DisplayDate(video.Date))
	title := video.Title
	if title == "" {
		title = video.VideoID
	}
	count := fmt.Sprintf("%d lines", video.Records)

	maxTitle := v.width - len(date) - len(count) - 8
	if maxTitle < 10 {
		maxTitle = 10
	}
	if runes := []rune(title); len(runes) > maxTitle {
		title = string(runes[:maxTitle-3]) + "..."
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-12s %s  %s", indicator, date, title, count))
	}
	return v.styles.Normal.Render(indicator) +
		v.styles.Subtitle.Render(fmt.Sprintf("%-12s ", date)) +
		v.styles.Normal.Render(title+"  ") +
		v.styles.Muted.Render(count)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[enter] search in video  [r] reload  [b] rebuild index  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Videos returns the loaded videos.
func (v *View) Videos() []domain.VideoSummary {
	return v.videos
}

// SelectedIndex returns the currently selected video index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Rebuilding reports whether a rebuild is running.
func (v *View) Rebuilding() bool {
	return v.rebuilding
}

// Report returns the last rebuild report, if any.
func (v *View) Report() *domain.RebuildReport {
	return v.report
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
