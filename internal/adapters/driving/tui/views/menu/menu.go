// Package menu provides the home view: an index overview and the entry
// points into search and the video list.
package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
)

// Item is one entry of the home menu. Key jumps straight to it.
type Item struct {
	Label string
	Key   string
	View  messages.ViewType
	Quit  bool
}

var items = []Item{
	{Label: "Search captions", Key: "/", View: messages.ViewSearch},
	{Label: "Browse videos", Key: "v", View: messages.ViewVideos},
	{Label: "Help", Key: "?", View: messages.ViewHelp},
	{Label: "Quit", Key: "q", Quit: true},
}

// View is the home screen.
type View struct {
	styles       *styles.Styles
	videoService driving.VideoService
	ctx          context.Context

	selected int
	width    int
	height   int
	ready    bool

	stats    *domain.IndexStats
	statsErr error
	loading  bool

	// lastRebuild is the most recent rebuild started from this session.
	lastRebuild *domain.RebuildReport
}

// NewView creates the home view. videoService may be nil, in which case no
// index overview is shown.
func NewView(s *styles.Styles, videoService driving.VideoService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:       s,
		videoService: videoService,
		ctx:          context.Background(),
		width:        80,
		height:       24,
	}
}

// WithContext sets the context used to load index statistics.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the index overview.
func (v *View) Init() tea.Cmd {
	if v.videoService == nil {
		return nil
	}
	v.loading = true
	svc := v.videoService
	ctx := v.ctx
	return func() tea.Msg {
		stats, err := svc.Stats(ctx)
		return messages.IndexSummaryLoaded{Stats: stats, Err: err}
	}
}

// Update handles messages for the home view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.IndexSummaryLoaded:
		v.loading = false
		v.stats, v.statsErr = msg.Stats, msg.Err
		return v, nil

	case messages.RebuildCompleted:
		if msg.Err == nil && msg.Report != nil {
			v.lastRebuild = msg.Report
			return v, v.Init()
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch key := msg.String(); key {
	case "up", "k":
		v.selected = max(v.selected-1, 0)
		return v, nil
	case "down", "j":
		v.selected = min(v.selected+1, len(items)-1)
		return v, nil
	case "enter":
		return v, choose(items[v.selected])
	default:
		for i, item := range items {
			if item.Key == key {
				v.selected = i
				return v, choose(item)
			}
		}
	}
	return v, nil
}

func choose(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the home screen.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("captionsearch"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Keyword search over stream subtitles"))
	b.WriteString("\n\n")

	if overview := v.overview(); overview != "" {
		b.WriteString(overview)
		b.WriteString("\n\n")
	}

	for i, item := range items {
		label := fmt.Sprintf("[%s] %s", item.Key, item.Label)
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] select  [q] quit"))
	return b.String()
}

// overview summarises the index and the last rebuild.
func (v *View) overview() string {
	var lines []string
	switch {
	case v.videoService == nil:
	case v.loading && v.stats == nil:
		lines = append(lines, v.styles.Muted.Render("Loading index..."))
	case errors.Is(v.statsErr, domain.ErrIndexNotFound):
		lines = append(lines, v.styles.Warning.Render("No index yet. Open the video list and press b to build it."))
	case v.statsErr != nil:
		lines = append(lines, v.styles.Error.Render("Index unavailable: "+v.statsErr.Error()))
	case v.stats != nil:
		lines = append(lines, v.styles.Normal.Render(describeStats(v.stats)))
	}

	if r := v.lastRebuild; r != nil {
		lines = append(lines, v.styles.Success.Render(fmt.Sprintf(
			"Last rebuild: %d records from %d of %d files in %s",
			r.Records, r.Documents, r.Files, r.Duration.Round(100*time.Millisecond))))
	}
	return strings.Join(lines, "\n")
}

func describeStats(s *domain.IndexStats) string {
	if s.Records == 0 {
		return "The index is empty."
	}
	text := fmt.Sprintf("%d captions from %d videos", s.Records, s.Videos)
	if s.Oldest != "" && s.Newest != "" {
		text += fmt.Sprintf(", %s to %s", domain.DisplayDate(s.Oldest), domain.DisplayDate(s.Newest))
	}
	return text
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Stats returns the last loaded index statistics.
func (v *View) Stats() *domain.IndexStats {
	return v.stats
}
