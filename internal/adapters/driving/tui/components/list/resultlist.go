// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

// entry is one match with the index of the video group it belongs to.
type entry struct {
	group int
	match domain.Match
}

// ResultList displays grouped search matches in a navigable list.
// Selection moves over matches; group headers are rendered above the
// first visible match of each video.
type ResultList struct {
	groups   []domain.VideoGroup
	entries  []entry
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.entries) == 0 {
		return r.styles.Muted.Render("No matches")
	}

	lines := make([]string, 0, len(r.entries)*2+2)

	header := r.styles.Subtitle.Render(
		fmt.Sprintf("%d matches in %d videos", len(r.entries), len(r.groups)))
	lines = append(lines, header, "")

	start, end := r.window()
	for i := start; i < end; i++ {
		e := r.entries[i]
		if i == start || r.entries[i-1].group != e.group {
			lines = append(lines, r.renderGroupHeader(&r.groups[e.group]))
		}
		lines = append(lines, r.renderMatch(i, &e.match))
	}

	return strings.Join(lines, "\n")
}

// window returns the visible range of entries. Each match takes two lines
// and every group change adds a header, so three lines per match are reserved.
func (r *ResultList) window() (int, int) {
	visible := (r.height - 4) / 3
	if visible < 1 {
		visible = 1
	}

	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.entries) {
		end = len(r.entries)
	}
	return start, end
}

func (r *ResultList) renderGroupHeader(g *domain.VideoGroup) string {
	title := truncate(g.Title, r.width-16)
	return r.styles.GroupHeader.Render(fmt.Sprintf("[%s] %s", domain.DisplayDate(g.Date), title))
}

// renderMatch formats a single caption line with its deep link.
func (r *ResultList) renderMatch(index int, m *domain.Match) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	text := truncate(m.Text, r.width-16)

	var textLine string
	if index == r.selected {
		textLine = r.styles.Selected.Render(fmt.Sprintf("%s%s  %s", indicator, m.Timestamp, text))
	} else {
		textLine = r.styles.Normal.Render(indicator) +
			r.styles.Timestamp.Render(m.Timestamp) +
			r.styles.Normal.Render("  "+text)
	}

	link := r.styles.Link.Render("    " + truncate(m.URL, r.width-6))
	return textLine + "\n" + link
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	if max < 10 {
		max = 10
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// SetResult replaces the list contents with the groups of result.
// A nil result clears the list.
func (r *ResultList) SetResult(result *domain.SearchResult) {
	r.groups = nil
	r.entries = nil
	r.selected = 0
	if result == nil {
		return
	}

	r.groups = result.Groups
	for gi, g := range result.Groups {
		for _, m := range g.Matches {
			r.entries = append(r.entries, entry{group: gi, match: m})
		}
	}
}

// Groups returns the current video groups.
func (r *ResultList) Groups() []domain.VideoGroup {
	return r.groups
}

// Selected returns the index of the selected match.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.entries) {
		r.selected = index
	}
}

// SelectedMatch returns the currently selected match, or nil if none.
func (r *ResultList) SelectedMatch() *domain.Match {
	if r.selected < 0 || r.selected >= len(r.entries) {
		return nil
	}
	return &r.entries[r.selected].match
}

// SelectedGroup returns the video group of the selected match, or nil if none.
func (r *ResultList) SelectedGroup() *domain.VideoGroup {
	if r.selected < 0 || r.selected >= len(r.entries) {
		return nil
	}
	return &r.groups[r.entries[r.selected].group]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.entries)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of matches.
func (r *ResultList) Count() int {
	return len(r.entries)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.entries) == 0
}
