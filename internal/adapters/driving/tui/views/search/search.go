// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driving"
)

// Action labels of the result action menu.
const (
	ActionCopyLink = "Copy link"
	ActionCopyText = "Copy caption"
	ActionOpenLink = "Open in browser"
	ActionCancel   = "Cancel"
)

// ActionMenu represents a simple action selection overlay.
type ActionMenu struct {
	actions  []string
	selected int
	visible  bool
	match    *domain.Match
}

// View represents the search view with input, grouped results and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	actionService driving.ResultActionService
	ctx           context.Context

	result     *domain.SearchResult
	video      *domain.VideoSummary
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
	actionMenu *ActionMenu
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	actionService driving.ResultActionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		actionService: actionService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ActionCompleted:
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		} else {
			v.statusbar.SetMessage(msg.Message)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	v.list, cmd = v.list.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.actionMenu != nil && v.actionMenu.visible {
		return v.handleActionMenuKey(msg)
	}

	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyEnter && v.focusInput {
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateSearching)
		v.statusbar.SetMessage("")
		v.focusInput = false
		v.input.Blur()
		return v, v.performSearch(query)
	}

	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	// Results mode.
	if msg.Type == tea.KeyEnter {
		if match := v.list.SelectedMatch(); match != nil {
			v.actionMenu = &ActionMenu{
				actions: []string{ActionCopyLink, ActionCopyText, ActionOpenLink, ActionCancel},
				visible: true,
				match:   match,
			}
		}
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		v.list.MoveUp()
	case "down", "j":
		v.list.MoveDown()
	case "n":
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case "x":
		v.SetVideoFilter(nil)
	}

	return v, nil
}

// handleActionMenuKey processes keyboard input when the action menu is visible.
func (v *View) handleActionMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.actionMenu.selected > 0 {
			v.actionMenu.selected--
		}
	case "down", "j":
		if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
			v.actionMenu.selected++
		}
	case "enter":
		action := v.actionMenu.actions[v.actionMenu.selected]
		match := v.actionMenu.match
		v.actionMenu = nil
		return v, v.executeAction(action, match)
	case "esc":
		v.actionMenu = nil
	}
	return v, nil
}

// executeAction returns a command performing the selected action on a match.
func (v *View) executeAction(action string, match *domain.Match) tea.Cmd {
	if action == ActionCancel || match == nil {
		return nil
	}

	svc := v.actionService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.ActionCompleted{Err: ErrNoActionService}
		}
		switch action {
		case ActionCopyLink:
			return messages.ActionCompleted{Message: "Copied link", Err: svc.CopyLink(ctx, match)}
		case ActionCopyText:
			return messages.ActionCompleted{Message: "Copied caption", Err: svc.CopyText(ctx, match)}
		case ActionOpenLink:
			return messages.ActionCompleted{Message: "Opening video...", Err: svc.OpenLink(ctx, match)}
		}
		return nil
	}
}

// performSearch runs the query in the background.
func (v *View) performSearch(query string) tea.Cmd {
	svc := v.searchService
	ctx := v.ctx
	var opts domain.SearchOptions
	if v.video != nil {
		opts.VideoID = v.video.VideoID
	}

	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		result, err := svc.Search(ctx, query, opts)
		return messages.SearchCompleted{Result: result, Err: err}
	}
}

// handleSearchCompleted processes a search result.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		v.focusInput = true
		v.input.Focus()
		return
	}

	v.err = nil
	v.result = msg.Result
	v.list.SetResult(msg.Result)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	if msg.Result != nil {
		v.statusbar.SetResultCount(msg.Result.TotalMatches)
		v.statusbar.SetVideoCount(msg.Result.TotalVideos)
	}

	v.focusInput = false
	v.input.Blur()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("captionsearch"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.result != nil && v.result.IsEmpty() {
		sections = append(sections, v.styles.Muted.Render("No matches for \""+v.result.Query+"\"."))
	} else {
		sections = append(sections, v.list.View())
	}

	if v.actionMenu != nil && v.actionMenu.visible {
		sections = append(sections, "", v.renderActionMenu())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	lines := make([]string, 0, len(v.actionMenu.actions))
	for i, action := range v.actionMenu.actions {
		if i == v.actionMenu.selected {
			lines = append(lines, v.styles.Selected.Render("> "+action))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+action))
		}
	}
	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetVideoFilter restricts subsequent searches to one video. Nil clears the filter.
func (v *View) SetVideoFilter(video *domain.VideoSummary) {
	v.video = video
	if video == nil {
		v.input.SetFilter("")
		return
	}
	label := video.Title
	if label == "" {
		label = video.VideoID
	}
	v.input.SetFilter("[" + domain.DisplayDate(video.Date) + "] " + label)
}

// VideoFilter returns the video searches are restricted to, or nil.
func (v *View) VideoFilter() *domain.VideoSummary {
	return v.video
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // header, input and status bar
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Result returns the last search result.
func (v *View) Result() *domain.SearchResult {
	return v.result
}

// SelectedIndex returns the index of the selected match.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedMatch returns the currently selected match.
func (v *View) SelectedMatch() *domain.Match {
	return v.list.SelectedMatch()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// Reset resets the view to initial input mode. The video filter is kept.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResult(nil)
	v.result = nil
	v.err = nil
	v.actionMenu = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// ActionMenuVisible returns whether the action menu is open.
func (v *View) ActionMenuVisible() bool {
	return v.actionMenu != nil && v.actionMenu.visible
}
