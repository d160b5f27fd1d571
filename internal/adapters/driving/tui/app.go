package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/views/videos"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView   *menu.View
	searchView *search.View
	videosView *videos.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s, ports.Video),
		searchView:  search.NewView(s, nil, ports.Search, ports.ResultAction),
		videosView:  videos.NewView(s, ports.Video, ports.Ingest),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.menuView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	a.videosView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("captionsearch"),
		a.menuView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.forwardKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewVideos:
			return a, a.videosView.Init()
		case messages.ViewMenu:
			return a, a.menuView.Init()
		case messages.ViewHelp:
		}
		return a, nil

	case messages.VideoSelected:
		video := msg.Video
		a.searchView.SetVideoFilter(&video)
		a.searchView.Reset()
		a.currentView = messages.ViewSearch
		return a, a.searchView.Init()

	case messages.SearchCompleted, messages.ActionCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.VideosLoaded:
		a.videosView, cmd = a.videosView.Update(msg)
		a.err = a.videosView.Err()
		return a, cmd

	case messages.RebuildCompleted:
		var menuCmd tea.Cmd
		a.menuView, menuCmd = a.menuView.Update(msg)
		a.videosView, cmd = a.videosView.Update(msg)
		a.err = a.videosView.Err()
		return a, tea.Batch(cmd, menuCmd)

	case messages.IndexSummaryLoaded:
		a.menuView, cmd = a.menuView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewVideos:
		a.videosView, cmd = a.videosView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// forwardKey sends a key press to the active view.
func (a *App) forwardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewVideos:
		a.videosView, cmd = a.videosView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewVideos:
		return a.videosView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back to Menu
  /, v, ?     Search, videos or help from the menu
  ctrl+c      Quit

Search:
  (type)      Enter search query (at least three characters)
  enter       Submit search
  j/k, ↑/↓    Move between matches
  enter       Copy link, copy caption or open the video at the match
  n           New search
  x           Clear the video filter

Videos:
  j/k, ↑/↓    Navigate videos
  enter       Search within the selected video
  r           Reload the list
  b           Rebuild the index from the caption directory

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// MenuView returns the home view.
func (a *App) MenuView() *menu.View {
	return a.menuView
}

// SearchView returns the search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// VideosView returns the video list view.
func (a *App) VideosView() *videos.View {
	return a.videosView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.videosView.SetDimensions(width, height)
}
