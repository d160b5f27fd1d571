// Package input provides the query field of the search view.
package input

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/captionsearch/internal/adapters/driving/tui/styles"
)

const (
	label        = "Search: "
	defaultWidth = 50
	minWidth     = 20

	// MinQueryRunes is the shortest query the trigram index can match.
	MinQueryRunes = 3
)

// SearchInput is a single-line query field. An optional filter line under
// it names the video the search is restricted to.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	filter    string
	width     int
}

// NewSearchInput creates a focused, empty query field.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Words to find in captions..."
	ti.CharLimit = 256
	ti.Width = defaultWidth
	ti.Focus()

	return &SearchInput{textinput: ti, styles: s, width: defaultWidth}
}

// Init starts the cursor blinking.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards key and blink messages to the text field.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the field, then the filter line and the short-query hint when they apply.
func (s *SearchInput) View() string {
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Center, //nolint:misspell // lipgloss constant
		s.styles.Title.Render(label),
		s.styles.InputField.Render(s.textinput.View()),
	)}
	if s.filter != "" {
		lines = append(lines, s.styles.Muted.Render("in: "+s.filter))
	}
	if s.TooShort() {
		lines = append(lines, s.styles.Warning.Render("Type at least 3 characters; shorter words never match."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// TooShort reports a non-blank query below MinQueryRunes.
func (s *SearchInput) TooShort() bool {
	q := strings.TrimSpace(s.textinput.Value())
	return q != "" && utf8.RuneCountInString(q) < MinQueryRunes
}

// Value returns the raw query text.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue replaces the query text.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// SetFilter sets the filter line; "" hides it.
func (s *SearchInput) SetFilter(filter string) {
	s.filter = filter
}

// Filter returns the filter line.
func (s *SearchInput) Filter() string {
	return s.filter
}

func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sizes the field to width minus the label, never below minWidth.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	s.textinput.Width = max(width-len(label)-2, minWidth)
}

// Width returns the width last passed to SetWidth.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the query text.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
