// Package styles holds the colours and lipgloss styles of the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme names colours by what they mark in the caption browser.
// Every colour adapts to light and dark terminal backgrounds.
type Theme struct {
	Accent    lipgloss.AdaptiveColor // titles, selection background
	Video     lipgloss.AdaptiveColor // [date] title group headers
	Timestamp lipgloss.AdaptiveColor // HH:MM:SS offsets
	Text      lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor // links, hints, counts
	Surface   lipgloss.AdaptiveColor // status bar background
	Border    lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
}

// DefaultTheme returns the rose-on-slate theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:    lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#E11D48"},
		Video:     lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"},
		Timestamp: lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"},
		Text:      lipgloss.AdaptiveColor{Light: "#1E293B", Dark: "#E2E8F0"},
		Muted:     lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#94A3B8"},
		Surface:   lipgloss.AdaptiveColor{Light: "#E2E8F0", Dark: "#1E293B"},
		Border:    lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#475569"},
		Success:   lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"},
		Warning:   lipgloss.AdaptiveColor{Light: "#A16207", Dark: "#FACC15"},
		Error:     lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"},
	}
}

// Styles are the rendered building blocks shared by views and components.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Selected lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Border     lipgloss.Style

	// GroupHeader renders "[2023-11-28] Title" above a video's matches.
	GroupHeader lipgloss.Style
	Timestamp   lipgloss.Style
	Link        lipgloss.Style
}

// NewStyles derives styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.AdaptiveColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	boxed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		theme: theme,

		Title:    fg(theme.Accent).Bold(true),
		Subtitle: fg(theme.Video).Bold(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Muted),
		Help:     fg(theme.Muted).Italic(true),
		Selected: fg(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).Background(theme.Accent).Bold(true),

		Success: fg(theme.Success),
		Warning: fg(theme.Warning),
		Error:   fg(theme.Error).Bold(true),

		InputField: boxed.Padding(0, 1),
		StatusBar:  fg(theme.Muted).Background(theme.Surface).Padding(0, 1),
		Border:     boxed,

		GroupHeader: fg(theme.Video).Bold(true),
		Timestamp:   fg(theme.Timestamp),
		Link:        fg(theme.Muted).Underline(true),
	}
}

// DefaultStyles returns styles for DefaultTheme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
