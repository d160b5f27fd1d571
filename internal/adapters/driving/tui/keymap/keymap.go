// Package keymap holds the TUI key bindings and the help lines built from them.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap lists every binding. Several share a key ("enter" searches in the
// input, selects in lists and opens actions on a match); the active view
// decides which applies.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding

	// Search view.
	Search      key.Binding
	NewSearch   key.Binding
	Actions     key.Binding
	ClearFilter key.Binding

	// Video list.
	Reload  key.Binding
	Rebuild key.Binding
}

// bind creates a binding whose help shows the first key unless label overrides it.
func bind(desc, label string, keys ...string) key.Binding {
	if label == "" {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the vim-friendly default bindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: bind("quit", "q", "q", "ctrl+c"),
		Help: bind("help", "", "?"),
		Back: bind("back", "", "esc"),

		Up:     bind("up", "↑/k", "up", "k"),
		Down:   bind("down", "↓/j", "down", "j"),
		Select: bind("select", "", "enter"),
		Cancel: bind("cancel", "", "esc"),

		Search:      bind("search", "", "enter"),
		NewSearch:   bind("new search", "", "n"),
		Actions:     bind("copy / open", "", "enter"),
		ClearFilter: bind("all videos", "", "x"),

		Reload:  bind("reload", "", "r"),
		Rebuild: bind("rebuild index", "", "b"),
	}
}

// ShortHelp is shown when no view-specific hints apply.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ResultsHelp is shown while browsing matches.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewSearch, k.Up, k.Actions, k.Back}
}

// VideosHelp is shown in the video list.
func (k *KeyMap) VideosHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.Reload, k.Rebuild, k.Back}
}

// FullHelp groups every binding for the help view: navigation, search,
// video list, then leaving.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Search, k.NewSearch, k.ClearFilter},
		{k.Reload, k.Rebuild},
		{k.Back, k.Cancel, k.Help, k.Quit},
	}
}

// Matches reports whether keyStr, as produced by tea.KeyMsg.String, triggers binding.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}
