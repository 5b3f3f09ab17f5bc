package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	ToggleTheme key.Binding
	Settings    key.Binding
	Escape      key.Binding
	Dismiss     key.Binding
	Copy        key.Binding
	Retry       key.Binding

	// Tabs and fields
	Tab1      key.Binding
	Tab2      key.Binding
	Tab3      key.Binding
	Tab4      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Generate  key.Binding
	Confirm   key.Binding
	OptPrev   key.Binding
	OptNext   key.Binding

	// Output scrolling
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding

	// Flashcards
	PrevCard key.Binding
	NextCard key.Binding
	Flip     key.Binding
	Shuffle  key.Binding
	SaveDeck key.Binding
	LoadDeck key.Binding
	Clear    key.Binding

	// Quiz
	Reveal key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Toggle theme"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "Settings"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close settings / leave field"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Dismiss notification"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy output"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Retry connection"),
		),

		Tab1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Explainer"),
		),
		Tab2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Summarizer"),
		),
		Tab3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Quiz"),
		),
		Tab4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Flashcards"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Generate: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Generate"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit"),
		),
		OptPrev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Previous option"),
		),
		OptNext: key.NewBinding(
			key.WithKeys("right", " "),
			key.WithHelp("→", "Next option"),
		),

		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),

		PrevCard: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "Previous card"),
		),
		NextCard: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "Next card"),
		),
		Flip: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Flip card"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Shuffle deck"),
		),
		SaveDeck: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Save deck"),
		),
		LoadDeck: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Load saved deck"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear deck"),
		),

		Reveal: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Show/hide answers"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.NextField, k.Settings, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, grouped by section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.NextField, k.PrevField, k.Escape},
		{k.Generate, k.Confirm, k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown, k.Copy},
		{k.PrevCard, k.NextCard, k.Flip, k.Shuffle, k.SaveDeck, k.LoadDeck, k.Clear},
		{k.Reveal},
		{k.ToggleTheme, k.Settings, k.Dismiss, k.Help, k.Quit},
	}
}
