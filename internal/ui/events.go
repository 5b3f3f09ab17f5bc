package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/concepta/internal/state"
)

// Event is a named user action. Keys resolve to an Event and an argument;
// every Event has exactly one handler.
type Event int

const (
	EventNone Event = iota
	EventQuit
	EventHelp
	EventSwitchTab
	EventToggleTheme
	EventOpenSettings
	EventFocusField
	EventGenerate
	EventScroll
	EventPrevCard
	EventNextCard
	EventFlipCard
	EventShuffleDeck
	EventSaveDeck
	EventLoadDeck
	EventClearDeck
	EventRevealAnswers
	EventCopy
	EventDismiss
)

type eventHandler func(m *Model, arg int) tea.Cmd

var eventHandlers = map[Event]eventHandler{
	EventQuit:          func(*Model, int) tea.Cmd { return tea.Quit },
	EventHelp:          func(m *Model, _ int) tea.Cmd { m.showHelp = true; return nil },
	EventSwitchTab:     (*Model).switchTab,
	EventToggleTheme:   func(m *Model, _ int) tea.Cmd { return m.toggleTheme() },
	EventOpenSettings:  func(m *Model, _ int) tea.Cmd { return m.openSettings() },
	EventFocusField:    (*Model).moveFocus,
	EventGenerate:      func(m *Model, _ int) tea.Cmd { return m.generate(m.activeTab()) },
	EventScroll:        (*Model).scrollOutput,
	EventPrevCard:      func(m *Model, _ int) tea.Cmd { m.deckChanged(m.store.NavigateFlashcard(-1)); return nil },
	EventNextCard:      func(m *Model, _ int) tea.Cmd { m.deckChanged(m.store.NavigateFlashcard(+1)); return nil },
	EventFlipCard:      func(m *Model, _ int) tea.Cmd { m.deckChanged(m.store.FlipFlashcard()); return nil },
	EventShuffleDeck:   func(m *Model, _ int) tea.Cmd { return m.shuffleDeck() },
	EventSaveDeck:      func(m *Model, _ int) tea.Cmd { return m.saveDeck() },
	EventLoadDeck:      func(m *Model, _ int) tea.Cmd { return m.loadDeck() },
	EventClearDeck:     func(m *Model, _ int) tea.Cmd { return m.clearDeck() },
	EventRevealAnswers: func(m *Model, _ int) tea.Cmd { m.toggleAnswers(); return nil },
	EventCopy:          func(m *Model, _ int) tea.Cmd { return m.copyOutput() },
	EventDismiss:       func(m *Model, _ int) tea.Cmd { m.dismissToast(); return nil },
}

// dispatch runs the handler registered for ev.
func (m *Model) dispatch(ev Event, arg int) tea.Cmd {
	h, ok := eventHandlers[ev]
	if !ok {
		return nil
	}
	return h(m, arg)
}

// resolveShortcut maps a key pressed with no field focused to an Event.
// Flashcard and quiz keys only resolve on their own tab.
func (m *Model) resolveShortcut(msg tea.KeyMsg) (Event, int) {
	k := m.keys
	tab := m.activeTab()

	switch {
	case key.Matches(msg, k.Quit):
		return EventQuit, 0
	case key.Matches(msg, k.Help):
		return EventHelp, 0
	case key.Matches(msg, k.Tab1):
		return EventSwitchTab, int(state.TabExplainer)
	case key.Matches(msg, k.Tab2):
		return EventSwitchTab, int(state.TabSummarizer)
	case key.Matches(msg, k.Tab3):
		return EventSwitchTab, int(state.TabQuiz)
	case key.Matches(msg, k.Tab4):
		return EventSwitchTab, int(state.TabFlashcards)
	case key.Matches(msg, k.ToggleTheme):
		return EventToggleTheme, 0
	case key.Matches(msg, k.Settings):
		return EventOpenSettings, 0
	case key.Matches(msg, k.NextField):
		return EventFocusField, +1
	case key.Matches(msg, k.PrevField):
		return EventFocusField, -1
	case key.Matches(msg, k.Generate):
		return EventGenerate, 0
	case key.Matches(msg, k.Dismiss):
		return EventDismiss, 0
	case key.Matches(msg, k.Copy):
		return EventCopy, 0
	}

	if tab == state.TabFlashcards {
		switch {
		case key.Matches(msg, k.PrevCard):
			return EventPrevCard, 0
		case key.Matches(msg, k.NextCard):
			return EventNextCard, 0
		case key.Matches(msg, k.Flip):
			return EventFlipCard, 0
		case key.Matches(msg, k.Shuffle):
			return EventShuffleDeck, 0
		case key.Matches(msg, k.SaveDeck):
			return EventSaveDeck, 0
		case key.Matches(msg, k.LoadDeck):
			return EventLoadDeck, 0
		case key.Matches(msg, k.Clear):
			return EventClearDeck, 0
		}
	}
	if tab == state.TabQuiz && key.Matches(msg, k.Reveal) {
		return EventRevealAnswers, 0
	}

	switch {
	case key.Matches(msg, k.ScrollUp):
		return EventScroll, -1
	case key.Matches(msg, k.ScrollDown):
		return EventScroll, +1
	case key.Matches(msg, k.PageUp):
		return EventScroll, -pageScroll
	case key.Matches(msg, k.PageDown):
		return EventScroll, +pageScroll
	}
	return EventNone, 0
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.overlay {
		return m.handleStartupKey(msg)
	}
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return nil
	}
	if m.modal != nil {
		return m.handleModalKey(msg)
	}
	if m.focus >= 0 {
		return m.handleFieldKey(msg)
	}
	ev, arg := m.resolveShortcut(msg)
	return m.dispatch(ev, arg)
}

func (m *Model) switchTab(arg int) tea.Cmd {
	tab := state.Tab(arg)
	if tab < state.TabExplainer || tab > state.TabFlashcards {
		return nil
	}
	m.blurField()
	m.invalidate(m.store.SetTab(tab))
	return nil
}

func (m *Model) scrollOutput(lines int) tea.Cmd {
	switch {
	case lines == -pageScroll:
		m.el.output.HalfViewUp()
	case lines == pageScroll:
		m.el.output.HalfViewDown()
	case lines < 0:
		m.el.output.LineUp(-lines)
	default:
		m.el.output.LineDown(lines)
	}
	return nil
}

const pageScroll = 1 << 10
