package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/concepta/internal/notify"
	"github.com/five82/concepta/internal/prefs"
	"github.com/five82/concepta/internal/state"
)

// deckChanged is invalidate for deck mutations. A changed deck replaces
// the failure panel of an earlier flashcard generation.
func (m *Model) deckChanged(region state.Region) {
	if region == state.RegionNone {
		return
	}
	m.views[state.TaskFlashcards].err = nil
	m.invalidate(region)
}

func (m *Model) shuffleDeck() tea.Cmd {
	region := m.store.ShuffleFlashcards()
	if region == state.RegionNone {
		return m.notify("No flashcards to shuffle", notify.Info)
	}
	m.deckChanged(region)
	return m.notify("Deck shuffled", notify.Info)
}

// saveDeck persists the current deck. Saving is always an explicit action.
func (m *Model) saveDeck() tea.Cmd {
	cards := m.store.Snapshot().Flashcards
	if len(cards) == 0 {
		return m.notify("No flashcards to save", notify.Warning)
	}
	if err := m.prefs.SaveFlashcards(cards); err != nil {
		m.logger.Error("save flashcards failed", zap.Error(err))
		return m.notify("Could not save flashcards", notify.Error)
	}
	return m.notify(fmt.Sprintf("Saved %d flashcards", len(cards)), notify.Success)
}

// loadDeck replaces the deck with the saved one. Missing and unreadable
// saves both leave the current deck alone.
func (m *Model) loadDeck() tea.Cmd {
	res := m.prefs.LoadFlashcards()
	switch {
	case res.Status == prefs.StatusMalformed:
		m.logger.Warn("saved flashcards unreadable", zap.Error(res.Err))
		return m.notify("No saved flashcards found", notify.Info)
	case res.Status == prefs.StatusMissing, len(res.Value) == 0:
		return m.notify("No saved flashcards found", notify.Info)
	}
	m.deckChanged(m.store.ReplaceFlashcards(res.Value))
	return m.notify(fmt.Sprintf("Loaded %d flashcards", len(res.Value)), notify.Success)
}

func (m *Model) clearDeck() tea.Cmd {
	if len(m.store.Snapshot().Flashcards) == 0 {
		return nil
	}
	m.deckChanged(m.store.ClearFlashcards())
	return m.notify("Flashcards cleared", notify.Info)
}

// renderDeck draws the card under the cursor.
func (m Model) renderDeck(width int) string {
	styles := m.theme.Styles()
	snap := m.store.Snapshot()

	if len(snap.Flashcards) == 0 {
		return styles.MutedText.Render(wrap(
			"No flashcards yet. Paste some material above and press ctrl+r, or press o to load a saved deck.",
			width))
	}

	card := snap.Flashcards[snap.CardIndex]
	label, text := "Question", card.Question
	labelStyle := styles.AccentText.Bold(true)
	if snap.Flipped {
		label, text = "Answer", card.Answer
		labelStyle = styles.SuccessText
	}

	cardWidth := width - 4
	if cardWidth < 20 {
		cardWidth = 20
	}
	body := labelStyle.Render(label) + "\n\n" + styles.Text.Render(wrap(text, cardWidth-4))
	box := styles.FocusPanel.
		Padding(1, 2).
		Width(cardWidth).
		Render(body)

	counter := styles.MutedText.Render(fmt.Sprintf("Card %d / %d", snap.CardIndex+1, len(snap.Flashcards)))
	hints := styles.FaintText.Render(wrap(
		"space flip · ←/→ navigate · s shuffle · w save · o load · c clear", width))

	return lipgloss.JoinVertical(lipgloss.Left, counter, box, hints)
}

func plainDeck(snap state.Snapshot) string {
	if len(snap.Flashcards) == 0 {
		return ""
	}
	card := snap.Flashcards[snap.CardIndex]
	var b strings.Builder
	fmt.Fprintf(&b, "Q: %s\nA: %s\n", card.Question, card.Answer)
	return b.String()
}
