package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/concepta/internal/state"
)

// moveFocus steps focus through the active tab's fields. Stepping past
// either end leaves the form.
func (m *Model) moveFocus(dir int) tea.Cmd {
	fields := m.el.fields(m.activeTab())
	if len(fields) == 0 {
		return nil
	}
	next := m.focus + dir
	if m.focus < 0 && dir < 0 {
		next = len(fields) - 1
	}
	if next < 0 || next >= len(fields) {
		m.blurField()
		return nil
	}
	return m.focusField(next)
}

func (m *Model) focusField(i int) tea.Cmd {
	m.el.blurAll()
	m.focus = i
	f := m.el.fields(m.activeTab())[i]
	switch f.kind {
	case fieldText:
		return f.text.Focus()
	case fieldArea:
		return f.area.Focus()
	}
	return nil
}

func (m *Model) blurField() {
	m.el.blurAll()
	m.focus = -1
}

func (m *Model) focusedField() (field, bool) {
	fields := m.el.fields(m.activeTab())
	if m.focus < 0 || m.focus >= len(fields) {
		return field{}, false
	}
	return fields[m.focus], true
}

// handleFieldKey routes keys while a field has focus. Shortcuts are not
// resolved here; only field navigation, submit and quit apply.
func (m *Model) handleFieldKey(msg tea.KeyMsg) tea.Cmd {
	f, ok := m.focusedField()
	if !ok {
		m.blurField()
		return nil
	}
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Escape):
		m.blurField()
		return nil
	case key.Matches(msg, k.NextField):
		return m.moveFocus(+1)
	case key.Matches(msg, k.PrevField):
		return m.moveFocus(-1)
	case key.Matches(msg, k.Generate):
		return m.generate(m.activeTab())
	}

	switch f.kind {
	case fieldText:
		if key.Matches(msg, k.Confirm) {
			return m.generate(m.activeTab())
		}
		var cmd tea.Cmd
		*f.text, cmd = f.text.Update(msg)
		return cmd

	case fieldArea:
		var cmd tea.Cmd
		*f.area, cmd = f.area.Update(msg)
		return cmd

	case fieldSelect:
		switch {
		case key.Matches(msg, k.OptPrev):
			f.sel.Step(-1)
		case key.Matches(msg, k.OptNext):
			f.sel.Step(+1)
		case key.Matches(msg, k.Confirm):
			return m.generate(m.activeTab())
		default:
			return nil
		}
		if f.sel == m.el.difficulty {
			m.invalidate(m.store.SetDifficulty(state.Difficulty(f.sel.Value())))
		}
	}
	return nil
}
