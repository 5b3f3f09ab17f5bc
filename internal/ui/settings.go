package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/five82/concepta/internal/notify"
	"github.com/five82/concepta/internal/prefs"
	"github.com/five82/concepta/internal/state"
)

const (
	settingsModel = iota
	settingsAPIURL
	settingsTheme
	settingsFieldCount
)

var settingsLabels = [settingsFieldCount]string{"Model", "API URL", "Theme"}

// settingsSubmittedMsg asks the model to persist and apply new settings.
type settingsSubmittedMsg struct {
	settings prefs.Settings
}

// settingsModal edits the model, inference API URL and theme.
type settingsModal struct {
	model  *selector
	apiURL textinput.Model
	theme  *selector
	focus  int

	// specs maps a model name to its hardware note, when the backend
	// reported one.
	specs map[string]string
}

func newSettingsModal(snap state.Snapshot, models []string, specs map[string]string) *settingsModal {
	apiURL := newTextInput("http://localhost:11434")
	apiURL.SetValue(snap.APIURL)

	sm := &settingsModal{
		model:  newSelector(models, snap.Model),
		apiURL: apiURL,
		theme:  newSelector([]string{string(state.ThemeDark), string(state.ThemeLight)}, string(snap.Theme)),
		specs:  specs,
	}
	sm.setFocus(settingsModel)
	return sm
}

func (sm *settingsModal) setFocus(i int) {
	sm.focus = (i + settingsFieldCount) % settingsFieldCount
	if sm.focus == settingsAPIURL {
		sm.apiURL.Focus()
	} else {
		sm.apiURL.Blur()
	}
}

func (sm *settingsModal) values() prefs.Settings {
	return prefs.Settings{
		Theme:  sm.theme.Value(),
		Model:  sm.model.Value(),
		APIURL: strings.TrimSpace(sm.apiURL.Value()),
	}
}

// Update implements Modal. Enter submits without closing; the dialog closes
// once the settings are saved.
func (sm *settingsModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return sm, nil, false
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		return sm, tea.Quit, false
	case key.Matches(keyMsg, keys.Escape):
		return sm, nil, true
	case key.Matches(keyMsg, keys.NextField):
		sm.setFocus(sm.focus + 1)
		return sm, nil, false
	case key.Matches(keyMsg, keys.PrevField):
		sm.setFocus(sm.focus - 1)
		return sm, nil, false
	case key.Matches(keyMsg, keys.Confirm):
		settings := sm.values()
		return sm, func() tea.Msg { return settingsSubmittedMsg{settings: settings} }, false
	}

	switch sm.focus {
	case settingsAPIURL:
		var cmd tea.Cmd
		sm.apiURL, cmd = sm.apiURL.Update(keyMsg)
		return sm, cmd, false
	case settingsModel, settingsTheme:
		sel := sm.model
		if sm.focus == settingsTheme {
			sel = sm.theme
		}
		switch {
		case key.Matches(keyMsg, keys.OptPrev):
			sel.Step(-1)
		case key.Matches(keyMsg, keys.OptNext):
			sel.Step(+1)
		}
	}
	return sm, nil, false
}

// View implements Modal.
func (sm *settingsModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Settings"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")

	for i, label := range settingsLabels {
		labelStyle := styles.MutedText.Width(10)
		if i == sm.focus {
			labelStyle = styles.AccentText.Bold(true).Width(10)
		}

		var control string
		switch i {
		case settingsAPIURL:
			control = sm.apiURL.View()
		case settingsModel:
			control = renderOption(styles, sm.model.Value(), i == sm.focus)
		case settingsTheme:
			control = renderOption(styles, sm.theme.Value(), i == sm.focus)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), control))
		b.WriteString("\n")
		if i == settingsModel {
			if spec := sm.modelSpec(); spec != "" {
				b.WriteString(strings.Repeat(" ", 10) + styles.FaintText.Render(spec))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("tab next · ←/→ change · enter save · esc cancel"))

	return placeModal(theme, width, height, settingsWidth, b.String())
}

// modelSpec is the hardware note for the selected model, or "".
func (sm *settingsModal) modelSpec() string {
	return sm.specs[sm.model.Value()]
}

func renderOption(styles Styles, value string, focused bool) string {
	value = "‹ " + value + " ›"
	if focused {
		return styles.Selected.Render(value)
	}
	return styles.Text.Render(value)
}

func (m *Model) openSettings() tea.Cmd {
	m.blurField()
	m.modal = newSettingsModal(m.store.Snapshot(), m.models, m.modelSpecs)
	return nil
}

// handleSettingsSubmitted validates and persists the settings, then applies
// them. Invalid settings keep the dialog open.
func (m *Model) handleSettingsSubmitted(msg settingsSubmittedMsg) tea.Cmd {
	settings := msg.settings
	if err := m.prefs.SaveSettings(settings); err != nil {
		m.logger.Warn("save settings failed", zap.Error(err))
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return m.notify("Invalid settings: "+describeInvalid(verrs), notify.Error)
		}
		return m.notify("Could not save settings", notify.Error)
	}
	if err := m.prefs.SaveTheme(settings.Theme); err != nil {
		m.logger.Warn("save theme failed", zap.Error(err))
	}

	theme, _ := state.ParseTheme(settings.Theme)
	m.invalidate(m.store.ApplySettings(theme, settings.Model, settings.APIURL))
	m.modal = nil
	m.logger.Info("settings applied",
		zap.String("theme", settings.Theme),
		zap.String("model", settings.Model),
		zap.String("api_url", settings.APIURL),
	)
	return m.notify("Settings saved", notify.Success)
}

func describeInvalid(verrs validator.ValidationErrors) string {
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "APIURL":
			names = append(names, "API URL must be a URL")
		case "Model":
			names = append(names, "model is required")
		case "Theme":
			names = append(names, "theme must be dark or light")
		default:
			names = append(names, strings.ToLower(fe.Field()))
		}
	}
	return strings.Join(names, ", ")
}

// toggleTheme flips between dark and light and persists the choice.
func (m *Model) toggleTheme() tea.Cmd {
	next := m.store.Snapshot().Theme.Toggle()
	m.invalidate(m.store.SetTheme(next))
	if err := m.prefs.SaveTheme(string(next)); err != nil {
		m.logger.Warn("save theme failed", zap.Error(err))
		return m.notify("Could not save theme", notify.Error)
	}
	return nil
}
