package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/concepta/internal/backend"
	"github.com/five82/concepta/internal/notify"
	"github.com/five82/concepta/internal/state"
)

// startupPhase tracks the connection checks that gate the main UI.
type startupPhase int

const (
	phaseCheckingBackend startupPhase = iota
	phaseCheckingInference
	phaseReady
	// phaseBackendUnavailable holds until the user retries; the main UI is
	// never shown from here.
	phaseBackendUnavailable
)

func (p startupPhase) String() string {
	switch p {
	case phaseCheckingBackend:
		return "checking backend"
	case phaseCheckingInference:
		return "checking inference engine"
	case phaseReady:
		return "ready"
	case phaseBackendUnavailable:
		return "backend unavailable"
	default:
		return "unknown"
	}
}

// ReadyDelay is how long the loading overlay stays up after both checks.
const ReadyDelay = 1000 * time.Millisecond

type backendCheckedMsg struct {
	health backend.HealthResponse
	err    error
}

type inferenceCheckedMsg struct {
	err error
}

type revealMsg struct{}

type modelsMsg struct {
	models []string
	err    error
}

type modelInfoMsg struct {
	info backend.ModelInfo
	err  error
}

func (m *Model) startupCmd() tea.Cmd {
	gw := m.gateway
	ctx := m.ctx
	return func() tea.Msg {
		health, err := gw.CheckHealth(ctx)
		return backendCheckedMsg{health: health, err: err}
	}
}

func (m *Model) handleBackendChecked(msg backendCheckedMsg) tea.Cmd {
	if m.phase != phaseCheckingBackend {
		return nil
	}
	if msg.err != nil {
		m.logger.Warn("backend health check failed", zap.Error(msg.err))
		m.invalidate(m.store.SetConnection(state.Disconnected))
		m.phase = phaseBackendUnavailable
		m.startupErr = msg.err
		return nil
	}

	m.logger.Info("backend connected",
		zap.String("status", msg.health.Status),
		zap.String("model", msg.health.Model),
		zap.Bool("ollama_connected", msg.health.OllamaConnected),
	)
	m.invalidate(m.store.SetConnection(state.Connected))
	m.phase = phaseCheckingInference

	gw := m.gateway
	ctx := m.ctx
	apiURL := m.store.Snapshot().APIURL
	return func() tea.Msg {
		return inferenceCheckedMsg{err: gw.CheckInference(ctx, apiURL)}
	}
}

func (m *Model) handleInferenceChecked(msg inferenceCheckedMsg) tea.Cmd {
	if m.phase != phaseCheckingInference {
		return nil
	}
	m.inferenceOK = msg.err == nil
	if msg.err != nil {
		m.logger.Warn("inference engine not detected", zap.Error(msg.err))
	}
	m.phase = phaseReady
	return m.schedule(ReadyDelay, revealMsg{})
}

func (m *Model) handleReveal() tea.Cmd {
	if m.phase != phaseReady || !m.overlay {
		return nil
	}
	m.overlay = false

	var note tea.Cmd
	if m.inferenceOK {
		note = m.notify("AI engine ready", notify.Success)
	} else {
		note = m.notify("Inference engine not detected; responses may be placeholders", notify.Warning)
	}

	gw := m.gateway
	ctx := m.ctx
	return tea.Batch(note, func() tea.Msg {
		models, err := gw.Models(ctx)
		return modelsMsg{models: models, err: err}
	}, func() tea.Msg {
		info, err := gw.ModelInfo(ctx)
		return modelInfoMsg{info: info, err: err}
	})
}

// handleModels swaps in the backend's model list, including in a settings
// dialog opened before the list arrived.
func (m *Model) handleModels(msg modelsMsg) {
	if msg.err != nil {
		m.logger.Debug("model list unavailable, using built-in list", zap.Error(msg.err))
	}
	if len(msg.models) == 0 {
		return
	}
	m.models = msg.models
	if sm, ok := m.modal.(*settingsModal); ok {
		sm.model.SetOptions(m.models)
	}
}

func (m *Model) handleModelInfo(msg modelInfoMsg) {
	if msg.err != nil {
		m.logger.Debug("model info unavailable", zap.Error(msg.err))
		return
	}
	m.modelSpecs = msg.info.Specs
	if sm, ok := m.modal.(*settingsModal); ok {
		sm.specs = m.modelSpecs
	}
}

// retryStartup restarts the checks from the backend probe.
func (m *Model) retryStartup() tea.Cmd {
	if m.phase != phaseBackendUnavailable {
		return nil
	}
	m.phase = phaseCheckingBackend
	m.startupErr = nil
	m.invalidate(m.store.SetConnection(state.Connecting))
	return tea.Batch(m.startupCmd(), m.el.spinner.Tick)
}

// handleStartupKey handles keys while the loading overlay is up.
func (m *Model) handleStartupKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Retry):
		return m.retryStartup()
	}
	return nil
}

func (m Model) renderStartup() string {
	styles := m.theme.Styles()
	snap := m.store.Snapshot()

	var b strings.Builder
	b.WriteString(styles.Logo.Render("Concepta"))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseCheckingBackend:
		fmt.Fprintf(&b, "%s Connecting to backend at %s", m.el.spinner.View(), snap.BackendURL)
	case phaseCheckingInference:
		fmt.Fprintf(&b, "%s Checking inference engine at %s", m.el.spinner.View(), snap.APIURL)
	case phaseReady:
		if m.inferenceOK {
			b.WriteString(styles.SuccessText.Render("✓ Ready"))
		} else {
			b.WriteString(styles.WarningText.Render("! Ready without inference engine"))
		}
	case phaseBackendUnavailable:
		b.WriteString(m.renderRemediation(snap))
	}

	panel := styles.Panel.
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		panel,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m Model) renderRemediation(snap state.Snapshot) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Cannot reach the Concepta backend"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(snap.BackendURL))
	b.WriteString("\n\n")
	if m.startupErr != nil {
		b.WriteString(styles.FaintText.Render(truncate(m.startupErr.Error(), 72)))
		b.WriteString("\n\n")
	}
	steps := []string{
		"Start the backend service and make sure it listens on that address",
		"Check backend_url in config.toml or CONCEPTA_BACKEND_URL",
		"Press r to retry, ctrl+c to quit",
	}
	for i, step := range steps {
		fmt.Fprintf(&b, "%s %s\n", styles.AccentText.Render(fmt.Sprintf("%d.", i+1)), styles.Text.Render(step))
	}
	return strings.TrimRight(b.String(), "\n")
}
