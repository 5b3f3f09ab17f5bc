package ui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/concepta/internal/backend"
	"github.com/five82/concepta/internal/notify"
	"github.com/five82/concepta/internal/prefs"
	"github.com/five82/concepta/internal/state"
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Gateway backend.Gateway
	Store   *state.Store
	Prefs   *prefs.Store
	Notify  *notify.Center
	Logger  *zap.Logger
	// Clipboard writes text to the system clipboard. Defaults to
	// clipboard.WriteAll.
	Clipboard func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx       context.Context
	gateway   backend.Gateway
	store     *state.Store
	prefs     *prefs.Store
	notes     *notify.Center
	logger    *zap.Logger
	clipboard func(string) error
	schedule  func(time.Duration, tea.Msg) tea.Cmd

	// UI state
	keys   keyMap
	theme  Theme
	el     *elements
	width  int
	height int
	ready  bool

	// Startup
	phase       startupPhase
	overlay     bool
	inferenceOK bool
	startupErr  error

	// Form focus; -1 means no field is focused.
	focus int

	// Per-task output
	views [4]taskView

	// Overlays
	showHelp   bool
	modal      Modal
	models     []string
	modelSpecs map[string]string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	notes := opts.Notify
	if notes == nil {
		notes = notify.NewCenter()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	m := Model{
		ctx:       ctx,
		gateway:   opts.Gateway,
		store:     opts.Store,
		prefs:     opts.Prefs,
		notes:     notes,
		logger:    logger.Named("ui"),
		clipboard: copyFn,
		schedule:  afterCmd,
		keys:      DefaultKeyMap(),
		el:        newElements(),
		phase:     phaseCheckingBackend,
		overlay:   true,
		focus:     -1,
		models:    backend.FallbackModels,
	}
	snap := m.store.Snapshot()
	m.theme = GetTheme(snap.Theme)
	m.el.difficulty.SetValue(string(snap.Difficulty))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.startupCmd(),
		m.el.spinner.Tick,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncOutput()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.el.setWidth(m.contentWidth())
		return nil

	case spinner.TickMsg:
		if !m.spinning() {
			return nil
		}
		var cmd tea.Cmd
		m.el.spinner, cmd = m.el.spinner.Update(msg)
		return cmd

	case backendCheckedMsg:
		return m.handleBackendChecked(msg)

	case inferenceCheckedMsg:
		return m.handleInferenceChecked(msg)

	case revealMsg:
		return m.handleReveal()

	case modelsMsg:
		m.handleModels(msg)
		return nil

	case modelInfoMsg:
		m.handleModelInfo(msg)
		return nil

	case taskResultMsg:
		return m.handleTaskResult(msg)

	case settingsSubmittedMsg:
		return m.handleSettingsSubmitted(msg)

	case toastExpiredMsg:
		m.notes.Expire(msg.id)
		return nil
	}
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.overlay {
		return m.renderStartup()
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// spinning reports whether anything on screen shows the spinner.
func (m *Model) spinning() bool {
	if m.overlay && m.phase != phaseBackendUnavailable {
		return true
	}
	for _, v := range m.views {
		if v.loading {
			return true
		}
	}
	return false
}

func (m *Model) activeTab() state.Tab {
	return m.store.Snapshot().Tab
}

// invalidate refreshes whatever depends on the region a store mutation
// reported.
func (m *Model) invalidate(region state.Region) {
	switch region {
	case state.RegionTabs, state.RegionFlashcards:
		m.el.output.GotoTop()
	case state.RegionTheme, state.RegionSettings:
		m.theme = GetTheme(m.store.Snapshot().Theme)
	case state.RegionDifficulty:
		m.el.difficulty.SetValue(string(m.store.Snapshot().Difficulty))
	}
}

// notify shows a notification and schedules its expiry.
func (m *Model) notify(message string, kind notify.Kind) tea.Cmd {
	n := m.notes.Notify(message, kind, 0)
	m.logger.Debug("notification", zap.String("kind", string(kind)), zap.String("message", message))
	return m.schedule(n.Duration, toastExpiredMsg{id: n.ID})
}

// Messages

type toastExpiredMsg struct{ id string }

// Commands

func afterCmd(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(optsContext(opts)))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func optsContext(opts Options) context.Context {
	if opts.Context == nil {
		return context.Background()
	}
	return opts.Context
}
