package ui

import (
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/concepta/internal/backend"
	"github.com/five82/concepta/internal/notify"
	"github.com/five82/concepta/internal/state"
)

// taskView is the output region of one tab.
type taskView struct {
	loading bool
	err     error

	explain *backend.ExplainResponse
	summary *backend.SummaryResponse
	quiz    *backend.QuizResponse
	answers bool
}

// taskResultMsg carries a finished generation request back to Update.
type taskResultMsg struct {
	task    state.Task
	seq     uint64
	payload any
	err     error
}

type taskDef struct {
	noun    string // used in messages: "explanation", "summary", ...
	field   string // what the user must fill in
	limit   int
	content func(el *elements) string
	set     func(el *elements, text string)
}

var taskDefs = map[state.Task]taskDef{
	state.TaskExplain: {
		noun:    "explanation",
		field:   "topic",
		limit:   backend.TopicLimit,
		content: func(el *elements) string { return el.topic.Value() },
		set:     func(el *elements, s string) { el.topic.SetValue(s) },
	},
	state.TaskSummarize: {
		noun:    "summary",
		field:   "notes",
		limit:   backend.NotesLimit,
		content: func(el *elements) string { return el.notes.Value() },
		set:     func(el *elements, s string) { el.notes.SetValue(s) },
	},
	state.TaskQuiz: {
		noun:    "quiz",
		field:   "content",
		limit:   backend.QuizContentLimit,
		content: func(el *elements) string { return el.quizContent.Value() },
		set:     func(el *elements, s string) { el.quizContent.SetValue(s) },
	},
	state.TaskFlashcards: {
		noun:    "flashcards",
		field:   "content",
		limit:   backend.FlashcardContentLimit,
		content: func(el *elements) string { return el.cardContent.Value() },
		set:     func(el *elements, s string) { el.cardContent.SetValue(s) },
	},
}

func taskForTab(tab state.Tab) state.Task {
	switch tab {
	case state.TabSummarizer:
		return state.TaskSummarize
	case state.TabQuiz:
		return state.TaskQuiz
	case state.TabFlashcards:
		return state.TaskFlashcards
	default:
		return state.TaskExplain
	}
}

// generate validates the active tab's input and issues its request. Blank
// input never reaches the network; overlong input is cut to the limit and
// sent anyway.
func (m *Model) generate(tab state.Tab) tea.Cmd {
	task := taskForTab(tab)
	def := taskDefs[task]

	text, truncated, err := backend.PrepareInput(def.content(m.el), def.limit)
	if errors.Is(err, backend.ErrEmptyInput) {
		return m.notify(fmt.Sprintf("Enter some %s first", def.field), notify.Warning)
	}

	var cmds []tea.Cmd
	if truncated {
		def.set(m.el, text)
		cmds = append(cmds, m.notify(
			fmt.Sprintf("Input trimmed to %d characters", def.limit), notify.Warning))
	}

	snap := m.store.Snapshot()
	seq := m.store.BeginRequest(task)
	view := &m.views[task]
	view.loading = true
	view.err = nil

	cmds = append(cmds, m.requestCmd(task, seq, text, snap), m.el.spinner.Tick)
	m.logger.Debug("generation requested",
		zap.String("task", def.noun),
		zap.Uint64("seq", seq),
		zap.Int("chars", len([]rune(text))),
	)
	return tea.Batch(cmds...)
}

func (m *Model) requestCmd(task state.Task, seq uint64, text string, snap state.Snapshot) tea.Cmd {
	gw := m.gateway
	ctx := m.ctx
	el := m.el

	switch task {
	case state.TaskExplain:
		req := backend.ExplainRequest{Topic: text, Difficulty: string(snap.Difficulty), Model: snap.Model}
		return func() tea.Msg {
			resp, err := gw.Explain(ctx, req)
			return taskResultMsg{task: task, seq: seq, payload: resp, err: err}
		}
	case state.TaskSummarize:
		req := backend.SummarizeRequest{Notes: text, Length: el.length.Value(), Model: snap.Model}
		return func() tea.Msg {
			resp, err := gw.Summarize(ctx, req)
			return taskResultMsg{task: task, seq: seq, payload: resp, err: err}
		}
	case state.TaskQuiz:
		req := backend.QuizRequest{
			Content:    text,
			Type:       el.quizType.Value(),
			Difficulty: el.quizDifficulty.Value(),
			Count:      selectedCount(el.quizCount, backend.DefaultQuizCount, backend.MaxQuizCount),
			Model:      snap.Model,
		}
		return func() tea.Msg {
			resp, err := gw.Quiz(ctx, req)
			return taskResultMsg{task: task, seq: seq, payload: resp, err: err}
		}
	default:
		req := backend.FlashcardsRequest{
			Content: text,
			Count:   selectedCount(el.cardCount, backend.DefaultFlashcardCount, backend.MaxFlashcardCount),
			Model:   snap.Model,
		}
		return func() tea.Msg {
			resp, err := gw.Flashcards(ctx, req)
			return taskResultMsg{task: task, seq: seq, payload: resp, err: err}
		}
	}
}

func selectedCount(sel *selector, def, max int) int {
	n, err := strconv.Atoi(sel.Value())
	if err != nil {
		n = def
	}
	return backend.ClampCount(n, def, max)
}

// handleTaskResult renders a finished request into its region. Results of
// superseded requests are dropped.
func (m *Model) handleTaskResult(msg taskResultMsg) tea.Cmd {
	def := taskDefs[msg.task]
	if !m.store.IsLatest(msg.task, msg.seq) {
		m.logger.Debug("dropping stale response", zap.String("task", def.noun), zap.Uint64("seq", msg.seq))
		return nil
	}

	view := &m.views[msg.task]
	view.loading = false

	if msg.err != nil {
		m.logger.Warn("generation failed", zap.String("task", def.noun), zap.Error(msg.err))
		view.err = msg.err
		return m.notify(fmt.Sprintf("Failed to generate %s", def.noun), notify.Error)
	}
	view.err = nil

	switch resp := msg.payload.(type) {
	case backend.ExplainResponse:
		view.explain = &resp
	case backend.SummaryResponse:
		view.summary = &resp
	case backend.QuizResponse:
		view.quiz = &resp
		view.answers = false
	case backend.FlashcardsResponse:
		m.deckChanged(m.store.ReplaceFlashcards(resp.Flashcards))
		if len(resp.Flashcards) == 0 {
			return m.notify("No flashcards were generated", notify.Info)
		}
		return m.notify(fmt.Sprintf("Generated %d flashcards", len(resp.Flashcards)), notify.Success)
	}
	if msg.task == m.currentTask() {
		m.el.output.GotoTop()
	}
	return nil
}

func (m *Model) currentTask() state.Task {
	return taskForTab(m.activeTab())
}

func (m *Model) toggleAnswers() {
	view := &m.views[state.TaskQuiz]
	if view.quiz == nil || len(view.quiz.Questions) == 0 {
		return
	}
	view.answers = !view.answers
}

// copyOutput puts the active tab's result on the clipboard.
func (m *Model) copyOutput() tea.Cmd {
	text := m.plainOutput()
	if text == "" {
		return m.notify("Nothing to copy yet", notify.Info)
	}
	if err := m.clipboard(text); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		return m.notify("Could not copy to clipboard", notify.Error)
	}
	return m.notify("Copied to clipboard", notify.Success)
}
