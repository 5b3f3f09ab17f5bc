package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-wordwrap"

	"github.com/five82/concepta/internal/backend"
	"github.com/five82/concepta/internal/state"
)

var tabTitles = map[state.Tab]string{
	state.TabExplainer:  "Explain",
	state.TabSummarizer: "Summarize",
	state.TabQuiz:       "Quiz",
	state.TabFlashcards: "Flashcards",
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	parts := []string{
		m.renderHeader(),
		m.renderTabs(),
		m.renderForm(),
		m.renderOutputBox(),
	}
	if toasts := m.renderToasts(); toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	snap := m.store.Snapshot()
	bg := NewBgStyle(m.theme.Surface)

	left := bg.Join([]string{
		bg.Render("Concepta", styles.Logo),
		bg.Render("● "+snap.Connection.String(), styles.ConnectionStyle(snap.Connection)),
	}, "  ")
	right := bg.Join([]string{
		bg.Render("model "+truncate(snap.Model, 24), styles.MutedText),
		bg.Render(string(snap.Theme), styles.FaintText),
	}, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	active := m.activeTab()

	tabs := make([]string, 0, len(state.Tabs))
	for i, tab := range state.Tabs {
		label := fmt.Sprintf(" %d %s ", i+1, tabTitles[tab])
		if tab == active {
			tabs = append(tabs, styles.Selected.Bold(true).Render(label))
		} else {
			tabs = append(tabs, styles.MutedText.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderForm() string {
	styles := m.theme.Styles()
	fields := m.el.fields(m.activeTab())

	lines := make([]string, 0, len(fields))
	for i, f := range fields {
		focused := i == m.focus
		labelStyle := styles.MutedText.Width(12)
		if focused {
			labelStyle = styles.AccentText.Bold(true).Width(12)
		}

		var control string
		switch f.kind {
		case fieldText:
			control = f.text.View()
		case fieldArea:
			control = f.area.View()
		case fieldSelect:
			value := "‹ " + f.sel.Value() + " ›"
			if focused {
				control = styles.Selected.Render(value)
			} else {
				control = styles.Text.Render(value)
			}
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(f.label), control))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderOutputBox() string {
	styles := m.theme.Styles()
	return styles.Panel.Width(m.width - 2).Render(m.el.output.View())
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	var hints []string
	if m.focus >= 0 {
		hints = []string{"esc leave field", "tab next", "ctrl+r generate"}
	} else {
		for _, b := range m.keys.ShortHelp() {
			h := b.Help()
			hints = append(hints, h.Key+" "+strings.ToLower(h.Desc))
		}
	}
	return styles.Footer.Width(m.width).Render(truncate(strings.Join(hints, " · "), m.width-2))
}

// contentWidth is the usable width inside the output panel.
func (m Model) contentWidth() int {
	w := m.width - 4
	if w < minContentWidth {
		w = minContentWidth
	}
	return w
}

// syncOutput sizes the output viewport to the space left over and fills it
// with the active tab's content.
func (m *Model) syncOutput() {
	if !m.ready {
		return
	}
	used := lipgloss.Height(m.renderHeader()) +
		lipgloss.Height(m.renderTabs()) +
		lipgloss.Height(m.renderForm()) +
		lipgloss.Height(m.renderFooter()) +
		2 // output panel border
	if toasts := m.renderToasts(); toasts != "" {
		used += lipgloss.Height(toasts)
	}
	height := m.height - used
	if height < 3 {
		height = 3
	}
	m.el.output.Width = m.contentWidth()
	m.el.output.Height = height
	m.el.output.SetContent(m.outputContent(m.contentWidth()))
}

// outputContent renders the active tab's output region.
func (m Model) outputContent(width int) string {
	styles := m.theme.Styles()
	task := m.currentTask()
	view := m.views[task]
	noun := taskDefs[task].noun

	if view.loading {
		return fmt.Sprintf("%s Generating %s…", m.el.spinner.View(), noun)
	}
	if view.err != nil {
		return m.renderErrorPanel(noun, view.err, width)
	}

	switch task {
	case state.TaskExplain:
		if view.explain != nil {
			return renderExplanation(*view.explain, width, styles)
		}
		return styles.MutedText.Render(wrap("Enter a topic, pick a level and press ctrl+r to get an explanation.", width))
	case state.TaskSummarize:
		if view.summary != nil {
			return renderSummary(*view.summary, width, styles)
		}
		return styles.MutedText.Render(wrap("Paste your notes and press ctrl+r to summarize them.", width))
	case state.TaskQuiz:
		if view.quiz != nil {
			return renderQuiz(*view.quiz, view.answers, width, styles)
		}
		return styles.MutedText.Render(wrap("Paste study material and press ctrl+r to generate a quiz.", width))
	default:
		return m.renderDeck(width)
	}
}

func renderExplanation(resp backend.ExplainResponse, width int, styles Styles) string {
	var b strings.Builder
	section(&b, styles, "Explanation")
	b.WriteString(styles.Text.Render(wrap(resp.SimpleExplanation, width)))
	b.WriteString("\n\n")

	section(&b, styles, "Steps")
	numbered(&b, styles, resp.Steps, width)
	b.WriteString("\n")

	section(&b, styles, "Analogy")
	b.WriteString(styles.Text.Italic(true).Render(wrap(resp.Analogy, width)))
	b.WriteString("\n\n")

	section(&b, styles, "Key Points")
	bullets(&b, styles, resp.KeyPoints, width)
	return strings.TrimRight(b.String(), "\n")
}

// renderSummary shows the summary; the other sections appear only when the
// backend returned something for them.
func renderSummary(resp backend.SummaryResponse, width int, styles Styles) string {
	var b strings.Builder
	section(&b, styles, "Summary")
	b.WriteString(styles.Text.Render(wrap(resp.Summary, width)))
	b.WriteString("\n\n")

	if len(resp.KeyPoints) > 0 {
		section(&b, styles, "Key Points")
		bullets(&b, styles, resp.KeyPoints, width)
		b.WriteString("\n")
	}
	if len(resp.Definitions) > 0 {
		section(&b, styles, "Definitions")
		for _, d := range resp.Definitions {
			b.WriteString(styles.AccentText.Render(d.Term))
			b.WriteString("\n")
			b.WriteString(styles.Text.Render(indent(wrap(d.Definition, width-2), "  ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if len(resp.ExamTips) > 0 {
		section(&b, styles, "Exam Tips")
		bullets(&b, styles, resp.ExamTips, width)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderQuiz lists the questions. An empty question list is shown as an
// empty state, not as a failure.
func renderQuiz(resp backend.QuizResponse, answers bool, width int, styles Styles) string {
	if len(resp.Questions) == 0 {
		return styles.WarningText.Render("No questions generated") + "\n" +
			styles.MutedText.Render(wrap("The backend returned an empty quiz. Try adding more material or a different question type.", width))
	}

	var b strings.Builder
	meta := fmt.Sprintf("%d questions · %s", len(resp.Questions), resp.Difficulty)
	b.WriteString(styles.MutedText.Render(meta))
	b.WriteString("\n\n")

	for i, q := range resp.Questions {
		prefix := fmt.Sprintf("%d. ", i+1)
		b.WriteString(styles.Heading.Render(prefix))
		b.WriteString(styles.Text.Render(hang(wrap(q.Question, width-len(prefix)), len(prefix))))
		b.WriteString("\n")
		if q.Type == backend.QuestionTrueFalse && len(q.Options) == 0 {
			b.WriteString(styles.MutedText.Render("   True / False"))
			b.WriteString("\n")
		}
		for j, opt := range q.Options {
			line := fmt.Sprintf("   %c) %s", 'A'+j, opt)
			b.WriteString(styles.Text.Render(wrap(line, width)))
			b.WriteString("\n")
		}
		if answers {
			b.WriteString(styles.SuccessText.Render("   Answer: " + q.Answer))
			b.WriteString("\n")
			if q.Explanation != "" {
				b.WriteString(styles.MutedText.Render(indent(wrap(q.Explanation, width-3), "   ")))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	if !answers {
		b.WriteString(styles.FaintText.Render("Press a to show answers"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderErrorPanel is the inline failure shown in place of a result.
func (m Model) renderErrorPanel(noun string, err error, width int) string {
	styles := m.theme.Styles()
	snap := m.store.Snapshot()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Could not generate " + noun))
	b.WriteString("\n")

	var status *backend.StatusError
	if errors.As(err, &status) && status.Detail != "" {
		b.WriteString(styles.Text.Render(wrap(status.Detail, width)))
	} else {
		b.WriteString(styles.MutedText.Render(wrap(err.Error(), width)))
	}
	b.WriteString("\n\n")

	hints := []string{
		fmt.Sprintf("Check that the backend is running at %s", snap.BackendURL),
		fmt.Sprintf("Check that the inference engine at %s has model %s", snap.APIURL, snap.Model),
		"Try shorter input or a different model (ctrl+p)",
		"Press ctrl+r to try again",
	}
	if backend.IsUnreachable(err) {
		hints = hints[:1]
		hints = append(hints, "Press ctrl+r to try again once it is back")
	}
	bullets(&b, styles, hints, width)
	return strings.TrimRight(b.String(), "\n")
}

// plainOutput is the active result as unstyled text, for the clipboard.
func (m Model) plainOutput() string {
	task := m.currentTask()
	view := m.views[task]
	if view.loading || view.err != nil {
		return ""
	}
	plain := plainStyles()
	width := 80

	switch task {
	case state.TaskExplain:
		if view.explain != nil {
			return renderExplanation(*view.explain, width, plain)
		}
	case state.TaskSummarize:
		if view.summary != nil {
			return renderSummary(*view.summary, width, plain)
		}
	case state.TaskQuiz:
		if view.quiz != nil && len(view.quiz.Questions) > 0 {
			return renderQuiz(*view.quiz, view.answers, width, plain)
		}
	case state.TaskFlashcards:
		return plainDeck(m.store.Snapshot())
	}
	return ""
}

// plainStyles renders without any escape sequences.
func plainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{
		Text: s, MutedText: s, FaintText: s, AccentText: s,
		SuccessText: s, WarningText: s, DangerText: s, InfoText: s,
		Heading: s,
	}
}

func section(b *strings.Builder, styles Styles, title string) {
	b.WriteString(styles.Heading.Render(title))
	b.WriteString("\n")
}

func bullets(b *strings.Builder, styles Styles, items []string, width int) {
	for _, item := range items {
		b.WriteString(styles.Text.Render("• " + hang(wrap(item, width-2), 2)))
		b.WriteString("\n")
	}
}

func numbered(b *strings.Builder, styles Styles, items []string, width int) {
	for i, item := range items {
		prefix := fmt.Sprintf("%d. ", i+1)
		b.WriteString(styles.Text.Render(prefix + hang(wrap(item, width-len(prefix)), len(prefix))))
		b.WriteString("\n")
	}
}

// wrap word-wraps text to width columns.
func wrap(text string, width int) string {
	if width < 10 {
		width = 10
	}
	return wordwrap.WrapString(strings.TrimSpace(text), uint(width))
}

// hang indents every line after the first by n spaces.
func hang(text string, n int) string {
	return strings.ReplaceAll(text, "\n", "\n"+strings.Repeat(" ", n))
}

func indent(text, prefix string) string {
	return prefix + strings.ReplaceAll(text, "\n", "\n"+prefix)
}
