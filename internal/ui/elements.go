package ui

import (
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/five82/concepta/internal/backend"
	"github.com/five82/concepta/internal/state"
)

// selector cycles through a fixed list of options.
type selector struct {
	options []string
	index   int
}

func newSelector(options []string, value string) *selector {
	s := &selector{options: slices.Clone(options)}
	s.SetValue(value)
	return s
}

func (s *selector) Value() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.index]
}

// SetValue selects value, adding it when it is not one of the options.
func (s *selector) SetValue(value string) {
	if value == "" {
		return
	}
	if i := slices.Index(s.options, value); i >= 0 {
		s.index = i
		return
	}
	s.options = append(s.options, value)
	s.index = len(s.options) - 1
}

// SetOptions replaces the options, keeping the current value selected.
func (s *selector) SetOptions(options []string) {
	current := s.Value()
	s.options = slices.Clone(options)
	s.index = 0
	s.SetValue(current)
}

func (s *selector) Step(dir int) {
	n := len(s.options)
	if n == 0 {
		return
	}
	s.index = (s.index + dir + n) % n
}

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldArea
	fieldSelect
)

// field is one focusable control in a tab's form.
type field struct {
	label string
	kind  fieldKind
	text  *textinput.Model
	area  *textarea.Model
	sel   *selector
}

// elements holds every bound UI control. It is built once by newElements
// and shared by pointer; nothing looks controls up by name afterwards.
type elements struct {
	topic      textinput.Model
	difficulty *selector

	notes  textarea.Model
	length *selector

	quizContent    textarea.Model
	quizType       *selector
	quizDifficulty *selector
	quizCount      *selector

	cardContent textarea.Model
	cardCount   *selector

	output  viewport.Model
	spinner spinner.Model
}

func newElements() *elements {
	el := &elements{
		topic:      newTextInput("e.g. Photosynthesis"),
		difficulty: newSelector(difficultyNames(), string(state.Beginner)),

		notes:  newTextArea("Paste your study notes"),
		length: newSelector(backend.SummaryLengths, backend.DefaultSummaryLength),

		quizContent:    newTextArea("Paste the material to be quizzed on"),
		quizType:       newSelector(backend.QuizTypes, backend.DefaultQuizType),
		quizDifficulty: newSelector(backend.QuizDifficulties, backend.DefaultQuizDifficulty),
		quizCount:      newSelector(countOptions(backend.MaxQuizCount), strconv.Itoa(backend.DefaultQuizCount)),

		cardContent: newTextArea("Paste the material to turn into flashcards"),
		cardCount:   newSelector(countOptions(backend.MaxFlashcardCount), strconv.Itoa(backend.DefaultFlashcardCount)),

		output:  viewport.New(0, 0),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	return el
}

// fields returns the form controls for tab in focus order.
func (el *elements) fields(tab state.Tab) []field {
	switch tab {
	case state.TabExplainer:
		return []field{
			{label: "Topic", kind: fieldText, text: &el.topic},
			{label: "Level", kind: fieldSelect, sel: el.difficulty},
		}
	case state.TabSummarizer:
		return []field{
			{label: "Notes", kind: fieldArea, area: &el.notes},
			{label: "Length", kind: fieldSelect, sel: el.length},
		}
	case state.TabQuiz:
		return []field{
			{label: "Content", kind: fieldArea, area: &el.quizContent},
			{label: "Type", kind: fieldSelect, sel: el.quizType},
			{label: "Difficulty", kind: fieldSelect, sel: el.quizDifficulty},
			{label: "Questions", kind: fieldSelect, sel: el.quizCount},
		}
	case state.TabFlashcards:
		return []field{
			{label: "Content", kind: fieldArea, area: &el.cardContent},
			{label: "Cards", kind: fieldSelect, sel: el.cardCount},
		}
	default:
		return nil
	}
}

// blurAll removes focus from every text control.
func (el *elements) blurAll() {
	el.topic.Blur()
	el.notes.Blur()
	el.quizContent.Blur()
	el.cardContent.Blur()
}

func (el *elements) setWidth(width int) {
	if width < minContentWidth {
		width = minContentWidth
	}
	el.topic.Width = width - 12
	for _, area := range []*textarea.Model{&el.notes, &el.quizContent, &el.cardContent} {
		area.SetWidth(width)
	}
}

func newTextInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	// Overlong input is truncated on submit, not blocked while typing.
	ti.CharLimit = 0
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newTextArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(4)
	ta.Cursor.SetMode(cursor.CursorStatic)
	return ta
}

func difficultyNames() []string {
	names := make([]string, 0, len(state.Difficulties))
	for _, d := range state.Difficulties {
		names = append(names, string(d))
	}
	return names
}

func countOptions(max int) []string {
	out := make([]string, 0, max)
	for i := 1; i <= max; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}
