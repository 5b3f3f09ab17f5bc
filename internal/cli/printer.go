package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"

	"github.com/five82/concepta/internal/backend"
	"github.com/five82/concepta/internal/logtail"
)

const wrapWidth = 80

// Printer writes human-readable results to w.
type Printer struct {
	w io.Writer

	heading *color.Color
	accent  *color.Color
	muted   *color.Color
	ok      *color.Color
	warn    *color.Color
	bad     *color.Color
}

// NewPrinter returns a Printer writing to w. Colour is used only when
// colorize is true.
func NewPrinter(w io.Writer, colorize bool) *Printer {
	p := &Printer{
		w:       w,
		heading: color.New(color.FgCyan, color.Bold),
		accent:  color.New(color.FgBlue),
		muted:   color.New(color.Faint),
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		bad:     color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.heading, p.accent, p.muted, p.ok, p.warn, p.bad} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Explanation prints the four explanation sections.
func (p *Printer) Explanation(resp backend.ExplainResponse) {
	p.section("Explanation")
	p.paragraph(resp.SimpleExplanation)

	p.section("Steps")
	for i, step := range resp.Steps {
		p.item(fmt.Sprintf("%d. ", i+1), step)
	}

	p.section("Analogy")
	p.paragraph(resp.Analogy)

	p.section("Key Points")
	p.bullets(resp.KeyPoints)
}

// Summary prints the summary and whichever optional sections are present.
func (p *Printer) Summary(resp backend.SummaryResponse) {
	p.section("Summary")
	p.paragraph(resp.Summary)

	if len(resp.KeyPoints) > 0 {
		p.section("Key Points")
		p.bullets(resp.KeyPoints)
	}
	if len(resp.Definitions) > 0 {
		p.section("Definitions")
		for _, d := range resp.Definitions {
			fmt.Fprintln(p.w, p.accent.Sprint(d.Term))
			fmt.Fprintln(p.w, indent(wrap(d.Definition, wrapWidth-2), "  "))
		}
	}
	if len(resp.ExamTips) > 0 {
		p.section("Exam Tips")
		p.bullets(resp.ExamTips)
	}
}

// Quiz prints the questions, with answers when showAnswers is set.
func (p *Printer) Quiz(resp backend.QuizResponse, showAnswers bool) {
	if len(resp.Questions) == 0 {
		fmt.Fprintln(p.w, p.warn.Sprint("No questions generated"))
		return
	}
	fmt.Fprintln(p.w, p.muted.Sprintf("%d questions · %s", len(resp.Questions), resp.Difficulty))

	for i, q := range resp.Questions {
		fmt.Fprintln(p.w)
		p.item(p.heading.Sprintf("%d. ", i+1), q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(p.w, "   %c) %s\n", 'A'+j, opt)
		}
		if q.Type == backend.QuestionTrueFalse && len(q.Options) == 0 {
			fmt.Fprintln(p.w, p.muted.Sprint("   True / False"))
		}
		if showAnswers {
			fmt.Fprintln(p.w, p.ok.Sprint("   Answer: "+q.Answer))
			if q.Explanation != "" {
				fmt.Fprintln(p.w, p.muted.Sprint(indent(wrap(q.Explanation, wrapWidth-3), "   ")))
			}
		}
	}
}

// Flashcards prints every card as a question/answer pair.
func (p *Printer) Flashcards(cards []backend.Flashcard) {
	if len(cards) == 0 {
		fmt.Fprintln(p.w, p.warn.Sprint("No flashcards generated"))
		return
	}
	for i, card := range cards {
		if i > 0 {
			fmt.Fprintln(p.w)
		}
		fmt.Fprintln(p.w, p.muted.Sprintf("Card %d / %d", i+1, len(cards)))
		p.item(p.accent.Sprint("Q: "), card.Question)
		p.item(p.ok.Sprint("A: "), card.Answer)
	}
}

// Health prints the backend and inference engine status.
func (p *Printer) Health(backendURL string, health backend.HealthResponse, healthErr error, apiURL string, inferenceErr error) {
	if healthErr != nil {
		fmt.Fprintf(p.w, "%s backend %s: %v\n", p.bad.Sprint("✗"), backendURL, healthErr)
	} else {
		fmt.Fprintf(p.w, "%s backend %s: %s", p.ok.Sprint("✓"), backendURL, health.Status)
		if health.Model != "" {
			fmt.Fprintf(p.w, " (model %s)", health.Model)
		}
		fmt.Fprintln(p.w)
	}
	if inferenceErr != nil {
		fmt.Fprintf(p.w, "%s inference engine %s: %v\n", p.warn.Sprint("!"), apiURL, inferenceErr)
	} else {
		fmt.Fprintf(p.w, "%s inference engine %s\n", p.ok.Sprint("✓"), apiURL)
	}
}

// Models lists model names, marking current and adding each spec the
// backend reported.
func (p *Printer) Models(models []string, current string, specs map[string]string) {
	for _, name := range models {
		marker := " "
		if name == current {
			marker = p.ok.Sprint("*")
		}
		line := marker + " " + name
		if spec := specs[name]; spec != "" {
			line += "  " + p.muted.Sprint(spec)
		}
		fmt.Fprintln(p.w, line)
	}
}

// Logs prints decoded log entries, colouring warnings and errors.
func (p *Printer) Logs(entries []logtail.Entry) {
	for _, e := range entries {
		line := e.Format()
		switch strings.ToUpper(e.Level) {
		case "ERROR", "DPANIC", "PANIC", "FATAL":
			line = p.bad.Sprint(line)
		case "WARN":
			line = p.warn.Sprint(line)
		case "DEBUG":
			line = p.muted.Sprint(line)
		}
		fmt.Fprintln(p.w, line)
	}
}

func (p *Printer) section(title string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.heading.Sprint(title))
}

func (p *Printer) paragraph(text string) {
	fmt.Fprintln(p.w, wrap(text, wrapWidth))
}

func (p *Printer) bullets(items []string) {
	for _, item := range items {
		p.item("• ", item)
	}
}

// item prints prefix followed by text wrapped with a hanging indent.
func (p *Printer) item(prefix, text string) {
	width := len([]rune(stripPrefix(prefix)))
	wrapped := wrap(text, wrapWidth-width)
	fmt.Fprintln(p.w, prefix+strings.ReplaceAll(wrapped, "\n", "\n"+strings.Repeat(" ", width)))
}

// stripPrefix returns the visible text of a possibly coloured prefix.
func stripPrefix(prefix string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range prefix {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && r == 'm':
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func wrap(text string, width int) string {
	if width < 10 {
		width = 10
	}
	return wordwrap.WrapString(strings.TrimSpace(text), uint(width))
}

func indent(text, prefix string) string {
	return prefix + strings.ReplaceAll(text, "\n", "\n"+prefix)
}
