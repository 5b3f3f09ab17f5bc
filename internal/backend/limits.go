package backend

import (
	"errors"
	"strings"
)

// Per-task input limits, in characters. These are product choices sized for
// small local models, not a measured context window.
const (
	TopicLimit            = 500
	NotesLimit            = 2000
	QuizContentLimit      = 1000
	FlashcardContentLimit = 800
)

// Request defaults and selector domains.
const (
	DefaultModel          = "phi3:mini"
	DefaultSummaryLength  = "medium"
	DefaultQuizType       = "mixed"
	DefaultQuizDifficulty = "medium"
	DefaultQuizCount      = 3
	MaxQuizCount          = 5
	DefaultFlashcardCount = 6
	MaxFlashcardCount     = 8
)

var (
	// SummaryLengths lists the accepted summary lengths.
	SummaryLengths = []string{"short", "medium", "long"}
	// QuizTypes lists the accepted quiz question mixes.
	QuizTypes = []string{"mixed", QuestionMCQ, QuestionTrueFalse, QuestionShort}
	// QuizDifficulties lists the accepted quiz difficulties.
	QuizDifficulties = []string{"easy", "medium", "hard"}
	// FallbackModels is offered when the backend cannot list models.
	FallbackModels = []string{"phi3:mini", "llama3.2:3b", "mistral:7b", "llama3.1:8b"}
)

// ErrEmptyInput is returned by PrepareInput for blank text.
var ErrEmptyInput = errors.New("input is empty")

// PrepareInput trims raw and cuts it to at most limit characters. It reports
// whether anything was cut. Blank input returns ErrEmptyInput.
func PrepareInput(raw string, limit int) (string, bool, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false, ErrEmptyInput
	}
	cut, truncated := Truncate(text, limit)
	return cut, truncated, nil
}

// Truncate returns s cut to exactly limit runes when longer. Applying it
// again to its own output is a no-op.
func Truncate(s string, limit int) (string, bool) {
	if limit <= 0 {
		return s, false
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s, false
	}
	return string(runes[:limit]), true
}

// ClampCount bounds n to [1, max], substituting def for non-positive values.
func ClampCount(n, def, max int) int {
	if n <= 0 {
		n = def
	}
	if n > max {
		n = max
	}
	return n
}
