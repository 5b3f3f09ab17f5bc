package backend

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPrepareInput(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		limit     int
		want      string
		truncated bool
		err       error
	}{
		{name: "empty", raw: "", limit: TopicLimit, err: ErrEmptyInput},
		{name: "blank", raw: "  \n\t ", limit: TopicLimit, err: ErrEmptyInput},
		{name: "trimmed", raw: "  Photosynthesis \n", limit: TopicLimit, want: "Photosynthesis"},
		{name: "at limit", raw: "abcde", limit: 5, want: "abcde"},
		{name: "over limit", raw: "abcdefgh", limit: 5, want: "abcde", truncated: true},
		{name: "multibyte", raw: "ééééé", limit: 3, want: "ééé", truncated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated, err := PrepareInput(tt.raw, tt.limit)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if got != tt.want || truncated != tt.truncated {
				t.Fatalf("PrepareInput = (%q, %v), want (%q, %v)", got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncate_IsIdempotentAtLimit(t *testing.T) {
	limits := []int{TopicLimit, NotesLimit, QuizContentLimit, FlashcardContentLimit}
	for _, limit := range limits {
		long := strings.Repeat("x", limit*2+7)

		first, truncated := Truncate(long, limit)
		if !truncated {
			t.Fatalf("limit %d: first Truncate reported no truncation", limit)
		}
		if n := utf8.RuneCountInString(first); n != limit {
			t.Fatalf("limit %d: first length = %d, want %d", limit, n, limit)
		}

		second, truncated := Truncate(first, limit)
		if truncated || second != first {
			t.Fatalf("limit %d: second Truncate changed the text", limit)
		}
	}
}

func TestClampCount(t *testing.T) {
	tests := []struct {
		n, def, max, want int
	}{
		{0, DefaultQuizCount, MaxQuizCount, 3},
		{-2, DefaultFlashcardCount, MaxFlashcardCount, 6},
		{4, DefaultQuizCount, MaxQuizCount, 4},
		{9, DefaultQuizCount, MaxQuizCount, 5},
		{20, DefaultFlashcardCount, MaxFlashcardCount, 8},
	}
	for _, tt := range tests {
		if got := ClampCount(tt.n, tt.def, tt.max); got != tt.want {
			t.Fatalf("ClampCount(%d, %d, %d) = %d, want %d", tt.n, tt.def, tt.max, got, tt.want)
		}
	}
}
