package state

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/five82/concepta/internal/backend"
)

// Tab identifies one of the four task views, in display order.
type Tab int

const (
	TabExplainer Tab = iota
	TabSummarizer
	TabQuiz
	TabFlashcards
)

// Tabs lists every tab by position.
var Tabs = []Tab{TabExplainer, TabSummarizer, TabQuiz, TabFlashcards}

func (t Tab) String() string {
	switch t {
	case TabExplainer:
		return "explainer"
	case TabSummarizer:
		return "summarizer"
	case TabQuiz:
		return "quiz"
	case TabFlashcards:
		return "flashcards"
	default:
		return "unknown"
	}
}

// Difficulty is the explanation level sent with explain requests.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Difficulties lists the levels in selector order.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

// Theme is the colour scheme. Its string form is what gets persisted.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps a stored value to a Theme.
func ParseTheme(raw string) (Theme, bool) {
	switch Theme(raw) {
	case ThemeDark, ThemeLight:
		return Theme(raw), true
	default:
		return "", false
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ConnectionStatus tracks the backend health probe result.
type ConnectionStatus int

const (
	Connecting ConnectionStatus = iota
	Connected
	Disconnected
)

func (c ConnectionStatus) String() string {
	switch c {
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	default:
		return "connecting"
	}
}

// Region names the part of the screen a mutation invalidates.
type Region int

const (
	RegionNone Region = iota
	RegionTabs
	RegionDifficulty
	RegionFlashcards
	RegionTheme
	RegionSettings
	RegionConnection
)

// Task identifies an output region that issues backend requests.
type Task int

const (
	TaskExplain Task = iota
	TaskSummarize
	TaskQuiz
	TaskFlashcards
	taskCount
)

// Defaults seeds a new Store.
type Defaults struct {
	Model      string
	APIURL     string
	BackendURL string
	Theme      Theme
}

// Snapshot is a copy of the application state at one point in time.
type Snapshot struct {
	Tab        Tab
	Difficulty Difficulty
	Theme      Theme
	Flashcards []backend.Flashcard
	CardIndex  int
	Flipped    bool
	Connection ConnectionStatus
	Model      string
	APIURL     string
	BackendURL string
}

// Store owns the application state. All changes go through its methods,
// each of which reports the region to re-render.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	seq  [taskCount]uint64
	rng  *rand.Rand
}

// New returns a Store holding the startup defaults. A nil rng uses the
// package-level source for shuffling.
func New(d Defaults, rng *rand.Rand) *Store {
	theme := d.Theme
	if _, ok := ParseTheme(string(theme)); !ok {
		theme = ThemeDark
	}
	return &Store{
		snap: Snapshot{
			Tab:        TabExplainer,
			Difficulty: Beginner,
			Theme:      theme,
			Connection: Connecting,
			Model:      d.Model,
			APIURL:     d.APIURL,
			BackendURL: d.BackendURL,
		},
		rng: rng,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snap
	snap.Flashcards = slices.Clone(s.snap.Flashcards)
	return snap
}

// CurrentCard returns the card under the cursor.
func (s *Store) CurrentCard() (backend.Flashcard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.snap.Flashcards) == 0 {
		return backend.Flashcard{}, false
	}
	return s.snap.Flashcards[s.snap.CardIndex], true
}

func (s *Store) SetTab(tab Tab) Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Tab = tab
	if tab == TabFlashcards {
		return RegionFlashcards
	}
	return RegionTabs
}

// SetDifficulty only records the level; it is sent with the next explain
// request.
func (s *Store) SetDifficulty(level Difficulty) Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Difficulty = level
	return RegionDifficulty
}

// ReplaceFlashcards installs a copy of cards as the deck.
func (s *Store) ReplaceFlashcards(cards []backend.Flashcard) Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Flashcards = slices.Clone(cards)
	s.snap.CardIndex = 0
	s.snap.Flipped = false
	return RegionFlashcards
}

func (s *Store) ClearFlashcards() Region {
	return s.ReplaceFlashcards(nil)
}

// NavigateFlashcard moves the cursor one card in the direction of dir's
// sign, wrapping at both ends.
func (s *Store) NavigateFlashcard(dir int) Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.snap.Flashcards)
	if n == 0 || dir == 0 {
		return RegionNone
	}
	step := 1
	if dir < 0 {
		step = -1
	}
	s.snap.CardIndex = (s.snap.CardIndex + step + n) % n
	s.snap.Flipped = false
	return RegionFlashcards
}

func (s *Store) FlipFlashcard() Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.snap.Flashcards) == 0 {
		return RegionNone
	}
	s.snap.Flipped = !s.snap.Flipped
	return RegionFlashcards
}

// ShuffleFlashcards permutes the deck uniformly and returns to the first
// card.
func (s *Store) ShuffleFlashcards() Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.snap.Flashcards
	if len(cards) == 0 {
		return RegionNone
	}
	swap := func(i, j int) { cards[i], cards[j] = cards[j], cards[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(cards), swap)
	} else {
		rand.Shuffle(len(cards), swap)
	}
	s.snap.CardIndex = 0
	s.snap.Flipped = false
	return RegionFlashcards
}

// SetTheme records the theme. Persisting it is up to the caller.
func (s *Store) SetTheme(theme Theme) Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Theme = theme
	return RegionTheme
}

// ApplySettings installs persisted or edited settings. Empty values leave
// the current ones in place.
func (s *Store) ApplySettings(theme Theme, model, apiURL string) Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := ParseTheme(string(theme)); ok {
		s.snap.Theme = theme
	}
	if model != "" {
		s.snap.Model = model
	}
	if apiURL != "" {
		s.snap.APIURL = apiURL
	}
	return RegionSettings
}

func (s *Store) SetModel(model string) Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Model = model
	return RegionSettings
}

func (s *Store) SetAPIURL(apiURL string) Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.APIURL = apiURL
	return RegionSettings
}

func (s *Store) SetConnection(status ConnectionStatus) Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Connection = status
	return RegionConnection
}

// BeginRequest issues the next sequence number for task's output region.
func (s *Store) BeginRequest(task Task) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq[task]++
	return s.seq[task]
}

// IsLatest reports whether seq is the most recent request issued for task.
// Responses for older requests are dropped.
func (s *Store) IsLatest(task Task, seq uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.seq[task] == seq
}
