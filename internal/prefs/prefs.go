// Package prefs persists Concepta user preferences and the saved flashcard
// deck in local key/value storage.
package prefs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/five82/concepta/internal/backend"
	"github.com/five82/concepta/internal/storage"
)

// Settings is the explicitly saved preference set.
type Settings struct {
	Theme  string `json:"theme" validate:"required,oneof=dark light"`
	Model  string `json:"model" validate:"required"`
	APIURL string `json:"apiUrl" validate:"required,url"`
}

// Status describes the outcome of a load.
type Status int

const (
	StatusOK Status = iota
	StatusMissing
	StatusMalformed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Result is a typed load outcome. Value is only meaningful when Status is
// StatusOK; Err is set when Status is StatusMalformed.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

// OK reports whether Value holds loaded data.
func (r Result[T]) OK() bool {
	return r.Status == StatusOK
}

// Store reads and writes the theme, settings and flashcards namespaces.
type Store struct {
	kv       storage.KV
	logger   *zap.Logger
	validate *validator.Validate
}

// New wraps kv. A nil logger discards log output.
func New(kv storage.KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		kv:       kv,
		logger:   logger.Named("prefs"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// LoadSettings reads the saved settings. Malformed data is logged and
// reported through the result; it never fails startup.
func (s *Store) LoadSettings() Result[Settings] {
	var settings Settings
	res := load(s, storage.KeySettings, &settings)
	if res.Status != StatusOK {
		return Result[Settings]{Status: res.Status, Err: res.Err}
	}
	if err := s.validate.Struct(settings); err != nil {
		s.logger.Warn("discarding invalid settings", zap.Error(err))
		return Result[Settings]{Status: StatusMalformed, Err: fmt.Errorf("validate settings: %w", err)}
	}
	return Result[Settings]{Value: settings, Status: StatusOK}
}

// SaveSettings validates and writes settings.
func (s *Store) SaveSettings(settings Settings) error {
	settings.Theme = strings.TrimSpace(settings.Theme)
	settings.Model = strings.TrimSpace(settings.Model)
	settings.APIURL = strings.TrimSpace(settings.APIURL)
	if err := s.validate.Struct(settings); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return s.save(storage.KeySettings, settings)
}

// LoadTheme reads the independently stored theme name.
func (s *Store) LoadTheme() Result[string] {
	raw, ok, err := s.kv.Get(storage.KeyTheme)
	if err != nil {
		s.logger.Warn("read theme failed", zap.Error(err))
		return Result[string]{Status: StatusMalformed, Err: fmt.Errorf("read theme: %w", err)}
	}
	if !ok {
		return Result[string]{Status: StatusMissing}
	}
	theme := strings.TrimSpace(raw)
	if err := s.validate.Var(theme, "required,oneof=dark light"); err != nil {
		s.logger.Warn("discarding invalid theme", zap.String("value", raw))
		return Result[string]{Status: StatusMalformed, Err: fmt.Errorf("validate theme %q: %w", raw, err)}
	}
	return Result[string]{Value: theme, Status: StatusOK}
}

// SaveTheme writes the theme name as a plain string.
func (s *Store) SaveTheme(theme string) error {
	if err := s.validate.Var(theme, "required,oneof=dark light"); err != nil {
		return fmt.Errorf("invalid theme %q: %w", theme, err)
	}
	if err := s.kv.Set(storage.KeyTheme, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// LoadFlashcards reads the saved deck.
func (s *Store) LoadFlashcards() Result[[]backend.Flashcard] {
	var cards []backend.Flashcard
	res := load(s, storage.KeyFlashcards, &cards)
	if res.Status != StatusOK {
		return Result[[]backend.Flashcard]{Status: res.Status, Err: res.Err}
	}
	return Result[[]backend.Flashcard]{Value: cards, Status: StatusOK}
}

// SaveFlashcards writes the deck as a JSON array.
func (s *Store) SaveFlashcards(cards []backend.Flashcard) error {
	if cards == nil {
		cards = []backend.Flashcard{}
	}
	return s.save(storage.KeyFlashcards, cards)
}

func load(s *Store, key string, dest any) Result[struct{}] {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.Warn("read failed", zap.String("key", key), zap.Error(err))
		return Result[struct{}]{Status: StatusMalformed, Err: fmt.Errorf("read %s: %w", key, err)}
	}
	if !ok {
		return Result[struct{}]{Status: StatusMissing}
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.Warn("discarding malformed value", zap.String("key", key), zap.Error(err))
		return Result[struct{}]{Status: StatusMalformed, Err: fmt.Errorf("parse %s: %w", key, err)}
	}
	return Result[struct{}]{Status: StatusOK}
}

func (s *Store) save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
