// Package storage is the local key/value substrate behind the client's
// persisted state.
package storage

import (
	"errors"
	"sync"
)

// Keys used by the client. Each is an independent namespace.
const (
	KeyTheme      = "theme"
	KeySettings   = "settings"
	KeyFlashcards = "flashcards"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage closed")

// KV is a synchronous string key/value store.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Ensure implementations satisfy KV at compile time.
var (
	_ KV = (*Memory)(nil)
	_ KV = (*SQLite)(nil)
)

// Memory is an in-process KV. It backs tests and is the fallback when the
// on-disk database cannot be opened.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool

	// FailWrites, when set, is returned by Set and Delete.
	FailWrites error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.FailWrites != nil {
		return m.FailWrites
	}
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
