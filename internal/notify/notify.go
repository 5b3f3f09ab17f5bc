package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// DefaultDuration is how long a notification stays up when no duration is
// given.
const DefaultDuration = 4 * time.Second

// Notification is one transient message.
type Notification struct {
	ID        string
	Message   string
	Kind      Kind
	Duration  time.Duration
	CreatedAt time.Time
}

// Center keeps the live notifications in insertion order. Each one has
// its own lifetime and leaves only when it expires or is dismissed.
type Center struct {
	mu    sync.Mutex
	items []Notification
	now   func() time.Time
	newID func() string
}

// Option configures a Center.
type Option func(*Center)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// NewCenter returns an empty Center.
func NewCenter(opts ...Option) *Center {
	c := &Center{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify adds a notification and returns it. A non-positive duration uses
// DefaultDuration.
func (c *Center) Notify(message string, kind Kind, duration time.Duration) Notification {
	if duration <= 0 {
		duration = DefaultDuration
	}
	n := Notification{
		ID:        c.newID(),
		Message:   message,
		Kind:      kind,
		Duration:  duration,
		CreatedAt: c.now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(c.items, n)
	return n
}

// Dismiss removes the notification with id. It reports whether one was
// removed.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.items, func(n Notification) bool { return n.ID == id })
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

// Expire is Dismiss for timer-driven removal. Expiring a notification that
// was already dismissed does nothing.
func (c *Center) Expire(id string) bool {
	return c.Dismiss(id)
}

// Active returns the live notifications, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.items)
}

func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}
