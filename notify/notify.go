package notify

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultTTL is how long a notification stays visible when no TTL is given.
const DefaultTTL = 5 * time.Second

// Kind classifies a notification for styling
type Kind int

const (
	Info Kind = iota
	Success
	Warning
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// ParseKind maps "success", "error", "warning" and "info" to a Kind.
// Unknown values return Info along with an error.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success":
		return Success, nil
	case "error":
		return Error, nil
	case "warning", "warn":
		return Warning, nil
	case "info", "":
		return Info, nil
	}
	return Info, fmt.Errorf("unknown notification kind %q", s)
}

// Notification is a short-lived message shown to the user
type Notification struct {
	ID        string
	Message   string
	Kind      Kind
	TTL       time.Duration
	CreatedAt time.Time
}

// Expired reports whether the TTL has elapsed at t.
func (n Notification) Expired(t time.Time) bool {
	return !t.Before(n.CreatedAt.Add(n.TTL))
}

// Notifier is the sink for user-facing status messages.
type Notifier interface {
	// Notify enqueues a message and returns its id. A ttl <= 0 uses the default.
	Notify(message string, kind Kind, ttl time.Duration) string
	// Dismiss removes a message. Unknown ids are ignored.
	Dismiss(id string)
}

type discard struct{}

func (discard) Notify(string, Kind, time.Duration) string { return "" }
func (discard) Dismiss(string)                            {}

// Discard drops every notification.
var Discard Notifier = discard{}

type entry struct {
	n     Notification
	timer *time.Timer
}

// Queue holds the currently visible notifications and expires them on their own timers.
// A nil *Queue is a valid Notifier that does nothing.
type Queue struct {
	mu         sync.Mutex
	items      []*entry
	changes    chan struct{}
	closed     bool
	defaultTTL time.Duration
	maxVisible int
	now        func() time.Time
	logger     *log.Logger
}

// Option configures a Queue
type Option func(*Queue)

// WithDefaultTTL overrides DefaultTTL.
func WithDefaultTTL(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.defaultTTL = d
		}
	}
}

// WithMaxVisible bounds the stack; the oldest notification is dropped first. Zero means unbounded.
func WithMaxVisible(n int) Option {
	return func(q *Queue) { q.maxVisible = n }
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// WithLogger mirrors every notification to l.
func WithLogger(l *log.Logger) Option {
	return func(q *Queue) { q.logger = l }
}

// New creates an empty Queue
func New(opts ...Option) *Queue {
	q := &Queue{
		changes:    make(chan struct{}, 1),
		defaultTTL: DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// SetLogger swaps the mirror logger. Passing nil stops mirroring.
func (q *Queue) SetLogger(l *log.Logger) {
	if q == nil {
		return
	}
	q.mu.Lock()
	q.logger = l
	q.mu.Unlock()
}

// Notify implements Notifier.
func (q *Queue) Notify(message string, kind Kind, ttl time.Duration) string {
	if q == nil {
		return ""
	}
	if ttl <= 0 {
		ttl = q.defaultTTL
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ""
	}
	id := uuid.New().String()
	e := &entry{n: Notification{
		ID:        id,
		Message:   message,
		Kind:      kind,
		TTL:       ttl,
		CreatedAt: q.now(),
	}}
	q.items = append(q.items, e)
	e.timer = time.AfterFunc(ttl, func() { q.Dismiss(id) })

	for q.maxVisible > 0 && len(q.items) > q.maxVisible {
		q.items[0].timer.Stop()
		q.items = q.items[1:]
	}
	logger := q.logger
	q.signal()
	q.mu.Unlock()

	mirror(logger, e.n)
	return id
}

// Dismiss implements Notifier. Timer expiry and explicit dismissal both land here,
// whichever runs second finds nothing to remove.
func (q *Queue) Dismiss(id string) {
	if q == nil {
		return
	}
	q.mu.Lock()
	removed := false
	for i, e := range q.items {
		if e.n.ID == id {
			e.timer.Stop()
			q.items = append(q.items[:i], q.items[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		q.signal()
	}
	q.mu.Unlock()
}

// DismissNewest removes the most recently added notification, if any.
func (q *Queue) DismissNewest() {
	if q == nil {
		return
	}
	q.mu.Lock()
	var id string
	if n := len(q.items); n > 0 {
		id = q.items[n-1].n.ID
	}
	q.mu.Unlock()
	if id != "" {
		q.Dismiss(id)
	}
}

// Visible returns a copy of the visible notifications, oldest first.
func (q *Queue) Visible() []Notification {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, 0, len(q.items))
	for _, e := range q.items {
		out = append(out, e.n)
	}
	return out
}

// Len returns the number of visible notifications
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Changes delivers a value after the visible set changed. Signals coalesce,
// so a reader should re-read Visible rather than count signals.
func (q *Queue) Changes() <-chan struct{} {
	if q == nil {
		return nil
	}
	return q.changes
}

// Close stops every pending timer, drops all notifications and closes the
// Changes channel. Later calls to Notify are ignored.
func (q *Queue) Close() {
	if q == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	for _, e := range q.items {
		e.timer.Stop()
	}
	q.items = nil
	q.closed = true
	close(q.changes)
}

// signal must be called with q.mu held.
func (q *Queue) signal() {
	if q.closed {
		return
	}
	select {
	case q.changes <- struct{}{}:
	default:
	}
}

func mirror(l *log.Logger, n Notification) {
	if l == nil {
		return
	}
	switch n.Kind {
	case Success:
		l.Info("✓", "msg", n.Message)
	case Warning:
		l.Warn(n.Message)
	case Error:
		l.Error(n.Message)
	default:
		l.Info(n.Message)
	}
}
