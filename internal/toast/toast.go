// Package toast holds the process-wide queue of short-lived user notices.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// DefaultTTL is how long a notice stays visible unless dismissed early.
const DefaultTTL = 3 * time.Second

type Toast struct {
	ID        string
	Message   string
	Kind      Kind
	ExpiresAt time.Time
}

// Notifier is an append-only queue with timed auto-expiry. It starts empty
// and holds nothing across process restarts.
type Notifier struct {
	mu     sync.Mutex
	ttl    time.Duration
	toasts []Toast
	now    func() time.Time
}

// NewNotifier creates a notifier with the given visibility duration; zero
// means DefaultTTL.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl, now: time.Now}
}

// SetClock overrides the time source for tests.
func (n *Notifier) SetClock(now func() time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.now = now
}

// Add appends a notice and returns its id. The notice expires on its own
// after the notifier's TTL, independent of other notices.
func (n *Notifier) Add(message string, kind Kind) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := uuid.NewString()
	n.toasts = append(n.toasts, Toast{
		ID:        id,
		Message:   message,
		Kind:      kind,
		ExpiresAt: n.now().Add(n.ttl),
	})
	return id
}

// Dismiss removes a notice before its expiry. Unknown ids are ignored.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	kept := n.toasts[:0]
	for _, t := range n.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	n.toasts = kept
}

// Active returns the notices still within their lifetime, oldest first.
// Expired entries are pruned as a side effect.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.now()
	kept := n.toasts[:0]
	for _, t := range n.toasts {
		if t.ExpiresAt.After(now) {
			kept = append(kept, t)
		}
	}
	n.toasts = kept
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}
