package app

import (
	"sync"
	"time"
)

const (
	// DefaultNotificationCapacity bounds the pending notification queue.
	DefaultNotificationCapacity = 16
	// AutoHideAfter is how long a notification stays pending before Expire drops it.
	AutoHideAfter = 6 * time.Second
)

// Notification is one message waiting to be shown to the user.
type Notification struct {
	Key       uint64
	Message   string
	CreatedAt time.Time
}

// Notifier is a bounded FIFO of pending notifications. When full, the oldest
// notification is dropped to make room.
type Notifier struct {
	mu       sync.Mutex
	capacity int
	nextKey  uint64
	pending  []Notification
	now      func() time.Time
}

// NewNotifier creates a queue holding at most capacity notifications.
func NewNotifier(capacity int) *Notifier {
	if capacity <= 0 {
		capacity = DefaultNotificationCapacity
	}
	return &Notifier{capacity: capacity, now: time.Now}
}

// Push enqueues message and returns the stored notification.
func (n *Notifier) Push(message string) Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextKey++
	note := Notification{Key: n.nextKey, Message: message, CreatedAt: n.now()}
	if len(n.pending) == n.capacity {
		n.pending = n.pending[1:]
	}
	n.pending = append(n.pending, note)
	return note
}

// Pending returns the queued notifications, oldest first.
func (n *Notifier) Pending() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.pending...)
}

// Dismiss removes the notification with key and reports whether it was pending.
func (n *Notifier) Dismiss(key uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, note := range n.pending {
		if note.Key == key {
			n.pending = append(n.pending[:i], n.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Expire dismisses every notification older than AutoHideAfter at now and
// returns how many were removed.
func (n *Notifier) Expire(now time.Time) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	kept := n.pending[:0]
	for _, note := range n.pending {
		if now.Sub(note.CreatedAt) < AutoHideAfter {
			kept = append(kept, note)
		}
	}
	removed := len(n.pending) - len(kept)
	n.pending = kept
	return removed
}

// Drain returns and dismisses every pending notification.
func (n *Notifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}
