package notify

import (
	"sync"
	"time"
)

const defaultFeedSize = 50

// Feed keeps the notice currently shown to the operator plus a bounded
// history, newest last.
type Feed struct {
	mu      sync.Mutex
	size    int
	seq     uint64
	history []Notification
	current *Notification
	now     func() time.Time
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = defaultFeedSize
	}
	return &Feed{size: size, now: time.Now}
}

func (f *Feed) Notify(message string, severity Severity) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	n := Notification{ID: f.seq, Message: message, Severity: severity, CreatedAt: f.now()}

	f.history = append(f.history, n)
	if len(f.history) > f.size {
		f.history = append(f.history[:0:0], f.history[len(f.history)-f.size:]...)
	}
	f.current = &n
}

// Current returns the visible notice, if any.
func (f *Feed) Current() (Notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == nil {
		return Notification{}, false
	}
	return *f.current, true
}

// Dismiss hides the visible notice. History is kept.
func (f *Feed) Dismiss() {
	f.mu.Lock()
	f.current = nil
	f.mu.Unlock()
}

func (f *Feed) List() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notification(nil), f.history...)
}
