package mutation

import (
	"sync"

	"github.com/rs/zerolog"
)

// Level of a notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient message for the user
type Notification struct {
	Level   Level
	Title   string
	Message string
}

// Notifier surfaces notifications
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to a logger
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements Notifier
func (l LogNotifier) Notify(n Notification) {
	ev := l.Logger.Info()
	if n.Level == LevelError {
		ev = l.Logger.Warn()
	}
	ev.Str("level", string(n.Level)).Str("title", n.Title).Msg(n.Message)
}

// Recorder keeps every notification in memory
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify implements Notifier
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications, oldest first
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Last returns the most recent notification
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Drain returns the recorded notifications and forgets them
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = nil
	return out
}

// Multi fans a notification out to several notifiers
type Multi []Notifier

// Notify implements Notifier
func (m Multi) Notify(n Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(n)
		}
	}
}
