// Package session tracks the games running over SSH so the host can list
// them and notify every player before shutting down.
package session

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// EventType identifies the type of session event.
type EventType int

const (
	EventServerShutdown EventType = iota // Host is going down; show the notice and leave
)

// Event is sent from the host to a running game.
type Event struct {
	Type EventType
}

// eventBuffer is the capacity of each session's event channel.
const eventBuffer = 4

// Handle represents one registered session.
type Handle struct {
	ID       uuid.UUID
	Username string
	Started  time.Time
	Events   chan Event // Closed on Unregister
}

// Info is a read-only view of a session.
type Info struct {
	ID       uuid.UUID
	Username string
	Started  time.Time
}

// Registry holds the live sessions. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Handle
	logger   *log.Logger
	now      func() time.Time
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		sessions: make(map[uuid.UUID]*Handle),
		logger:   logger,
		now:      time.Now,
	}
}

// Register adds a session for username and returns its handle.
func (r *Registry) Register(username string) *Handle {
	h := &Handle{
		ID:       uuid.New(),
		Username: username,
		Started:  r.now(),
		Events:   make(chan Event, eventBuffer),
	}

	r.mu.Lock()
	r.sessions[h.ID] = h
	n := len(r.sessions)
	r.mu.Unlock()

	r.logger.Info("session registered", "session", h.ID, "user", username, "active", n)
	return h
}

// Unregister removes a session and closes its event channel.
// Unknown or already removed IDs are ignored.
func (r *Registry) Unregister(id uuid.UUID) {
	r.mu.Lock()
	h, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
		close(h.Events)
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if ok {
		r.logger.Info("session unregistered", "session", id, "user", h.Username,
			"duration", r.now().Sub(h.Started).Round(time.Second), "active", n)
	}
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sessions lists the live sessions, oldest first.
func (r *Registry) Sessions() []Info {
	r.mu.RLock()
	out := make([]Info, 0, len(r.sessions))
	for _, h := range r.sessions {
		out = append(out, Info{ID: h.ID, Username: h.Username, Started: h.Started})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Started.Equal(out[j].Started) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].Started.Before(out[j].Started)
	})
	return out
}

// Broadcast sends ev to every session without blocking. Sessions whose
// buffer is full miss the event. It returns the number of sessions reached.
func (r *Registry) Broadcast(ev Event) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sent := 0
	for _, h := range r.sessions {
		select {
		case h.Events <- ev:
			sent++
		default:
		}
	}
	return sent
}

// Shutdown notifies every session that the host is going down and waits
// until they have all unregistered or the timeout elapses. It returns the
// number of sessions still registered.
func (r *Registry) Shutdown(timeout time.Duration) int {
	notified := r.Broadcast(Event{Type: EventServerShutdown})
	r.logger.Info("shutdown notice sent", "sessions", notified)

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		remaining := r.Count()
		if remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			r.logger.Warn("shutdown grace elapsed", "remaining", remaining)
			return remaining
		case <-ticker.C:
		}
	}
}
