package runtime

import (
	"sync"

	"chirptalks/contract"
)

// Registry tracks the sinks of currently connected live sessions. It holds
// no persistent subscription state: once a session unsubscribes, anything
// undelivered is gone and the client resynchronizes by re-fetching the feed.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.EventSink
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]contract.EventSink)}
}

// Sinks returns a snapshot of the connected sinks so broadcasting never
// holds the lock while delivering.
func (r *Registry) Sinks() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sinks := make([]contract.EventSink, 0, len(r.sessions))
	for _, sink := range r.sessions {
		sinks = append(sinks, sink)
	}
	return sinks
}

func (r *Registry) Subscribe(sessionID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = sink
}

func (r *Registry) Unsubscribe(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Len reports the number of connected sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
