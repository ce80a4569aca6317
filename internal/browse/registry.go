package browse

import (
	"net/url"
	"sync"
	"time"
)

// Registry hands out the per-session controller: one browser session owns one
// FilterState for as long as it keeps browsing. Idle sessions are pruned.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	build   func(initial url.Values, sessionCookie string) *Controller
	ttl     time.Duration
}

type registryEntry struct {
	controller *Controller
	lastSeen   time.Time
}

// NewRegistry wires a registry around a controller factory. ttl bounds how
// long an untouched session keeps its filter state.
func NewRegistry(build func(initial url.Values, sessionCookie string) *Controller, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Registry{
		entries: map[string]*registryEntry{},
		build:   build,
		ttl:     ttl,
	}
}

// Get returns the session's controller, creating it from the initial
// address-bar values on first sight.
func (r *Registry) Get(sessionID string, initial url.Values, sessionCookie string) *Controller {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked(now)
	if e, ok := r.entries[sessionID]; ok {
		e.lastSeen = now
		return e.controller
	}
	c := r.build(initial, sessionCookie)
	r.entries[sessionID] = &registryEntry{controller: c, lastSeen: now}
	return c
}

// Drop forgets one session's controller.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}

func (r *Registry) pruneLocked(now time.Time) {
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.entries, id)
		}
	}
}
