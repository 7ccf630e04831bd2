package screen

import (
	"sync"
	"time"
)

type session struct {
	weather  *Weather
	lastSeen time.Time
}

// Registry keeps one weather screen per browser session so a new query from
// the same browser supersedes the one it replaced.
type Registry struct {
	mu        sync.Mutex
	newScreen func() *Weather
	ttl       time.Duration
	sessions  map[string]*session
}

func NewRegistry(newScreen func() *Weather, ttl time.Duration) *Registry {
	return &Registry{
		newScreen: newScreen,
		ttl:       ttl,
		sessions:  make(map[string]*session),
	}
}

// Get returns the screen for id, creating it on first use.
func (r *Registry) Get(id string, now time.Time) *Weather {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = &session{weather: r.newScreen()}
		r.sessions[id] = s
	}
	s.lastSeen = now
	return s.weather
}

// Prune drops sessions idle for longer than the TTL and returns how many went.
func (r *Registry) Prune(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
