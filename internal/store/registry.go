package store

import (
	"context"
	"sync"
	"time"

	"github.com/dharmasatrya/flightfinder/internal/session"
)

type liveSession struct {
	session  *session.Session
	lastSeen time.Time
}

// Registry hands out the live session for a browser session id. Sessions not
// yet seen by this process are rebuilt from the Store. Sessions idle for
// longer than ttl are dropped from memory; a search in flight is never
// dropped.
type Registry struct {
	store     Store
	ttl       time.Duration
	mu        sync.Mutex
	live      map[string]*liveSession
	lastSweep time.Time
	now       func() time.Time
}

// NewRegistry keeps live sessions for ttl after their last access. A zero
// ttl keeps them for the life of the process.
func NewRegistry(s Store, ttl time.Duration) *Registry {
	return &Registry{
		store: s,
		ttl:   ttl,
		live:  make(map[string]*liveSession),
		now:   time.Now,
	}
}

func (r *Registry) Get(ctx context.Context, id string) *session.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	if l, ok := r.live[id]; ok {
		l.lastSeen = now
		return l.session
	}

	s := session.New()
	if snap, ok := r.store.Load(ctx, id); ok {
		s.Restore(snap)
	}
	r.live[id] = &liveSession{session: s, lastSeen: now}
	return s
}

// sweep runs at most once per ttl so Get stays cheap.
func (r *Registry) sweep(now time.Time) {
	if r.ttl <= 0 || now.Sub(r.lastSweep) < r.ttl {
		return
	}
	r.lastSweep = now

	for id, l := range r.live {
		if now.Sub(l.lastSeen) >= r.ttl && l.session.State() != session.Searching {
			delete(r.live, id)
		}
	}
}

// Len reports how many sessions are held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

func (r *Registry) Save(ctx context.Context, id string, s *session.Session) error {
	return r.store.Save(ctx, id, s.Snapshot())
}

func (r *Registry) Close() error {
	return r.store.Close()
}
