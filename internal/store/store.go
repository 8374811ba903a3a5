package store

import (
	"context"
	"sync"
	"time"

	"github.com/dharmasatrya/flightfinder/internal/session"
)

type Store interface {
	Load(ctx context.Context, id string) (session.Snapshot, bool)
	Save(ctx context.Context, id string, snap session.Snapshot) error
	Close() error
}

type memoryEntry struct {
	snap      session.Snapshot
	expiresAt time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore keeps snapshots in process. A zero ttl keeps them forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Load(ctx context.Context, id string) (session.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return session.Snapshot{}, false
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		delete(m.entries, id)
		return session.Snapshot{}, false
	}
	return entry.snap, true
}

func (m *MemoryStore) Save(ctx context.Context, id string, snap session.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{snap: snap}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[id] = entry
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
