package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryWindow struct {
	count    int64
	expireAt time.Time
}

// MemoryStore is a process-local Store. Counts are approximate across
// replicas, so use it only for single-instance deployments and tests.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	now     func() time.Time
}

// NewMemoryStore builds an in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*memoryWindow),
		now:     time.Now,
	}
}

// Incr implements Store.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if window <= 0 {
		window = time.Second
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.windows[key]
	if !ok || !entry.expireAt.After(now) {
		entry = &memoryWindow{expireAt: now.Add(window)}
		s.windows[key] = entry
	}
	entry.count++

	if len(s.windows) > 1024 {
		s.sweepLocked(now)
	}

	return entry.count, entry.expireAt.Sub(now), nil
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for key, entry := range s.windows {
		if !entry.expireAt.After(now) {
			delete(s.windows, key)
		}
	}
}
