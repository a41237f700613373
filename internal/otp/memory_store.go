package otp

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used in tests and single-node dev
// setups where Redis is not available.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryItem
	limits  map[string]time.Time

	// Now is overridable in tests.
	Now func() time.Time
}

type memoryItem struct {
	entry   Entry
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryItem),
		limits:  make(map[string]time.Time),
		Now:     time.Now,
	}
}

func (s *MemoryStore) GetEntry(_ context.Context, phone string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.entries[phone]
	if !ok || s.Now().After(item.expires) {
		delete(s.entries, phone)
		return nil, nil
	}
	e := item.entry
	return &e, nil
}

func (s *MemoryStore) SetEntry(_ context.Context, phone string, e *Entry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[phone] = memoryItem{entry: *e, expires: s.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) DeleteEntry(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, phone)
	return nil
}

func (s *MemoryStore) RateLimited(_ context.Context, phone string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.limits[phone]
	if !ok || s.Now().After(until) {
		delete(s.limits, phone)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) MarkRateLimit(_ context.Context, phone string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits[phone] = s.Now().Add(ttl)
	return nil
}
