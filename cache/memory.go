package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	preview Preview
	expires time.Time
}

// MemoryPreviewStore is the single-process store used when redis is not
// configured. Expired entries are dropped lazily on access and on Put.
type MemoryPreviewStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryPreviewStore(ttl time.Duration) *MemoryPreviewStore {
	return &MemoryPreviewStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryPreviewStore) Put(_ context.Context, id string, p Preview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, k)
		}
	}
	s.entries[id] = memoryEntry{preview: p, expires: now.Add(s.ttl)}
	return nil
}

func (s *MemoryPreviewStore) Get(_ context.Context, id string) (*Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, errPreviewNotFound
	}
	if s.now().After(e.expires) {
		delete(s.entries, id)
		return nil, errPreviewNotFound
	}
	p := e.preview
	return &p, nil
}

func (s *MemoryPreviewStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
