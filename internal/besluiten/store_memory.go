package besluiten

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is the in-memory besluiten mirror used in tests.
type MemoryStore struct {
	mu        sync.RWMutex
	besluiten map[uuid.UUID]*Besluit
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{besluiten: make(map[uuid.UUID]*Besluit)}
}

func (s *MemoryStore) Put(b *Besluit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.besluiten[b.UUID] = b
}

func (s *MemoryStore) GetBesluit(_ context.Context, id uuid.UUID) (*Besluit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.besluiten[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *MemoryStore) ListByZaakURL(_ context.Context, zaakURL string) ([]*Besluit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Besluit
	for _, b := range s.besluiten {
		if b.Zaak == zaakURL {
			out = append(out, b)
		}
	}
	return out, nil
}
