package autorisaties

import (
	"context"
	"sync"
)

// MemoryStore holds applications in memory for tests.
type MemoryStore struct {
	mu   sync.RWMutex
	apps []*Applicatie
}

func NewMemoryStore(apps ...*Applicatie) *MemoryStore {
	return &MemoryStore{apps: apps}
}

func (s *MemoryStore) Put(app *Applicatie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps = append(s.apps, app)
}

func (s *MemoryStore) GetByClientID(_ context.Context, clientID string) (*Applicatie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, app := range s.apps {
		for _, id := range app.ClientIDs {
			if id == clientID {
				return app, nil
			}
		}
	}
	return nil, ErrNotFound
}
