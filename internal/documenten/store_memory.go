package documenten

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is the in-memory document mirror used in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	eios map[uuid.UUID]*EnkelvoudigInformatieObject
	oios map[[2]string]bool

	// FailOIO simulates an unreachable documents API during cross-writes.
	FailOIO bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		eios: make(map[uuid.UUID]*EnkelvoudigInformatieObject),
		oios: make(map[[2]string]bool),
	}
}

func (s *MemoryStore) Put(eio *EnkelvoudigInformatieObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eios[eio.UUID] = eio
}

func (s *MemoryStore) GetInformatieobject(_ context.Context, id uuid.UUID) (*EnkelvoudigInformatieObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	eio, ok := s.eios[id]
	if !ok {
		return nil, ErrNotFound
	}
	return eio, nil
}

func (s *MemoryStore) CreateObjectInformatieObject(_ context.Context, informatieobjectURL, zaakURL string) error {
	if s.FailOIO {
		return ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oios[[2]string{informatieobjectURL, zaakURL}] = true
	return nil
}

func (s *MemoryStore) DeleteObjectInformatieObject(_ context.Context, informatieobjectURL, zaakURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.oios, [2]string{informatieobjectURL, zaakURL})
	return nil
}

// HasObjectInformatieObject reports whether the cross-reference exists.
func (s *MemoryStore) HasObjectInformatieObject(informatieobjectURL, zaakURL string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.oios[[2]string{informatieobjectURL, zaakURL}]
}
