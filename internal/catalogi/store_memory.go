package catalogi

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory catalog used by tests and by installations
// that mirror a remote catalog on demand.
type MemoryStore struct {
	mu                    sync.RWMutex
	zaaktypen             map[uuid.UUID]*Zaaktype
	statustypen           map[uuid.UUID]*Statustype
	resultaattypen        map[uuid.UUID]*Resultaattype
	eigenschappen         map[uuid.UUID]*Eigenschap
	roltypen              map[uuid.UUID]*Roltype
	zaakobjecttypen       map[uuid.UUID]*Zaakobjecttype
	informatieobjecttypen map[uuid.UUID]*Informatieobjecttype
	ztIotRelations        map[string]map[string]bool
}

// NewMemoryStore constructs an empty in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		zaaktypen:             make(map[uuid.UUID]*Zaaktype),
		statustypen:           make(map[uuid.UUID]*Statustype),
		resultaattypen:        make(map[uuid.UUID]*Resultaattype),
		eigenschappen:         make(map[uuid.UUID]*Eigenschap),
		roltypen:              make(map[uuid.UUID]*Roltype),
		zaakobjecttypen:       make(map[uuid.UUID]*Zaakobjecttype),
		informatieobjecttypen: make(map[uuid.UUID]*Informatieobjecttype),
		ztIotRelations:        make(map[string]map[string]bool),
	}
}

func (s *MemoryStore) PutZaaktype(zt *Zaaktype) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zaaktypen[zt.UUID] = zt
}

func (s *MemoryStore) PutStatustype(st *Statustype) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statustypen[st.UUID] = st
}

func (s *MemoryStore) PutResultaattype(rt *Resultaattype) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resultaattypen[rt.UUID] = rt
}

func (s *MemoryStore) PutEigenschap(e *Eigenschap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eigenschappen[e.UUID] = e
}

func (s *MemoryStore) PutRoltype(rt *Roltype) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roltypen[rt.UUID] = rt
}

func (s *MemoryStore) PutZaakobjecttype(zot *Zaakobjecttype) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zaakobjecttypen[zot.UUID] = zot
}

func (s *MemoryStore) PutInformatieobjecttype(iot *Informatieobjecttype) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.informatieobjecttypen[iot.UUID] = iot
}

// RelateZaaktypeInformatieobjecttype declares the zaaktype/iot relation.
func (s *MemoryStore) RelateZaaktypeInformatieobjecttype(zaaktypeURL, iotURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ztIotRelations[zaaktypeURL] == nil {
		s.ztIotRelations[zaaktypeURL] = make(map[string]bool)
	}
	s.ztIotRelations[zaaktypeURL][iotURL] = true
}

func (s *MemoryStore) GetZaaktype(_ context.Context, id uuid.UUID) (*Zaaktype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	zt, ok := s.zaaktypen[id]
	if !ok {
		return nil, ErrNotFound
	}
	return zt, nil
}

func (s *MemoryStore) GetStatustype(_ context.Context, id uuid.UUID) (*Statustype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.statustypen[id]
	if !ok {
		return nil, ErrNotFound
	}
	return st, nil
}

func (s *MemoryStore) GetResultaattype(_ context.Context, id uuid.UUID) (*Resultaattype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rt, ok := s.resultaattypen[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rt, nil
}

func (s *MemoryStore) GetEigenschap(_ context.Context, id uuid.UUID) (*Eigenschap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.eigenschappen[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *MemoryStore) GetRoltype(_ context.Context, id uuid.UUID) (*Roltype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rt, ok := s.roltypen[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rt, nil
}

func (s *MemoryStore) GetZaakobjecttype(_ context.Context, id uuid.UUID) (*Zaakobjecttype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	zot, ok := s.zaakobjecttypen[id]
	if !ok {
		return nil, ErrNotFound
	}
	return zot, nil
}

func (s *MemoryStore) GetInformatieobjecttype(_ context.Context, id uuid.UUID) (*Informatieobjecttype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	iot, ok := s.informatieobjecttypen[id]
	if !ok {
		return nil, ErrNotFound
	}
	return iot, nil
}

func (s *MemoryStore) ZaaktypeInformatieobjecttypeExists(_ context.Context, zaaktypeURL, iotURL string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ztIotRelations[zaaktypeURL][iotURL], nil
}

func (s *MemoryStore) ListZaaktypenByCatalogus(_ context.Context, catalogusURL string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var urls []string
	for _, zt := range s.zaaktypen {
		if zt.Catalogus == catalogusURL {
			urls = append(urls, zt.URL)
		}
	}
	return urls, nil
}
