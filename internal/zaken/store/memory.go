package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"zaakregister/internal/zaken/models"
)

// MemoryStore is the in-memory implementation used by tests. InTx serialises
// writers but does not roll back; tests that need rollback semantics run
// against PostgreSQL.
type MemoryStore struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	countCap int

	identificaties  map[string]map[string]bool // bronorganisatie -> identificatie -> attached
	zaken           map[uuid.UUID]*models.Zaak
	statussen       map[uuid.UUID]*models.Status
	resultaten      map[uuid.UUID]*models.Resultaat
	rollen          map[uuid.UUID]*models.Rol
	eigenschappen   map[uuid.UUID]*models.ZaakEigenschap
	zaakobjecten    map[uuid.UUID]*models.ZaakObject
	zios            map[uuid.UUID]*models.ZaakInformatieObject
	besluiten       map[uuid.UUID]*models.ZaakBesluit
	contactmomenten map[uuid.UUID]*models.ZaakContactMoment
	verzoeken       map[uuid.UUID]*models.ZaakVerzoek
	klantcontacten  map[uuid.UUID]*models.KlantContact

	order map[uuid.UUID]int
	seq   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		identificaties:  make(map[string]map[string]bool),
		zaken:           make(map[uuid.UUID]*models.Zaak),
		statussen:       make(map[uuid.UUID]*models.Status),
		resultaten:      make(map[uuid.UUID]*models.Resultaat),
		rollen:          make(map[uuid.UUID]*models.Rol),
		eigenschappen:   make(map[uuid.UUID]*models.ZaakEigenschap),
		zaakobjecten:    make(map[uuid.UUID]*models.ZaakObject),
		zios:            make(map[uuid.UUID]*models.ZaakInformatieObject),
		besluiten:       make(map[uuid.UUID]*models.ZaakBesluit),
		contactmomenten: make(map[uuid.UUID]*models.ZaakContactMoment),
		verzoeken:       make(map[uuid.UUID]*models.ZaakVerzoek),
		klantcontacten:  make(map[uuid.UUID]*models.KlantContact),
		order:           make(map[uuid.UUID]int),
	}
}

// SetCountCap enables fuzzy counts above the cap, mirroring the capped
// count query of the PostgreSQL store.
func (s *MemoryStore) SetCountCap(cap int) { s.countCap = cap }

func (s *MemoryStore) track(id uuid.UUID) {
	s.seq++
	s.order[id] = s.seq
}

func (s *MemoryStore) InTx(_ context.Context, fn func(Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

// --- identificaties ---

func (s *MemoryStore) GenerateIdentificatie(_ context.Context, bronorganisatie string, year int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := fmt.Sprintf("ZAAK-%d-", year)
	max := 0
	for ident := range s.identificaties[bronorganisatie] {
		rest, ok := strings.CutPrefix(ident, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	ident := fmt.Sprintf("%s%010d", prefix, max+1)
	if s.identificaties[bronorganisatie] == nil {
		s.identificaties[bronorganisatie] = make(map[string]bool)
	}
	s.identificaties[bronorganisatie][ident] = false
	return ident, nil
}

func (s *MemoryStore) ReservationAvailable(_ context.Context, bronorganisatie, identificatie string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attached, ok := s.identificaties[bronorganisatie][identificatie]
	return ok && !attached, nil
}

func (s *MemoryStore) IdentificatieExists(_ context.Context, bronorganisatie, identificatie string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.identificaties[bronorganisatie][identificatie]
	return ok, nil
}

// --- zaken ---

func (s *MemoryStore) CreateZaak(_ context.Context, zaak *models.Zaak) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	org := zaak.Identificatie.Bronorganisatie
	ident := zaak.Identificatie.Identificatie
	if attached, ok := s.identificaties[org][ident]; ok && attached {
		return ErrDuplicate
	}
	if s.identificaties[org] == nil {
		s.identificaties[org] = make(map[string]bool)
	}
	s.identificaties[org][ident] = true
	cp := *zaak
	s.zaken[zaak.UUID] = &cp
	s.track(zaak.UUID)
	return nil
}

func (s *MemoryStore) GetZaak(_ context.Context, id uuid.UUID) (*models.Zaak, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	zaak, ok := s.zaken[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *zaak
	return &cp, nil
}

func (s *MemoryStore) UpdateZaak(_ context.Context, zaak *models.Zaak) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zaken[zaak.UUID]; !ok {
		return ErrNotFound
	}
	cp := *zaak
	s.zaken[zaak.UUID] = &cp
	return nil
}

func (s *MemoryStore) DeleteZaak(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	zaak, ok := s.zaken[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.identificaties[zaak.Identificatie.Bronorganisatie], zaak.Identificatie.Identificatie)
	delete(s.zaken, id)
	for sid, st := range s.statussen {
		if st.Zaak == id {
			delete(s.statussen, sid)
		}
	}
	for rid, r := range s.resultaten {
		if r.Zaak == id {
			delete(s.resultaten, rid)
		}
	}
	for rid, r := range s.rollen {
		if r.Zaak == id {
			delete(s.rollen, rid)
		}
	}
	for eid, e := range s.eigenschappen {
		if e.Zaak == id {
			delete(s.eigenschappen, eid)
		}
	}
	for oid, o := range s.zaakobjecten {
		if o.Zaak == id {
			delete(s.zaakobjecten, oid)
		}
	}
	for zid, z := range s.zios {
		if z.Zaak == id {
			delete(s.zios, zid)
		}
	}
	for bid, b := range s.besluiten {
		if b.Zaak == id {
			delete(s.besluiten, bid)
		}
	}
	for cid, c := range s.contactmomenten {
		if c.Zaak == id {
			delete(s.contactmomenten, cid)
		}
	}
	for vid, v := range s.verzoeken {
		if v.Zaak == id {
			delete(s.verzoeken, vid)
		}
	}
	for kid, k := range s.klantcontacten {
		if k.Zaak == id {
			delete(s.klantcontacten, kid)
		}
	}
	return nil
}

func withinPolygon(zaak *models.Zaak, polygon orb.Polygon) bool {
	if zaak.Zaakgeometrie == nil {
		return false
	}
	geom := zaak.Zaakgeometrie.Geometry()
	if point, ok := geom.(orb.Point); ok {
		return planar.PolygonContains(polygon, point)
	}
	return planar.PolygonContains(polygon, geom.Bound().Center())
}

func (s *MemoryStore) matchZaak(zaak *models.Zaak, f ZaakFilter) bool {
	if !f.Grants.Allowed(zaak.Zaaktype, zaak.Vertrouwelijkheidaanduiding) {
		return false
	}
	if f.Bronorganisatie != "" && zaak.Identificatie.Bronorganisatie != f.Bronorganisatie {
		return false
	}
	if f.Identificatie != "" && zaak.Identificatie.Identificatie != f.Identificatie {
		return false
	}
	if f.Zaaktype != "" && zaak.Zaaktype != f.Zaaktype {
		return false
	}
	if f.Hoofdzaak != "" && zaak.Hoofdzaak != f.Hoofdzaak {
		return false
	}
	if f.Archiefnominatie != "" && string(zaak.Archiefnominatie) != f.Archiefnominatie {
		return false
	}
	if f.Archiefstatus != "" && string(zaak.Archiefstatus) != f.Archiefstatus {
		return false
	}
	if f.StartdatumFrom != nil && zaak.Startdatum.Before(*f.StartdatumFrom) {
		return false
	}
	if f.StartdatumUntil != nil && f.StartdatumUntil.Before(zaak.Startdatum) {
		return false
	}
	if f.EinddatumSet != nil && (zaak.Einddatum != nil) != *f.EinddatumSet {
		return false
	}
	if len(f.Within) > 0 && !withinPolygon(zaak, f.Within) {
		return false
	}
	return true
}

func paginate[T any](items []T, page Page, countCap int) ListResult[T] {
	total := len(items)
	count, exact := total, true
	if countCap > 0 && total > countCap {
		count, exact = countCap, false
	}
	start := page.Offset()
	if page.Size <= 0 {
		return ListResult[T]{Items: items, Count: count, CountExact: exact}
	}
	if start > total {
		start = total
	}
	end := start + page.Size
	if end > total {
		end = total
	}
	return ListResult[T]{Items: items[start:end], Count: count, CountExact: exact}
}

func (s *MemoryStore) ListZaken(_ context.Context, f ZaakFilter) (ListResult[*models.Zaak], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Zaak
	for _, zaak := range s.zaken {
		if s.matchZaak(zaak, f) {
			cp := *zaak
			out = append(out, &cp)
		}
	}
	switch f.Ordering {
	case "startdatum":
		sort.Slice(out, func(i, j int) bool { return out[i].Startdatum.Before(out[j].Startdatum) })
	case "-startdatum":
		sort.Slice(out, func(i, j int) bool { return out[j].Startdatum.Before(out[i].Startdatum) })
	case "identificatie":
		sort.Slice(out, func(i, j int) bool {
			return out[i].Identificatie.Identificatie < out[j].Identificatie.Identificatie
		})
	default:
		sort.Slice(out, func(i, j int) bool { return s.order[out[i].UUID] < s.order[out[j].UUID] })
	}
	return paginate(out, f.Page, s.countCap), nil
}

// listChildren filters a child map on the parent case and the grants.
func listChildren[T any](s *MemoryStore, items map[uuid.UUID]*T, zaakOf func(*T) uuid.UUID, idOf func(*T) uuid.UUID, f ChildFilter) ListResult[*T] {
	var out []*T
	for _, item := range items {
		zaakID := zaakOf(item)
		if f.Zaak != nil && zaakID != *f.Zaak {
			continue
		}
		zaak, ok := s.zaken[zaakID]
		if !ok || !f.Grants.Allowed(zaak.Zaaktype, zaak.Vertrouwelijkheidaanduiding) {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return s.order[idOf(out[i])] < s.order[idOf(out[j])] })
	return paginate(out, f.Page, s.countCap)
}

// --- statussen ---

func (s *MemoryStore) CreateStatus(_ context.Context, status *models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.statussen {
		if existing.Zaak == status.Zaak && existing.DatumStatusGezet.Equal(status.DatumStatusGezet) {
			return ErrStatusConflict
		}
	}
	cp := *status
	s.statussen[status.UUID] = &cp
	s.track(status.UUID)
	return nil
}

func (s *MemoryStore) GetStatus(_ context.Context, id uuid.UUID) (*models.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.statussen[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *status
	return &cp, nil
}

func (s *MemoryStore) LatestStatus(_ context.Context, zaak uuid.UUID) (*models.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.Status
	for _, status := range s.statussen {
		if status.Zaak != zaak {
			continue
		}
		if latest == nil || status.DatumStatusGezet.After(latest.DatumStatusGezet) {
			latest = status
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (s *MemoryStore) CountStatussen(_ context.Context, zaak uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, status := range s.statussen {
		if status.Zaak == zaak {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) ListStatussen(_ context.Context, f ChildFilter) (ListResult[*models.Status], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := listChildren(s, s.statussen,
		func(st *models.Status) uuid.UUID { return st.Zaak },
		func(st *models.Status) uuid.UUID { return st.UUID }, f)
	sort.Slice(res.Items, func(i, j int) bool {
		return res.Items[j].DatumStatusGezet.Before(res.Items[i].DatumStatusGezet)
	})
	return res, nil
}

// --- resultaten ---

func (s *MemoryStore) CreateResultaat(_ context.Context, resultaat *models.Resultaat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.resultaten {
		if existing.Zaak == resultaat.Zaak {
			return ErrResultaatExists
		}
	}
	cp := *resultaat
	s.resultaten[resultaat.UUID] = &cp
	s.track(resultaat.UUID)
	return nil
}

func (s *MemoryStore) GetResultaat(_ context.Context, id uuid.UUID) (*models.Resultaat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resultaat, ok := s.resultaten[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *resultaat
	return &cp, nil
}

func (s *MemoryStore) GetResultaatByZaak(_ context.Context, zaak uuid.UUID) (*models.Resultaat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, resultaat := range s.resultaten {
		if resultaat.Zaak == zaak {
			cp := *resultaat
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateResultaat(_ context.Context, resultaat *models.Resultaat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resultaten[resultaat.UUID]; !ok {
		return ErrNotFound
	}
	cp := *resultaat
	s.resultaten[resultaat.UUID] = &cp
	return nil
}

func (s *MemoryStore) DeleteResultaat(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resultaten[id]; !ok {
		return ErrNotFound
	}
	delete(s.resultaten, id)
	return nil
}

func (s *MemoryStore) ListResultaten(_ context.Context, f ChildFilter) (ListResult[*models.Resultaat], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listChildren(s, s.resultaten,
		func(r *models.Resultaat) uuid.UUID { return r.Zaak },
		func(r *models.Resultaat) uuid.UUID { return r.UUID }, f), nil
}

// --- rollen ---

func (s *MemoryStore) CreateRol(_ context.Context, rol *models.Rol) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rol
	s.rollen[rol.UUID] = &cp
	s.track(rol.UUID)
	return nil
}

func (s *MemoryStore) GetRol(_ context.Context, id uuid.UUID) (*models.Rol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rol, ok := s.rollen[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rol
	return &cp, nil
}

func (s *MemoryStore) DeleteRol(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rollen[id]; !ok {
		return ErrNotFound
	}
	delete(s.rollen, id)
	return nil
}

func (s *MemoryStore) ListRollen(_ context.Context, f ChildFilter) (ListResult[*models.Rol], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listChildren(s, s.rollen,
		func(r *models.Rol) uuid.UUID { return r.Zaak },
		func(r *models.Rol) uuid.UUID { return r.UUID }, f), nil
}

// --- zaakeigenschappen ---

func (s *MemoryStore) CreateZaakEigenschap(_ context.Context, ze *models.ZaakEigenschap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ze
	s.eigenschappen[ze.UUID] = &cp
	s.track(ze.UUID)
	return nil
}

func (s *MemoryStore) GetZaakEigenschap(_ context.Context, zaak, id uuid.UUID) (*models.ZaakEigenschap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ze, ok := s.eigenschappen[id]
	if !ok || ze.Zaak != zaak {
		return nil, ErrNotFound
	}
	cp := *ze
	return &cp, nil
}

func (s *MemoryStore) UpdateZaakEigenschap(_ context.Context, ze *models.ZaakEigenschap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.eigenschappen[ze.UUID]; !ok {
		return ErrNotFound
	}
	cp := *ze
	s.eigenschappen[ze.UUID] = &cp
	return nil
}

func (s *MemoryStore) DeleteZaakEigenschap(_ context.Context, zaak, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ze, ok := s.eigenschappen[id]
	if !ok || ze.Zaak != zaak {
		return ErrNotFound
	}
	delete(s.eigenschappen, id)
	return nil
}

func (s *MemoryStore) ListZaakEigenschappen(_ context.Context, zaak uuid.UUID) ([]*models.ZaakEigenschap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.ZaakEigenschap
	for _, ze := range s.eigenschappen {
		if ze.Zaak == zaak {
			cp := *ze
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.order[out[i].UUID] < s.order[out[j].UUID] })
	return out, nil
}

// --- zaakobjecten ---

func (s *MemoryStore) CreateZaakObject(_ context.Context, zo *models.ZaakObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *zo
	s.zaakobjecten[zo.UUID] = &cp
	s.track(zo.UUID)
	return nil
}

func (s *MemoryStore) GetZaakObject(_ context.Context, id uuid.UUID) (*models.ZaakObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	zo, ok := s.zaakobjecten[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *zo
	return &cp, nil
}

func (s *MemoryStore) UpdateZaakObject(_ context.Context, zo *models.ZaakObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zaakobjecten[zo.UUID]; !ok {
		return ErrNotFound
	}
	cp := *zo
	s.zaakobjecten[zo.UUID] = &cp
	return nil
}

func (s *MemoryStore) DeleteZaakObject(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zaakobjecten[id]; !ok {
		return ErrNotFound
	}
	delete(s.zaakobjecten, id)
	return nil
}

func (s *MemoryStore) ListZaakObjecten(_ context.Context, f ChildFilter) (ListResult[*models.ZaakObject], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listChildren(s, s.zaakobjecten,
		func(zo *models.ZaakObject) uuid.UUID { return zo.Zaak },
		func(zo *models.ZaakObject) uuid.UUID { return zo.UUID }, f), nil
}

// --- zaakinformatieobjecten ---

func (s *MemoryStore) CreateZaakInformatieObject(_ context.Context, zio *models.ZaakInformatieObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.zios {
		if existing.Zaak == zio.Zaak && existing.Informatieobject == zio.Informatieobject {
			return ErrDuplicate
		}
	}
	cp := *zio
	s.zios[zio.UUID] = &cp
	s.track(zio.UUID)
	return nil
}

func (s *MemoryStore) GetZaakInformatieObject(_ context.Context, id uuid.UUID) (*models.ZaakInformatieObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	zio, ok := s.zios[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *zio
	return &cp, nil
}

func (s *MemoryStore) UpdateZaakInformatieObject(_ context.Context, zio *models.ZaakInformatieObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zios[zio.UUID]; !ok {
		return ErrNotFound
	}
	cp := *zio
	s.zios[zio.UUID] = &cp
	return nil
}

func (s *MemoryStore) DeleteZaakInformatieObject(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zios[id]; !ok {
		return ErrNotFound
	}
	delete(s.zios, id)
	return nil
}

func (s *MemoryStore) ListZaakInformatieObjecten(_ context.Context, f ChildFilter) (ListResult[*models.ZaakInformatieObject], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listChildren(s, s.zios,
		func(z *models.ZaakInformatieObject) uuid.UUID { return z.Zaak },
		func(z *models.ZaakInformatieObject) uuid.UUID { return z.UUID }, f), nil
}

// --- zaakbesluiten ---

func (s *MemoryStore) CreateZaakBesluit(_ context.Context, zb *models.ZaakBesluit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.besluiten {
		if existing.Zaak == zb.Zaak && existing.Besluit == zb.Besluit {
			return ErrDuplicate
		}
	}
	cp := *zb
	s.besluiten[zb.UUID] = &cp
	s.track(zb.UUID)
	return nil
}

func (s *MemoryStore) GetZaakBesluit(_ context.Context, zaak, id uuid.UUID) (*models.ZaakBesluit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	zb, ok := s.besluiten[id]
	if !ok || zb.Zaak != zaak {
		return nil, ErrNotFound
	}
	cp := *zb
	return &cp, nil
}

func (s *MemoryStore) DeleteZaakBesluit(_ context.Context, zaak, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	zb, ok := s.besluiten[id]
	if !ok || zb.Zaak != zaak {
		return ErrNotFound
	}
	delete(s.besluiten, id)
	return nil
}

func (s *MemoryStore) ListZaakBesluiten(_ context.Context, zaak uuid.UUID) ([]*models.ZaakBesluit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.ZaakBesluit
	for _, zb := range s.besluiten {
		if zb.Zaak == zaak {
			cp := *zb
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.order[out[i].UUID] < s.order[out[j].UUID] })
	return out, nil
}

// --- zaakcontactmomenten ---

func (s *MemoryStore) CreateZaakContactMoment(_ context.Context, zcm *models.ZaakContactMoment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.contactmomenten {
		if existing.Zaak == zcm.Zaak && existing.Contactmoment == zcm.Contactmoment {
			return ErrDuplicate
		}
	}
	cp := *zcm
	s.contactmomenten[zcm.UUID] = &cp
	s.track(zcm.UUID)
	return nil
}

func (s *MemoryStore) UpdateZaakContactMoment(_ context.Context, zcm *models.ZaakContactMoment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contactmomenten[zcm.UUID]; !ok {
		return ErrNotFound
	}
	cp := *zcm
	s.contactmomenten[zcm.UUID] = &cp
	return nil
}

func (s *MemoryStore) GetZaakContactMoment(_ context.Context, id uuid.UUID) (*models.ZaakContactMoment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	zcm, ok := s.contactmomenten[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *zcm
	return &cp, nil
}

func (s *MemoryStore) DeleteZaakContactMoment(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contactmomenten[id]; !ok {
		return ErrNotFound
	}
	delete(s.contactmomenten, id)
	return nil
}

func (s *MemoryStore) ListZaakContactMomenten(_ context.Context, f ChildFilter) (ListResult[*models.ZaakContactMoment], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listChildren(s, s.contactmomenten,
		func(z *models.ZaakContactMoment) uuid.UUID { return z.Zaak },
		func(z *models.ZaakContactMoment) uuid.UUID { return z.UUID }, f), nil
}

// --- zaakverzoeken ---

func (s *MemoryStore) CreateZaakVerzoek(_ context.Context, zv *models.ZaakVerzoek) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.verzoeken {
		if existing.Zaak == zv.Zaak && existing.Verzoek == zv.Verzoek {
			return ErrDuplicate
		}
	}
	cp := *zv
	s.verzoeken[zv.UUID] = &cp
	s.track(zv.UUID)
	return nil
}

func (s *MemoryStore) UpdateZaakVerzoek(_ context.Context, zv *models.ZaakVerzoek) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.verzoeken[zv.UUID]; !ok {
		return ErrNotFound
	}
	cp := *zv
	s.verzoeken[zv.UUID] = &cp
	return nil
}

func (s *MemoryStore) GetZaakVerzoek(_ context.Context, id uuid.UUID) (*models.ZaakVerzoek, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	zv, ok := s.verzoeken[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *zv
	return &cp, nil
}

func (s *MemoryStore) DeleteZaakVerzoek(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.verzoeken[id]; !ok {
		return ErrNotFound
	}
	delete(s.verzoeken, id)
	return nil
}

func (s *MemoryStore) ListZaakVerzoeken(_ context.Context, f ChildFilter) (ListResult[*models.ZaakVerzoek], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listChildren(s, s.verzoeken,
		func(z *models.ZaakVerzoek) uuid.UUID { return z.Zaak },
		func(z *models.ZaakVerzoek) uuid.UUID { return z.UUID }, f), nil
}

// --- klantcontacten ---

func (s *MemoryStore) CreateKlantContact(_ context.Context, kc *models.KlantContact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *kc
	s.klantcontacten[kc.UUID] = &cp
	s.track(kc.UUID)
	return nil
}

func (s *MemoryStore) GetKlantContact(_ context.Context, id uuid.UUID) (*models.KlantContact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kc, ok := s.klantcontacten[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *kc
	return &cp, nil
}

func (s *MemoryStore) ListKlantContacten(_ context.Context, f ChildFilter) (ListResult[*models.KlantContact], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listChildren(s, s.klantcontacten,
		func(k *models.KlantContact) uuid.UUID { return k.Zaak },
		func(k *models.KlantContact) uuid.UUID { return k.UUID }, f), nil
}
