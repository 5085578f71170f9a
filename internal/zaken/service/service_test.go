package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"zaakregister/internal/audittrail"
	"zaakregister/internal/autorisaties"
	"zaakregister/internal/besluiten"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/documenten"
	"zaakregister/internal/notificaties"
	"zaakregister/internal/referentie"
	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/types"
	"zaakregister/pkg/zgw"
)

const (
	testAPIRoot     = "http://testserver/zaken/api/v1"
	testLocalPrefix = "http://testserver/"
	testRSIN        = "517439943"

	testZaaktype       = "http://testserver/catalogi/api/v1/zaaktypen/8e7b9e6a-0001-4a8a-9d6b-000000000001"
	testStatustype     = "http://testserver/catalogi/api/v1/statustypen/8e7b9e6a-0002-4a8a-9d6b-000000000001"
	testEindStatustype = "http://testserver/catalogi/api/v1/statustypen/8e7b9e6a-0002-4a8a-9d6b-000000000002"
	testResultaattype  = "http://testserver/catalogi/api/v1/resultaattypen/8e7b9e6a-0003-4a8a-9d6b-000000000001"
)

// --- fakes ---

type fakeCatalog struct {
	zaaktypen       map[string]*catalogi.Zaaktype
	statustypen     map[string]*catalogi.Statustype
	resultaattypen  map[string]*catalogi.Resultaattype
	eigenschappen   map[string]*catalogi.Eigenschap
	roltypen        map[string]*catalogi.Roltype
	zaakobjecttypen map[string]*catalogi.Zaakobjecttype
	ztIot           map[string]map[string]bool
	kanalen         map[string]bool
}

func notFoundRef(ref string) error {
	return domainerrors.Newf(domainerrors.CodeBadURL, "De URL %s is niet op te halen.", ref)
}

func (c *fakeCatalog) Zaaktype(_ context.Context, ref string) (*catalogi.Zaaktype, error) {
	if zt, ok := c.zaaktypen[ref]; ok {
		return zt, nil
	}
	return nil, notFoundRef(ref)
}

func (c *fakeCatalog) Statustype(_ context.Context, ref string) (*catalogi.Statustype, error) {
	if st, ok := c.statustypen[ref]; ok {
		return st, nil
	}
	return nil, notFoundRef(ref)
}

func (c *fakeCatalog) Resultaattype(_ context.Context, ref string) (*catalogi.Resultaattype, error) {
	if rt, ok := c.resultaattypen[ref]; ok {
		return rt, nil
	}
	return nil, notFoundRef(ref)
}

func (c *fakeCatalog) Eigenschap(_ context.Context, ref string) (*catalogi.Eigenschap, error) {
	if e, ok := c.eigenschappen[ref]; ok {
		return e, nil
	}
	return nil, notFoundRef(ref)
}

func (c *fakeCatalog) Roltype(_ context.Context, ref string) (*catalogi.Roltype, error) {
	if rt, ok := c.roltypen[ref]; ok {
		return rt, nil
	}
	return nil, notFoundRef(ref)
}

func (c *fakeCatalog) Zaakobjecttype(_ context.Context, ref string) (*catalogi.Zaakobjecttype, error) {
	if zot, ok := c.zaakobjecttypen[ref]; ok {
		return zot, nil
	}
	return nil, notFoundRef(ref)
}

func (c *fakeCatalog) ZaaktypeHeeftInformatieobjecttype(_ context.Context, zaaktypeRef, iotRef string) (bool, error) {
	return c.ztIot[zaaktypeRef][iotRef], nil
}

func (c *fakeCatalog) Communicatiekanaal(_ context.Context, ref string) error {
	if c.kanalen[ref] {
		return nil
	}
	return notFoundRef(ref)
}

type fakeDocuments struct {
	eios         map[string]*documenten.EnkelvoudigInformatieObject
	registered   []string
	unregistered []string
	registerErr  error
}

func (d *fakeDocuments) Informatieobject(_ context.Context, ref string) (*documenten.EnkelvoudigInformatieObject, error) {
	if eio, ok := d.eios[ref]; ok {
		return eio, nil
	}
	return nil, notFoundRef(ref)
}

func (d *fakeDocuments) RegisterZaakLink(_ context.Context, informatieobjectRef, zaakURL string) (string, error) {
	if d.registerErr != nil {
		return "", d.registerErr
	}
	d.registered = append(d.registered, informatieobjectRef)
	return informatieobjectRef + "/oio", nil
}

func (d *fakeDocuments) UnregisterZaakLink(_ context.Context, informatieobjectRef, zaakURL, remoteOIOURL string) error {
	d.unregistered = append(d.unregistered, informatieobjectRef)
	return nil
}

type fakeBesluiten struct {
	besluiten map[string]*besluiten.Besluit
}

func (b *fakeBesluiten) Besluit(_ context.Context, ref string) (*besluiten.Besluit, error) {
	if besluit, ok := b.besluiten[ref]; ok {
		return besluit, nil
	}
	return nil, notFoundRef(ref)
}

type fakePeers struct {
	zaken map[string]*referentie.RemoteZaak
}

func (p *fakePeers) Zaak(_ context.Context, ref string) (*referentie.RemoteZaak, error) {
	if zaak, ok := p.zaken[ref]; ok {
		return zaak, nil
	}
	return nil, notFoundRef(ref)
}

type fakeLinks struct {
	contactmomenten []string
	verzoeken       []string
	unregistered    []string
	registerErr     error
}

func (l *fakeLinks) RegisterContactmoment(_ context.Context, contactmomentURL, zaakURL string) (string, error) {
	if l.registerErr != nil {
		return "", l.registerErr
	}
	l.contactmomenten = append(l.contactmomenten, contactmomentURL)
	return contactmomentURL + "/objectcontactmoment", nil
}

func (l *fakeLinks) RegisterVerzoek(_ context.Context, verzoekURL, zaakURL string) (string, error) {
	if l.registerErr != nil {
		return "", l.registerErr
	}
	l.verzoeken = append(l.verzoeken, verzoekURL)
	return verzoekURL + "/objectverzoek", nil
}

func (l *fakeLinks) Unregister(_ context.Context, backrefURL string) error {
	l.unregistered = append(l.unregistered, backrefURL)
	return nil
}

type fakeRefs struct {
	invalid map[string]bool
	objects map[string]map[string]any
}

func (r *fakeRefs) IsLocal(rawURL string) bool {
	return len(rawURL) >= len(testLocalPrefix) && rawURL[:len(testLocalPrefix)] == testLocalPrefix
}

func (r *fakeRefs) ValidateURL(rawURL string) error {
	if r.invalid[rawURL] {
		return domainerrors.Newf(domainerrors.CodeBadURL, "De URL %s is niet op te halen.", rawURL)
	}
	return nil
}

func (r *fakeRefs) Get(_ context.Context, _ referentie.Kind, rawURL string) (map[string]any, error) {
	if body, ok := r.objects[rawURL]; ok {
		return body, nil
	}
	return nil, notFoundRef(rawURL)
}

// --- harness ---

type env struct {
	svc       *Service
	store     *store.MemoryStore
	catalog   *fakeCatalog
	documents *fakeDocuments
	besluiten *fakeBesluiten
	peers     *fakePeers
	links     *fakeLinks
	refs      *fakeRefs
	publisher *notificaties.CapturePublisher
	audit     *audittrail.MemoryStore
	now       time.Time
	tz        *time.Location
}

type noExpander struct{}

func (noExpander) ZaaktypenByCatalogus(context.Context, string) ([]string, error) {
	return nil, nil
}

func newEnv(t *testing.T) *env {
	t.Helper()
	tz, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)

	e := &env{
		store: store.NewMemoryStore(),
		catalog: &fakeCatalog{
			zaaktypen: map[string]*catalogi.Zaaktype{
				testZaaktype: {URL: testZaaktype, Omschrijving: "vergunningsaanvraag"},
			},
			statustypen: map[string]*catalogi.Statustype{
				testStatustype:     {URL: testStatustype, Zaaktype: testZaaktype, Volgnummer: 1},
				testEindStatustype: {URL: testEindStatustype, Zaaktype: testZaaktype, Volgnummer: 2, IsEindstatus: true},
			},
			resultaattypen: map[string]*catalogi.Resultaattype{
				testResultaattype: {
					URL:                 testResultaattype,
					Zaaktype:            testZaaktype,
					Archiefnominatie:    zgw.ArchiefnominatieVernietigen,
					Archiefactietermijn: "P10Y",
					Brondatum: catalogi.BrondatumArchiefprocedure{
						Afleidingswijze: zgw.AfleidingAfgehandeld,
					},
				},
			},
			eigenschappen:   map[string]*catalogi.Eigenschap{},
			roltypen:        map[string]*catalogi.Roltype{},
			zaakobjecttypen: map[string]*catalogi.Zaakobjecttype{},
			ztIot:           map[string]map[string]bool{},
			kanalen:         map[string]bool{},
		},
		documents: &fakeDocuments{eios: map[string]*documenten.EnkelvoudigInformatieObject{}},
		besluiten: &fakeBesluiten{besluiten: map[string]*besluiten.Besluit{}},
		peers:     &fakePeers{zaken: map[string]*referentie.RemoteZaak{}},
		links:     &fakeLinks{},
		refs:      &fakeRefs{invalid: map[string]bool{}, objects: map[string]map[string]any{}},
		publisher: &notificaties.CapturePublisher{},
		audit:     audittrail.NewMemoryStore(),
		now:       time.Date(2018, 10, 18, 12, 0, 0, 0, time.UTC),
		tz:        tz,
	}

	logger := testLogger()
	e.svc = New(Config{
		Store:     e.store,
		Catalog:   e.catalog,
		Documents: e.documents,
		Besluiten: e.besluiten,
		PeerZaken: e.peers,
		Links:     e.links,
		Refs:      e.refs,
		Filter:    autorisaties.NewFilter(noExpander{}),
		Publisher: e.publisher,
		Audit:     audittrail.NewRecorder(e.audit, logger),
		Logger:    logger,
		APIRoot:   testAPIRoot,
		Timezone:  tz,
	})
	e.svc.now = func() time.Time { return e.now }
	return e
}

// newZaak persists a minimal open case through the service.
func (e *env) newZaak(t *testing.T, mutate ...func(*models.Zaak)) *models.Zaak {
	t.Helper()
	zaak := &models.Zaak{
		Identificatie: models.ZaakIdentificatie{Bronorganisatie: testRSIN},
		Zaaktype:      testZaaktype,
		Startdatum:    types.NewDate(2018, time.October, 1),
	}
	for _, fn := range mutate {
		fn(zaak)
	}
	created, err := e.svc.CreateZaak(adminCtx(), zaak)
	require.NoError(t, err)
	return created
}

// closeZaak pushes the case through resultaat plus end status.
func (e *env) closeZaak(t *testing.T, zaak *models.Zaak) *models.Zaak {
	t.Helper()
	ctx := adminCtx()
	_, err := e.svc.CreateResultaat(ctx, &models.Resultaat{
		Zaak:          zaak.UUID,
		Resultaattype: testResultaattype,
	})
	require.NoError(t, err)
	_, err = e.svc.CreateStatus(ctx, &models.Status{
		Zaak:             zaak.UUID,
		Statustype:       testEindStatustype,
		DatumStatusGezet: e.now,
	})
	require.NoError(t, err)
	closed, err := e.svc.GetZaak(ctx, zaak.UUID)
	require.NoError(t, err)
	return closed
}

func adminCtx() context.Context {
	return autorisaties.WithApplicatie(context.Background(), &autorisaties.Applicatie{
		UUID:                  uuid.New(),
		ClientIDs:             []string{"test-admin"},
		Label:                 "Test admin",
		HeeftAlleAutorisaties: true,
	})
}

// scopedCtx builds a caller holding the given scopes on one zaaktype up to
// the ceiling.
func scopedCtx(zaaktype string, ceiling zgw.VertrouwelijkheidAanduiding, scopes ...string) context.Context {
	return autorisaties.WithApplicatie(context.Background(), &autorisaties.Applicatie{
		UUID:      uuid.New(),
		ClientIDs: []string{"test-scoped"},
		Label:     "Test scoped",
		Autorisaties: []autorisaties.Autorisatie{{
			Component:                      autorisaties.ComponentZaken,
			Scopes:                         scopes,
			Zaaktype:                       zaaktype,
			MaxVertrouwelijkheidaanduiding: ceiling,
		}},
	})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func requireCode(t *testing.T, err error, code domainerrors.Code) {
	t.Helper()
	require.Error(t, err)
	require.True(t, domainerrors.Is(err, code), "expected code %s, got %v", code, err)
}
