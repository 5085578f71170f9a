// Package service implements the case registration behind the HTTP layer:
// aggregate invariants, the closure and archiving pipeline, identifier
// minting, and the post-commit observer fan-out.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"zaakregister/internal/audittrail"
	"zaakregister/internal/autorisaties"
	"zaakregister/internal/besluiten"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/documenten"
	"zaakregister/internal/notificaties"
	"zaakregister/internal/platform/metrics"
	"zaakregister/internal/referentie"
	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
)

// Catalog is the slice of the catalogi API the service consumes.
type Catalog interface {
	Zaaktype(ctx context.Context, ref string) (*catalogi.Zaaktype, error)
	Statustype(ctx context.Context, ref string) (*catalogi.Statustype, error)
	Resultaattype(ctx context.Context, ref string) (*catalogi.Resultaattype, error)
	Eigenschap(ctx context.Context, ref string) (*catalogi.Eigenschap, error)
	Roltype(ctx context.Context, ref string) (*catalogi.Roltype, error)
	Zaakobjecttype(ctx context.Context, ref string) (*catalogi.Zaakobjecttype, error)
	ZaaktypeHeeftInformatieobjecttype(ctx context.Context, zaaktypeRef, iotRef string) (bool, error)
	Communicatiekanaal(ctx context.Context, ref string) error
}

// Documents is the slice of the documenten API the service consumes.
type Documents interface {
	Informatieobject(ctx context.Context, ref string) (*documenten.EnkelvoudigInformatieObject, error)
	RegisterZaakLink(ctx context.Context, informatieobjectRef, zaakURL string) (string, error)
	UnregisterZaakLink(ctx context.Context, informatieobjectRef, zaakURL, remoteOIOURL string) error
}

// BesluitenReader resolves besluit references.
type BesluitenReader interface {
	Besluit(ctx context.Context, ref string) (*besluiten.Besluit, error)
}

// RelatedZaken resolves related-case references on peer installations.
type RelatedZaken interface {
	Zaak(ctx context.Context, ref string) (*referentie.RemoteZaak, error)
}

// ObjectLinks performs the contactmomenten/verzoeken cross-writes.
type ObjectLinks interface {
	RegisterContactmoment(ctx context.Context, contactmomentURL, zaakURL string) (string, error)
	RegisterVerzoek(ctx context.Context, verzoekURL, zaakURL string) (string, error)
	Unregister(ctx context.Context, backrefURL string) error
}

// References is the generic URL side of the resolver.
type References interface {
	IsLocal(rawURL string) bool
	ValidateURL(rawURL string) error
	Get(ctx context.Context, kind referentie.Kind, rawURL string) (map[string]any, error)
}

// Service is the case registration core.
type Service struct {
	store     store.Store
	catalog   Catalog
	documents Documents
	besluiten BesluitenReader
	peerZaken RelatedZaken
	links     ObjectLinks
	refs      References
	filter    *autorisaties.Filter
	publisher notificaties.Publisher
	audit     *audittrail.Recorder
	logger    *slog.Logger
	metrics   *metrics.Metrics
	apiRoot   string
	tz        *time.Location
	now       func() time.Time
}

// Config wires the service dependencies.
type Config struct {
	Store     store.Store
	Catalog   Catalog
	Documents Documents
	Besluiten BesluitenReader
	PeerZaken RelatedZaken
	Links     ObjectLinks
	Refs      References
	Filter    *autorisaties.Filter
	Publisher notificaties.Publisher
	Audit     *audittrail.Recorder
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	APIRoot   string
	Timezone  *time.Location
}

func New(cfg Config) *Service {
	tz := cfg.Timezone
	if tz == nil {
		tz = time.UTC
	}
	return &Service{
		store:     cfg.Store,
		catalog:   cfg.Catalog,
		documents: cfg.Documents,
		besluiten: cfg.Besluiten,
		peerZaken: cfg.PeerZaken,
		links:     cfg.Links,
		refs:      cfg.Refs,
		filter:    cfg.Filter,
		publisher: cfg.Publisher,
		audit:     cfg.Audit,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		apiRoot:   strings.TrimSuffix(cfg.APIRoot, "/"),
		tz:        tz,
		now:       time.Now,
	}
}

// --- URL builders ---

func (s *Service) resourceURL(collection string, id uuid.UUID) string {
	return s.apiRoot + "/" + collection + "/" + id.String()
}

func (s *Service) ZaakURL(id uuid.UUID) string   { return s.resourceURL("zaken", id) }
func (s *Service) StatusURL(id uuid.UUID) string { return s.resourceURL("statussen", id) }

// --- authorization helpers ---

func appFrom(ctx context.Context) *autorisaties.Applicatie {
	return autorisaties.GetApplicatie(ctx)
}

// checkZaakScope enforces a scope against one case row. Unauthorised access
// to an existing row yields 403, not 404.
func (s *Service) checkZaakScope(ctx context.Context, zaak *models.Zaak, scope string) error {
	return s.filter.CheckAccess(ctx, appFrom(ctx), scope, zaak.Zaaktype, zaak.Vertrouwelijkheidaanduiding)
}

// checkMutationScope picks the scope a mutation needs: closed and archived
// cases demand the forced-edit scope.
func (s *Service) checkMutationScope(ctx context.Context, zaak *models.Zaak) error {
	if zaak.Closed() || zaak.Archived() {
		return s.checkZaakScope(ctx, zaak, autorisaties.ScopeZakenGeforceerdBijwerken)
	}
	return s.checkZaakScope(ctx, zaak, autorisaties.ScopeZakenBijwerken)
}

// grantsFor expands the caller's grants for list queries.
func (s *Service) grantsFor(ctx context.Context, scope string) (store.Grants, error) {
	grants, err := s.filter.GrantsFor(ctx, appFrom(ctx), scope)
	if err != nil {
		return store.Grants{}, err
	}
	return store.Grants{All: grants.All, Ceilings: grants.Ceilings}, nil
}

// --- observer fan-out ---

// notify publishes the post-commit notification for a case resource. Best
// effort: the write already committed.
func (s *Service) notify(ctx context.Context, zaak *models.Zaak, resource, resourceURL, actie string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, notificaties.Message{
		Kanaal:       notificaties.Kanaal,
		HoofdObject:  s.ZaakURL(zaak.UUID),
		Resource:     resource,
		ResourceURL:  resourceURL,
		Actie:        actie,
		AanmaakDatum: s.now().UTC(),
		Kenmerken: map[string]string{
			"bronorganisatie":             zaak.Identificatie.Bronorganisatie,
			"zaaktype":                    zaak.Zaaktype,
			"vertrouwelijkheidaanduiding": string(zaak.Vertrouwelijkheidaanduiding),
		},
	})
}

// record appends the audit-trail entry for a mutation.
func (s *Service) record(ctx context.Context, zaak *models.Zaak, resource, resourceURL, actie string, status int, oud, nieuw any) {
	if s.audit == nil {
		return
	}
	app := appFrom(ctx)
	entry := audittrail.Entry{
		Actie:       actie,
		Resultaat:   status,
		HoofdObject: s.ZaakURL(zaak.UUID),
		Resource:    resource,
		ResourceURL: resourceURL,
		Oud:         oud,
		Nieuw:       nieuw,
	}
	if app != nil {
		if len(app.ClientIDs) > 0 {
			entry.ApplicatieID = app.ClientIDs[0]
		}
		entry.ApplicatieWeergave = app.Label
	}
	s.audit.Record(ctx, entry)
}

// AuditTrail returns the audit records of one case.
func (s *Service) AuditTrail(ctx context.Context, zaakID uuid.UUID) ([]*models.AuditRecord, error) {
	zaak, err := s.loadZaak(ctx, zaakID)
	if err != nil {
		return nil, err
	}
	if err := s.checkZaakScope(ctx, zaak, autorisaties.ScopeZakenLezen); err != nil {
		return nil, err
	}
	if s.audit == nil {
		return nil, nil
	}
	return s.audit.List(ctx, s.ZaakURL(zaak.UUID))
}

// loadZaak fetches a case, mapping the store error to the domain envelope.
func (s *Service) loadZaak(ctx context.Context, id uuid.UUID) (*models.Zaak, error) {
	zaak, err := s.store.GetZaak(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "zaak bestaat niet")
		}
		return nil, err
	}
	return zaak, nil
}

// ZaakContext bundles the derived links of a case detail view: the current
// status, the resultaat and the child cases. The caller already passed the
// read check on the case itself.
type ZaakContext struct {
	Status    *models.Status
	Resultaat *models.Resultaat
	Deelzaken []*models.Zaak
}

func (s *Service) ZaakContext(ctx context.Context, zaak *models.Zaak) (*ZaakContext, error) {
	out := &ZaakContext{}

	status, err := s.store.LatestStatus(ctx, zaak.UUID)
	switch {
	case err == nil:
		out.Status = status
	case err != store.ErrNotFound:
		return nil, err
	}

	resultaat, err := s.store.GetResultaatByZaak(ctx, zaak.UUID)
	switch {
	case err == nil:
		out.Resultaat = resultaat
	case err != store.ErrNotFound:
		return nil, err
	}

	deelzaken, err := s.Deelzaken(ctx, zaak)
	if err != nil {
		return nil, err
	}
	out.Deelzaken = deelzaken
	return out, nil
}

// localZaakByURL loads a case addressed by its API URL.
func (s *Service) localZaakByURL(ctx context.Context, rawURL string) (*models.Zaak, error) {
	id, err := referentie.ExtractUUID(rawURL)
	if err != nil {
		return nil, err
	}
	return s.loadZaak(ctx, id)
}
