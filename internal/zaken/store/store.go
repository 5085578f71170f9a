// Package store persists the case aggregate. Two implementations exist: an
// in-memory store for tests and a PostgreSQL store for production.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"zaakregister/internal/zaken/models"
	"zaakregister/pkg/types"
	"zaakregister/pkg/zgw"
)

var (
	ErrNotFound        = errors.New("store: not found")
	ErrDuplicate       = errors.New("store: duplicate")
	ErrStatusConflict  = errors.New("store: status with this datum_status_gezet exists")
	ErrResultaatExists = errors.New("store: zaak already has a resultaat")
)

// Grants narrows list queries to the caller's authorised zaaktypen. All
// short-circuits; otherwise Ceilings maps zaaktype URL to the maximum
// confidentiality order included.
type Grants struct {
	All      bool
	Ceilings map[string]zgw.VertrouwelijkheidAanduiding
}

// Page is a pagination request.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// ZaakFilter narrows a case list query.
type ZaakFilter struct {
	Grants           Grants
	Bronorganisatie  string
	Identificatie    string
	Zaaktype         string
	Hoofdzaak        string
	Archiefnominatie string
	Archiefstatus    string
	StartdatumFrom   *types.Date
	StartdatumUntil  *types.Date
	EinddatumSet     *bool
	Within           orb.Polygon
	Ordering         string
	Page             Page
}

// ChildFilter narrows child-entity list queries. Grants apply through the
// parent case.
type ChildFilter struct {
	Grants Grants
	Zaak   *uuid.UUID
	Page   Page
}

// AllChildrenOf is the unrestricted child filter used by internal reads
// that already passed the authorization gate.
func AllChildrenOf(zaak uuid.UUID) ChildFilter {
	return ChildFilter{Grants: Grants{All: true}, Zaak: &zaak}
}

// ListResult carries one page plus the (possibly fuzzy) total.
type ListResult[T any] struct {
	Items      []T
	Count      int
	CountExact bool
}

// Store is the persistence contract of the case registration.
type Store interface {
	// InTx runs fn against a transactional view of the store. All writes in
	// fn commit or roll back together.
	InTx(ctx context.Context, fn func(Store) error) error

	// GenerateIdentificatie mints the next ZAAK-{year}-{serial} for the
	// organisation under the advisory lock and persists the reservation.
	GenerateIdentificatie(ctx context.Context, bronorganisatie string, year int) (string, error)
	// ReservationAvailable reports whether an identification is reserved and
	// not yet attached to a case.
	ReservationAvailable(ctx context.Context, bronorganisatie, identificatie string) (bool, error)
	IdentificatieExists(ctx context.Context, bronorganisatie, identificatie string) (bool, error)

	CreateZaak(ctx context.Context, zaak *models.Zaak) error
	GetZaak(ctx context.Context, id uuid.UUID) (*models.Zaak, error)
	UpdateZaak(ctx context.Context, zaak *models.Zaak) error
	DeleteZaak(ctx context.Context, id uuid.UUID) error
	ListZaken(ctx context.Context, filter ZaakFilter) (ListResult[*models.Zaak], error)

	CreateStatus(ctx context.Context, status *models.Status) error
	GetStatus(ctx context.Context, id uuid.UUID) (*models.Status, error)
	LatestStatus(ctx context.Context, zaak uuid.UUID) (*models.Status, error)
	CountStatussen(ctx context.Context, zaak uuid.UUID) (int, error)
	ListStatussen(ctx context.Context, filter ChildFilter) (ListResult[*models.Status], error)

	CreateResultaat(ctx context.Context, resultaat *models.Resultaat) error
	GetResultaat(ctx context.Context, id uuid.UUID) (*models.Resultaat, error)
	GetResultaatByZaak(ctx context.Context, zaak uuid.UUID) (*models.Resultaat, error)
	UpdateResultaat(ctx context.Context, resultaat *models.Resultaat) error
	DeleteResultaat(ctx context.Context, id uuid.UUID) error
	ListResultaten(ctx context.Context, filter ChildFilter) (ListResult[*models.Resultaat], error)

	CreateRol(ctx context.Context, rol *models.Rol) error
	GetRol(ctx context.Context, id uuid.UUID) (*models.Rol, error)
	DeleteRol(ctx context.Context, id uuid.UUID) error
	ListRollen(ctx context.Context, filter ChildFilter) (ListResult[*models.Rol], error)

	CreateZaakEigenschap(ctx context.Context, ze *models.ZaakEigenschap) error
	GetZaakEigenschap(ctx context.Context, zaak, id uuid.UUID) (*models.ZaakEigenschap, error)
	UpdateZaakEigenschap(ctx context.Context, ze *models.ZaakEigenschap) error
	DeleteZaakEigenschap(ctx context.Context, zaak, id uuid.UUID) error
	ListZaakEigenschappen(ctx context.Context, zaak uuid.UUID) ([]*models.ZaakEigenschap, error)

	CreateZaakObject(ctx context.Context, zo *models.ZaakObject) error
	GetZaakObject(ctx context.Context, id uuid.UUID) (*models.ZaakObject, error)
	UpdateZaakObject(ctx context.Context, zo *models.ZaakObject) error
	DeleteZaakObject(ctx context.Context, id uuid.UUID) error
	ListZaakObjecten(ctx context.Context, filter ChildFilter) (ListResult[*models.ZaakObject], error)

	CreateZaakInformatieObject(ctx context.Context, zio *models.ZaakInformatieObject) error
	GetZaakInformatieObject(ctx context.Context, id uuid.UUID) (*models.ZaakInformatieObject, error)
	UpdateZaakInformatieObject(ctx context.Context, zio *models.ZaakInformatieObject) error
	DeleteZaakInformatieObject(ctx context.Context, id uuid.UUID) error
	ListZaakInformatieObjecten(ctx context.Context, filter ChildFilter) (ListResult[*models.ZaakInformatieObject], error)

	CreateZaakBesluit(ctx context.Context, zb *models.ZaakBesluit) error
	GetZaakBesluit(ctx context.Context, zaak, id uuid.UUID) (*models.ZaakBesluit, error)
	DeleteZaakBesluit(ctx context.Context, zaak, id uuid.UUID) error
	ListZaakBesluiten(ctx context.Context, zaak uuid.UUID) ([]*models.ZaakBesluit, error)

	CreateZaakContactMoment(ctx context.Context, zcm *models.ZaakContactMoment) error
	UpdateZaakContactMoment(ctx context.Context, zcm *models.ZaakContactMoment) error
	GetZaakContactMoment(ctx context.Context, id uuid.UUID) (*models.ZaakContactMoment, error)
	DeleteZaakContactMoment(ctx context.Context, id uuid.UUID) error
	ListZaakContactMomenten(ctx context.Context, filter ChildFilter) (ListResult[*models.ZaakContactMoment], error)

	CreateZaakVerzoek(ctx context.Context, zv *models.ZaakVerzoek) error
	UpdateZaakVerzoek(ctx context.Context, zv *models.ZaakVerzoek) error
	GetZaakVerzoek(ctx context.Context, id uuid.UUID) (*models.ZaakVerzoek, error)
	DeleteZaakVerzoek(ctx context.Context, id uuid.UUID) error
	ListZaakVerzoeken(ctx context.Context, filter ChildFilter) (ListResult[*models.ZaakVerzoek], error)

	CreateKlantContact(ctx context.Context, kc *models.KlantContact) error
	GetKlantContact(ctx context.Context, id uuid.UUID) (*models.KlantContact, error)
	ListKlantContacten(ctx context.Context, filter ChildFilter) (ListResult[*models.KlantContact], error)
}

// Allowed reports whether a case falls within the grants.
func (g Grants) Allowed(zaaktype string, va zgw.VertrouwelijkheidAanduiding) bool {
	if g.All {
		return true
	}
	ceiling, ok := g.Ceilings[zaaktype]
	if !ok {
		return false
	}
	return va.AtMost(ceiling)
}
