package catalogi

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a catalog row does not exist locally.
var ErrNotFound = errors.New("catalogi: not found")

// Store reads locally persisted catalog rows.
type Store interface {
	GetZaaktype(ctx context.Context, id uuid.UUID) (*Zaaktype, error)
	GetStatustype(ctx context.Context, id uuid.UUID) (*Statustype, error)
	GetResultaattype(ctx context.Context, id uuid.UUID) (*Resultaattype, error)
	GetEigenschap(ctx context.Context, id uuid.UUID) (*Eigenschap, error)
	GetRoltype(ctx context.Context, id uuid.UUID) (*Roltype, error)
	GetZaakobjecttype(ctx context.Context, id uuid.UUID) (*Zaakobjecttype, error)
	GetInformatieobjecttype(ctx context.Context, id uuid.UUID) (*Informatieobjecttype, error)

	// ZaaktypeInformatieobjecttypeExists checks the declared relation that
	// gates linking a document type to a case of the given type.
	ZaaktypeInformatieobjecttypeExists(ctx context.Context, zaaktypeURL, informatieobjecttypeURL string) (bool, error)

	// ListZaaktypenByCatalogus expands CatalogusAutorisatie grants into the
	// zaaktype URLs sharing a catalogus.
	ListZaaktypenByCatalogus(ctx context.Context, catalogusURL string) ([]string, error)
}
