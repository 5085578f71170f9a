package documenten

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a document row does not exist locally.
var ErrNotFound = errors.New("documenten: not found")

// Store reads locally persisted documents and maintains the
// objectinformatieobject back-references the documents API keeps per linked
// case.
type Store interface {
	GetInformatieobject(ctx context.Context, id uuid.UUID) (*EnkelvoudigInformatieObject, error)
	CreateObjectInformatieObject(ctx context.Context, informatieobjectURL, zaakURL string) error
	DeleteObjectInformatieObject(ctx context.Context, informatieobjectURL, zaakURL string) error
}
