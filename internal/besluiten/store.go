package besluiten

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a besluit row does not exist locally.
var ErrNotFound = errors.New("besluiten: not found")

// Store reads locally persisted besluiten.
type Store interface {
	GetBesluit(ctx context.Context, id uuid.UUID) (*Besluit, error)
	ListByZaakURL(ctx context.Context, zaakURL string) ([]*Besluit, error)
}
