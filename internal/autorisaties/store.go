package autorisaties

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no application matches a client_id.
var ErrNotFound = errors.New("autorisaties: applicatie not found")

// Store reads applications and their grants from the authorization store.
type Store interface {
	GetByClientID(ctx context.Context, clientID string) (*Applicatie, error)
}
