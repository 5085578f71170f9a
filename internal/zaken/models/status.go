package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is one step in the case lifecycle. The most recent status by
// DatumStatusGezet decides whether the case is closed.
type Status struct {
	UUID                         uuid.UUID
	Zaak                         uuid.UUID
	Statustype                   string // loose FK
	DatumStatusGezet             time.Time
	Statustoelichting            string
	GezetDoor                    *uuid.UUID // optional Rol
	IndicatieLaatstGezetteStatus bool
	CreatedAt                    time.Time
}

// Resultaat is the outcome of a case, at most one per case. Resultaattype is
// immutable after creation.
type Resultaat struct {
	UUID          uuid.UUID
	Zaak          uuid.UUID
	Resultaattype string // loose FK
	Toelichting   string
	CreatedAt     time.Time
}
