package models

import (
	"time"

	"github.com/google/uuid"

	"zaakregister/pkg/types"
)

// ZaakEigenschap is a typed case property. Eigenschap and the derived Naam
// are immutable after creation.
type ZaakEigenschap struct {
	UUID       uuid.UUID
	Zaak       uuid.UUID
	Eigenschap string // loose FK
	Naam       string // derived from the eigenschap
	Waarde     string
}

// ZaakInformatieObject links the case to a document, local or remote.
// (Zaak, Informatieobject) is unique; both fields are immutable.
type ZaakInformatieObject struct {
	UUID               uuid.UUID
	Zaak               uuid.UUID
	Informatieobject   string // loose FK
	AardRelatie        string // fixed hoort_bij
	Titel              string
	Beschrijving       string
	Registratiedatum   time.Time
	Vernietigingsdatum *time.Time
	Status             string
}

// ZaakBesluit mirrors a besluit that references the case.
type ZaakBesluit struct {
	UUID    uuid.UUID
	Zaak    uuid.UUID
	Besluit string
}

// ZaakContactMoment links the case to a contactmoment in the peer API. The
// ObjectContactMoment back-reference is populated after the peer cross-write.
type ZaakContactMoment struct {
	UUID                uuid.UUID
	Zaak                uuid.UUID
	Contactmoment       string
	ObjectContactMoment string
}

// ZaakVerzoek links the case to a verzoek in the peer API.
type ZaakVerzoek struct {
	UUID          uuid.UUID
	Zaak          uuid.UUID
	Verzoek       string
	ObjectVerzoek string
}

// KlantContact records a contact with the client about the case.
type KlantContact struct {
	UUID          uuid.UUID
	Zaak          uuid.UUID
	Identificatie string // 12-char random when omitted
	Datumtijd     time.Time
	Kanaal        string
	Onderwerp     string
	Toelichting   string
}

// AuditRecord is one append-only audit-trail entry for a case resource.
type AuditRecord struct {
	UUID               uuid.UUID
	Bron               string
	ApplicatieID       string
	ApplicatieWeergave string
	Gebruiker          string
	Actie              string
	Resultaat          int
	HoofdObject        string
	Resource           string
	ResourceURL        string
	ResourceWeergave   string
	AanmaakDatum       time.Time
	Oud                []byte
	Nieuw              []byte
}

// Reservation is an unattached identification, exposed through the reserve
// endpoint so a client can mint a zaaknummer ahead of case creation.
type Reservation struct {
	Zaaknummer      string
	Bronorganisatie string
	ReservedAt      types.Date
}
