// Package models holds the case aggregate and its child entities. Catalog
// references are loose: they hold either a local row URL or an absolute URL
// into a peer API, and are resolved elsewhere.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"zaakregister/pkg/types"
	"zaakregister/pkg/zgw"
)

// ZaakIdentificatie is the identification record of a case. It can exist
// before the case does: reserved identifications are rows without a case.
type ZaakIdentificatie struct {
	ID              int64
	Identificatie   string
	Bronorganisatie string
}

// Verlenging is the extension group. It serialises as null when Duur is
// empty.
type Verlenging struct {
	Reden string
	Duur  string // ISO 8601 duration
}

func (v Verlenging) Empty() bool { return v.Duur == "" }

// Opschorting is the suspension group. EerdereOpschorting is a latch: once
// Indicatie has been true it stays true forever.
type Opschorting struct {
	Indicatie          bool
	Reden              string
	EerdereOpschorting bool
}

// Processobject identifies the object the case process runs on.
type Processobject struct {
	Datumkenmerk  string
	Identificatie string
	Objecttype    string
	Registratie   string
}

func (p Processobject) Empty() bool {
	return p.Datumkenmerk == "" && p.Identificatie == "" && p.Objecttype == "" && p.Registratie == ""
}

// RelevanteZaakRelatie links the case to another case, local or remote.
type RelevanteZaakRelatie struct {
	URL            string
	AardRelatie    zgw.AardRelatie
	OverigeRelatie string
	Toelichting    string
}

// ZaakKenmerk is an opaque correlation identifier of the case in a foreign
// administration.
type ZaakKenmerk struct {
	Kenmerk string
	Bron    string
}

// Zaak is the aggregate root.
type Zaak struct {
	UUID          uuid.UUID
	Identificatie ZaakIdentificatie

	Zaaktype  string // loose FK
	Hoofdzaak string // loose FK, empty when the case is a root

	Omschrijving           string
	Toelichting            string
	Communicatiekanaal     string
	CommunicatiekanaalNaam string

	Registratiedatum             types.Date
	Startdatum                   types.Date
	Einddatum                    *types.Date
	EinddatumGepland             *types.Date
	UiterlijkeEinddatumAfdoening *types.Date
	Publicatiedatum              *types.Date

	Vertrouwelijkheidaanduiding zgw.VertrouwelijkheidAanduiding
	ProductenOfDiensten         []string

	Betalingsindicatie zgw.BetalingsIndicatie
	LaatsteBetaaldatum *time.Time

	Zaakgeometrie *geojson.Geometry

	Verlenging        Verlenging
	Opschorting       Opschorting
	Processobject     Processobject
	Processobjectaard string

	Selectielijstklasse string

	Archiefnominatie        zgw.Archiefnominatie
	Archiefstatus           zgw.Archiefstatus
	Archiefactiedatum       *types.Date
	StartdatumBewaartermijn *types.Date

	RelevanteAndereZaken []RelevanteZaakRelatie
	Kenmerken            []ZaakKenmerk

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Closed reports whether the case has reached an end status.
func (z *Zaak) Closed() bool { return z.Einddatum != nil }

// Archived reports whether the case left the nog_te_archiveren phase.
func (z *Zaak) Archived() bool {
	return z.Archiefstatus != "" && z.Archiefstatus != zgw.ArchiefstatusNogTeArchiveren
}
