// Package catalogi models the catalog resources the case registration
// depends on. Rows exist locally when the catalog component runs in the same
// installation; otherwise the reference resolver serves the same shapes from
// a remote catalogi API.
package catalogi

import (
	"github.com/google/uuid"

	"zaakregister/pkg/zgw"
)

// Zaaktype constrains which statuses, results, properties and relations a
// case may carry.
type Zaaktype struct {
	UUID                uuid.UUID
	URL                 string
	Identificatie       string
	Omschrijving        string
	Catalogus           string
	Concept             bool
	Deelzaaktypen       []string
	ProductenOfDiensten []string
}

// Statustype is one step in the lifecycle of a zaaktype.
type Statustype struct {
	UUID         uuid.UUID
	URL          string
	Zaaktype     string
	Omschrijving string
	Volgnummer   int
	IsEindstatus bool
}

// BrondatumArchiefprocedure parameterises how the archival source date is
// derived when a case reaches an eindstatus.
type BrondatumArchiefprocedure struct {
	Afleidingswijze zgw.Afleidingswijze
	Datumkenmerk    string
	Objecttype      zgw.ZaakobjectType
	Registratie     string
	Procestermijn   string
	EinddatumBekend bool
}

// Resultaattype is the catalog-defined outcome carrying the archival
// procedure.
type Resultaattype struct {
	UUID                      uuid.UUID
	URL                       string
	Zaaktype                  string
	Omschrijving              string
	Resultaattypeomschrijving string
	Selectielijstklasse       string
	Archiefnominatie          zgw.Archiefnominatie
	Archiefactietermijn       string
	Brondatum                 BrondatumArchiefprocedure
}

// Eigenschap declares a case property on a zaaktype.
type Eigenschap struct {
	UUID      uuid.UUID
	URL       string
	Zaaktype  string
	Naam      string
	Definitie string
}

// Roltype declares a role on a zaaktype.
type Roltype struct {
	UUID                 uuid.UUID
	URL                  string
	Zaaktype             string
	Omschrijving         string
	OmschrijvingGeneriek zgw.RolOmschrijvingGeneriek
}

// Zaakobjecttype declares a permitted object relation on a zaaktype.
type Zaakobjecttype struct {
	UUID                uuid.UUID
	URL                 string
	Zaaktype            string
	AnderObjecttype     bool
	Objecttype          string
	RelatieOmschrijving string
}

// Informatieobjecttype classifies documents; the zaaktype relation gates
// which documents may be linked to a case.
type Informatieobjecttype struct {
	UUID         uuid.UUID
	URL          string
	Catalogus    string
	Omschrijving string
}
