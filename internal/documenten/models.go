// Package documenten mirrors the document component resources the case
// registration must inspect: document status, locks and usage rights gate
// both archiving and closing a case.
package documenten

import "github.com/google/uuid"

// Document statuses relevant to the case registration.
const (
	StatusInBewerking     = "in_bewerking"
	StatusTerVaststelling = "ter_vaststelling"
	StatusDefinitief      = "definitief"
	StatusGearchiveerd    = "gearchiveerd"
)

// EnkelvoudigInformatieObject is the slice of the document resource the
// case registration reads.
type EnkelvoudigInformatieObject struct {
	UUID                   uuid.UUID
	URL                    string
	Identificatie          string
	Informatieobjecttype   string
	Status                 string
	Locked                 bool
	IndicatieGebruiksrecht *bool
}

// Archived reports whether the document has reached its archival status.
func (eio *EnkelvoudigInformatieObject) Archived() bool {
	return eio.Status == StatusGearchiveerd
}
