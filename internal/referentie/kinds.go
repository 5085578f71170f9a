// Package referentie implements the uniform read contract for references
// that may point at a local database row or at an absolute URL into a peer
// API. Remote bodies are validated against a per-kind shape and memoised for
// the duration of one request.
package referentie

// Kind names a resource shape served by a peer API.
type Kind string

const (
	KindZaaktype             Kind = "zaaktype"
	KindStatustype           Kind = "statustype"
	KindResultaattype        Kind = "resultaattype"
	KindEigenschap           Kind = "eigenschap"
	KindRoltype              Kind = "roltype"
	KindZaakobjecttype       Kind = "zaakobjecttype"
	KindInformatieobjecttype Kind = "informatieobjecttype"
	KindInformatieobject     Kind = "enkelvoudiginformatieobject"
	KindGebruiksrechten      Kind = "gebruiksrechten"
	KindZaak                 Kind = "zaak"
	KindBesluit              Kind = "besluit"
	KindObject               Kind = "object"
	KindContactmoment        Kind = "contactmoment"
	KindVerzoek              Kind = "verzoek"
	KindCommunicatiekanaal   Kind = "communicatiekanaal"
	KindSelectielijstklasse  Kind = "resultaat"
)

// requiredFields is the declared shape per kind: a response missing any of
// these is an invalid resource.
var requiredFields = map[Kind][]string{
	KindZaaktype:             {"url", "omschrijving", "catalogus"},
	KindStatustype:           {"url", "zaaktype", "isEindstatus"},
	KindResultaattype:        {"url", "zaaktype", "archiefnominatie", "brondatumArchiefprocedure"},
	KindEigenschap:           {"url", "zaaktype", "naam"},
	KindRoltype:              {"url", "zaaktype", "omschrijving", "omschrijvingGeneriek"},
	KindZaakobjecttype:       {"url", "zaaktype"},
	KindInformatieobjecttype: {"url", "omschrijving"},
	KindInformatieobject:     {"url", "identificatie", "informatieobjecttype", "status", "locked"},
	KindGebruiksrechten:      {"url", "informatieobject"},
	KindZaak:                 {"url", "identificatie", "zaaktype", "startdatum"},
	KindBesluit:              {"url", "zaak", "ingangsdatum"},
	KindObject:               {"url"},
	KindContactmoment:        {"url"},
	KindVerzoek:              {"url"},
	KindCommunicatiekanaal:   {"url", "naam"},
	KindSelectielijstklasse:  {"url", "procesType", "nummer"},
}

// ValidateShape checks the per-kind required fields on a decoded body.
// It returns the missing field names.
func ValidateShape(kind Kind, body map[string]any) []string {
	var missing []string
	for _, field := range requiredFields[kind] {
		if _, ok := body[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}
