// Package autorisaties implements the per-request authorization model: an
// application identified by its JWT client_id carries scope grants per
// zaaktype with a confidentiality ceiling.
package autorisaties

import (
	"github.com/google/uuid"

	"zaakregister/pkg/zgw"
)

// ComponentZaken is the component label grants must name to apply here.
const ComponentZaken = "zrc"

// Autorisatie grants scopes on one zaaktype up to a confidentiality ceiling.
type Autorisatie struct {
	Component                      string
	Scopes                         []string
	Zaaktype                       string
	MaxVertrouwelijkheidaanduiding zgw.VertrouwelijkheidAanduiding
}

// CatalogusAutorisatie grants scopes on every zaaktype sharing a catalogus.
// It expands into synthetic Autorisatie entries at filter time.
type CatalogusAutorisatie struct {
	Component                      string
	Scopes                         []string
	Catalogus                      string
	MaxVertrouwelijkheidaanduiding zgw.VertrouwelijkheidAanduiding
}

// Applicatie is the calling application looked up by JWT client_id.
type Applicatie struct {
	UUID                  uuid.UUID
	ClientIDs             []string
	Label                 string
	HeeftAlleAutorisaties bool
	Autorisaties          []Autorisatie
	CatalogusAutorisaties []CatalogusAutorisatie
}

func scopeIn(scopes []string, scope string) bool {
	for _, s := range scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// HasScope reports whether any grant of the application carries the scope,
// regardless of zaaktype. Used for operations that are not bound to a case,
// such as reserving an identification.
func (app *Applicatie) HasScope(scope string) bool {
	if app.HeeftAlleAutorisaties {
		return true
	}
	for _, aut := range app.Autorisaties {
		if aut.Component == ComponentZaken && scopeIn(aut.Scopes, scope) {
			return true
		}
	}
	for _, aut := range app.CatalogusAutorisaties {
		if aut.Component == ComponentZaken && scopeIn(aut.Scopes, scope) {
			return true
		}
	}
	return false
}
