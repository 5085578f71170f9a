package autorisaties

import (
	"context"
	"fmt"

	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/zgw"
)

// CatalogusExpander resolves a catalogus to the zaaktype URLs it holds, so a
// catalogus-wide grant can expand into per-zaaktype grants. Only locally
// registered zaaktypen are covered.
type CatalogusExpander interface {
	ZaaktypenByCatalogus(ctx context.Context, catalogusURL string) ([]string, error)
}

// Grants is the effective authorization of one application for one scope:
// either everything, or a confidentiality ceiling per zaaktype URL.
type Grants struct {
	All      bool
	Ceilings map[string]zgw.VertrouwelijkheidAanduiding
}

// Allows reports whether a case with the given zaaktype and classification
// falls within the grants.
func (g Grants) Allows(zaaktypeURL string, va zgw.VertrouwelijkheidAanduiding) bool {
	if g.All {
		return true
	}
	ceiling, ok := g.Ceilings[zaaktypeURL]
	if !ok {
		return false
	}
	return va.AtMost(ceiling)
}

// Filter computes effective grants and enforces them per row.
type Filter struct {
	expander CatalogusExpander
}

func NewFilter(expander CatalogusExpander) *Filter {
	return &Filter{expander: expander}
}

func maxCeiling(a, b zgw.VertrouwelijkheidAanduiding) zgw.VertrouwelijkheidAanduiding {
	if b.Order() > a.Order() {
		return b
	}
	return a
}

// GrantsFor expands the application's grants for a scope. Catalogus-wide
// grants are unfolded via the expander; overlapping grants on the same
// zaaktype keep the loosest ceiling.
func (f *Filter) GrantsFor(ctx context.Context, app *Applicatie, scope string) (Grants, error) {
	if app == nil {
		return Grants{}, nil
	}
	if app.HeeftAlleAutorisaties {
		return Grants{All: true}, nil
	}

	ceilings := make(map[string]zgw.VertrouwelijkheidAanduiding)
	for _, aut := range app.Autorisaties {
		if aut.Component != ComponentZaken || !scopeIn(aut.Scopes, scope) {
			continue
		}
		ceilings[aut.Zaaktype] = maxCeiling(ceilings[aut.Zaaktype], aut.MaxVertrouwelijkheidaanduiding)
	}
	for _, aut := range app.CatalogusAutorisaties {
		if aut.Component != ComponentZaken || !scopeIn(aut.Scopes, scope) {
			continue
		}
		zaaktypen, err := f.expander.ZaaktypenByCatalogus(ctx, aut.Catalogus)
		if err != nil {
			return Grants{}, fmt.Errorf("expand catalogusautorisatie %s: %w", aut.Catalogus, err)
		}
		for _, zt := range zaaktypen {
			ceilings[zt] = maxCeiling(ceilings[zt], aut.MaxVertrouwelijkheidaanduiding)
		}
	}
	return Grants{Ceilings: ceilings}, nil
}

// CheckAccess enforces a scope on one case. A case outside the grants is
// denied with 403, also when it exists; existence is not leaked via 404.
func (f *Filter) CheckAccess(ctx context.Context, app *Applicatie, scope, zaaktypeURL string, va zgw.VertrouwelijkheidAanduiding) error {
	grants, err := f.GrantsFor(ctx, app, scope)
	if err != nil {
		return err
	}
	if !grants.Allows(zaaktypeURL, va) {
		return domainerrors.Newf(domainerrors.CodePermissionDenied,
			"Je hebt niet de vereiste scope %s voor deze zaak.", scope)
	}
	return nil
}

// CheckScope enforces a scope without binding it to a case, for operations
// such as reserving an identification.
func (f *Filter) CheckScope(app *Applicatie, scope string) error {
	if app == nil || !app.HasScope(scope) {
		return domainerrors.Newf(domainerrors.CodePermissionDenied,
			"Je hebt niet de vereiste scope %s.", scope)
	}
	return nil
}
