package autorisaties

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/zgw"
)

type staticExpander map[string][]string

func (e staticExpander) ZaaktypenByCatalogus(_ context.Context, catalogusURL string) ([]string, error) {
	return e[catalogusURL], nil
}

const (
	ztMelding    = "https://catalogi.example.nl/api/v1/zaaktypen/7b1e9f2a-3c4d-4e5f-8a9b-0c1d2e3f4a5b"
	ztVergunning = "https://catalogi.example.nl/api/v1/zaaktypen/1a2b3c4d-5e6f-4a8b-9c0d-1e2f3a4b5c6d"
	catalogusURL = "https://catalogi.example.nl/api/v1/catalogussen/9f8e7d6c-5b4a-4392-8170-6f5e4d3c2b1a"
)

func TestGrantsForScopedApplication(t *testing.T) {
	app := &Applicatie{
		Autorisaties: []Autorisatie{
			{
				Component:                      ComponentZaken,
				Scopes:                         []string{ScopeZakenLezen, ScopeZakenBijwerken},
				Zaaktype:                       ztMelding,
				MaxVertrouwelijkheidaanduiding: zgw.VAZaakvertrouwelijk,
			},
			{
				Component:                      "drc",
				Scopes:                         []string{ScopeZakenLezen},
				Zaaktype:                       ztVergunning,
				MaxVertrouwelijkheidaanduiding: zgw.VAZeerGeheim,
			},
		},
	}

	f := NewFilter(staticExpander{})
	grants, err := f.GrantsFor(context.Background(), app, ScopeZakenLezen)
	require.NoError(t, err)

	assert.False(t, grants.All)
	assert.True(t, grants.Allows(ztMelding, zgw.VAOpenbaar))
	assert.True(t, grants.Allows(ztMelding, zgw.VAZaakvertrouwelijk))
	assert.False(t, grants.Allows(ztMelding, zgw.VAVertrouwelijk), "above the ceiling")
	assert.False(t, grants.Allows(ztVergunning, zgw.VAOpenbaar), "grant is for another component")
}

func TestGrantsForAlleAutorisaties(t *testing.T) {
	app := &Applicatie{HeeftAlleAutorisaties: true}

	f := NewFilter(staticExpander{})
	grants, err := f.GrantsFor(context.Background(), app, ScopeZakenVerwijderen)
	require.NoError(t, err)

	assert.True(t, grants.All)
	assert.True(t, grants.Allows(ztVergunning, zgw.VAZeerGeheim))
}

func TestGrantsForCatalogusExpansion(t *testing.T) {
	app := &Applicatie{
		CatalogusAutorisaties: []CatalogusAutorisatie{{
			Component:                      ComponentZaken,
			Scopes:                         []string{ScopeZakenLezen},
			Catalogus:                      catalogusURL,
			MaxVertrouwelijkheidaanduiding: zgw.VAIntern,
		}},
	}

	f := NewFilter(staticExpander{catalogusURL: {ztMelding, ztVergunning}})
	grants, err := f.GrantsFor(context.Background(), app, ScopeZakenLezen)
	require.NoError(t, err)

	assert.True(t, grants.Allows(ztMelding, zgw.VAIntern))
	assert.True(t, grants.Allows(ztVergunning, zgw.VAOpenbaar))
	assert.False(t, grants.Allows(ztVergunning, zgw.VAZaakvertrouwelijk))
}

func TestGrantsOverlapKeepsLoosestCeiling(t *testing.T) {
	app := &Applicatie{
		Autorisaties: []Autorisatie{{
			Component:                      ComponentZaken,
			Scopes:                         []string{ScopeZakenLezen},
			Zaaktype:                       ztMelding,
			MaxVertrouwelijkheidaanduiding: zgw.VAGeheim,
		}},
		CatalogusAutorisaties: []CatalogusAutorisatie{{
			Component:                      ComponentZaken,
			Scopes:                         []string{ScopeZakenLezen},
			Catalogus:                      catalogusURL,
			MaxVertrouwelijkheidaanduiding: zgw.VAOpenbaar,
		}},
	}

	f := NewFilter(staticExpander{catalogusURL: {ztMelding}})
	grants, err := f.GrantsFor(context.Background(), app, ScopeZakenLezen)
	require.NoError(t, err)

	assert.True(t, grants.Allows(ztMelding, zgw.VAGeheim))
}

func TestCheckAccessDenied(t *testing.T) {
	app := &Applicatie{
		Autorisaties: []Autorisatie{{
			Component:                      ComponentZaken,
			Scopes:                         []string{ScopeZakenLezen},
			Zaaktype:                       ztMelding,
			MaxVertrouwelijkheidaanduiding: zgw.VAOpenbaar,
		}},
	}

	f := NewFilter(staticExpander{})

	err := f.CheckAccess(context.Background(), app, ScopeZakenLezen, ztMelding, zgw.VAOpenbaar)
	assert.NoError(t, err)

	err = f.CheckAccess(context.Background(), app, ScopeZakenVerwijderen, ztMelding, zgw.VAOpenbaar)
	assert.True(t, domainerrors.Is(err, domainerrors.CodePermissionDenied))

	err = f.CheckAccess(context.Background(), app, ScopeZakenLezen, ztVergunning, zgw.VAOpenbaar)
	assert.True(t, domainerrors.Is(err, domainerrors.CodePermissionDenied))
}

func TestCheckScope(t *testing.T) {
	app := &Applicatie{
		Autorisaties: []Autorisatie{{
			Component: ComponentZaken,
			Scopes:    []string{ScopeZakenAanmaken},
		}},
	}

	f := NewFilter(staticExpander{})
	assert.NoError(t, f.CheckScope(app, ScopeZakenAanmaken))
	assert.True(t, domainerrors.Is(f.CheckScope(app, ScopeZakenVerwijderen), domainerrors.CodePermissionDenied))
	assert.True(t, domainerrors.Is(f.CheckScope(nil, ScopeZakenLezen), domainerrors.CodePermissionDenied))
}
