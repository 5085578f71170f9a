package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/zgw"
)

func TestAfsluitenCreatesResultaatAndStatus(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	result, err := e.svc.Afsluiten(adminCtx(), zaak.UUID, AfsluitenInput{
		Resultaat: &models.Resultaat{Resultaattype: testResultaattype},
		Status: &models.Status{
			Statustype:       testEindStatustype,
			DatumStatusGezet: e.now,
		},
	})
	require.NoError(t, err)

	require.NotNil(t, result.Zaak.Einddatum)
	assert.Equal(t, "2018-10-18", result.Zaak.Einddatum.String())
	assert.Equal(t, zgw.ArchiefnominatieVernietigen, result.Zaak.Archiefnominatie)
	require.NotNil(t, result.Zaak.Archiefactiedatum)
	assert.Equal(t, "2028-10-18", result.Zaak.Archiefactiedatum.String())

	assert.Equal(t, testResultaattype, result.Resultaat.Resultaattype)
	assert.Equal(t, testEindStatustype, result.Status.Statustype)

	// All three rows committed.
	stored, err := e.svc.GetZaak(adminCtx(), zaak.UUID)
	require.NoError(t, err)
	require.NotNil(t, stored.Einddatum)
	_, err = e.store.GetResultaatByZaak(adminCtx(), zaak.UUID)
	require.NoError(t, err)
	n, err := e.store.CountStatussen(adminCtx(), zaak.UUID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAfsluitenRequiresEindstatus(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	_, err := e.svc.Afsluiten(adminCtx(), zaak.UUID, AfsluitenInput{
		Resultaat: &models.Resultaat{Resultaattype: testResultaattype},
		Status: &models.Status{
			Statustype:       testStatustype,
			DatumStatusGezet: e.now,
		},
	})
	requireCode(t, err, domainerrors.CodeEindstatusRequired)
}

func TestAfsluitenWithoutResultaat(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	_, err := e.svc.Afsluiten(adminCtx(), zaak.UUID, AfsluitenInput{
		Status: &models.Status{
			Statustype:       testEindStatustype,
			DatumStatusGezet: e.now,
		},
	})
	requireCode(t, err, domainerrors.CodeResultaatOntbreekt)

	// Nothing committed.
	n, err := e.store.CountStatussen(adminCtx(), zaak.UUID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAfsluitenReusesExistingResultaat(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	ctx := adminCtx()

	existing, err := e.svc.CreateResultaat(ctx, &models.Resultaat{
		Zaak:          zaak.UUID,
		Resultaattype: testResultaattype,
	})
	require.NoError(t, err)

	t.Run("providing a second resultaat is rejected", func(t *testing.T) {
		_, err := e.svc.Afsluiten(ctx, zaak.UUID, AfsluitenInput{
			Resultaat: &models.Resultaat{Resultaattype: testResultaattype},
			Status: &models.Status{
				Statustype:       testEindStatustype,
				DatumStatusGezet: e.now,
			},
		})
		requireCode(t, err, domainerrors.CodeInvalid)
	})

	result, err := e.svc.Afsluiten(ctx, zaak.UUID, AfsluitenInput{
		Status: &models.Status{
			Statustype:       testEindStatustype,
			DatumStatusGezet: e.now,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, existing.UUID, result.Resultaat.UUID)
}

func TestAfsluitenWithZaakUpdate(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	updated := *zaak
	updated.Toelichting = "afgerond na inspectie"
	result, err := e.svc.Afsluiten(adminCtx(), zaak.UUID, AfsluitenInput{
		Zaak:      &updated,
		Resultaat: &models.Resultaat{Resultaattype: testResultaattype},
		Status: &models.Status{
			Statustype:       testEindStatustype,
			DatumStatusGezet: e.now,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "afgerond na inspectie", result.Zaak.Toelichting)
	require.NotNil(t, result.Zaak.Einddatum)

	t.Run("immutable fields stay guarded", func(t *testing.T) {
		other := e.newZaak(t)
		mutated := *other
		mutated.Zaaktype = "http://testserver/catalogi/api/v1/zaaktypen/other"
		_, err := e.svc.Afsluiten(adminCtx(), other.UUID, AfsluitenInput{
			Zaak:      &mutated,
			Resultaat: &models.Resultaat{Resultaattype: testResultaattype},
			Status: &models.Status{
				Statustype:       testEindStatustype,
				DatumStatusGezet: e.now,
			},
		})
		requireCode(t, err, domainerrors.CodeImmutableField)
	})
}

func TestAfsluitenListFiltersStillApply(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	_, err := e.svc.Afsluiten(adminCtx(), zaak.UUID, AfsluitenInput{
		Resultaat: &models.Resultaat{Resultaattype: testResultaattype},
		Status: &models.Status{
			Statustype:       testEindStatustype,
			DatumStatusGezet: e.now,
		},
	})
	require.NoError(t, err)

	open := false
	listing, err := e.svc.ListZaken(adminCtx(), store.ZaakFilter{EinddatumSet: &open})
	require.NoError(t, err)
	assert.Empty(t, listing.Items)

	closed := true
	listing, err = e.svc.ListZaken(adminCtx(), store.ZaakFilter{EinddatumSet: &closed})
	require.NoError(t, err)
	assert.Len(t, listing.Items, 1)
}
