package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zaakregister/internal/autorisaties"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/documenten"
	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/zgw"
)

func TestCreateStatusRequiresDatum(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	_, err := e.svc.CreateStatus(adminCtx(), &models.Status{
		Zaak:       zaak.UUID,
		Statustype: testStatustype,
	})
	requireCode(t, err, domainerrors.CodeRequired)

	_, err = e.svc.CreateStatus(adminCtx(), &models.Status{
		Zaak:             zaak.UUID,
		Statustype:       testStatustype,
		DatumStatusGezet: e.now.Add(time.Hour),
	})
	requireCode(t, err, domainerrors.CodeDateInFuture)
}

func TestCreateStatusZaaktypeMismatch(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	other := "http://testserver/catalogi/api/v1/statustypen/other"
	e.catalog.statustypen[other] = &catalogi.Statustype{
		URL:      other,
		Zaaktype: "http://testserver/catalogi/api/v1/zaaktypen/other",
	}

	_, err := e.svc.CreateStatus(adminCtx(), &models.Status{
		Zaak:             zaak.UUID,
		Statustype:       other,
		DatumStatusGezet: e.now,
	})
	requireCode(t, err, domainerrors.CodeZaaktypeMismatch)
}

func TestEindstatusClosesZaak(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	ctx := adminCtx()

	_, err := e.svc.CreateResultaat(ctx, &models.Resultaat{
		Zaak:          zaak.UUID,
		Resultaattype: testResultaattype,
	})
	require.NoError(t, err)

	_, err = e.svc.CreateStatus(ctx, &models.Status{
		Zaak:             zaak.UUID,
		Statustype:       testEindStatustype,
		DatumStatusGezet: time.Date(2018, 10, 18, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	closed, err := e.svc.GetZaak(ctx, zaak.UUID)
	require.NoError(t, err)
	require.NotNil(t, closed.Einddatum)
	assert.Equal(t, "2018-10-18", closed.Einddatum.String())
	assert.Equal(t, zgw.ArchiefnominatieVernietigen, closed.Archiefnominatie)
	require.NotNil(t, closed.Archiefactiedatum)
	assert.Equal(t, "2028-10-18", closed.Archiefactiedatum.String())
	require.NotNil(t, closed.StartdatumBewaartermijn)
	assert.Equal(t, "2018-10-18", closed.StartdatumBewaartermijn.String())
}

func TestEinddatumUsesConfiguredTimezone(t *testing.T) {
	e := newEnv(t)
	e.now = time.Date(2018, 10, 19, 12, 0, 0, 0, time.UTC)
	zaak := e.newZaak(t)
	ctx := adminCtx()

	_, err := e.svc.CreateResultaat(ctx, &models.Resultaat{
		Zaak:          zaak.UUID,
		Resultaattype: testResultaattype,
	})
	require.NoError(t, err)

	// 23:30 UTC is already the next day in Amsterdam.
	_, err = e.svc.CreateStatus(ctx, &models.Status{
		Zaak:             zaak.UUID,
		Statustype:       testEindStatustype,
		DatumStatusGezet: time.Date(2018, 10, 18, 23, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	closed, err := e.svc.GetZaak(ctx, zaak.UUID)
	require.NoError(t, err)
	require.NotNil(t, closed.Einddatum)
	assert.Equal(t, "2018-10-19", closed.Einddatum.String())
}

func TestEindstatusWithoutResultaat(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	_, err := e.svc.CreateStatus(adminCtx(), &models.Status{
		Zaak:             zaak.UUID,
		Statustype:       testEindStatustype,
		DatumStatusGezet: e.now,
	})
	requireCode(t, err, domainerrors.CodeResultaatOntbreekt)
}

func TestClosurePreconditions(t *testing.T) {
	e := newEnv(t)
	iotURL := "http://testserver/catalogi/api/v1/informatieobjecttypen/1"
	e.catalog.ztIot[testZaaktype] = map[string]bool{iotURL: true}

	newCase := func(t *testing.T, eio *documenten.EnkelvoudigInformatieObject) *models.Zaak {
		zaak := e.newZaak(t)
		e.documents.eios[eio.URL] = eio
		_, err := e.svc.CreateZaakInformatieObject(adminCtx(), &models.ZaakInformatieObject{
			Zaak:             zaak.UUID,
			Informatieobject: eio.URL,
		})
		require.NoError(t, err)
		_, err = e.svc.CreateResultaat(adminCtx(), &models.Resultaat{
			Zaak:          zaak.UUID,
			Resultaattype: testResultaattype,
		})
		require.NoError(t, err)
		return zaak
	}
	closeCase := func(zaak *models.Zaak) error {
		_, err := e.svc.CreateStatus(adminCtx(), &models.Status{
			Zaak:             zaak.UUID,
			Statustype:       testEindStatustype,
			DatumStatusGezet: e.now,
		})
		return err
	}

	t.Run("locked informatieobject blocks closing", func(t *testing.T) {
		gebruiksrecht := false
		zaak := newCase(t, &documenten.EnkelvoudigInformatieObject{
			URL:                    "http://documenten/api/v1/enkelvoudiginformatieobjecten/locked",
			Informatieobjecttype:   iotURL,
			Locked:                 true,
			IndicatieGebruiksrecht: &gebruiksrecht,
		})
		requireCode(t, closeCase(zaak), domainerrors.CodeIOLocked)
	})

	t.Run("unset indicatieGebruiksrecht blocks closing", func(t *testing.T) {
		zaak := newCase(t, &documenten.EnkelvoudigInformatieObject{
			URL:                  "http://documenten/api/v1/enkelvoudiginformatieobjecten/unset",
			Informatieobjecttype: iotURL,
		})
		requireCode(t, closeCase(zaak), domainerrors.CodeGebruiksrechtUnset)
	})

	t.Run("settled informatieobject allows closing", func(t *testing.T) {
		gebruiksrecht := false
		zaak := newCase(t, &documenten.EnkelvoudigInformatieObject{
			URL:                    "http://documenten/api/v1/enkelvoudiginformatieobjecten/ok",
			Informatieobjecttype:   iotURL,
			IndicatieGebruiksrecht: &gebruiksrecht,
		})
		require.NoError(t, closeCase(zaak))
	})
}

func TestReopenClearsArchiveDerivation(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	closed := e.closeZaak(t, zaak)
	require.NotNil(t, closed.Einddatum)

	t.Run("needs the heropenen scope", func(t *testing.T) {
		ctx := scopedCtx(testZaaktype, zgw.VAZeerGeheim,
			autorisaties.ScopeZakenLezen, autorisaties.ScopeStatussenToevoegen)
		_, err := e.svc.CreateStatus(ctx, &models.Status{
			Zaak:             zaak.UUID,
			Statustype:       testStatustype,
			DatumStatusGezet: e.now.Add(-time.Minute),
		})
		requireCode(t, err, domainerrors.CodePermissionDenied)
	})

	ctx := scopedCtx(testZaaktype, zgw.VAZeerGeheim,
		autorisaties.ScopeZakenLezen, autorisaties.ScopeZakenHeropenen)
	_, err := e.svc.CreateStatus(ctx, &models.Status{
		Zaak:             zaak.UUID,
		Statustype:       testStatustype,
		DatumStatusGezet: e.now.Add(-time.Minute),
	})
	require.NoError(t, err)

	reopened, err := e.svc.GetZaak(adminCtx(), zaak.UUID)
	require.NoError(t, err)
	assert.Nil(t, reopened.Einddatum)
	assert.Empty(t, reopened.Archiefnominatie)
	assert.Nil(t, reopened.Archiefactiedatum)
}

func TestInitialStatusWithAanmakenScope(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	ctx := scopedCtx(testZaaktype, zgw.VAZeerGeheim,
		autorisaties.ScopeZakenLezen, autorisaties.ScopeZakenAanmaken)

	// First status: the create scope suffices.
	_, err := e.svc.CreateStatus(ctx, &models.Status{
		Zaak:             zaak.UUID,
		Statustype:       testStatustype,
		DatumStatusGezet: e.now.Add(-time.Hour),
	})
	require.NoError(t, err)

	// Second status needs statussen.toevoegen.
	_, err = e.svc.CreateStatus(ctx, &models.Status{
		Zaak:             zaak.UUID,
		Statustype:       testStatustype,
		DatumStatusGezet: e.now.Add(-time.Minute),
	})
	requireCode(t, err, domainerrors.CodePermissionDenied)
}

func TestDuplicateDatumStatusGezet(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	gezet := e.now.Add(-time.Hour)

	_, err := e.svc.CreateStatus(adminCtx(), &models.Status{
		Zaak:             zaak.UUID,
		Statustype:       testStatustype,
		DatumStatusGezet: gezet,
	})
	require.NoError(t, err)

	_, err = e.svc.CreateStatus(adminCtx(), &models.Status{
		Zaak:             zaak.UUID,
		Statustype:       testStatustype,
		DatumStatusGezet: gezet,
	})
	requireCode(t, err, domainerrors.CodeInvalid)
}

func TestStatusMarksLatest(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	ctx := adminCtx()

	first, err := e.svc.CreateStatus(ctx, &models.Status{
		Zaak:             zaak.UUID,
		Statustype:       testStatustype,
		DatumStatusGezet: e.now.Add(-2 * time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, first.IndicatieLaatstGezetteStatus)

	second, err := e.svc.CreateStatus(ctx, &models.Status{
		Zaak:             zaak.UUID,
		Statustype:       testStatustype,
		DatumStatusGezet: e.now.Add(-time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, second.IndicatieLaatstGezetteStatus)

	// The older status loses the flag once a newer one is set.
	older, err := e.svc.GetStatus(ctx, first.UUID)
	require.NoError(t, err)
	assert.False(t, older.IndicatieLaatstGezetteStatus)

	listing, err := e.svc.ListStatussen(ctx, store.ChildFilter{Zaak: &zaak.UUID})
	require.NoError(t, err)
	require.Len(t, listing.Items, 2)
	for _, status := range listing.Items {
		assert.Equal(t, status.UUID == second.UUID, status.IndicatieLaatstGezetteStatus)
	}
}
