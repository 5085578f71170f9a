package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zaakregister/internal/autorisaties"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/documenten"
	"zaakregister/internal/notificaties"
	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/types"
	"zaakregister/pkg/zgw"
)

func TestCreateZaakDefaults(t *testing.T) {
	e := newEnv(t)

	zaak := e.newZaak(t)

	assert.Equal(t, "ZAAK-2018-0000000001", zaak.Identificatie.Identificatie)
	assert.Equal(t, zgw.VAOpenbaar, zaak.Vertrouwelijkheidaanduiding)
	assert.Equal(t, zgw.BetalingNvt, zaak.Betalingsindicatie)
	assert.Equal(t, zgw.ArchiefstatusNogTeArchiveren, zaak.Archiefstatus)
	assert.Equal(t, "2018-10-18", zaak.Registratiedatum.String())
	assert.Nil(t, zaak.Einddatum)

	require.Len(t, e.publisher.Messages, 1)
	msg := e.publisher.Messages[0]
	assert.Equal(t, "zaken", msg.Kanaal)
	assert.Equal(t, notificaties.ActieCreate, msg.Actie)
	assert.Equal(t, testZaaktype, msg.Kenmerken["zaaktype"])
}

func TestCreateZaakValidation(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name   string
		mutate func(*models.Zaak)
		code   domainerrors.Code
	}{
		{
			name:   "invalid rsin",
			mutate: func(z *models.Zaak) { z.Identificatie.Bronorganisatie = "123456789" },
			code:   domainerrors.CodeInvalid,
		},
		{
			name:   "missing startdatum",
			mutate: func(z *models.Zaak) { z.Startdatum = types.Date{} },
			code:   domainerrors.CodeRequired,
		},
		{
			name: "betaaldatum with nvt indication",
			mutate: func(z *models.Zaak) {
				betaald := time.Date(2018, 10, 1, 0, 0, 0, 0, time.UTC)
				z.LaatsteBetaaldatum = &betaald
			},
			code: domainerrors.CodeBetalingNvt,
		},
		{
			name: "betaaldatum in the future",
			mutate: func(z *models.Zaak) {
				betaald := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
				z.Betalingsindicatie = zgw.BetalingGeheel
				z.LaatsteBetaaldatum = &betaald
			},
			code: domainerrors.CodeDateInFuture,
		},
		{
			name: "overig relation without overigeRelatie",
			mutate: func(z *models.Zaak) {
				z.RelevanteAndereZaken = []models.RelevanteZaakRelatie{{
					URL:         "http://elders/zaken/123",
					AardRelatie: zgw.AardRelatieOverig,
				}}
			},
			code: domainerrors.CodeOverigeRelatieRequired,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			zaak := &models.Zaak{
				Identificatie: models.ZaakIdentificatie{Bronorganisatie: testRSIN},
				Zaaktype:      testZaaktype,
				Startdatum:    types.NewDate(2018, time.October, 1),
			}
			tc.mutate(zaak)
			_, err := e.svc.CreateZaak(adminCtx(), zaak)
			requireCode(t, err, tc.code)
		})
	}
}

func TestCreateZaakConceptZaaktype(t *testing.T) {
	e := newEnv(t)
	e.catalog.zaaktypen[testZaaktype].Concept = true

	_, err := e.svc.CreateZaak(adminCtx(), &models.Zaak{
		Identificatie: models.ZaakIdentificatie{Bronorganisatie: testRSIN},
		Zaaktype:      testZaaktype,
		Startdatum:    types.NewDate(2018, time.October, 1),
	})
	requireCode(t, err, domainerrors.CodeInvalid)
}

func TestCreateZaakDuplicateIdentificatie(t *testing.T) {
	e := newEnv(t)
	e.newZaak(t, func(z *models.Zaak) { z.Identificatie.Identificatie = "ZAAK-X" })

	_, err := e.svc.CreateZaak(adminCtx(), &models.Zaak{
		Identificatie: models.ZaakIdentificatie{Bronorganisatie: testRSIN, Identificatie: "ZAAK-X"},
		Zaaktype:      testZaaktype,
		Startdatum:    types.NewDate(2018, time.October, 1),
	})
	requireCode(t, err, domainerrors.CodeIdentificatieNietUniek)
}

func TestReserveIdentificatieSequence(t *testing.T) {
	e := newEnv(t)
	ctx := adminCtx()

	first, err := e.svc.ReserveIdentificatie(ctx, testRSIN)
	require.NoError(t, err)
	second, err := e.svc.ReserveIdentificatie(ctx, testRSIN)
	require.NoError(t, err)

	assert.Equal(t, "ZAAK-2018-0000000001", first)
	assert.Equal(t, "ZAAK-2018-0000000002", second)

	_, err = e.svc.ReserveIdentificatie(ctx, "123456789")
	requireCode(t, err, domainerrors.CodeInvalid)
}

func TestCreateZaakClaimsReservation(t *testing.T) {
	e := newEnv(t)
	ctx := adminCtx()

	reserved, err := e.svc.ReserveIdentificatie(ctx, testRSIN)
	require.NoError(t, err)

	zaak := e.newZaak(t, func(z *models.Zaak) { z.Identificatie.Identificatie = reserved })
	assert.Equal(t, reserved, zaak.Identificatie.Identificatie)

	// The claimed reservation no longer shields a second create.
	_, err = e.svc.CreateZaak(ctx, &models.Zaak{
		Identificatie: models.ZaakIdentificatie{Bronorganisatie: testRSIN, Identificatie: reserved},
		Zaaktype:      testZaaktype,
		Startdatum:    types.NewDate(2018, time.October, 1),
	})
	requireCode(t, err, domainerrors.CodeIdentificatieNietUniek)
}

func TestUpdateZaakImmutableFields(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	updated := *zaak
	updated.Zaaktype = "http://testserver/catalogi/api/v1/zaaktypen/other"
	_, err := e.svc.UpdateZaak(adminCtx(), &updated, false)
	requireCode(t, err, domainerrors.CodeImmutableField)
}

func TestUpdateClosedZaakNeedsForcedScope(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	closed := e.closeZaak(t, zaak)

	updated := *closed
	updated.Toelichting = "aangepast"

	ctx := scopedCtx(testZaaktype, zgw.VAZeerGeheim,
		autorisaties.ScopeZakenLezen, autorisaties.ScopeZakenBijwerken)
	_, err := e.svc.UpdateZaak(ctx, &updated, true)
	requireCode(t, err, domainerrors.CodePermissionDenied)

	forced := scopedCtx(testZaaktype, zgw.VAZeerGeheim,
		autorisaties.ScopeZakenLezen, autorisaties.ScopeZakenGeforceerdBijwerken)
	result, err := e.svc.UpdateZaak(forced, &updated, true)
	require.NoError(t, err)
	assert.Equal(t, "aangepast", result.Toelichting)
	// Einddatum is server-managed and survives the update.
	require.NotNil(t, result.Einddatum)
}

func TestGetZaakOutsideGrantsIsDenied(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t, func(z *models.Zaak) {
		z.Vertrouwelijkheidaanduiding = zgw.VAVertrouwelijk
	})

	// Ceiling below the case classification: 403, not 404.
	ctx := scopedCtx(testZaaktype, zgw.VAOpenbaar, autorisaties.ScopeZakenLezen)
	_, err := e.svc.GetZaak(ctx, zaak.UUID)
	requireCode(t, err, domainerrors.CodePermissionDenied)
}

func TestOpschortingLatchIsMonotone(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t, func(z *models.Zaak) {
		z.Opschorting = models.Opschorting{Indicatie: true, Reden: "wachten op stukken"}
	})
	require.True(t, zaak.Opschorting.EerdereOpschorting)

	updated := *zaak
	updated.Opschorting = models.Opschorting{Indicatie: false, EerdereOpschorting: false}
	result, err := e.svc.UpdateZaak(adminCtx(), &updated, true)
	require.NoError(t, err)
	assert.False(t, result.Opschorting.Indicatie)
	assert.True(t, result.Opschorting.EerdereOpschorting, "latch must not reset")
}

func TestHoofdzaakValidation(t *testing.T) {
	e := newEnv(t)

	deelzaaktype := "http://testserver/catalogi/api/v1/zaaktypen/8e7b9e6a-0001-4a8a-9d6b-00000000000d"
	e.catalog.zaaktypen[deelzaaktype] = &catalogi.Zaaktype{URL: deelzaaktype}
	e.catalog.zaaktypen[testZaaktype].Deelzaaktypen = []string{deelzaaktype}

	parent := e.newZaak(t)
	child := e.newZaak(t, func(z *models.Zaak) {
		z.Zaaktype = deelzaaktype
		z.Hoofdzaak = e.svc.ZaakURL(parent.UUID)
	})
	assert.NotEmpty(t, child.Hoofdzaak)

	t.Run("deelzaak cannot be hoofdzaak", func(t *testing.T) {
		_, err := e.svc.CreateZaak(adminCtx(), &models.Zaak{
			Identificatie: models.ZaakIdentificatie{Bronorganisatie: testRSIN},
			Zaaktype:      deelzaaktype,
			Hoofdzaak:     e.svc.ZaakURL(child.UUID),
			Startdatum:    types.NewDate(2018, time.October, 1),
		})
		requireCode(t, err, domainerrors.CodeDeelzaakAlsHoofdzaak)
	})

	t.Run("zaaktype must be declared deelzaaktype", func(t *testing.T) {
		_, err := e.svc.CreateZaak(adminCtx(), &models.Zaak{
			Identificatie: models.ZaakIdentificatie{Bronorganisatie: testRSIN},
			Zaaktype:      testZaaktype,
			Hoofdzaak:     e.svc.ZaakURL(parent.UUID),
			Startdatum:    types.NewDate(2018, time.October, 1),
		})
		requireCode(t, err, domainerrors.CodeInvalidDeelzaaktype)
	})

	t.Run("deelzaken lists the children", func(t *testing.T) {
		deelzaken, err := e.svc.Deelzaken(adminCtx(), parent)
		require.NoError(t, err)
		require.Len(t, deelzaken, 1)
		assert.Equal(t, child.UUID, deelzaken[0].UUID)
	})
}

func TestArchiefstatusTransitionGuard(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	closed := e.closeZaak(t, zaak)

	eioURL := "http://documenten/api/v1/enkelvoudiginformatieobjecten/1"
	iotURL := "http://testserver/catalogi/api/v1/informatieobjecttypen/1"
	gebruiksrecht := true
	e.documents.eios[eioURL] = &documenten.EnkelvoudigInformatieObject{
		URL:                    eioURL,
		Informatieobjecttype:   iotURL,
		Status:                 documenten.StatusDefinitief,
		IndicatieGebruiksrecht: &gebruiksrecht,
	}
	e.catalog.ztIot[testZaaktype] = map[string]bool{iotURL: true}
	_, err := e.svc.CreateZaakInformatieObject(adminCtx(), &models.ZaakInformatieObject{
		Zaak:             closed.UUID,
		Informatieobject: eioURL,
	})
	require.NoError(t, err)

	updated := *closed
	updated.Archiefstatus = zgw.ArchiefstatusGearchiveerd
	_, err = e.svc.UpdateZaak(adminCtx(), &updated, true)
	requireCode(t, err, domainerrors.CodeDocumentsNotArchived)

	e.documents.eios[eioURL].Status = documenten.StatusGearchiveerd
	result, err := e.svc.UpdateZaak(adminCtx(), &updated, true)
	require.NoError(t, err)
	assert.Equal(t, zgw.ArchiefstatusGearchiveerd, result.Archiefstatus)
}

func TestListZakenAppliesGrants(t *testing.T) {
	e := newEnv(t)
	e.newZaak(t)
	e.newZaak(t, func(z *models.Zaak) {
		z.Vertrouwelijkheidaanduiding = zgw.VAGeheim
	})

	ctx := scopedCtx(testZaaktype, zgw.VAIntern, autorisaties.ScopeZakenLezen)
	listing, err := e.svc.ListZaken(ctx, store.ZaakFilter{})
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, zgw.VAOpenbaar, listing.Items[0].Vertrouwelijkheidaanduiding)
}
