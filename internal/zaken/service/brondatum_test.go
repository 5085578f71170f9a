package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zaakregister/internal/besluiten"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/referentie"
	"zaakregister/internal/zaken/models"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/types"
	"zaakregister/pkg/zgw"
)

func resultaattypeWith(procedure catalogi.BrondatumArchiefprocedure) *catalogi.Resultaattype {
	return &catalogi.Resultaattype{
		URL:       testResultaattype,
		Zaaktype:  testZaaktype,
		Brondatum: procedure,
	}
}

func TestBrondatumAfgehandeld(t *testing.T) {
	e := newEnv(t)
	einddatum := types.NewDate(2018, time.October, 18)
	zaak := &models.Zaak{UUID: uuid.New(), Einddatum: &einddatum}

	got, err := e.svc.Brondatum(context.Background(), zaak,
		resultaattypeWith(catalogi.BrondatumArchiefprocedure{Afleidingswijze: zgw.AfleidingAfgehandeld}))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2018-10-18", got.String())
}

func TestBrondatumTermijn(t *testing.T) {
	e := newEnv(t)
	einddatum := types.NewDate(2018, time.October, 18)
	zaak := &models.Zaak{UUID: uuid.New(), Einddatum: &einddatum}

	got, err := e.svc.Brondatum(context.Background(), zaak,
		resultaattypeWith(catalogi.BrondatumArchiefprocedure{
			Afleidingswijze: zgw.AfleidingTermijn,
			Procestermijn:   "P5Y",
		}))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2023-10-18", got.String())

	_, err = e.svc.Brondatum(context.Background(), zaak,
		resultaattypeWith(catalogi.BrondatumArchiefprocedure{Afleidingswijze: zgw.AfleidingTermijn}))
	requireCode(t, err, domainerrors.CodeArchiefactiedatum)
}

func TestBrondatumAnderDatumkenmerk(t *testing.T) {
	e := newEnv(t)
	zaak := &models.Zaak{UUID: uuid.New()}

	got, err := e.svc.Brondatum(context.Background(), zaak,
		resultaattypeWith(catalogi.BrondatumArchiefprocedure{Afleidingswijze: zgw.AfleidingAnderDatumkenmerk}))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBrondatumHoofdzaak(t *testing.T) {
	e := newEnv(t)
	procedure := catalogi.BrondatumArchiefprocedure{Afleidingswijze: zgw.AfleidingHoofdzaak}

	t.Run("without hoofdzaak", func(t *testing.T) {
		got, err := e.svc.Brondatum(context.Background(), &models.Zaak{UUID: uuid.New()},
			resultaattypeWith(procedure))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("local hoofdzaak with einddatum", func(t *testing.T) {
		parent := e.newZaak(t)
		closed := e.closeZaak(t, parent)
		require.NotNil(t, closed.Einddatum)

		zaak := &models.Zaak{UUID: uuid.New(), Hoofdzaak: e.svc.ZaakURL(parent.UUID)}
		got, err := e.svc.Brondatum(adminCtx(), zaak, resultaattypeWith(procedure))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Equal(*closed.Einddatum))
	})

	t.Run("remote hoofdzaak", func(t *testing.T) {
		remoteURL := "http://elders/zaken/api/v1/zaken/42"
		einddatum := types.NewDate(2019, time.March, 1)
		e.peers.zaken[remoteURL] = &referentie.RemoteZaak{URL: remoteURL, Einddatum: &einddatum}

		zaak := &models.Zaak{UUID: uuid.New(), Hoofdzaak: remoteURL}
		got, err := e.svc.Brondatum(context.Background(), zaak, resultaattypeWith(procedure))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "2019-03-01", got.String())
	})
}

func TestBrondatumEigenschap(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	eigenschapURL := "http://testserver/catalogi/api/v1/eigenschappen/1"
	e.catalog.eigenschappen[eigenschapURL] = &catalogi.Eigenschap{
		URL: eigenschapURL, Zaaktype: testZaaktype, Naam: "brondatum",
	}
	_, err := e.svc.CreateZaakEigenschap(adminCtx(), &models.ZaakEigenschap{
		Zaak:       zaak.UUID,
		Eigenschap: eigenschapURL,
		Waarde:     "2019-01-01",
	})
	require.NoError(t, err)

	procedure := catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: zgw.AfleidingEigenschap,
		Datumkenmerk:    "brondatum",
	}
	got, err := e.svc.Brondatum(context.Background(), zaak, resultaattypeWith(procedure))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2019-01-01", got.String())

	t.Run("missing eigenschap yields archive error", func(t *testing.T) {
		procedure.Datumkenmerk = "onbekend"
		_, err := e.svc.Brondatum(context.Background(), zaak, resultaattypeWith(procedure))
		requireCode(t, err, domainerrors.CodeArchiefactiedatum)
	})

	t.Run("nested datumkenmerk reads into JSON waarde", func(t *testing.T) {
		nestedURL := "http://testserver/catalogi/api/v1/eigenschappen/2"
		e.catalog.eigenschappen[nestedURL] = &catalogi.Eigenschap{
			URL: nestedURL, Zaaktype: testZaaktype, Naam: "proces",
		}
		_, err := e.svc.CreateZaakEigenschap(adminCtx(), &models.ZaakEigenschap{
			Zaak:       zaak.UUID,
			Eigenschap: nestedURL,
			Waarde:     `{"afronding": {"datum": "2020-06-15"}}`,
		})
		require.NoError(t, err)

		nested := catalogi.BrondatumArchiefprocedure{
			Afleidingswijze: zgw.AfleidingEigenschap,
			Datumkenmerk:    "proces.afronding.datum",
		}
		got, err := e.svc.Brondatum(context.Background(), zaak, resultaattypeWith(nested))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "2020-06-15", got.String())
	})
}

func TestBrondatumZaakobject(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	procedure := catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: zgw.AfleidingZaakobject,
		Objecttype:      zgw.ObjectOverige,
		Datumkenmerk:    "einddatum",
	}

	t.Run("no matching zaakobjecten", func(t *testing.T) {
		_, err := e.svc.Brondatum(context.Background(), zaak, resultaattypeWith(procedure))
		requireCode(t, err, domainerrors.CodeArchiefactiedatum)
	})

	_, err := e.svc.CreateZaakObject(adminCtx(), &models.ZaakObject{
		Zaak:              zaak.UUID,
		ObjectType:        zgw.ObjectOverige,
		ObjectTypeOverige: "vergunning",
		Identificatie: models.ObjectIdentificatie{
			Overige: &models.OverigeIdentificatie{
				OverigeData: map[string]any{"einddatum": "2019-05-01"},
			},
		},
	})
	require.NoError(t, err)

	remoteObject := "http://objecten/api/v1/objecten/7"
	e.refs.objects[remoteObject] = map[string]any{
		"record": map[string]any{
			"data": map[string]any{"einddatum": "2019-08-01"},
		},
	}
	_, err = e.svc.CreateZaakObject(adminCtx(), &models.ZaakObject{
		Zaak:              zaak.UUID,
		Object:            remoteObject,
		ObjectType:        zgw.ObjectOverige,
		ObjectTypeOverige: "vergunning",
	})
	require.NoError(t, err)

	// The latest attribute date over all matching objects wins.
	got, err := e.svc.Brondatum(context.Background(), zaak, resultaattypeWith(procedure))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2019-08-01", got.String())

	t.Run("missing attribute yields archive error", func(t *testing.T) {
		missing := procedure
		missing.Datumkenmerk = "bestaatniet"
		_, err := e.svc.Brondatum(context.Background(), zaak, resultaattypeWith(missing))
		requireCode(t, err, domainerrors.CodeArchiefactiedatum)
	})
}

func TestBrondatumGerelateerdeZaak(t *testing.T) {
	e := newEnv(t)
	procedure := catalogi.BrondatumArchiefprocedure{Afleidingswijze: zgw.AfleidingGerelateerdeZaak}

	t.Run("no related cases", func(t *testing.T) {
		_, err := e.svc.Brondatum(context.Background(), &models.Zaak{UUID: uuid.New()},
			resultaattypeWith(procedure))
		requireCode(t, err, domainerrors.CodeArchiefactiedatum)
	})

	related := e.newZaak(t)
	closed := e.closeZaak(t, related)
	require.NotNil(t, closed.Einddatum)

	laterURL := "http://elders/zaken/api/v1/zaken/later"
	later := types.NewDate(2020, time.January, 15)
	e.peers.zaken[laterURL] = &referentie.RemoteZaak{URL: laterURL, Einddatum: &later}

	zaak := &models.Zaak{
		UUID: uuid.New(),
		RelevanteAndereZaken: []models.RelevanteZaakRelatie{
			{URL: e.svc.ZaakURL(related.UUID), AardRelatie: zgw.AardRelatieVervolg},
			{URL: laterURL, AardRelatie: zgw.AardRelatieVervolg},
		},
	}
	got, err := e.svc.Brondatum(adminCtx(), zaak, resultaattypeWith(procedure))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2020-01-15", got.String())
}

func TestBrondatumBesluit(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	ingangs := catalogi.BrondatumArchiefprocedure{Afleidingswijze: zgw.AfleidingIngangsdatumBesluit}
	verval := catalogi.BrondatumArchiefprocedure{Afleidingswijze: zgw.AfleidingVervaldatumBesluit}

	t.Run("no besluiten", func(t *testing.T) {
		_, err := e.svc.Brondatum(context.Background(), zaak, resultaattypeWith(ingangs))
		requireCode(t, err, domainerrors.CodeArchiefactiedatum)
	})

	besluitURL := "http://besluiten/api/v1/besluiten/1"
	vervaldatum := types.NewDate(2022, time.July, 1)
	e.besluiten.besluiten[besluitURL] = &besluiten.Besluit{
		URL:          besluitURL,
		Zaak:         e.svc.ZaakURL(zaak.UUID),
		Ingangsdatum: types.NewDate(2019, time.February, 1),
		Vervaldatum:  &vervaldatum,
	}
	_, err := e.svc.CreateZaakBesluit(adminCtx(), &models.ZaakBesluit{
		Zaak:    zaak.UUID,
		Besluit: besluitURL,
	})
	require.NoError(t, err)

	got, err := e.svc.Brondatum(adminCtx(), zaak, resultaattypeWith(ingangs))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2019-02-01", got.String())

	got, err = e.svc.Brondatum(adminCtx(), zaak, resultaattypeWith(verval))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2022-07-01", got.String())

	t.Run("missing vervaldatum yields archive error", func(t *testing.T) {
		e.besluiten.besluiten[besluitURL].Vervaldatum = nil
		_, err := e.svc.Brondatum(adminCtx(), zaak, resultaattypeWith(verval))
		requireCode(t, err, domainerrors.CodeArchiefactiedatum)
	})
}
