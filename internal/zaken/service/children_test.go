package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zaakregister/internal/besluiten"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/documenten"
	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/zgw"
)

func TestResultaatIsUniquePerZaak(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	ctx := adminCtx()

	_, err := e.svc.CreateResultaat(ctx, &models.Resultaat{
		Zaak:          zaak.UUID,
		Resultaattype: testResultaattype,
	})
	require.NoError(t, err)

	_, err = e.svc.CreateResultaat(ctx, &models.Resultaat{
		Zaak:          zaak.UUID,
		Resultaattype: testResultaattype,
	})
	requireCode(t, err, domainerrors.CodeInvalid)
}

func TestResultaatZaaktypeMismatch(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	other := "http://testserver/catalogi/api/v1/resultaattypen/other"
	e.catalog.resultaattypen[other] = &catalogi.Resultaattype{
		URL:      other,
		Zaaktype: "http://testserver/catalogi/api/v1/zaaktypen/other",
	}
	_, err := e.svc.CreateResultaat(adminCtx(), &models.Resultaat{
		Zaak:          zaak.UUID,
		Resultaattype: other,
	})
	requireCode(t, err, domainerrors.CodeZaaktypeMismatch)
}

func TestResultaattypeIsImmutable(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	resultaat, err := e.svc.CreateResultaat(adminCtx(), &models.Resultaat{
		Zaak:          zaak.UUID,
		Resultaattype: testResultaattype,
	})
	require.NoError(t, err)

	updated := *resultaat
	updated.Resultaattype = "http://testserver/catalogi/api/v1/resultaattypen/other"
	_, err = e.svc.UpdateResultaat(adminCtx(), &updated)
	requireCode(t, err, domainerrors.CodeImmutableField)

	updated = *resultaat
	updated.Toelichting = "aangepast"
	result, err := e.svc.UpdateResultaat(adminCtx(), &updated)
	require.NoError(t, err)
	assert.Equal(t, "aangepast", result.Toelichting)
}

func TestCreateRolDerivesOmschrijving(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	roltypeURL := "http://testserver/catalogi/api/v1/roltypen/1"
	e.catalog.roltypen[roltypeURL] = &catalogi.Roltype{
		URL:                  roltypeURL,
		Zaaktype:             testZaaktype,
		Omschrijving:         "Aanvrager",
		OmschrijvingGeneriek: zgw.RolInitiator,
	}

	rol, err := e.svc.CreateRol(adminCtx(), &models.Rol{
		Zaak:           zaak.UUID,
		Roltype:        roltypeURL,
		BetrokkeneType: zgw.BetrokkeneNatuurlijkPersoon,
		Identificatie: models.BetrokkeneIdentificatie{
			NatuurlijkPersoon: &models.NatuurlijkPersoon{InpBsn: "111222333"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Aanvrager", rol.Omschrijving)
	assert.Equal(t, zgw.RolInitiator, rol.OmschrijvingGeneriek)
	assert.False(t, rol.Registratiedatum.IsZero())

	t.Run("second initiator is rejected", func(t *testing.T) {
		_, err := e.svc.CreateRol(adminCtx(), &models.Rol{
			Zaak:           zaak.UUID,
			Roltype:        roltypeURL,
			BetrokkeneType: zgw.BetrokkeneNatuurlijkPersoon,
			Identificatie: models.BetrokkeneIdentificatie{
				NatuurlijkPersoon: &models.NatuurlijkPersoon{InpBsn: "111222333"},
			},
		})
		requireCode(t, err, domainerrors.CodeMaxOccurences)
	})
}

func TestCreateRolValidation(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	roltypeURL := "http://testserver/catalogi/api/v1/roltypen/2"
	e.catalog.roltypen[roltypeURL] = &catalogi.Roltype{
		URL:                  roltypeURL,
		Zaaktype:             testZaaktype,
		Omschrijving:         "Behandelaar",
		OmschrijvingGeneriek: zgw.RolBehandelaar,
	}

	t.Run("betrokkene or identificatie required", func(t *testing.T) {
		_, err := e.svc.CreateRol(adminCtx(), &models.Rol{
			Zaak:           zaak.UUID,
			Roltype:        roltypeURL,
			BetrokkeneType: zgw.BetrokkeneMedewerker,
		})
		requireCode(t, err, domainerrors.CodeInvalid)
	})

	t.Run("identificatie must match betrokkeneType", func(t *testing.T) {
		_, err := e.svc.CreateRol(adminCtx(), &models.Rol{
			Zaak:           zaak.UUID,
			Roltype:        roltypeURL,
			BetrokkeneType: zgw.BetrokkeneMedewerker,
			Identificatie: models.BetrokkeneIdentificatie{
				NatuurlijkPersoon: &models.NatuurlijkPersoon{InpBsn: "111222333"},
			},
		})
		requireCode(t, err, domainerrors.CodeInvalid)
	})

	t.Run("invalid bsn", func(t *testing.T) {
		_, err := e.svc.CreateRol(adminCtx(), &models.Rol{
			Zaak:           zaak.UUID,
			Roltype:        roltypeURL,
			BetrokkeneType: zgw.BetrokkeneNatuurlijkPersoon,
			Identificatie: models.BetrokkeneIdentificatie{
				NatuurlijkPersoon: &models.NatuurlijkPersoon{InpBsn: "123456789"},
			},
		})
		requireCode(t, err, domainerrors.CodeInvalid)
	})
}

func TestZaakEigenschapDerivesNaam(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	eigenschapURL := "http://testserver/catalogi/api/v1/eigenschappen/9"
	e.catalog.eigenschappen[eigenschapURL] = &catalogi.Eigenschap{
		URL: eigenschapURL, Zaaktype: testZaaktype, Naam: "zaaknummer-extern",
	}

	ze, err := e.svc.CreateZaakEigenschap(adminCtx(), &models.ZaakEigenschap{
		Zaak:       zaak.UUID,
		Eigenschap: eigenschapURL,
		Waarde:     "EXT-001",
	})
	require.NoError(t, err)
	assert.Equal(t, "zaaknummer-extern", ze.Naam)

	t.Run("waarde update keeps naam", func(t *testing.T) {
		updated := *ze
		updated.Waarde = "EXT-002"
		result, err := e.svc.UpdateZaakEigenschap(adminCtx(), &updated)
		require.NoError(t, err)
		assert.Equal(t, "EXT-002", result.Waarde)
		assert.Equal(t, "zaaknummer-extern", result.Naam)
	})
}

func TestZaakObjectOverigeRules(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)

	t.Run("overige without objectTypeOverige", func(t *testing.T) {
		_, err := e.svc.CreateZaakObject(adminCtx(), &models.ZaakObject{
			Zaak:       zaak.UUID,
			Object:     "http://objecten/api/v1/objecten/1",
			ObjectType: zgw.ObjectOverige,
		})
		requireCode(t, err, domainerrors.CodeMissingObjectTypeOver)
	})

	t.Run("objectTypeOverige outside overige", func(t *testing.T) {
		_, err := e.svc.CreateZaakObject(adminCtx(), &models.ZaakObject{
			Zaak:              zaak.UUID,
			Object:            "http://objecten/api/v1/objecten/1",
			ObjectType:        zgw.ObjectPand,
			ObjectTypeOverige: "vergunning",
		})
		requireCode(t, err, domainerrors.CodeObjectTypeOverUsage)
	})

	t.Run("object and identificatie are exclusive", func(t *testing.T) {
		_, err := e.svc.CreateZaakObject(adminCtx(), &models.ZaakObject{
			Zaak:       zaak.UUID,
			Object:     "http://objecten/api/v1/objecten/1",
			ObjectType: zgw.ObjectPand,
			Identificatie: models.ObjectIdentificatie{
				Pand: &models.PandIdentificatie{Identificatie: "0518100000231273"},
			},
		})
		requireCode(t, err, domainerrors.CodeInvalidZaakobject)
	})
}

func TestZaakInformatieObjectTwoPhase(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	ctx := adminCtx()

	eioURL := "http://documenten/api/v1/enkelvoudiginformatieobjecten/10"
	iotURL := "http://testserver/catalogi/api/v1/informatieobjecttypen/10"
	e.documents.eios[eioURL] = &documenten.EnkelvoudigInformatieObject{
		URL:                  eioURL,
		Informatieobjecttype: iotURL,
	}

	t.Run("informatieobjecttype must relate to zaaktype", func(t *testing.T) {
		_, err := e.svc.CreateZaakInformatieObject(ctx, &models.ZaakInformatieObject{
			Zaak:             zaak.UUID,
			Informatieobject: eioURL,
		})
		requireCode(t, err, domainerrors.CodeMissingZtIotRelation)
	})

	e.catalog.ztIot[testZaaktype] = map[string]bool{iotURL: true}

	t.Run("peer failure rolls the local row back", func(t *testing.T) {
		e.documents.registerErr = errors.New("documenten unreachable")
		_, err := e.svc.CreateZaakInformatieObject(ctx, &models.ZaakInformatieObject{
			Zaak:             zaak.UUID,
			Informatieobject: eioURL,
		})
		requireCode(t, err, domainerrors.CodePendingRelations)

		listing, err := e.store.ListZaakInformatieObjecten(ctx, store.AllChildrenOf(zaak.UUID))
		require.NoError(t, err)
		assert.Empty(t, listing.Items)
	})

	t.Run("successful create registers the back-reference", func(t *testing.T) {
		e.documents.registerErr = nil
		zio, err := e.svc.CreateZaakInformatieObject(ctx, &models.ZaakInformatieObject{
			Zaak:             zaak.UUID,
			Informatieobject: eioURL,
		})
		require.NoError(t, err)
		assert.Equal(t, zgw.AardRelatieHoortBij, zio.AardRelatie)
		require.Contains(t, e.documents.registered, eioURL)

		// Same combination again is a duplicate.
		_, err = e.svc.CreateZaakInformatieObject(ctx, &models.ZaakInformatieObject{
			Zaak:             zaak.UUID,
			Informatieobject: eioURL,
		})
		requireCode(t, err, domainerrors.CodeInvalid)

		require.NoError(t, e.svc.DeleteZaakInformatieObject(ctx, zio.UUID))
		assert.Contains(t, e.documents.unregistered, eioURL)
	})
}

func TestZaakBesluitMustReferenceZaak(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	other := e.newZaak(t)

	besluitURL := "http://besluiten/api/v1/besluiten/5"
	e.besluiten.besluiten[besluitURL] = &besluiten.Besluit{
		URL:  besluitURL,
		Zaak: e.svc.ZaakURL(other.UUID),
	}

	_, err := e.svc.CreateZaakBesluit(adminCtx(), &models.ZaakBesluit{
		Zaak:    zaak.UUID,
		Besluit: besluitURL,
	})
	requireCode(t, err, domainerrors.CodeInvalid)
}

func TestZaakContactMomentTwoPhase(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	ctx := adminCtx()
	cmURL := "http://contactmomenten/api/v1/contactmomenten/1"

	t.Run("peer failure rolls back", func(t *testing.T) {
		e.links.registerErr = errors.New("contactmomenten unreachable")
		_, err := e.svc.CreateZaakContactMoment(ctx, &models.ZaakContactMoment{
			Zaak:          zaak.UUID,
			Contactmoment: cmURL,
		})
		requireCode(t, err, domainerrors.CodePendingRelations)
	})

	e.links.registerErr = nil
	zcm, err := e.svc.CreateZaakContactMoment(ctx, &models.ZaakContactMoment{
		Zaak:          zaak.UUID,
		Contactmoment: cmURL,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, zcm.ObjectContactMoment)

	// The back-reference survives a round trip through the store.
	stored, err := e.svc.GetZaakContactMoment(ctx, zcm.UUID)
	require.NoError(t, err)
	assert.Equal(t, zcm.ObjectContactMoment, stored.ObjectContactMoment)

	require.NoError(t, e.svc.DeleteZaakContactMoment(ctx, zcm.UUID))
	assert.Contains(t, e.links.unregistered, zcm.ObjectContactMoment)
}

func TestZaakVerzoekTwoPhase(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	ctx := adminCtx()

	zv, err := e.svc.CreateZaakVerzoek(ctx, &models.ZaakVerzoek{
		Zaak:    zaak.UUID,
		Verzoek: "http://verzoeken/api/v1/verzoeken/7",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, zv.ObjectVerzoek)

	stored, err := e.svc.GetZaakVerzoek(ctx, zv.UUID)
	require.NoError(t, err)
	assert.Equal(t, zv.ObjectVerzoek, stored.ObjectVerzoek)

	require.NoError(t, e.svc.DeleteZaakVerzoek(ctx, zv.UUID))
	assert.Contains(t, e.links.unregistered, zv.ObjectVerzoek)
}

func TestKlantContact(t *testing.T) {
	e := newEnv(t)
	zaak := e.newZaak(t)
	ctx := adminCtx()

	t.Run("datumtijd must not be in the future", func(t *testing.T) {
		_, err := e.svc.CreateKlantContact(ctx, &models.KlantContact{
			Zaak:      zaak.UUID,
			Datumtijd: e.now.Add(time.Hour),
		})
		requireCode(t, err, domainerrors.CodeDateInFuture)
	})

	kc, err := e.svc.CreateKlantContact(ctx, &models.KlantContact{
		Zaak:      zaak.UUID,
		Datumtijd: e.now.Add(-time.Hour),
	})
	require.NoError(t, err)
	assert.Len(t, kc.Identificatie, 12)
}
