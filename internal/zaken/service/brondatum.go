package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rickb777/period"

	"zaakregister/internal/catalogi"
	"zaakregister/internal/referentie"
	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/jsonpath"
	"zaakregister/pkg/types"
	"zaakregister/pkg/zgw"
)

func archiveErr(format string, args ...any) error {
	return domainerrors.Newf(domainerrors.CodeArchiefactiedatum, format, args...)
}

// Brondatum computes the anchor date of the archival clock for a case that
// is being closed. The zaak's Einddatum must already hold the end-status
// date. A nil result without error means no brondatum applies (hoofdzaak
// without einddatum, ander_datumkenmerk).
func (s *Service) Brondatum(ctx context.Context, zaak *models.Zaak, resultaattype *catalogi.Resultaattype) (*types.Date, error) {
	procedure := resultaattype.Brondatum
	switch procedure.Afleidingswijze {
	case zgw.AfleidingAfgehandeld:
		return zaak.Einddatum, nil

	case zgw.AfleidingHoofdzaak:
		return s.brondatumHoofdzaak(ctx, zaak)

	case zgw.AfleidingEigenschap:
		return s.brondatumEigenschap(ctx, zaak, procedure.Datumkenmerk)

	case zgw.AfleidingAnderDatumkenmerk:
		// The caller maintains archiefactiedatum manually.
		return nil, nil

	case zgw.AfleidingZaakobject:
		return s.brondatumZaakobject(ctx, zaak, procedure)

	case zgw.AfleidingTermijn:
		if zaak.Einddatum == nil {
			return nil, nil
		}
		if procedure.Procestermijn == "" {
			return nil, archiveErr("geen procestermijn gezet voor afleidingswijze termijn")
		}
		termijn, err := period.Parse(procedure.Procestermijn)
		if err != nil {
			return nil, archiveErr("ongeldige procestermijn %q", procedure.Procestermijn)
		}
		return types.DatePtr(zaak.Einddatum.AddPeriod(termijn)), nil

	case zgw.AfleidingGerelateerdeZaak:
		return s.brondatumGerelateerdeZaak(ctx, zaak)

	case zgw.AfleidingIngangsdatumBesluit:
		return s.brondatumBesluit(ctx, zaak, false)

	case zgw.AfleidingVervaldatumBesluit:
		return s.brondatumBesluit(ctx, zaak, true)
	}
	return nil, archiveErr("onbekende afleidingswijze %q", procedure.Afleidingswijze)
}

func (s *Service) brondatumHoofdzaak(ctx context.Context, zaak *models.Zaak) (*types.Date, error) {
	if zaak.Hoofdzaak == "" {
		return nil, nil
	}
	if s.refs.IsLocal(zaak.Hoofdzaak) {
		hoofdzaak, err := s.localZaakByURL(ctx, zaak.Hoofdzaak)
		if err != nil {
			return nil, err
		}
		return hoofdzaak.Einddatum, nil
	}
	remote, err := s.peerZaken.Zaak(ctx, zaak.Hoofdzaak)
	if err != nil {
		return nil, err
	}
	return remote.Einddatum, nil
}

// brondatumEigenschap reads the case property whose naam matches the
// datumkenmerk. A dotted or slashed datumkenmerk addresses a nested value
// inside a JSON waarde, anchored at the property named by the first segment.
func (s *Service) brondatumEigenschap(ctx context.Context, zaak *models.Zaak, datumkenmerk string) (*types.Date, error) {
	eigenschappen, err := s.store.ListZaakEigenschappen(ctx, zaak.UUID)
	if err != nil {
		return nil, err
	}

	raw, ok := eigenschapValue(eigenschappen, datumkenmerk)
	if !ok {
		return nil, archiveErr("geen zaakeigenschap %q aanwezig op de zaak", datumkenmerk)
	}
	parsed, err := types.ParseDateLoose(raw)
	if err != nil {
		return nil, archiveErr("zaakeigenschap %q bevat geen geldige datum: %q", datumkenmerk, raw)
	}
	return types.DatePtr(parsed), nil
}

func eigenschapValue(eigenschappen []*models.ZaakEigenschap, datumkenmerk string) (string, bool) {
	for _, ze := range eigenschappen {
		if ze.Naam == datumkenmerk {
			return ze.Waarde, true
		}
	}
	segments := jsonpath.Split(datumkenmerk)
	if len(segments) < 2 {
		return "", false
	}
	for _, ze := range eigenschappen {
		if ze.Naam != segments[0] {
			continue
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(ze.Waarde), &doc); err != nil {
			return "", false
		}
		value, err := jsonpath.LookupString(doc, strings.Join(segments[1:], "."))
		if err != nil {
			return "", false
		}
		return value, true
	}
	return "", false
}

// brondatumZaakobject collects the datumkenmerk attribute of every linked
// zaakobject with the matching objecttype and takes the latest date. Remote
// objects are fetched and read via the (possibly nested) datumkenmerk path;
// inline objects expose their data on the overige identification.
func (s *Service) brondatumZaakobject(ctx context.Context, zaak *models.Zaak, procedure catalogi.BrondatumArchiefprocedure) (*types.Date, error) {
	listing, err := s.store.ListZaakObjecten(ctx, store.AllChildrenOf(zaak.UUID))
	if err != nil {
		return nil, err
	}

	var dates []*types.Date
	for _, zo := range listing.Items {
		if zo.ObjectType != procedure.Objecttype {
			continue
		}
		raw, err := s.zaakobjectAttribute(ctx, zo, procedure.Datumkenmerk)
		if err != nil {
			return nil, err
		}
		parsed, err := types.ParseDateLoose(raw)
		if err != nil {
			return nil, archiveErr("zaakobject %s: attribuut %q bevat geen geldige datum: %q",
				zo.UUID, procedure.Datumkenmerk, raw)
		}
		dates = append(dates, types.DatePtr(parsed))
	}
	if len(dates) == 0 {
		return nil, archiveErr("geen zaakobjecten met objecttype %q aanwezig op de zaak", procedure.Objecttype)
	}
	return types.MaxDate(dates...), nil
}

func (s *Service) zaakobjectAttribute(ctx context.Context, zo *models.ZaakObject, datumkenmerk string) (string, error) {
	if zo.Object != "" && !s.refs.IsLocal(zo.Object) {
		body, err := s.refs.Get(ctx, referentie.KindObject, zo.Object)
		if err != nil {
			return "", err
		}
		// Objecttypes-API objects nest their data under record.data.
		if record, ok := body["record"].(map[string]any); ok {
			if data, ok := record["data"].(map[string]any); ok {
				body = data
			}
		}
		value, err := jsonpath.LookupString(body, datumkenmerk)
		if err != nil {
			return "", archiveErr("zaakobject %s: attribuut %q ontbreekt op het object", zo.UUID, datumkenmerk)
		}
		return value, nil
	}
	if zo.Identificatie.Overige != nil {
		value, err := jsonpath.LookupString(zo.Identificatie.Overige.OverigeData, datumkenmerk)
		if err != nil {
			return "", archiveErr("zaakobject %s: attribuut %q ontbreekt op de objectidentificatie", zo.UUID, datumkenmerk)
		}
		return value, nil
	}
	return "", archiveErr("zaakobject %s heeft geen raadpleegbaar attribuut %q", zo.UUID, datumkenmerk)
}

func (s *Service) brondatumGerelateerdeZaak(ctx context.Context, zaak *models.Zaak) (*types.Date, error) {
	if len(zaak.RelevanteAndereZaken) == 0 {
		return nil, archiveErr("geen gerelateerde zaken aan zaak gekoppeld om brondatum uit af te leiden")
	}
	var dates []*types.Date
	for _, relatie := range zaak.RelevanteAndereZaken {
		if s.refs.IsLocal(relatie.URL) {
			related, err := s.localZaakByURL(ctx, relatie.URL)
			if err != nil {
				return nil, err
			}
			dates = append(dates, related.Einddatum)
			continue
		}
		remote, err := s.peerZaken.Zaak(ctx, relatie.URL)
		if err != nil {
			return nil, err
		}
		dates = append(dates, remote.Einddatum)
	}
	return types.MaxDate(dates...), nil
}

func (s *Service) brondatumBesluit(ctx context.Context, zaak *models.Zaak, vervaldatum bool) (*types.Date, error) {
	zaakbesluiten, err := s.store.ListZaakBesluiten(ctx, zaak.UUID)
	if err != nil {
		return nil, err
	}
	if len(zaakbesluiten) == 0 {
		return nil, archiveErr("geen besluiten aan zaak gekoppeld om brondatum uit af te leiden")
	}
	var dates []*types.Date
	for _, zb := range zaakbesluiten {
		besluit, err := s.besluiten.Besluit(ctx, zb.Besluit)
		if err != nil {
			return nil, err
		}
		if vervaldatum {
			if besluit.Vervaldatum == nil {
				return nil, archiveErr("besluit %s heeft geen vervaldatum", zb.Besluit)
			}
			dates = append(dates, besluit.Vervaldatum)
			continue
		}
		dates = append(dates, types.DatePtr(besluit.Ingangsdatum))
	}
	return types.MaxDate(dates...), nil
}

// Archiefactiedatum shifts the brondatum by the archiefactietermijn. Either
// side missing yields nil.
func Archiefactiedatum(brondatum *types.Date, archiefactietermijn string) (*types.Date, error) {
	if brondatum == nil || archiefactietermijn == "" {
		return nil, nil
	}
	termijn, err := period.Parse(archiefactietermijn)
	if err != nil {
		return nil, archiveErr("ongeldige archiefactietermijn %q", archiefactietermijn)
	}
	return types.DatePtr(brondatum.AddPeriod(termijn)), nil
}
