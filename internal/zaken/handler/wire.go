package handler

import (
	"encoding/json"
	"time"

	"github.com/paulmach/orb/geojson"

	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/service"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/types"
	"zaakregister/pkg/zgw"
)

// The wire shapes below carry the camelCase JSON of the API. Groups that the
// API serves as null when unset (verlenging, processobject) are pointers;
// everything else serialises with its zero value.

type verlengingJSON struct {
	Reden string `json:"reden"`
	Duur  string `json:"duur"`
}

type opschortingJSON struct {
	Indicatie          bool   `json:"indicatie"`
	Reden              string `json:"reden"`
	EerdereOpschorting bool   `json:"eerdereOpschorting"`
}

type processobjectJSON struct {
	Datumkenmerk  string `json:"datumkenmerk"`
	Identificatie string `json:"identificatie"`
	Objecttype    string `json:"objecttype"`
	Registratie   string `json:"registratie"`
}

type relevanteZaakJSON struct {
	URL            string `json:"url"`
	AardRelatie    string `json:"aardRelatie"`
	OverigeRelatie string `json:"overigeRelatie,omitempty"`
	Toelichting    string `json:"toelichting,omitempty"`
}

type kenmerkJSON struct {
	Kenmerk string `json:"kenmerk"`
	Bron    string `json:"bron"`
}

type zaakJSON struct {
	URL                          string              `json:"url"`
	UUID                         string              `json:"uuid"`
	Identificatie                string              `json:"identificatie"`
	Bronorganisatie              string              `json:"bronorganisatie"`
	Omschrijving                 string              `json:"omschrijving"`
	Toelichting                  string              `json:"toelichting"`
	Zaaktype                     string              `json:"zaaktype"`
	Registratiedatum             types.Date          `json:"registratiedatum"`
	Startdatum                   types.Date          `json:"startdatum"`
	Einddatum                    *types.Date         `json:"einddatum"`
	EinddatumGepland             *types.Date         `json:"einddatumGepland"`
	UiterlijkeEinddatumAfdoening *types.Date         `json:"uiterlijkeEinddatumAfdoening"`
	Publicatiedatum              *types.Date         `json:"publicatiedatum"`
	Communicatiekanaal           string              `json:"communicatiekanaal"`
	CommunicatiekanaalNaam       string              `json:"communicatiekanaalNaam"`
	ProductenOfDiensten          []string            `json:"productenOfDiensten"`
	Vertrouwelijkheidaanduiding  string              `json:"vertrouwelijkheidaanduiding"`
	Betalingsindicatie           string              `json:"betalingsindicatie"`
	LaatsteBetaaldatum           *time.Time          `json:"laatsteBetaaldatum"`
	Zaakgeometrie                *geojson.Geometry   `json:"zaakgeometrie"`
	Verlenging                   *verlengingJSON     `json:"verlenging"`
	Opschorting                  opschortingJSON     `json:"opschorting"`
	Selectielijstklasse          string              `json:"selectielijstklasse"`
	Hoofdzaak                    *string             `json:"hoofdzaak"`
	Deelzaken                    []string            `json:"deelzaken"`
	RelevanteAndereZaken         []relevanteZaakJSON `json:"relevanteAndereZaken"`
	Status                       *string             `json:"status"`
	Resultaat                    *string             `json:"resultaat"`
	Kenmerken                    []kenmerkJSON       `json:"kenmerken"`
	Archiefnominatie             *string             `json:"archiefnominatie"`
	Archiefstatus                string              `json:"archiefstatus"`
	Archiefactiedatum            *types.Date         `json:"archiefactiedatum"`
	StartdatumBewaartermijn      *types.Date         `json:"startdatumBewaartermijn"`
	Processobject                *processobjectJSON  `json:"processobject"`
	Processobjectaard            string              `json:"processobjectaard"`
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (h *Handler) zaakToJSON(zaak *models.Zaak, zctx *service.ZaakContext) *zaakJSON {
	out := &zaakJSON{
		URL:                          h.svc.ZaakURL(zaak.UUID),
		UUID:                         zaak.UUID.String(),
		Identificatie:                zaak.Identificatie.Identificatie,
		Bronorganisatie:              zaak.Identificatie.Bronorganisatie,
		Omschrijving:                 zaak.Omschrijving,
		Toelichting:                  zaak.Toelichting,
		Zaaktype:                     zaak.Zaaktype,
		Registratiedatum:             zaak.Registratiedatum,
		Startdatum:                   zaak.Startdatum,
		Einddatum:                    zaak.Einddatum,
		EinddatumGepland:             zaak.EinddatumGepland,
		UiterlijkeEinddatumAfdoening: zaak.UiterlijkeEinddatumAfdoening,
		Publicatiedatum:              zaak.Publicatiedatum,
		Communicatiekanaal:           zaak.Communicatiekanaal,
		CommunicatiekanaalNaam:       zaak.CommunicatiekanaalNaam,
		ProductenOfDiensten:          zaak.ProductenOfDiensten,
		Vertrouwelijkheidaanduiding:  string(zaak.Vertrouwelijkheidaanduiding),
		Betalingsindicatie:           string(zaak.Betalingsindicatie),
		LaatsteBetaaldatum:           zaak.LaatsteBetaaldatum,
		Zaakgeometrie:                zaak.Zaakgeometrie,
		Opschorting: opschortingJSON{
			Indicatie:          zaak.Opschorting.Indicatie,
			Reden:              zaak.Opschorting.Reden,
			EerdereOpschorting: zaak.Opschorting.EerdereOpschorting,
		},
		Selectielijstklasse:     zaak.Selectielijstklasse,
		Hoofdzaak:               strPtrOrNil(zaak.Hoofdzaak),
		Deelzaken:               []string{},
		RelevanteAndereZaken:    []relevanteZaakJSON{},
		Kenmerken:               []kenmerkJSON{},
		Archiefnominatie:        strPtrOrNil(string(zaak.Archiefnominatie)),
		Archiefstatus:           string(zaak.Archiefstatus),
		Archiefactiedatum:       zaak.Archiefactiedatum,
		StartdatumBewaartermijn: zaak.StartdatumBewaartermijn,
		Processobjectaard:       zaak.Processobjectaard,
	}
	if !zaak.Verlenging.Empty() {
		out.Verlenging = &verlengingJSON{Reden: zaak.Verlenging.Reden, Duur: zaak.Verlenging.Duur}
	}
	if !zaak.Processobject.Empty() {
		out.Processobject = &processobjectJSON{
			Datumkenmerk:  zaak.Processobject.Datumkenmerk,
			Identificatie: zaak.Processobject.Identificatie,
			Objecttype:    zaak.Processobject.Objecttype,
			Registratie:   zaak.Processobject.Registratie,
		}
	}
	for _, relatie := range zaak.RelevanteAndereZaken {
		out.RelevanteAndereZaken = append(out.RelevanteAndereZaken, relevanteZaakJSON{
			URL:            relatie.URL,
			AardRelatie:    string(relatie.AardRelatie),
			OverigeRelatie: relatie.OverigeRelatie,
			Toelichting:    relatie.Toelichting,
		})
	}
	for _, kenmerk := range zaak.Kenmerken {
		out.Kenmerken = append(out.Kenmerken, kenmerkJSON{Kenmerk: kenmerk.Kenmerk, Bron: kenmerk.Bron})
	}
	if zctx != nil {
		if zctx.Status != nil {
			out.Status = strPtrOrNil(h.svc.StatusURL(zctx.Status.UUID))
		}
		if zctx.Resultaat != nil {
			out.Resultaat = strPtrOrNil(h.url("resultaten", zctx.Resultaat.UUID))
		}
		for _, deelzaak := range zctx.Deelzaken {
			out.Deelzaken = append(out.Deelzaken, h.svc.ZaakURL(deelzaak.UUID))
		}
	}
	return out
}

// zaakFromJSON maps a decoded payload onto the model. The wire struct was
// prefilled from the existing model for partial updates, so absent fields
// keep their value.
func zaakFromJSON(in *zaakJSON, out *models.Zaak) error {
	out.Identificatie.Identificatie = in.Identificatie
	out.Identificatie.Bronorganisatie = in.Bronorganisatie
	out.Omschrijving = in.Omschrijving
	out.Toelichting = in.Toelichting
	out.Zaaktype = in.Zaaktype
	out.Registratiedatum = in.Registratiedatum
	out.Startdatum = in.Startdatum
	out.EinddatumGepland = in.EinddatumGepland
	out.UiterlijkeEinddatumAfdoening = in.UiterlijkeEinddatumAfdoening
	out.Publicatiedatum = in.Publicatiedatum
	out.Communicatiekanaal = in.Communicatiekanaal
	out.ProductenOfDiensten = in.ProductenOfDiensten
	out.Vertrouwelijkheidaanduiding = zgw.VertrouwelijkheidAanduiding(in.Vertrouwelijkheidaanduiding)
	out.Betalingsindicatie = zgw.BetalingsIndicatie(in.Betalingsindicatie)
	out.LaatsteBetaaldatum = in.LaatsteBetaaldatum
	out.Zaakgeometrie = in.Zaakgeometrie
	out.Selectielijstklasse = in.Selectielijstklasse
	out.Hoofdzaak = deref(in.Hoofdzaak)
	out.Archiefnominatie = zgw.Archiefnominatie(deref(in.Archiefnominatie))
	out.Archiefstatus = zgw.Archiefstatus(in.Archiefstatus)
	out.Archiefactiedatum = in.Archiefactiedatum
	out.StartdatumBewaartermijn = in.StartdatumBewaartermijn
	out.Processobjectaard = in.Processobjectaard

	out.Verlenging = models.Verlenging{}
	if in.Verlenging != nil {
		out.Verlenging = models.Verlenging{Reden: in.Verlenging.Reden, Duur: in.Verlenging.Duur}
	}
	out.Opschorting = models.Opschorting{
		Indicatie:          in.Opschorting.Indicatie,
		Reden:              in.Opschorting.Reden,
		EerdereOpschorting: in.Opschorting.EerdereOpschorting,
	}
	out.Processobject = models.Processobject{}
	if in.Processobject != nil {
		out.Processobject = models.Processobject{
			Datumkenmerk:  in.Processobject.Datumkenmerk,
			Identificatie: in.Processobject.Identificatie,
			Objecttype:    in.Processobject.Objecttype,
			Registratie:   in.Processobject.Registratie,
		}
	}
	out.RelevanteAndereZaken = nil
	for _, relatie := range in.RelevanteAndereZaken {
		out.RelevanteAndereZaken = append(out.RelevanteAndereZaken, models.RelevanteZaakRelatie{
			URL:            relatie.URL,
			AardRelatie:    zgw.AardRelatie(relatie.AardRelatie),
			OverigeRelatie: relatie.OverigeRelatie,
			Toelichting:    relatie.Toelichting,
		})
	}
	out.Kenmerken = nil
	for _, kenmerk := range in.Kenmerken {
		out.Kenmerken = append(out.Kenmerken, models.ZaakKenmerk{Kenmerk: kenmerk.Kenmerk, Bron: kenmerk.Bron})
	}
	return nil
}

// --- status / resultaat ---

type statusJSON struct {
	URL                          string    `json:"url"`
	UUID                         string    `json:"uuid"`
	Zaak                         string    `json:"zaak"`
	Statustype                   string    `json:"statustype"`
	DatumStatusGezet             time.Time `json:"datumStatusGezet"`
	Statustoelichting            string    `json:"statustoelichting"`
	IndicatieLaatstGezetteStatus bool      `json:"indicatieLaatstGezetteStatus"`
}

func (h *Handler) statusToJSON(status *models.Status) *statusJSON {
	return &statusJSON{
		URL:                          h.svc.StatusURL(status.UUID),
		UUID:                         status.UUID.String(),
		Zaak:                         h.svc.ZaakURL(status.Zaak),
		Statustype:                   status.Statustype,
		DatumStatusGezet:             status.DatumStatusGezet,
		Statustoelichting:            status.Statustoelichting,
		IndicatieLaatstGezetteStatus: status.IndicatieLaatstGezetteStatus,
	}
}

type statusRequest struct {
	Zaak              string    `json:"zaak"`
	Statustype        string    `json:"statustype"`
	DatumStatusGezet  time.Time `json:"datumStatusGezet"`
	Statustoelichting string    `json:"statustoelichting"`
}

type resultaatJSON struct {
	URL           string `json:"url"`
	UUID          string `json:"uuid"`
	Zaak          string `json:"zaak"`
	Resultaattype string `json:"resultaattype"`
	Toelichting   string `json:"toelichting"`
}

func (h *Handler) resultaatToJSON(resultaat *models.Resultaat) *resultaatJSON {
	return &resultaatJSON{
		URL:           h.url("resultaten", resultaat.UUID),
		UUID:          resultaat.UUID.String(),
		Zaak:          h.svc.ZaakURL(resultaat.Zaak),
		Resultaattype: resultaat.Resultaattype,
		Toelichting:   resultaat.Toelichting,
	}
}

type resultaatRequest struct {
	Zaak          string `json:"zaak"`
	Resultaattype string `json:"resultaattype"`
	Toelichting   string `json:"toelichting"`
}

// --- rollen ---

type adresJSON struct {
	AoaIdentificatie        string `json:"aoaIdentificatie"`
	WplWoonplaatsNaam       string `json:"wplWoonplaatsNaam"`
	GorOpenbareRuimteNaam   string `json:"gorOpenbareRuimteNaam"`
	AoaPostcode             string `json:"aoaPostcode"`
	AoaHuisnummer           int    `json:"aoaHuisnummer"`
	AoaHuisletter           string `json:"aoaHuisletter"`
	AoaHuisnummertoevoeging string `json:"aoaHuisnummertoevoeging"`
	InpLocatiebeschrijving  string `json:"inpLocatiebeschrijving"`
}

func adresToJSON(a *models.Adres) *adresJSON {
	if a == nil {
		return nil
	}
	return &adresJSON{
		AoaIdentificatie:        a.AoaIdentificatie,
		WplWoonplaatsNaam:       a.WplWoonplaatsNaam,
		GorOpenbareRuimteNaam:   a.GorOpenbareRuimteNaam,
		AoaPostcode:             a.AoaPostcode,
		AoaHuisnummer:           a.AoaHuisnummer,
		AoaHuisletter:           a.AoaHuisletter,
		AoaHuisnummertoevoeging: a.AoaHuisnummertoevoeging,
		InpLocatiebeschrijving:  a.InpLocatiebeschrijving,
	}
}

func adresFromJSON(a *adresJSON) *models.Adres {
	if a == nil {
		return nil
	}
	return &models.Adres{
		AoaIdentificatie:        a.AoaIdentificatie,
		WplWoonplaatsNaam:       a.WplWoonplaatsNaam,
		GorOpenbareRuimteNaam:   a.GorOpenbareRuimteNaam,
		AoaPostcode:             a.AoaPostcode,
		AoaHuisnummer:           a.AoaHuisnummer,
		AoaHuisletter:           a.AoaHuisletter,
		AoaHuisnummertoevoeging: a.AoaHuisnummertoevoeging,
		InpLocatiebeschrijving:  a.InpLocatiebeschrijving,
	}
}

type subVerblijfBuitenlandJSON struct {
	LndLandcode         string `json:"lndLandcode"`
	LndLandnaam         string `json:"lndLandnaam"`
	SubAdresBuitenland1 string `json:"subAdresBuitenland1"`
	SubAdresBuitenland2 string `json:"subAdresBuitenland2"`
	SubAdresBuitenland3 string `json:"subAdresBuitenland3"`
}

func subVerblijfToJSON(s *models.SubVerblijfBuitenland) *subVerblijfBuitenlandJSON {
	if s == nil {
		return nil
	}
	return &subVerblijfBuitenlandJSON{
		LndLandcode:         s.LndLandcode,
		LndLandnaam:         s.LndLandnaam,
		SubAdresBuitenland1: s.SubAdresBuitenland1,
		SubAdresBuitenland2: s.SubAdresBuitenland2,
		SubAdresBuitenland3: s.SubAdresBuitenland3,
	}
}

func subVerblijfFromJSON(s *subVerblijfBuitenlandJSON) *models.SubVerblijfBuitenland {
	if s == nil {
		return nil
	}
	return &models.SubVerblijfBuitenland{
		LndLandcode:         s.LndLandcode,
		LndLandnaam:         s.LndLandnaam,
		SubAdresBuitenland1: s.SubAdresBuitenland1,
		SubAdresBuitenland2: s.SubAdresBuitenland2,
		SubAdresBuitenland3: s.SubAdresBuitenland3,
	}
}

type natuurlijkPersoonJSON struct {
	InpBsn                   string                     `json:"inpBsn"`
	AnpIdentificatie         string                     `json:"anpIdentificatie"`
	InpANummer               string                     `json:"inpA_nummer"`
	Geslachtsnaam            string                     `json:"geslachtsnaam"`
	VoorvoegselGeslachtsnaam string                     `json:"voorvoegselGeslachtsnaam"`
	Voorletters              string                     `json:"voorletters"`
	Voornamen                string                     `json:"voornamen"`
	Geslachtsaanduiding      string                     `json:"geslachtsaanduiding"`
	Geboortedatum            string                     `json:"geboortedatum"`
	Verblijfsadres           *adresJSON                 `json:"verblijfsadres"`
	SubVerblijfBuitenland    *subVerblijfBuitenlandJSON `json:"subVerblijfBuitenland"`
}

type nietNatuurlijkPersoonJSON struct {
	InnNnpID              string                     `json:"innNnpId"`
	AnnIdentificatie      string                     `json:"annIdentificatie"`
	StatutaireNaam        string                     `json:"statutaireNaam"`
	InnRechtsvorm         string                     `json:"innRechtsvorm"`
	Bezoekadres           string                     `json:"bezoekadres"`
	SubVerblijfBuitenland *subVerblijfBuitenlandJSON `json:"subVerblijfBuitenland"`
}

type vestigingJSON struct {
	VestigingsNummer      string                     `json:"vestigingsNummer"`
	Handelsnaam           []string                   `json:"handelsnaam"`
	KvkNummer             string                     `json:"kvkNummer"`
	Verblijfsadres        *adresJSON                 `json:"verblijfsadres"`
	SubVerblijfBuitenland *subVerblijfBuitenlandJSON `json:"subVerblijfBuitenland"`
}

type organisatorischeEenheidJSON struct {
	Identificatie  string `json:"identificatie"`
	Naam           string `json:"naam"`
	IsGehuisvestIn string `json:"isGehuisvestIn"`
}

type medewerkerJSON struct {
	Identificatie         string `json:"identificatie"`
	Achternaam            string `json:"achternaam"`
	Voorletters           string `json:"voorletters"`
	VoorvoegselAchternaam string `json:"voorvoegselAchternaam"`
}

func betrokkeneIdentificatieToJSON(betrokkeneType zgw.BetrokkeneType, ident models.BetrokkeneIdentificatie) any {
	switch betrokkeneType {
	case zgw.BetrokkeneNatuurlijkPersoon:
		if np := ident.NatuurlijkPersoon; np != nil {
			return &natuurlijkPersoonJSON{
				InpBsn:                   np.InpBsn,
				AnpIdentificatie:         np.AnpIdentificatie,
				InpANummer:               np.InpANummer,
				Geslachtsnaam:            np.Geslachtsnaam,
				VoorvoegselGeslachtsnaam: np.VoorvoegselGeslachtsnaam,
				Voorletters:              np.Voorletters,
				Voornamen:                np.Voornamen,
				Geslachtsaanduiding:      np.Geslachtsaanduiding,
				Geboortedatum:            np.Geboortedatum,
				Verblijfsadres:           adresToJSON(np.Verblijfsadres),
				SubVerblijfBuitenland:    subVerblijfToJSON(np.SubVerblijfBuitenland),
			}
		}
	case zgw.BetrokkeneNietNatuurlijkPersoon:
		if nnp := ident.NietNatuurlijkPersoon; nnp != nil {
			return &nietNatuurlijkPersoonJSON{
				InnNnpID:              nnp.InnNnpID,
				AnnIdentificatie:      nnp.AnnIdentificatie,
				StatutaireNaam:        nnp.StatutaireNaam,
				InnRechtsvorm:         nnp.InnRechtsvorm,
				Bezoekadres:           nnp.Bezoekadres,
				SubVerblijfBuitenland: subVerblijfToJSON(nnp.SubVerblijfBuitenland),
			}
		}
	case zgw.BetrokkeneVestiging:
		if v := ident.Vestiging; v != nil {
			return &vestigingJSON{
				VestigingsNummer:      v.VestigingsNummer,
				Handelsnaam:           v.Handelsnaam,
				KvkNummer:             v.KvkNummer,
				Verblijfsadres:        adresToJSON(v.Verblijfsadres),
				SubVerblijfBuitenland: subVerblijfToJSON(v.SubVerblijfBuitenland),
			}
		}
	case zgw.BetrokkeneOrganisatorischeEenheid:
		if oe := ident.OrganisatorischeEenheid; oe != nil {
			return &organisatorischeEenheidJSON{
				Identificatie:  oe.Identificatie,
				Naam:           oe.Naam,
				IsGehuisvestIn: oe.IsGehuisvestIn,
			}
		}
	case zgw.BetrokkeneMedewerker:
		if m := ident.Medewerker; m != nil {
			return &medewerkerJSON{
				Identificatie:         m.Identificatie,
				Achternaam:            m.Achternaam,
				Voorletters:           m.Voorletters,
				VoorvoegselAchternaam: m.VoorvoegselAchternaam,
			}
		}
	}
	return nil
}

// betrokkeneIdentificatieFromJSON decodes the variant matching the
// discriminator. Unknown discriminators fall through to service validation.
func betrokkeneIdentificatieFromJSON(betrokkeneType zgw.BetrokkeneType, raw json.RawMessage) (models.BetrokkeneIdentificatie, error) {
	var out models.BetrokkeneIdentificatie
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	switch betrokkeneType {
	case zgw.BetrokkeneNatuurlijkPersoon:
		var np natuurlijkPersoonJSON
		if err := json.Unmarshal(raw, &np); err != nil {
			return out, badBody(err)
		}
		out.NatuurlijkPersoon = &models.NatuurlijkPersoon{
			InpBsn:                   np.InpBsn,
			AnpIdentificatie:         np.AnpIdentificatie,
			InpANummer:               np.InpANummer,
			Geslachtsnaam:            np.Geslachtsnaam,
			VoorvoegselGeslachtsnaam: np.VoorvoegselGeslachtsnaam,
			Voorletters:              np.Voorletters,
			Voornamen:                np.Voornamen,
			Geslachtsaanduiding:      np.Geslachtsaanduiding,
			Geboortedatum:            np.Geboortedatum,
			Verblijfsadres:           adresFromJSON(np.Verblijfsadres),
			SubVerblijfBuitenland:    subVerblijfFromJSON(np.SubVerblijfBuitenland),
		}
	case zgw.BetrokkeneNietNatuurlijkPersoon:
		var nnp nietNatuurlijkPersoonJSON
		if err := json.Unmarshal(raw, &nnp); err != nil {
			return out, badBody(err)
		}
		out.NietNatuurlijkPersoon = &models.NietNatuurlijkPersoon{
			InnNnpID:              nnp.InnNnpID,
			AnnIdentificatie:      nnp.AnnIdentificatie,
			StatutaireNaam:        nnp.StatutaireNaam,
			InnRechtsvorm:         nnp.InnRechtsvorm,
			Bezoekadres:           nnp.Bezoekadres,
			SubVerblijfBuitenland: subVerblijfFromJSON(nnp.SubVerblijfBuitenland),
		}
	case zgw.BetrokkeneVestiging:
		var v vestigingJSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return out, badBody(err)
		}
		out.Vestiging = &models.Vestiging{
			VestigingsNummer:      v.VestigingsNummer,
			Handelsnaam:           v.Handelsnaam,
			KvkNummer:             v.KvkNummer,
			Verblijfsadres:        adresFromJSON(v.Verblijfsadres),
			SubVerblijfBuitenland: subVerblijfFromJSON(v.SubVerblijfBuitenland),
		}
	case zgw.BetrokkeneOrganisatorischeEenheid:
		var oe organisatorischeEenheidJSON
		if err := json.Unmarshal(raw, &oe); err != nil {
			return out, badBody(err)
		}
		out.OrganisatorischeEenheid = &models.OrganisatorischeEenheid{
			Identificatie:  oe.Identificatie,
			Naam:           oe.Naam,
			IsGehuisvestIn: oe.IsGehuisvestIn,
		}
	case zgw.BetrokkeneMedewerker:
		var m medewerkerJSON
		if err := json.Unmarshal(raw, &m); err != nil {
			return out, badBody(err)
		}
		out.Medewerker = &models.Medewerker{
			Identificatie:         m.Identificatie,
			Achternaam:            m.Achternaam,
			Voorletters:           m.Voorletters,
			VoorvoegselAchternaam: m.VoorvoegselAchternaam,
		}
	}
	return out, nil
}

type contactpersoonRolJSON struct {
	EmailAdres     string `json:"emailadres"`
	Functie        string `json:"functie"`
	Telefoonnummer string `json:"telefoonnummer"`
	Naam           string `json:"naam"`
}

type rolJSON struct {
	URL                     string                 `json:"url"`
	UUID                    string                 `json:"uuid"`
	Zaak                    string                 `json:"zaak"`
	Betrokkene              string                 `json:"betrokkene"`
	BetrokkeneType          string                 `json:"betrokkeneType"`
	Roltype                 string                 `json:"roltype"`
	Omschrijving            string                 `json:"omschrijving"`
	OmschrijvingGeneriek    string                 `json:"omschrijvingGeneriek"`
	Roltoelichting          string                 `json:"roltoelichting"`
	Registratiedatum        time.Time              `json:"registratiedatum"`
	IndicatieMachtiging     string                 `json:"indicatieMachtiging"`
	ContactpersoonRol       *contactpersoonRolJSON `json:"contactpersoonRol"`
	AuthenticatieContext    json.RawMessage        `json:"authenticatieContext,omitempty"`
	BeginGeldigheid         *types.Date            `json:"beginGeldigheid"`
	EindeGeldigheid         *types.Date            `json:"eindeGeldigheid"`
	BetrokkeneIdentificatie any                    `json:"betrokkeneIdentificatie"`
}

func (h *Handler) rolToJSON(rol *models.Rol) *rolJSON {
	out := &rolJSON{
		URL:                     h.url("rollen", rol.UUID),
		UUID:                    rol.UUID.String(),
		Zaak:                    h.svc.ZaakURL(rol.Zaak),
		Betrokkene:              rol.Betrokkene,
		BetrokkeneType:          string(rol.BetrokkeneType),
		Roltype:                 rol.Roltype,
		Omschrijving:            rol.Omschrijving,
		OmschrijvingGeneriek:    string(rol.OmschrijvingGeneriek),
		Roltoelichting:          rol.Roltoelichting,
		Registratiedatum:        rol.Registratiedatum,
		IndicatieMachtiging:     string(rol.IndicatieMachtiging),
		AuthenticatieContext:    rol.AuthenticatieContext,
		BeginGeldigheid:         rol.BeginGeldigheid,
		EindeGeldigheid:         rol.EindeGeldigheid,
		BetrokkeneIdentificatie: betrokkeneIdentificatieToJSON(rol.BetrokkeneType, rol.Identificatie),
	}
	if !rol.ContactpersoonRol.Empty() {
		out.ContactpersoonRol = &contactpersoonRolJSON{
			EmailAdres:     rol.ContactpersoonRol.EmailAdres,
			Functie:        rol.ContactpersoonRol.Functie,
			Telefoonnummer: rol.ContactpersoonRol.Telefoonnummer,
			Naam:           rol.ContactpersoonRol.Naam,
		}
	}
	return out
}

type rolRequest struct {
	Zaak                    string                 `json:"zaak"`
	Betrokkene              string                 `json:"betrokkene"`
	BetrokkeneType          string                 `json:"betrokkeneType"`
	Roltype                 string                 `json:"roltype"`
	Roltoelichting          string                 `json:"roltoelichting"`
	IndicatieMachtiging     string                 `json:"indicatieMachtiging"`
	ContactpersoonRol       *contactpersoonRolJSON `json:"contactpersoonRol"`
	AuthenticatieContext    json.RawMessage        `json:"authenticatieContext"`
	BeginGeldigheid         *types.Date            `json:"beginGeldigheid"`
	EindeGeldigheid         *types.Date            `json:"eindeGeldigheid"`
	BetrokkeneIdentificatie json.RawMessage        `json:"betrokkeneIdentificatie"`
}

func (r *rolRequest) toModel() (*models.Rol, error) {
	betrokkeneType := zgw.BetrokkeneType(r.BetrokkeneType)
	ident, err := betrokkeneIdentificatieFromJSON(betrokkeneType, r.BetrokkeneIdentificatie)
	if err != nil {
		return nil, err
	}
	rol := &models.Rol{
		Betrokkene:           r.Betrokkene,
		BetrokkeneType:       betrokkeneType,
		Roltype:              r.Roltype,
		Roltoelichting:       r.Roltoelichting,
		IndicatieMachtiging:  zgw.IndicatieMachtiging(r.IndicatieMachtiging),
		AuthenticatieContext: r.AuthenticatieContext,
		BeginGeldigheid:      r.BeginGeldigheid,
		EindeGeldigheid:      r.EindeGeldigheid,
		Identificatie:        ident,
	}
	if r.ContactpersoonRol != nil {
		rol.ContactpersoonRol = models.ContactpersoonRol{
			EmailAdres:     r.ContactpersoonRol.EmailAdres,
			Functie:        r.ContactpersoonRol.Functie,
			Telefoonnummer: r.ContactpersoonRol.Telefoonnummer,
			Naam:           r.ContactpersoonRol.Naam,
		}
	}
	return rol, nil
}

// --- zaakobjecten ---

type objectTypeOverigeDefinitieJSON struct {
	URL        string `json:"url"`
	Schema     string `json:"schema"`
	ObjectData string `json:"objectData"`
}

type wozObjectJSON struct {
	WozObjectNummer     string     `json:"wozObjectNummer"`
	AanduidingWozObject *adresJSON `json:"aanduidingWozObject"`
}

type pandJSON struct {
	Identificatie string `json:"identificatie"`
}

type buurtJSON struct {
	BuurtCode       string `json:"buurtCode"`
	BuurtNaam       string `json:"buurtNaam"`
	GemGemeenteCode string `json:"gemGemeenteCode"`
	WykWijkCode     string `json:"wykWijkCode"`
}

type gemeenteJSON struct {
	GemeenteNaam string `json:"gemeenteNaam"`
	GemeenteCode string `json:"gemeenteCode"`
}

type kadastraleOnroerendeZaakJSON struct {
	KadastraleIdentificatie string `json:"kadastraleIdentificatie"`
	KadastraleAanduiding    string `json:"kadastraleAanduiding"`
}

type overigeJSON struct {
	OverigeData map[string]any `json:"overigeData"`
}

func objectIdentificatieToJSON(objectType zgw.ZaakobjectType, ident models.ObjectIdentificatie) any {
	switch objectType {
	case zgw.ObjectAdres:
		return adresToJSON(ident.Adres)
	case zgw.ObjectBuurt:
		if b := ident.Buurt; b != nil {
			return &buurtJSON{BuurtCode: b.BuurtCode, BuurtNaam: b.BuurtNaam,
				GemGemeenteCode: b.GemGemeenteCode, WykWijkCode: b.WykWijkCode}
		}
	case zgw.ObjectGemeente:
		if g := ident.Gemeente; g != nil {
			return &gemeenteJSON{GemeenteNaam: g.GemeenteNaam, GemeenteCode: g.GemeenteCode}
		}
	case zgw.ObjectKadastraleOnroerendeZaak:
		if k := ident.KadastraleOnroerendeZaak; k != nil {
			return &kadastraleOnroerendeZaakJSON{
				KadastraleIdentificatie: k.KadastraleIdentificatie,
				KadastraleAanduiding:    k.KadastraleAanduiding,
			}
		}
	case zgw.ObjectMedewerker:
		if m := ident.Medewerker; m != nil {
			return &medewerkerJSON{Identificatie: m.Identificatie, Achternaam: m.Achternaam,
				Voorletters: m.Voorletters, VoorvoegselAchternaam: m.VoorvoegselAchternaam}
		}
	case zgw.ObjectNatuurlijkPersoon:
		return betrokkeneIdentificatieToJSON(zgw.BetrokkeneNatuurlijkPersoon,
			models.BetrokkeneIdentificatie{NatuurlijkPersoon: ident.NatuurlijkPersoon})
	case zgw.ObjectNietNatuurlijkPersoon:
		return betrokkeneIdentificatieToJSON(zgw.BetrokkeneNietNatuurlijkPersoon,
			models.BetrokkeneIdentificatie{NietNatuurlijkPersoon: ident.NietNatuurlijkPersoon})
	case zgw.ObjectOrganisatorischeEenheid:
		if oe := ident.OrganisatorischeEenheid; oe != nil {
			return &organisatorischeEenheidJSON{Identificatie: oe.Identificatie, Naam: oe.Naam,
				IsGehuisvestIn: oe.IsGehuisvestIn}
		}
	case zgw.ObjectPand:
		if p := ident.Pand; p != nil {
			return &pandJSON{Identificatie: p.Identificatie}
		}
	case zgw.ObjectVestiging:
		return betrokkeneIdentificatieToJSON(zgw.BetrokkeneVestiging,
			models.BetrokkeneIdentificatie{Vestiging: ident.Vestiging})
	case zgw.ObjectWozObject:
		if w := ident.WozObject; w != nil {
			return &wozObjectJSON{WozObjectNummer: w.WozObjectNummer,
				AanduidingWozObject: adresToJSON(w.AanduidingWozObject)}
		}
	case zgw.ObjectOverige:
		if o := ident.Overige; o != nil {
			return &overigeJSON{OverigeData: o.OverigeData}
		}
	}
	return nil
}

func objectIdentificatieFromJSON(objectType zgw.ZaakobjectType, raw json.RawMessage) (models.ObjectIdentificatie, error) {
	var out models.ObjectIdentificatie
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	switch objectType {
	case zgw.ObjectAdres:
		var a adresJSON
		if err := json.Unmarshal(raw, &a); err != nil {
			return out, badBody(err)
		}
		out.Adres = adresFromJSON(&a)
	case zgw.ObjectBuurt:
		var b buurtJSON
		if err := json.Unmarshal(raw, &b); err != nil {
			return out, badBody(err)
		}
		out.Buurt = &models.BuurtIdentificatie{BuurtCode: b.BuurtCode, BuurtNaam: b.BuurtNaam,
			GemGemeenteCode: b.GemGemeenteCode, WykWijkCode: b.WykWijkCode}
	case zgw.ObjectGemeente:
		var g gemeenteJSON
		if err := json.Unmarshal(raw, &g); err != nil {
			return out, badBody(err)
		}
		out.Gemeente = &models.GemeenteIdentificatie{GemeenteNaam: g.GemeenteNaam, GemeenteCode: g.GemeenteCode}
	case zgw.ObjectKadastraleOnroerendeZaak:
		var k kadastraleOnroerendeZaakJSON
		if err := json.Unmarshal(raw, &k); err != nil {
			return out, badBody(err)
		}
		out.KadastraleOnroerendeZaak = &models.KadastraleOnroerendeZaakIdentificatie{
			KadastraleIdentificatie: k.KadastraleIdentificatie,
			KadastraleAanduiding:    k.KadastraleAanduiding,
		}
	case zgw.ObjectMedewerker:
		var m medewerkerJSON
		if err := json.Unmarshal(raw, &m); err != nil {
			return out, badBody(err)
		}
		out.Medewerker = &models.Medewerker{Identificatie: m.Identificatie, Achternaam: m.Achternaam,
			Voorletters: m.Voorletters, VoorvoegselAchternaam: m.VoorvoegselAchternaam}
	case zgw.ObjectNatuurlijkPersoon:
		ident, err := betrokkeneIdentificatieFromJSON(zgw.BetrokkeneNatuurlijkPersoon, raw)
		if err != nil {
			return out, err
		}
		out.NatuurlijkPersoon = ident.NatuurlijkPersoon
	case zgw.ObjectNietNatuurlijkPersoon:
		ident, err := betrokkeneIdentificatieFromJSON(zgw.BetrokkeneNietNatuurlijkPersoon, raw)
		if err != nil {
			return out, err
		}
		out.NietNatuurlijkPersoon = ident.NietNatuurlijkPersoon
	case zgw.ObjectOrganisatorischeEenheid:
		var oe organisatorischeEenheidJSON
		if err := json.Unmarshal(raw, &oe); err != nil {
			return out, badBody(err)
		}
		out.OrganisatorischeEenheid = &models.OrganisatorischeEenheid{
			Identificatie: oe.Identificatie, Naam: oe.Naam, IsGehuisvestIn: oe.IsGehuisvestIn}
	case zgw.ObjectPand:
		var p pandJSON
		if err := json.Unmarshal(raw, &p); err != nil {
			return out, badBody(err)
		}
		out.Pand = &models.PandIdentificatie{Identificatie: p.Identificatie}
	case zgw.ObjectVestiging:
		ident, err := betrokkeneIdentificatieFromJSON(zgw.BetrokkeneVestiging, raw)
		if err != nil {
			return out, err
		}
		out.Vestiging = ident.Vestiging
	case zgw.ObjectWozObject:
		var w wozObjectJSON
		if err := json.Unmarshal(raw, &w); err != nil {
			return out, badBody(err)
		}
		out.WozObject = &models.WozObjectIdentificatie{
			WozObjectNummer:     w.WozObjectNummer,
			AanduidingWozObject: adresFromJSON(w.AanduidingWozObject),
		}
	case zgw.ObjectOverige:
		var o overigeJSON
		if err := json.Unmarshal(raw, &o); err != nil {
			return out, badBody(err)
		}
		out.Overige = &models.OverigeIdentificatie{OverigeData: o.OverigeData}
	}
	return out, nil
}

type zaakObjectJSON struct {
	URL                        string                          `json:"url"`
	UUID                       string                          `json:"uuid"`
	Zaak                       string                          `json:"zaak"`
	Object                     string                          `json:"object"`
	ObjectType                 string                          `json:"objectType"`
	ObjectTypeOverige          string                          `json:"objectTypeOverige"`
	ObjectTypeOverigeDefinitie *objectTypeOverigeDefinitieJSON `json:"objectTypeOverigeDefinitie"`
	Zaakobjecttype             string                          `json:"zaakobjecttype"`
	RelatieOmschrijving        string                          `json:"relatieomschrijving"`
	ObjectIdentificatie        any                             `json:"objectIdentificatie"`
}

func (h *Handler) zaakObjectToJSON(zo *models.ZaakObject) *zaakObjectJSON {
	out := &zaakObjectJSON{
		URL:                 h.url("zaakobjecten", zo.UUID),
		UUID:                zo.UUID.String(),
		Zaak:                h.svc.ZaakURL(zo.Zaak),
		Object:              zo.Object,
		ObjectType:          string(zo.ObjectType),
		ObjectTypeOverige:   zo.ObjectTypeOverige,
		Zaakobjecttype:      zo.Zaakobjecttype,
		RelatieOmschrijving: zo.RelatieOmschrijving,
		ObjectIdentificatie: objectIdentificatieToJSON(zo.ObjectType, zo.Identificatie),
	}
	if !zo.ObjectTypeOverigeDefinitie.Empty() {
		out.ObjectTypeOverigeDefinitie = &objectTypeOverigeDefinitieJSON{
			URL:        zo.ObjectTypeOverigeDefinitie.URL,
			Schema:     zo.ObjectTypeOverigeDefinitie.Schema,
			ObjectData: zo.ObjectTypeOverigeDefinitie.ObjectData,
		}
	}
	return out
}

type zaakObjectRequest struct {
	Zaak                       string                          `json:"zaak"`
	Object                     string                          `json:"object"`
	ObjectType                 string                          `json:"objectType"`
	ObjectTypeOverige          string                          `json:"objectTypeOverige"`
	ObjectTypeOverigeDefinitie *objectTypeOverigeDefinitieJSON `json:"objectTypeOverigeDefinitie"`
	Zaakobjecttype             string                          `json:"zaakobjecttype"`
	RelatieOmschrijving        string                          `json:"relatieomschrijving"`
	ObjectIdentificatie        json.RawMessage                 `json:"objectIdentificatie"`
}

func (r *zaakObjectRequest) toModel() (*models.ZaakObject, error) {
	objectType := zgw.ZaakobjectType(r.ObjectType)
	ident, err := objectIdentificatieFromJSON(objectType, r.ObjectIdentificatie)
	if err != nil {
		return nil, err
	}
	zo := &models.ZaakObject{
		Object:              r.Object,
		ObjectType:          objectType,
		ObjectTypeOverige:   r.ObjectTypeOverige,
		Zaakobjecttype:      r.Zaakobjecttype,
		RelatieOmschrijving: r.RelatieOmschrijving,
		Identificatie:       ident,
	}
	if r.ObjectTypeOverigeDefinitie != nil {
		zo.ObjectTypeOverigeDefinitie = models.ObjectTypeOverigeDefinitie{
			URL:        r.ObjectTypeOverigeDefinitie.URL,
			Schema:     r.ObjectTypeOverigeDefinitie.Schema,
			ObjectData: r.ObjectTypeOverigeDefinitie.ObjectData,
		}
	}
	return zo, nil
}

// --- remaining children ---

type zaakEigenschapJSON struct {
	URL        string `json:"url"`
	UUID       string `json:"uuid"`
	Zaak       string `json:"zaak"`
	Eigenschap string `json:"eigenschap"`
	Naam       string `json:"naam"`
	Waarde     string `json:"waarde"`
}

func (h *Handler) zaakEigenschapToJSON(ze *models.ZaakEigenschap) *zaakEigenschapJSON {
	return &zaakEigenschapJSON{
		URL:        h.svc.ZaakURL(ze.Zaak) + "/zaakeigenschappen/" + ze.UUID.String(),
		UUID:       ze.UUID.String(),
		Zaak:       h.svc.ZaakURL(ze.Zaak),
		Eigenschap: ze.Eigenschap,
		Naam:       ze.Naam,
		Waarde:     ze.Waarde,
	}
}

type zaakInformatieObjectJSON struct {
	URL                 string     `json:"url"`
	UUID                string     `json:"uuid"`
	Zaak                string     `json:"zaak"`
	Informatieobject    string     `json:"informatieobject"`
	AardRelatieWeergave string     `json:"aardRelatieWeergave"`
	Titel               string     `json:"titel"`
	Beschrijving        string     `json:"beschrijving"`
	Registratiedatum    time.Time  `json:"registratiedatum"`
	Vernietigingsdatum  *time.Time `json:"vernietigingsdatum"`
	Status              string     `json:"status"`
}

func (h *Handler) zioToJSON(zio *models.ZaakInformatieObject) *zaakInformatieObjectJSON {
	return &zaakInformatieObjectJSON{
		URL:                 h.url("zaakinformatieobjecten", zio.UUID),
		UUID:                zio.UUID.String(),
		Zaak:                h.svc.ZaakURL(zio.Zaak),
		Informatieobject:    zio.Informatieobject,
		AardRelatieWeergave: "Hoort bij, omgekeerd: kent",
		Titel:               zio.Titel,
		Beschrijving:        zio.Beschrijving,
		Registratiedatum:    zio.Registratiedatum,
		Vernietigingsdatum:  zio.Vernietigingsdatum,
		Status:              zio.Status,
	}
}

type zaakBesluitJSON struct {
	URL     string `json:"url"`
	UUID    string `json:"uuid"`
	Besluit string `json:"besluit"`
}

func (h *Handler) zaakBesluitToJSON(zb *models.ZaakBesluit) *zaakBesluitJSON {
	return &zaakBesluitJSON{
		URL:     h.svc.ZaakURL(zb.Zaak) + "/besluiten/" + zb.UUID.String(),
		UUID:    zb.UUID.String(),
		Besluit: zb.Besluit,
	}
}

type zaakContactMomentJSON struct {
	URL                 string `json:"url"`
	UUID                string `json:"uuid"`
	Zaak                string `json:"zaak"`
	Contactmoment       string `json:"contactmoment"`
	ObjectContactMoment string `json:"objectcontactmoment"`
}

func (h *Handler) zcmToJSON(zcm *models.ZaakContactMoment) *zaakContactMomentJSON {
	return &zaakContactMomentJSON{
		URL:                 h.url("zaakcontactmomenten", zcm.UUID),
		UUID:                zcm.UUID.String(),
		Zaak:                h.svc.ZaakURL(zcm.Zaak),
		Contactmoment:       zcm.Contactmoment,
		ObjectContactMoment: zcm.ObjectContactMoment,
	}
}

type zaakVerzoekJSON struct {
	URL           string `json:"url"`
	UUID          string `json:"uuid"`
	Zaak          string `json:"zaak"`
	Verzoek       string `json:"verzoek"`
	ObjectVerzoek string `json:"objectverzoek"`
}

func (h *Handler) zaakVerzoekToJSON(zv *models.ZaakVerzoek) *zaakVerzoekJSON {
	return &zaakVerzoekJSON{
		URL:           h.url("zaakverzoeken", zv.UUID),
		UUID:          zv.UUID.String(),
		Zaak:          h.svc.ZaakURL(zv.Zaak),
		Verzoek:       zv.Verzoek,
		ObjectVerzoek: zv.ObjectVerzoek,
	}
}

type klantContactJSON struct {
	URL           string    `json:"url"`
	UUID          string    `json:"uuid"`
	Zaak          string    `json:"zaak"`
	Identificatie string    `json:"identificatie"`
	Datumtijd     time.Time `json:"datumtijd"`
	Kanaal        string    `json:"kanaal"`
	Onderwerp     string    `json:"onderwerp"`
	Toelichting   string    `json:"toelichting"`
}

func (h *Handler) klantContactToJSON(kc *models.KlantContact) *klantContactJSON {
	return &klantContactJSON{
		URL:           h.url("klantcontacten", kc.UUID),
		UUID:          kc.UUID.String(),
		Zaak:          h.svc.ZaakURL(kc.Zaak),
		Identificatie: kc.Identificatie,
		Datumtijd:     kc.Datumtijd,
		Kanaal:        kc.Kanaal,
		Onderwerp:     kc.Onderwerp,
		Toelichting:   kc.Toelichting,
	}
}

type auditRecordJSON struct {
	UUID               string          `json:"uuid"`
	Bron               string          `json:"bron"`
	ApplicatieID       string          `json:"applicatieId"`
	ApplicatieWeergave string          `json:"applicatieWeergave"`
	Gebruiker          string          `json:"gebruikersId"`
	Actie              string          `json:"actie"`
	Resultaat          int             `json:"resultaat"`
	HoofdObject        string          `json:"hoofdObject"`
	Resource           string          `json:"resource"`
	ResourceURL        string          `json:"resourceUrl"`
	ResourceWeergave   string          `json:"resourceWeergave"`
	AanmaakDatum       time.Time       `json:"aanmaakdatum"`
	Wijzigingen        json.RawMessage `json:"wijzigingen"`
}

func auditRecordToJSON(record *models.AuditRecord) *auditRecordJSON {
	oud := json.RawMessage(record.Oud)
	if len(oud) == 0 {
		oud = json.RawMessage("null")
	}
	nieuw := json.RawMessage(record.Nieuw)
	if len(nieuw) == 0 {
		nieuw = json.RawMessage("null")
	}
	wijzigingen, _ := json.Marshal(map[string]json.RawMessage{"oud": oud, "nieuw": nieuw})
	return &auditRecordJSON{
		UUID:               record.UUID.String(),
		Bron:               record.Bron,
		ApplicatieID:       record.ApplicatieID,
		ApplicatieWeergave: record.ApplicatieWeergave,
		Gebruiker:          record.Gebruiker,
		Actie:              record.Actie,
		Resultaat:          record.Resultaat,
		HoofdObject:        record.HoofdObject,
		Resource:           record.Resource,
		ResourceURL:        record.ResourceURL,
		ResourceWeergave:   record.ResourceWeergave,
		AanmaakDatum:       record.AanmaakDatum,
		Wijzigingen:        wijzigingen,
	}
}

func badBody(err error) error {
	return domainerrors.Newf(domainerrors.CodeInvalid, "Ongeldige request body: %v", err)
}
