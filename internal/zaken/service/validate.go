package service

import (
	"context"
	"slices"

	"github.com/rickb777/period"

	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/validation"
	"zaakregister/pkg/zgw"
)

func invalid(params ...domainerrors.InvalidParam) error {
	return domainerrors.NewValidation(params...)
}

// validateZaakFields checks the field-level rules of a case payload.
func (s *Service) validateZaakFields(zaak *models.Zaak) []domainerrors.InvalidParam {
	var params []domainerrors.InvalidParam

	if zaak.Identificatie.Bronorganisatie == "" {
		params = append(params, domainerrors.Param("bronorganisatie", domainerrors.CodeRequired, "Dit veld is vereist."))
	} else if !validation.IsRSIN(zaak.Identificatie.Bronorganisatie) {
		params = append(params, domainerrors.Param("bronorganisatie", domainerrors.CodeInvalid, "Onjuist RSIN nummer."))
	}
	if zaak.Zaaktype == "" {
		params = append(params, domainerrors.Param("zaaktype", domainerrors.CodeRequired, "Dit veld is vereist."))
	}
	if len(zaak.Omschrijving) > 80 {
		params = append(params, domainerrors.Param("omschrijving", domainerrors.CodeInvalid, "Maximaal 80 tekens."))
	}
	if len(zaak.Toelichting) > 1000 {
		params = append(params, domainerrors.Param("toelichting", domainerrors.CodeInvalid, "Maximaal 1000 tekens."))
	}
	if zaak.Startdatum.IsZero() {
		params = append(params, domainerrors.Param("startdatum", domainerrors.CodeRequired, "Dit veld is vereist."))
	}
	if zaak.Vertrouwelijkheidaanduiding != "" && !zaak.Vertrouwelijkheidaanduiding.Valid() {
		params = append(params, domainerrors.Param("vertrouwelijkheidaanduiding", domainerrors.CodeInvalid, "Ongeldige waarde."))
	}
	if zaak.Verlenging.Duur != "" {
		if _, err := period.Parse(zaak.Verlenging.Duur); err != nil {
			params = append(params, domainerrors.Param("verlenging.duur", domainerrors.CodeInvalid, "Geen geldige ISO 8601 duur."))
		}
	}

	params = append(params, s.validateBetaling(zaak)...)
	params = append(params, s.validateRelevanteZaken(zaak)...)
	return params
}

func (s *Service) validateBetaling(zaak *models.Zaak) []domainerrors.InvalidParam {
	var params []domainerrors.InvalidParam
	if zaak.LaatsteBetaaldatum != nil {
		if zaak.Betalingsindicatie == zgw.BetalingNvt {
			params = append(params, domainerrors.Param("laatsteBetaaldatum", domainerrors.CodeBetalingNvt,
				"De laatste betaaldatum kan niet gezet worden als de betalingsindicatie \"nvt\" is."))
		}
		if zaak.LaatsteBetaaldatum.After(s.now()) {
			params = append(params, domainerrors.Param("laatsteBetaaldatum", domainerrors.CodeDateInFuture,
				"Deze datum mag niet in de toekomst zijn."))
		}
	}
	return params
}

func (s *Service) validateRelevanteZaken(zaak *models.Zaak) []domainerrors.InvalidParam {
	var params []domainerrors.InvalidParam
	for _, relatie := range zaak.RelevanteAndereZaken {
		switch relatie.AardRelatie {
		case zgw.AardRelatieVervolg, zgw.AardRelatieOnderwerp, zgw.AardRelatieBijdrage:
			// ok
		case zgw.AardRelatieOverig:
			if relatie.OverigeRelatie == "" {
				params = append(params, domainerrors.Param("relevanteAndereZaken.overigeRelatie",
					domainerrors.CodeOverigeRelatieRequired,
					"overigeRelatie is vereist wanneer aardRelatie \"overig\" is."))
			}
		default:
			params = append(params, domainerrors.Param("relevanteAndereZaken.aardRelatie",
				domainerrors.CodeInvalid, "Ongeldige aardRelatie."))
		}
		if err := s.refs.ValidateURL(relatie.URL); err != nil {
			params = append(params, domainerrors.Param("relevanteAndereZaken.url",
				domainerrors.From(err).Code, err.Error()))
		}
	}
	return params
}

// validateZaakReferences resolves and checks the catalog side of a case.
func (s *Service) validateZaakReferences(ctx context.Context, zaak *models.Zaak, isCreate bool) error {
	zaaktype, err := s.catalog.Zaaktype(ctx, zaak.Zaaktype)
	if err != nil {
		return err
	}
	if isCreate && zaaktype.Concept {
		return invalid(domainerrors.Param("zaaktype", domainerrors.CodeInvalid,
			"Het zaaktype is nog een concept en kan geen zaken krijgen."))
	}

	for _, product := range zaak.ProductenOfDiensten {
		if !slices.Contains(zaaktype.ProductenOfDiensten, product) {
			return invalid(domainerrors.Param("productenOfDiensten", domainerrors.CodeInvalidProducts,
				"Niet alle producten/diensten komen voor op het zaaktype."))
		}
	}

	if zaak.Communicatiekanaal != "" && !s.refs.IsLocal(zaak.Communicatiekanaal) {
		if err := s.catalog.Communicatiekanaal(ctx, zaak.Communicatiekanaal); err != nil {
			return err
		}
	}

	if zaak.Hoofdzaak != "" {
		if err := s.validateHoofdzaak(ctx, zaak); err != nil {
			return err
		}
	}
	return nil
}

// validateHoofdzaak enforces the flat case tree: a parent is itself a root,
// never the case itself, and the child's zaaktype is a declared deelzaaktype
// of the parent's.
func (s *Service) validateHoofdzaak(ctx context.Context, zaak *models.Zaak) error {
	if zaak.Hoofdzaak == s.ZaakURL(zaak.UUID) {
		return invalid(domainerrors.Param("hoofdzaak", domainerrors.CodeSelfForbidden,
			"Een zaak kan niet haar eigen hoofdzaak zijn."))
	}

	var (
		parentZaaktype  string
		parentHoofdzaak string
	)
	if s.refs.IsLocal(zaak.Hoofdzaak) {
		parent, err := s.localZaakByURL(ctx, zaak.Hoofdzaak)
		if err != nil {
			if domainerrors.Is(err, domainerrors.CodeNotFound) {
				return invalid(domainerrors.Param("hoofdzaak", domainerrors.CodeBadURL,
					"De hoofdzaak bestaat niet."))
			}
			return err
		}
		parentZaaktype = parent.Zaaktype
		parentHoofdzaak = parent.Hoofdzaak
	} else {
		remote, err := s.peerZaken.Zaak(ctx, zaak.Hoofdzaak)
		if err != nil {
			return err
		}
		parentZaaktype = remote.Zaaktype
	}

	if parentHoofdzaak != "" {
		return invalid(domainerrors.Param("hoofdzaak", domainerrors.CodeDeelzaakAlsHoofdzaak,
			"De hoofdzaak is zelf een deelzaak; diepere bomen zijn niet toegestaan."))
	}
	parentType, err := s.catalog.Zaaktype(ctx, parentZaaktype)
	if err != nil {
		return err
	}
	if !slices.Contains(parentType.Deelzaaktypen, zaak.Zaaktype) {
		return invalid(domainerrors.Param("hoofdzaak", domainerrors.CodeInvalidDeelzaaktype,
			"Het zaaktype van de zaak is geen toegestaan deelzaaktype van het zaaktype van de hoofdzaak."))
	}
	return nil
}

// validateImmutable rejects changes to create-only fields.
func validateImmutable(old, updated *models.Zaak) error {
	var params []domainerrors.InvalidParam
	if old.Identificatie.Identificatie != updated.Identificatie.Identificatie {
		params = append(params, domainerrors.Param("identificatie", domainerrors.CodeImmutableField,
			"Dit veld mag niet gewijzigd worden."))
	}
	if old.Identificatie.Bronorganisatie != updated.Identificatie.Bronorganisatie {
		params = append(params, domainerrors.Param("bronorganisatie", domainerrors.CodeImmutableField,
			"Dit veld mag niet gewijzigd worden."))
	}
	if old.Zaaktype != updated.Zaaktype {
		params = append(params, domainerrors.Param("zaaktype", domainerrors.CodeImmutableField,
			"Dit veld mag niet gewijzigd worden."))
	}
	if len(params) > 0 {
		return invalid(params...)
	}
	return nil
}

// validateArchiefstatus guards the transition out of nog_te_archiveren:
// the archive fields must be set and every linked document archived.
func (s *Service) validateArchiefstatus(ctx context.Context, old, updated *models.Zaak) error {
	if updated.Archiefstatus == old.Archiefstatus ||
		updated.Archiefstatus == zgw.ArchiefstatusNogTeArchiveren {
		return nil
	}
	var params []domainerrors.InvalidParam
	if updated.Archiefnominatie == "" {
		params = append(params, domainerrors.Param("archiefnominatie", domainerrors.CodeRequired,
			"archiefnominatie is vereist wanneer de archiefstatus wijzigt."))
	}
	if updated.Archiefactiedatum == nil {
		params = append(params, domainerrors.Param("archiefactiedatum", domainerrors.CodeRequired,
			"archiefactiedatum is vereist wanneer de archiefstatus wijzigt."))
	}
	if len(params) > 0 {
		return invalid(params...)
	}

	listing, err := s.store.ListZaakInformatieObjecten(ctx, store.AllChildrenOf(updated.UUID))
	if err != nil {
		return err
	}
	for _, zio := range listing.Items {
		eio, err := s.documents.Informatieobject(ctx, zio.Informatieobject)
		if err != nil {
			return err
		}
		if !eio.Archived() {
			return invalid(domainerrors.Param("archiefstatus", domainerrors.CodeDocumentsNotArchived,
				"Er zijn gerelateerde informatieobjecten die nog niet gearchiveerd zijn."))
		}
	}
	return nil
}

// applyOpschortingLatch keeps eerdereOpschorting monotone.
func applyOpschortingLatch(old, updated *models.Zaak) {
	if old.Opschorting.EerdereOpschorting || old.Opschorting.Indicatie {
		updated.Opschorting.EerdereOpschorting = true
	}
	if updated.Opschorting.Indicatie {
		updated.Opschorting.EerdereOpschorting = true
	}
}

// validateRolCaps enforces the occurrence caps on generic roles.
func (s *Service) validateRolCaps(ctx context.Context, rol *models.Rol) error {
	if rol.OmschrijvingGeneriek != zgw.RolInitiator && rol.OmschrijvingGeneriek != zgw.RolZaakcoordinator {
		return nil
	}
	listing, err := s.store.ListRollen(ctx, store.AllChildrenOf(rol.Zaak))
	if err != nil {
		return err
	}
	for _, existing := range listing.Items {
		if existing.OmschrijvingGeneriek == rol.OmschrijvingGeneriek {
			return invalid(domainerrors.Param("roltype", domainerrors.CodeMaxOccurences,
				"Er is al een rol met deze generieke omschrijving op de zaak."))
		}
	}
	return nil
}

// validateRol checks the rol payload against the tagged-union rules.
func (s *Service) validateRol(rol *models.Rol) error {
	var params []domainerrors.InvalidParam

	if !rol.BetrokkeneType.Valid() {
		params = append(params, domainerrors.Param("betrokkeneType", domainerrors.CodeInvalid, "Ongeldige waarde."))
	}
	if rol.Betrokkene == "" && rol.Identificatie.Empty() {
		params = append(params, domainerrors.Param("betrokkene", domainerrors.CodeInvalid,
			"betrokkene of betrokkeneIdentificatie is vereist."))
	}
	if rol.IndicatieMachtiging != "" &&
		rol.IndicatieMachtiging != zgw.MachtigingGemachtigde &&
		rol.IndicatieMachtiging != zgw.MachtigingMachtiginggever {
		params = append(params, domainerrors.Param("indicatieMachtiging", domainerrors.CodeIndicatieMachtiging,
			"Ongeldige indicatieMachtiging."))
	}
	if len(rol.AuthenticatieContext) > 0 {
		switch rol.BetrokkeneType {
		case zgw.BetrokkeneNatuurlijkPersoon, zgw.BetrokkeneNietNatuurlijkPersoon, zgw.BetrokkeneVestiging:
			// allowed
		default:
			params = append(params, domainerrors.Param("authenticatieContext", domainerrors.CodeInvalid,
				"authenticatieContext is alleen toegestaan voor personen en vestigingen."))
		}
	}
	if rol.BeginGeldigheid != nil && rol.EindeGeldigheid != nil &&
		rol.EindeGeldigheid.Before(*rol.BeginGeldigheid) {
		params = append(params, domainerrors.Param("eindeGeldigheid", domainerrors.CodeEindeVoorBegin,
			"eindeGeldigheid mag niet voor beginGeldigheid liggen."))
	}

	params = append(params, validateBetrokkeneIdentificatie(rol)...)
	if len(params) > 0 {
		return invalid(params...)
	}
	return nil
}

// validateBetrokkeneIdentificatie checks the variant matching the
// discriminator and its person-number formats.
func validateBetrokkeneIdentificatie(rol *models.Rol) []domainerrors.InvalidParam {
	var params []domainerrors.InvalidParam
	ident := rol.Identificatie
	if ident.Empty() {
		return nil
	}

	match := map[zgw.BetrokkeneType]bool{
		zgw.BetrokkeneNatuurlijkPersoon:       ident.NatuurlijkPersoon != nil,
		zgw.BetrokkeneNietNatuurlijkPersoon:   ident.NietNatuurlijkPersoon != nil,
		zgw.BetrokkeneVestiging:               ident.Vestiging != nil,
		zgw.BetrokkeneOrganisatorischeEenheid: ident.OrganisatorischeEenheid != nil,
		zgw.BetrokkeneMedewerker:              ident.Medewerker != nil,
	}
	if !match[rol.BetrokkeneType] {
		params = append(params, domainerrors.Param("betrokkeneIdentificatie", domainerrors.CodeInvalid,
			"De betrokkeneIdentificatie komt niet overeen met het betrokkeneType."))
		return params
	}

	if np := ident.NatuurlijkPersoon; np != nil {
		if np.InpBsn != "" && !validation.IsBSN(np.InpBsn) {
			params = append(params, domainerrors.Param("betrokkeneIdentificatie.inpBsn",
				domainerrors.CodeInvalid, "Onjuist BSN nummer."))
		}
		if np.InpANummer != "" && !validation.IsANummer(np.InpANummer) {
			params = append(params, domainerrors.Param("betrokkeneIdentificatie.inpANummer",
				domainerrors.CodeInvalid, "Onjuist A-nummer."))
		}
	}
	if nnp := ident.NietNatuurlijkPersoon; nnp != nil {
		if nnp.InnNnpID != "" && !validation.IsRSIN(nnp.InnNnpID) {
			params = append(params, domainerrors.Param("betrokkeneIdentificatie.innNnpId",
				domainerrors.CodeInvalid, "Onjuist RSIN nummer."))
		}
	}
	return params
}

// validateZaakObject checks the object payload against the tagged-union and
// overige rules.
func (s *Service) validateZaakObject(ctx context.Context, zo *models.ZaakObject) error {
	var params []domainerrors.InvalidParam

	if zo.Object == "" && zo.Identificatie.Empty() {
		params = append(params, domainerrors.Param("object", domainerrors.CodeInvalidZaakobject,
			"object of objectIdentificatie is vereist."))
	}
	if zo.Object != "" && !zo.Identificatie.Empty() {
		params = append(params, domainerrors.Param("object", domainerrors.CodeInvalidZaakobject,
			"object en objectIdentificatie sluiten elkaar uit."))
	}
	if zo.ObjectType == zgw.ObjectOverige {
		if zo.ObjectTypeOverige == "" && zo.ObjectTypeOverigeDefinitie.Empty() {
			params = append(params, domainerrors.Param("objectTypeOverige", domainerrors.CodeMissingObjectTypeOver,
				"objectTypeOverige is vereist wanneer objectType \"overige\" is."))
		}
	} else if zo.ObjectTypeOverige != "" || !zo.ObjectTypeOverigeDefinitie.Empty() {
		params = append(params, domainerrors.Param("objectTypeOverige", domainerrors.CodeObjectTypeOverUsage,
			"objectTypeOverige mag alleen gezet worden wanneer objectType \"overige\" is."))
	}
	if zo.Object != "" {
		if err := s.refs.ValidateURL(zo.Object); err != nil {
			params = append(params, domainerrors.Param("object",
				domainerrors.From(err).Code, err.Error()))
		}
	}
	if len(params) > 0 {
		return invalid(params...)
	}

	if zo.Zaakobjecttype != "" {
		if _, err := s.catalog.Zaakobjecttype(ctx, zo.Zaakobjecttype); err != nil {
			return err
		}
	}
	return nil
}
