package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"

	"zaakregister/internal/autorisaties"
	"zaakregister/internal/notificaties"
	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/zgw"
)

// --- resultaten ---

// CreateResultaat records the outcome of a case, at most one per case.
func (s *Service) CreateResultaat(ctx context.Context, resultaat *models.Resultaat) (*models.Resultaat, error) {
	zaak, err := s.loadZaak(ctx, resultaat.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return nil, err
	}

	resultaattype, err := s.catalog.Resultaattype(ctx, resultaat.Resultaattype)
	if err != nil {
		return nil, err
	}
	if resultaattype.Zaaktype != zaak.Zaaktype {
		return nil, invalid(domainerrors.Param("resultaattype", domainerrors.CodeZaaktypeMismatch,
			"Het resultaattype hoort niet bij het zaaktype van de zaak."))
	}

	if resultaat.UUID == uuid.Nil {
		resultaat.UUID = uuid.New()
	}
	if err := s.store.CreateResultaat(ctx, resultaat); err != nil {
		if errors.Is(err, store.ErrResultaatExists) {
			return nil, invalid(domainerrors.Param("zaak", domainerrors.CodeInvalid,
				"De zaak heeft al een resultaat."))
		}
		return nil, err
	}

	url := s.resourceURL("resultaten", resultaat.UUID)
	s.notify(ctx, zaak, "resultaat", url, notificaties.ActieCreate)
	s.record(ctx, zaak, "resultaat", url, notificaties.ActieCreate, 201, nil, resultaat)
	return resultaat, nil
}

// UpdateResultaat replaces the toelichting; the resultaattype is immutable.
func (s *Service) UpdateResultaat(ctx context.Context, updated *models.Resultaat) (*models.Resultaat, error) {
	old, err := s.store.GetResultaat(ctx, updated.UUID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "resultaat bestaat niet")
		}
		return nil, err
	}
	zaak, err := s.loadZaak(ctx, old.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return nil, err
	}
	if updated.Resultaattype != "" && updated.Resultaattype != old.Resultaattype {
		return nil, invalid(domainerrors.Param("resultaattype", domainerrors.CodeImmutableField,
			"Dit veld mag niet gewijzigd worden."))
	}
	updated.Zaak = old.Zaak
	updated.Resultaattype = old.Resultaattype
	if err := s.store.UpdateResultaat(ctx, updated); err != nil {
		return nil, err
	}

	url := s.resourceURL("resultaten", updated.UUID)
	s.notify(ctx, zaak, "resultaat", url, notificaties.ActieUpdate)
	s.record(ctx, zaak, "resultaat", url, notificaties.ActieUpdate, 200, old, updated)
	return updated, nil
}

// GetResultaat serves the detail read.
func (s *Service) GetResultaat(ctx context.Context, id uuid.UUID) (*models.Resultaat, error) {
	resultaat, err := s.store.GetResultaat(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "resultaat bestaat niet")
		}
		return nil, err
	}
	if err := s.readCheck(ctx, resultaat.Zaak); err != nil {
		return nil, err
	}
	return resultaat, nil
}

// DeleteResultaat removes the outcome.
func (s *Service) DeleteResultaat(ctx context.Context, id uuid.UUID) error {
	resultaat, err := s.store.GetResultaat(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.New(domainerrors.CodeNotFound, "resultaat bestaat niet")
		}
		return err
	}
	zaak, err := s.loadZaak(ctx, resultaat.Zaak)
	if err != nil {
		return err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return err
	}
	if err := s.store.DeleteResultaat(ctx, id); err != nil {
		return err
	}
	url := s.resourceURL("resultaten", id)
	s.notify(ctx, zaak, "resultaat", url, notificaties.ActieDestroy)
	s.record(ctx, zaak, "resultaat", url, notificaties.ActieDestroy, 204, resultaat, nil)
	return nil
}

func (s *Service) ListResultaten(ctx context.Context, filter store.ChildFilter) (store.ListResult[*models.Resultaat], error) {
	grants, err := s.grantsFor(ctx, autorisaties.ScopeZakenLezen)
	if err != nil {
		return store.ListResult[*models.Resultaat]{}, err
	}
	filter.Grants = grants
	return s.store.ListResultaten(ctx, filter)
}

// readCheck enforces the read scope on the parent case of a child resource.
func (s *Service) readCheck(ctx context.Context, zaakID uuid.UUID) error {
	zaak, err := s.loadZaak(ctx, zaakID)
	if err != nil {
		return err
	}
	return s.checkZaakScope(ctx, zaak, autorisaties.ScopeZakenLezen)
}

// --- rollen ---

// CreateRol adds a party to the case. The omschrijving fields derive from
// the roltype and are stored denormalised.
func (s *Service) CreateRol(ctx context.Context, rol *models.Rol) (*models.Rol, error) {
	zaak, err := s.loadZaak(ctx, rol.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return nil, err
	}

	roltype, err := s.catalog.Roltype(ctx, rol.Roltype)
	if err != nil {
		return nil, err
	}
	if roltype.Zaaktype != zaak.Zaaktype {
		return nil, invalid(domainerrors.Param("roltype", domainerrors.CodeZaaktypeMismatch,
			"Het roltype hoort niet bij het zaaktype van de zaak."))
	}
	rol.Omschrijving = roltype.Omschrijving
	rol.OmschrijvingGeneriek = roltype.OmschrijvingGeneriek

	if err := s.validateRol(rol); err != nil {
		return nil, err
	}
	if err := s.validateRolCaps(ctx, rol); err != nil {
		return nil, err
	}
	if rol.Betrokkene != "" {
		if err := s.refs.ValidateURL(rol.Betrokkene); err != nil {
			return nil, err
		}
	}

	if rol.UUID == uuid.Nil {
		rol.UUID = uuid.New()
	}
	rol.Registratiedatum = s.now().UTC()
	if err := s.store.CreateRol(ctx, rol); err != nil {
		return nil, err
	}

	url := s.resourceURL("rollen", rol.UUID)
	s.notify(ctx, zaak, "rol", url, notificaties.ActieCreate)
	s.record(ctx, zaak, "rol", url, notificaties.ActieCreate, 201, nil, rol)
	return rol, nil
}

func (s *Service) GetRol(ctx context.Context, id uuid.UUID) (*models.Rol, error) {
	rol, err := s.store.GetRol(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "rol bestaat niet")
		}
		return nil, err
	}
	if err := s.readCheck(ctx, rol.Zaak); err != nil {
		return nil, err
	}
	return rol, nil
}

func (s *Service) DeleteRol(ctx context.Context, id uuid.UUID) error {
	rol, err := s.store.GetRol(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.New(domainerrors.CodeNotFound, "rol bestaat niet")
		}
		return err
	}
	zaak, err := s.loadZaak(ctx, rol.Zaak)
	if err != nil {
		return err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return err
	}
	if err := s.store.DeleteRol(ctx, id); err != nil {
		return err
	}
	url := s.resourceURL("rollen", id)
	s.notify(ctx, zaak, "rol", url, notificaties.ActieDestroy)
	s.record(ctx, zaak, "rol", url, notificaties.ActieDestroy, 204, rol, nil)
	return nil
}

func (s *Service) ListRollen(ctx context.Context, filter store.ChildFilter) (store.ListResult[*models.Rol], error) {
	grants, err := s.grantsFor(ctx, autorisaties.ScopeZakenLezen)
	if err != nil {
		return store.ListResult[*models.Rol]{}, err
	}
	filter.Grants = grants
	return s.store.ListRollen(ctx, filter)
}

// --- zaakeigenschappen ---

// CreateZaakEigenschap adds a typed property. The naam derives from the
// eigenschap definition.
func (s *Service) CreateZaakEigenschap(ctx context.Context, ze *models.ZaakEigenschap) (*models.ZaakEigenschap, error) {
	zaak, err := s.loadZaak(ctx, ze.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return nil, err
	}

	eigenschap, err := s.catalog.Eigenschap(ctx, ze.Eigenschap)
	if err != nil {
		return nil, err
	}
	if eigenschap.Zaaktype != zaak.Zaaktype {
		return nil, invalid(domainerrors.Param("eigenschap", domainerrors.CodeZaaktypeMismatch,
			"De eigenschap hoort niet bij het zaaktype van de zaak."))
	}
	ze.Naam = eigenschap.Naam

	if ze.UUID == uuid.Nil {
		ze.UUID = uuid.New()
	}
	if err := s.store.CreateZaakEigenschap(ctx, ze); err != nil {
		return nil, err
	}

	url := s.zaakEigenschapURL(ze)
	s.notify(ctx, zaak, "zaakeigenschap", url, notificaties.ActieCreate)
	s.record(ctx, zaak, "zaakeigenschap", url, notificaties.ActieCreate, 201, nil, ze)
	return ze, nil
}

func (s *Service) zaakEigenschapURL(ze *models.ZaakEigenschap) string {
	return s.apiRoot + "/zaken/" + ze.Zaak.String() + "/zaakeigenschappen/" + ze.UUID.String()
}

// UpdateZaakEigenschap replaces the waarde; eigenschap and naam are
// immutable.
func (s *Service) UpdateZaakEigenschap(ctx context.Context, updated *models.ZaakEigenschap) (*models.ZaakEigenschap, error) {
	old, err := s.store.GetZaakEigenschap(ctx, updated.Zaak, updated.UUID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "zaakeigenschap bestaat niet")
		}
		return nil, err
	}
	zaak, err := s.loadZaak(ctx, old.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return nil, err
	}
	if updated.Eigenschap != "" && updated.Eigenschap != old.Eigenschap {
		return nil, invalid(domainerrors.Param("eigenschap", domainerrors.CodeImmutableField,
			"Dit veld mag niet gewijzigd worden."))
	}
	updated.Eigenschap = old.Eigenschap
	updated.Naam = old.Naam
	if err := s.store.UpdateZaakEigenschap(ctx, updated); err != nil {
		return nil, err
	}

	url := s.zaakEigenschapURL(updated)
	s.notify(ctx, zaak, "zaakeigenschap", url, notificaties.ActieUpdate)
	s.record(ctx, zaak, "zaakeigenschap", url, notificaties.ActieUpdate, 200, old, updated)
	return updated, nil
}

func (s *Service) GetZaakEigenschap(ctx context.Context, zaakID, id uuid.UUID) (*models.ZaakEigenschap, error) {
	if err := s.readCheck(ctx, zaakID); err != nil {
		return nil, err
	}
	ze, err := s.store.GetZaakEigenschap(ctx, zaakID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "zaakeigenschap bestaat niet")
		}
		return nil, err
	}
	return ze, nil
}

func (s *Service) DeleteZaakEigenschap(ctx context.Context, zaakID, id uuid.UUID) error {
	zaak, err := s.loadZaak(ctx, zaakID)
	if err != nil {
		return err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return err
	}
	ze, err := s.store.GetZaakEigenschap(ctx, zaakID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.New(domainerrors.CodeNotFound, "zaakeigenschap bestaat niet")
		}
		return err
	}
	if err := s.store.DeleteZaakEigenschap(ctx, zaakID, id); err != nil {
		return err
	}
	url := s.zaakEigenschapURL(ze)
	s.notify(ctx, zaak, "zaakeigenschap", url, notificaties.ActieDestroy)
	s.record(ctx, zaak, "zaakeigenschap", url, notificaties.ActieDestroy, 204, ze, nil)
	return nil
}

func (s *Service) ListZaakEigenschappen(ctx context.Context, zaakID uuid.UUID) ([]*models.ZaakEigenschap, error) {
	if err := s.readCheck(ctx, zaakID); err != nil {
		return nil, err
	}
	return s.store.ListZaakEigenschappen(ctx, zaakID)
}

// --- zaakobjecten ---

func (s *Service) CreateZaakObject(ctx context.Context, zo *models.ZaakObject) (*models.ZaakObject, error) {
	zaak, err := s.loadZaak(ctx, zo.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return nil, err
	}
	if err := s.validateZaakObject(ctx, zo); err != nil {
		return nil, err
	}

	if zo.UUID == uuid.Nil {
		zo.UUID = uuid.New()
	}
	if err := s.store.CreateZaakObject(ctx, zo); err != nil {
		return nil, err
	}

	url := s.resourceURL("zaakobjecten", zo.UUID)
	s.notify(ctx, zaak, "zaakobject", url, notificaties.ActieCreate)
	s.record(ctx, zaak, "zaakobject", url, notificaties.ActieCreate, 201, nil, zo)
	return zo, nil
}

// UpdateZaakObject replaces the mutable slice of the object link: the
// relatieomschrijving and the inline identification (full replace).
func (s *Service) UpdateZaakObject(ctx context.Context, updated *models.ZaakObject) (*models.ZaakObject, error) {
	old, err := s.store.GetZaakObject(ctx, updated.UUID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "zaakobject bestaat niet")
		}
		return nil, err
	}
	zaak, err := s.loadZaak(ctx, old.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return nil, err
	}

	var params []domainerrors.InvalidParam
	if updated.Object != "" && updated.Object != old.Object {
		params = append(params, domainerrors.Param("object", domainerrors.CodeImmutableField,
			"Dit veld mag niet gewijzigd worden."))
	}
	if updated.ObjectType != "" && updated.ObjectType != old.ObjectType {
		params = append(params, domainerrors.Param("objectType", domainerrors.CodeImmutableField,
			"Dit veld mag niet gewijzigd worden."))
	}
	if len(params) > 0 {
		return nil, invalid(params...)
	}
	updated.Zaak = old.Zaak
	updated.Object = old.Object
	updated.ObjectType = old.ObjectType
	updated.ObjectTypeOverige = old.ObjectTypeOverige
	updated.ObjectTypeOverigeDefinitie = old.ObjectTypeOverigeDefinitie
	updated.Zaakobjecttype = old.Zaakobjecttype

	if err := s.store.UpdateZaakObject(ctx, updated); err != nil {
		return nil, err
	}
	url := s.resourceURL("zaakobjecten", updated.UUID)
	s.notify(ctx, zaak, "zaakobject", url, notificaties.ActieUpdate)
	s.record(ctx, zaak, "zaakobject", url, notificaties.ActieUpdate, 200, old, updated)
	return updated, nil
}

func (s *Service) GetZaakObject(ctx context.Context, id uuid.UUID) (*models.ZaakObject, error) {
	zo, err := s.store.GetZaakObject(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "zaakobject bestaat niet")
		}
		return nil, err
	}
	if err := s.readCheck(ctx, zo.Zaak); err != nil {
		return nil, err
	}
	return zo, nil
}

func (s *Service) DeleteZaakObject(ctx context.Context, id uuid.UUID) error {
	zo, err := s.store.GetZaakObject(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.New(domainerrors.CodeNotFound, "zaakobject bestaat niet")
		}
		return err
	}
	zaak, err := s.loadZaak(ctx, zo.Zaak)
	if err != nil {
		return err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return err
	}
	if err := s.store.DeleteZaakObject(ctx, id); err != nil {
		return err
	}
	url := s.resourceURL("zaakobjecten", id)
	s.notify(ctx, zaak, "zaakobject", url, notificaties.ActieDestroy)
	s.record(ctx, zaak, "zaakobject", url, notificaties.ActieDestroy, 204, zo, nil)
	return nil
}

func (s *Service) ListZaakObjecten(ctx context.Context, filter store.ChildFilter) (store.ListResult[*models.ZaakObject], error) {
	grants, err := s.grantsFor(ctx, autorisaties.ScopeZakenLezen)
	if err != nil {
		return store.ListResult[*models.ZaakObject]{}, err
	}
	filter.Grants = grants
	return s.store.ListZaakObjecten(ctx, filter)
}

// --- zaakinformatieobjecten ---

// CreateZaakInformatieObject links a document to the case with the
// two-phase cross-write: the local row commits first so the documents API
// can see it, then the back-reference is registered on the peer. A peer
// failure deletes the local row again and surfaces pending-relations.
func (s *Service) CreateZaakInformatieObject(ctx context.Context, zio *models.ZaakInformatieObject) (*models.ZaakInformatieObject, error) {
	zaak, err := s.loadZaak(ctx, zio.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return nil, err
	}

	eio, err := s.documents.Informatieobject(ctx, zio.Informatieobject)
	if err != nil {
		return nil, err
	}
	related, err := s.catalog.ZaaktypeHeeftInformatieobjecttype(ctx, zaak.Zaaktype, eio.Informatieobjecttype)
	if err != nil {
		return nil, err
	}
	if !related {
		return nil, invalid(domainerrors.Param("informatieobject", domainerrors.CodeMissingZtIotRelation,
			"Het informatieobjecttype hoort niet bij het zaaktype van de zaak."))
	}

	if zio.UUID == uuid.Nil {
		zio.UUID = uuid.New()
	}
	zio.AardRelatie = zgw.AardRelatieHoortBij
	zio.Registratiedatum = s.now().UTC()
	if err := s.store.CreateZaakInformatieObject(ctx, zio); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, invalid(domainerrors.Param("informatieobject", domainerrors.CodeInvalid,
				"De combinatie van zaak en informatieobject bestaat al."))
		}
		return nil, err
	}

	if _, err := s.documents.RegisterZaakLink(ctx, zio.Informatieobject, s.ZaakURL(zaak.UUID)); err != nil {
		if delErr := s.store.DeleteZaakInformatieObject(ctx, zio.UUID); delErr != nil {
			s.logger.ErrorContext(ctx, "failed to roll back zaakinformatieobject after peer failure",
				"error", delErr, "zaakinformatieobject", zio.UUID)
		}
		return nil, domainerrors.Newf(domainerrors.CodePendingRelations,
			"De relatie kon niet in het documentenregister aangemaakt worden: %v", err)
	}

	url := s.resourceURL("zaakinformatieobjecten", zio.UUID)
	s.notify(ctx, zaak, "zaakinformatieobject", url, notificaties.ActieCreate)
	s.record(ctx, zaak, "zaakinformatieobject", url, notificaties.ActieCreate, 201, nil, zio)
	return zio, nil
}

// UpdateZaakInformatieObject replaces the descriptive fields; zaak and
// informatieobject are immutable.
func (s *Service) UpdateZaakInformatieObject(ctx context.Context, updated *models.ZaakInformatieObject) (*models.ZaakInformatieObject, error) {
	old, err := s.store.GetZaakInformatieObject(ctx, updated.UUID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "zaakinformatieobject bestaat niet")
		}
		return nil, err
	}
	zaak, err := s.loadZaak(ctx, old.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return nil, err
	}

	var params []domainerrors.InvalidParam
	if updated.Informatieobject != "" && updated.Informatieobject != old.Informatieobject {
		params = append(params, domainerrors.Param("informatieobject", domainerrors.CodeImmutableField,
			"Dit veld mag niet gewijzigd worden."))
	}
	if updated.Zaak != uuid.Nil && updated.Zaak != old.Zaak {
		params = append(params, domainerrors.Param("zaak", domainerrors.CodeImmutableField,
			"Dit veld mag niet gewijzigd worden."))
	}
	if len(params) > 0 {
		return nil, invalid(params...)
	}
	updated.Zaak = old.Zaak
	updated.Informatieobject = old.Informatieobject
	updated.AardRelatie = old.AardRelatie
	updated.Registratiedatum = old.Registratiedatum

	if err := s.store.UpdateZaakInformatieObject(ctx, updated); err != nil {
		return nil, err
	}
	url := s.resourceURL("zaakinformatieobjecten", updated.UUID)
	s.notify(ctx, zaak, "zaakinformatieobject", url, notificaties.ActieUpdate)
	s.record(ctx, zaak, "zaakinformatieobject", url, notificaties.ActieUpdate, 200, old, updated)
	return updated, nil
}

func (s *Service) GetZaakInformatieObject(ctx context.Context, id uuid.UUID) (*models.ZaakInformatieObject, error) {
	zio, err := s.store.GetZaakInformatieObject(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "zaakinformatieobject bestaat niet")
		}
		return nil, err
	}
	if err := s.readCheck(ctx, zio.Zaak); err != nil {
		return nil, err
	}
	return zio, nil
}

// DeleteZaakInformatieObject removes the link and the peer back-reference.
func (s *Service) DeleteZaakInformatieObject(ctx context.Context, id uuid.UUID) error {
	zio, err := s.store.GetZaakInformatieObject(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.New(domainerrors.CodeNotFound, "zaakinformatieobject bestaat niet")
		}
		return err
	}
	zaak, err := s.loadZaak(ctx, zio.Zaak)
	if err != nil {
		return err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return err
	}
	if err := s.documents.UnregisterZaakLink(ctx, zio.Informatieobject, s.ZaakURL(zaak.UUID), ""); err != nil {
		s.logger.WarnContext(ctx, "failed to remove peer back-reference",
			"error", err, "zaakinformatieobject", zio.UUID)
	}
	if err := s.store.DeleteZaakInformatieObject(ctx, id); err != nil {
		return err
	}
	url := s.resourceURL("zaakinformatieobjecten", id)
	s.notify(ctx, zaak, "zaakinformatieobject", url, notificaties.ActieDestroy)
	s.record(ctx, zaak, "zaakinformatieobject", url, notificaties.ActieDestroy, 204, zio, nil)
	return nil
}

func (s *Service) ListZaakInformatieObjecten(ctx context.Context, filter store.ChildFilter) (store.ListResult[*models.ZaakInformatieObject], error) {
	grants, err := s.grantsFor(ctx, autorisaties.ScopeZakenLezen)
	if err != nil {
		return store.ListResult[*models.ZaakInformatieObject]{}, err
	}
	filter.Grants = grants
	return s.store.ListZaakInformatieObjecten(ctx, filter)
}

// --- zaakbesluiten ---

// CreateZaakBesluit mirrors a besluit that references the case. Only the
// besluiten API calls this; the besluit must point back at the case.
func (s *Service) CreateZaakBesluit(ctx context.Context, zb *models.ZaakBesluit) (*models.ZaakBesluit, error) {
	zaak, err := s.loadZaak(ctx, zb.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return nil, err
	}
	besluit, err := s.besluiten.Besluit(ctx, zb.Besluit)
	if err != nil {
		return nil, err
	}
	if besluit.Zaak != s.ZaakURL(zaak.UUID) {
		return nil, invalid(domainerrors.Param("besluit", domainerrors.CodeInvalid,
			"Het besluit hoort niet bij deze zaak."))
	}

	if zb.UUID == uuid.Nil {
		zb.UUID = uuid.New()
	}
	if err := s.store.CreateZaakBesluit(ctx, zb); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, invalid(domainerrors.Param("besluit", domainerrors.CodeInvalid,
				"De combinatie van zaak en besluit bestaat al."))
		}
		return nil, err
	}
	url := s.apiRoot + "/zaken/" + zb.Zaak.String() + "/besluiten/" + zb.UUID.String()
	s.notify(ctx, zaak, "zaakbesluit", url, notificaties.ActieCreate)
	return zb, nil
}

func (s *Service) GetZaakBesluit(ctx context.Context, zaakID, id uuid.UUID) (*models.ZaakBesluit, error) {
	if err := s.readCheck(ctx, zaakID); err != nil {
		return nil, err
	}
	zb, err := s.store.GetZaakBesluit(ctx, zaakID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "zaakbesluit bestaat niet")
		}
		return nil, err
	}
	return zb, nil
}

func (s *Service) DeleteZaakBesluit(ctx context.Context, zaakID, id uuid.UUID) error {
	zaak, err := s.loadZaak(ctx, zaakID)
	if err != nil {
		return err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return err
	}
	if err := s.store.DeleteZaakBesluit(ctx, zaakID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.New(domainerrors.CodeNotFound, "zaakbesluit bestaat niet")
		}
		return err
	}
	url := s.apiRoot + "/zaken/" + zaakID.String() + "/besluiten/" + id.String()
	s.notify(ctx, zaak, "zaakbesluit", url, notificaties.ActieDestroy)
	return nil
}

func (s *Service) ListZaakBesluiten(ctx context.Context, zaakID uuid.UUID) ([]*models.ZaakBesluit, error) {
	if err := s.readCheck(ctx, zaakID); err != nil {
		return nil, err
	}
	return s.store.ListZaakBesluiten(ctx, zaakID)
}

// --- zaakcontactmomenten ---

// CreateZaakContactMoment follows the same two-phase pattern as the
// document links, against the contactmomenten API.
func (s *Service) CreateZaakContactMoment(ctx context.Context, zcm *models.ZaakContactMoment) (*models.ZaakContactMoment, error) {
	zaak, err := s.loadZaak(ctx, zcm.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return nil, err
	}
	if err := s.refs.ValidateURL(zcm.Contactmoment); err != nil {
		return nil, err
	}

	if zcm.UUID == uuid.Nil {
		zcm.UUID = uuid.New()
	}
	if err := s.store.CreateZaakContactMoment(ctx, zcm); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, invalid(domainerrors.Param("contactmoment", domainerrors.CodeInvalid,
				"De combinatie van zaak en contactmoment bestaat al."))
		}
		return nil, err
	}

	backref, err := s.links.RegisterContactmoment(ctx, zcm.Contactmoment, s.ZaakURL(zaak.UUID))
	if err != nil {
		if delErr := s.store.DeleteZaakContactMoment(ctx, zcm.UUID); delErr != nil {
			s.logger.ErrorContext(ctx, "failed to roll back zaakcontactmoment after peer failure",
				"error", delErr, "zaakcontactmoment", zcm.UUID)
		}
		return nil, domainerrors.Newf(domainerrors.CodePendingRelations,
			"Het objectcontactmoment kon niet aangemaakt worden: %v", err)
	}
	// Persist the back-reference: the delete path needs it to unregister
	// the objectcontactmoment at the peer.
	zcm.ObjectContactMoment = backref
	if err := s.store.UpdateZaakContactMoment(ctx, zcm); err != nil {
		return nil, err
	}

	url := s.resourceURL("zaakcontactmomenten", zcm.UUID)
	s.notify(ctx, zaak, "zaakcontactmoment", url, notificaties.ActieCreate)
	return zcm, nil
}

func (s *Service) GetZaakContactMoment(ctx context.Context, id uuid.UUID) (*models.ZaakContactMoment, error) {
	zcm, err := s.store.GetZaakContactMoment(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "zaakcontactmoment bestaat niet")
		}
		return nil, err
	}
	if err := s.readCheck(ctx, zcm.Zaak); err != nil {
		return nil, err
	}
	return zcm, nil
}

func (s *Service) DeleteZaakContactMoment(ctx context.Context, id uuid.UUID) error {
	zcm, err := s.store.GetZaakContactMoment(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.New(domainerrors.CodeNotFound, "zaakcontactmoment bestaat niet")
		}
		return err
	}
	zaak, err := s.loadZaak(ctx, zcm.Zaak)
	if err != nil {
		return err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return err
	}
	if err := s.links.Unregister(ctx, zcm.ObjectContactMoment); err != nil {
		return domainerrors.Newf(domainerrors.CodePendingRelations,
			"Het objectcontactmoment kon niet verwijderd worden: %v", err)
	}
	if err := s.store.DeleteZaakContactMoment(ctx, id); err != nil {
		return err
	}
	url := s.resourceURL("zaakcontactmomenten", id)
	s.notify(ctx, zaak, "zaakcontactmoment", url, notificaties.ActieDestroy)
	return nil
}

func (s *Service) ListZaakContactMomenten(ctx context.Context, filter store.ChildFilter) (store.ListResult[*models.ZaakContactMoment], error) {
	grants, err := s.grantsFor(ctx, autorisaties.ScopeZakenLezen)
	if err != nil {
		return store.ListResult[*models.ZaakContactMoment]{}, err
	}
	filter.Grants = grants
	return s.store.ListZaakContactMomenten(ctx, filter)
}

// --- zaakverzoeken ---

func (s *Service) CreateZaakVerzoek(ctx context.Context, zv *models.ZaakVerzoek) (*models.ZaakVerzoek, error) {
	zaak, err := s.loadZaak(ctx, zv.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return nil, err
	}
	if err := s.refs.ValidateURL(zv.Verzoek); err != nil {
		return nil, err
	}

	if zv.UUID == uuid.Nil {
		zv.UUID = uuid.New()
	}
	if err := s.store.CreateZaakVerzoek(ctx, zv); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, invalid(domainerrors.Param("verzoek", domainerrors.CodeInvalid,
				"De combinatie van zaak en verzoek bestaat al."))
		}
		return nil, err
	}

	backref, err := s.links.RegisterVerzoek(ctx, zv.Verzoek, s.ZaakURL(zaak.UUID))
	if err != nil {
		if delErr := s.store.DeleteZaakVerzoek(ctx, zv.UUID); delErr != nil {
			s.logger.ErrorContext(ctx, "failed to roll back zaakverzoek after peer failure",
				"error", delErr, "zaakverzoek", zv.UUID)
		}
		return nil, domainerrors.Newf(domainerrors.CodePendingRelations,
			"Het objectverzoek kon niet aangemaakt worden: %v", err)
	}
	// Persist the back-reference for the delete path, same as the
	// contactmoment link.
	zv.ObjectVerzoek = backref
	if err := s.store.UpdateZaakVerzoek(ctx, zv); err != nil {
		return nil, err
	}

	url := s.resourceURL("zaakverzoeken", zv.UUID)
	s.notify(ctx, zaak, "zaakverzoek", url, notificaties.ActieCreate)
	return zv, nil
}

func (s *Service) GetZaakVerzoek(ctx context.Context, id uuid.UUID) (*models.ZaakVerzoek, error) {
	zv, err := s.store.GetZaakVerzoek(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "zaakverzoek bestaat niet")
		}
		return nil, err
	}
	if err := s.readCheck(ctx, zv.Zaak); err != nil {
		return nil, err
	}
	return zv, nil
}

func (s *Service) DeleteZaakVerzoek(ctx context.Context, id uuid.UUID) error {
	zv, err := s.store.GetZaakVerzoek(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.New(domainerrors.CodeNotFound, "zaakverzoek bestaat niet")
		}
		return err
	}
	zaak, err := s.loadZaak(ctx, zv.Zaak)
	if err != nil {
		return err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return err
	}
	if err := s.links.Unregister(ctx, zv.ObjectVerzoek); err != nil {
		return domainerrors.Newf(domainerrors.CodePendingRelations,
			"Het objectverzoek kon niet verwijderd worden: %v", err)
	}
	if err := s.store.DeleteZaakVerzoek(ctx, id); err != nil {
		return err
	}
	url := s.resourceURL("zaakverzoeken", id)
	s.notify(ctx, zaak, "zaakverzoek", url, notificaties.ActieDestroy)
	return nil
}

func (s *Service) ListZaakVerzoeken(ctx context.Context, filter store.ChildFilter) (store.ListResult[*models.ZaakVerzoek], error) {
	grants, err := s.grantsFor(ctx, autorisaties.ScopeZakenLezen)
	if err != nil {
		return store.ListResult[*models.ZaakVerzoek]{}, err
	}
	filter.Grants = grants
	return s.store.ListZaakVerzoeken(ctx, filter)
}

// --- klantcontacten ---

const klantcontactAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomIdentificatie(n int) string {
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(klantcontactAlphabet))))
		if err != nil {
			idx = big.NewInt(int64(time.Now().UnixNano()) % int64(len(klantcontactAlphabet)))
		}
		out[i] = klantcontactAlphabet[idx.Int64()]
	}
	return string(out)
}

// CreateKlantContact records a client contact. An omitted identificatie
// gets a random 12-character one.
func (s *Service) CreateKlantContact(ctx context.Context, kc *models.KlantContact) (*models.KlantContact, error) {
	zaak, err := s.loadZaak(ctx, kc.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, zaak); err != nil {
		return nil, err
	}
	if kc.Datumtijd.IsZero() {
		return nil, invalid(domainerrors.Param("datumtijd", domainerrors.CodeRequired, "Dit veld is vereist."))
	}
	if kc.Datumtijd.After(s.now()) {
		return nil, invalid(domainerrors.Param("datumtijd", domainerrors.CodeDateInFuture,
			"Deze datum mag niet in de toekomst zijn."))
	}

	if kc.UUID == uuid.Nil {
		kc.UUID = uuid.New()
	}
	if kc.Identificatie == "" {
		kc.Identificatie = randomIdentificatie(12)
	}
	if err := s.store.CreateKlantContact(ctx, kc); err != nil {
		return nil, err
	}

	url := s.resourceURL("klantcontacten", kc.UUID)
	s.notify(ctx, zaak, "klantcontact", url, notificaties.ActieCreate)
	return kc, nil
}

func (s *Service) GetKlantContact(ctx context.Context, id uuid.UUID) (*models.KlantContact, error) {
	kc, err := s.store.GetKlantContact(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "klantcontact bestaat niet")
		}
		return nil, err
	}
	if err := s.readCheck(ctx, kc.Zaak); err != nil {
		return nil, err
	}
	return kc, nil
}

func (s *Service) ListKlantContacten(ctx context.Context, filter store.ChildFilter) (store.ListResult[*models.KlantContact], error) {
	grants, err := s.grantsFor(ctx, autorisaties.ScopeZakenLezen)
	if err != nil {
		return store.ListResult[*models.KlantContact]{}, err
	}
	filter.Grants = grants
	return s.store.ListKlantContacten(ctx, filter)
}
