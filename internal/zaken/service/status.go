package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"zaakregister/internal/autorisaties"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/notificaties"
	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/types"
)

// CreateStatus appends a status to a case and runs the closure pipeline when
// the statustype is an end status, or the reopen transition when a closed
// case receives a non-end status.
func (s *Service) CreateStatus(ctx context.Context, status *models.Status) (*models.Status, error) {
	zaak, err := s.loadZaak(ctx, status.Zaak)
	if err != nil {
		return nil, err
	}

	statustype, err := s.catalog.Statustype(ctx, status.Statustype)
	if err != nil {
		return nil, err
	}
	if statustype.Zaaktype != zaak.Zaaktype {
		return nil, invalid(domainerrors.Param("statustype", domainerrors.CodeZaaktypeMismatch,
			"Het statustype hoort niet bij het zaaktype van de zaak."))
	}

	if err := s.checkStatusScope(ctx, zaak, statustype.IsEindstatus); err != nil {
		return nil, err
	}

	if status.DatumStatusGezet.IsZero() {
		return nil, invalid(domainerrors.Param("datumStatusGezet", domainerrors.CodeRequired,
			"Dit veld is vereist."))
	}
	if status.DatumStatusGezet.After(s.now()) {
		return nil, invalid(domainerrors.Param("datumStatusGezet", domainerrors.CodeDateInFuture,
			"Deze datum mag niet in de toekomst zijn."))
	}
	if status.UUID == uuid.Nil {
		status.UUID = uuid.New()
	}

	if statustype.IsEindstatus {
		if err := s.checkClosurePreconditions(ctx, zaak); err != nil {
			return nil, err
		}
	}

	// Compute the intended case mutations before touching storage, so the
	// insert and the case update commit together.
	updatedZaak, zaakChanged, err := s.applyLifecycle(ctx, zaak, status, statustype.IsEindstatus)
	if err != nil {
		return nil, err
	}

	err = s.store.InTx(ctx, func(tx store.Store) error {
		if err := tx.CreateStatus(ctx, status); err != nil {
			if errors.Is(err, store.ErrStatusConflict) {
				return invalid(domainerrors.Param("datumStatusGezet", domainerrors.CodeInvalid,
					"Er bestaat al een status met deze datumStatusGezet voor de zaak."))
			}
			return err
		}
		if zaakChanged {
			return tx.UpdateZaak(ctx, updatedZaak)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, updatedZaak, "status", s.StatusURL(status.UUID), notificaties.ActieCreate)
	s.record(ctx, updatedZaak, "status", s.StatusURL(status.UUID), notificaties.ActieCreate, 201, nil, status)
	if zaakChanged {
		s.notify(ctx, updatedZaak, "zaak", s.ZaakURL(updatedZaak.UUID), notificaties.ActieUpdate)
	}
	if err := s.markLatest(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

// markLatest computes IndicatieLaatstGezetteStatus by comparing each status
// against the most recent one of its case. Statuses of the same case share
// one lookup.
func (s *Service) markLatest(ctx context.Context, statuses ...*models.Status) error {
	latest := make(map[uuid.UUID]uuid.UUID, 1)
	for _, status := range statuses {
		if _, ok := latest[status.Zaak]; ok {
			continue
		}
		current, err := s.store.LatestStatus(ctx, status.Zaak)
		if err != nil {
			return err
		}
		latest[status.Zaak] = current.UUID
	}
	for _, status := range statuses {
		status.IndicatieLaatstGezetteStatus = latest[status.Zaak] == status.UUID
	}
	return nil
}

// checkStatusScope applies the scope lattice for status creation: the plain
// scope, the create-scope exemption for the initial status, and the reopen
// scope for closed cases receiving a non-end status.
func (s *Service) checkStatusScope(ctx context.Context, zaak *models.Zaak, isEindstatus bool) error {
	if !isEindstatus && zaak.Closed() {
		if err := s.checkZaakScope(ctx, zaak, autorisaties.ScopeZakenHeropenen); err != nil {
			return err
		}
		return nil
	}

	err := s.checkZaakScope(ctx, zaak, autorisaties.ScopeStatussenToevoegen)
	if err == nil {
		return nil
	}
	// A caller with only zaken.aanmaken may set the initial status.
	n, countErr := s.store.CountStatussen(ctx, zaak.UUID)
	if countErr != nil {
		return countErr
	}
	if n == 0 {
		return s.checkZaakScope(ctx, zaak, autorisaties.ScopeZakenAanmaken)
	}
	return err
}

// checkClosurePreconditions verifies every linked informatieobject is
// unlocked and has its indicatieGebruiksrecht settled.
func (s *Service) checkClosurePreconditions(ctx context.Context, zaak *models.Zaak) error {
	listing, err := s.store.ListZaakInformatieObjecten(ctx, store.AllChildrenOf(zaak.UUID))
	if err != nil {
		return err
	}
	for _, zio := range listing.Items {
		eio, err := s.documents.Informatieobject(ctx, zio.Informatieobject)
		if err != nil {
			return err
		}
		if eio.Locked {
			return invalid(domainerrors.Param("informatieobjecten", domainerrors.CodeIOLocked,
				"Er zijn gerelateerde informatieobjecten die nog gelockt zijn."))
		}
		if eio.IndicatieGebruiksrecht == nil {
			return invalid(domainerrors.Param("informatieobjecten", domainerrors.CodeGebruiksrechtUnset,
				"Er zijn gerelateerde informatieobjecten waarvan indicatieGebruiksrecht nog niet gezet is."))
		}
	}
	return nil
}

// applyLifecycle computes the closure or reopen mutations on a copy of the
// case. It returns the updated case and whether anything changed.
func (s *Service) applyLifecycle(ctx context.Context, zaak *models.Zaak, status *models.Status, isEindstatus bool) (*models.Zaak, bool, error) {
	updated := *zaak

	if isEindstatus {
		resultaat, err := s.store.GetResultaatByZaak(ctx, zaak.UUID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, false, invalid(domainerrors.Param("resultaat",
					domainerrors.CodeResultaatOntbreekt,
					"De zaak heeft nog geen resultaat, dat vereist is om af te sluiten."))
			}
			return nil, false, err
		}
		resultaattype, err := s.catalog.Resultaattype(ctx, resultaat.Resultaattype)
		if err != nil {
			return nil, false, err
		}
		if err := s.deriveClosure(ctx, &updated, status, resultaattype); err != nil {
			return nil, false, err
		}
		return &updated, true, nil
	}

	if zaak.Closed() {
		// Reopen undoes the archive derivation.
		updated.Einddatum = nil
		updated.Archiefnominatie = ""
		updated.Archiefactiedatum = nil
		if s.metrics != nil {
			s.metrics.ZakenReopened.Inc()
		}
		return &updated, true, nil
	}
	return &updated, false, nil
}

// deriveClosure applies the closing mutations to the case: the einddatum
// from the status date, and the archive fields derived from the
// resultaattype where they are still empty.
func (s *Service) deriveClosure(ctx context.Context, updated *models.Zaak, status *models.Status, resultaattype *catalogi.Resultaattype) error {
	// The date part is taken in the configured timezone, not UTC.
	einddatum := types.DateOf(status.DatumStatusGezet.In(s.tz))
	updated.Einddatum = &einddatum

	brondatum, err := s.Brondatum(ctx, updated, resultaattype)
	if err != nil {
		return err
	}
	if updated.Archiefnominatie == "" {
		updated.Archiefnominatie = resultaattype.Archiefnominatie
	}
	if updated.Archiefactiedatum == nil {
		actiedatum, err := Archiefactiedatum(brondatum, resultaattype.Archiefactietermijn)
		if err != nil {
			return err
		}
		updated.Archiefactiedatum = actiedatum
	}
	if updated.StartdatumBewaartermijn == nil {
		updated.StartdatumBewaartermijn = brondatum
	}
	if s.metrics != nil {
		s.metrics.ZakenClosed.Inc()
	}
	return nil
}

// GetStatus serves the detail read.
func (s *Service) GetStatus(ctx context.Context, id uuid.UUID) (*models.Status, error) {
	status, err := s.store.GetStatus(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "status bestaat niet")
		}
		return nil, err
	}
	zaak, err := s.loadZaak(ctx, status.Zaak)
	if err != nil {
		return nil, err
	}
	if err := s.checkZaakScope(ctx, zaak, autorisaties.ScopeZakenLezen); err != nil {
		return nil, err
	}
	if err := s.markLatest(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

// ListStatussen serves the list read under the caller's grants.
func (s *Service) ListStatussen(ctx context.Context, filter store.ChildFilter) (store.ListResult[*models.Status], error) {
	grants, err := s.grantsFor(ctx, autorisaties.ScopeZakenLezen)
	if err != nil {
		return store.ListResult[*models.Status]{}, err
	}
	filter.Grants = grants
	listing, err := s.store.ListStatussen(ctx, filter)
	if err != nil {
		return listing, err
	}
	if err := s.markLatest(ctx, listing.Items...); err != nil {
		return store.ListResult[*models.Status]{}, err
	}
	return listing, nil
}
