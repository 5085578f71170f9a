package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"zaakregister/internal/notificaties"
	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
)

// AfsluitenInput bundles the pieces of the one-call close operation.
// Zaak carries the merged case when the request updates fields alongside
// the close, or nil when the case is closed as-is. Resultaat is optional
// when the case already has one.
type AfsluitenInput struct {
	Zaak      *models.Zaak
	Resultaat *models.Resultaat
	Status    *models.Status
}

// AfsluitenResult returns the three resources the close produced.
type AfsluitenResult struct {
	Zaak      *models.Zaak
	Resultaat *models.Resultaat
	Status    *models.Status
}

// Afsluiten closes a case in one transaction: an optional case update, the
// resultaat when the case has none yet, and the end status. Every invariant
// of the individual operations applies unchanged.
func (s *Service) Afsluiten(ctx context.Context, zaakID uuid.UUID, input AfsluitenInput) (*AfsluitenResult, error) {
	old, err := s.loadZaak(ctx, zaakID)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, old); err != nil {
		return nil, err
	}

	status := input.Status
	if status == nil {
		return nil, invalid(domainerrors.Param("status", domainerrors.CodeRequired, "Dit veld is vereist."))
	}
	statustype, err := s.catalog.Statustype(ctx, status.Statustype)
	if err != nil {
		return nil, err
	}
	if statustype.Zaaktype != old.Zaaktype {
		return nil, invalid(domainerrors.Param("status.statustype", domainerrors.CodeZaaktypeMismatch,
			"Het statustype hoort niet bij het zaaktype van de zaak."))
	}
	if !statustype.IsEindstatus {
		return nil, invalid(domainerrors.Param("status.statustype", domainerrors.CodeEindstatusRequired,
			"Het statustype is geen eindstatus."))
	}
	if err := s.checkStatusScope(ctx, old, true); err != nil {
		return nil, err
	}
	if status.DatumStatusGezet.IsZero() {
		return nil, invalid(domainerrors.Param("status.datumStatusGezet", domainerrors.CodeRequired,
			"Dit veld is vereist."))
	}
	if status.DatumStatusGezet.After(s.now()) {
		return nil, invalid(domainerrors.Param("status.datumStatusGezet", domainerrors.CodeDateInFuture,
			"Deze datum mag niet in de toekomst zijn."))
	}
	status.Zaak = old.UUID
	if status.UUID == uuid.Nil {
		status.UUID = uuid.New()
	}

	// Optional case update, with the same guards as a standalone update.
	updated := *old
	if input.Zaak != nil {
		input.Zaak.UUID = old.UUID
		if err := validateImmutable(old, input.Zaak); err != nil {
			return nil, err
		}
		input.Zaak.Einddatum = old.Einddatum
		applyOpschortingLatch(old, input.Zaak)
		if params := s.validateZaakFields(input.Zaak); len(params) > 0 {
			return nil, invalid(params...)
		}
		if err := s.validateZaakReferences(ctx, input.Zaak, false); err != nil {
			return nil, err
		}
		if err := s.validateArchiefstatus(ctx, old, input.Zaak); err != nil {
			return nil, err
		}
		updated = *input.Zaak
	}

	// The resultaat: create-if-absent semantics.
	resultaat, err := s.store.GetResultaatByZaak(ctx, old.UUID)
	createResultaat := false
	switch {
	case err == nil:
		if input.Resultaat != nil {
			return nil, invalid(domainerrors.Param("resultaat", domainerrors.CodeInvalid,
				"De zaak heeft al een resultaat."))
		}
	case errors.Is(err, store.ErrNotFound):
		if input.Resultaat == nil {
			return nil, invalid(domainerrors.Param("resultaat", domainerrors.CodeResultaatOntbreekt,
				"De zaak heeft nog geen resultaat, dat vereist is om af te sluiten."))
		}
		resultaat = input.Resultaat
		resultaat.Zaak = old.UUID
		if resultaat.UUID == uuid.Nil {
			resultaat.UUID = uuid.New()
		}
		createResultaat = true
	default:
		return nil, err
	}

	resultaattype, err := s.catalog.Resultaattype(ctx, resultaat.Resultaattype)
	if err != nil {
		return nil, err
	}
	if resultaattype.Zaaktype != old.Zaaktype {
		return nil, invalid(domainerrors.Param("resultaat.resultaattype", domainerrors.CodeZaaktypeMismatch,
			"Het resultaattype hoort niet bij het zaaktype van de zaak."))
	}

	if err := s.checkClosurePreconditions(ctx, old); err != nil {
		return nil, err
	}
	if err := s.deriveClosure(ctx, &updated, status, resultaattype); err != nil {
		return nil, err
	}

	err = s.store.InTx(ctx, func(tx store.Store) error {
		if createResultaat {
			if err := tx.CreateResultaat(ctx, resultaat); err != nil {
				return err
			}
		}
		if err := tx.CreateStatus(ctx, status); err != nil {
			if errors.Is(err, store.ErrStatusConflict) {
				return invalid(domainerrors.Param("status.datumStatusGezet", domainerrors.CodeInvalid,
					"Er bestaat al een status met deze datumStatusGezet voor de zaak."))
			}
			return err
		}
		return tx.UpdateZaak(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	if createResultaat {
		resultaatURL := s.resourceURL("resultaten", resultaat.UUID)
		s.notify(ctx, &updated, "resultaat", resultaatURL, notificaties.ActieCreate)
		s.record(ctx, &updated, "resultaat", resultaatURL, notificaties.ActieCreate, 201, nil, resultaat)
	}
	s.notify(ctx, &updated, "status", s.StatusURL(status.UUID), notificaties.ActieCreate)
	s.record(ctx, &updated, "status", s.StatusURL(status.UUID), notificaties.ActieCreate, 201, nil, status)
	s.notify(ctx, &updated, "zaak", s.ZaakURL(updated.UUID), notificaties.ActieUpdate)
	s.record(ctx, &updated, "zaak", s.ZaakURL(updated.UUID), notificaties.ActieUpdate, 200, old, &updated)

	if err := s.markLatest(ctx, status); err != nil {
		return nil, err
	}
	return &AfsluitenResult{Zaak: &updated, Resultaat: resultaat, Status: status}, nil
}
