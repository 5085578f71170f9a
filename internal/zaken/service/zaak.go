package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"zaakregister/internal/autorisaties"
	"zaakregister/internal/notificaties"
	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/types"
	"zaakregister/pkg/validation"
	"zaakregister/pkg/zgw"
)

// CreateZaak validates and persists a new case. An omitted identificatie is
// minted; a supplied one must be unique within the bronorganisatie, unless
// it matches an unattached reservation, which is then claimed.
func (s *Service) CreateZaak(ctx context.Context, zaak *models.Zaak) (*models.Zaak, error) {
	if err := s.filter.CheckAccess(ctx, appFrom(ctx), autorisaties.ScopeZakenAanmaken,
		zaak.Zaaktype, zaak.Vertrouwelijkheidaanduiding); err != nil {
		return nil, err
	}

	s.applyZaakDefaults(zaak)
	if params := s.validateZaakFields(zaak); len(params) > 0 {
		return nil, invalid(params...)
	}
	if err := s.validateZaakReferences(ctx, zaak, true); err != nil {
		return nil, err
	}

	if zaak.Identificatie.Identificatie == "" {
		ident, err := s.store.GenerateIdentificatie(ctx,
			zaak.Identificatie.Bronorganisatie, zaak.Registratiedatum.Time().Year())
		if err != nil {
			return nil, err
		}
		zaak.Identificatie.Identificatie = ident
	} else {
		reserved, err := s.store.ReservationAvailable(ctx,
			zaak.Identificatie.Bronorganisatie, zaak.Identificatie.Identificatie)
		if err != nil {
			return nil, err
		}
		if !reserved {
			exists, err := s.store.IdentificatieExists(ctx,
				zaak.Identificatie.Bronorganisatie, zaak.Identificatie.Identificatie)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, invalid(domainerrors.Param("identificatie",
					domainerrors.CodeIdentificatieNietUniek,
					"Deze identificatie bestaat al binnen de bronorganisatie."))
			}
		}
	}

	if err := s.store.CreateZaak(ctx, zaak); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, invalid(domainerrors.Param("identificatie",
				domainerrors.CodeIdentificatieNietUniek,
				"Deze identificatie bestaat al binnen de bronorganisatie."))
		}
		return nil, err
	}

	if err := s.mirrorRelevanteZaken(ctx, zaak); err != nil {
		s.logger.WarnContext(ctx, "failed to mirror relevante zaken", "error", err, "zaak", zaak.UUID)
	}

	if s.metrics != nil {
		s.metrics.ZakenCreated.Inc()
	}
	s.notify(ctx, zaak, "zaak", s.ZaakURL(zaak.UUID), notificaties.ActieCreate)
	s.record(ctx, zaak, "zaak", s.ZaakURL(zaak.UUID), notificaties.ActieCreate, 201, nil, zaak)
	return zaak, nil
}

func (s *Service) applyZaakDefaults(zaak *models.Zaak) {
	if zaak.UUID == uuid.Nil {
		zaak.UUID = uuid.New()
	}
	if zaak.Registratiedatum.IsZero() {
		zaak.Registratiedatum = types.DateOf(s.now().In(s.tz))
	}
	if zaak.Vertrouwelijkheidaanduiding == "" {
		zaak.Vertrouwelijkheidaanduiding = zgw.VAOpenbaar
	}
	if zaak.Betalingsindicatie == "" {
		zaak.Betalingsindicatie = zgw.BetalingNvt
	}
	if zaak.Archiefstatus == "" {
		zaak.Archiefstatus = zgw.ArchiefstatusNogTeArchiveren
	}
	if zaak.Opschorting.Indicatie {
		zaak.Opschorting.EerdereOpschorting = true
	}
}

// mirrorRelevanteZaken creates the symmetric relation row on local peers.
func (s *Service) mirrorRelevanteZaken(ctx context.Context, zaak *models.Zaak) error {
	own := s.ZaakURL(zaak.UUID)
	for _, relatie := range zaak.RelevanteAndereZaken {
		if !s.refs.IsLocal(relatie.URL) {
			continue
		}
		peer, err := s.localZaakByURL(ctx, relatie.URL)
		if err != nil {
			return err
		}
		already := false
		for _, existing := range peer.RelevanteAndereZaken {
			if existing.URL == own {
				already = true
				break
			}
		}
		if already {
			continue
		}
		peer.RelevanteAndereZaken = append(peer.RelevanteAndereZaken, models.RelevanteZaakRelatie{
			URL:            own,
			AardRelatie:    relatie.AardRelatie,
			OverigeRelatie: relatie.OverigeRelatie,
		})
		if err := s.store.UpdateZaak(ctx, peer); err != nil {
			return err
		}
	}
	return nil
}

// GetZaak serves the detail read with the row-level authorization check.
func (s *Service) GetZaak(ctx context.Context, id uuid.UUID) (*models.Zaak, error) {
	zaak, err := s.loadZaak(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkZaakScope(ctx, zaak, autorisaties.ScopeZakenLezen); err != nil {
		return nil, err
	}
	return zaak, nil
}

// UpdateZaak applies a full or partial update. The handler builds the
// updated model from the old one; the service enforces immutability, the
// archive guards, the opschorting latch and the closed-case scope.
func (s *Service) UpdateZaak(ctx context.Context, updated *models.Zaak, partial bool) (*models.Zaak, error) {
	old, err := s.loadZaak(ctx, updated.UUID)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutationScope(ctx, old); err != nil {
		return nil, err
	}
	if err := validateImmutable(old, updated); err != nil {
		return nil, err
	}

	// Einddatum and the latch are server-managed.
	updated.Einddatum = old.Einddatum
	applyOpschortingLatch(old, updated)

	if params := s.validateZaakFields(updated); len(params) > 0 {
		return nil, invalid(params...)
	}
	if err := s.validateZaakReferences(ctx, updated, false); err != nil {
		return nil, err
	}
	if err := s.validateArchiefstatus(ctx, old, updated); err != nil {
		return nil, err
	}

	if err := s.store.UpdateZaak(ctx, updated); err != nil {
		return nil, err
	}
	if err := s.mirrorRelevanteZaken(ctx, updated); err != nil {
		s.logger.WarnContext(ctx, "failed to mirror relevante zaken", "error", err, "zaak", updated.UUID)
	}

	actie := notificaties.ActieUpdate
	if partial {
		actie = notificaties.ActiePartialUpdate
	}
	s.notify(ctx, updated, "zaak", s.ZaakURL(updated.UUID), actie)
	s.record(ctx, updated, "zaak", s.ZaakURL(updated.UUID), actie, 200, old, updated)
	return updated, nil
}

// DeleteZaak removes the case and all its children.
func (s *Service) DeleteZaak(ctx context.Context, id uuid.UUID) error {
	zaak, err := s.loadZaak(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkZaakScope(ctx, zaak, autorisaties.ScopeZakenVerwijderen); err != nil {
		return err
	}
	if err := s.store.DeleteZaak(ctx, id); err != nil {
		return err
	}
	s.notify(ctx, zaak, "zaak", s.ZaakURL(zaak.UUID), notificaties.ActieDestroy)
	s.record(ctx, zaak, "zaak", s.ZaakURL(zaak.UUID), notificaties.ActieDestroy, 204, zaak, nil)
	return nil
}

// ListZaken serves the list and search reads under the caller's grants.
func (s *Service) ListZaken(ctx context.Context, filter store.ZaakFilter) (store.ListResult[*models.Zaak], error) {
	grants, err := s.grantsFor(ctx, autorisaties.ScopeZakenLezen)
	if err != nil {
		return store.ListResult[*models.Zaak]{}, err
	}
	filter.Grants = grants
	return s.store.ListZaken(ctx, filter)
}

// Deelzaken lists the child cases of a case.
func (s *Service) Deelzaken(ctx context.Context, zaak *models.Zaak) ([]*models.Zaak, error) {
	listing, err := s.store.ListZaken(ctx, store.ZaakFilter{
		Grants:    store.Grants{All: true},
		Hoofdzaak: s.ZaakURL(zaak.UUID),
	})
	if err != nil {
		return nil, err
	}
	return listing.Items, nil
}

// ReserveIdentificatie mints a zaaknummer ahead of case creation.
func (s *Service) ReserveIdentificatie(ctx context.Context, bronorganisatie string) (string, error) {
	if err := s.filter.CheckScope(appFrom(ctx), autorisaties.ScopeZakenAanmaken); err != nil {
		return "", err
	}
	if !validation.IsRSIN(bronorganisatie) {
		return "", invalid(domainerrors.Param("bronorganisatie", domainerrors.CodeInvalid,
			"Onjuist RSIN nummer."))
	}
	ident, err := s.store.GenerateIdentificatie(ctx, bronorganisatie, s.now().In(s.tz).Year())
	if err != nil {
		return "", err
	}
	if s.metrics != nil {
		s.metrics.IdentificationsReserved.Inc()
	}
	return ident, nil
}
