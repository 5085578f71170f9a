package handler

import (
	"encoding/json"
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/service"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/types"
)

func zaakFilterFromQuery(r *http.Request) (store.ZaakFilter, error) {
	q := r.URL.Query()
	filter := store.ZaakFilter{
		Identificatie:    q.Get("identificatie"),
		Bronorganisatie:  q.Get("bronorganisatie"),
		Zaaktype:         q.Get("zaaktype"),
		Archiefnominatie: q.Get("archiefnominatie"),
		Archiefstatus:    q.Get("archiefstatus"),
		Ordering:         q.Get("ordering"),
		Page:             parsePage(r),
	}
	if raw := q.Get("startdatum__gte"); raw != "" {
		d, err := types.ParseDate(raw)
		if err != nil {
			return filter, invalidQuery("startdatum__gte")
		}
		filter.StartdatumFrom = &d
	}
	if raw := q.Get("startdatum__lte"); raw != "" {
		d, err := types.ParseDate(raw)
		if err != nil {
			return filter, invalidQuery("startdatum__lte")
		}
		filter.StartdatumUntil = &d
	}
	if raw := q.Get("einddatum__isnull"); raw != "" {
		closed := raw == "false"
		filter.EinddatumSet = &closed
	}
	return filter, nil
}

func invalidQuery(name string) error {
	return domainerrors.NewValidation(domainerrors.Param(name, domainerrors.CodeInvalid,
		"Ongeldige waarde."))
}

func (h *Handler) renderZaken(w http.ResponseWriter, r *http.Request, page store.Page, listing store.ListResult[*models.Zaak]) {
	results := make([]*zaakJSON, 0, len(listing.Items))
	for _, zaak := range listing.Items {
		zctx, err := h.svc.ZaakContext(r.Context(), zaak)
		if err != nil {
			h.error(w, r, err)
			return
		}
		results = append(results, h.zaakToJSON(zaak, zctx))
	}
	respond(w, http.StatusOK, envelope(r, page, listing.Count, listing.CountExact, len(results), results))
}

func (h *Handler) listZaken(w http.ResponseWriter, r *http.Request) {
	filter, err := zaakFilterFromQuery(r)
	if err != nil {
		h.error(w, r, err)
		return
	}
	listing, err := h.svc.ListZaken(r.Context(), filter)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.renderZaken(w, r, filter.Page, listing)
}

// zoekZaken is the geo search escape hatch: filters that do not fit in a
// query string travel in the body.
func (h *Handler) zoekZaken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Zaakgeometrie struct {
			Within *geojson.Geometry `json:"within"`
		} `json:"zaakgeometrie"`
	}
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	filter, err := zaakFilterFromQuery(r)
	if err != nil {
		h.error(w, r, err)
		return
	}
	if body.Zaakgeometrie.Within == nil {
		h.error(w, r, domainerrors.NewValidation(domainerrors.Param(
			"zaakgeometrie.within", domainerrors.CodeRequired, "Dit veld is vereist.")))
		return
	}
	polygon, ok := body.Zaakgeometrie.Within.Geometry().(orb.Polygon)
	if !ok {
		h.error(w, r, domainerrors.NewValidation(domainerrors.Param(
			"zaakgeometrie.within", domainerrors.CodeInvalid, "Alleen polygonen worden ondersteund.")))
		return
	}
	filter.Within = polygon

	listing, err := h.svc.ListZaken(r.Context(), filter)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.renderZaken(w, r, filter.Page, listing)
}

func (h *Handler) createZaak(w http.ResponseWriter, r *http.Request) {
	var wire zaakJSON
	if err := decode(r, &wire); err != nil {
		h.error(w, r, err)
		return
	}
	zaak := &models.Zaak{}
	if err := zaakFromJSON(&wire, zaak); err != nil {
		h.error(w, r, err)
		return
	}
	created, err := h.svc.CreateZaak(r.Context(), zaak)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.created(w, h.svc.ZaakURL(created.UUID), h.zaakToJSON(created, nil))
}

func (h *Handler) getZaak(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	zaak, err := h.svc.GetZaak(r.Context(), id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	zctx, err := h.svc.ZaakContext(r.Context(), zaak)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.respondConditional(w, r, h.zaakToJSON(zaak, zctx))
}

// mergeZaak decodes the request body on top of the current resource state,
// which makes PATCH a JSON merge and PUT a full replace in one code path.
func (h *Handler) mergeZaak(existing *models.Zaak, raw []byte) (*models.Zaak, error) {
	wire := h.zaakToJSON(existing, nil)
	if err := json.Unmarshal(raw, wire); err != nil {
		return nil, badBody(err)
	}
	updated := *existing
	if err := zaakFromJSON(wire, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (h *Handler) updateZaak(partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "uuid")
		if err != nil {
			h.error(w, r, err)
			return
		}
		existing, err := h.svc.GetZaak(r.Context(), id)
		if err != nil {
			h.error(w, r, err)
			return
		}
		var raw json.RawMessage
		if err := decode(r, &raw); err != nil {
			h.error(w, r, err)
			return
		}
		updated, err := h.mergeZaak(existing, raw)
		if err != nil {
			h.error(w, r, err)
			return
		}
		saved, err := h.svc.UpdateZaak(r.Context(), updated, partial)
		if err != nil {
			h.error(w, r, err)
			return
		}
		zctx, err := h.svc.ZaakContext(r.Context(), saved)
		if err != nil {
			h.error(w, r, err)
			return
		}
		respond(w, http.StatusOK, h.zaakToJSON(saved, zctx))
	}
}

func (h *Handler) deleteZaak(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	if err := h.svc.DeleteZaak(r.Context(), id); err != nil {
		h.error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// afsluitenZaak closes a case in one call: an optional zaak update, a
// resultaat when the case has none yet, and the end status.
func (h *Handler) afsluitenZaak(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	var body struct {
		Zaak      json.RawMessage   `json:"zaak"`
		Resultaat *resultaatRequest `json:"resultaat"`
		Status    *statusRequest    `json:"status"`
	}
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}

	input := service.AfsluitenInput{}
	if len(body.Zaak) > 0 && string(body.Zaak) != "null" {
		existing, err := h.svc.GetZaak(r.Context(), id)
		if err != nil {
			h.error(w, r, err)
			return
		}
		updated, err := h.mergeZaak(existing, body.Zaak)
		if err != nil {
			h.error(w, r, err)
			return
		}
		input.Zaak = updated
	}
	if body.Resultaat != nil {
		input.Resultaat = &models.Resultaat{
			Resultaattype: body.Resultaat.Resultaattype,
			Toelichting:   body.Resultaat.Toelichting,
		}
	}
	if body.Status != nil {
		input.Status = &models.Status{
			Statustype:        body.Status.Statustype,
			DatumStatusGezet:  body.Status.DatumStatusGezet,
			Statustoelichting: body.Status.Statustoelichting,
		}
	}

	result, err := h.svc.Afsluiten(r.Context(), id, input)
	if err != nil {
		h.error(w, r, err)
		return
	}
	zctx, err := h.svc.ZaakContext(r.Context(), result.Zaak)
	if err != nil {
		h.error(w, r, err)
		return
	}
	// The close touched three resources; all come back freshly serialised.
	respond(w, http.StatusOK, map[string]any{
		"zaak":      h.zaakToJSON(result.Zaak, zctx),
		"resultaat": h.resultaatToJSON(result.Resultaat),
		"status":    h.statusToJSON(result.Status),
	})
}

func (h *Handler) reserveZaaknummer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Bronorganisatie string `json:"bronorganisatie"`
	}
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	zaaknummer, err := h.svc.ReserveIdentificatie(r.Context(), body.Bronorganisatie)
	if err != nil {
		h.error(w, r, err)
		return
	}
	respond(w, http.StatusCreated, map[string]string{
		"zaaknummer":      zaaknummer,
		"bronorganisatie": body.Bronorganisatie,
	})
}

func (h *Handler) listAuditTrail(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	records, err := h.svc.AuditTrail(r.Context(), id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	results := make([]*auditRecordJSON, 0, len(records))
	for _, record := range records {
		results = append(results, auditRecordToJSON(record))
	}
	respond(w, http.StatusOK, results)
}
