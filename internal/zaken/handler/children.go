package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"zaakregister/internal/referentie"
	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/domainerrors"
)

// childFilterFromQuery narrows a flat child listing to one case when the
// caller passed ?zaak=<url>.
func childFilterFromQuery(r *http.Request) (store.ChildFilter, error) {
	filter := store.ChildFilter{Page: parsePage(r)}
	if raw := r.URL.Query().Get("zaak"); raw != "" {
		id, err := referentie.ExtractUUID(raw)
		if err != nil {
			return filter, invalidQuery("zaak")
		}
		filter.Zaak = &id
	}
	return filter, nil
}

func zaakIDFromBody(rawURL, field string) (uuid.UUID, error) {
	if rawURL == "" {
		return uuid.Nil, domainerrors.NewValidation(domainerrors.Param(
			field, domainerrors.CodeRequired, "Dit veld is vereist."))
	}
	id, err := referentie.ExtractUUID(rawURL)
	if err != nil {
		return uuid.Nil, domainerrors.NewValidation(domainerrors.Param(
			field, domainerrors.CodeBadURL, "De URL verwijst niet naar een lokale zaak."))
	}
	return id, nil
}

// --- statussen ---

func (h *Handler) listStatussen(w http.ResponseWriter, r *http.Request) {
	filter, err := childFilterFromQuery(r)
	if err != nil {
		h.error(w, r, err)
		return
	}
	listing, err := h.svc.ListStatussen(r.Context(), filter)
	if err != nil {
		h.error(w, r, err)
		return
	}
	results := make([]*statusJSON, 0, len(listing.Items))
	for _, status := range listing.Items {
		results = append(results, h.statusToJSON(status))
	}
	respond(w, http.StatusOK, envelope(r, filter.Page, listing.Count, listing.CountExact, len(results), results))
}

func (h *Handler) createStatus(w http.ResponseWriter, r *http.Request) {
	var body statusRequest
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	zaakID, err := zaakIDFromBody(body.Zaak, "zaak")
	if err != nil {
		h.error(w, r, err)
		return
	}
	status, err := h.svc.CreateStatus(r.Context(), &models.Status{
		Zaak:              zaakID,
		Statustype:        body.Statustype,
		DatumStatusGezet:  body.DatumStatusGezet,
		Statustoelichting: body.Statustoelichting,
	})
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.created(w, h.svc.StatusURL(status.UUID), h.statusToJSON(status))
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	status, err := h.svc.GetStatus(r.Context(), id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.respondConditional(w, r, h.statusToJSON(status))
}

// --- resultaten ---

func (h *Handler) listResultaten(w http.ResponseWriter, r *http.Request) {
	filter, err := childFilterFromQuery(r)
	if err != nil {
		h.error(w, r, err)
		return
	}
	listing, err := h.svc.ListResultaten(r.Context(), filter)
	if err != nil {
		h.error(w, r, err)
		return
	}
	results := make([]*resultaatJSON, 0, len(listing.Items))
	for _, resultaat := range listing.Items {
		results = append(results, h.resultaatToJSON(resultaat))
	}
	respond(w, http.StatusOK, envelope(r, filter.Page, listing.Count, listing.CountExact, len(results), results))
}

func (h *Handler) createResultaat(w http.ResponseWriter, r *http.Request) {
	var body resultaatRequest
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	zaakID, err := zaakIDFromBody(body.Zaak, "zaak")
	if err != nil {
		h.error(w, r, err)
		return
	}
	resultaat, err := h.svc.CreateResultaat(r.Context(), &models.Resultaat{
		Zaak:          zaakID,
		Resultaattype: body.Resultaattype,
		Toelichting:   body.Toelichting,
	})
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.created(w, h.url("resultaten", resultaat.UUID), h.resultaatToJSON(resultaat))
}

func (h *Handler) getResultaat(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	resultaat, err := h.svc.GetResultaat(r.Context(), id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.respondConditional(w, r, h.resultaatToJSON(resultaat))
}

func (h *Handler) updateResultaat(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	existing, err := h.svc.GetResultaat(r.Context(), id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	body := resultaatRequest{
		Zaak:          h.svc.ZaakURL(existing.Zaak),
		Resultaattype: existing.Resultaattype,
		Toelichting:   existing.Toelichting,
	}
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	updated := *existing
	updated.Resultaattype = body.Resultaattype
	updated.Toelichting = body.Toelichting
	saved, err := h.svc.UpdateResultaat(r.Context(), &updated)
	if err != nil {
		h.error(w, r, err)
		return
	}
	respond(w, http.StatusOK, h.resultaatToJSON(saved))
}

func (h *Handler) deleteResultaat(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	if err := h.svc.DeleteResultaat(r.Context(), id); err != nil {
		h.error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- rollen ---

func (h *Handler) listRollen(w http.ResponseWriter, r *http.Request) {
	filter, err := childFilterFromQuery(r)
	if err != nil {
		h.error(w, r, err)
		return
	}
	listing, err := h.svc.ListRollen(r.Context(), filter)
	if err != nil {
		h.error(w, r, err)
		return
	}
	results := make([]*rolJSON, 0, len(listing.Items))
	for _, rol := range listing.Items {
		results = append(results, h.rolToJSON(rol))
	}
	respond(w, http.StatusOK, envelope(r, filter.Page, listing.Count, listing.CountExact, len(results), results))
}

func (h *Handler) createRol(w http.ResponseWriter, r *http.Request) {
	var body rolRequest
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	zaakID, err := zaakIDFromBody(body.Zaak, "zaak")
	if err != nil {
		h.error(w, r, err)
		return
	}
	rol, err := body.toModel()
	if err != nil {
		h.error(w, r, err)
		return
	}
	rol.Zaak = zaakID
	created, err := h.svc.CreateRol(r.Context(), rol)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.created(w, h.url("rollen", created.UUID), h.rolToJSON(created))
}

func (h *Handler) getRol(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	rol, err := h.svc.GetRol(r.Context(), id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.respondConditional(w, r, h.rolToJSON(rol))
}

func (h *Handler) deleteRol(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	if err := h.svc.DeleteRol(r.Context(), id); err != nil {
		h.error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- zaakobjecten ---

func (h *Handler) listZaakObjecten(w http.ResponseWriter, r *http.Request) {
	filter, err := childFilterFromQuery(r)
	if err != nil {
		h.error(w, r, err)
		return
	}
	listing, err := h.svc.ListZaakObjecten(r.Context(), filter)
	if err != nil {
		h.error(w, r, err)
		return
	}
	results := make([]*zaakObjectJSON, 0, len(listing.Items))
	for _, zo := range listing.Items {
		results = append(results, h.zaakObjectToJSON(zo))
	}
	respond(w, http.StatusOK, envelope(r, filter.Page, listing.Count, listing.CountExact, len(results), results))
}

func (h *Handler) createZaakObject(w http.ResponseWriter, r *http.Request) {
	var body zaakObjectRequest
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	zaakID, err := zaakIDFromBody(body.Zaak, "zaak")
	if err != nil {
		h.error(w, r, err)
		return
	}
	zo, err := body.toModel()
	if err != nil {
		h.error(w, r, err)
		return
	}
	zo.Zaak = zaakID
	created, err := h.svc.CreateZaakObject(r.Context(), zo)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.created(w, h.url("zaakobjecten", created.UUID), h.zaakObjectToJSON(created))
}

func (h *Handler) getZaakObject(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	zo, err := h.svc.GetZaakObject(r.Context(), id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.respondConditional(w, r, h.zaakObjectToJSON(zo))
}

func (h *Handler) updateZaakObject(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	existing, err := h.svc.GetZaakObject(r.Context(), id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	wire := h.zaakObjectToJSON(existing)
	body := zaakObjectRequest{
		Zaak:                wire.Zaak,
		Object:              wire.Object,
		ObjectType:          wire.ObjectType,
		ObjectTypeOverige:   wire.ObjectTypeOverige,
		Zaakobjecttype:      wire.Zaakobjecttype,
		RelatieOmschrijving: wire.RelatieOmschrijving,
	}
	if wire.ObjectIdentificatie != nil {
		raw, err := json.Marshal(wire.ObjectIdentificatie)
		if err != nil {
			h.error(w, r, err)
			return
		}
		body.ObjectIdentificatie = raw
	}
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	updated, err := body.toModel()
	if err != nil {
		h.error(w, r, err)
		return
	}
	updated.UUID = existing.UUID
	updated.Zaak = existing.Zaak
	saved, err := h.svc.UpdateZaakObject(r.Context(), updated)
	if err != nil {
		h.error(w, r, err)
		return
	}
	respond(w, http.StatusOK, h.zaakObjectToJSON(saved))
}

func (h *Handler) deleteZaakObject(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	if err := h.svc.DeleteZaakObject(r.Context(), id); err != nil {
		h.error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- zaakinformatieobjecten ---

type zioRequest struct {
	Zaak             string `json:"zaak"`
	Informatieobject string `json:"informatieobject"`
	Titel            string `json:"titel"`
	Beschrijving     string `json:"beschrijving"`
	Status           string `json:"status"`
}

func (h *Handler) listZaakInformatieObjecten(w http.ResponseWriter, r *http.Request) {
	filter, err := childFilterFromQuery(r)
	if err != nil {
		h.error(w, r, err)
		return
	}
	listing, err := h.svc.ListZaakInformatieObjecten(r.Context(), filter)
	if err != nil {
		h.error(w, r, err)
		return
	}
	results := make([]*zaakInformatieObjectJSON, 0, len(listing.Items))
	for _, zio := range listing.Items {
		results = append(results, h.zioToJSON(zio))
	}
	respond(w, http.StatusOK, envelope(r, filter.Page, listing.Count, listing.CountExact, len(results), results))
}

func (h *Handler) createZaakInformatieObject(w http.ResponseWriter, r *http.Request) {
	var body zioRequest
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	zaakID, err := zaakIDFromBody(body.Zaak, "zaak")
	if err != nil {
		h.error(w, r, err)
		return
	}
	zio, err := h.svc.CreateZaakInformatieObject(r.Context(), &models.ZaakInformatieObject{
		Zaak:             zaakID,
		Informatieobject: body.Informatieobject,
		Titel:            body.Titel,
		Beschrijving:     body.Beschrijving,
		Status:           body.Status,
	})
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.created(w, h.url("zaakinformatieobjecten", zio.UUID), h.zioToJSON(zio))
}

func (h *Handler) getZaakInformatieObject(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	zio, err := h.svc.GetZaakInformatieObject(r.Context(), id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.respondConditional(w, r, h.zioToJSON(zio))
}

func (h *Handler) updateZaakInformatieObject(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	existing, err := h.svc.GetZaakInformatieObject(r.Context(), id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	body := zioRequest{
		Zaak:             h.svc.ZaakURL(existing.Zaak),
		Informatieobject: existing.Informatieobject,
		Titel:            existing.Titel,
		Beschrijving:     existing.Beschrijving,
		Status:           existing.Status,
	}
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	zaakID, err := zaakIDFromBody(body.Zaak, "zaak")
	if err != nil {
		h.error(w, r, err)
		return
	}
	updated := *existing
	updated.Zaak = zaakID
	updated.Informatieobject = body.Informatieobject
	updated.Titel = body.Titel
	updated.Beschrijving = body.Beschrijving
	updated.Status = body.Status
	saved, err := h.svc.UpdateZaakInformatieObject(r.Context(), &updated)
	if err != nil {
		h.error(w, r, err)
		return
	}
	respond(w, http.StatusOK, h.zioToJSON(saved))
}

func (h *Handler) deleteZaakInformatieObject(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	if err := h.svc.DeleteZaakInformatieObject(r.Context(), id); err != nil {
		h.error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- nested zaakeigenschappen ---

type zaakEigenschapRequest struct {
	Eigenschap string `json:"eigenschap"`
	Waarde     string `json:"waarde"`
}

func (h *Handler) listZaakEigenschappen(w http.ResponseWriter, r *http.Request) {
	zaakID, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	eigenschappen, err := h.svc.ListZaakEigenschappen(r.Context(), zaakID)
	if err != nil {
		h.error(w, r, err)
		return
	}
	results := make([]*zaakEigenschapJSON, 0, len(eigenschappen))
	for _, ze := range eigenschappen {
		results = append(results, h.zaakEigenschapToJSON(ze))
	}
	respond(w, http.StatusOK, results)
}

func (h *Handler) createZaakEigenschap(w http.ResponseWriter, r *http.Request) {
	zaakID, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	var body zaakEigenschapRequest
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	ze, err := h.svc.CreateZaakEigenschap(r.Context(), &models.ZaakEigenschap{
		Zaak:       zaakID,
		Eigenschap: body.Eigenschap,
		Waarde:     body.Waarde,
	})
	if err != nil {
		h.error(w, r, err)
		return
	}
	out := h.zaakEigenschapToJSON(ze)
	h.created(w, out.URL, out)
}

func (h *Handler) getZaakEigenschap(w http.ResponseWriter, r *http.Request) {
	zaakID, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	id, err := uuidParam(r, "childUUID")
	if err != nil {
		h.error(w, r, err)
		return
	}
	ze, err := h.svc.GetZaakEigenschap(r.Context(), zaakID, id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.respondConditional(w, r, h.zaakEigenschapToJSON(ze))
}

func (h *Handler) updateZaakEigenschap(w http.ResponseWriter, r *http.Request) {
	zaakID, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	id, err := uuidParam(r, "childUUID")
	if err != nil {
		h.error(w, r, err)
		return
	}
	existing, err := h.svc.GetZaakEigenschap(r.Context(), zaakID, id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	body := zaakEigenschapRequest{Eigenschap: existing.Eigenschap, Waarde: existing.Waarde}
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	updated := *existing
	updated.Eigenschap = body.Eigenschap
	updated.Waarde = body.Waarde
	saved, err := h.svc.UpdateZaakEigenschap(r.Context(), &updated)
	if err != nil {
		h.error(w, r, err)
		return
	}
	respond(w, http.StatusOK, h.zaakEigenschapToJSON(saved))
}

func (h *Handler) deleteZaakEigenschap(w http.ResponseWriter, r *http.Request) {
	zaakID, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	id, err := uuidParam(r, "childUUID")
	if err != nil {
		h.error(w, r, err)
		return
	}
	if err := h.svc.DeleteZaakEigenschap(r.Context(), zaakID, id); err != nil {
		h.error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- nested besluiten ---

func (h *Handler) listZaakBesluiten(w http.ResponseWriter, r *http.Request) {
	zaakID, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	besluiten, err := h.svc.ListZaakBesluiten(r.Context(), zaakID)
	if err != nil {
		h.error(w, r, err)
		return
	}
	results := make([]*zaakBesluitJSON, 0, len(besluiten))
	for _, zb := range besluiten {
		results = append(results, h.zaakBesluitToJSON(zb))
	}
	respond(w, http.StatusOK, results)
}

func (h *Handler) createZaakBesluit(w http.ResponseWriter, r *http.Request) {
	zaakID, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	var body struct {
		Besluit string `json:"besluit"`
	}
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	zb, err := h.svc.CreateZaakBesluit(r.Context(), &models.ZaakBesluit{
		Zaak:    zaakID,
		Besluit: body.Besluit,
	})
	if err != nil {
		h.error(w, r, err)
		return
	}
	out := h.zaakBesluitToJSON(zb)
	h.created(w, out.URL, out)
}

func (h *Handler) getZaakBesluit(w http.ResponseWriter, r *http.Request) {
	zaakID, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	id, err := uuidParam(r, "childUUID")
	if err != nil {
		h.error(w, r, err)
		return
	}
	zb, err := h.svc.GetZaakBesluit(r.Context(), zaakID, id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.respondConditional(w, r, h.zaakBesluitToJSON(zb))
}

func (h *Handler) deleteZaakBesluit(w http.ResponseWriter, r *http.Request) {
	zaakID, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	id, err := uuidParam(r, "childUUID")
	if err != nil {
		h.error(w, r, err)
		return
	}
	if err := h.svc.DeleteZaakBesluit(r.Context(), zaakID, id); err != nil {
		h.error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- zaakcontactmomenten / zaakverzoeken ---

func (h *Handler) listZaakContactMomenten(w http.ResponseWriter, r *http.Request) {
	filter, err := childFilterFromQuery(r)
	if err != nil {
		h.error(w, r, err)
		return
	}
	listing, err := h.svc.ListZaakContactMomenten(r.Context(), filter)
	if err != nil {
		h.error(w, r, err)
		return
	}
	results := make([]*zaakContactMomentJSON, 0, len(listing.Items))
	for _, zcm := range listing.Items {
		results = append(results, h.zcmToJSON(zcm))
	}
	respond(w, http.StatusOK, envelope(r, filter.Page, listing.Count, listing.CountExact, len(results), results))
}

func (h *Handler) createZaakContactMoment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Zaak          string `json:"zaak"`
		Contactmoment string `json:"contactmoment"`
	}
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	zaakID, err := zaakIDFromBody(body.Zaak, "zaak")
	if err != nil {
		h.error(w, r, err)
		return
	}
	zcm, err := h.svc.CreateZaakContactMoment(r.Context(), &models.ZaakContactMoment{
		Zaak:          zaakID,
		Contactmoment: body.Contactmoment,
	})
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.created(w, h.url("zaakcontactmomenten", zcm.UUID), h.zcmToJSON(zcm))
}

func (h *Handler) getZaakContactMoment(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	zcm, err := h.svc.GetZaakContactMoment(r.Context(), id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.respondConditional(w, r, h.zcmToJSON(zcm))
}

func (h *Handler) deleteZaakContactMoment(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	if err := h.svc.DeleteZaakContactMoment(r.Context(), id); err != nil {
		h.error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listZaakVerzoeken(w http.ResponseWriter, r *http.Request) {
	filter, err := childFilterFromQuery(r)
	if err != nil {
		h.error(w, r, err)
		return
	}
	listing, err := h.svc.ListZaakVerzoeken(r.Context(), filter)
	if err != nil {
		h.error(w, r, err)
		return
	}
	results := make([]*zaakVerzoekJSON, 0, len(listing.Items))
	for _, zv := range listing.Items {
		results = append(results, h.zaakVerzoekToJSON(zv))
	}
	respond(w, http.StatusOK, envelope(r, filter.Page, listing.Count, listing.CountExact, len(results), results))
}

func (h *Handler) createZaakVerzoek(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Zaak    string `json:"zaak"`
		Verzoek string `json:"verzoek"`
	}
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	zaakID, err := zaakIDFromBody(body.Zaak, "zaak")
	if err != nil {
		h.error(w, r, err)
		return
	}
	zv, err := h.svc.CreateZaakVerzoek(r.Context(), &models.ZaakVerzoek{
		Zaak:    zaakID,
		Verzoek: body.Verzoek,
	})
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.created(w, h.url("zaakverzoeken", zv.UUID), h.zaakVerzoekToJSON(zv))
}

func (h *Handler) getZaakVerzoek(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	zv, err := h.svc.GetZaakVerzoek(r.Context(), id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.respondConditional(w, r, h.zaakVerzoekToJSON(zv))
}

func (h *Handler) deleteZaakVerzoek(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	if err := h.svc.DeleteZaakVerzoek(r.Context(), id); err != nil {
		h.error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- klantcontacten ---

type klantContactRequest struct {
	Zaak          string    `json:"zaak"`
	Identificatie string    `json:"identificatie"`
	Datumtijd     time.Time `json:"datumtijd"`
	Kanaal        string    `json:"kanaal"`
	Onderwerp     string    `json:"onderwerp"`
	Toelichting   string    `json:"toelichting"`
}

func (h *Handler) listKlantContacten(w http.ResponseWriter, r *http.Request) {
	filter, err := childFilterFromQuery(r)
	if err != nil {
		h.error(w, r, err)
		return
	}
	listing, err := h.svc.ListKlantContacten(r.Context(), filter)
	if err != nil {
		h.error(w, r, err)
		return
	}
	results := make([]*klantContactJSON, 0, len(listing.Items))
	for _, kc := range listing.Items {
		results = append(results, h.klantContactToJSON(kc))
	}
	respond(w, http.StatusOK, envelope(r, filter.Page, listing.Count, listing.CountExact, len(results), results))
}

func (h *Handler) createKlantContact(w http.ResponseWriter, r *http.Request) {
	var body klantContactRequest
	if err := decode(r, &body); err != nil {
		h.error(w, r, err)
		return
	}
	zaakID, err := zaakIDFromBody(body.Zaak, "zaak")
	if err != nil {
		h.error(w, r, err)
		return
	}
	kc, err := h.svc.CreateKlantContact(r.Context(), &models.KlantContact{
		Zaak:          zaakID,
		Identificatie: body.Identificatie,
		Datumtijd:     body.Datumtijd,
		Kanaal:        body.Kanaal,
		Onderwerp:     body.Onderwerp,
		Toelichting:   body.Toelichting,
	})
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.created(w, h.url("klantcontacten", kc.UUID), h.klantContactToJSON(kc))
}

func (h *Handler) getKlantContact(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "uuid")
	if err != nil {
		h.error(w, r, err)
		return
	}
	kc, err := h.svc.GetKlantContact(r.Context(), id)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.respondConditional(w, r, h.klantContactToJSON(kc))
}
