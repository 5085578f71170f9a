// Package handler exposes the case registration over HTTP: camelCase JSON,
// RFC 7807 errors, CRS negotiation on geo endpoints and conditional reads
// through ETags.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"zaakregister/internal/platform/middleware"
	"zaakregister/internal/zaken/service"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/problems"
)

type Handler struct {
	svc     *service.Service
	logger  *slog.Logger
	apiRoot string
}

func New(svc *service.Service, logger *slog.Logger, apiRoot string) *Handler {
	return &Handler{
		svc:     svc,
		logger:  logger,
		apiRoot: strings.TrimSuffix(apiRoot, "/"),
	}
}

// Routes builds the API router. Authentication middleware is mounted by the
// caller so tests can exercise the routes with a context-injected client.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/zaken", func(r chi.Router) {
		r.Use(middleware.RequireCRS)
		r.Get("/", h.listZaken)
		r.Post("/", h.createZaak)
		r.Post("/_zoek", h.zoekZaken)
		r.Route("/{uuid}", func(r chi.Router) {
			r.Get("/", h.getZaak)
			r.Head("/", h.getZaak)
			r.Put("/", h.updateZaak(false))
			r.Patch("/", h.updateZaak(true))
			r.Delete("/", h.deleteZaak)
			r.Post("/_afsluiten", h.afsluitenZaak)
			r.Get("/audittrail", h.listAuditTrail)

			r.Get("/zaakeigenschappen", h.listZaakEigenschappen)
			r.Post("/zaakeigenschappen", h.createZaakEigenschap)
			r.Get("/zaakeigenschappen/{childUUID}", h.getZaakEigenschap)
			r.Put("/zaakeigenschappen/{childUUID}", h.updateZaakEigenschap)
			r.Patch("/zaakeigenschappen/{childUUID}", h.updateZaakEigenschap)
			r.Delete("/zaakeigenschappen/{childUUID}", h.deleteZaakEigenschap)

			r.Get("/besluiten", h.listZaakBesluiten)
			r.Post("/besluiten", h.createZaakBesluit)
			r.Get("/besluiten/{childUUID}", h.getZaakBesluit)
			r.Delete("/besluiten/{childUUID}", h.deleteZaakBesluit)
		})
	})

	r.Post("/reserveer_zaaknummer", h.reserveZaaknummer)

	r.Route("/statussen", func(r chi.Router) {
		r.Get("/", h.listStatussen)
		r.Post("/", h.createStatus)
		r.Get("/{uuid}", h.getStatus)
		r.Head("/{uuid}", h.getStatus)
	})

	r.Route("/resultaten", func(r chi.Router) {
		r.Get("/", h.listResultaten)
		r.Post("/", h.createResultaat)
		r.Get("/{uuid}", h.getResultaat)
		r.Head("/{uuid}", h.getResultaat)
		r.Put("/{uuid}", h.updateResultaat)
		r.Patch("/{uuid}", h.updateResultaat)
		r.Delete("/{uuid}", h.deleteResultaat)
	})

	r.Route("/rollen", func(r chi.Router) {
		r.Get("/", h.listRollen)
		r.Post("/", h.createRol)
		r.Get("/{uuid}", h.getRol)
		r.Head("/{uuid}", h.getRol)
		r.Delete("/{uuid}", h.deleteRol)
	})

	r.Route("/zaakobjecten", func(r chi.Router) {
		r.Get("/", h.listZaakObjecten)
		r.Post("/", h.createZaakObject)
		r.Get("/{uuid}", h.getZaakObject)
		r.Head("/{uuid}", h.getZaakObject)
		r.Put("/{uuid}", h.updateZaakObject)
		r.Patch("/{uuid}", h.updateZaakObject)
		r.Delete("/{uuid}", h.deleteZaakObject)
	})

	r.Route("/zaakinformatieobjecten", func(r chi.Router) {
		r.Get("/", h.listZaakInformatieObjecten)
		r.Post("/", h.createZaakInformatieObject)
		r.Get("/{uuid}", h.getZaakInformatieObject)
		r.Head("/{uuid}", h.getZaakInformatieObject)
		r.Put("/{uuid}", h.updateZaakInformatieObject)
		r.Patch("/{uuid}", h.updateZaakInformatieObject)
		r.Delete("/{uuid}", h.deleteZaakInformatieObject)
	})

	r.Route("/zaakcontactmomenten", func(r chi.Router) {
		r.Get("/", h.listZaakContactMomenten)
		r.Post("/", h.createZaakContactMoment)
		r.Get("/{uuid}", h.getZaakContactMoment)
		r.Delete("/{uuid}", h.deleteZaakContactMoment)
	})

	r.Route("/zaakverzoeken", func(r chi.Router) {
		r.Get("/", h.listZaakVerzoeken)
		r.Post("/", h.createZaakVerzoek)
		r.Get("/{uuid}", h.getZaakVerzoek)
		r.Delete("/{uuid}", h.deleteZaakVerzoek)
	})

	r.Route("/klantcontacten", func(r chi.Router) {
		r.Get("/", h.listKlantContacten)
		r.Post("/", h.createKlantContact)
		r.Get("/{uuid}", h.getKlantContact)
	})

	return r
}

// --- shared plumbing ---

func (h *Handler) url(collection string, id uuid.UUID) string {
	return h.apiRoot + "/" + collection + "/" + id.String()
}

func (h *Handler) error(w http.ResponseWriter, r *http.Request, err error) {
	var dErr *domainerrors.Error
	if !errors.As(err, &dErr) {
		h.logger.ErrorContext(r.Context(), "request failed", "error", err,
			"method", r.Method, "path", r.URL.Path)
	}
	problems.Write(w, r, err)
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (h *Handler) created(w http.ResponseWriter, location string, v any) {
	w.Header().Set("Location", location)
	respond(w, http.StatusCreated, v)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badBody(err)
	}
	return nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domainerrors.New(domainerrors.CodeNotFound, "resource bestaat niet")
	}
	return id, nil
}
