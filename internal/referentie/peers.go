package referentie

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"zaakregister/internal/besluiten"
	"zaakregister/internal/documenten"
	derrors "zaakregister/pkg/domainerrors"
	"zaakregister/pkg/types"
)

// EndpointFor derives a sibling collection endpoint on the same API as ref.
// Example: the objectinformatieobjecten endpoint next to an
// enkelvoudiginformatieobjecten URL.
func (r *Resolver) EndpointFor(ref, collection string) (string, error) {
	service := r.serviceFor(ref)
	if service == nil {
		return "", derrors.Newf(derrors.CodeUnknownService, "geen service geconfigureerd voor %s", ref)
	}
	return strings.TrimSuffix(service.APIRoot, "/") + "/" + collection, nil
}

// Documents reads document resources and maintains the cross-references the
// documents API keeps per linked case.
type Documents struct {
	local    documenten.Store
	resolver *Resolver
}

func NewDocuments(local documenten.Store, resolver *Resolver) *Documents {
	return &Documents{local: local, resolver: resolver}
}

// Informatieobject resolves an informatieobject reference to the slice of
// the document the case registration inspects.
func (d *Documents) Informatieobject(ctx context.Context, ref string) (*documenten.EnkelvoudigInformatieObject, error) {
	if d.resolver.IsLocal(ref) {
		id, err := ExtractUUID(ref)
		if err != nil {
			return nil, err
		}
		eio, err := d.local.GetInformatieobject(ctx, id)
		if err != nil {
			if errors.Is(err, documenten.ErrNotFound) {
				return nil, derrors.Newf(derrors.CodeBadURL, "onbekende lokale referentie: %s", ref)
			}
			return nil, err
		}
		return eio, nil
	}
	body, err := d.resolver.Get(ctx, KindInformatieobject, ref)
	if err != nil {
		return nil, err
	}
	return &documenten.EnkelvoudigInformatieObject{
		URL:                    bodyString(body, "url"),
		Identificatie:          bodyString(body, "identificatie"),
		Informatieobjecttype:   bodyString(body, "informatieobjecttype"),
		Status:                 bodyString(body, "status"),
		Locked:                 bodyBool(body, "locked"),
		IndicatieGebruiksrecht: bodyBoolPtr(body, "indicatieGebruiksrecht"),
	}, nil
}

// RegisterZaakLink creates the objectinformatieobject back-reference. For a
// remote document this is the second phase of the two-phase cross-write; the
// local ZaakInformatieObject row must already be committed so the peer can
// validate it.
func (d *Documents) RegisterZaakLink(ctx context.Context, informatieobjectRef, zaakURL string) (string, error) {
	if d.resolver.IsLocal(informatieobjectRef) {
		if err := d.local.CreateObjectInformatieObject(ctx, informatieobjectRef, zaakURL); err != nil {
			return "", err
		}
		return "", nil
	}
	endpoint, err := d.resolver.EndpointFor(informatieobjectRef, "objectinformatieobjecten")
	if err != nil {
		return "", err
	}
	body, err := d.resolver.Post(ctx, endpoint, map[string]any{
		"informatieobject": informatieobjectRef,
		"object":           zaakURL,
		"objectType":       "zaak",
	})
	if err != nil {
		return "", err
	}
	return bodyString(body, "url"), nil
}

// UnregisterZaakLink removes the objectinformatieobject back-reference.
func (d *Documents) UnregisterZaakLink(ctx context.Context, informatieobjectRef, zaakURL, remoteOIOURL string) error {
	if d.resolver.IsLocal(informatieobjectRef) {
		return d.local.DeleteObjectInformatieObject(ctx, informatieobjectRef, zaakURL)
	}
	if remoteOIOURL == "" {
		return nil
	}
	return d.resolver.Delete(ctx, remoteOIOURL)
}

// Besluiten resolves besluit references across the local/remote split.
type Besluiten struct {
	local    besluiten.Store
	resolver *Resolver
}

func NewBesluiten(local besluiten.Store, resolver *Resolver) *Besluiten {
	return &Besluiten{local: local, resolver: resolver}
}

// Besluit resolves one besluit reference.
func (b *Besluiten) Besluit(ctx context.Context, ref string) (*besluiten.Besluit, error) {
	if b.resolver.IsLocal(ref) {
		id, err := ExtractUUID(ref)
		if err != nil {
			return nil, err
		}
		besluit, err := b.local.GetBesluit(ctx, id)
		if err != nil {
			if errors.Is(err, besluiten.ErrNotFound) {
				return nil, derrors.Newf(derrors.CodeBadURL, "onbekende lokale referentie: %s", ref)
			}
			return nil, err
		}
		return besluit, nil
	}
	body, err := b.resolver.Get(ctx, KindBesluit, ref)
	if err != nil {
		return nil, err
	}
	ingangsdatum, err := types.ParseDateLoose(bodyString(body, "ingangsdatum"))
	if err != nil {
		return nil, derrors.Newf(derrors.CodeInvalidResource, "besluit %s heeft een ongeldige ingangsdatum", ref)
	}
	out := &besluiten.Besluit{
		URL:          bodyString(body, "url"),
		Zaak:         bodyString(body, "zaak"),
		Ingangsdatum: ingangsdatum,
	}
	if raw := bodyString(body, "vervaldatum"); raw != "" {
		vervaldatum, err := types.ParseDateLoose(raw)
		if err != nil {
			return nil, derrors.Newf(derrors.CodeInvalidResource, "besluit %s heeft een ongeldige vervaldatum", ref)
		}
		out.Vervaldatum = types.DatePtr(vervaldatum)
	}
	return out, nil
}

// RemoteZaak is the minimal view of a related case on a peer installation.
type RemoteZaak struct {
	URL           string
	Identificatie string
	Zaaktype      string
	Einddatum     *types.Date
}

// Zaken resolves related-case references on peer installations.
type Zaken struct {
	resolver *Resolver
}

func NewZaken(resolver *Resolver) *Zaken {
	return &Zaken{resolver: resolver}
}

// Zaak fetches a remote related case.
func (z *Zaken) Zaak(ctx context.Context, ref string) (*RemoteZaak, error) {
	body, err := z.resolver.Get(ctx, KindZaak, ref)
	if err != nil {
		return nil, err
	}
	out := &RemoteZaak{
		URL:           bodyString(body, "url"),
		Identificatie: bodyString(body, "identificatie"),
		Zaaktype:      bodyString(body, "zaaktype"),
	}
	if raw := bodyString(body, "einddatum"); raw != "" {
		einddatum, err := types.ParseDateLoose(raw)
		if err != nil {
			return nil, derrors.Newf(derrors.CodeInvalidResource, "zaak %s heeft een ongeldige einddatum", ref)
		}
		out.Einddatum = types.DatePtr(einddatum)
	}
	return out, nil
}

// ObjectLinks performs the two-phase cross-writes towards the
// contactmomenten and verzoeken APIs.
type ObjectLinks struct {
	resolver *Resolver
}

func NewObjectLinks(resolver *Resolver) *ObjectLinks {
	return &ObjectLinks{resolver: resolver}
}

func (o *ObjectLinks) register(ctx context.Context, ref, collection, refField, zaakURL string) (string, error) {
	endpoint, err := o.resolver.EndpointFor(ref, collection)
	if err != nil {
		return "", err
	}
	body, err := o.resolver.Post(ctx, endpoint, map[string]any{
		refField:     ref,
		"object":     zaakURL,
		"objectType": "zaak",
	})
	if err != nil {
		return "", err
	}
	return bodyString(body, "url"), nil
}

// RegisterContactmoment creates the objectcontactmoment on the peer and
// returns its URL.
func (o *ObjectLinks) RegisterContactmoment(ctx context.Context, contactmomentURL, zaakURL string) (string, error) {
	return o.register(ctx, contactmomentURL, "objectcontactmomenten", "contactmoment", zaakURL)
}

// RegisterVerzoek creates the objectverzoek on the peer and returns its URL.
func (o *ObjectLinks) RegisterVerzoek(ctx context.Context, verzoekURL, zaakURL string) (string, error) {
	return o.register(ctx, verzoekURL, "objectverzoeken", "verzoek", zaakURL)
}

// Unregister removes a peer back-reference created earlier.
func (o *ObjectLinks) Unregister(ctx context.Context, backrefURL string) error {
	if backrefURL == "" {
		return nil
	}
	return o.resolver.Delete(ctx, backrefURL)
}

// HostOf returns the host of a URL, for partitioning and logging.
func HostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
