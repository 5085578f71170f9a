package referentie

import (
	"context"
	"errors"

	"zaakregister/internal/catalogi"
	derrors "zaakregister/pkg/domainerrors"
	"zaakregister/pkg/zgw"
)

// Catalog serves catalog resources from the local store when the reference
// is a local URL, and from the remote catalogi API otherwise. Callers see
// one shape either way.
type Catalog struct {
	local    catalogi.Store
	resolver *Resolver
}

// NewCatalog wires the local catalog store behind the resolver.
func NewCatalog(local catalogi.Store, resolver *Resolver) *Catalog {
	return &Catalog{local: local, resolver: resolver}
}

func (c *Catalog) localNotFound(err error, ref string) error {
	if errors.Is(err, catalogi.ErrNotFound) {
		return derrors.Newf(derrors.CodeBadURL, "onbekende lokale referentie: %s", ref)
	}
	return err
}

// Zaaktype resolves a zaaktype reference.
func (c *Catalog) Zaaktype(ctx context.Context, ref string) (*catalogi.Zaaktype, error) {
	if c.resolver.IsLocal(ref) {
		id, err := ExtractUUID(ref)
		if err != nil {
			return nil, err
		}
		zt, err := c.local.GetZaaktype(ctx, id)
		if err != nil {
			return nil, c.localNotFound(err, ref)
		}
		return zt, nil
	}
	body, err := c.resolver.Get(ctx, KindZaaktype, ref)
	if err != nil {
		return nil, err
	}
	return &catalogi.Zaaktype{
		URL:                 bodyString(body, "url"),
		Identificatie:       bodyString(body, "identificatie"),
		Omschrijving:        bodyString(body, "omschrijving"),
		Catalogus:           bodyString(body, "catalogus"),
		Concept:             bodyBool(body, "concept"),
		Deelzaaktypen:       bodyStrings(body, "deelzaaktypen"),
		ProductenOfDiensten: bodyStrings(body, "productenOfDiensten"),
	}, nil
}

// Statustype resolves a statustype reference.
func (c *Catalog) Statustype(ctx context.Context, ref string) (*catalogi.Statustype, error) {
	if c.resolver.IsLocal(ref) {
		id, err := ExtractUUID(ref)
		if err != nil {
			return nil, err
		}
		st, err := c.local.GetStatustype(ctx, id)
		if err != nil {
			return nil, c.localNotFound(err, ref)
		}
		return st, nil
	}
	body, err := c.resolver.Get(ctx, KindStatustype, ref)
	if err != nil {
		return nil, err
	}
	return &catalogi.Statustype{
		URL:          bodyString(body, "url"),
		Zaaktype:     bodyString(body, "zaaktype"),
		Omschrijving: bodyString(body, "omschrijving"),
		Volgnummer:   bodyInt(body, "volgnummer"),
		IsEindstatus: bodyBool(body, "isEindstatus"),
	}, nil
}

// Resultaattype resolves a resultaattype reference.
func (c *Catalog) Resultaattype(ctx context.Context, ref string) (*catalogi.Resultaattype, error) {
	if c.resolver.IsLocal(ref) {
		id, err := ExtractUUID(ref)
		if err != nil {
			return nil, err
		}
		rt, err := c.local.GetResultaattype(ctx, id)
		if err != nil {
			return nil, c.localNotFound(err, ref)
		}
		return rt, nil
	}
	body, err := c.resolver.Get(ctx, KindResultaattype, ref)
	if err != nil {
		return nil, err
	}
	procedure := bodyObject(body, "brondatumArchiefprocedure")
	return &catalogi.Resultaattype{
		URL:                 bodyString(body, "url"),
		Zaaktype:            bodyString(body, "zaaktype"),
		Omschrijving:        bodyString(body, "omschrijving"),
		Selectielijstklasse: bodyString(body, "selectielijstklasse"),
		Archiefnominatie:    zgw.Archiefnominatie(bodyString(body, "archiefnominatie")),
		Archiefactietermijn: bodyString(body, "archiefactietermijn"),
		Brondatum: catalogi.BrondatumArchiefprocedure{
			Afleidingswijze: zgw.Afleidingswijze(bodyString(procedure, "afleidingswijze")),
			Datumkenmerk:    bodyString(procedure, "datumkenmerk"),
			Objecttype:      zgw.ZaakobjectType(bodyString(procedure, "objecttype")),
			Registratie:     bodyString(procedure, "registratie"),
			Procestermijn:   bodyString(procedure, "procestermijn"),
			EinddatumBekend: bodyBool(procedure, "einddatumBekend"),
		},
	}, nil
}

// Eigenschap resolves an eigenschap reference.
func (c *Catalog) Eigenschap(ctx context.Context, ref string) (*catalogi.Eigenschap, error) {
	if c.resolver.IsLocal(ref) {
		id, err := ExtractUUID(ref)
		if err != nil {
			return nil, err
		}
		e, err := c.local.GetEigenschap(ctx, id)
		if err != nil {
			return nil, c.localNotFound(err, ref)
		}
		return e, nil
	}
	body, err := c.resolver.Get(ctx, KindEigenschap, ref)
	if err != nil {
		return nil, err
	}
	return &catalogi.Eigenschap{
		URL:       bodyString(body, "url"),
		Zaaktype:  bodyString(body, "zaaktype"),
		Naam:      bodyString(body, "naam"),
		Definitie: bodyString(body, "definitie"),
	}, nil
}

// Roltype resolves a roltype reference.
func (c *Catalog) Roltype(ctx context.Context, ref string) (*catalogi.Roltype, error) {
	if c.resolver.IsLocal(ref) {
		id, err := ExtractUUID(ref)
		if err != nil {
			return nil, err
		}
		rt, err := c.local.GetRoltype(ctx, id)
		if err != nil {
			return nil, c.localNotFound(err, ref)
		}
		return rt, nil
	}
	body, err := c.resolver.Get(ctx, KindRoltype, ref)
	if err != nil {
		return nil, err
	}
	return &catalogi.Roltype{
		URL:                  bodyString(body, "url"),
		Zaaktype:             bodyString(body, "zaaktype"),
		Omschrijving:         bodyString(body, "omschrijving"),
		OmschrijvingGeneriek: zgw.RolOmschrijvingGeneriek(bodyString(body, "omschrijvingGeneriek")),
	}, nil
}

// Zaakobjecttype resolves a zaakobjecttype reference.
func (c *Catalog) Zaakobjecttype(ctx context.Context, ref string) (*catalogi.Zaakobjecttype, error) {
	if c.resolver.IsLocal(ref) {
		id, err := ExtractUUID(ref)
		if err != nil {
			return nil, err
		}
		zot, err := c.local.GetZaakobjecttype(ctx, id)
		if err != nil {
			return nil, c.localNotFound(err, ref)
		}
		return zot, nil
	}
	body, err := c.resolver.Get(ctx, KindZaakobjecttype, ref)
	if err != nil {
		return nil, err
	}
	return &catalogi.Zaakobjecttype{
		URL:                 bodyString(body, "url"),
		Zaaktype:            bodyString(body, "zaaktype"),
		AnderObjecttype:     bodyBool(body, "anderObjecttype"),
		Objecttype:          bodyString(body, "objecttype"),
		RelatieOmschrijving: bodyString(body, "relatieOmschrijving"),
	}, nil
}

// ZaaktypeHeeftInformatieobjecttype checks the declared relation between a
// zaaktype and an informatieobjecttype across the local/remote split.
func (c *Catalog) ZaaktypeHeeftInformatieobjecttype(ctx context.Context, zaaktypeRef, iotRef string) (bool, error) {
	if c.resolver.IsLocal(zaaktypeRef) {
		return c.local.ZaaktypeInformatieobjecttypeExists(ctx, zaaktypeRef, iotRef)
	}
	body, err := c.resolver.Get(ctx, KindZaaktype, zaaktypeRef)
	if err != nil {
		return false, err
	}
	for _, url := range bodyStrings(body, "informatieobjecttypen") {
		if url == iotRef {
			return true, nil
		}
	}
	return false, nil
}

// ZaaktypenByCatalogus expands a catalogus URL to its zaaktype URLs for
// CatalogusAutorisatie grants. Remote catalogi are not expanded; those
// grants only cover local zaaktypen.
func (c *Catalog) ZaaktypenByCatalogus(ctx context.Context, catalogusURL string) ([]string, error) {
	return c.local.ListZaaktypenByCatalogus(ctx, catalogusURL)
}

// Communicatiekanaal validates a referentielijsten communicatiekanaal URL.
func (c *Catalog) Communicatiekanaal(ctx context.Context, ref string) error {
	_, err := c.resolver.Get(ctx, KindCommunicatiekanaal, ref)
	return err
}
