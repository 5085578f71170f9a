package models

import (
	"time"

	"github.com/google/uuid"

	"zaakregister/pkg/zgw"
)

// ObjectTypeOverigeDefinitie points into a remote object-type schema with
// jq expressions selecting the schema and the data to validate.
type ObjectTypeOverigeDefinitie struct {
	URL        string
	Schema     string
	ObjectData string
}

func (d ObjectTypeOverigeDefinitie) Empty() bool {
	return d.URL == "" && d.Schema == "" && d.ObjectData == ""
}

// WozObjectIdentificatie identifies a WOZ valuation object inline.
type WozObjectIdentificatie struct {
	WozObjectNummer     string
	AanduidingWozObject *Adres
}

// PandIdentificatie identifies a building inline.
type PandIdentificatie struct {
	Identificatie string
}

// BuurtIdentificatie identifies a neighbourhood inline.
type BuurtIdentificatie struct {
	BuurtCode       string
	BuurtNaam       string
	GemGemeenteCode string
	WykWijkCode     string
}

// GemeenteIdentificatie identifies a municipality inline.
type GemeenteIdentificatie struct {
	GemeenteNaam string
	GemeenteCode string
}

// KadastraleOnroerendeZaakIdentificatie identifies a cadastral parcel inline.
type KadastraleOnroerendeZaakIdentificatie struct {
	KadastraleIdentificatie string
	KadastraleAanduiding    string
}

// OverigeIdentificatie carries free-form object data for objectType overige.
type OverigeIdentificatie struct {
	OverigeData map[string]any
}

// ObjectIdentificatie is the tagged union of inline object shapes. The
// ZaakObject's ObjectType selects which pointer is set; betrokkene-style
// kinds reuse the Rol identification records.
type ObjectIdentificatie struct {
	Adres                    *Adres
	Buurt                    *BuurtIdentificatie
	Gemeente                 *GemeenteIdentificatie
	KadastraleOnroerendeZaak *KadastraleOnroerendeZaakIdentificatie
	Medewerker               *Medewerker
	NatuurlijkPersoon        *NatuurlijkPersoon
	NietNatuurlijkPersoon    *NietNatuurlijkPersoon
	OrganisatorischeEenheid  *OrganisatorischeEenheid
	Pand                     *PandIdentificatie
	Vestiging                *Vestiging
	WozObject                *WozObjectIdentificatie
	Overige                  *OverigeIdentificatie
}

// Empty reports whether no variant is set.
func (o ObjectIdentificatie) Empty() bool {
	return o.Adres == nil && o.Buurt == nil && o.Gemeente == nil &&
		o.KadastraleOnroerendeZaak == nil && o.Medewerker == nil &&
		o.NatuurlijkPersoon == nil && o.NietNatuurlijkPersoon == nil &&
		o.OrganisatorischeEenheid == nil && o.Pand == nil && o.Vestiging == nil &&
		o.WozObject == nil && o.Overige == nil
}

// ZaakObject links the case to a real-world object, either by URL or by an
// inline typed identification.
type ZaakObject struct {
	UUID                       uuid.UUID
	Zaak                       uuid.UUID
	Object                     string
	ObjectType                 zgw.ZaakobjectType
	ObjectTypeOverige          string
	ObjectTypeOverigeDefinitie ObjectTypeOverigeDefinitie
	Zaakobjecttype             string // loose FK
	RelatieOmschrijving        string
	Identificatie              ObjectIdentificatie
	CreatedAt                  time.Time
}
