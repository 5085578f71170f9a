package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"zaakregister/pkg/types"
	"zaakregister/pkg/zgw"
)

// Adres is a Dutch address used as verblijfsadres or bezoekadres.
type Adres struct {
	AoaIdentificatie        string
	WplWoonplaatsNaam       string
	GorOpenbareRuimteNaam   string
	AoaPostcode             string
	AoaHuisnummer           int
	AoaHuisletter           string
	AoaHuisnummertoevoeging string
	InpLocatiebeschrijving  string
}

// SubVerblijfBuitenland is a foreign residence address.
type SubVerblijfBuitenland struct {
	LndLandcode         string
	LndLandnaam         string
	SubAdresBuitenland1 string
	SubAdresBuitenland2 string
	SubAdresBuitenland3 string
}

// NatuurlijkPersoon identifies a natural person betrokkene.
type NatuurlijkPersoon struct {
	InpBsn                   string
	AnpIdentificatie         string
	InpANummer               string
	Geslachtsnaam            string
	VoorvoegselGeslachtsnaam string
	Voorletters              string
	Voornamen                string
	Geslachtsaanduiding      string
	Geboortedatum            string
	Verblijfsadres           *Adres
	SubVerblijfBuitenland    *SubVerblijfBuitenland
}

// NietNatuurlijkPersoon identifies a legal entity betrokkene.
type NietNatuurlijkPersoon struct {
	InnNnpID              string
	AnnIdentificatie      string
	StatutaireNaam        string
	InnRechtsvorm         string
	Bezoekadres           string
	SubVerblijfBuitenland *SubVerblijfBuitenland
}

// Vestiging identifies a branch of a legal entity.
type Vestiging struct {
	VestigingsNummer      string
	Handelsnaam           []string
	KvkNummer             string
	Verblijfsadres        *Adres
	SubVerblijfBuitenland *SubVerblijfBuitenland
}

// OrganisatorischeEenheid identifies an internal organisational unit.
type OrganisatorischeEenheid struct {
	Identificatie  string
	Naam           string
	IsGehuisvestIn string
}

// Medewerker identifies an employee betrokkene.
type Medewerker struct {
	Identificatie         string
	Achternaam            string
	Voorletters           string
	VoorvoegselAchternaam string
}

// BetrokkeneIdentificatie is the tagged union of the five inline betrokkene
// shapes. The Rol's BetrokkeneType selects which pointer is set.
type BetrokkeneIdentificatie struct {
	NatuurlijkPersoon       *NatuurlijkPersoon
	NietNatuurlijkPersoon   *NietNatuurlijkPersoon
	Vestiging               *Vestiging
	OrganisatorischeEenheid *OrganisatorischeEenheid
	Medewerker              *Medewerker
}

// Empty reports whether no variant is set.
func (b BetrokkeneIdentificatie) Empty() bool {
	return b.NatuurlijkPersoon == nil && b.NietNatuurlijkPersoon == nil &&
		b.Vestiging == nil && b.OrganisatorischeEenheid == nil && b.Medewerker == nil
}

// ContactpersoonRol describes the contact person acting in the rol.
type ContactpersoonRol struct {
	EmailAdres     string
	Functie        string
	Telefoonnummer string
	Naam           string
}

func (c ContactpersoonRol) Empty() bool {
	return c.EmailAdres == "" && c.Functie == "" && c.Telefoonnummer == "" && c.Naam == ""
}

// Rol is the role a party plays in the case. Either Betrokkene (a URL) or
// one BetrokkeneIdentificatie variant must be present.
type Rol struct {
	UUID                 uuid.UUID
	Zaak                 uuid.UUID
	Betrokkene           string
	BetrokkeneType       zgw.BetrokkeneType
	Roltype              string // loose FK
	Omschrijving         string // derived from roltype
	OmschrijvingGeneriek zgw.RolOmschrijvingGeneriek
	Roltoelichting       string
	Registratiedatum     time.Time
	IndicatieMachtiging  zgw.IndicatieMachtiging
	ContactpersoonRol    ContactpersoonRol
	AuthenticatieContext json.RawMessage
	BeginGeldigheid      *types.Date
	EindeGeldigheid      *types.Date
	Identificatie        BetrokkeneIdentificatie
}
