// Package zgw defines the value sets of the Zaakgericht Werken standard that
// are shared between the case registration, catalog references and the
// authorization layer.
package zgw

// VertrouwelijkheidAanduiding is the ordered confidentiality classification.
type VertrouwelijkheidAanduiding string

const (
	VAOpenbaar          VertrouwelijkheidAanduiding = "openbaar"
	VABeperktOpenbaar   VertrouwelijkheidAanduiding = "beperkt_openbaar"
	VAIntern            VertrouwelijkheidAanduiding = "intern"
	VAZaakvertrouwelijk VertrouwelijkheidAanduiding = "zaakvertrouwelijk"
	VAVertrouwelijk     VertrouwelijkheidAanduiding = "vertrouwelijk"
	VAConfidentieel     VertrouwelijkheidAanduiding = "confidentieel"
	VAGeheim            VertrouwelijkheidAanduiding = "geheim"
	VAZeerGeheim        VertrouwelijkheidAanduiding = "zeer_geheim"
)

var vaOrder = map[VertrouwelijkheidAanduiding]int{
	VAOpenbaar:          0,
	VABeperktOpenbaar:   1,
	VAIntern:            2,
	VAZaakvertrouwelijk: 3,
	VAVertrouwelijk:     4,
	VAConfidentieel:     5,
	VAGeheim:            6,
	VAZeerGeheim:        7,
}

// Order returns the position of the classification in the total order, or -1
// for unknown values.
func (va VertrouwelijkheidAanduiding) Order() int {
	order, ok := vaOrder[va]
	if !ok {
		return -1
	}
	return order
}

// Valid reports whether the value is a known classification.
func (va VertrouwelijkheidAanduiding) Valid() bool { return va.Order() >= 0 }

// AtMost reports whether va is at or below the given ceiling.
func (va VertrouwelijkheidAanduiding) AtMost(ceiling VertrouwelijkheidAanduiding) bool {
	return va.Order() >= 0 && va.Order() <= ceiling.Order()
}

// Afleidingswijze selects the brondatum derivation strategy of a
// resultaattype's archiefprocedure.
type Afleidingswijze string

const (
	AfleidingAfgehandeld         Afleidingswijze = "afgehandeld"
	AfleidingAnderDatumkenmerk   Afleidingswijze = "ander_datumkenmerk"
	AfleidingEigenschap          Afleidingswijze = "eigenschap"
	AfleidingGerelateerdeZaak    Afleidingswijze = "gerelateerde_zaak"
	AfleidingHoofdzaak           Afleidingswijze = "hoofdzaak"
	AfleidingIngangsdatumBesluit Afleidingswijze = "ingangsdatum_besluit"
	AfleidingTermijn             Afleidingswijze = "termijn"
	AfleidingVervaldatumBesluit  Afleidingswijze = "vervaldatum_besluit"
	AfleidingZaakobject          Afleidingswijze = "zaakobject"
)

// Archiefnominatie is the archival disposition of a closed case.
type Archiefnominatie string

const (
	ArchiefnominatieBlijvendBewaren Archiefnominatie = "blijvend_bewaren"
	ArchiefnominatieVernietigen     Archiefnominatie = "vernietigen"
)

// Archiefstatus is the archival phase of a case.
type Archiefstatus string

const (
	ArchiefstatusNogTeArchiveren                   Archiefstatus = "nog_te_archiveren"
	ArchiefstatusGearchiveerd                      Archiefstatus = "gearchiveerd"
	ArchiefstatusGearchiveerdProcestermijnOnbekend Archiefstatus = "gearchiveerd_procestermijn_onbekend"
	ArchiefstatusOvergedragen                      Archiefstatus = "overgedragen"
)

// BetalingsIndicatie captures the payment state of the case.
type BetalingsIndicatie string

const (
	BetalingNvt          BetalingsIndicatie = "nvt"
	BetalingNogNiet      BetalingsIndicatie = "nog_niet"
	BetalingGedeeltelijk BetalingsIndicatie = "gedeeltelijk"
	BetalingGeheel       BetalingsIndicatie = "geheel"
)

// AardRelatie classifies a relation to another zaak.
type AardRelatie string

const (
	AardRelatieVervolg   AardRelatie = "vervolg"
	AardRelatieOnderwerp AardRelatie = "onderwerp"
	AardRelatieBijdrage  AardRelatie = "bijdrage"
	AardRelatieOverig    AardRelatie = "overig"
)

// AardRelatieZIO is the fixed relation kind between a zaak and an
// informatieobject.
const AardRelatieHoortBij = "hoort_bij"

// BetrokkeneType discriminates the polymorphic Rol identification.
type BetrokkeneType string

const (
	BetrokkeneNatuurlijkPersoon       BetrokkeneType = "natuurlijk_persoon"
	BetrokkeneNietNatuurlijkPersoon   BetrokkeneType = "niet_natuurlijk_persoon"
	BetrokkeneVestiging               BetrokkeneType = "vestiging"
	BetrokkeneOrganisatorischeEenheid BetrokkeneType = "organisatorische_eenheid"
	BetrokkeneMedewerker              BetrokkeneType = "medewerker"
)

// Valid reports whether the betrokkene type is one of the five variants.
func (bt BetrokkeneType) Valid() bool {
	switch bt {
	case BetrokkeneNatuurlijkPersoon, BetrokkeneNietNatuurlijkPersoon,
		BetrokkeneVestiging, BetrokkeneOrganisatorischeEenheid, BetrokkeneMedewerker:
		return true
	}
	return false
}

// IndicatieMachtiging marks the authorization direction of a rol.
type IndicatieMachtiging string

const (
	MachtigingGemachtigde     IndicatieMachtiging = "gemachtigde"
	MachtigingMachtiginggever IndicatieMachtiging = "machtiginggever"
)

// RolOmschrijvingGeneriek is the generic role classification from the
// roltype.
type RolOmschrijvingGeneriek string

const (
	RolAdviseur        RolOmschrijvingGeneriek = "adviseur"
	RolBehandelaar     RolOmschrijvingGeneriek = "behandelaar"
	RolBelanghebbende  RolOmschrijvingGeneriek = "belanghebbende"
	RolBeslisser       RolOmschrijvingGeneriek = "beslisser"
	RolInitiator       RolOmschrijvingGeneriek = "initiator"
	RolKlantcontacter  RolOmschrijvingGeneriek = "klantcontacter"
	RolZaakcoordinator RolOmschrijvingGeneriek = "zaakcoordinator"
	RolMedeInitiator   RolOmschrijvingGeneriek = "mede_initiator"
)

// ZaakobjectType is the classification of a linked real-world object.
type ZaakobjectType string

const (
	ObjectAdres                       ZaakobjectType = "adres"
	ObjectBesluit                     ZaakobjectType = "besluit"
	ObjectBuurt                       ZaakobjectType = "buurt"
	ObjectEnkelvoudigDocument         ZaakobjectType = "enkelvoudig_document"
	ObjectGemeente                    ZaakobjectType = "gemeente"
	ObjectGemeentelijkeOpenbareRuimte ZaakobjectType = "gemeentelijke_openbare_ruimte"
	ObjectHuishouden                  ZaakobjectType = "huishouden"
	ObjectInrichtingselement          ZaakobjectType = "inrichtingselement"
	ObjectKadastraleOnroerendeZaak    ZaakobjectType = "kadastrale_onroerende_zaak"
	ObjectKunstwerkdeel               ZaakobjectType = "kunstwerkdeel"
	ObjectMaatschappelijkeActiviteit  ZaakobjectType = "maatschappelijke_activiteit"
	ObjectMedewerker                  ZaakobjectType = "medewerker"
	ObjectNatuurlijkPersoon           ZaakobjectType = "natuurlijk_persoon"
	ObjectNietNatuurlijkPersoon       ZaakobjectType = "niet_natuurlijk_persoon"
	ObjectOpenbareRuimte              ZaakobjectType = "openbare_ruimte"
	ObjectOrganisatorischeEenheid     ZaakobjectType = "organisatorische_eenheid"
	ObjectPand                        ZaakobjectType = "pand"
	ObjectSpoorbaandeel               ZaakobjectType = "spoorbaandeel"
	ObjectStatus                      ZaakobjectType = "status"
	ObjectTerreindeel                 ZaakobjectType = "terreindeel"
	ObjectTerreinGebouwdObject        ZaakobjectType = "terrein_gebouwd_object"
	ObjectVestiging                   ZaakobjectType = "vestiging"
	ObjectWaterdeel                   ZaakobjectType = "waterdeel"
	ObjectWegdeel                     ZaakobjectType = "wegdeel"
	ObjectWijk                        ZaakobjectType = "wijk"
	ObjectWoonplaats                  ZaakobjectType = "woonplaats"
	ObjectWozDeelobject               ZaakobjectType = "woz_deelobject"
	ObjectWozObject                   ZaakobjectType = "woz_object"
	ObjectWozWaarde                   ZaakobjectType = "woz_waarde"
	ObjectZakelijkRecht               ZaakobjectType = "zakelijk_recht"
	ObjectOverige                     ZaakobjectType = "overige"
)
