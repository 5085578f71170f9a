package autorisaties

// Scopes defined for the zaken API.
const (
	ScopeZakenLezen               = "zaken.lezen"
	ScopeZakenBijwerken           = "zaken.bijwerken"
	ScopeZakenGeforceerdBijwerken = "zaken.geforceerd-bijwerken"
	ScopeZakenAanmaken            = "zaken.aanmaken"
	ScopeZakenVerwijderen         = "zaken.verwijderen"
	ScopeStatussenToevoegen       = "statussen.toevoegen"
	ScopeZakenHeropenen           = "zaken.heropenen"
)
