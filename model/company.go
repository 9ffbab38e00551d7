package model

// Company represents one normalized company record from the registry.
// Address fields are flattened from the API's nested siege object at the
// normalization boundary; missing fields default to empty values there.
type Company struct {
	Siren              string       `json:"siren"`
	NomComplet         string       `json:"nom_complet"`
	NomRaisonSociale   string       `json:"nom_raison_sociale"`
	ActivitePrincipale string       `json:"activite_principale"`
	Dirigeants         []*Dirigeant `json:"dirigeants"`
	Adresse            string       `json:"adresse"`
	CodePostal         string       `json:"code_postal"`
	LibelleCommune     string       `json:"libelle_commune"`
	DateCreation       string       `json:"date_creation"`
	NatureJuridique    string       `json:"nature_juridique"`
}
