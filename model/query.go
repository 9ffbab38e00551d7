package model

import "strings"

// Legal form codes accepted by default (SARL, EURL, SAS) plus the
// sole-proprietorship code appended on request.
const (
	DefaultNatureJuridique       = "5499,5410,5710"
	NatureEntrepreneurIndividuel = "1000"
)

// PerPage is the fixed page size requested from the registry.
const PerPage = 25

// SearchQuery holds the caller-supplied filters for one registry search.
// NAF is required; PostalCode and Departement are optional pass-through
// filters. Administrative status is always restricted to active companies
// by the client.
type SearchQuery struct {
	NAF                         string
	PostalCode                  string
	Departement                 string
	AllowEntrepreneurIndividuel bool
}

// NatureJuridique returns the comma-separated legal form filter for the
// query, including the sole-proprietorship code when allowed.
func (q SearchQuery) NatureJuridique() string {
	if q.AllowEntrepreneurIndividuel {
		return strings.Join([]string{DefaultNatureJuridique, NatureEntrepreneurIndividuel}, ",")
	}
	return DefaultNatureJuridique
}
