package model

import (
	"crypto/md5"
	"encoding/hex"
)

// TypePersonnePhysique is the registry's director type for natural persons.
// Directors of any other type (companies acting as officers) are dropped
// during enrichment.
const TypePersonnePhysique = "personne physique"

// IDLength is the number of hex characters kept from the name hash.
// Short on purpose; identical names always collide, unrelated names may
// on rare occasion too, which the classification join tolerates.
const IDLength = 8

// ExcludedQualites lists role qualifiers filtered out during enrichment.
// These are non-owner, non-decision-making roles.
var ExcludedQualites = []string{
	"Liquidateur",
	"Commissaire aux comptes titulaire",
	"Commissaire aux comptes suppléant",
}

// Dirigeant represents a company director/officer.
// ID is derived from the name fields, see DirigeantID.
// OrigineTurque stays nil until a classification pass has run.
type Dirigeant struct {
	ID              string `json:"id,omitempty"`
	Nom             string `json:"nom"`
	Prenoms         string `json:"prenoms"`
	DateDeNaissance string `json:"date_de_naissance,omitempty"`
	Qualite         string `json:"qualite,omitempty"`
	TypeDirigeant   string `json:"type_dirigeant,omitempty"`
	Nationalite     string `json:"nationalite,omitempty"`
	OrigineTurque   *bool  `json:"origine_turque,omitempty"`
}

// DirigeantID computes the stable identifier for a director from the
// concatenation of surname and given names. Deterministic across runs for
// identical names.
func DirigeantID(nom string, prenoms string) string {
	sum := md5.Sum([]byte(nom + prenoms))
	return hex.EncodeToString(sum[:])[:IDLength]
}

// Retained reports whether the director survives the enrichment filter:
// a natural person whose role is not in the excluded set.
func (d *Dirigeant) Retained() bool {
	if d.TypeDirigeant != TypePersonnePhysique {
		return false
	}
	for _, q := range ExcludedQualites {
		if d.Qualite == q {
			return false
		}
	}
	return true
}
