package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"dirigeants/helper"
	"dirigeants/model"
)

// Headers is the fixed CSV column schema, director fields first.
var Headers = []string{
	"dirigeant_nom",
	"dirigeant_prenoms",
	"dirigeant_date_de_naissance",
	"dirigeant_qualite",
	"dirigeant_origine_turque",
	"dirigeant_nationalite",
	"siren",
	"nom_complet",
	"activite_principale",
	"adresse",
	"code_postal",
	"libelle_commune",
	"date_creation",
	"nature_juridique",
}

// WriteCSV flattens companies into one row per (company, director) pair and
// writes the result to path, creating the parent directory if needed.
// Directors drive row cardinality: a company without surviving directors
// produces no rows. An unclassified origin flag is written as false.
func WriteCSV(companies []*model.Company, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return helper.NewError("create output directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return helper.NewError("create output file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(Headers); err != nil {
		return helper.NewError("write csv header", err)
	}

	for _, company := range companies {
		for _, dirigeant := range company.Dirigeants {
			row := []string{
				dirigeant.Nom,
				dirigeant.Prenoms,
				dirigeant.DateDeNaissance,
				dirigeant.Qualite,
				formatOrigine(dirigeant.OrigineTurque),
				dirigeant.Nationalite,
				company.Siren,
				company.NomComplet,
				company.ActivitePrincipale,
				company.Adresse,
				company.CodePostal,
				company.LibelleCommune,
				company.DateCreation,
				company.NatureJuridique,
			}
			if err := writer.Write(row); err != nil {
				return helper.NewError("write csv row", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return helper.NewError("flush csv", err)
	}

	return nil
}

func formatOrigine(flag *bool) string {
	if flag == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*flag)
}
