package registry

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"dirigeants/helper"
	"dirigeants/model"
)

// Aggregator drives the client across all pages of a search and normalizes
// raw records into model.Company values
type Aggregator struct {
	client *Client
	log    *slog.Logger
}

// NewAggregator creates an aggregator on top of a registry client
func NewAggregator(client *Client, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		client: client,
		log:    logger,
	}
}

// FetchAll fetches page 1 to learn the page count, then pages 2..N in
// order. Page order and intra-page order are preserved in the listing.
// A page 1 failure aborts the fetch; later page failures are recorded in
// Listing.PageErrors and aggregation continues, so callers can tell a
// partial listing from a complete one.
func (a *Aggregator) FetchAll(ctx context.Context, query model.SearchQuery) (*model.Listing, error) {
	a.log.Info("Searching for companies",
		slog.String("naf", query.NAF),
		slog.String("postal_code", query.PostalCode),
		slog.String("departement", query.Departement))

	first, err := a.client.Search(ctx, query, 1)
	if err != nil {
		return nil, helper.NewError("fetch first page", err)
	}

	totalPages := first.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}

	listing := &model.Listing{
		RID:        uuid.New(),
		TotalPages: totalPages,
		Results:    normalizeResults(first.Results),
	}

	for page := 2; page <= totalPages; page++ {
		a.log.Debug("Fetching page", slog.Int("page", page), slog.Int("total_pages", totalPages))

		pageData, err := a.client.Search(ctx, query, page)
		if err != nil {
			a.log.Error("Failed to fetch page", slog.Int("page", page), slog.String("error", err.Error()))
			listing.PageErrors = append(listing.PageErrors, model.PageError{Page: page, Err: err})
			continue
		}
		listing.Results = append(listing.Results, normalizeResults(pageData.Results)...)
	}

	listing.ResultsCount = len(listing.Results)

	a.log.Info("Returning companies",
		slog.String("listing_rid", listing.RID.String()),
		slog.Int("count", listing.ResultsCount),
		slog.Int("total_pages", totalPages),
		slog.Int("failed_pages", len(listing.PageErrors)))

	return listing, nil
}

// normalizeResults maps raw company objects to the flat model, filling
// explicit defaults at this boundary so nothing downstream has to guard
// against missing fields.
func normalizeResults(raw []RawCompany) []*model.Company {
	companies := make([]*model.Company, 0, len(raw))
	for _, rc := range raw {
		dirigeants := make([]*model.Dirigeant, 0, len(rc.Dirigeants))
		for _, rd := range rc.Dirigeants {
			dirigeants = append(dirigeants, &model.Dirigeant{
				Nom:             rd.Nom,
				Prenoms:         rd.Prenoms,
				DateDeNaissance: rd.DateDeNaissance,
				Qualite:         rd.Qualite,
				TypeDirigeant:   rd.TypeDirigeant,
				Nationalite:     rd.Nationalite,
			})
		}

		companies = append(companies, &model.Company{
			Siren:              rc.Siren,
			NomComplet:         rc.NomComplet,
			NomRaisonSociale:   rc.NomRaisonSociale,
			ActivitePrincipale: rc.ActivitePrincipale,
			Dirigeants:         dirigeants,
			Adresse:            rc.Siege.Adresse,
			CodePostal:         rc.Siege.CodePostal,
			LibelleCommune:     rc.Siege.LibelleCommune,
			DateCreation:       rc.DateCreation,
			NatureJuridique:    rc.NatureJuridique,
		})
	}
	return companies
}
