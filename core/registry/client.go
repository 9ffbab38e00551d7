package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dirigeants/model"
)

// RequestTimeout is the fixed per-request timeout for registry calls.
const RequestTimeout = 10 * time.Second

// Client issues single-page search requests against the registry API
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a registry client for the given search endpoint
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: RequestTimeout},
	}
}

// SearchPage is the decoded payload of one registry search page
type SearchPage struct {
	TotalResults int          `json:"total_results"`
	Page         int          `json:"page"`
	PerPage      int          `json:"per_page"`
	TotalPages   int          `json:"total_pages"`
	Results      []RawCompany `json:"results"`
}

// RawCompany is one company object as returned by the registry, before
// normalization into model.Company
type RawCompany struct {
	Siren              string         `json:"siren"`
	NomComplet         string         `json:"nom_complet"`
	NomRaisonSociale   string         `json:"nom_raison_sociale"`
	ActivitePrincipale string         `json:"activite_principale"`
	NatureJuridique    string         `json:"nature_juridique"`
	DateCreation       string         `json:"date_creation"`
	Dirigeants         []RawDirigeant `json:"dirigeants"`
	Siege              RawSiege       `json:"siege"`
}

// RawSiege is the nested head-office object, flattened during normalization
type RawSiege struct {
	Adresse        string `json:"adresse"`
	CodePostal     string `json:"code_postal"`
	LibelleCommune string `json:"libelle_commune"`
}

// RawDirigeant is one director object as returned by the registry
type RawDirigeant struct {
	Nom             string `json:"nom"`
	Prenoms         string `json:"prenoms"`
	DateDeNaissance string `json:"date_de_naissance"`
	Qualite         string `json:"qualite"`
	TypeDirigeant   string `json:"type_dirigeant"`
	Nationalite     string `json:"nationalite"`
}

// Search fetches one page of results for the query. Administrative status
// is always restricted to active companies. Transport failures and non-2xx
// responses are returned as errors, never as sentinel payloads.
func (c *Client) Search(ctx context.Context, query model.SearchQuery, page int) (*SearchPage, error) {
	params := url.Values{}
	params.Set("activite_principale", query.NAF)
	if query.PostalCode != "" {
		params.Set("code_postal", query.PostalCode)
	}
	if query.Departement != "" {
		params.Set("departement", query.Departement)
	}
	params.Set("etat_administratif", "A")
	params.Set("nature_juridique", query.NatureJuridique())
	params.Set("per_page", strconv.Itoa(model.PerPage))
	params.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch companies: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var searchPage SearchPage
	if err := json.NewDecoder(resp.Body).Decode(&searchPage); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return &searchPage, nil
}
