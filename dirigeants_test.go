package dirigeants

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirigeants/helper"
	"dirigeants/model"
)

const searchPayload = `{
	"total_pages": 1,
	"results": [{
		"siren": "123456789",
		"nom_complet": "ACME BATIMENT",
		"activite_principale": "43.99A",
		"nature_juridique": "5710",
		"date_creation": "2015-06-01",
		"siege": {"adresse": "1 RUE DE LA PAIX 75002 PARIS", "code_postal": "75002", "libelle_commune": "PARIS"},
		"dirigeants": [
			{"nom": "Yilmaz", "prenoms": "Mehmet", "qualite": "Gérant", "type_dirigeant": "personne physique"},
			{"nom": "Martin", "prenoms": "Paul", "qualite": "Liquidateur", "type_dirigeant": "personne physique"}
		]
	}]
}`

func testScraper(t *testing.T, registryURL string) *Scraper {
	t.Helper()
	config := &helper.Configuration{
		RegistryBaseURL: registryURL,
		OutputDir:       t.TempDir(),
	}

	scraper, err := NewScraper(config)
	require.NoError(t, err, "Expected NewScraper to not return an error")
	require.NotNil(t, scraper, "Expected NewScraper to return a non-nil instance")
	return scraper
}

func TestNewScraper(t *testing.T) {
	t.Run("Valid call NewScraper", func(t *testing.T) {
		scraper := testScraper(t, "http://localhost:1")

		assert.NotNil(t, scraper.Registry, "Expected scraper to have a registry client")
		assert.NotNil(t, scraper.Aggregator, "Expected scraper to have an aggregator")
		assert.NotNil(t, scraper.Pipeline, "Expected scraper to have a pipeline")
		assert.NotNil(t, scraper.Log(), "Expected scraper to have a logger")
	})

	t.Run("Nil configuration is rejected", func(t *testing.T) {
		scraper, err := NewScraper(nil)

		assert.Error(t, err, "Expected a nil configuration to be rejected")
		assert.Nil(t, scraper)
	})
}

func TestScraperRun(t *testing.T) {
	ctx := context.Background()

	t.Run("Full run writes the flattened CSV", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(searchPayload))
		}))
		defer server.Close()

		scraper := testScraper(t, server.URL)
		scraper.SetClassifier(func(ctx context.Context, names []model.NameQuery) ([]model.NameOrigin, error) {
			require.Len(t, names, 1, "Expected only the surviving director to be classified")
			return []model.NameOrigin{{ID: names[0].ID, OrigineTurque: true}}, nil
		})

		runConfig := model.DefaultRunConfig()
		runConfig.CheckNames = true
		runConfig.OutputDir = scraper.Config.OutputDir
		runConfig.Filename = "out.csv"

		result, err := scraper.Run(ctx, model.SearchQuery{NAF: "43.99A", Departement: "75"}, runConfig)

		require.NoError(t, err, "Expected Run to not return an error")
		assert.Equal(t, 1, result.Companies)
		assert.Equal(t, 1, result.Dirigeants, "Expected the excluded role to be filtered")
		assert.Empty(t, result.PageErrors)

		file, err := os.Open(result.OutputPath)
		require.NoError(t, err, "Expected the CSV to exist")
		defer file.Close()

		rows, err := csv.NewReader(file).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2, "Expected a header row and exactly one data row")
		assert.Equal(t, "Yilmaz", rows[1][0])
		assert.Equal(t, "true", rows[1][4], "Expected the classification flag in the output")
		assert.Equal(t, "123456789", rows[1][6])
	})

	t.Run("Default filename embeds the query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"total_pages": 1, "results": []}`))
		}))
		defer server.Close()

		scraper := testScraper(t, server.URL)
		runConfig := model.DefaultRunConfig()
		runConfig.OutputDir = scraper.Config.OutputDir

		result, err := scraper.Run(ctx, model.SearchQuery{NAF: "62.01Z", Departement: "33"}, runConfig)

		require.NoError(t, err)
		base := filepath.Base(result.OutputPath)
		assert.Regexp(t, `^companies_62\.01Z_33_\d{14}\.csv$`, base, "Expected the default timestamped filename")
	})

	t.Run("Registry failure is fatal to the run", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		scraper := testScraper(t, server.URL)
		result, err := scraper.Run(ctx, model.SearchQuery{NAF: "43.99A"}, model.DefaultRunConfig())

		assert.Error(t, err, "Expected a page 1 failure to fail the run")
		assert.Nil(t, result)
	})

	t.Run("Classifier failure still produces a CSV", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(searchPayload))
		}))
		defer server.Close()

		scraper := testScraper(t, server.URL)
		scraper.SetClassifier(func(ctx context.Context, names []model.NameQuery) ([]model.NameOrigin, error) {
			return nil, assert.AnError
		})

		runConfig := model.DefaultRunConfig()
		runConfig.CheckNames = true
		runConfig.OutputDir = scraper.Config.OutputDir
		runConfig.Filename = "out.csv"

		result, err := scraper.Run(ctx, model.SearchQuery{NAF: "43.99A"}, runConfig)

		require.NoError(t, err, "Expected a classifier failure to not fail the run")
		rows := func() [][]string {
			file, err := os.Open(result.OutputPath)
			require.NoError(t, err)
			defer file.Close()
			rows, err := csv.NewReader(file).ReadAll()
			require.NoError(t, err)
			return rows
		}()
		require.Len(t, rows, 2, "Expected the cleaned data to still be exported")
		assert.Equal(t, "false", rows[1][4], "Expected the flag to default to false without classification")
	})
}
