package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirigeants/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pagedRegistry(t *testing.T, totalPages int, failPages map[int]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if failPages[atoi(page)] {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"total_pages": %d, "results": [{"siren": "page-%s", "nom_complet": "COMPANY %s"}]}`, totalPages, page, page)
	}))
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

func TestAggregatorFetchAll(t *testing.T) {
	ctx := context.Background()

	t.Run("All pages fetched in order", func(t *testing.T) {
		server := pagedRegistry(t, 3, nil)
		defer server.Close()

		aggregator := NewAggregator(NewClient(server.URL), testLogger())
		listing, err := aggregator.FetchAll(ctx, model.SearchQuery{NAF: "43.99A"})

		require.NoError(t, err, "Expected FetchAll to not return an error")
		require.NotNil(t, listing, "Expected a listing")
		assert.Equal(t, 3, listing.TotalPages, "Expected the page count from page 1")
		assert.Equal(t, 3, listing.ResultsCount, "Expected one result per page")
		require.Len(t, listing.Results, 3)
		assert.Equal(t, "page-1", listing.Results[0].Siren, "Expected page 1 records first")
		assert.Equal(t, "page-2", listing.Results[1].Siren, "Expected page 2 records second")
		assert.Equal(t, "page-3", listing.Results[2].Siren, "Expected page 3 records last")
		assert.False(t, listing.Partial(), "Expected a complete listing")
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", listing.RID.String(), "Expected the listing to carry a run identifier")
	})

	t.Run("Single page listing", func(t *testing.T) {
		server := pagedRegistry(t, 1, nil)
		defer server.Close()

		aggregator := NewAggregator(NewClient(server.URL), testLogger())
		listing, err := aggregator.FetchAll(ctx, model.SearchQuery{NAF: "43.99A"})

		require.NoError(t, err)
		assert.Equal(t, 1, listing.ResultsCount, "Expected only page 1 to be fetched")
	})

	t.Run("Page 1 failure aborts the fetch", func(t *testing.T) {
		server := pagedRegistry(t, 3, map[int]bool{1: true})
		defer server.Close()

		aggregator := NewAggregator(NewClient(server.URL), testLogger())
		listing, err := aggregator.FetchAll(ctx, model.SearchQuery{NAF: "43.99A"})

		assert.Error(t, err, "Expected a page 1 failure to abort the fetch")
		assert.Nil(t, listing, "Expected no listing when the page count is unknown")
	})

	t.Run("Later page failure degrades to a partial listing", func(t *testing.T) {
		server := pagedRegistry(t, 3, map[int]bool{2: true})
		defer server.Close()

		aggregator := NewAggregator(NewClient(server.URL), testLogger())
		listing, err := aggregator.FetchAll(ctx, model.SearchQuery{NAF: "43.99A"})

		require.NoError(t, err, "Expected FetchAll to continue past a later page failure")
		assert.Equal(t, 2, listing.ResultsCount, "Expected results from the surviving pages")
		assert.Equal(t, "page-1", listing.Results[0].Siren)
		assert.Equal(t, "page-3", listing.Results[1].Siren, "Expected order preserved around the failed page")
		require.True(t, listing.Partial(), "Expected the listing to be marked partial")
		assert.Equal(t, 2, listing.PageErrors[0].Page, "Expected the failed page to be recorded")
	})

	t.Run("Zero matches is a complete empty listing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"total_pages": 0, "results": []}`))
		}))
		defer server.Close()

		aggregator := NewAggregator(NewClient(server.URL), testLogger())
		listing, err := aggregator.FetchAll(ctx, model.SearchQuery{NAF: "43.99A"})

		require.NoError(t, err, "Expected an empty result set to not be an error")
		assert.Equal(t, 0, listing.ResultsCount, "Expected no results")
		assert.False(t, listing.Partial(), "Expected no page errors for a genuine zero-match search")
	})

	t.Run("Missing fields normalize to empty defaults", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"total_pages": 1, "results": [{"siren": "123456789"}]}`))
		}))
		defer server.Close()

		aggregator := NewAggregator(NewClient(server.URL), testLogger())
		listing, err := aggregator.FetchAll(ctx, model.SearchQuery{NAF: "43.99A"})

		require.NoError(t, err)
		require.Len(t, listing.Results, 1)
		company := listing.Results[0]
		assert.Equal(t, "123456789", company.Siren)
		assert.Empty(t, company.NomComplet, "Expected missing names to default to empty")
		assert.Empty(t, company.Adresse, "Expected missing siege to flatten to empty address fields")
		assert.NotNil(t, company.Dirigeants, "Expected a missing director list to default to an empty slice")
		assert.Len(t, company.Dirigeants, 0)
	})
}
