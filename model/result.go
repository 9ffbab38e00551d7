package model

import (
	"fmt"

	"github.com/google/uuid"
)

// PageError records a page that could not be fetched while the rest of the
// aggregation continued. Page 1 failures abort the whole fetch instead,
// since the page count is unknown without it.
type PageError struct {
	Page int   `json:"page"`
	Err  error `json:"-"`
}

func (e PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

// Listing is the aggregated result of one paginated registry search.
// Results preserve page order and intra-page order. PageErrors lets callers
// distinguish a complete listing from a partial one; an empty Results with
// no PageErrors is a genuine zero-match search.
type Listing struct {
	RID          uuid.UUID   `json:"rid"`
	ResultsCount int         `json:"results_count"`
	TotalPages   int         `json:"total_pages"`
	Results      []*Company  `json:"results"`
	PageErrors   []PageError `json:"page_errors,omitempty"`
}

// Partial reports whether at least one page failed to fetch.
func (l *Listing) Partial() bool {
	return len(l.PageErrors) > 0
}

// NameQuery is one deduplicated director name submitted for classification.
type NameQuery struct {
	ID      string `json:"id"`
	Nom     string `json:"nom"`
	Prenoms string `json:"prenoms"`
}

// NameOrigin is one classification result, joined back onto directors by ID.
type NameOrigin struct {
	ID            string `json:"id"`
	OrigineTurque bool   `json:"origine_turque"`
}
