package pipeline

import (
	"context"
	"log/slog"

	"dirigeants/model"
)

// ClassifyFunc classifies a batch of director names by origin.
// It receives the full deduplicated name list for a run in one call and
// returns results in no particular order; the pipeline owns the join back
// onto directors.
type ClassifyFunc func(ctx context.Context, names []model.NameQuery) ([]model.NameOrigin, error)

// Pipeline cleans up aggregated company records and optionally enriches
// their directors with a name-origin classification
type Pipeline struct {
	Classifier ClassifyFunc // Optional
	log        *slog.Logger
}

// NewPipeline creates a new enrichment pipeline
func NewPipeline(logger *slog.Logger) *Pipeline {
	return &Pipeline{
		log: logger,
	}
}

// SetClassifier sets the name-origin classification function
func (p *Pipeline) SetClassifier(classifier ClassifyFunc) {
	p.Classifier = classifier
}

// Enrich filters every company's directors to natural persons with a
// non-excluded role, computes their stable IDs, and, when checkNames is
// set, runs one classification pass over the deduplicated name list and
// joins the results back by ID. Directors with no matching result get an
// explicit false flag; when classification is skipped the flag stays nil.
//
// A classifier failure is logged and the cleaned companies are returned
// unclassified. Enrichment never loses company or director data already
// gathered.
func (p *Pipeline) Enrich(ctx context.Context, companies []*model.Company, checkNames bool) []*model.Company {
	names := make([]model.NameQuery, 0)
	seen := make(map[string]bool)

	for _, company := range companies {
		retained := make([]*model.Dirigeant, 0, len(company.Dirigeants))
		for _, dirigeant := range company.Dirigeants {
			if !dirigeant.Retained() {
				continue
			}
			dirigeant.ID = model.DirigeantID(dirigeant.Nom, dirigeant.Prenoms)
			retained = append(retained, dirigeant)

			if !seen[dirigeant.ID] {
				seen[dirigeant.ID] = true
				names = append(names, model.NameQuery{
					ID:      dirigeant.ID,
					Nom:     dirigeant.Nom,
					Prenoms: dirigeant.Prenoms,
				})
			}
		}
		company.Dirigeants = retained
	}

	if !checkNames {
		return companies
	}
	if len(names) == 0 {
		p.log.Info("No dirigeants found to classify")
		return companies
	}
	if p.Classifier == nil {
		p.log.Warn("Name check requested but no classifier set, skipping classification")
		return companies
	}

	origins, err := p.Classifier(ctx, names)
	if err != nil {
		p.log.Error("Failed to classify names", slog.String("error", err.Error()))
		return companies
	}

	originByID := make(map[string]bool, len(origins))
	for _, origin := range origins {
		originByID[origin.ID] = origin.OrigineTurque
	}

	for _, company := range companies {
		for _, dirigeant := range company.Dirigeants {
			// Absence of a result is treated as a negative, not an error
			flag := originByID[dirigeant.ID]
			dirigeant.OrigineTurque = &flag
		}
	}

	return companies
}
