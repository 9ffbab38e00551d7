package dirigeants

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dirigeants/core/export"
	"dirigeants/core/pipeline"
	"dirigeants/core/registry"
	"dirigeants/helper"
	"dirigeants/model"
)

// Scraper ties the registry aggregator, the enrichment pipeline and the
// CSV exporter together for one-shot runs
type Scraper struct {
	Config     *helper.Configuration
	Registry   *registry.Client
	Aggregator *registry.Aggregator
	Pipeline   *pipeline.Pipeline
	// Logging
	log *slog.Logger
}

// NewScraper creates a new Scraper instance with all components initialized
func NewScraper(config *helper.Configuration) (*Scraper, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration must not be nil")
	}

	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	client := registry.NewClient(config.RegistryBaseURL)

	return &Scraper{
		Config:     config,
		Registry:   client,
		Aggregator: registry.NewAggregator(client, logger),
		Pipeline:   pipeline.NewPipeline(logger),
		log:        logger,
	}, nil
}

// SetClassifier sets the name-origin classifier used during enrichment
func (s *Scraper) SetClassifier(classifier pipeline.ClassifyFunc) {
	s.Pipeline.SetClassifier(classifier)
}

// UseDefaultClassifier sets up the OpenAI-backed classifier from the
// configured credential and model
func (s *Scraper) UseDefaultClassifier() error {
	classifier, err := pipeline.DefaultClassifier(s.Config.OpenAIAPIKey, s.Config.OpenAIModel)
	if err != nil {
		return helper.NewError("create default classifier", err)
	}
	s.Pipeline.SetClassifier(classifier)
	return nil
}

// UseLocalClassifier sets up the offline zero-shot classifier, downloading
// its model on first use
func (s *Scraper) UseLocalClassifier() error {
	classifier, err := pipeline.LocalClassifier()
	if err != nil {
		return helper.NewError("create local classifier", err)
	}
	s.Pipeline.SetClassifier(classifier)
	return nil
}

// RunResult summarizes one completed scrape run
type RunResult struct {
	OutputPath string
	Companies  int
	Dirigeants int
	PageErrors []model.PageError
}

// Run fetches all pages for the query, enriches the director lists and
// writes the flattened CSV. Page failures past the first page degrade to a
// partial result reported in RunResult.PageErrors; a CSV write failure is
// fatal to the run.
func (s *Scraper) Run(ctx context.Context, query model.SearchQuery, runConfig model.RunConfig) (*RunResult, error) {
	listing, err := s.Aggregator.FetchAll(ctx, query)
	if err != nil {
		return nil, helper.NewError("fetch companies", err)
	}

	companies := s.Pipeline.Enrich(ctx, listing.Results, runConfig.CheckNames)

	outputDir := runConfig.OutputDir
	if outputDir == "" {
		outputDir = s.Config.OutputDir
	}
	filename := runConfig.Filename
	if filename == "" {
		filename = model.DefaultFilename(query, time.Now())
	}
	outputPath := filepath.Join(outputDir, filename)

	if err := export.WriteCSV(companies, outputPath); err != nil {
		return nil, helper.NewError("write csv", err)
	}

	dirigeantCount := 0
	for _, company := range companies {
		dirigeantCount += len(company.Dirigeants)
	}

	s.log.Info("CSV file written successfully",
		slog.String("path", outputPath),
		slog.Int("companies", len(companies)),
		slog.Int("dirigeants", dirigeantCount))

	return &RunResult{
		OutputPath: outputPath,
		Companies:  len(companies),
		Dirigeants: dirigeantCount,
		PageErrors: listing.PageErrors,
	}, nil
}

// Log exposes the scraper logger for callers that want to share it
func (s *Scraper) Log() *slog.Logger {
	return s.log
}
