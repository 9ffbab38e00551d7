package model

import (
	"fmt"
	"time"
)

// RunConfig represents configuration for one scrape run
type RunConfig struct {
	// Enrichment parameters
	CheckNames bool `json:"check_names"`

	// Output parameters
	OutputDir string `json:"output_dir"`
	Filename  string `json:"filename,omitempty"` // Defaults to a timestamped name derived from the query
}

// DefaultRunConfig returns a sensible default configuration
func DefaultRunConfig() RunConfig {
	return RunConfig{
		CheckNames: false,
		OutputDir:  "data_output",
	}
}

// DefaultFilename builds the default output filename for a query,
// embedding the activity code, the department and a timestamp.
func DefaultFilename(q SearchQuery, now time.Time) string {
	return fmt.Sprintf("companies_%s_%s_%s.csv", q.NAF, q.Departement, now.Format("20060102150405"))
}
