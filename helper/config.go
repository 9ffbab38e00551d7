package helper

import (
	"fmt"
	"net/url"
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// DefaultRegistryBaseURL is the public company-registry search endpoint.
const DefaultRegistryBaseURL = "https://recherche-entreprises.api.gouv.fr/search"

// DefaultOpenAIModel is the model used for name-origin classification when
// none is configured.
const DefaultOpenAIModel = "gpt-5-mini"

// Configuration holds environment-derived settings for a scraper instance
type Configuration struct {
	RegistryBaseURL string
	OpenAIAPIKey    string
	OpenAIModel     string
	OutputDir       string
	NAFTablePath    string
}

// NewConfiguration loads the configuration from the environment, reading an
// optional .env file first. All keys have defaults except OPENAI_API_KEY,
// which stays empty when unset; callers fall back to the local classifier
// in that case.
func NewConfiguration() (*Configuration, error) {
	// Best effort, running without a .env file is fine
	_ = godotenv.Load()

	config := &Configuration{
		RegistryBaseURL: getenv("REGISTRY_BASE_URL", DefaultRegistryBaseURL),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getenv("OPENAI_MODEL", DefaultOpenAIModel),
		OutputDir:       getenv("OUTPUT_DIR", "data_output"),
		NAFTablePath:    getenv("NAF_TABLE", "naf2008_liste_n5.xlsx"),
	}

	if _, err := url.ParseRequestURI(config.RegistryBaseURL); err != nil {
		return nil, fmt.Errorf("invalid REGISTRY_BASE_URL %v: %w", config.RegistryBaseURL, err)
	}

	return config, nil
}

// SetTestConfigEnvs sets environment variables for tests
func SetTestConfigEnvs(t *testing.T, registryBaseURL string) {
	t.Setenv("REGISTRY_BASE_URL", registryBaseURL)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OUTPUT_DIR", t.TempDir())
}

func getenv(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
