package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"
)

const (
	// ProviderAnthropic generates posts with Claude.
	ProviderAnthropic = "anthropic"
	// ProviderOpenAI generates posts with the OpenAI chat API.
	ProviderOpenAI = "openai"

	// ScorerHeuristic scores posts locally.
	ScorerHeuristic = "heuristic"
	// ScorerLLM asks Claude to score posts.
	ScorerLLM = "llm"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Env  string `envconfig:"ENV" default:"development"`
	Port string `envconfig:"PORT" default:"8080"`

	// Security settings
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES" default:"127.0.0.1"`
	HSTSMaxAge     int      `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	CSPMode        string   `envconfig:"CSP_MODE" default:"relaxed"`

	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Generation settings
	GenerationProvider    string  `envconfig:"GENERATION_PROVIDER" default:"anthropic"`
	GenerationModel       string  `envconfig:"GENERATION_MODEL"`
	GenerationMaxTokens   int64   `envconfig:"GENERATION_MAX_TOKENS" default:"3500"`
	GenerationTemperature float64 `envconfig:"GENERATION_TEMPERATURE" default:"0.3"`
	QualityScorer         string  `envconfig:"QUALITY_SCORER" default:"heuristic"`

	// Publishing settings
	GitHubOwner     string `envconfig:"GITHUB_OWNER" default:"youngouk"`
	GitHubRepo      string `envconfig:"GITHUB_REPO" default:"postAuto"`
	GitHubBranch    string `envconfig:"GITHUB_BRANCH"`
	PostPrefix      string `envconfig:"POST_PREFIX" default:"blog/posts"`
	CatalogPath     string `envconfig:"CATALOG_PATH" default:"blog_posts.json"`
	DuplicatePolicy string `envconfig:"DUPLICATE_POLICY" default:"reject"`

	// Local state; empty means the workdir default.
	StateDir string `envconfig:"STATE_DIR"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional for development)
	if err := godotenv.Load(); err != nil {
		// Not an error if file doesn't exist (expected in production)
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.GenerationProvider {
	case ProviderAnthropic, ProviderOpenAI:
	default:
		return fmt.Errorf("invalid GENERATION_PROVIDER %q: must be %q or %q",
			c.GenerationProvider, ProviderAnthropic, ProviderOpenAI)
	}

	switch c.QualityScorer {
	case ScorerHeuristic, ScorerLLM:
	default:
		return fmt.Errorf("invalid QUALITY_SCORER %q: must be %q or %q",
			c.QualityScorer, ScorerHeuristic, ScorerLLM)
	}

	if c.GenerationMaxTokens <= 0 {
		return fmt.Errorf("invalid GENERATION_MAX_TOKENS %d: must be positive", c.GenerationMaxTokens)
	}

	return nil
}

// BuildCSP constructs Content Security Policy based on mode.
func BuildCSP(mode string) string {
	if mode == "strict" {
		// Production CSP
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			"img-src 'self' data:; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	// Development/relaxed CSP
	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:"
}
