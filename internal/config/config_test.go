package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ProviderAnthropic, cfg.GenerationProvider)
	assert.Equal(t, int64(3500), cfg.GenerationMaxTokens)
	assert.InDelta(t, 0.3, cfg.GenerationTemperature, 1e-9)
	assert.Equal(t, ScorerHeuristic, cfg.QualityScorer)
	assert.Equal(t, "youngouk", cfg.GitHubOwner)
	assert.Equal(t, "postAuto", cfg.GitHubRepo)
	assert.Equal(t, "blog/posts", cfg.PostPrefix)
	assert.Equal(t, "blog_posts.json", cfg.CatalogPath)
	assert.Equal(t, "reject", cfg.DuplicatePolicy)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GENERATION_PROVIDER", "openai")
	t.Setenv("GENERATION_MAX_TOKENS", "1200")
	t.Setenv("POST_PREFIX", "content/posts")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.GenerationProvider)
	assert.Equal(t, int64(1200), cfg.GenerationMaxTokens)
	assert.Equal(t, "content/posts", cfg.PostPrefix)
}

func TestLoadConfig_InvalidProvider(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GENERATION_PROVIDER", "gemini")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "GENERATION_PROVIDER")
}

func TestValidate_Scorer(t *testing.T) {
	cfg := &Config{GenerationProvider: ProviderAnthropic, QualityScorer: "vibes", GenerationMaxTokens: 10}
	assert.ErrorContains(t, cfg.Validate(), "QUALITY_SCORER")
}

func TestBuildCSP(t *testing.T) {
	assert.Contains(t, BuildCSP("strict"), "object-src 'none'")
	assert.Contains(t, BuildCSP("relaxed"), "'unsafe-inline'")
}
