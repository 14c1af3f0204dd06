package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alkime/postauto/internal/config"
	"github.com/alkime/postauto/internal/content"
	"github.com/alkime/postauto/internal/keyring"
	"github.com/alkime/postauto/internal/logger"
	"github.com/alkime/postauto/internal/pipeline"
	"github.com/alkime/postauto/internal/publish"
	"github.com/alkime/postauto/internal/store"
	"github.com/alkime/postauto/internal/workdir"
)

// Credentials are resolved from flags or the environment first and the
// system keychain second.
type Credentials struct {
	AnthropicAPIKey string `flag:"" env:"ANTHROPIC_API_KEY" help:"Anthropic API key for generation and scoring"`
	OpenAIAPIKey    string `flag:"" env:"OPENAI_API_KEY" help:"OpenAI API key when GENERATION_PROVIDER=openai"`
	GitHubToken     string `flag:"" env:"GITHUB_TOKEN" help:"GitHub token used to publish posts"`
}

// app is the wired application for one command invocation.
type app struct {
	cfg      *config.Config
	dir      workdir.Dir
	logger   *slog.Logger
	logFile  *os.File
	session  *pipeline.Session
	pipeline *pipeline.Pipeline
}

type appOptions struct {
	// generation wires a generator and evaluator; off for read-only commands.
	generation bool
	// dryRun publishes to an in-memory store and a scratch catalog.
	dryRun bool
	// logToFile sends logs to the state directory while a TUI owns the terminal.
	logToFile bool
}

// newApp loads configuration, resolves credentials and wires the pipeline.
// Missing credentials fail here, before any UI is shown.
func newApp(creds Credentials, opts appOptions) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	dir, err := workdir.Open(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	if err := dir.Prep(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, dir: dir}

	var logOut io.Writer = os.Stderr
	if opts.logToFile {
		//nolint:gosec // Log file is not secret
		f, err := os.OpenFile(dir.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = f
		logOut = f
	}
	a.logger = logger.SetupLogger(cfg, logOut)

	remote, catalogPath, err := a.remoteStore(creds, opts)
	if err != nil {
		a.closeLog()
		return nil, err
	}

	duplicates, err := publish.ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if err != nil {
		a.closeLog()
		return nil, err
	}

	publisher := publish.New(remote, publish.Config{
		PostPrefix:  cfg.PostPrefix,
		CatalogPath: cfg.CatalogPath,
		Duplicates:  duplicates,
	}, a.logger)

	a.session, err = pipeline.OpenSession(catalogPath, publisher, a.logger)
	if err != nil {
		a.closeLog()
		return nil, err
	}

	if !opts.generation {
		return a, nil
	}

	generator, evaluator, err := a.generation(creds)
	if err != nil {
		a.closeLog()
		return nil, err
	}

	a.pipeline = pipeline.New(generator, evaluator, a.session, a.logger)

	return a, nil
}

func (a *app) remoteStore(creds Credentials, opts appOptions) (store.Store, string, error) {
	catalogPath := a.dir.CatalogPath(a.cfg.CatalogPath)

	if opts.dryRun {
		a.logger.Info("Dry run: publishing to memory")
		return store.NewMemoryStore(), filepath.Join(a.dir.Path(), "dry-run", filepath.Base(catalogPath)), nil
	}

	token, err := keyring.Resolve(keyring.GitHub, creds.GitHubToken)
	if err != nil {
		// Reads work anonymously against public repositories.
		if !opts.generation && errors.Is(err, keyring.ErrMissingCredential) {
			a.logger.Debug("No GitHub token, reading anonymously")
		} else {
			return nil, "", err
		}
	}

	return store.NewGitHubStore(token, store.GitHubConfig{
		Owner:  a.cfg.GitHubOwner,
		Repo:   a.cfg.GitHubRepo,
		Branch: a.cfg.GitHubBranch,
	}), catalogPath, nil
}

func (a *app) generation(creds Credentials) (content.Generator, content.Evaluator, error) {
	settings := content.Settings{
		Model:       a.cfg.GenerationModel,
		MaxTokens:   a.cfg.GenerationMaxTokens,
		Temperature: a.cfg.GenerationTemperature,
	}

	var generator content.Generator
	switch a.cfg.GenerationProvider {
	case config.ProviderOpenAI:
		key, err := keyring.Resolve(keyring.OpenAI, creds.OpenAIAPIKey)
		if err != nil {
			return nil, nil, err
		}
		generator = content.NewOpenAIWriter(key, settings)
	default:
		key, err := keyring.Resolve(keyring.Anthropic, creds.AnthropicAPIKey)
		if err != nil {
			return nil, nil, err
		}
		generator = content.NewAnthropicWriter(key, settings)
	}

	if a.cfg.QualityScorer != config.ScorerLLM {
		return generator, content.NewHeuristicEvaluator(), nil
	}

	key, err := keyring.Resolve(keyring.Anthropic, creds.AnthropicAPIKey)
	if err != nil {
		return nil, nil, err
	}

	return generator, content.NewClaudeEvaluator(key, ""), nil
}

// Close flushes the session and closes the log file.
func (a *app) Close() error {
	defer a.closeLog()

	if err := a.session.Close(context.Background()); err != nil {
		a.logger.Error("Failed to close session", "error", err)
		return err
	}

	return nil
}

func (a *app) closeLog() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

// instructionsPath returns the instructions file to use: an explicit path,
// or the state directory draft seeded with the defaults when absent.
func (a *app) instructionsPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("instructions file not found: %w", err)
		}

		return explicit, nil
	}

	path := a.dir.InstructionsPath()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	//nolint:gosec // Instructions are not secret
	if err := os.WriteFile(path, []byte(content.DefaultInstructions), 0o644); err != nil {
		return "", fmt.Errorf("failed to seed instructions: %w", err)
	}

	return path, nil
}
