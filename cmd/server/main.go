package main

import (
	"context"
	"log"
	"os"

	"github.com/alkime/postauto/internal/config"
	"github.com/alkime/postauto/internal/keyring"
	"github.com/alkime/postauto/internal/logger"
	"github.com/alkime/postauto/internal/pipeline"
	"github.com/alkime/postauto/internal/publish"
	"github.com/alkime/postauto/internal/server"
	"github.com/alkime/postauto/internal/store"
	"github.com/alkime/postauto/internal/workdir"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logger.SetupLogger(cfg, os.Stdout)

	dir, err := workdir.Open(cfg.StateDir)
	if err != nil {
		log.Fatalf("Failed to resolve state directory: %v", err)
	}

	// Reading public repositories works without a token.
	token, err := keyring.Resolve(keyring.GitHub, os.Getenv(keyring.GitHub.EnvVar()))
	if err != nil {
		logger.Warn("No GitHub token, reading anonymously", "error", err)
	}

	publisher := publish.New(store.NewGitHubStore(token, store.GitHubConfig{
		Owner:  cfg.GitHubOwner,
		Repo:   cfg.GitHubRepo,
		Branch: cfg.GitHubBranch,
	}), publish.Config{
		PostPrefix:  cfg.PostPrefix,
		CatalogPath: cfg.CatalogPath,
	}, logger)

	session, err := pipeline.OpenSession(dir.CatalogPath(cfg.CatalogPath), publisher, logger)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}

	if err := session.Sync(context.Background()); err != nil {
		logger.Warn("Using local catalog mirror", "error", err)
	}

	logger.Info("Starting postauto server",
		"env", cfg.Env,
		"port", cfg.Port,
		"repo", cfg.GitHubOwner+"/"+cfg.GitHubRepo,
		"posts", len(session.Records()),
	)

	srv := server.New(cfg, session, dir.ArchiveDir(), logger)
	if err := server.Run(srv); err != nil {
		logger.Error("Failed to start server", "error", err)
		log.Fatalf("Fatal: %v", err)
	}
}
