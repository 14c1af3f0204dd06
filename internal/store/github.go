package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/go-github/v66/github"
)

// GitHubConfig locates the repository used as the remote store.
type GitHubConfig struct {
	Owner  string
	Repo   string
	Branch string
}

// GitHubStore implements Store on the GitHub repository contents API.
// File SHAs serve as revision markers.
type GitHubStore struct {
	client *github.Client
	cfg    GitHubConfig
}

// NewGitHubStore creates a store authenticated with token. An empty token
// gives an anonymous, read-only client.
func NewGitHubStore(token string, cfg GitHubConfig) *GitHubStore {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return NewGitHubStoreWithClient(client, cfg)
}

// NewGitHubStoreWithClient wraps an existing client.
func NewGitHubStoreWithClient(client *github.Client, cfg GitHubConfig) *GitHubStore {
	return &GitHubStore{client: client, cfg: cfg}
}

// Get implements Store.
func (g *GitHubStore) Get(ctx context.Context, path string) (*Document, error) {
	var opts *github.RepositoryContentGetOptions
	if g.cfg.Branch != "" {
		opts = &github.RepositoryContentGetOptions{Ref: g.cfg.Branch}
	}

	file, _, resp, err := g.client.Repositories.GetContents(ctx, g.cfg.Owner, g.cfg.Repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, classify(resp, err))
	}

	if file == nil {
		return nil, fmt.Errorf("get %s: path is a directory: %w", path, ErrNotFound)
	}

	content, err := g.fileContent(ctx, path, file, opts)
	if err != nil {
		return nil, err
	}

	return &Document{
		Path:     path,
		Content:  content,
		Revision: file.GetSHA(),
	}, nil
}

// largeFileEncoding is what the contents API reports for files over 1 MB,
// whose body it leaves out.
const largeFileEncoding = "none"

func (g *GitHubStore) fileContent(
	ctx context.Context,
	path string,
	file *github.RepositoryContent,
	opts *github.RepositoryContentGetOptions,
) ([]byte, error) {
	if file.GetEncoding() != largeFileEncoding {
		text, err := file.GetContent()
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}

		return []byte(text), nil
	}

	body, resp, err := g.client.Repositories.DownloadContents(ctx, g.cfg.Owner, g.cfg.Repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", path, classify(resp, err))
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}

// Create implements Store.
func (g *GitHubStore) Create(ctx context.Context, path, message string, content []byte) (string, error) {
	res, resp, err := g.client.Repositories.CreateFile(ctx, g.cfg.Owner, g.cfg.Repo, path, g.fileOptions(message, content, nil))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, classify(resp, err))
	}

	return res.GetContent().GetSHA(), nil
}

// Update implements Store.
func (g *GitHubStore) Update(ctx context.Context, path, message string, content []byte, revision string) (string, error) {
	opts := g.fileOptions(message, content, github.String(revision))

	res, resp, err := g.client.Repositories.UpdateFile(ctx, g.cfg.Owner, g.cfg.Repo, path, opts)
	if err != nil {
		return "", fmt.Errorf("update %s: %w", path, classify(resp, err))
	}

	return res.GetContent().GetSHA(), nil
}

func (g *GitHubStore) fileOptions(message string, content []byte, sha *string) *github.RepositoryContentFileOptions {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		SHA:     sha,
	}

	if g.cfg.Branch != "" {
		opts.Branch = github.String(g.cfg.Branch)
	}

	return opts
}

// classify maps GitHub status codes onto store errors. GitHub answers 422
// when creating over an existing file and 409 on a stale SHA.
func classify(resp *github.Response, err error) error {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	var ghErr *github.ErrorResponse
	if status == 0 && errors.As(err, &ghErr) && ghErr.Response != nil {
		status = ghErr.Response.StatusCode
	}

	switch status {
	case http.StatusNotFound:
		return errors.Join(ErrNotFound, err)
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return errors.Join(ErrConflict, err)
	default:
		return err
	}
}
