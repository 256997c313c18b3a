// Package github is the boundary to the GitHub REST API: it fetches the
// actual collaborator state, resolves team memberships, and executes the
// planned actions. The reconciliation core never talks to it directly.
package github

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	gh "github.com/google/go-github/v66/github"
)

// Client wraps the GitHub API client with addteam-specific helpers.
type Client struct {
	gh *gh.Client
}

// NewClient creates a client authenticated with the given token.
func NewClient(token string) *Client {
	return &Client{gh: gh.NewClient(nil).WithAuthToken(token)}
}

// NewClientFromEnv creates a client from GITHUB_TOKEN or GH_TOKEN.
func NewClientFromEnv() (*Client, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GH_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("no GitHub token found: set GITHUB_TOKEN or GH_TOKEN")
	}
	return NewClient(token), nil
}

// CurrentUser returns the login of the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("resolving authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

// RepoInfo is the repository metadata the CLI needs.
type RepoInfo struct {
	Owner       string
	Name        string
	Description string
}

func (r *RepoInfo) FullName() string {
	return r.Owner + "/" + r.Name
}

// Repo fetches repository metadata.
func (c *Client) Repo(ctx context.Context, owner, name string) (*RepoInfo, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("resolving repo %s/%s: %w", owner, name, err)
	}
	return &RepoInfo{
		Owner:       repo.GetOwner().GetLogin(),
		Name:        repo.GetName(),
		Description: repo.GetDescription(),
	}, nil
}

// ReadRepoFile fetches a file's contents from a repository. Missing files
// are reported as fs.ErrNotExist so config resolution can keep trying
// candidates.
func (c *Client) ReadRepoFile(ctx context.Context, owner, repo, path string) ([]byte, error) {
	content, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s/%s:%s: %w", owner, repo, path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("reading %s from %s/%s: %w", path, owner, repo, err)
	}
	if content == nil {
		return nil, fmt.Errorf("%s/%s:%s is not a file", owner, repo, path)
	}
	data, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding %s from %s/%s: %w", path, owner, repo, err)
	}
	return []byte(data), nil
}

// IsNotFound reports whether the error is a missing-file error from
// ReadRepoFile.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
