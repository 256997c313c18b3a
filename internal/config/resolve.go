package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/michaeljabbour/addteam/internal/roster"
)

// RepoFileReader fetches a file from a GitHub repository. Implementations
// must wrap fs.ErrNotExist for missing files so the resolution chain can
// keep trying candidates.
type RepoFileReader interface {
	ReadRepoFile(ctx context.Context, owner, repo, path string) ([]byte, error)
}

// defaultCandidates are the filenames tried when no explicit config spec
// is given, in priority order.
var defaultCandidates = []string{
	"team.yaml",
	"team.yml",
	"collaborators.yaml",
	"collaborators.yml",
	"collaborators.txt",
}

// ResolveTeamConfig locates and parses the team config for the target
// repo. The spec may carry a local: or repo: prefix to pin the source;
// otherwise the chain is: local files (working directory, then git root),
// the target repo, then the fallback repo. The returned config's Source
// describes where it was found.
func ResolveTeamConfig(ctx context.Context, spec, owner, repo, fallbackRepo string, reader RepoFileReader) (*roster.TeamConfig, error) {
	target := owner + "/" + repo

	if path, ok := strings.CutPrefix(spec, "repo:"); ok {
		path = strings.TrimLeft(path, "/")
		if path == "" {
			return nil, roster.NewConfigError("repo: path is empty")
		}
		return readRepoConfig(ctx, reader, owner, repo, path, target+":"+path)
	}

	if path, ok := strings.CutPrefix(spec, "local:"); ok {
		if path == "" {
			return nil, roster.NewConfigError("local: path is empty")
		}
		resolved := resolveLocalPath(path)
		if resolved == "" {
			return nil, fmt.Errorf("local team config not found: %s", path)
		}
		return readLocalConfig(resolved)
	}

	candidates := defaultCandidates
	if spec != "" && !contains(defaultCandidates, spec) {
		candidates = append([]string{spec}, defaultCandidates...)
	}

	for _, name := range candidates {
		if resolved := resolveLocalPath(name); resolved != "" {
			return readLocalConfig(resolved)
		}
	}

	// An explicit path-looking spec should not silently fall through to
	// repo lookups.
	if looksLikeLocalPath(spec) {
		return nil, fmt.Errorf("local team config not found: %s", spec)
	}

	for _, name := range candidates {
		cfg, err := readRepoConfig(ctx, reader, owner, repo, strings.TrimLeft(name, "/"), target+":"+name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}

	if !IsRepoSpec(fallbackRepo) || fallbackRepo == target {
		return nil, fmt.Errorf("team config not found: %s", spec)
	}
	fbOwner, fbRepo, _ := strings.Cut(fallbackRepo, "/")
	for _, name := range candidates {
		cfg, err := readRepoConfig(ctx, reader, fbOwner, fbRepo, strings.TrimLeft(name, "/"), fallbackRepo+":"+name+" (fallback)")
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}

	return nil, fmt.Errorf("team config not found: %s", spec)
}

func readLocalConfig(path string) (*roster.TeamConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := ParseTeamConfig(path, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Source = "local:" + path
	return cfg, nil
}

func readRepoConfig(ctx context.Context, reader RepoFileReader, owner, repo, path, source string) (*roster.TeamConfig, error) {
	content, err := reader.ReadRepoFile(ctx, owner, repo, path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseTeamConfig(path, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	cfg.Source = source
	return cfg, nil
}

// resolveLocalPath finds an existing file for the given path, trying the
// path as given (relative to the working directory) and then relative to
// the enclosing git checkout's root. Returns "" when nothing exists.
func resolveLocalPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if filepath.IsAbs(path) {
		return ""
	}
	if root := gitRoot(); root != "" {
		candidate := filepath.Join(root, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// gitRoot returns the top-level directory of the enclosing git checkout,
// or "" when not inside one.
func gitRoot() string {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// looksLikeLocalPath reports whether the spec is clearly a filesystem
// path rather than a bare candidate filename.
func looksLikeLocalPath(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, prefix := range []string{"~", "/", "./", "../", "\\"} {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	// Windows drive letters.
	return len(value) >= 3 && value[1] == ':' && (value[2] == '/' || value[2] == '\\')
}

// IsRepoSpec reports whether the value is an owner/repo spec.
func IsRepoSpec(value string) bool {
	value = strings.TrimSpace(value)
	owner, repo, ok := strings.Cut(value, "/")
	return ok && strings.TrimSpace(owner) != "" && strings.TrimSpace(repo) != "" && !strings.Contains(repo, "/")
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
