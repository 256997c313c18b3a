package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/michaeljabbour/addteam/internal/config"
	"github.com/michaeljabbour/addteam/internal/github"
	"github.com/michaeljabbour/addteam/internal/history"
	"github.com/michaeljabbour/addteam/internal/llm"
	"github.com/michaeljabbour/addteam/internal/roster"
)

// loadSettings loads and validates the tool settings.
func loadSettings() (*config.Settings, error) {
	s, err := config.LoadSettings(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// resolveRepo determines the target repo from --repo or the origin remote
// and fetches its metadata.
func resolveRepo(ctx context.Context, client *github.Client) (*github.RepoInfo, error) {
	var owner, name string
	if repoFlag != "" {
		if !config.IsRepoSpec(repoFlag) {
			return nil, fmt.Errorf("invalid repo %q: must be owner/repo", repoFlag)
		}
		owner, name, _ = strings.Cut(strings.TrimSpace(repoFlag), "/")
	} else {
		var err error
		owner, name, err = gitOriginRepo()
		if err != nil {
			return nil, err
		}
	}
	return client.Repo(ctx, owner, name)
}

// gitOriginRepo derives owner/repo from the origin remote of the
// enclosing git checkout.
func gitOriginRepo() (string, string, error) {
	out, err := exec.Command("git", "remote", "get-url", "origin").Output()
	if err != nil {
		return "", "", fmt.Errorf("cannot determine target repo (not in a git checkout?): use --repo owner/repo")
	}
	url := strings.TrimSuffix(strings.TrimSpace(string(out)), ".git")
	if i := strings.Index(url, "github.com"); i >= 0 {
		rest := strings.TrimLeft(url[i+len("github.com"):], ":/")
		parts := strings.SplitN(rest, "/", 3)
		if len(parts) >= 2 && parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1], nil
		}
	}
	return "", "", fmt.Errorf("cannot parse origin remote %q: use --repo owner/repo", url)
}

// loadTeamConfig resolves the team config for the target repo, honoring
// the --user single-invite override.
func loadTeamConfig(ctx context.Context, settings *config.Settings, client *github.Client, repo *github.RepoInfo, singleUser string, singlePermission roster.Permission) (*roster.TeamConfig, error) {
	if singleUser != "" {
		login := strings.TrimSpace(strings.TrimPrefix(singleUser, "@"))
		if login == "" {
			return nil, roster.NewConfigError("empty username for --user")
		}
		return &roster.TeamConfig{
			DefaultPermission: singlePermission,
			Explicit:          []roster.Member{{Login: login, Permission: singlePermission}},
			Source:            "--user " + login,
		}, nil
	}

	spec := teamFile
	if spec == "" {
		spec = settings.File
	}
	cfg, err := config.ResolveTeamConfig(ctx, spec, repo.Owner, repo.Name, settings.FallbackRepo, client)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRoster resolves team memberships and builds the desired roster.
// Team fetch failures degrade to warnings: an unreachable team grants
// nothing, same as the empty-membership case.
func buildRoster(ctx context.Context, client *github.Client, cfg *roster.TeamConfig, now time.Time) (*roster.Roster, error) {
	var members map[string][]string
	if len(cfg.Teams) > 0 {
		var warnings []error
		members, warnings = client.ResolveTeams(ctx, cfg.Teams)
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", w)
		}
	}
	return roster.Build(cfg, members, now)
}

// memberCount is the number of users the config names directly (teams
// not yet resolved).
func memberCount(cfg *roster.TeamConfig) int {
	n := len(cfg.Explicit)
	for _, g := range cfg.Groups {
		n += len(g.Members)
	}
	return n
}

// summaryProviders picks the AI providers to try, honoring the provider
// flag and falling back to credential detection in auto mode.
func summaryProviders(settings *config.Settings, providerFlag string) ([]llm.Provider, error) {
	choice := providerFlag
	if choice == "" {
		choice = string(settings.Provider)
	}
	if choice == "" || choice == string(config.ProviderAuto) {
		return llm.Detect(), nil
	}
	p, err := llm.NewProvider(choice)
	if err != nil {
		return nil, err
	}
	return []llm.Provider{p}, nil
}

// firstUseCmd is the quick-start command embedded in AI summaries.
func firstUseCmd(repo *github.RepoInfo) (cmd, note string) {
	if repoFlag != "" {
		return "addteam apply --repo " + repo.FullName(), "Run from any directory."
	}
	return "addteam apply", "Run inside the repo you want to manage."
}

// recordRun appends a run record to the history database; failures only
// warn, they never fail the run.
func recordRun(settings *config.Settings, rec history.Record) {
	path := settings.HistoryPath
	if path == "" {
		var err error
		path, err = history.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return
		}
	}
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history: %v\n", err)
		return
	}
	defer store.Close()
	if err := store.Append(rec); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", err)
	}
}
