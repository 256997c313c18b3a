package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/michaeljabbour/addteam/internal/audit"
	"github.com/michaeljabbour/addteam/internal/config"
	"github.com/michaeljabbour/addteam/internal/github"
	"github.com/michaeljabbour/addteam/internal/history"
	"github.com/michaeljabbour/addteam/internal/llm"
	"github.com/michaeljabbour/addteam/internal/render"
	"github.com/michaeljabbour/addteam/internal/roster"
	"github.com/michaeljabbour/addteam/internal/welcome"
)

var (
	applySync        bool
	applyDryRun      bool
	applyUser        string
	applyPermission  string
	applyWelcome     bool
	applyNoAI        bool
	applyProvider    string
	applyWriteReadme bool
	applyYes         bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Invite missing collaborators and fix permission drift",
	Long: `Builds the desired roster from the team config, diffs it against the
repo's actual collaborators, and executes the plan: invites missing
users and updates drifted permissions. With --sync it also removes
collaborators that are unlisted or expired.`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVarP(&applySync, "sync", "s", false, "remove collaborators not in the config")
	applyCmd.Flags().BoolVarP(&applyDryRun, "dry-run", "n", false, "preview without making changes")
	applyCmd.Flags().StringVarP(&applyUser, "user", "u", "", "invite a single GitHub user instead of using a config")
	applyCmd.Flags().StringVarP(&applyPermission, "permission", "p", "push", "permission level for --user")
	applyCmd.Flags().BoolVarP(&applyWelcome, "welcome", "w", false, "create welcome issues for new collaborators")
	applyCmd.Flags().BoolVar(&applyNoAI, "no-ai", false, "skip AI-generated summary")
	applyCmd.Flags().StringVar(&applyProvider, "provider", "", "AI provider: auto, openai, anthropic")
	applyCmd.Flags().BoolVar(&applyWriteReadme, "write-readme", false, "write the AI summary to README.md")
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "do not ask for confirmation before removals")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if applyUser != "" && applySync {
		return fmt.Errorf("--sync cannot be used with --user")
	}
	permission := roster.Permission(applyPermission)
	if applyUser != "" && !permission.Valid() {
		return fmt.Errorf("invalid permission %q: must be one of pull, triage, push, maintain, admin", applyPermission)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client, err := github.NewClientFromEnv()
	if err != nil {
		return err
	}
	repo, err := resolveRepo(ctx, client)
	if err != nil {
		return err
	}
	me, err := client.CurrentUser(ctx)
	if err != nil {
		return err
	}

	modeLabel := ""
	if applyDryRun {
		modeLabel = "dry-run"
	}
	if !quiet {
		fmt.Print(render.Header(Version, repo.Name, repo.Owner, me, modeLabel))
		fmt.Println()
	}

	cfg, err := loadTeamConfig(ctx, settings, client, repo, applyUser, permission)
	if err != nil {
		return err
	}
	if applyWelcome || settings.WelcomeIssue {
		cfg.WelcomeIssue = true
	}

	if memberCount(cfg) == 0 && len(cfg.Teams) == 0 {
		if !quiet {
			fmt.Println("  " + render.Dim("no collaborators found"))
		}
		if applySync {
			return fmt.Errorf("cannot sync with an empty collaborator list")
		}
		return nil
	}

	ros, err := buildRoster(ctx, client, cfg, time.Now())
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Print(render.ConfigInfo(cfg.Source, string(cfg.DefaultPermission), applySync, cfg.WelcomeIssue, len(ros.Entries)))
		fmt.Println()
	}

	actual, err := client.Collaborators(ctx, repo.Owner, repo.Name)
	if err != nil {
		return fmt.Errorf("could not obtain actual state: %w", err)
	}

	drift, err := audit.Run(ros, actual, repo.Owner, me)
	if err != nil {
		return err
	}

	mode := audit.ModeApply
	if applySync {
		mode = audit.ModeApplySync
	}
	plan := audit.Plan(drift, mode)

	// Generate the AI summary upfront when welcome issues will need it.
	var aiSummary string
	if cfg.WelcomeIssue && !applyNoAI && !settings.NoAI && !applyDryRun && len(plan.Invites) > 0 {
		aiSummary = generateSummary(ctx, settings, repo)
	}

	exec := executor{
		ctx:     ctx,
		client:  client,
		repo:    repo,
		cfg:     cfg,
		summary: aiSummary,
		dryRun:  applyDryRun,
		quiet:   quiet,
	}

	for _, e := range ros.Expired {
		exec.skip(e.Login, fmt.Sprintf("expired %s", e.Expires.Format("2006-01-02")))
	}
	exec.invites(plan.Invites)
	exec.updates(plan.PermissionUpdates)

	if len(plan.Removals) > 0 {
		if confirmRemovals(len(plan.Removals)) {
			exec.removals(plan.Removals)
		} else if !quiet {
			fmt.Println("  " + render.Warn("skipping removals"))
		}
	}

	if !quiet {
		fmt.Println()
		fmt.Print(render.Separator())
		fmt.Print(render.SummaryLine(exec.summaryParts()))
		fmt.Println()
	}

	if !applyDryRun {
		recordRun(settings, history.Record{
			Repo:              repo.FullName(),
			Mode:              string(mode),
			Missing:           len(drift.Missing),
			Extra:             len(drift.Extra),
			PermissionChanges: len(drift.PermissionChanges),
			Expired:           len(drift.Expired),
			Invited:           exec.invited,
			Removed:           exec.removed,
			Updated:           exec.updated,
		})
	}

	if !applyNoAI && !settings.NoAI {
		printSummary(ctx, settings, repo, aiSummary)
	}

	if exec.failed > 0 {
		return fmt.Errorf("%d action(s) failed", exec.failed)
	}
	return nil
}

// confirmRemovals asks before revoking access, unless --yes was given.
func confirmRemovals(count int) bool {
	if applyYes || applyDryRun {
		return true
	}
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Remove %d collaborator(s)", count),
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

// generateSummary produces the AI repo summary, returning "" on any
// failure: summaries are decoration, never a reason to fail a run.
func generateSummary(ctx context.Context, settings *config.Settings, repo *github.RepoInfo) string {
	providers, err := summaryProviders(settings, applyProvider)
	if err != nil || len(providers) == 0 {
		return ""
	}
	cmd, _ := firstUseCmd(repo)
	summary, err := llm.GenerateSummary(ctx, providers, llm.SummaryInput{
		RepoFullName: repo.FullName(),
		Description:  repo.Description,
		FirstUseCmd:  cmd,
	})
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "summary generation failed: %v\n", err)
		}
		return ""
	}
	return summary
}

// printSummary renders the quick-start block plus the AI summary, and
// optionally persists it to the README.
func printSummary(ctx context.Context, settings *config.Settings, repo *github.RepoInfo, cached string) {
	summary := cached
	if summary == "" {
		summary = generateSummary(ctx, settings, repo)
	}
	if summary == "" {
		return
	}

	cmd, note := firstUseCmd(repo)
	out := fmt.Sprintf("Quick start:\n  %s\n  %s\n  Prereqs: a GitHub token in GITHUB_TOKEN.\n\n%s", cmd, note, summary)

	if !quiet {
		fmt.Println()
		fmt.Println(render.Bold("repo summary"))
		fmt.Println(out)
	}

	if applyWriteReadme {
		if err := welcome.WriteReadmeSummary("README.md", out); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else if !quiet {
			fmt.Println("  " + render.Dim("wrote summary to README.md"))
		}
	}
}
