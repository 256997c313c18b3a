package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/michaeljabbour/addteam/internal/audit"
	"github.com/michaeljabbour/addteam/internal/github"
	"github.com/michaeljabbour/addteam/internal/history"
	"github.com/michaeljabbour/addteam/internal/render"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show drift between the team config and actual collaborators",
	Long: `Compares the desired roster from the team config with the repo's
actual collaborators and pending invitations, and reports missing users,
unlisted users, permission drift, and expired access. Makes no changes.
Exits 2 when drift is found.`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	if !quiet {
		fmt.Print(render.Header(Version, repo.Name, repo.Owner, me, "audit"))
		fmt.Println()
	}

	cfg, err := loadTeamConfig(ctx, settings, client, repo, "", "")
	if err != nil {
		return err
	}
	ros, err := buildRoster(ctx, client, cfg, time.Now())
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Print(render.ConfigInfo(cfg.Source, string(cfg.DefaultPermission), false, false, len(ros.Entries)))
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

	fmt.Print(render.Drift(drift))

	recordRun(settings, history.Record{
		Repo:              repo.FullName(),
		Mode:              "audit",
		Missing:           len(drift.Missing),
		Extra:             len(drift.Extra),
		PermissionChanges: len(drift.PermissionChanges),
		Expired:           len(drift.Expired),
	})

	if !drift.Empty() {
		if !quiet {
			fmt.Println()
			fmt.Println("  " + render.Dim("run `addteam apply` to close the gap"))
			fmt.Println()
		}
		return ErrDriftFound
	}
	fmt.Println()
	return nil
}
