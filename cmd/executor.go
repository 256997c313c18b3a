package cmd

import (
	"context"
	"fmt"

	"github.com/michaeljabbour/addteam/internal/audit"
	"github.com/michaeljabbour/addteam/internal/github"
	"github.com/michaeljabbour/addteam/internal/render"
	"github.com/michaeljabbour/addteam/internal/roster"
	"github.com/michaeljabbour/addteam/internal/welcome"
)

// executor runs an action plan against GitHub, printing one result line
// per action and tallying outcomes for the summary.
type executor struct {
	ctx     context.Context
	client  *github.Client
	repo    *github.RepoInfo
	cfg     *roster.TeamConfig
	summary string
	dryRun  bool
	quiet   bool

	invited  int
	updated  int
	removed  int
	skipped  int
	failed   int
	welcomed int
	planned  int
}

func (e *executor) print(kind render.ResultKind, login, detail string) {
	if !e.quiet {
		fmt.Println(render.ResultLine(kind, login, detail))
	}
}

func (e *executor) skip(login, detail string) {
	e.skipped++
	e.print(render.ResultSkip, login, detail)
}

func (e *executor) invites(list []audit.Invite) {
	for _, inv := range list {
		detail := fmt.Sprintf("invite [%s]", inv.Permission)
		if inv.Source.Name != "" {
			detail += " (" + inv.Source.String() + ")"
		}
		if e.dryRun {
			e.planned++
			e.print(render.ResultWould, inv.Login, "would "+detail)
			continue
		}
		if err := e.client.Invite(e.ctx, e.repo.Owner, e.repo.Name, inv.Login, inv.Permission); err != nil {
			e.failed++
			e.print(render.ResultFail, inv.Login, truncate(err.Error(), 40))
			continue
		}
		e.invited++
		e.print(render.ResultOK, inv.Login, "invited ["+string(inv.Permission)+"]")

		if e.cfg.WelcomeIssue {
			summary := e.cfg.WelcomeMessage
			if summary == "" {
				summary = e.summary
			}
			url, err := e.client.CreateIssue(e.ctx, e.repo.Owner, e.repo.Name,
				welcome.IssueTitle(inv.Login),
				welcome.IssueBody(e.repo.FullName(), inv.Login, inv.Permission, summary),
				inv.Login)
			if err == nil && url != "" {
				e.welcomed++
			}
		}
	}
}

func (e *executor) updates(list []audit.PermissionUpdate) {
	for _, u := range list {
		if e.dryRun {
			e.planned++
			e.print(render.ResultWould, u.Login, fmt.Sprintf("would set permission [%s]", u.Permission))
			continue
		}
		if err := e.client.SetPermission(e.ctx, e.repo.Owner, e.repo.Name, u.Login, u.Permission); err != nil {
			e.failed++
			e.print(render.ResultFail, u.Login, truncate(err.Error(), 40))
			continue
		}
		e.updated++
		e.print(render.ResultOK, u.Login, "permission set ["+string(u.Permission)+"]")
	}
}

func (e *executor) removals(list []string) {
	for _, login := range list {
		if e.dryRun {
			e.planned++
			e.print(render.ResultWould, login, "would remove")
			continue
		}
		if err := e.client.Remove(e.ctx, e.repo.Owner, e.repo.Name, login); err != nil {
			e.failed++
			e.print(render.ResultFail, login, "remove failed")
			continue
		}
		e.removed++
		e.print(render.ResultOK, login, "removed")
	}
}

func (e *executor) summaryParts() []string {
	var parts []string
	if e.planned > 0 {
		parts = append(parts, render.CountWouldAct(e.planned))
	}
	if e.invited > 0 {
		parts = append(parts, render.CountInvited(e.invited))
	}
	if e.updated > 0 {
		parts = append(parts, render.CountUpdated(e.updated))
	}
	if e.removed > 0 {
		parts = append(parts, render.CountRemoved(e.removed))
	}
	if e.skipped > 0 {
		parts = append(parts, render.CountSkipped(e.skipped))
	}
	if e.failed > 0 {
		parts = append(parts, render.CountFailed(e.failed))
	}
	if e.welcomed > 0 {
		parts = append(parts, render.CountWelcomed(e.welcomed))
	}
	return parts
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
