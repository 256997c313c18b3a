package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v66/github"

	"github.com/michaeljabbour/addteam/internal/roster"
)

// normalizePermission maps GitHub role names onto the five permission
// levels the core works with.
func normalizePermission(roleName string) roster.Permission {
	switch roleName {
	case "read":
		return roster.PermissionPull
	case "write":
		return roster.PermissionPush
	default:
		return roster.Permission(roleName)
	}
}

// Collaborators fetches the actual state: direct collaborators (accepted)
// and open invitations (pending). Both categories are always included so
// the audit engine can tell already-invited from missing.
func (c *Client) Collaborators(ctx context.Context, owner, repo string) ([]roster.Collaborator, error) {
	var out []roster.Collaborator

	opts := &gh.ListCollaboratorsOptions{
		Affiliation: "direct",
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	for {
		users, resp, err := c.gh.Repositories.ListCollaborators(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("fetching collaborators for %s/%s: %w", owner, repo, err)
		}
		for _, u := range users {
			if u.GetLogin() == "" {
				continue
			}
			out = append(out, roster.Collaborator{
				Login:      u.GetLogin(),
				Permission: normalizePermission(u.GetRoleName()),
				Status:     roster.StatusAccepted,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	invOpts := &gh.ListOptions{PerPage: 100}
	for {
		invitations, resp, err := c.gh.Repositories.ListInvitations(ctx, owner, repo, invOpts)
		if err != nil {
			return nil, fmt.Errorf("fetching invitations for %s/%s: %w", owner, repo, err)
		}
		for _, inv := range invitations {
			login := inv.GetInvitee().GetLogin()
			if login == "" {
				continue
			}
			out = append(out, roster.Collaborator{
				Login:      login,
				Permission: normalizePermission(inv.GetPermissions()),
				Status:     roster.StatusPending,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		invOpts.Page = resp.NextPage
	}

	return out, nil
}

// Invite adds a collaborator (or updates their permission; the underlying
// PUT is idempotent either way).
func (c *Client) Invite(ctx context.Context, owner, repo, login string, permission roster.Permission) error {
	opts := &gh.RepositoryAddCollaboratorOptions{Permission: string(permission)}
	if _, _, err := c.gh.Repositories.AddCollaborator(ctx, owner, repo, login, opts); err != nil {
		return fmt.Errorf("inviting %s to %s/%s: %w", login, owner, repo, err)
	}
	return nil
}

// SetPermission changes an existing collaborator's permission level.
func (c *Client) SetPermission(ctx context.Context, owner, repo, login string, permission roster.Permission) error {
	opts := &gh.RepositoryAddCollaboratorOptions{Permission: string(permission)}
	if _, _, err := c.gh.Repositories.AddCollaborator(ctx, owner, repo, login, opts); err != nil {
		return fmt.Errorf("updating permission for %s on %s/%s: %w", login, owner, repo, err)
	}
	return nil
}

// Remove revokes a collaborator's access.
func (c *Client) Remove(ctx context.Context, owner, repo, login string) error {
	if _, err := c.gh.Repositories.RemoveCollaborator(ctx, owner, repo, login); err != nil {
		return fmt.Errorf("removing %s from %s/%s: %w", login, owner, repo, err)
	}
	return nil
}
