package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v66/github"

	"github.com/michaeljabbour/addteam/internal/roster"
)

// TeamMembers fetches the logins of an org team's members.
func (c *Client) TeamMembers(ctx context.Context, org, slug string) ([]string, error) {
	var logins []string
	opts := &gh.TeamListTeamMembersOptions{ListOptions: gh.ListOptions{PerPage: 100}}
	for {
		members, resp, err := c.gh.Teams.ListTeamMembersBySlug(ctx, org, slug, opts)
		if err != nil {
			return nil, fmt.Errorf("fetching members of team %s/%s: %w", org, slug, err)
		}
		for _, m := range members {
			if m.GetLogin() != "" {
				logins = append(logins, m.GetLogin())
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return logins, nil
}

// ResolveTeams fetches memberships for every team binding in the config,
// keyed by the binding's org/slug name. A team that cannot be fetched is
// skipped with a warning from the caller's perspective: the returned map
// simply lacks the key, matching the behavior of granting nothing.
func (c *Client) ResolveTeams(ctx context.Context, teams []roster.TeamBinding) (map[string][]string, []error) {
	members := make(map[string][]string, len(teams))
	var warnings []error
	for _, b := range teams {
		logins, err := c.TeamMembers(ctx, b.Org, b.Slug)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		members[b.Name()] = logins
	}
	return members, warnings
}
