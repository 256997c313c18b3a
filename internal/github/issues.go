package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v66/github"
)

// CreateIssue opens an issue assigned to the given user and returns its
// URL.
func (c *Client) CreateIssue(ctx context.Context, owner, repo, title, body, assignee string) (string, error) {
	req := &gh.IssueRequest{
		Title:    gh.String(title),
		Body:     gh.String(body),
		Assignee: gh.String(assignee),
	}
	issue, _, err := c.gh.Issues.Create(ctx, owner, repo, req)
	if err != nil {
		return "", fmt.Errorf("creating issue for %s in %s/%s: %w", assignee, owner, repo, err)
	}
	return issue.GetHTMLURL(), nil
}
