package llm

import (
	"context"
	"fmt"
	"strings"
)

// SummaryInput carries what the prompt needs to describe a repository.
type SummaryInput struct {
	RepoFullName string
	Description  string
	FirstUseCmd  string
}

// BuildSummaryPrompt renders the repo-summary prompt.
func BuildSummaryPrompt(in SummaryInput) string {
	description := in.Description
	if description == "" {
		description = "(none)"
	}
	return strings.Join([]string{
		"In 2-3 short sentences, describe this GitHub repository for a collaborator.",
		"",
		"Repo: " + in.RepoFullName,
		"Existing description: " + description,
		"",
		"Include:",
		"- what it does",
		"- the fastest path to first use of the tool",
		"",
		"Requirements:",
		"- Include this exact command in the answer: " + in.FirstUseCmd,
		"- Put the command on its own line and do not add line breaks inside it.",
		"- Mention that a GitHub token must be configured.",
		"- Keep it crisp and practical (no generic advice like 'clone the repo').",
	}, "\n")
}

// GenerateSummary asks each provider in turn for a repo summary and
// returns the first success.
func GenerateSummary(ctx context.Context, providers []Provider, in SummaryInput) (string, error) {
	if len(providers) == 0 {
		return "", fmt.Errorf("no AI provider available")
	}
	prompt := BuildSummaryPrompt(in)
	var lastErr error
	for _, p := range providers {
		content, err := p.Complete(ctx, prompt, 200)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", p.Name(), err)
			continue
		}
		if s := strings.TrimSpace(content); s != "" {
			return s, nil
		}
		lastErr = fmt.Errorf("%s: empty response", p.Name())
	}
	return "", lastErr
}
