// Package welcome builds the onboarding content addteam leaves behind:
// welcome issues for new collaborators and the auto-summary block in the
// README.
package welcome

import (
	"fmt"
	"os"
	"strings"

	"github.com/michaeljabbour/addteam/internal/roster"
)

// IssueTitle returns the welcome issue title for a user.
func IssueTitle(login string) string {
	return fmt.Sprintf("Welcome @%s!", login)
}

// IssueBody renders the welcome issue body. The summary is either the
// configured welcome message or an AI-generated repo summary; empty skips
// the section.
func IssueBody(repoFullName, login string, permission roster.Permission, summary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hey @%s, welcome to **%s**! 🎉\n\n", login, repoFullName)
	fmt.Fprintf(&b, "You've been added as a collaborator with **%s** permission.\n\n", permission)
	if summary != "" {
		b.WriteString("## About this repo\n\n")
		b.WriteString(strings.TrimSpace(summary))
		b.WriteString("\n\n")
	}
	b.WriteString("## Getting started\n\n")
	fmt.Fprintf(&b, "1. Clone the repo: `gh repo clone %s`\n", repoFullName)
	b.WriteString("2. Check out the README for setup instructions\n")
	b.WriteString("3. Feel free to close this issue once you're onboarded!\n\n")
	b.WriteString("---\n")
	b.WriteString("*This issue was auto-generated by [addteam](https://github.com/michaeljabbour/addteam)*")
	return b.String()
}

const (
	summaryBegin = "<!-- BEGIN AUTO SUMMARY -->"
	summaryEnd   = "<!-- END AUTO SUMMARY -->"
)

// WriteReadmeSummary inserts or replaces the auto-summary block in the
// README at the given path, creating the file if needed.
func WriteReadmeSummary(path, summary string) error {
	existing := ""
	if data, err := os.ReadFile(path); err == nil {
		existing = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	block := summaryBegin + "\n\n" + strings.TrimSpace(summary) + "\n\n" + summaryEnd + "\n"

	var updated string
	if strings.Contains(existing, summaryBegin) && strings.Contains(existing, summaryEnd) {
		before, _, _ := strings.Cut(existing, summaryBegin)
		_, after, _ := strings.Cut(existing, summaryEnd)
		updated = before + block + strings.TrimLeft(after, "\n")
	} else if strings.TrimSpace(existing) != "" {
		updated = strings.TrimRight(existing, "\n") + "\n\n" + block
	} else {
		updated = block
	}

	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
