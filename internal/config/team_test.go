package config

import (
	"errors"
	"testing"
	"time"

	"github.com/michaeljabbour/addteam/internal/roster"
)

func TestParseTeamYAMLGroups(t *testing.T) {
	content := []byte(`
default_permission: push
admins:
  - alice
developers:
  - bob
  - charlie
`)
	cfg, err := ParseTeamYAML(content)
	if err != nil {
		t.Fatalf("ParseTeamYAML failed: %v", err)
	}
	if cfg.DefaultPermission != roster.PermissionPush {
		t.Errorf("default: got %q, want push", cfg.DefaultPermission)
	}
	if len(cfg.Groups) != 2 {
		t.Fatalf("groups: got %d, want 2", len(cfg.Groups))
	}
	if cfg.Groups[0].Label != "admins" || cfg.Groups[1].Label != "developers" {
		t.Errorf("group order not preserved: %q, %q", cfg.Groups[0].Label, cfg.Groups[1].Label)
	}
	if len(cfg.Groups[1].Members) != 2 || cfg.Groups[1].Members[0].Login != "bob" {
		t.Errorf("developers members: %+v", cfg.Groups[1].Members)
	}
}

func TestParseTeamYAMLGroupWithPermission(t *testing.T) {
	content := []byte(`
designers:
  permission: triage
  users:
    - dana
    - username: drew
      permission: pull
`)
	cfg, err := ParseTeamYAML(content)
	if err != nil {
		t.Fatalf("ParseTeamYAML failed: %v", err)
	}
	if len(cfg.Groups) != 1 {
		t.Fatalf("groups: got %d, want 1", len(cfg.Groups))
	}
	members := cfg.Groups[0].Members
	if len(members) != 2 {
		t.Fatalf("members: got %d, want 2", len(members))
	}
	if members[0].Permission != roster.PermissionTriage {
		t.Errorf("dana should inherit the group permission, got %q", members[0].Permission)
	}
	if members[1].Permission != roster.PermissionPull {
		t.Errorf("drew's own permission should stick, got %q", members[1].Permission)
	}
}

func TestParseTeamYAMLCollaborators(t *testing.T) {
	content := []byte(`
collaborators:
  - plainuser
  - username: contractor
    permission: push
    expires: 2026-12-31
  - user: alt-key
  - name: third-key
`)
	cfg, err := ParseTeamYAML(content)
	if err != nil {
		t.Fatalf("ParseTeamYAML failed: %v", err)
	}
	if len(cfg.Explicit) != 4 {
		t.Fatalf("explicit: got %d, want 4", len(cfg.Explicit))
	}
	if cfg.Explicit[0].Login != "plainuser" || cfg.Explicit[0].Expires != nil {
		t.Errorf("plain entry: %+v", cfg.Explicit[0])
	}
	c := cfg.Explicit[1]
	if c.Login != "contractor" || c.Permission != roster.PermissionPush {
		t.Errorf("contractor: %+v", c)
	}
	want, _ := time.Parse(time.DateOnly, "2026-12-31")
	if c.Expires == nil || !c.Expires.Equal(want) {
		t.Errorf("contractor expires: %v", c.Expires)
	}
	if cfg.Explicit[2].Login != "alt-key" || cfg.Explicit[3].Login != "third-key" {
		t.Errorf("alternate username keys: %+v", cfg.Explicit[2:])
	}
}

func TestParseTeamYAMLTeams(t *testing.T) {
	content := []byte(`
teams:
  - my-org/backend
  - my-org/frontend: pull
`)
	cfg, err := ParseTeamYAML(content)
	if err != nil {
		t.Fatalf("ParseTeamYAML failed: %v", err)
	}
	if len(cfg.Teams) != 2 {
		t.Fatalf("teams: got %d, want 2", len(cfg.Teams))
	}
	if cfg.Teams[0].Org != "my-org" || cfg.Teams[0].Slug != "backend" || cfg.Teams[0].Permission != "" {
		t.Errorf("backend: %+v", cfg.Teams[0])
	}
	if cfg.Teams[1].Slug != "frontend" || cfg.Teams[1].Permission != roster.PermissionPull {
		t.Errorf("frontend: %+v", cfg.Teams[1])
	}
}

func TestParseTeamYAMLWelcome(t *testing.T) {
	content := []byte(`
welcome_issue: true
welcome_message: "Hi there"
collaborators:
  - alice
`)
	cfg, err := ParseTeamYAML(content)
	if err != nil {
		t.Fatalf("ParseTeamYAML failed: %v", err)
	}
	if !cfg.WelcomeIssue {
		t.Error("welcome_issue should be true")
	}
	if cfg.WelcomeMessage != "Hi there" {
		t.Errorf("welcome_message: got %q", cfg.WelcomeMessage)
	}
}

func TestParseTeamYAMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad default", "default_permission: write\ncollaborators:\n  - alice\n"},
		{"bad date", "collaborators:\n  - username: a\n    expires: 31/12/2026\n"},
		{"bad team name", "teams:\n  - just-a-slug\n"},
		{"group without users", "designers:\n  permission: pull\n"},
		{"missing username", "collaborators:\n  - permission: push\n"},
		{"not a mapping", "- alice\n- bob\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTeamYAML([]byte(tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			var cfgErr *roster.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigError, got %T: %v", err, err)
			}
		})
	}
}

func TestParseUsernames(t *testing.T) {
	content := []byte(`# team roster
alice
@bob

bob
Charlie
`)
	cfg := ParseUsernames(content)
	if len(cfg.Explicit) != 3 {
		t.Fatalf("explicit: got %d, want 3 (comments, blanks, dupes dropped)", len(cfg.Explicit))
	}
	want := []string{"alice", "bob", "Charlie"}
	for i, m := range cfg.Explicit {
		if m.Login != want[i] {
			t.Errorf("explicit[%d] = %q, want %q", i, m.Login, want[i])
		}
	}
	if cfg.DefaultPermission != roster.PermissionPush {
		t.Errorf("default: got %q, want push", cfg.DefaultPermission)
	}
}

func TestParseTeamConfigFormatDetection(t *testing.T) {
	yamlContent := []byte("collaborators:\n  - alice\n")
	txtContent := []byte("alice\nbob\n")

	cfg, err := ParseTeamConfig("team.yaml", yamlContent)
	if err != nil {
		t.Fatalf("yaml by extension: %v", err)
	}
	if len(cfg.Explicit) != 1 {
		t.Errorf("yaml parse: %+v", cfg.Explicit)
	}

	cfg, err = ParseTeamConfig("collaborators.txt", txtContent)
	if err != nil {
		t.Fatalf("txt by extension: %v", err)
	}
	if len(cfg.Explicit) != 2 {
		t.Errorf("txt parse: %+v", cfg.Explicit)
	}

	// No extension: content sniffing on the first line.
	cfg, err = ParseTeamConfig("roster", yamlContent)
	if err != nil {
		t.Fatalf("yaml by sniff: %v", err)
	}
	if len(cfg.Explicit) != 1 {
		t.Errorf("sniffed yaml parse: %+v", cfg.Explicit)
	}
	cfg, err = ParseTeamConfig("roster", txtContent)
	if err != nil {
		t.Fatalf("txt by sniff: %v", err)
	}
	if len(cfg.Explicit) != 2 {
		t.Errorf("sniffed txt parse: %+v", cfg.Explicit)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2026-12-31 ")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.December || d.Day() != 31 {
		t.Errorf("got %v", d)
	}
	for _, bad := range []string{"31/12/2026", "2026-12-31T00:00:00Z", "tomorrow", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}
