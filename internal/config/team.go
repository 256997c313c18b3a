package config

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/michaeljabbour/addteam/internal/roster"
)

// Keys with fixed meaning at the top level of a team config. Any other
// top-level key is treated as a role-group label.
var reservedKeys = map[string]bool{
	"default_permission": true,
	"welcome_issue":      true,
	"welcome_message":    true,
	"collaborators":      true,
	"teams":              true,
}

// ParseTeamConfig parses a team config, auto-detecting the format: YAML
// for .yaml/.yml names or mapping-shaped content, plain username list
// otherwise.
func ParseTeamConfig(name string, content []byte) (*roster.TeamConfig, error) {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return ParseTeamYAML(content)
	}
	trimmed := strings.TrimSpace(string(content))
	if first, _, _ := strings.Cut(trimmed, "\n"); strings.Contains(first, ":") {
		return ParseTeamYAML(content)
	}
	return ParseUsernames(content), nil
}

// ParseUsernames parses the plain-text format: one username per line,
// blank lines and # comments ignored, leading @ stripped, duplicates
// dropped. Every user gets the default permission.
func ParseUsernames(content []byte) *roster.TeamConfig {
	cfg := &roster.TeamConfig{DefaultPermission: roster.PermissionPush}
	seen := make(map[string]bool)
	for _, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "@")
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		cfg.Explicit = append(cfg.Explicit, roster.Member{Login: line})
	}
	return cfg
}

// ParseTeamYAML parses the YAML team config. Document order of role
// groups, explicit entries, and team bindings is preserved because merge
// precedence follows it.
func ParseTeamYAML(content []byte) (*roster.TeamConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, roster.NewConfigError("invalid YAML: %v", err)
	}

	cfg := &roster.TeamConfig{DefaultPermission: roster.PermissionPush}
	if len(doc.Content) == 0 {
		return cfg, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, roster.NewConfigError("team config must be a YAML mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		val := root.Content[i+1]
		switch key {
		case "default_permission":
			cfg.DefaultPermission = roster.Permission(strings.ToLower(strings.TrimSpace(val.Value)))
		case "welcome_issue":
			if err := val.Decode(&cfg.WelcomeIssue); err != nil {
				return nil, roster.NewConfigError("welcome_issue must be a boolean: %v", err)
			}
		case "welcome_message":
			cfg.WelcomeMessage = val.Value
		case "collaborators":
			members, err := parseMembers(val)
			if err != nil {
				return nil, err
			}
			cfg.Explicit = append(cfg.Explicit, members...)
		case "teams":
			teams, err := parseTeams(val)
			if err != nil {
				return nil, err
			}
			cfg.Teams = append(cfg.Teams, teams...)
		default:
			group, err := parseRoleGroup(key, val)
			if err != nil {
				return nil, err
			}
			cfg.Groups = append(cfg.Groups, group)
		}
	}

	if !cfg.DefaultPermission.Valid() {
		return nil, roster.NewConfigError("invalid default_permission %q (must be one of pull, triage, push, maintain, admin)", cfg.DefaultPermission)
	}
	return cfg, nil
}

// parseRoleGroup handles both group shapes: a plain member list, or a
// mapping with a permission override and a users list.
func parseRoleGroup(label string, node *yaml.Node) (roster.RoleGroup, error) {
	group := roster.RoleGroup{Label: label}
	switch node.Kind {
	case yaml.SequenceNode:
		members, err := parseMembers(node)
		if err != nil {
			return group, err
		}
		group.Members = members
	case yaml.MappingNode:
		var override roster.Permission
		var users *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			switch node.Content[i].Value {
			case "permission":
				override = roster.Permission(strings.ToLower(strings.TrimSpace(node.Content[i+1].Value)))
			case "users":
				users = node.Content[i+1]
			}
		}
		if users == nil {
			return group, roster.NewConfigError("group %q has no users list", label)
		}
		members, err := parseMembers(users)
		if err != nil {
			return group, err
		}
		for i := range members {
			if members[i].Permission == "" {
				members[i].Permission = override
			}
		}
		group.Members = members
	default:
		return group, roster.NewConfigError("group %q must be a list of users", label)
	}
	return group, nil
}

// parseMembers parses a member list whose items are either bare usernames
// or mappings with username/permission/expires.
func parseMembers(node *yaml.Node) ([]roster.Member, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, roster.NewConfigError("expected a list of users")
	}
	var members []roster.Member
	for _, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			members = append(members, roster.Member{Login: item.Value})
		case yaml.MappingNode:
			m, err := parseMemberMapping(item)
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		default:
			return nil, roster.NewConfigError("user entries must be strings or mappings")
		}
	}
	return members, nil
}

func parseMemberMapping(node *yaml.Node) (roster.Member, error) {
	var m roster.Member
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1].Value
		switch key {
		case "username", "user", "name":
			m.Login = val
		case "permission":
			m.Permission = roster.Permission(strings.ToLower(strings.TrimSpace(val)))
		case "expires":
			expires, err := ParseDate(val)
			if err != nil {
				return m, err
			}
			m.Expires = &expires
		}
	}
	if m.Login == "" {
		return m, roster.NewConfigError("user entry is missing a username")
	}
	return m, nil
}

// parseTeams parses the teams list: "org/slug" strings or single-pair
// mappings of "org/slug" to a permission.
func parseTeams(node *yaml.Node) ([]roster.TeamBinding, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, roster.NewConfigError("teams must be a list")
	}
	var teams []roster.TeamBinding
	for _, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			b, err := parseTeamName(item.Value)
			if err != nil {
				return nil, err
			}
			teams = append(teams, b)
		case yaml.MappingNode:
			for i := 0; i+1 < len(item.Content); i += 2 {
				b, err := parseTeamName(item.Content[i].Value)
				if err != nil {
					return nil, err
				}
				b.Permission = roster.Permission(strings.ToLower(strings.TrimSpace(item.Content[i+1].Value)))
				teams = append(teams, b)
			}
		default:
			return nil, roster.NewConfigError("team entries must be strings or mappings")
		}
	}
	return teams, nil
}

func parseTeamName(name string) (roster.TeamBinding, error) {
	org, slug, ok := strings.Cut(strings.TrimSpace(name), "/")
	if !ok || org == "" || slug == "" {
		return roster.TeamBinding{}, roster.NewConfigError("team %q must be in org/team-slug form", name)
	}
	return roster.TeamBinding{Org: org, Slug: slug}, nil
}

// ParseDate parses an ISO calendar date (2006-01-02). Anything else is a
// config error: dates are never silently repaired.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, roster.NewConfigError("cannot parse date %q (expected YYYY-MM-DD)", value)
	}
	return t, nil
}
