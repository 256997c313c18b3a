package roster

import "time"

// SourceKind identifies where a desired-roster entry came from.
type SourceKind string

const (
	SourceGroup    SourceKind = "group"
	SourceExplicit SourceKind = "explicit"
	SourceTeam     SourceKind = "team"
)

// Source records the config construct that produced an entry: the role
// group label, the team name, or nothing for explicit entries.
type Source struct {
	Kind SourceKind
	Name string
}

func (s Source) String() string {
	switch s.Kind {
	case SourceGroup, SourceTeam:
		return string(s.Kind) + ":" + s.Name
	default:
		return string(s.Kind)
	}
}

// Member is one username in the team config, with optional per-entry
// permission override and expiry date.
type Member struct {
	Login      string
	Permission Permission // empty means "use the group/default resolution"
	Expires    *time.Time
}

// RoleGroup is a labelled bucket of members whose permission is inferred
// from the label.
type RoleGroup struct {
	Label   string
	Members []Member
}

// TeamBinding grants access to every member of a GitHub team. Membership
// is resolved externally and passed to Build.
type TeamBinding struct {
	Org        string
	Slug       string
	Permission Permission // empty means "resolve from slug, then default"
}

// Name returns the org/slug form used in config files and display.
func (b TeamBinding) Name() string {
	return b.Org + "/" + b.Slug
}

// TeamConfig is the parsed team configuration. Groups, Explicit, and Teams
// preserve document order: later sources override earlier ones when they
// name the same user.
type TeamConfig struct {
	DefaultPermission Permission
	WelcomeIssue      bool
	WelcomeMessage    string
	Groups            []RoleGroup
	Explicit          []Member
	Teams             []TeamBinding
	Source            string // where the config was found, for display
}

// Status distinguishes accepted collaborators from pending invitees.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusPending  Status = "pending"
)

// Collaborator is one row of the observed actual state. Supplied by the
// fetcher with the permission already normalized to the five levels.
type Collaborator struct {
	Login      string
	Permission Permission
	Status     Status
}
