package roster

import (
	"sort"
	"strings"
	"time"
)

// Entry is one user in the desired roster. Login keeps the casing from the
// config for display; map keys are always lower-cased.
type Entry struct {
	Login      string
	Permission Permission
	Expires    *time.Time
	Source     Source
}

// Roster is the desired access state derived from a TeamConfig. Entries
// holds the live roster keyed by lower-cased login. Expired holds the
// entries that were dropped because their expiry date has passed; the
// audit engine needs them to flag lingering access.
type Roster struct {
	Entries map[string]Entry
	Expired []Entry
}

// Logins returns the live roster's lower-cased keys in sorted order.
func (r *Roster) Logins() []string {
	keys := make([]string, 0, len(r.Entries))
	for k := range r.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Build derives the desired roster from a parsed config plus externally
// resolved team memberships (team name -> logins). Sources are folded in
// config order: role groups first, then explicit entries, then team
// bindings. A later source overwrites an earlier one for the same user,
// so config ordering expresses precedence. Entries whose expiry has
// passed are excluded from the live roster but reported on Roster.Expired.
func Build(cfg *TeamConfig, teamMembers map[string][]string, now time.Time) (*Roster, error) {
	if !cfg.DefaultPermission.Valid() {
		return nil, configErrorf("invalid default_permission %q (must be one of pull, triage, push, maintain, admin)", cfg.DefaultPermission)
	}

	merged := make(map[string]Entry)
	add := func(login string, perm Permission, expires *time.Time, src Source) error {
		login = strings.TrimSpace(strings.TrimPrefix(login, "@"))
		if login == "" {
			return configErrorf("empty username in %s", src)
		}
		merged[strings.ToLower(login)] = Entry{
			Login:      login,
			Permission: perm,
			Expires:    expires,
			Source:     src,
		}
		return nil
	}

	for _, g := range cfg.Groups {
		src := Source{Kind: SourceGroup, Name: g.Label}
		for _, m := range g.Members {
			perm, err := ResolvePermission(g.Label, m.Permission, cfg.DefaultPermission)
			if err != nil {
				return nil, err
			}
			if err := add(m.Login, perm, m.Expires, src); err != nil {
				return nil, err
			}
		}
	}

	for _, m := range cfg.Explicit {
		perm, err := ResolvePermission("", m.Permission, cfg.DefaultPermission)
		if err != nil {
			return nil, err
		}
		if err := add(m.Login, perm, m.Expires, Source{Kind: SourceExplicit}); err != nil {
			return nil, err
		}
	}

	for _, b := range cfg.Teams {
		perm, err := ResolvePermission(b.Slug, b.Permission, cfg.DefaultPermission)
		if err != nil {
			return nil, err
		}
		src := Source{Kind: SourceTeam, Name: b.Name()}
		for _, login := range teamMembers[b.Name()] {
			if err := add(login, perm, nil, src); err != nil {
				return nil, err
			}
		}
	}

	r := &Roster{Entries: make(map[string]Entry, len(merged))}
	for key, e := range merged {
		if e.Expires != nil && IsExpired(*e.Expires, now) {
			r.Expired = append(r.Expired, e)
			continue
		}
		r.Entries[key] = e
	}
	sort.Slice(r.Expired, func(i, j int) bool {
		return strings.ToLower(r.Expired[i].Login) < strings.ToLower(r.Expired[j].Login)
	})
	return r, nil
}
