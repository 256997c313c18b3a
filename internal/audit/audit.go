// Package audit compares a desired access roster against the observed
// collaborator state and classifies the drift. Everything here is pure:
// given the same inputs, the report contents and ordering are identical,
// which the CLI relies on for stable output and idempotent re-application.
package audit

import (
	"sort"
	"strings"
	"time"

	"github.com/michaeljabbour/addteam/internal/roster"
)

// InvariantError reports structurally inconsistent input, such as an
// actual state listing the same login twice. It signals a bug or a broken
// fetcher, not a user mistake.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Reason
}

// Missing is a desired user with no access and no pending invitation.
type Missing struct {
	Login      string
	Permission roster.Permission
	Source     roster.Source
}

// PermissionChange is a user whose current permission differs from the
// desired one.
type PermissionChange struct {
	Login string
	From  roster.Permission
	To    roster.Permission
}

// ExpiredAccess is a user still holding access whose desired entry has
// expired.
type ExpiredAccess struct {
	Login   string
	Expires time.Time
}

// Drift is the classified difference between desired and actual state.
// All lists are sorted by lower-cased login.
type Drift struct {
	Missing           []Missing
	Extra             []string
	PermissionChanges []PermissionChange
	Expired           []ExpiredAccess
}

// Total is the number of drift items across all categories.
func (d *Drift) Total() int {
	return len(d.Missing) + len(d.Extra) + len(d.PermissionChanges) + len(d.Expired)
}

// Empty reports whether no drift was found.
func (d *Drift) Empty() bool {
	return d.Total() == 0
}

// Run classifies the drift between the desired roster and the actual
// collaborator set. The repo owner and the authenticated user always have
// implicit access and are excluded from every category. A user with a
// pending invitation is not missing: the invite already exists. Expired
// entries count only while the user still holds accepted access, and an
// expired user is never also extra or missing.
func Run(ros *roster.Roster, actual []roster.Collaborator, owner, me string) (*Drift, error) {
	skip := map[string]bool{
		strings.ToLower(owner): true,
		strings.ToLower(me):    true,
	}

	byLogin := make(map[string]roster.Collaborator, len(actual))
	for _, c := range actual {
		key := strings.ToLower(c.Login)
		if _, dup := byLogin[key]; dup {
			return nil, &InvariantError{Reason: "actual state lists " + key + " more than once"}
		}
		byLogin[key] = c
	}

	expired := make(map[string]roster.Entry, len(ros.Expired))
	for _, e := range ros.Expired {
		expired[strings.ToLower(e.Login)] = e
	}

	d := &Drift{}

	for key, want := range ros.Entries {
		if skip[key] {
			continue
		}
		have, ok := byLogin[key]
		if !ok {
			d.Missing = append(d.Missing, Missing{
				Login:      want.Login,
				Permission: want.Permission,
				Source:     want.Source,
			})
			continue
		}
		if have.Status == roster.StatusAccepted && have.Permission != want.Permission {
			d.PermissionChanges = append(d.PermissionChanges, PermissionChange{
				Login: have.Login,
				From:  have.Permission,
				To:    want.Permission,
			})
		}
	}

	for key, c := range byLogin {
		if skip[key] || c.Status != roster.StatusAccepted {
			continue
		}
		if _, desired := ros.Entries[key]; desired {
			continue
		}
		if e, was := expired[key]; was {
			d.Expired = append(d.Expired, ExpiredAccess{Login: c.Login, Expires: *e.Expires})
			continue
		}
		d.Extra = append(d.Extra, c.Login)
	}

	sort.Slice(d.Missing, func(i, j int) bool {
		return strings.ToLower(d.Missing[i].Login) < strings.ToLower(d.Missing[j].Login)
	})
	sort.Slice(d.Extra, func(i, j int) bool {
		return strings.ToLower(d.Extra[i]) < strings.ToLower(d.Extra[j])
	})
	sort.Slice(d.PermissionChanges, func(i, j int) bool {
		return strings.ToLower(d.PermissionChanges[i].Login) < strings.ToLower(d.PermissionChanges[j].Login)
	})
	sort.Slice(d.Expired, func(i, j int) bool {
		return strings.ToLower(d.Expired[i].Login) < strings.ToLower(d.Expired[j].Login)
	})

	return d, nil
}
