package audit

import (
	"sort"
	"strings"

	"github.com/michaeljabbour/addteam/internal/roster"
)

// Mode selects how much of the drift the planner turns into actions.
type Mode string

const (
	// ModePreview plans nothing; the caller only renders the drift.
	ModePreview Mode = "preview"
	// ModeApply plans invitations and permission updates, never removals.
	ModeApply Mode = "apply"
	// ModeApplySync additionally plans removal of extra and expired access.
	ModeApplySync Mode = "apply-sync"
)

// Invite is a planned collaborator invitation.
type Invite struct {
	Login      string
	Permission roster.Permission
	Source     roster.Source
}

// PermissionUpdate is a planned re-permission of an existing collaborator.
type PermissionUpdate struct {
	Login      string
	Permission roster.Permission
}

// ActionPlan is the ordered, idempotent set of actions that closes the
// drift. Only Plan constructs it.
type ActionPlan struct {
	Invites           []Invite
	Removals          []string
	PermissionUpdates []PermissionUpdate
}

// Empty reports whether the plan contains no actions.
func (p *ActionPlan) Empty() bool {
	return len(p.Invites) == 0 && len(p.Removals) == 0 && len(p.PermissionUpdates) == 0
}

// Plan turns a drift report into an action plan for the given mode.
// Planning the same drift twice yields an identical plan, and executing
// the plan closes the drift it was planned from.
func Plan(d *Drift, mode Mode) *ActionPlan {
	p := &ActionPlan{}
	if mode == ModePreview {
		return p
	}

	for _, m := range d.Missing {
		p.Invites = append(p.Invites, Invite{Login: m.Login, Permission: m.Permission, Source: m.Source})
	}
	for _, c := range d.PermissionChanges {
		p.PermissionUpdates = append(p.PermissionUpdates, PermissionUpdate{Login: c.Login, Permission: c.To})
	}

	if mode == ModeApplySync {
		seen := make(map[string]bool)
		for _, login := range d.Extra {
			key := strings.ToLower(login)
			if !seen[key] {
				seen[key] = true
				p.Removals = append(p.Removals, login)
			}
		}
		for _, e := range d.Expired {
			key := strings.ToLower(e.Login)
			if !seen[key] {
				seen[key] = true
				p.Removals = append(p.Removals, e.Login)
			}
		}
		sort.Slice(p.Removals, func(i, j int) bool {
			return strings.ToLower(p.Removals[i]) < strings.ToLower(p.Removals[j])
		})
	}

	return p
}
