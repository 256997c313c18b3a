package audit

import (
	"reflect"
	"testing"

	"github.com/michaeljabbour/addteam/internal/roster"
)

func sampleDrift() *Drift {
	return &Drift{
		Missing: []Missing{
			{Login: "bob", Permission: roster.PermissionPush, Source: roster.Source{Kind: roster.SourceExplicit}},
			{Login: "carol", Permission: roster.PermissionPull, Source: roster.Source{Kind: roster.SourceGroup, Name: "readers"}},
		},
		Extra: []string{"dave"},
		PermissionChanges: []PermissionChange{
			{Login: "erin", From: roster.PermissionPull, To: roster.PermissionAdmin},
		},
		Expired: []ExpiredAccess{{Login: "temp", Expires: date("2024-01-01")}},
	}
}

func TestPlanPreviewIsEmpty(t *testing.T) {
	p := Plan(sampleDrift(), ModePreview)
	if !p.Empty() {
		t.Errorf("preview plan should be empty, got %+v", p)
	}
}

func TestPlanApply(t *testing.T) {
	p := Plan(sampleDrift(), ModeApply)
	if len(p.Invites) != 2 || p.Invites[0].Login != "bob" || p.Invites[1].Login != "carol" {
		t.Errorf("invites: got %+v, want [bob carol]", p.Invites)
	}
	if p.Invites[1].Permission != roster.PermissionPull {
		t.Errorf("carol invite permission: got %q, want pull", p.Invites[1].Permission)
	}
	if len(p.PermissionUpdates) != 1 || p.PermissionUpdates[0].Login != "erin" || p.PermissionUpdates[0].Permission != roster.PermissionAdmin {
		t.Errorf("updates: got %+v", p.PermissionUpdates)
	}
	if len(p.Removals) != 0 {
		t.Errorf("apply mode must not plan removals, got %v", p.Removals)
	}
}

func TestPlanApplySyncRemovals(t *testing.T) {
	p := Plan(sampleDrift(), ModeApplySync)
	want := []string{"dave", "temp"}
	if !reflect.DeepEqual(p.Removals, want) {
		t.Errorf("removals: got %v, want %v", p.Removals, want)
	}
}

func TestPlanApplySyncDedupesRemovals(t *testing.T) {
	d := &Drift{
		Extra:   []string{"temp"},
		Expired: []ExpiredAccess{{Login: "Temp", Expires: date("2024-01-01")}},
	}
	p := Plan(d, ModeApplySync)
	if len(p.Removals) != 1 {
		t.Errorf("expected one removal after dedupe, got %v", p.Removals)
	}
}

func TestPlanStable(t *testing.T) {
	d := sampleDrift()
	first := Plan(d, ModeApplySync)
	second := Plan(d, ModeApplySync)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("planning the same drift twice differed:\n%+v\n%+v", first, second)
	}
}

func TestPlanEmptyDrift(t *testing.T) {
	p := Plan(&Drift{}, ModeApplySync)
	if !p.Empty() {
		t.Errorf("empty drift should yield an empty plan, got %+v", p)
	}
}

// Applying the plan to the actual state and re-auditing must find no
// drift.
func TestPlanClosesDrift(t *testing.T) {
	exp := date("2024-01-01")
	ros := &roster.Roster{
		Entries: map[string]roster.Entry{
			"alice": {Login: "alice", Permission: roster.PermissionPush},
			"bob":   {Login: "bob", Permission: roster.PermissionPull},
		},
		Expired: []roster.Entry{{Login: "temp", Permission: roster.PermissionPush, Expires: &exp}},
	}
	actual := []roster.Collaborator{
		{Login: "alice", Permission: roster.PermissionAdmin, Status: roster.StatusAccepted},
		{Login: "dave", Permission: roster.PermissionPush, Status: roster.StatusAccepted},
		{Login: "temp", Permission: roster.PermissionPush, Status: roster.StatusAccepted},
	}

	d, err := Run(ros, actual, "owner", "owner")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	p := Plan(d, ModeApplySync)

	// Simulate execution against the actual state.
	next := make(map[string]roster.Collaborator)
	for _, c := range actual {
		next[c.Login] = c
	}
	for _, r := range p.Removals {
		delete(next, r)
	}
	for _, u := range p.PermissionUpdates {
		c := next[u.Login]
		c.Permission = u.Permission
		next[u.Login] = c
	}
	for _, inv := range p.Invites {
		// Invitees accept with the invited permission.
		next[inv.Login] = roster.Collaborator{
			Login:      inv.Login,
			Permission: inv.Permission,
			Status:     roster.StatusAccepted,
		}
	}
	after := make([]roster.Collaborator, 0, len(next))
	for _, c := range next {
		after = append(after, c)
	}

	d2, err := Run(ros, after, "owner", "owner")
	if err != nil {
		t.Fatalf("re-audit failed: %v", err)
	}
	if !d2.Empty() {
		t.Errorf("drift remained after applying plan: %+v", d2)
	}
}
