package history

import (
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendFillsDefaults(t *testing.T) {
	s := openTestStore(t)
	if err := s.Append(Record{Repo: "acme/widgets", Mode: "audit", Missing: 2}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	records, err := s.Recent("", 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.ID == "" {
		t.Error("ID should be generated when unset")
	}
	if rec.RanAt.IsZero() {
		t.Error("RanAt should be filled when unset")
	}
	if rec.Repo != "acme/widgets" || rec.Mode != "audit" || rec.Missing != 2 {
		t.Errorf("record: %+v", rec)
	}
}

func TestRecentOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := s.Append(Record{
			Repo:  "acme/widgets",
			Mode:  "apply",
			RanAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	records, err := s.Recent("", 3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].RanAt.After(records[i-1].RanAt) {
			t.Errorf("records not newest-first: %v then %v", records[i-1].RanAt, records[i].RanAt)
		}
	}
}

func TestRecentRepoFilter(t *testing.T) {
	s := openTestStore(t)
	for _, repo := range []string{"acme/widgets", "acme/gadgets", "acme/widgets"} {
		if err := s.Append(Record{Repo: repo, Mode: "audit"}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	records, err := s.Recent("acme/widgets", 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, rec := range records {
		if rec.Repo != "acme/widgets" {
			t.Errorf("filter leaked: %+v", rec)
		}
	}
}

func TestRecentEmptyStore(t *testing.T) {
	s := openTestStore(t)
	records, err := s.Recent("", 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}
