package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	def := DefaultSettings()
	if s.File != def.File || s.FallbackRepo != def.FallbackRepo || s.Provider != def.Provider {
		t.Errorf("missing file should yield defaults, got %+v", s)
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".addteam.yml")
	content := []byte("file: roster.yaml\nfallback_repo: acme/rosters\nprovider: openai\nno_ai: false\nwelcome_issue: true\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.File != "roster.yaml" {
		t.Errorf("file: got %q", s.File)
	}
	if s.FallbackRepo != "acme/rosters" {
		t.Errorf("fallback_repo: got %q", s.FallbackRepo)
	}
	if s.Provider != ProviderOpenAI {
		t.Errorf("provider: got %q", s.Provider)
	}
	if !s.WelcomeIssue {
		t.Error("welcome_issue should be true")
	}
}

func TestLoadSettingsEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".addteam.yml")
	if err := os.WriteFile(path, []byte("provider: openai\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ADDTEAM_PROVIDER", "anthropic")
	t.Setenv("ADDTEAM_FALLBACK_REPO", "env/wins")

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.Provider != ProviderAnthropic {
		t.Errorf("env should override file: got %q", s.Provider)
	}
	if s.FallbackRepo != "env/wins" {
		t.Errorf("fallback_repo: got %q", s.FallbackRepo)
	}
}

func TestSettingsSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".addteam.yml")
	s := &Settings{
		File:         "team.yml",
		FallbackRepo: "acme/rosters",
		Provider:     ProviderAnthropic,
		NoAI:         true,
		HistoryPath:  "/tmp/history.db",
	}
	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if *loaded != *s {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", s, loaded)
	}
}

func TestSettingsValidate(t *testing.T) {
	ok := DefaultSettings()
	if err := ok.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if err := (&Settings{Provider: "gemini"}).Validate(); err == nil {
		t.Error("unknown provider should fail validation")
	}
	if err := (&Settings{FallbackRepo: "not-a-repo"}).Validate(); err == nil {
		t.Error("malformed fallback_repo should fail validation")
	}
}

func TestIsRepoSpec(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"owner/repo", true},
		{"owner/repo/extra", false},
		{"owner", false},
		{"/repo", false},
		{"owner/", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsRepoSpec(tt.value); got != tt.want {
			t.Errorf("IsRepoSpec(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
