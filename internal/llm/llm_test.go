package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeProvider struct {
	name    string
	reply   string
	err     error
	prompts []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestBuildSummaryPrompt(t *testing.T) {
	prompt := BuildSummaryPrompt(SummaryInput{
		RepoFullName: "acme/widgets",
		Description:  "Makes widgets.",
		FirstUseCmd:  "addteam apply --repo acme/widgets",
	})
	for _, want := range []string{
		"Repo: acme/widgets",
		"Existing description: Makes widgets.",
		"addteam apply --repo acme/widgets",
		"GitHub token",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildSummaryPromptEmptyDescription(t *testing.T) {
	prompt := BuildSummaryPrompt(SummaryInput{RepoFullName: "acme/widgets", FirstUseCmd: "addteam apply"})
	if !strings.Contains(prompt, "Existing description: (none)") {
		t.Errorf("empty description should render as (none):\n%s", prompt)
	}
}

func TestGenerateSummary(t *testing.T) {
	p := &fakeProvider{name: "fake", reply: "  A widget factory.\n"}
	got, err := GenerateSummary(context.Background(), []Provider{p}, SummaryInput{RepoFullName: "acme/widgets"})
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if got != "A widget factory." {
		t.Errorf("got %q", got)
	}
	if len(p.prompts) != 1 {
		t.Errorf("provider called %d times, want 1", len(p.prompts))
	}
}

func TestGenerateSummaryFallsBack(t *testing.T) {
	broken := &fakeProvider{name: "broken", err: errors.New("rate limited")}
	empty := &fakeProvider{name: "empty", reply: "   "}
	working := &fakeProvider{name: "working", reply: "Summary."}

	got, err := GenerateSummary(context.Background(), []Provider{broken, empty, working}, SummaryInput{})
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if got != "Summary." {
		t.Errorf("got %q", got)
	}
}

func TestGenerateSummaryAllFail(t *testing.T) {
	broken := &fakeProvider{name: "broken", err: errors.New("boom")}
	_, err := GenerateSummary(context.Background(), []Provider{broken}, SummaryInput{})
	if err == nil {
		t.Fatal("expected error when every provider fails")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error should name the provider: %v", err)
	}
}

func TestGenerateSummaryNoProviders(t *testing.T) {
	if _, err := GenerateSummary(context.Background(), nil, SummaryInput{}); err == nil {
		t.Fatal("expected error with no providers")
	}
}

func TestNewProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	p, err := NewProvider("openai")
	if err != nil {
		t.Fatalf("NewProvider(openai) failed: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("name: got %q", p.Name())
	}

	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	p, err = NewProvider("anthropic")
	if err != nil {
		t.Fatalf("NewProvider(anthropic) failed: %v", err)
	}
	if p.Name() != "anthropic" {
		t.Errorf("name: got %q", p.Name())
	}

	if _, err := NewProvider("gemini"); err == nil {
		t.Error("unknown provider type should fail")
	}
}

func TestNewProviderMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewProvider("openai"); err == nil {
		t.Error("missing OPENAI_API_KEY should fail")
	}
	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := NewProvider("anthropic"); err == nil {
		t.Error("missing ANTHROPIC_API_KEY should fail")
	}
}

func TestDetect(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	if got := Detect(); len(got) != 0 {
		t.Errorf("no keys set: got %d providers", len(got))
	}

	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	got := Detect()
	if len(got) != 1 || got[0].Name() != "anthropic" {
		t.Fatalf("anthropic only: got %v providers", len(got))
	}

	t.Setenv("OPENAI_API_KEY", "test-key")
	got = Detect()
	if len(got) != 2 || got[0].Name() != "openai" || got[1].Name() != "anthropic" {
		t.Errorf("both keys: expected openai first, got %d providers", len(got))
	}
}
