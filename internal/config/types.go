package config

// ProviderType identifies an AI summary provider.
type ProviderType string

const (
	ProviderAuto      ProviderType = "auto"
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
)

// Settings is the tool configuration, corresponding to .addteam.yml. The
// team roster itself lives in a separate file (see ParseTeamConfig); this
// struct only controls how the tool runs.
type Settings struct {
	// File is the team config spec: a filename, a local:/repo: prefixed
	// path, or empty to search the default candidates.
	File string `yaml:"file" koanf:"file"`
	// FallbackRepo is an owner/repo (optionally host/owner/repo) searched
	// for a team config when the target repo has none.
	FallbackRepo string `yaml:"fallback_repo" koanf:"fallback_repo"`
	// Provider selects the AI summary backend.
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	// NoAI disables summary generation entirely.
	NoAI bool `yaml:"no_ai" koanf:"no_ai"`
	// WelcomeIssue opens a welcome issue for each newly invited user,
	// unless the team config already says so.
	WelcomeIssue bool `yaml:"welcome_issue" koanf:"welcome_issue"`
	// HistoryPath overrides where the run history database is stored.
	HistoryPath string `yaml:"history_path" koanf:"history_path"`
}

// DefaultSettings returns a Settings with sensible defaults.
func DefaultSettings() *Settings {
	return &Settings{
		File:         "team.yaml",
		FallbackRepo: "michaeljabbour/addteam",
		Provider:     ProviderAuto,
	}
}
