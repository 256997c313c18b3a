package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// LoadSettings reads tool settings from the given YAML file, then overlays
// environment variable overrides (ADDTEAM_*). A missing file yields the
// defaults.
func LoadSettings(path string) (*Settings, error) {
	k := koanf.New(".")

	s := DefaultSettings()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing settings %s: %w", path, err)
	}

	// Overlay environment variables: ADDTEAM_FALLBACK_REPO -> fallback_repo, etc.
	if err := k.Load(env.Provider("ADDTEAM_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "ADDTEAM_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", s); err != nil {
		return nil, fmt.Errorf("unmarshalling settings: %w", err)
	}

	return s, nil
}

// Save writes the settings to the given YAML file path.
func (s *Settings) Save(path string) error {
	data, err := yamlv3.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshalling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing settings to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized provider values.
var validProviders = map[ProviderType]bool{
	ProviderAuto:      true,
	ProviderOpenAI:    true,
	ProviderAnthropic: true,
}

// Validate checks that the settings contain valid values.
func (s *Settings) Validate() error {
	if s.Provider != "" && !validProviders[s.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of auto, openai, anthropic", s.Provider)
	}
	if s.FallbackRepo != "" && !IsRepoSpec(s.FallbackRepo) {
		return fmt.Errorf("invalid fallback_repo %q: must be owner/repo", s.FallbackRepo)
	}
	return nil
}
