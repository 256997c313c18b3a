package roster

import "fmt"

// ConfigError reports invalid team configuration: bad permission levels,
// unparseable dates, empty usernames. Always fatal, never repaired.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Reason
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// NewConfigError builds a ConfigError. Exposed for the config parser,
// which detects the same class of problems while reading the file.
func NewConfigError(format string, args ...any) *ConfigError {
	return configErrorf(format, args...)
}
