// Package llm generates short AI repo summaries for welcome issues and
// terminal output. Providers are selected by flag or, in auto mode, by
// which API key is present in the environment.
package llm

import "context"

// Provider is a single-shot completion backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}
