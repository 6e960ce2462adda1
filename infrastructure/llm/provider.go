package llm

import "context"

// Provider is a single model backend able to complete a prompt. A
// provider whose API key is not configured fails immediately from
// Complete, which the gateway treats like any other failure.
type Provider interface {
	// Name identifies the provider in logs, traces, and metrics
	Name() string

	// Complete sends a prompt and returns the raw text output
	Complete(ctx context.Context, prompt string) (string, error)
}
