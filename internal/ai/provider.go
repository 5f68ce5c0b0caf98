package ai

import "context"

// LLMProvider sends a prompt to one LLM HTTP API and returns the extracted
// reply text. Implementations normalize their provider-specific wire shape to
// this contract.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
