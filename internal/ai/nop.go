package ai

import (
	"context"
	"encoding/json"

	"github.com/amishk599/tailor/internal/model"
)

// NopAssistant never contacts a provider. It is used in offline mode so every
// step resolves to its fallback content.
type NopAssistant struct{}

// NewNopAssistant returns a NopAssistant.
func NewNopAssistant() *NopAssistant {
	return &NopAssistant{}
}

func (n *NopAssistant) ExtractResume(_ context.Context, _ model.Credentials, _ string) (model.ResumeDocument, error) {
	return model.ResumeDocument{}, model.ErrNoProviderConfigured
}

func (n *NopAssistant) ScoreMatch(_ context.Context, _ model.Credentials, _ model.ResumeDocument, _ string) (model.MatchResult, error) {
	return model.MatchResult{}, model.ErrNoProviderConfigured
}

func (n *NopAssistant) RewriteSection(_ context.Context, _ model.Credentials, _ model.Section, _ model.ResumeDocument, _ string) (json.RawMessage, error) {
	return nil, model.ErrNoProviderConfigured
}
