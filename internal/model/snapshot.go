package model

import "strings"

// Credentials holds one API key slot per supported provider. Empty means unset.
type Credentials struct {
	OpenAI    string `json:"openai"`
	Anthropic string `json:"anthropic"`
}

// IsEmpty reports whether no provider key is populated.
func (c Credentials) IsEmpty() bool {
	return c.OpenAI == "" && c.Anthropic == ""
}

// Trimmed returns c with surrounding whitespace removed from every slot.
func (c Credentials) Trimmed() Credentials {
	return Credentials{
		OpenAI:    strings.TrimSpace(c.OpenAI),
		Anthropic: strings.TrimSpace(c.Anthropic),
	}
}

// Validate checks the surface format of every populated key.
func (c Credentials) Validate() error {
	if c.OpenAI != "" && !strings.HasPrefix(c.OpenAI, "sk-") {
		return &ValidationError{Field: "openai", Message: `invalid OpenAI API key format, key should start with "sk-"`}
	}
	if c.Anthropic != "" && !strings.HasPrefix(c.Anthropic, "sk-ant-") {
		return &ValidationError{Field: "anthropic", Message: `invalid Anthropic API key format, key should start with "sk-ant-"`}
	}
	return nil
}

// Snapshot is the persisted application state. Every key may be absent.
type Snapshot struct {
	Resume         *ResumeDocument `json:"resumeData"`
	JobDescription string          `json:"jobDescription"`
	Credentials    Credentials     `json:"apiKeys"`
}

// SnapshotStore persists the single named Snapshot.
type SnapshotStore interface {
	// Load returns the stored snapshot, or a zero Snapshot when none exists.
	Load() (Snapshot, error)
	Save(snap Snapshot) error
	// Clear removes the stored snapshot.
	Clear() error
}
