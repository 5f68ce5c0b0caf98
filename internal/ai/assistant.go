package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"github.com/amishk599/tailor/internal/model"
)

// Completer is the Provider Adapter contract consumed by Assistant.
type Completer interface {
	RequestCompletion(ctx context.Context, prompt string, creds model.Credentials, opts ...CallOption) (string, error)
}

// Assistant turns each workflow step into a prompt, sends it through the
// Completer and decodes the reply into model types.
type Assistant struct {
	completer Completer
	logger    *slog.Logger
}

// NewAssistant creates an Assistant backed by completer.
func NewAssistant(completer Completer, logger *slog.Logger) *Assistant {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Assistant{completer: completer, logger: logger}
}

// ExtractResume asks the LLM to structure raw resume text.
func (a *Assistant) ExtractResume(ctx context.Context, creds model.Credentials, resumeText string) (model.ResumeDocument, error) {
	prompt, err := render(ParseResumeTemplate, struct{ ResumeText string }{ResumeText: resumeText})
	if err != nil {
		return model.ResumeDocument{}, err
	}

	raw, err := a.completer.RequestCompletion(ctx, prompt, creds)
	if err != nil {
		return model.ResumeDocument{}, fmt.Errorf("llm complete: %w", err)
	}

	var doc model.ResumeDocument
	if err := DecodeJSON(raw, &doc); err != nil {
		a.logger.Debug("undecodable reply", "step", "parse", "chars", len(raw))
		return model.ResumeDocument{}, fmt.Errorf("parse resume: %w", err)
	}
	if b, err := json.Marshal(doc); err != nil || blankJSON(b) {
		return model.ResumeDocument{}, fmt.Errorf("parse resume: %w: no resume fields", model.ErrMalformedResponse)
	}
	return doc, nil
}

// rawMatch is the JSON shape requested by the analyze prompt. Score is a
// pointer so a reply without one is rejected.
type rawMatch struct {
	Score           *float64 `json:"score"`
	Analysis        string   `json:"analysis"`
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
}

// ScoreMatch asks the LLM to score resume against jobDescription.
func (a *Assistant) ScoreMatch(ctx context.Context, creds model.Credentials, resume model.ResumeDocument, jobDescription string) (model.MatchResult, error) {
	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("marshal resume: %w", err)
	}

	prompt, err := render(AnalyzeMatchTemplate, struct {
		ResumeJSON     string
		JobDescription string
	}{
		ResumeJSON:     string(resumeJSON),
		JobDescription: jobDescription,
	})
	if err != nil {
		return model.MatchResult{}, err
	}

	raw, err := a.completer.RequestCompletion(ctx, prompt, creds)
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("llm complete: %w", err)
	}

	var rm rawMatch
	if err := DecodeJSON(raw, &rm); err != nil {
		a.logger.Debug("undecodable reply", "step", "analyze", "chars", len(raw))
		return model.MatchResult{}, fmt.Errorf("parse match: %w", err)
	}
	if rm.Score == nil {
		return model.MatchResult{}, fmt.Errorf("parse match: %w: missing score", model.ErrMalformedResponse)
	}

	return model.MatchResult{
		Score:           *rm.Score,
		Analysis:        rm.Analysis,
		Strengths:       rm.Strengths,
		Gaps:            rm.Gaps,
		Recommendations: rm.Recommendations,
	}, nil
}

// RewriteSection asks the LLM for a replacement of one section. The reply must
// have the same shape as the section it replaces.
func (a *Assistant) RewriteSection(ctx context.Context, creds model.Credentials, section model.Section, resume model.ResumeDocument, jobDescription string) (json.RawMessage, error) {
	current, err := resume.SectionJSON(section)
	if err != nil {
		return nil, err
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, current, "", "  "); err != nil {
		return nil, fmt.Errorf("indent %s: %w", section, err)
	}

	prompt, err := render(OptimizeSectionTemplate, struct {
		Section        string
		SectionUpper   string
		Current        string
		JobDescription string
	}{
		Section:        string(section),
		SectionUpper:   strings.ToUpper(string(section)),
		Current:        indented.String(),
		JobDescription: jobDescription,
	})
	if err != nil {
		return nil, err
	}

	raw, err := a.completer.RequestCompletion(ctx, prompt, creds)
	if err != nil {
		return nil, fmt.Errorf("llm complete: %w", err)
	}

	var reply json.RawMessage
	if err := DecodeJSON(raw, &reply); err != nil {
		a.logger.Debug("undecodable reply", "step", "optimize", "section", section, "chars", len(raw))
		return nil, fmt.Errorf("parse %s: %w", section, err)
	}
	content, err := model.NormalizeSection(section, reply)
	if err != nil {
		// Some models wrap the section in an object keyed by its name.
		var wrapped map[string]json.RawMessage
		if json.Unmarshal(reply, &wrapped) == nil && len(wrapped) == 1 && wrapped[string(section)] != nil {
			if content, werr := model.NormalizeSection(section, wrapped[string(section)]); werr == nil {
				return content, nil
			}
		}
		return nil, fmt.Errorf("parse %s: %w: %v", section, model.ErrMalformedResponse, err)
	}
	if blankJSON(content) {
		return nil, fmt.Errorf("parse %s: %w: empty section", section, model.ErrMalformedResponse)
	}
	return content, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
