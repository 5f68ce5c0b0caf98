package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/amishk599/tailor/internal/model"
)

// mockCompleter is a stub Completer that records the last prompt.
type mockCompleter struct {
	response string
	err      error
	prompt   string
	creds    model.Credentials
}

func (m *mockCompleter) RequestCompletion(_ context.Context, prompt string, creds model.Credentials, _ ...CallOption) (string, error) {
	m.prompt = prompt
	m.creds = creds
	return m.response, m.err
}

var testCreds = model.Credentials{OpenAI: "sk-test"}

func TestExtractResume_FencedReply(t *testing.T) {
	reply := "```json\n{\"personal\":{\"name\":\"Jane Smith\",\"email\":\"jane@example.com\"},\"summary\":\"Engineer\",\"experience\":[{\"company\":\"Acme\",\"position\":\"SRE\",\"duration\":\"2020-2024\",\"responsibilities\":[\"On-call\"],\"achievements\":[]}]}\n```"
	mc := &mockCompleter{response: reply}
	a := NewAssistant(mc, nil)

	doc, err := a.ExtractResume(context.Background(), testCreds, "Jane Smith resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Personal.Name != "Jane Smith" || doc.Summary != "Engineer" {
		t.Errorf("doc = %+v", doc)
	}
	if len(doc.Experience) != 1 || doc.Experience[0].Company != "Acme" {
		t.Errorf("experience = %+v", doc.Experience)
	}
	if !strings.Contains(mc.prompt, "Jane Smith resume") {
		t.Error("prompt does not embed resume text")
	}
	if mc.creds != testCreds {
		t.Error("credentials not forwarded")
	}
}

func TestExtractResume_MalformedReply(t *testing.T) {
	a := NewAssistant(&mockCompleter{response: "Sorry, I cannot help with that."}, nil)

	_, err := a.ExtractResume(context.Background(), testCreds, "text")
	if !errors.Is(err, model.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestExtractResume_ProviderErrorPropagates(t *testing.T) {
	a := NewAssistant(&mockCompleter{err: model.ErrTimeout}, nil)

	_, err := a.ExtractResume(context.Background(), testCreds, "text")
	if !errors.Is(err, model.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestScoreMatch_PopulatesResult(t *testing.T) {
	mc := &mockCompleter{response: `{"score":85,"analysis":"Strong","strengths":["Go"],"gaps":["K8s"],"recommendations":["Add CKA"]}`}
	a := NewAssistant(mc, nil)

	resume := model.ResumeDocument{Summary: "Backend engineer"}
	got, err := a.ScoreMatch(context.Background(), testCreds, resume, "We need Go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 85 || got.Analysis != "Strong" {
		t.Errorf("result = %+v", got)
	}
	if len(got.Strengths) != 1 || len(got.Gaps) != 1 || len(got.Recommendations) != 1 {
		t.Errorf("lists = %+v", got)
	}
	if !strings.Contains(mc.prompt, `"summary": "Backend engineer"`) {
		t.Error("prompt does not embed indented resume JSON")
	}
	if !strings.Contains(mc.prompt, "We need Go") {
		t.Error("prompt does not embed job description")
	}
}

func TestScoreMatch_MissingScoreIsMalformed(t *testing.T) {
	a := NewAssistant(&mockCompleter{response: `{"analysis":"no score here"}`}, nil)

	_, err := a.ScoreMatch(context.Background(), testCreds, model.ResumeDocument{}, "job")
	if !errors.Is(err, model.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestRewriteSection_Summary(t *testing.T) {
	mc := &mockCompleter{response: `"Results-driven engineer"`}
	a := NewAssistant(mc, nil)

	resume := model.ResumeDocument{Summary: "Old summary"}
	got, err := a.RewriteSection(context.Background(), testCreds, model.SectionSummary, resume, "job text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `"Results-driven engineer"` {
		t.Errorf("content = %s", got)
	}
	if !strings.Contains(mc.prompt, "CURRENT SUMMARY:") || !strings.Contains(mc.prompt, `"Old summary"`) {
		t.Errorf("prompt missing current section:\n%s", mc.prompt)
	}
}

func TestRewriteSection_UnwrapsKeyedObject(t *testing.T) {
	a := NewAssistant(&mockCompleter{response: `{"skills":{"technical":["Go"],"soft":["Mentoring"]}}`}, nil)

	got, err := a.RewriteSection(context.Background(), testCreds, model.SectionSkills, model.ResumeDocument{}, "job")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"technical":["Go"],"soft":["Mentoring"]}` {
		t.Errorf("content = %s", got)
	}
}

func TestRewriteSection_WrongShapeIsMalformed(t *testing.T) {
	a := NewAssistant(&mockCompleter{response: `{"company":"not a list"}`}, nil)

	_, err := a.RewriteSection(context.Background(), testCreds, model.SectionExperience, model.ResumeDocument{}, "job")
	if !errors.Is(err, model.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestExtractResume_EmptyReplyIsMalformed(t *testing.T) {
	for _, reply := range []string{"null", "{}", "```json\nnull\n```", `{"personal":{},"summary":"  ","experience":[]}`} {
		a := NewAssistant(&mockCompleter{response: reply}, nil)

		doc, err := a.ExtractResume(context.Background(), testCreds, "text")
		if !errors.Is(err, model.ErrMalformedResponse) {
			t.Errorf("ExtractResume(%q) = %+v, %v; want ErrMalformedResponse", reply, doc, err)
		}
	}
}

func TestRewriteSection_EmptyReplyIsMalformed(t *testing.T) {
	resume := model.ResumeDocument{
		Summary:    "Backend engineer",
		Experience: []model.Experience{{Company: "Acme", Position: "SRE"}},
	}
	tests := []struct {
		section model.Section
		reply   string
	}{
		{model.SectionSummary, "null"},
		{model.SectionSummary, `""`},
		{model.SectionExperience, "null"},
		{model.SectionExperience, "```json\nnull\n```"},
		{model.SectionExperience, "[]"},
		{model.SectionSkills, `{"technical":[],"soft":[]}`},
	}
	for _, tt := range tests {
		a := NewAssistant(&mockCompleter{response: tt.reply}, nil)

		got, err := a.RewriteSection(context.Background(), testCreds, tt.section, resume, "job")
		if !errors.Is(err, model.ErrMalformedResponse) {
			t.Errorf("RewriteSection(%s, %q) = %s, %v; want ErrMalformedResponse", tt.section, tt.reply, got, err)
		}
	}
}
