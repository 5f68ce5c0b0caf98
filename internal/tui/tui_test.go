package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/tailor/internal/model"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPicker_SelectsSection(t *testing.T) {
	var m tea.Model = pickerModel{items: SectionItems(model.ResumeDocument{}, nil), chosen: -1}

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("k"))
	m, cmd := m.Update(key("enter"))

	final := m.(pickerModel)
	if final.chosen != 1 || final.items[final.chosen].Section != model.SectionExperience {
		t.Errorf("chosen = %d, want experience", final.chosen)
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestPicker_CursorStaysInRange(t *testing.T) {
	var m tea.Model = pickerModel{items: SectionItems(model.ResumeDocument{}, nil), chosen: -1}
	m, _ = m.Update(key("up"))
	if c := m.(pickerModel).cursor; c != 0 {
		t.Errorf("cursor = %d after up at top", c)
	}
	for range len(model.Sections) + 3 {
		m, _ = m.Update(key("down"))
	}
	if c := m.(pickerModel).cursor; c != len(model.Sections)-1 {
		t.Errorf("cursor = %d, want last", c)
	}
}

func TestPicker_QuitWithoutChoice(t *testing.T) {
	var m tea.Model = pickerModel{items: SectionItems(model.ResumeDocument{}, nil), chosen: -1}
	m, _ = m.Update(key("q"))
	if m.(pickerModel).chosen != -2 {
		t.Errorf("chosen = %d, want -2", m.(pickerModel).chosen)
	}
}

func TestPicker_DigitSelectsRow(t *testing.T) {
	var m tea.Model = pickerModel{items: SectionItems(model.ResumeDocument{}, nil), chosen: -1}
	m, cmd := m.Update(key("3"))
	final := m.(pickerModel)
	if final.chosen != 2 || final.items[2].Section != model.SectionSkills {
		t.Errorf("chosen = %d, want skills", final.chosen)
	}
	if cmd == nil {
		t.Error("expected quit command")
	}

	m = pickerModel{items: SectionItems(model.ResumeDocument{}, nil), chosen: -1}
	m, _ = m.Update(key("9"))
	if m.(pickerModel).chosen != -1 {
		t.Error("out of range digit must not select")
	}
}

func TestSectionItems(t *testing.T) {
	doc := model.ResumeDocument{
		Personal:   model.Personal{Name: "Jane Smith"},
		Summary:    strings.Repeat("x", 80),
		Experience: []model.Experience{{Company: "Acme"}},
		Skills:     model.Skills{Technical: []string{"Go", "SQL"}},
	}
	demo := func(s model.Section) bool { return s == model.SectionSummary }

	items := SectionItems(doc, demo)
	if len(items) != len(model.Sections) {
		t.Fatalf("got %d items", len(items))
	}
	byName := map[model.Section]SectionItem{}
	for _, it := range items {
		byName[it.Section] = it
	}

	if s := byName[model.SectionSummary]; s.Empty || !s.Demo || len([]rune(s.Preview)) != pickerPreviewMaxLen {
		t.Errorf("summary = %+v", s)
	}
	if e := byName[model.SectionExperience]; e.Preview != "1 role" || e.Empty || e.Demo {
		t.Errorf("experience = %+v", e)
	}
	if s := byName[model.SectionSkills]; s.Preview != "2 technical, 0 soft" || s.Empty {
		t.Errorf("skills = %+v", s)
	}
	if e := byName[model.SectionEducation]; !e.Empty || e.Preview != "0 degrees" {
		t.Errorf("education = %+v", e)
	}
	if p := byName[model.SectionPersonal]; p.Preview != "Jane Smith" || p.Empty {
		t.Errorf("personal = %+v", p)
	}
}

func TestPicker_ViewTagsDemoRowsWhenOffline(t *testing.T) {
	items := SectionItems(model.ResumeDocument{}, func(s model.Section) bool { return s == model.SectionSkills })

	online := pickerModel{items: items, chosen: -1}.View()
	if strings.Contains(online, "[demo]") {
		t.Error("online view should not tag demo rows")
	}
	offlineView := pickerModel{items: items, offline: true, chosen: -1}.View()
	if strings.Count(offlineView, "[demo]") != 2 { // skills row and the footer
		t.Errorf("offline view:\n%s", offlineView)
	}
}

func TestReview_Decisions(t *testing.T) {
	tests := []struct {
		key  string
		want Decision
	}{
		{"a", DecisionAccept},
		{"enter", DecisionAccept},
		{"d", DecisionDiscard},
		{"esc", DecisionDiscard},
		{"ctrl+c", DecisionDiscard},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var m tea.Model = newReviewModel(model.SectionSummary, json.RawMessage(`"old"`), json.RawMessage(`"new"`), false)
			m, cmd := m.Update(key(tt.key))
			if got := m.(reviewModel).decision; got != tt.want {
				t.Errorf("decision = %v, want %v", got, tt.want)
			}
			if cmd == nil {
				t.Error("expected quit command")
			}
		})
	}
}

func TestReview_ViewShowsBothSides(t *testing.T) {
	var m tea.Model = newReviewModel(model.SectionSkills,
		json.RawMessage(`{"technical":["Go"],"soft":[]}`),
		json.RawMessage(`{"technical":["Go","Kubernetes"],"soft":["Mentoring"]}`),
		true)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	view := m.View()
	for _, want := range []string{"Current skills", "Proposed skills (demo)", "Kubernetes", "Mentoring"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = m.Update(key("tab"))
	if m.(reviewModel).activePane != 0 {
		t.Error("tab did not switch pane")
	}
}

func TestPrettySection(t *testing.T) {
	if got := prettySection(json.RawMessage(`"plain summary"`)); got != "plain summary" {
		t.Errorf("string section = %q", got)
	}
	if got := prettySection(json.RawMessage(`{"a":1}`)); got != "{\n  \"a\": 1\n}" {
		t.Errorf("object section = %q", got)
	}
}

func TestWrapLines_KeepsIndent(t *testing.T) {
	got := wrapLines("  alpha beta gamma", 12)
	want := "  alpha beta\n  gamma"
	if got != want {
		t.Errorf("wrapLines = %q, want %q", got, want)
	}
}

func TestLoader_DeliversResult(t *testing.T) {
	m := newLoaderModel(context.Background(), "Parsing resume...", func(context.Context) (int, error) {
		return 42, nil
	})
	defer m.cancel()

	msg := m.doRun()()
	next, cmd := m.Update(msg)
	final := next.(loaderModel[int])
	if final.result != 42 || final.err != nil || !final.done {
		t.Errorf("loader = %+v", final)
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
	if final.View() != "" {
		t.Error("view should be empty once done")
	}
}

func TestLoader_CtrlCCancels(t *testing.T) {
	var seen context.Context
	m := newLoaderModel(context.Background(), "Analyzing match...", func(ctx context.Context) (string, error) {
		seen = ctx
		return "", nil
	})
	m.doRun()()

	next, _ := m.Update(key("ctrl+c"))
	final := next.(loaderModel[string])
	if !errors.Is(final.err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", final.err)
	}
	if seen.Err() == nil {
		t.Error("run context not cancelled")
	}
}
