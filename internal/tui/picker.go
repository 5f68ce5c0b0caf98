package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/tailor/internal/model"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 1, 2)

	pickerRowStyle     = lipgloss.NewStyle().Padding(0, 0, 0, 4)
	pickerCursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).Padding(0, 0, 0, 2)
	pickerEmptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pickerDemoTagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	pickerWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Padding(1, 0, 0, 2)
	pickerKeyHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(1, 0, 0, 2)
)

const pickerPreviewMaxLen = 48

// SectionItem is one row of the section picker.
type SectionItem struct {
	Section model.Section
	Preview string // short description of the current content
	Empty   bool
	Demo    bool // a fixed demo rewrite exists if the provider call fails
}

// SectionItems describes every optimizable section of doc. hasDemo reports
// whether a section has demo content.
func SectionItems(doc model.ResumeDocument, hasDemo func(model.Section) bool) []SectionItem {
	items := make([]SectionItem, 0, len(model.Sections))
	for _, s := range model.Sections {
		preview, empty := sectionPreview(doc, s)
		items = append(items, SectionItem{Section: s, Preview: preview, Empty: empty, Demo: hasDemo != nil && hasDemo(s)})
	}
	return items
}

func sectionPreview(doc model.ResumeDocument, s model.Section) (string, bool) {
	switch s {
	case model.SectionSummary:
		return truncate(strings.TrimSpace(doc.Summary), pickerPreviewMaxLen), strings.TrimSpace(doc.Summary) == ""
	case model.SectionExperience:
		return countLabel(len(doc.Experience), "role", "roles"), len(doc.Experience) == 0
	case model.SectionSkills:
		n := len(doc.Skills.Technical) + len(doc.Skills.Soft)
		return fmt.Sprintf("%d technical, %d soft", len(doc.Skills.Technical), len(doc.Skills.Soft)), n == 0
	case model.SectionEducation:
		return countLabel(len(doc.Education), "degree", "degrees"), len(doc.Education) == 0
	case model.SectionProjects:
		return countLabel(len(doc.Projects), "project", "projects"), len(doc.Projects) == 0
	case model.SectionPersonal:
		return doc.Personal.Name, doc.Personal == (model.Personal{})
	}
	return "", true
}

func countLabel(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

type pickerModel struct {
	items   []SectionItem
	offline bool
	cursor  int
	chosen  int // -1 = no choice yet, -2 = quit
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k := key.String(); k {
	case "q", "esc", "ctrl+c":
		m.chosen = -2
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = m.cursor
		return m, tea.Quit
	default:
		// Digits pick a row directly.
		if len(k) == 1 && k[0] >= '1' && int(k[0]-'1') < len(m.items) {
			m.cursor = int(k[0] - '1')
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render("Optimize a section"))
	b.WriteString("\n")

	for i, it := range m.items {
		preview := it.Preview
		if it.Empty {
			preview = pickerEmptyStyle.Render("(empty)")
		}
		label := fmt.Sprintf("%d %-11s %s", i+1, it.Section, preview)
		if m.offline && it.Demo {
			label += " " + pickerDemoTagStyle.Render("[demo]")
		}
		if i == m.cursor {
			b.WriteString(pickerCursorStyle.Render("> " + label))
		} else {
			b.WriteString(pickerRowStyle.Render(label))
		}
		b.WriteString("\n")
	}

	if m.offline {
		b.WriteString(pickerWarningStyle.Render("No provider will be called: sections tagged [demo] get sample text, others stay unchanged."))
		b.WriteString("\n")
	}
	b.WriteString(pickerKeyHelpStyle.Render("↑/↓/j/k navigate  1-9 or enter select  q quit"))
	return b.String()
}

// RunSectionPicker shows an interactive section selector. offline marks that
// no provider will be called, so demo availability is shown per row. ok is
// false if the user quit without choosing.
func RunSectionPicker(items []SectionItem, offline bool) (section model.Section, ok bool, err error) {
	m := pickerModel{items: items, offline: offline, chosen: -1}

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", false, err
	}

	final := result.(pickerModel)
	if final.chosen < 0 {
		return "", false, nil
	}
	return final.items[final.chosen].Section, true, nil
}
