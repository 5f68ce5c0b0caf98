package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/tailor/internal/model"
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))
)

// Decision is the outcome of a draft review.
type Decision int

const (
	DecisionDiscard Decision = iota
	DecisionAccept
)

func (d Decision) String() string {
	if d == DecisionAccept {
		return "accept"
	}
	return "discard"
}

type reviewModel struct {
	section    model.Section
	current    string
	proposed   string
	fallback   bool
	leftVP     viewport.Model
	rightVP    viewport.Model
	activePane int // 0=current, 1=proposed
	width      int
	height     int
	ready      bool
	decision   Decision
}

func newReviewModel(section model.Section, current, proposed json.RawMessage, fallback bool) reviewModel {
	return reviewModel{
		section:    section,
		current:    prettySection(current),
		proposed:   prettySection(proposed),
		fallback:   fallback,
		activePane: 1,
	}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "a", "y", "enter":
			m.decision = DecisionAccept
			return m, tea.Quit
		case "d", "n", "q", "esc", "ctrl+c":
			m.decision = DecisionDiscard
			return m, tea.Quit
		case "tab", "left", "right", "h", "l":
			m.activePane = 1 - m.activePane
			return m, nil
		}
		if !m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		if m.activePane == 0 {
			m.leftVP, cmd = m.leftVP.Update(msg)
		} else {
			m.rightVP, cmd = m.rightVP.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *reviewModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.leftVP = viewport.New(paneWidth, paneHeight)
		m.rightVP = viewport.New(paneWidth, paneHeight)
		m.ready = true
	} else {
		m.leftVP.Width = paneWidth
		m.leftVP.Height = paneHeight
		m.rightVP.Width = paneWidth
		m.rightVP.Height = paneHeight
	}

	m.leftVP.SetContent(wrapLines(m.current, paneWidth))
	m.rightVP.SetContent(wrapLines(m.proposed, paneWidth))
}

func (m reviewModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	paneWidth := m.leftVP.Width

	leftHeader := fmt.Sprintf(" Current %s", m.section)
	rightHeader := fmt.Sprintf(" Proposed %s", m.section)
	if m.fallback {
		rightHeader += " (demo)"
	}

	leftBorder, rightBorder := inactiveBorderStyle, activeBorderStyle
	leftHeaderStyle, rightHeaderStyle := inactiveHeaderStyle, activeHeaderStyle
	if m.activePane == 0 {
		leftBorder, rightBorder = activeBorderStyle, inactiveBorderStyle
		leftHeaderStyle, rightHeaderStyle = activeHeaderStyle, inactiveHeaderStyle
	}

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth+2).Render(leftHeaderStyle.Render(leftHeader)),
		" ",
		lipgloss.NewStyle().Width(paneWidth+2).Render(rightHeaderStyle.Render(rightHeader)),
	)
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		leftBorder.Width(paneWidth).Render(m.leftVP.View()),
		" ",
		rightBorder.Width(paneWidth).Render(m.rightVP.View()),
	)
	statusBar := statusBarStyle.Width(m.width).Render(" a/enter accept  d discard  Tab switch pane  ↑/↓ scroll  q quit")

	return headerRow + "\n" + panes + "\n" + statusBar
}

// prettySection renders section content for reading. Plain strings are shown
// unquoted and everything else as indented JSON.
func prettySection(content json.RawMessage) string {
	var s string
	if json.Unmarshal(content, &s) == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, content, "", "  "); err != nil {
		return string(content)
	}
	return buf.String()
}

// wrapLines word-wraps each line of text to width, keeping leading indentation.
func wrapLines(text string, width int) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
		wrapped := wordWrap(line, width-len(indent))
		if wrapped == "" {
			out = append(out, "")
			continue
		}
		for _, w := range strings.Split(wrapped, "\n") {
			out = append(out, indent+w)
		}
	}
	return strings.Join(out, "\n")
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

// RunDraftReview shows the current and proposed content of a section side by
// side and asks the user to accept or discard the proposal.
func RunDraftReview(section model.Section, current, proposed json.RawMessage, fallback bool) (Decision, error) {
	m := newReviewModel(section, current, proposed, fallback)

	result, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return DecisionDiscard, err
	}
	return result.(reviewModel).decision, nil
}
