package notifier

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/tailor/internal/model"
)

// Ensure ConsoleNotifier implements model.Notifier.
var _ model.Notifier = (*ConsoleNotifier)(nil)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// ConsoleNotifier prints notices to a terminal, one styled line each. While
// held, lines are queued so they do not tear a spinner frame.
type ConsoleNotifier struct {
	mu      sync.Mutex
	w       io.Writer
	held    bool
	pending []string
}

// NewConsoleNotifier returns a notifier writing to w (normally stderr so
// exported text on stdout stays clean).
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Notify(notice model.Notice) error {
	var prefix string
	style := infoStyle
	switch notice.Level {
	case model.NoticeSuccess:
		prefix, style = "✓", successStyle
	case model.NoticeWarning:
		prefix, style = "!", warningStyle
	default:
		prefix = "•"
	}
	line := style.Render(prefix + " " + notice.Message)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.held {
		n.pending = append(n.pending, line)
		return nil
	}
	return n.writeLocked(line)
}

// Hold queues notices until Release is called.
func (n *ConsoleNotifier) Hold() {
	n.mu.Lock()
	n.held = true
	n.mu.Unlock()
}

// Release prints queued notices in arrival order and resumes direct writes.
func (n *ConsoleNotifier) Release() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.held = false
	pending := n.pending
	n.pending = nil
	for _, line := range pending {
		if err := n.writeLocked(line); err != nil {
			return err
		}
	}
	return nil
}

func (n *ConsoleNotifier) writeLocked(line string) error {
	if _, err := fmt.Fprintln(n.w, line); err != nil {
		return fmt.Errorf("write notice: %w", err)
	}
	return nil
}
