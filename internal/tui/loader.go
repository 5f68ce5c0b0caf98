package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))

type stepDoneMsg[T any] struct {
	value T
	err   error
}

type loaderModel[T any] struct {
	message string
	run     func(ctx context.Context) (T, error)
	ctx     context.Context
	cancel  context.CancelFunc
	spinner spinner.Model
	result  T
	err     error
	done    bool
}

func newLoaderModel[T any](ctx context.Context, message string, run func(ctx context.Context) (T, error)) loaderModel[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))
	return loaderModel[T]{message: message, run: run, ctx: ctx, cancel: cancel, spinner: s}
}

func (m loaderModel[T]) Init() tea.Cmd {
	return tea.Batch(m.doRun(), m.spinner.Tick)
}

func (m loaderModel[T]) doRun() tea.Cmd {
	run, ctx := m.run, m.ctx
	return func() tea.Msg {
		v, err := run(ctx)
		return stepDoneMsg[T]{value: v, err: err}
	}
}

func (m loaderModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepDoneMsg[T]:
		m.result = msg.value
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			m.done = true
			m.err = context.Canceled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel[T]) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), m.message)
}

// RunLoader shows a spinner with message while run executes. It renders
// inline (no alt screen). Ctrl+C cancels the context passed to run.
func RunLoader[T any](ctx context.Context, message string, run func(ctx context.Context) (T, error)) (T, error) {
	m := newLoaderModel(ctx, message, run)
	defer m.cancel()

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		var zero T
		return zero, err
	}
	final := result.(loaderModel[T])
	return final.result, final.err
}
