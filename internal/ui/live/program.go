package live

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"quizdeck/internal/quiz"
)

// Run drives the live UI until the user quits or ctx is cancelled.
func Run(ctx context.Context, controller *quiz.Controller, screen *Screen, in io.Reader, out io.Writer, opts Options) error {
	model := NewModel(controller, screen, opts)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}
