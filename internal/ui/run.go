package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"ytkit/internal/batch"
)

type outcome struct {
	sum batch.Summary
	err error
}

// Run shows the batch in a full-screen view while run processes urls, and
// returns the batch outcome once both have finished. Quitting the view
// cancels the batch.
func Run(ctx context.Context, urls []string, run RunFunc, opts ...tea.ProgramOption) (batch.Summary, error) {
	m := NewModel(ctx, urls)
	prog := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)

	done := make(chan outcome, 1)
	go func() {
		sum, err := run(m.ctx, m.Reporter())
		done <- outcome{sum: sum, err: err}
		prog.Send(batchDoneMsg{})
	}()

	_, err := prog.Run()

	// The batch may still be unwinding after an early quit.
	m.cancel()
	out := <-done

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return out.sum, err
	}
	return out.sum, out.err
}
