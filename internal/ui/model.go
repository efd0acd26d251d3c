package ui

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"ytkit/internal/batch"
	"ytkit/internal/progress"
	"ytkit/internal/util/format"
)

// RunFunc executes the batch, reporting progress to rep.
type RunFunc func(ctx context.Context, rep progress.Reporter) (batch.Summary, error)

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	jobOrder []string
	jobs     map[string]*jobState
	finished bool

	// UI
	width, height int
	styles        Styles

	// Internal event channel used by reporter to feed tea messages
	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, urls []string) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	jobs := make(map[string]*jobState, len(urls))
	order := make([]string, 0, len(urls))
	for i, u := range urls {
		id := progress.JobID(i)
		js := newJobState(id, u, sty)
		jobs[id] = &js
		order = append(order, id)
	}

	return Model{
		ctx:      c,
		cancel:   cancel,
		jobs:     jobs,
		jobOrder: order,
		styles:   sty,
		eventCh:  make(chan tea.Msg, 256),
	}
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		cmds = append(cmds, m.jobs[id].spinner.Tick)
	}
	cmds = append(cmds, m.listenEventsCmd())
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case jobUpdateMsg:
		m.applyUpdate(msg.U)
		return m, m.listenEventsCmd()
	case jobResultMsg:
		m.applyResult(msg.R)
		return m, m.listenEventsCmd()
	case batchDoneMsg:
		m.finished = true
		return m, tea.Quit
	}

	// Spinner ticks
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		var c tea.Cmd
		js.spinner, c = js.spinner.Update(msg)
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) applyUpdate(u progress.Update) {
	js, ok := m.jobs[u.JobID]
	if !ok || js.done {
		return
	}
	js.stage = u.Stage
	js.percent = u.Percent
	if u.Filename != "" {
		js.filename = u.Filename
	}
	if u.Speed != nil {
		js.speed = *u.Speed
	}
	switch {
	case u.Stage == progress.StageDownloading && js.filename != "":
		js.status = "Downloading: " + filepath.Base(js.filename)
		if js.speed != "" {
			js.status += " at " + js.speed
		}
		if u.ETA != nil {
			js.status += fmt.Sprintf(" (ETA %s)", *u.ETA)
		}
	case u.Message != "":
		js.status = u.Message
	}
}

func (m Model) applyResult(r progress.Result) {
	js, ok := m.jobs[r.JobID]
	if !ok {
		return
	}
	js.done = true
	js.err = r.Err
	if r.Err != nil {
		js.stage = progress.StageError
		js.status = r.Err.Error()
		js.percent = -1
		return
	}
	js.stage = progress.StageCompleted
	js.percent = 100
	js.outputPath = r.OutputPath
	js.bytes = r.Bytes
	if r.OutputPath != "" {
		js.status = fmt.Sprintf("Saved: %s (%s)", filepath.Base(r.OutputPath), format.HumanizeBytes(r.Bytes))
	} else {
		js.status = "Completed"
	}
}

func (m Model) View() string {
	summary := m.viewSummary()
	if summary != "" {
		return m.viewHeader() + "\n\n" + m.viewJobs() + "\n" + summary
	}
	return m.viewHeader() + "\n\n" + m.viewJobs()
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case msg := <-m.eventCh:
			return msg
		}
	}
}

// Reporter returns a progress.Reporter feeding this model.
func (m Model) Reporter() progress.Reporter {
	return teaReporter{ctx: m.ctx, ch: m.eventCh}
}

type teaReporter struct {
	ctx context.Context
	ch  chan tea.Msg
}

func (r teaReporter) Update(u progress.Update) {
	// Block on completion messages to ensure they're delivered
	if u.Stage == progress.StageCompleted || u.Stage == progress.StageError {
		r.send(jobUpdateMsg{U: u})
		return
	}
	select {
	case r.ch <- jobUpdateMsg{U: u}:
	default:
	}
}

func (r teaReporter) Result(res progress.Result) {
	r.send(jobResultMsg{R: res})
}

// send blocks until the model takes msg or the UI has gone away.
func (r teaReporter) send(msg tea.Msg) {
	select {
	case r.ch <- msg:
	case <-r.ctx.Done():
	}
}
