package main

import (
	"io"
	"strings"
	"sync"
	"time"

	"wareflow/internal/ui"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Dark variant of the harbor palette.
var (
	primaryColor   = lipgloss.Color("#4F9BD9")
	secondaryColor = lipgloss.Color("#F2B134")
	dimColor       = lipgloss.Color("#8396A8")
	textColor      = lipgloss.Color("#E3EAF2")
	successColor   = lipgloss.Color("#7BCB80")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(textColor)

	stageStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	containerStyle = lipgloss.NewStyle().
			Padding(1, 2)
)

const logo = `
   █ █ █ ▄▀▄ █▀▄ █▀▀ █▀▀ █   ▄▀▄ █ █ █
   ▀▄▀▄▀ █▀█ █▀▄ ██▄ █▀  █▄▄ ▀▄▀ ▀▄▀▄▀
`

type startupModel struct {
	spinner  spinner.Model
	progress progress.Model

	stage   string
	detail  string
	percent float64

	ready bool
	done  bool

	// rendered is the height of the last frame.
	rendered int

	updates chan startupUpdate
}

type startupUpdate struct {
	stage   string
	detail  string
	percent float64
	done    bool
}

type updateMsg startupUpdate

func newStartupModel() *startupModel {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithGradient(string(primaryColor), string(successColor)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &startupModel{
		spinner:  s,
		progress: p,
		stage:    "Starting",
		updates:  make(chan startupUpdate, 16),
	}
}

func (m *startupModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForUpdate())
}

func (m *startupModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return updateMsg(<-m.updates)
	}
}

func (m *startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		return m, nil

	case updateMsg:
		if msg.done {
			m.done = true
			return m, tea.Quit
		}
		m.stage = msg.stage
		m.detail = msg.detail
		m.percent = msg.percent
		return m, tea.Batch(m.progress.SetPercent(m.percent), m.waitForUpdate())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		model, cmd := m.progress.Update(msg)
		m.progress = model.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *startupModel) View() string {
	if !m.ready {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(m.progress.View())
	b.WriteString("\n")
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(statusStyle.Render(m.detail))
	if m.stage != "" {
		b.WriteString(" ")
		b.WriteString(stageStyle.Render("(" + m.stage + ")"))
	}
	out := containerStyle.Render(b.String())
	m.rendered = lipgloss.Height(out)
	return out
}

func (m *startupModel) sendUpdate(update startupUpdate) {
	select {
	case m.updates <- update:
	default:
	}
}

// StartupDisplay shows the logo, a stage progress bar and a spinner inline
// while the store opens and the first snapshot loads.
type StartupDisplay struct {
	out     io.Writer
	program *tea.Program
	model   *startupModel
	done    chan struct{}
	mu      sync.Mutex
	stopped bool
}

// NewStartupDisplay starts the display on w.
func NewStartupDisplay(w io.Writer) *StartupDisplay {
	model := newStartupModel()
	program := tea.NewProgram(
		model,
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	d := &StartupDisplay{
		out:     w,
		program: program,
		model:   model,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(d.done)
	}()
	time.Sleep(10 * time.Millisecond)
	return d
}

// Stage implements ui.StartupReporter.
func (d *StartupDisplay) Stage(stage ui.StartupStage, detail string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.model.sendUpdate(startupUpdate{
		stage:   stageToString(stage),
		detail:  detail,
		percent: stagePercent(stage),
	})
}

// Stop ends the display and clears what it drew.
func (d *StartupDisplay) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	d.model.sendUpdate(startupUpdate{done: true})
	select {
	case <-d.done:
		clearLoadingScreen(d.out, d.model.rendered)
	case <-time.After(500 * time.Millisecond):
		d.program.Kill()
	}
}

func stageToString(stage ui.StartupStage) string {
	switch stage {
	case ui.StartupStageInit:
		return "Initializing"
	case ui.StartupStageOpeningStore:
		return "Opening store"
	case ui.StartupStageSeeding:
		return "Seeding"
	case ui.StartupStageLoadingData:
		return "Loading data"
	case ui.StartupStageReady:
		return "Ready"
	default:
		return "Loading"
	}
}

// stagePercent maps a stage onto the progress bar; Ready fills it.
func stagePercent(stage ui.StartupStage) float64 {
	if stage <= ui.StartupStageInit {
		return 0.05
	}
	if stage >= ui.StartupStageReady {
		return 1
	}
	return float64(stage) / float64(ui.StartupStageReady)
}
