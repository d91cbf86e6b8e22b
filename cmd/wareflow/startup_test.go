package main

import (
	"strings"
	"testing"

	"wareflow/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestStagePercentIncreasesToFull(t *testing.T) {
	stages := []ui.StartupStage{
		ui.StartupStageInit,
		ui.StartupStageOpeningStore,
		ui.StartupStageSeeding,
		ui.StartupStageLoadingData,
		ui.StartupStageReady,
	}
	prev := -1.0
	for _, stage := range stages {
		p := stagePercent(stage)
		if p <= prev {
			t.Fatalf("stage %v percent %.2f does not increase past %.2f", stage, p, prev)
		}
		prev = p
	}
	if prev != 1 {
		t.Fatalf("ready should fill the bar, got %.2f", prev)
	}
}

func TestStageToString(t *testing.T) {
	if got := stageToString(ui.StartupStageOpeningStore); got != "Opening store" {
		t.Fatalf("stageToString = %q", got)
	}
	if got := stageToString(ui.StartupStage(99)); got != "Loading" {
		t.Fatalf("unknown stages fall back to Loading, got %q", got)
	}
}

func TestStartupModelView(t *testing.T) {
	m := newStartupModel()
	if m.View() != "" {
		t.Fatal("view should stay empty until the window size is known")
	}

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(updateMsg{stage: "Opening store", detail: "Opening sqlite store...", percent: 0.25})

	view := ansi.Strip(m.View())
	for _, want := range []string{"Opening sqlite store...", "(Opening store)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
	if m.rendered == 0 {
		t.Fatal("expected rendered height to be recorded")
	}

	_, cmd := m.Update(updateMsg{done: true})
	if cmd == nil || !m.done {
		t.Fatal("done update should quit the startup program")
	}
}
