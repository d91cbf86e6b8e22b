package main

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"wareflow/internal/ui"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStartupSpinnerRendersStage(t *testing.T) {
	out := &syncBuffer{}
	sp := newCustomStartupSpinner(out, 0, 5*time.Millisecond)
	sp.Stage(ui.StartupStageLoadingData, "Loading orders")

	deadline := time.Now().Add(time.Second)
	for !strings.Contains(out.String(), "Counting the shelves... - Loading orders") {
		if time.Now().After(deadline) {
			t.Fatalf("spinner never rendered the stage, got %q", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}

	sp.Stop()
	if !strings.HasSuffix(out.String(), "\r\033[2K") {
		t.Fatalf("expected stop to clear the line, got %q", out.String())
	}
}

func TestStartupSpinnerStaysHiddenDuringDelay(t *testing.T) {
	out := &syncBuffer{}
	sp := newCustomStartupSpinner(out, time.Hour, time.Millisecond)
	sp.Stage(ui.StartupStageOpeningStore, "")
	time.Sleep(20 * time.Millisecond)
	sp.Stop()

	if got := out.String(); got != "" {
		t.Fatalf("expected no output before the delay elapsed, got %q", got)
	}
}

func TestStartupSpinnerStopIsIdempotent(t *testing.T) {
	sp := newStartupSpinner(nil, 0)
	sp.Stop()
	sp.Stop()
	sp.Stage(ui.StartupStageReady, "ignored after stop")

	var nilSpinner *startupSpinner
	nilSpinner.Stage(ui.StartupStageReady, "")
	nilSpinner.Stop()
}

func TestFormatStageMessage(t *testing.T) {
	tests := []struct {
		stage  ui.StartupStage
		detail string
		want   string
	}{
		{ui.StartupStageSeeding, "", "Stacking demo pallets..."},
		{ui.StartupStageOpeningStore, "  sqlite  ", "Unlocking the loading dock... - sqlite"},
		{ui.StartupStageInit, "Reading configuration...", "Checking delivery notes... - Reading configuration..."},
	}
	for _, tt := range tests {
		if got := formatStageMessage(tt.stage, tt.detail); got != tt.want {
			t.Errorf("formatStageMessage(%v, %q) = %q, want %q", tt.stage, tt.detail, got, tt.want)
		}
	}
}
