package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"wareflow/internal/ui"

	"github.com/charmbracelet/x/ansi"
)

func TestPrintExitSummary(t *testing.T) {
	base := ui.Stats{Orders: 6, Open: 3, Late: 1, Completed: 1, Items: 7, LowStock: 2, OutOfStock: 1, OpenTickets: 1}

	tests := []struct {
		name      string
		summary   ExitSummary
		wantLines []string
		wantNot   []string
	}{
		{
			name: "unchanged session with version",
			summary: ExitSummary{
				Version:     "0.4.0",
				EndStats:    base,
				SessionInfo: ui.SessionInfo{StartTime: time.Now().Add(-5 * time.Minute), InitialStats: base},
			},
			wantLines: []string{
				"Wareflow v0.4.0 • 5m Sitzung",
				"6 Bestellungen: 3 offen, 1 überfällig, 1 erledigt",
				"7 Artikel: 2 knapp, 1 leer • 1 Tickets offen",
			},
			wantNot: []string{"(+", "(-"},
		},
		{
			name: "goods received during the session",
			summary: ExitSummary{
				Version: "1.0.0",
				EndStats: ui.Stats{
					Orders: 6, Open: 2, Late: 1, Completed: 2,
					Items: 7, LowStock: 1, OutOfStock: 1, OpenTickets: 2,
				},
				SessionInfo: ui.SessionInfo{StartTime: time.Now().Add(-30 * time.Second), InitialStats: base},
			},
			wantLines: []string{
				"6 Bestellungen: 2 offen (-1), 1 überfällig, 2 erledigt (+1)",
				"7 Artikel: 1 knapp (-1), 1 leer • 2 Tickets offen (+1)",
			},
		},
		{
			name: "empty store",
			summary: ExitSummary{
				SessionInfo: ui.SessionInfo{StartTime: time.Now()},
			},
			wantLines: []string{"0 Bestellungen", "0 Artikel • 0 Tickets offen"},
			wantNot:   []string{" v", "offen,"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printExitSummary(&buf, tt.summary)
			out := ansi.Strip(buf.String())

			for _, want := range tt.wantLines {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.wantNot {
				if strings.Contains(out, unwanted) {
					t.Errorf("did not expect %q in output:\n%s", unwanted, out)
				}
			}
			if lines := strings.Count(out, "\n"); lines != 3 {
				t.Errorf("expected 3 lines, got %d", lines)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1m"},
		{90 * time.Second, "1m 30s"},
		{time.Hour, "1h"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	if got := formatDelta(3); got != "(+3)" {
		t.Errorf("formatDelta(3) = %q", got)
	}
	if got := formatDelta(-2); got != "(-2)" {
		t.Errorf("formatDelta(-2) = %q", got)
	}
}

func TestClearLoadingScreen(t *testing.T) {
	var buf bytes.Buffer
	clearLoadingScreen(&buf, 3)
	if got := buf.String(); got != "\033[A\033[A\033[A\033[J" {
		t.Fatalf("unexpected escape sequence %q", got)
	}
}
