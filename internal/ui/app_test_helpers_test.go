package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"wareflow/internal/store"
	"wareflow/internal/warehouse"
)

var testNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local)

// newTestApp builds an app over a seeded in-memory store with a frozen clock.
func newTestApp(t *testing.T) (*App, *store.Memory) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	prevNow, prevClipboard, prevSave := timeNow, clipboardWriteAll, saveTheme
	timeNow = func() time.Time { return testNow }
	clipboardWriteAll = func(string) error { return nil }
	saveTheme = func(string) error { return nil }
	t.Cleanup(func() {
		timeNow, clipboardWriteAll, saveTheme = prevNow, prevClipboard, prevSave
	})

	mem := store.NewMemory()
	if _, err := store.SeedDemo(context.Background(), mem, testNow); err != nil {
		t.Fatalf("seed: %v", err)
	}
	seq := 0
	svc := warehouse.New(mem,
		warehouse.WithClock(func() time.Time { return testNow }),
		warehouse.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id%06d", seq)
		}),
	)
	app, err := NewApp(Config{Service: svc, OutputFormat: "plain", Version: "test"})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 42})
	return app, mem
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys one at a time and returns the last command.
func press(m *App, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

// typeText feeds every rune as its own key press.
func typeText(m *App, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// drain executes cmd and feeds the resulting messages back into the app until
// nothing is left. Timers never fire within the timeout and are dropped.
func drain(t *testing.T, m *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("command chain did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runWithTimeout(c, 50*time.Millisecond)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case toastTickMsg, refreshTickMsg, spinner.TickMsg, tea.QuitMsg:
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func runWithTimeout(c tea.Cmd, d time.Duration) (tea.Msg, bool) {
	done := make(chan tea.Msg, 1)
	go func() { done <- c() }()
	select {
	case msg := <-done:
		return msg, true
	case <-time.After(d):
		return nil, false
	}
}

func viewText(m *App) string {
	return stripANSI(m.View())
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q:\n%s", needle, haystack)
	}
}
