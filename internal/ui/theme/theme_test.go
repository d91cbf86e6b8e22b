package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPalettesRegistered(t *testing.T) {
	available := Available()
	want := []string{"harbor", "paper", "signal"}
	if len(available) != len(want) {
		t.Fatalf("Available() = %v, want %v", available, want)
	}
	for i, name := range want {
		if available[i] != name {
			t.Errorf("Available()[%d] = %q, want %q", i, available[i], name)
		}
	}
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("harbor")

	if !SetTheme("paper") {
		t.Fatal("SetTheme(paper) returned false")
	}
	if CurrentName() != "paper" {
		t.Errorf("CurrentName() = %q", CurrentName())
	}
	if SetTheme("neon") {
		t.Error("SetTheme accepted an unknown theme")
	}
	if CurrentName() != "paper" {
		t.Error("unknown theme must not change the selection")
	}
}

func TestCycleThemeWraps(t *testing.T) {
	defer SetTheme("harbor")

	SetTheme("signal")
	if got := CycleTheme(); got != "harbor" {
		t.Errorf("CycleTheme() after signal = %q, want harbor", got)
	}
	if got := CycleTheme(); got != "paper" {
		t.Errorf("CycleTheme() = %q, want paper", got)
	}
}

func TestPaletteColorsNotEmpty(t *testing.T) {
	defer SetTheme("harbor")

	for _, name := range Available() {
		SetTheme(name)
		th := Current()
		colors := map[string]lipgloss.AdaptiveColor{
			"Primary":             th.Primary(),
			"Secondary":           th.Secondary(),
			"Accent":              th.Accent(),
			"Error":               th.Error(),
			"Warning":             th.Warning(),
			"Success":             th.Success(),
			"Info":                th.Info(),
			"Text":                th.Text(),
			"TextMuted":           th.TextMuted(),
			"TextEmphasized":      th.TextEmphasized(),
			"Background":          th.Background(),
			"BackgroundSecondary": th.BackgroundSecondary(),
			"BorderNormal":        th.BorderNormal(),
			"BorderFocused":       th.BorderFocused(),
		}
		for colorName, c := range colors {
			if c.Light == "" || c.Dark == "" {
				t.Errorf("theme %q: %s has an empty variant", name, colorName)
			}
		}
	}
}

func TestBackgroundANSI(t *testing.T) {
	seq := BackgroundANSI(Harbor)
	if !strings.HasPrefix(seq, "\x1b[48;2;") || !strings.HasSuffix(seq, "m") {
		t.Errorf("BackgroundANSI() = %q, want a truecolor background sequence", seq)
	}
	if got := BackgroundANSI(Palette{}); got != "" {
		t.Errorf("BackgroundANSI(empty) = %q, want empty", got)
	}
}
