package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMapBindings(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"UpArrow", tea.KeyMsg{Type: tea.KeyUp}, keys.Up},
		{"UpVim", runeKey("k"), keys.Up},
		{"DownVim", runeKey("j"), keys.Down},
		{"Tab", tea.KeyMsg{Type: tea.KeyTab}, keys.NextTab},
		{"ShiftTab", tea.KeyMsg{Type: tea.KeyShiftTab}, keys.PrevTab},
		{"Refresh", tea.KeyMsg{Type: tea.KeyCtrlR}, keys.Refresh},
		{"QuitCtrlC", tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit},
		{"Increase", runeKey("+"), keys.Increase},
		{"IncreaseUnshifted", runeKey("="), keys.Increase},
		{"Decrease", runeKey("-"), keys.Decrease},
		{"BulkRemove", runeKey("B"), keys.BulkRemove},
		{"ArchiveIsUppercase", runeKey("A"), keys.Archive},
		{"ConfirmEnter", tea.KeyMsg{Type: tea.KeyEnter}, keys.Confirm},
		{"SendClose", tea.KeyMsg{Type: tea.KeyCtrlD}, keys.SendClose},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Fatalf("%q should match %v", tt.msg.String(), tt.binding.Keys())
			}
		})
	}
}

func TestArchiveToggleAndArchiveActionDiffer(t *testing.T) {
	keys := DefaultKeyMap()
	if key.Matches(runeKey("a"), keys.Archive) {
		t.Fatal("lowercase a toggles the archived list and must not archive")
	}
	if key.Matches(runeKey("A"), keys.Archived) {
		t.Fatal("uppercase A archives and must not toggle the list")
	}
}

func TestRelatedBindingsShareHelp(t *testing.T) {
	keys := DefaultKeyMap()
	pairs := [][2]key.Binding{
		{keys.Up, keys.Down},
		{keys.Increase, keys.Decrease},
		{keys.Tab1, keys.Tab4},
	}
	for _, p := range pairs {
		if p[0].Help() != p[1].Help() {
			t.Errorf("expected shared help, got %v and %v", p[0].Help(), p[1].Help())
		}
	}
}
