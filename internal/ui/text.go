package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

var timeNow = time.Now

func stripANSI(s string) string {
	return ansi.Strip(s)
}

// truncate cuts s to width display cells, keeping ANSI sequences intact.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// padRight fills s with spaces up to width display cells.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// wrapIndented word-wraps text and indents every line.
func wrapIndented(text string, width int, pad uint) string {
	if width <= int(pad)+1 {
		return text
	}
	return indent.String(wordwrap.String(text, width-int(pad)), pad)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(time.Local).Format("02.01.2006")
}

// formatMillis formats a ticket message timestamp.
func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).In(time.Local).Format("02.01.2006 15:04")
}

// formatRelative describes how long ago t happened in a compact form.
func formatRelative(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	now := timeNow()
	if t.After(now) {
		return formatDate(t)
	}
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "jetzt"
	case diff < time.Hour:
		return fmt.Sprintf("vor %dm", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("vor %dh", int(diff/time.Hour))
	case diff < 100*24*time.Hour:
		return fmt.Sprintf("vor %dd", int(diff/(24*time.Hour)))
	default:
		return formatDate(t)
	}
}

// visibleWindow returns the [start, end) slice of rows to draw so the cursor
// stays inside a viewport of height rows.
func visibleWindow(cursor, total, height int) (int, int) {
	if height <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > total {
		start = total - height
	}
	return start, start + height
}

func clampCursor(cursor, total int) int {
	if total <= 0 || cursor < 0 {
		return 0
	}
	if cursor >= total {
		return total - 1
	}
	return cursor
}
