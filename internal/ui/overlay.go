package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// OverlayType identifies which form overlay owns the keyboard.
type OverlayType int

const (
	OverlayNone OverlayType = iota
	OverlayReceive
	OverlayItem
	OverlayTicket
)

// Standard overlay content widths (before padding/border).
const (
	OverlayWidthStandard = 48
	OverlayWidthWide     = 64

	// overlayHPadding matches the Padding(1, 2) in styleOverlay.
	overlayHPadding = 2
)

func newFormInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 120
	ti.Width = width
	return ti
}

func newFormTextarea(placeholder string, width, lines int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetWidth(width)
	ta.SetHeight(lines)
	return ta
}

// formRow renders a labelled field, marking the focused one.
func formRow(label, value string, focused bool) string {
	marker := "  "
	if focused {
		marker = styleID().Render("› ")
	}
	return marker + styleField().Render(label) + value
}

// renderOverlayBox wraps lines in the overlay frame at the given content width.
func renderOverlayBox(title string, lines []string, width int, danger bool) string {
	style := styleOverlay()
	if danger {
		style = styleDangerOverlay()
	}
	body := []string{
		styleOverlayTitle().Render(title),
		styleDivider().Render(strings.Repeat("─", width-2*overlayHPadding)),
		"",
	}
	body = append(body, lines...)
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

// hintLine renders a row of key hints for an overlay footer.
func hintLine(hints ...footerHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return strings.Join(parts, "  ")
}
