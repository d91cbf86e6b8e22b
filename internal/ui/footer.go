package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// footerHint defines a key hint for the footer bar.
// These are shorter than the KeyMap help text.
type footerHint struct {
	key  string
	desc string
}

// Global footer hints (always shown)
var globalFooterHints = []footerHint{
	{"⇥", "Ansicht"},
	{"/", "Suche"},
	{"q", "Beenden"},
	{"?", "Hilfe"},
}

var ordersFooterHints = []footerHint{
	{"↑↓", "Navigieren"},
	{"⏎", "Detail"},
	{"f", "Filter"},
	{"a", "Archiv"},
}

var detailFooterHints = []footerHint{
	{"w", "Eingang"},
	{"v", "Vorerfassen"},
	{"x", "Storno"},
	{"A", "Archivieren"},
	{"t", "Tickets"},
	{"Esc", "Zurück"},
}

var confirmFooterHints = []footerHint{
	{"y", "Bestätigen"},
	{"n", "Abbrechen"},
}

var inventoryFooterHints = []footerHint{
	{"↑↓", "Navigieren"},
	{"[n]+/-", "Bestand"},
	{"b/B", "Menge"},
	{"n", "Neu"},
	{"e", "Bearbeiten"},
}

var ticketsFooterHints = []footerHint{
	{"↑↓", "Ticket"},
	{"n", "Neu"},
	{"m", "Antworten"},
	{"x", "Schließen"},
	{"o", "Öffnen"},
}

var replyFooterHints = []footerHint{
	{"^S", "Senden"},
	{"^D", "Senden & schließen"},
	{"Esc", "Zurück"},
}

var inspectorFooterHints = []footerHint{
	{"↑↓", "Navigieren"},
	{"c", "ID kopieren"},
}

// contextHints returns the hints for whatever currently owns the keyboard.
func (m *App) contextHints() []footerHint {
	switch m.tab {
	case TabOrders:
		switch {
		case m.orderView.Confirm != ConfirmNone:
			return confirmFooterHints
		case m.orderView.DetailID != "":
			return detailFooterHints
		}
		return ordersFooterHints
	case TabInventory:
		return inventoryFooterHints
	case TabTickets:
		if m.ticketView.Replying {
			return replyFooterHints
		}
		return ticketsFooterHints
	case TabInspector:
		return inspectorFooterHints
	}
	return nil
}

// renderFooter renders the footer bar with pill-style key hints.
func (m *App) renderFooter() string {
	context := m.contextHints()
	hints := append(append([]footerHint{}, context...), globalFooterHints...)

	status := styleDim().Render(m.footerStatus())
	statusWidth := lipgloss.Width(status)
	availableWidth := m.width - statusWidth - 4

	hints = trimHintsToFit(hints, len(globalFooterHints), availableWidth)

	left := renderHints(hints)
	spacing := m.width - lipgloss.Width(left) - statusWidth
	if spacing < 2 {
		spacing = 2
	}
	return left + strings.Repeat(" ", spacing) + status
}

// footerStatus is the right-aligned text: the pending prefix or the load time.
func (m *App) footerStatus() string {
	if m.tab == TabInventory && m.inventoryView.Count != "" {
		return "Menge: " + m.inventoryView.Count
	}
	if m.snap.LoadedAt.IsZero() {
		return m.version
	}
	return "Stand " + m.snap.LoadedAt.Format("15:04:05")
}

// keyPill renders a single key hint as a pill with description.
func keyPill(key, desc string) string {
	return styleKeyPill().Render(" "+key+" ") + " " + styleKeyDesc().Render(desc)
}

// trimHintsToFit removes context hints first, then globals from the end.
func trimHintsToFit(hints []footerHint, globalCount, availableWidth int) []footerHint {
	for len(hints) > 0 {
		if lipgloss.Width(renderHints(hints)) <= availableWidth {
			break
		}
		if len(hints) > globalCount {
			hints = hints[1:]
		} else {
			hints = hints[:len(hints)-1]
		}
	}
	return hints
}

func renderHints(hints []footerHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return strings.Join(parts, "  ")
}
