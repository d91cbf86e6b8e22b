package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wareflow/internal/domain"
	"wareflow/internal/orders"
)

const inspectorDetailLines = 7

// renderInspectorView lists every order with the raw engine outputs next to
// each other, then compares primary and diagnostic badges for the cursor row.
func (m *App) renderInspectorView(width, height int) string {
	list := m.inspectorOrders()
	if len(list) == 0 {
		return styleDim().Render("Keine Bestellungen.")
	}
	today := m.today()
	cursor := clampCursor(m.inspector.Cursor, len(list))
	start, end := visibleWindow(cursor, len(list), height-inspectorDetailLines-2)

	rows := make([][]string, 0, end-start)
	for _, o := range list[start:end] {
		link := m.index.Resolve(o)
		rows = append(rows, []string{
			o.ID,
			string(o.Status),
			string(orders.VisualStatus(o)),
			checkMark(orders.IsOpen(o)),
			checkMark(orders.IsLate(o, today)),
			checkMark(orders.IsComplete(o)),
			checkMark(o.IsArchived),
			link.State.String(),
		})
	}
	tbl := renderTable(
		[]string{"ID", "Gespeichert", "Visuell", "Offen", "Spät", "Fertig", "Archiv", "Beleg"},
		rows, width,
		func(row, col int) lipgloss.Style {
			return rowStyle(start+row == cursor)
		},
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		tbl,
		styleDivider().Render(strings.Repeat("─", width)),
		m.renderInspectorDetail(list[cursor]),
	)
}

func (m *App) renderInspectorDetail(o domain.PurchaseOrder) string {
	link := m.index.Resolve(o)
	primary := orders.PrimaryBadges(o, link)
	diagnostic := orders.DiagnosticBadges(o, link)

	shown := make(map[string]bool, len(primary))
	for _, label := range orders.Labels(primary) {
		shown[label] = true
	}
	extra := make([]string, 0)
	for _, label := range orders.Labels(diagnostic) {
		if !shown[label] {
			extra = append(extra, label)
		}
	}
	extraText := "-"
	if len(extra) > 0 {
		extraText = strings.Join(extra, ", ")
	}

	lines := []string{
		styleSectionHeader().Render(o.ID) + styleDim().Render(" · "+o.Supplier),
		formRow("Primär", renderBadges(primary), false),
		formRow("Diagnose", renderBadges(diagnostic), false),
		formRow("Nur Diagnose", styleDim().Render(extraText), false),
		formRow("Fortschritt", fmt.Sprintf("%.0f%% (%d/%d)", orders.Progress(o)*100, o.TotalReceived(), o.TotalOrdered()), false),
		formRow("Aktionen", allowedActions(o), false),
	}
	return strings.Join(lines, "\n")
}

func allowedActions(o domain.PurchaseOrder) string {
	all := []orders.Action{orders.ActionReceive, orders.ActionQuickReceipt, orders.ActionCancel, orders.ActionArchive}
	allowed := make([]string, 0, len(all))
	for _, a := range all {
		if orders.Allowed(o, a) {
			allowed = append(allowed, string(a))
		}
	}
	if len(allowed) == 0 {
		return styleDim().Render("keine")
	}
	return strings.Join(allowed, ", ")
}
