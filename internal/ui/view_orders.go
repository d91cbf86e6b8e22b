package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wareflow/internal/orders"
)

func (m *App) renderOrdersView(width, height int) string {
	counts := m.orderCounts()
	chips := make([]string, 0, len(orders.Filters)+2)
	for _, f := range orders.Filters {
		label := fmt.Sprintf("%s %d", f.Label(), counts.For(f))
		chips = append(chips, styleChip(f == m.orderView.Filter).Render(label))
	}
	archived := "[ ] Archivierte"
	if m.orderView.ShowArchived {
		archived = "[x] Archivierte"
	}
	chips = append(chips, styleDim().Render(archived))
	if m.orderView.Search != "" {
		chips = append(chips, styleDim().Render("Suche: ")+styleID().Render(m.orderView.Search))
	}
	top := strings.Join(chips, " ")

	list := m.visibleOrders()
	if len(list) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, top, "", styleDim().Render("Keine Bestellungen für diese Auswahl."))
	}

	cursor := clampCursor(m.orderView.Cursor, len(list))
	start, end := visibleWindow(cursor, len(list), height-3)
	today := m.today()
	rows := make([][]string, 0, end-start)
	for _, o := range list[start:end] {
		due := formatDate(o.ExpectedDeliveryDate)
		if orders.IsLate(o, today) {
			due = styleBadge(orders.ToneDanger).Render(due + " !")
		}
		rows = append(rows, []string{
			o.ID,
			truncate(o.Supplier, 24),
			renderBadges(orders.PrimaryBadges(o, m.index.Resolve(o))),
			fmt.Sprintf("%d/%d", o.TotalReceived(), o.TotalOrdered()),
			due,
		})
	}
	tbl := renderTable(
		[]string{"ID", "Lieferant", "Status", "Menge", "Termin"},
		rows, width,
		func(row, col int) lipgloss.Style {
			selected := start+row == cursor
			if col == 0 && !selected {
				return styleID()
			}
			return rowStyle(selected)
		},
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, "", tbl)
}
