package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wareflow/internal/domain"
	"wareflow/internal/inventory"
	"wareflow/internal/orders"
)

func stockTone(s domain.StockStatus) orders.Tone {
	switch s {
	case domain.StockStatusOutOfStock:
		return orders.ToneDanger
	case domain.StockStatusLowStock:
		return orders.ToneWarning
	default:
		return orders.ToneSuccess
	}
}

func (m *App) renderInventoryView(width, height int) string {
	summary := inventory.Summarize(m.snap.Items)
	parts := []string{
		fmt.Sprintf("%d Artikel", summary.Total),
		styleBadge(orders.ToneSuccess).Render(fmt.Sprintf("%d auf Lager", summary.InStock)),
		styleBadge(orders.ToneWarning).Render(fmt.Sprintf("%d knapp", summary.LowStock)),
		styleBadge(orders.ToneDanger).Render(fmt.Sprintf("%d leer", summary.OutOfStock)),
	}
	if m.inventoryView.Search != "" {
		parts = append(parts, styleDim().Render("Suche: ")+styleID().Render(m.inventoryView.Search))
	}
	top := strings.Join(parts, styleDim().Render(" · "))

	list := m.visibleItems()
	if len(list) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, top, "", styleDim().Render("Keine Artikel gefunden."))
	}

	cursor := clampCursor(m.inventoryView.Cursor, len(list))
	start, end := visibleWindow(cursor, len(list), height-3)
	tones := make([]orders.Tone, 0, end-start)
	rows := make([][]string, 0, end-start)
	for _, item := range list[start:end] {
		status := item.Status()
		tones = append(tones, stockTone(status))
		rows = append(rows, []string{
			item.SKU,
			truncate(item.Name, 28),
			item.System,
			item.WarehouseLocation,
			fmt.Sprintf("%d", item.StockLevel),
			fmt.Sprintf("%d", item.MinStock),
			string(status),
		})
	}
	tbl := renderTable(
		[]string{"SKU", "Artikel", "System", "Lagerort", "Bestand", "Min", "Status"},
		rows, width,
		func(row, col int) lipgloss.Style {
			selected := start+row == cursor
			switch {
			case selected:
				return styleSelected()
			case col == 0:
				return styleID()
			case col == 6 && row < len(tones):
				return styleBadge(tones[row])
			}
			return styleText()
		},
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, "", tbl)
}

// renderBulkPrompt replaces the footer while a bulk quantity is typed.
func (m *App) renderBulkPrompt() string {
	verb := "hinzufügen"
	if m.inventoryView.Bulk == BulkRemove {
		verb = "entnehmen"
	}
	sku := ""
	if item, ok := m.currentItem(); ok {
		sku = item.SKU
	}
	label := styleField().Render(fmt.Sprintf("Menge %s", verb))
	return label + styleID().Render(sku) + " " + m.bulkInput.View() + "  " +
		hintLine(footerHint{"⏎", "Buchen"}, footerHint{"Esc", "Abbrechen"})
}
