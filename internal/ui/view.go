package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func (m *App) View() string {
	if !m.ready {
		return "Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < minContentWidth {
		contentWidth = minContentWidth
	}
	contentHeight := m.height - 4
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}

	var content string
	switch m.tab {
	case TabInventory:
		content = m.renderInventoryView(contentWidth, contentHeight)
	case TabTickets:
		content = m.renderTicketsView(contentWidth, contentHeight)
	case TabInspector:
		content = m.renderInspectorView(contentWidth, contentHeight)
	default:
		content = m.renderOrdersView(contentWidth, contentHeight)
	}
	pane := stylePane()
	if m.searching || m.inventoryView.Bulk != BulkNone || m.ticketView.Replying {
		pane = stylePaneFocused()
	}
	body := pane.Width(contentWidth).Height(contentHeight).Render(content)

	base := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderBottomBar())

	canvas := NewCanvas(m.width, m.height)
	canvas.DrawStringAt(0, 0, base)
	if overlay := m.renderActiveOverlay(); overlay != "" {
		canvas.Center(overlay, 1, 1)
	}
	if toast := m.renderToast(); toast != "" {
		canvas.BottomRight(toast, 1)
	}
	return canvas.Render()
}

// renderHeader shows the title, the tab bar and the headline counts.
func (m *App) renderHeader() string {
	title := "WAREFLOW"
	if m.version != "" {
		title = fmt.Sprintf("WAREFLOW v%s", m.version)
	}

	tabs := make([]string, 0, len(allTabs))
	for i, t := range allTabs {
		label := fmt.Sprintf("%d %s", i+1, t.Title())
		if t == m.tab {
			tabs = append(tabs, styleTabActive().Render(label))
		} else {
			tabs = append(tabs, styleTab().Render(label))
		}
	}
	left := styleAppHeader().Render(title) + " " + strings.Join(tabs, "")
	if m.loading {
		left += " " + m.spinner.View()
	}

	stats := m.Stats()
	parts := []string{fmt.Sprintf("%d Bestellungen", stats.Orders)}
	if stats.Late > 0 {
		parts = append(parts, fmt.Sprintf("%d überfällig", stats.Late))
	}
	if stats.LowStock+stats.OutOfStock > 0 {
		parts = append(parts, fmt.Sprintf("%d knapp", stats.LowStock+stats.OutOfStock))
	}
	if stats.OpenTickets > 0 {
		parts = append(parts, fmt.Sprintf("%d Tickets offen", stats.OpenTickets))
	}
	right := styleDim().Render(strings.Join(parts, " • "))

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		return left
	}
	return left + strings.Repeat(" ", spacing) + right
}

func (m *App) renderBottomBar() string {
	switch {
	case m.searching:
		return m.searchInput.View()
	case m.tab == TabInventory && m.inventoryView.Bulk != BulkNone:
		return m.renderBulkPrompt()
	default:
		return m.renderFooter()
	}
}

// renderActiveOverlay picks the topmost layer: help, a form, then the order
// detail with its confirmation.
func (m *App) renderActiveOverlay() string {
	if m.showHelp {
		return renderHelpOverlay(m.keys)
	}
	switch m.activeOverlay {
	case OverlayReceive:
		if m.receiveOverlay != nil {
			return m.receiveOverlay.View()
		}
	case OverlayItem:
		if m.itemOverlay != nil {
			return m.itemOverlay.View()
		}
	case OverlayTicket:
		if m.ticketOverlay != nil {
			return m.ticketOverlay.View()
		}
	}
	if m.tab != TabOrders {
		return ""
	}
	o, ok := m.detailOrder()
	if !ok {
		return ""
	}
	if m.orderView.Confirm != ConfirmNone {
		return m.renderConfirm(o, m.orderView.Confirm)
	}
	return m.renderOrderDetail(o)
}

// renderTable draws rows without outer borders. styleFn receives data row
// indices starting at zero and table.HeaderRow for the header.
func renderTable(headers []string, rows [][]string, width int, styleFn func(row, col int) lipgloss.Style) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderHeader(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleSectionHeader().PaddingRight(1)
			}
			return styleFn(row, col).PaddingRight(1)
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.String()
}

// rowStyle highlights the cursor row.
func rowStyle(selected bool) lipgloss.Style {
	if selected {
		return styleSelected()
	}
	return styleText()
}

func checkMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "·"
}
