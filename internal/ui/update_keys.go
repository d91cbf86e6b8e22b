package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"wareflow/internal/domain"
	"wareflow/internal/inventory"
	"wareflow/internal/orders"
)

var errActionUnavailable = errors.New("aktion für diese bestellung nicht verfügbar")

// handleKey routes a key press to whatever owns the keyboard: help, an
// overlay, the search input, the bulk input, the reply box, then the tab.
func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}
	if m.activeOverlay != OverlayNone {
		return m, m.updateOverlay(msg)
	}
	if m.searching {
		return m, m.handleSearchKey(msg)
	}
	if m.tab == TabInventory && m.inventoryView.Bulk != BulkNone {
		return m, m.handleBulkKey(msg)
	}
	if m.tab == TabTickets && m.ticketView.Replying {
		return m, m.handleReplyKey(msg)
	}

	// Digits on the inventory tab build the quantity prefix.
	if m.tab == TabInventory && msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9' {
		m.inventoryView = m.inventoryView.AppendDigit(msg.Runes[0])
		return m, nil
	}
	// An open confirmation swallows everything but its answer.
	if m.tab == TabOrders && m.orderView.Confirm != ConfirmNone {
		return m, m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		return m, m.cycleTheme()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload()
	case key.Matches(msg, m.keys.NextTab):
		m.tab = m.tab.Next(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = m.tab.Next(-1)
		return m, nil
	case key.Matches(msg, m.keys.Tab1):
		m.tab = TabOrders
		return m, nil
	case key.Matches(msg, m.keys.Tab2):
		m.tab = TabInventory
		return m, nil
	case key.Matches(msg, m.keys.Tab3):
		m.tab = TabTickets
		return m, nil
	case key.Matches(msg, m.keys.Tab4):
		m.tab = TabInspector
		return m, nil
	case key.Matches(msg, m.keys.Search) && m.searchAvailable():
		return m, m.startSearch()
	}

	switch m.tab {
	case TabOrders:
		if m.orderView.DetailID != "" {
			return m, m.handleDetailKey(msg)
		}
		return m, m.handleOrdersKey(msg)
	case TabInventory:
		return m, m.handleInventoryKey(msg)
	case TabTickets:
		return m, m.handleTicketsKey(msg)
	case TabInspector:
		return m, m.handleInspectorKey(msg)
	}
	return m, nil
}

// Search

func (m *App) searchAvailable() bool {
	switch m.tab {
	case TabOrders:
		return m.orderView.DetailID == ""
	case TabInventory:
		return true
	}
	return false
}

func (m *App) startSearch() tea.Cmd {
	m.searching = true
	current := m.orderView.Search
	if m.tab == TabInventory {
		current = m.inventoryView.Search
	}
	m.searchInput.SetValue(current)
	m.searchInput.CursorEnd()
	return m.searchInput.Focus()
}

// handleSearchKey filters live while typing. Enter keeps the text, Esc clears it.
func (m *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		return nil
	case tea.KeyEsc:
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.setSearch("")
		return nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.setSearch(m.searchInput.Value())
	return cmd
}

func (m *App) setSearch(text string) {
	switch m.tab {
	case TabOrders:
		m.orderView = m.orderView.WithSearch(text)
	case TabInventory:
		m.inventoryView = m.inventoryView.WithSearch(text)
	}
}

// Orders

func (m *App) handleOrdersKey(msg tea.KeyMsg) tea.Cmd {
	total := len(m.visibleOrders())
	switch {
	case key.Matches(msg, m.keys.Up):
		m.orderView = m.orderView.Move(-1, total)
	case key.Matches(msg, m.keys.Down):
		m.orderView = m.orderView.Move(1, total)
	case key.Matches(msg, m.keys.Home):
		m.orderView = m.orderView.Move(-total, total)
	case key.Matches(msg, m.keys.End):
		m.orderView = m.orderView.Move(total, total)
	case key.Matches(msg, m.keys.Enter):
		if o, ok := m.currentOrder(); ok {
			m.orderView = m.orderView.OpenDetail(o.ID)
		}
	case key.Matches(msg, m.keys.Filter):
		m.orderView = m.orderView.NextFilter()
	case key.Matches(msg, m.keys.Archived):
		m.orderView = m.orderView.ToggleArchived()
	case key.Matches(msg, m.keys.Copy):
		if o, ok := m.currentOrder(); ok {
			return m.copyToClipboard("Bestellung", o.ID)
		}
	case key.Matches(msg, m.keys.Escape):
		if m.orderView.Search != "" {
			m.orderView = m.orderView.WithSearch("")
			m.searchInput.SetValue("")
		}
	}
	return nil
}

var detailTickets = key.NewBinding(key.WithKeys("t"))

func (m *App) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	o, ok := m.detailOrder()
	if !ok {
		m.orderView, _ = m.orderView.Escape()
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.orderView, _ = m.orderView.Escape()
	case key.Matches(msg, m.keys.Receive):
		if !orders.CanReceive(o) {
			return m.showError(errActionUnavailable)
		}
		m.receiveOverlay = NewReceiveOverlay(o)
		return m.openOverlay(OverlayReceive)
	case key.Matches(msg, m.keys.QuickReceipt):
		return m.ask(o, ConfirmQuickReceipt)
	case key.Matches(msg, m.keys.Cancel):
		return m.ask(o, ConfirmCancel)
	case key.Matches(msg, m.keys.Archive):
		return m.ask(o, ConfirmArchive)
	case key.Matches(msg, detailTickets):
		receiptID := m.receiptIDFor(o)
		if receiptID == "" {
			return m.showError(errors.New("kein wareneingang verknüpft"))
		}
		m.tab = TabTickets
		m.ticketView = m.ticketView.ScopeTo(receiptID, m.snap.Tickets)
	case key.Matches(msg, m.keys.NewTicket):
		receiptID := m.receiptIDFor(o)
		if receiptID == "" {
			return m.showError(errors.New("kein wareneingang verknüpft"))
		}
		m.ticketOverlay = NewTicketOverlay(receiptID)
		return m.openOverlay(OverlayTicket)
	case key.Matches(msg, m.keys.Copy):
		return m.copyToClipboard("Bestellung", o.ID)
	}
	return nil
}

// ask raises a confirmation when the order allows the action.
func (m *App) ask(o domain.PurchaseOrder, kind ConfirmKind) tea.Cmd {
	if !orders.Allowed(o, kind.Action()) {
		return m.showError(errActionUnavailable)
	}
	m.orderView = m.orderView.Ask(kind)
	return nil
}

func (m *App) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		kind := m.orderView.Confirm
		m.orderView = m.orderView.Resolve()
		o, ok := m.detailOrder()
		if !ok || !orders.Allowed(o, kind.Action()) {
			return m.showError(errActionUnavailable)
		}
		switch kind {
		case ConfirmQuickReceipt:
			return m.quickReceiptCmd(o)
		case ConfirmCancel:
			return m.cancelCmd(o)
		case ConfirmArchive:
			m.orderView, _ = m.orderView.Escape()
			return m.archiveCmd(o)
		}
	case key.Matches(msg, m.keys.Deny):
		m.orderView, _ = m.orderView.Escape()
	}
	return nil
}

// Inventory

func (m *App) handleInventoryKey(msg tea.KeyMsg) tea.Cmd {
	total := len(m.visibleItems())
	switch {
	case key.Matches(msg, m.keys.Up):
		m.inventoryView = m.inventoryView.Move(-1, total)
	case key.Matches(msg, m.keys.Down):
		m.inventoryView = m.inventoryView.Move(1, total)
	case key.Matches(msg, m.keys.Home):
		m.inventoryView = m.inventoryView.Move(-total, total)
	case key.Matches(msg, m.keys.End):
		m.inventoryView = m.inventoryView.Move(total, total)
	case key.Matches(msg, m.keys.Increase), key.Matches(msg, m.keys.Decrease):
		item, ok := m.currentItem()
		var n int
		n, m.inventoryView = m.inventoryView.TakeQuantity()
		if !ok {
			return nil
		}
		if key.Matches(msg, m.keys.Decrease) {
			n = -n
		}
		return m.adjustCmd(item, n)
	case key.Matches(msg, m.keys.BulkAdd):
		return m.startBulk(BulkAdd)
	case key.Matches(msg, m.keys.BulkRemove):
		return m.startBulk(BulkRemove)
	case key.Matches(msg, m.keys.NewItem):
		m.itemOverlay = NewItemOverlay(inventory.Draft{})
		return m.openOverlay(OverlayItem)
	case key.Matches(msg, m.keys.EditItem):
		if item, ok := m.currentItem(); ok {
			m.itemOverlay = NewItemOverlay(inventory.DraftFrom(item))
			return m.openOverlay(OverlayItem)
		}
	case key.Matches(msg, m.keys.Copy):
		if item, ok := m.currentItem(); ok {
			return m.copyToClipboard("SKU", item.SKU)
		}
	case key.Matches(msg, m.keys.Escape):
		m.inventoryView, _ = m.inventoryView.Escape()
		if m.inventoryView.Search == "" {
			m.searchInput.SetValue("")
		}
	}
	return nil
}

func (m *App) startBulk(mode BulkMode) tea.Cmd {
	if _, ok := m.currentItem(); !ok {
		return nil
	}
	m.inventoryView = m.inventoryView.StartBulk(mode)
	m.bulkInput.SetValue("")
	return m.bulkInput.Focus()
}

// handleBulkKey books the typed quantity on Enter. Unparsable input keeps the
// prompt open and changes nothing.
func (m *App) handleBulkKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.inventoryView, _ = m.inventoryView.Escape()
		m.bulkInput.Blur()
		return nil
	case tea.KeyEnter:
		raw := m.bulkInput.Value()
		n, ok := inventory.ParseBulkQuantity(raw)
		if !ok {
			return m.showError(fmt.Errorf("ungültige menge: %q", strings.TrimSpace(raw)))
		}
		item, found := m.currentItem()
		mode := m.inventoryView.Bulk
		m.inventoryView, _ = m.inventoryView.Escape()
		m.bulkInput.SetValue("")
		m.bulkInput.Blur()
		if !found {
			return nil
		}
		if mode == BulkRemove {
			n = -n
		}
		return m.adjustCmd(item, n)
	}
	var cmd tea.Cmd
	m.bulkInput, cmd = m.bulkInput.Update(msg)
	return cmd
}

// Tickets

func (m *App) handleTicketsKey(msg tea.KeyMsg) tea.Cmd {
	list := m.snap.Tickets
	switch {
	case key.Matches(msg, m.keys.Up):
		m.ticketView = m.ticketView.Move(-1, list)
	case key.Matches(msg, m.keys.Down):
		m.ticketView = m.ticketView.Move(1, list)
	case key.Matches(msg, m.keys.Home):
		m.ticketView = m.ticketView.Move(-len(list), list)
	case key.Matches(msg, m.keys.End):
		m.ticketView = m.ticketView.Move(len(list), list)
	case msg.Type == tea.KeyPgUp:
		m.thread.SetYOffset(m.thread.YOffset - m.thread.Height/2)
	case msg.Type == tea.KeyPgDown:
		m.thread.SetYOffset(m.thread.YOffset + m.thread.Height/2)
	case key.Matches(msg, m.keys.NewTicket):
		m.ticketOverlay = NewTicketOverlay(m.ticketView.ReceiptID)
		return m.openOverlay(OverlayTicket)
	case key.Matches(msg, m.keys.Reply):
		t, ok := m.selectedTicket()
		if !ok {
			return nil
		}
		if !t.IsOpen() {
			return m.showError(errors.New("ticket ist geschlossen, mit o wieder öffnen"))
		}
		m.ticketView.Replying = true
		m.replyBox.Reset()
		return m.replyBox.Focus()
	case key.Matches(msg, m.keys.CloseTicket):
		if t, ok := m.selectedTicket(); ok && t.IsOpen() {
			return m.replyCmd(t, "", true)
		}
	case key.Matches(msg, m.keys.Reopen):
		if t, ok := m.selectedTicket(); ok && !t.IsOpen() {
			return m.reopenCmd(t)
		}
	case key.Matches(msg, m.keys.Copy):
		if t, ok := m.selectedTicket(); ok {
			return m.copyToClipboard("Ticket", t.ID)
		}
	case key.Matches(msg, m.keys.Escape):
		m.ticketView, _ = m.ticketView.Escape(list)
	}
	return nil
}

func (m *App) handleReplyKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Send), key.Matches(msg, m.keys.SendClose):
		t, ok := m.selectedTicket()
		if !ok {
			return nil
		}
		text := m.replyBox.Value()
		closeAfter := key.Matches(msg, m.keys.SendClose)
		if strings.TrimSpace(text) == "" && !closeAfter {
			return m.showError(errors.New("nachricht ist leer"))
		}
		m.ticketView.Replying = false
		m.replyBox.Reset()
		m.replyBox.Blur()
		return m.replyCmd(t, text, closeAfter)
	case msg.Type == tea.KeyEsc:
		m.ticketView, _ = m.ticketView.Escape(m.snap.Tickets)
		m.replyBox.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.replyBox, cmd = m.replyBox.Update(msg)
	return cmd
}

// Inspector

func (m *App) handleInspectorKey(msg tea.KeyMsg) tea.Cmd {
	list := m.inspectorOrders()
	total := len(list)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.inspector = m.inspector.Move(-1, total)
	case key.Matches(msg, m.keys.Down):
		m.inspector = m.inspector.Move(1, total)
	case key.Matches(msg, m.keys.Home):
		m.inspector = m.inspector.Move(-total, total)
	case key.Matches(msg, m.keys.End):
		m.inspector = m.inspector.Move(total, total)
	case key.Matches(msg, m.keys.Copy):
		if total > 0 {
			return m.copyToClipboard("Bestellung", list[clampCursor(m.inspector.Cursor, total)].ID)
		}
	}
	return nil
}
