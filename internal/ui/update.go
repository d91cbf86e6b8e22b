package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"wareflow/internal/debug"
)

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case snapshotLoadedMsg:
		m.loading = false
		if msg.err != nil {
			debug.Logf("reload failed: %v", msg.err)
			return m, m.showError(fmt.Errorf("neu laden: %w", msg.err))
		}
		m.applySnapshot(msg.snap)
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			return m, m.showError(msg.err)
		}
		m.pendingTicket = msg.selectTicket
		return m, tea.Batch(m.showSuccess(msg.toast), m.reload())

	case toastTickMsg:
		return m, m.handleToastTick()

	case refreshTickMsg:
		cmds := []tea.Cmd{scheduleRefreshTick(m.refreshInterval)}
		if !m.loading && m.activeOverlay == OverlayNone {
			cmds = append(cmds, m.reload())
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ReceiveSubmittedMsg:
		m.closeOverlay()
		o, ok := m.orderByID(msg.OrderID)
		if !ok {
			return m, m.showError(fmt.Errorf("bestellung %s nicht gefunden", msg.OrderID))
		}
		return m, m.receiveCmd(o, msg.Lines)

	case ItemSubmittedMsg:
		m.closeOverlay()
		return m, m.saveItemCmd(msg.Draft)

	case TicketSubmittedMsg:
		m.closeOverlay()
		if m.tab != TabTickets {
			m.tab = TabTickets
			m.ticketView = m.ticketView.ScopeTo(msg.Ticket.ReceiptID, m.snap.Tickets)
		}
		return m, m.addTicketCmd(msg.Ticket)

	case ReceiveCancelledMsg, ItemCancelledMsg, TicketCancelledMsg:
		m.closeOverlay()
		return m, nil

	case tea.KeyMsg:
		model, cmd := m.handleKey(msg)
		m.syncThread()
		return model, cmd
	}

	return m, m.forwardToFocused(msg)
}

// reload fetches a new snapshot and starts the header spinner.
func (m *App) reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadSnapshotCmd(), m.spinner.Tick)
}

func (m *App) closeOverlay() {
	m.activeOverlay = OverlayNone
	m.receiveOverlay = nil
	m.itemOverlay = nil
	m.ticketOverlay = nil
}

// forwardToFocused passes non-key messages such as cursor blinks to whatever
// input currently has focus.
func (m *App) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.activeOverlay != OverlayNone:
		return m.updateOverlay(msg)
	case m.searching:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case m.inventoryView.Bulk != BulkNone:
		m.bulkInput, cmd = m.bulkInput.Update(msg)
	case m.ticketView.Replying:
		m.replyBox, cmd = m.replyBox.Update(msg)
	}
	return cmd
}

func (m *App) updateOverlay(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.activeOverlay {
	case OverlayReceive:
		if m.receiveOverlay != nil {
			m.receiveOverlay, cmd = m.receiveOverlay.Update(msg)
		}
	case OverlayItem:
		if m.itemOverlay != nil {
			m.itemOverlay, cmd = m.itemOverlay.Update(msg)
		}
	case OverlayTicket:
		if m.ticketOverlay != nil {
			m.ticketOverlay, cmd = m.ticketOverlay.Update(msg)
		}
	}
	return cmd
}

func (m *App) openOverlay(kind OverlayType) tea.Cmd {
	m.activeOverlay = kind
	return textinput.Blink
}
