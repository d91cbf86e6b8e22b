package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"wareflow/internal/domain"
	"wareflow/internal/orders"
)

func priorityTone(p domain.TicketPriority) orders.Tone {
	switch p {
	case domain.PriorityUrgent:
		return orders.ToneDanger
	case domain.PriorityHigh:
		return orders.ToneWarning
	default:
		return orders.ToneNeutral
	}
}

func ticketStatusLabel(t domain.Ticket) string {
	if t.IsOpen() {
		return styleBadge(orders.ToneInfo).Render("Offen")
	}
	return styleBadge(orders.ToneMuted).Render("Geschlossen")
}

func (m *App) renderTicketsView(width, height int) string {
	listWidth := width - int(float64(width)*threadPaneRatio) - 2
	if listWidth < 20 {
		listWidth = 20
	}
	threadWidth := width - listWidth - 2

	left := m.renderTicketList(listWidth, height)
	right := m.renderTicketThread(threadWidth)

	leftPane := lipgloss.NewStyle().Width(listWidth).Height(height).Render(left)
	divider := styleDivider().Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, divider, " ", right)
}

func (m *App) renderTicketList(width, height int) string {
	lines := make([]string, 0, height)
	if m.ticketView.ReceiptID != "" {
		lines = append(lines,
			styleDim().Render("Wareneingang ")+styleID().Render(m.ticketView.ReceiptID),
			styleDim().Render("Esc zeigt alle"),
			"",
		)
	}
	visible := m.visibleTickets()
	if len(visible) == 0 {
		return strings.Join(append(lines, styleDim().Render("Keine Tickets.")), "\n")
	}

	cursor := 0
	for i, t := range visible {
		if t.ID == m.ticketView.SelectedID {
			cursor = i
		}
	}
	start, end := visibleWindow(cursor, len(visible), (height-len(lines))/2)
	for i := start; i < end; i++ {
		t := visible[i]
		marker := "  "
		subject := styleText().Render(truncate(t.Subject, width-4))
		if i == cursor {
			marker = styleID().Render("› ")
			subject = styleSelected().Render(truncate(t.Subject, width-4))
		}
		meta := fmt.Sprintf("%s · %s · %s",
			ticketStatusLabel(t),
			styleBadge(priorityTone(t.Priority)).Render(t.Priority.Label()),
			styleDim().Render(t.ReceiptID))
		if last, ok := t.LastMessage(); ok {
			meta += styleDim().Render(" · " + formatRelative(time.UnixMilli(last.Timestamp)))
		}
		lines = append(lines, marker+subject, "  "+meta)
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderTicketThread(width int) string {
	t, ok := m.selectedTicket()
	if !ok {
		return styleDim().Render("Kein Ticket ausgewählt.")
	}
	header := []string{
		styleOverlayTitle().Render(truncate(t.Subject, width)),
		fmt.Sprintf("%s · %s · %s",
			styleID().Render(t.ReceiptID),
			styleBadge(priorityTone(t.Priority)).Render(t.Priority.Label()),
			ticketStatusLabel(t)),
		styleDivider().Render(strings.Repeat("─", width)),
	}

	var bottom string
	switch {
	case m.ticketView.Replying:
		bottom = m.replyBox.View()
	case !t.IsOpen():
		bottom = styleDim().Render("Ticket geschlossen. o öffnet es wieder.")
	default:
		bottom = styleDim().Render("m antwortet, x schließt das Ticket.")
	}

	parts := append(header, m.thread.View(), styleDivider().Render(strings.Repeat("─", width)), bottom)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderThread formats the message log. System notices are one dim line;
// user messages go through the markdown renderer.
func (m *App) renderThread(t domain.Ticket, width int) string {
	if width < 10 {
		width = 10
	}
	render := buildMarkdownRenderer(m.outputFormat, width-2)
	blocks := make([]string, 0, len(t.Messages))
	for _, msg := range t.Messages {
		if msg.IsSystem() {
			blocks = append(blocks, styleDim().Render(fmt.Sprintf("· %s (%s)", msg.Text, formatMillis(msg.Timestamp))))
			continue
		}
		head := styleID().Render(msg.Author) + " " + styleDim().Render(formatMillis(msg.Timestamp))
		blocks = append(blocks, head+"\n"+render(msg.Text))
	}
	return strings.Join(blocks, "\n\n")
}
