package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"wareflow/internal/domain"
	"wareflow/internal/tickets"
)

// TicketSubmittedMsg carries the content of a new ticket.
type TicketSubmittedMsg struct {
	Ticket tickets.NewTicket
}

// TicketCancelledMsg is sent when the ticket form is dismissed.
type TicketCancelledMsg struct{}

const (
	ticketFieldReceipt = iota
	ticketFieldSubject
	ticketFieldPriority
	ticketFieldDescription
	ticketFieldCount
)

var (
	ticketSubmit       = key.NewBinding(key.WithKeys("ctrl+s"))
	ticketPriorityPrev = key.NewBinding(key.WithKeys("left", "h"))
	ticketPriorityNext = key.NewBinding(key.WithKeys("right", "l"))
)

// TicketOverlay opens a new support thread on a goods receipt.
type TicketOverlay struct {
	receipt     textinput.Model
	subject     textinput.Model
	description textarea.Model
	priority    int
	focus       int
	errorMsg    string
}

// NewTicketOverlay prefills the receipt id when the form is opened from an order.
func NewTicketOverlay(receiptID string) *TicketOverlay {
	m := &TicketOverlay{
		receipt:     newFormInput("WE-…", OverlayWidthWide-20),
		subject:     newFormInput("Betreff", OverlayWidthWide-20),
		description: newFormTextarea("Was ist passiert?", OverlayWidthWide-2*overlayHPadding-2, 5),
	}
	m.receipt.SetValue(receiptID)
	if receiptID != "" {
		m.focus = ticketFieldSubject
	}
	m.applyFocus()
	return m
}

// Ticket returns the form content. Priority is always one of TicketPriorities.
func (m *TicketOverlay) Ticket() tickets.NewTicket {
	return tickets.NewTicket{
		ReceiptID:   strings.TrimSpace(m.receipt.Value()),
		Subject:     strings.TrimSpace(m.subject.Value()),
		Priority:    domain.TicketPriorities[m.priority],
		Description: strings.TrimSpace(m.description.Value()),
	}
}

// Update handles keys while the overlay is open.
func (m *TicketOverlay) Update(msg tea.Msg) (*TicketOverlay, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.Type == tea.KeyEsc:
			return m, func() tea.Msg { return TicketCancelledMsg{} }
		case key.Matches(keyMsg, ticketSubmit):
			return m.submit()
		case keyMsg.Type == tea.KeyTab:
			m.setFocus(m.focus + 1)
			return m, nil
		case keyMsg.Type == tea.KeyShiftTab:
			m.setFocus(m.focus - 1)
			return m, nil
		}
		if m.focus == ticketFieldPriority {
			switch {
			case key.Matches(keyMsg, ticketPriorityPrev):
				m.cyclePriority(-1)
			case key.Matches(keyMsg, ticketPriorityNext), keyMsg.Type == tea.KeySpace:
				m.cyclePriority(1)
			case keyMsg.Type == tea.KeyEnter, keyMsg.Type == tea.KeyDown:
				m.setFocus(m.focus + 1)
			case keyMsg.Type == tea.KeyUp:
				m.setFocus(m.focus - 1)
			}
			return m, nil
		}
		if m.focus != ticketFieldDescription {
			switch keyMsg.Type {
			case tea.KeyEnter, tea.KeyDown:
				m.setFocus(m.focus + 1)
				return m, nil
			case tea.KeyUp:
				m.setFocus(m.focus - 1)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case ticketFieldReceipt:
		m.receipt, cmd = m.receipt.Update(msg)
	case ticketFieldSubject:
		m.subject, cmd = m.subject.Update(msg)
	case ticketFieldDescription:
		m.description, cmd = m.description.Update(msg)
	}
	m.errorMsg = ""
	return m, cmd
}

func (m *TicketOverlay) cyclePriority(delta int) {
	n := len(domain.TicketPriorities)
	m.priority = ((m.priority+delta)%n + n) % n
}

func (m *TicketOverlay) setFocus(idx int) {
	m.focus = clampCursor(idx, ticketFieldCount)
	m.applyFocus()
}

func (m *TicketOverlay) applyFocus() {
	m.receipt.Blur()
	m.subject.Blur()
	m.description.Blur()
	switch m.focus {
	case ticketFieldReceipt:
		m.receipt.Focus()
	case ticketFieldSubject:
		m.subject.Focus()
	case ticketFieldDescription:
		m.description.Focus()
	}
}

// validate mirrors the checks of tickets.Machine.Open plus the receipt link.
func (m *TicketOverlay) validate() error {
	in := m.Ticket()
	switch {
	case in.ReceiptID == "":
		return errors.New("wareneingang fehlt")
	case in.Subject == "":
		return errors.New("betreff fehlt")
	case in.Description == "":
		return errors.New("beschreibung fehlt")
	}
	return nil
}

func (m *TicketOverlay) submit() (*TicketOverlay, tea.Cmd) {
	if err := m.validate(); err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}
	in := m.Ticket()
	return m, func() tea.Msg { return TicketSubmittedMsg{Ticket: in} }
}

// View renders the form.
func (m *TicketOverlay) View() string {
	priorities := make([]string, 0, len(domain.TicketPriorities))
	for i, p := range domain.TicketPriorities {
		priorities = append(priorities, styleChip(i == m.priority).Render(p.Label()))
	}
	lines := []string{
		formRow("Wareneingang", m.receipt.View(), m.focus == ticketFieldReceipt),
		formRow("Betreff", m.subject.View(), m.focus == ticketFieldSubject),
		formRow("Priorität", strings.Join(priorities, " "), m.focus == ticketFieldPriority),
		"",
		formRow("Beschreibung", "", m.focus == ticketFieldDescription),
		m.description.View(),
	}
	if m.errorMsg != "" {
		lines = append(lines, "", styleFormError().Render(m.errorMsg))
	}
	lines = append(lines, "", hintLine(
		footerHint{"^S", "Erstellen"},
		footerHint{"←→", "Priorität"},
		footerHint{"⇥", "Nächstes Feld"},
		footerHint{"Esc", "Abbrechen"},
	))
	return renderOverlayBox("Neues Ticket", lines, OverlayWidthWide, false)
}
