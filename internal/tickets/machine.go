// Package tickets implements the Open/Closed lifecycle of support threads
// attached to goods receipts. The message log is append-only and every
// transition returns a new ticket value.
package tickets

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"wareflow/internal/domain"
	appErrors "wareflow/internal/errors"
)

// DefaultAuthor signs user messages when the machine has no author configured.
const DefaultAuthor = "Admin User"

// System notices appended by transitions.
const (
	ClosedNotice   = "Ticket wurde geschlossen."
	ReopenedNotice = "Ticket wurde wiedereröffnet."
)

// ErrNothingToSend is returned by Reply when there is neither text nor a close request.
var ErrNothingToSend = appErrors.New(appErrors.CodeInvalidTicket, "nothing to send", nil)

// Machine applies ticket transitions. The zero value uses the wall clock,
// random ids and DefaultAuthor.
type Machine struct {
	Now    func() time.Time
	NewID  func() string
	Author string
}

// NewTicket is the content of the new-ticket form.
type NewTicket struct {
	ReceiptID   string
	Subject     string
	Priority    domain.TicketPriority
	Description string
}

// Open creates a ticket whose first message is the description.
func (m Machine) Open(in NewTicket) (domain.Ticket, error) {
	subject := strings.TrimSpace(in.Subject)
	description := strings.TrimSpace(in.Description)
	if subject == "" {
		return domain.Ticket{}, appErrors.New(appErrors.CodeInvalidTicket, "subject is required", nil)
	}
	if description == "" {
		return domain.Ticket{}, appErrors.New(appErrors.CodeInvalidTicket, "description is required", nil)
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if _, err := domain.ParseTicketPriority(string(priority)); err != nil {
		return domain.Ticket{}, err
	}
	return domain.Ticket{
		ID:        m.id(),
		ReceiptID: in.ReceiptID,
		Subject:   subject,
		Priority:  priority,
		Status:    domain.TicketOpen,
		Messages:  []domain.TicketMessage{m.userMessage(description, m.millis())},
	}, nil
}

// Reply appends a user message and, when closeAfter is set, closes the ticket.
// The close notice is stamped one millisecond after a reply sent with it so
// the thread keeps its order.
func (m Machine) Reply(t domain.Ticket, text string, closeAfter bool) (domain.Ticket, error) {
	if !t.IsOpen() {
		return t, transitionError(t.Status, "reply to")
	}
	text = strings.TrimSpace(text)
	if text == "" && !closeAfter {
		return t, ErrNothingToSend
	}

	next := t.Clone()
	now := m.millis()
	if text != "" {
		next.Messages = append(next.Messages, m.userMessage(text, now))
	}
	if closeAfter {
		stamp := now
		if text != "" {
			stamp++
		}
		next.Messages = append(next.Messages, m.systemMessage(ClosedNotice, stamp))
		next.Status = domain.TicketClosed
	}
	return next, nil
}

// Close closes an open ticket without a reply.
func (m Machine) Close(t domain.Ticket) (domain.Ticket, error) {
	return m.Reply(t, "", true)
}

// Reopen moves a closed ticket back to Open.
func (m Machine) Reopen(t domain.Ticket) (domain.Ticket, error) {
	if t.IsOpen() {
		return t, transitionError(t.Status, "reopen")
	}
	next := t.Clone()
	next.Messages = append(next.Messages, m.systemMessage(ReopenedNotice, m.millis()))
	next.Status = domain.TicketOpen
	return next, nil
}

// ForReceipt returns the tickets attached to receiptID in their stored order.
func ForReceipt(list []domain.Ticket, receiptID string) []domain.Ticket {
	out := make([]domain.Ticket, 0)
	for _, t := range list {
		if t.ReceiptID == receiptID {
			out = append(out, t)
		}
	}
	return out
}

// HasOpen reports whether any ticket on receiptID is open.
func HasOpen(list []domain.Ticket, receiptID string) bool {
	for _, t := range list {
		if t.ReceiptID == receiptID && t.IsOpen() {
			return true
		}
	}
	return false
}

func (m Machine) userMessage(text string, stamp int64) domain.TicketMessage {
	return domain.TicketMessage{
		ID:        m.id(),
		Author:    m.author(),
		Text:      text,
		Timestamp: stamp,
		Type:      domain.MessageUser,
	}
}

func (m Machine) systemMessage(text string, stamp int64) domain.TicketMessage {
	return domain.TicketMessage{
		ID:        m.id(),
		Author:    domain.AuthorSystem,
		Text:      text,
		Timestamp: stamp,
		Type:      domain.MessageSystem,
	}
}

func (m Machine) millis() int64 {
	if m.Now != nil {
		return m.Now().UnixMilli()
	}
	return time.Now().UnixMilli()
}

func (m Machine) id() string {
	if m.NewID != nil {
		return m.NewID()
	}
	return uuid.NewString()
}

func (m Machine) author() string {
	if strings.TrimSpace(m.Author) != "" {
		return m.Author
	}
	return DefaultAuthor
}

func transitionError(status domain.TicketStatus, verb string) error {
	return appErrors.New(appErrors.CodeInvalidTransition, "cannot "+verb+" a ticket that is "+strings.ToLower(string(status)), nil)
}
