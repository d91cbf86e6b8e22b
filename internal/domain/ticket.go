package domain

import "strings"

// AuthorSystem authors every message produced by a status transition.
const AuthorSystem = "System"

// TicketStatus is either Open or Closed. Closed is revocable.
type TicketStatus string

const (
	TicketOpen   TicketStatus = "Open"
	TicketClosed TicketStatus = "Closed"
)

// TicketPriority ranks a ticket.
type TicketPriority string

const (
	PriorityNormal TicketPriority = "Normal"
	PriorityHigh   TicketPriority = "High"
	PriorityUrgent TicketPriority = "Urgent"
)

// TicketPriorities lists priorities in picker order.
var TicketPriorities = []TicketPriority{PriorityNormal, PriorityHigh, PriorityUrgent}

// ParseTicketPriority accepts the English value or the German label.
func ParseTicketPriority(raw string) (TicketPriority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "normal":
		return PriorityNormal, nil
	case "high", "hoch", "hoch (high)":
		return PriorityHigh, nil
	case "urgent", "dringend", "dringend (urgent)":
		return PriorityUrgent, nil
	}
	return "", invalidPriorityError(raw)
}

// Label is the form label shown for the priority.
func (p TicketPriority) Label() string {
	switch p {
	case PriorityHigh:
		return "Hoch (High)"
	case PriorityUrgent:
		return "Dringend (Urgent)"
	default:
		return "Normal"
	}
}

// MessageType distinguishes user replies from transition notices.
type MessageType string

const (
	MessageUser   MessageType = "user"
	MessageSystem MessageType = "system"
)

// TicketMessage is one entry of the append-only thread. Timestamp is ms since epoch.
type TicketMessage struct {
	ID        string
	Author    string
	Text      string
	Timestamp int64
	Type      MessageType
}

// IsSystem reports whether the message was produced by a transition.
func (m TicketMessage) IsSystem() bool {
	return m.Type == MessageSystem || m.Author == AuthorSystem
}

// Ticket is a support thread attached to a goods receipt.
type Ticket struct {
	ID        string
	ReceiptID string
	Subject   string
	Priority  TicketPriority
	Status    TicketStatus
	Messages  []TicketMessage
}

// IsOpen reports whether the ticket accepts replies.
func (t Ticket) IsOpen() bool {
	return t.Status == TicketOpen
}

// LastMessage returns the newest message, if any.
func (t Ticket) LastMessage() (TicketMessage, bool) {
	if len(t.Messages) == 0 {
		return TicketMessage{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// Clone copies the message log so appends never alias.
func (t Ticket) Clone() Ticket {
	t.Messages = append([]TicketMessage(nil), t.Messages...)
	return t
}
