package tickets

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"wareflow/internal/domain"
	appErrors "wareflow/internal/errors"
)

func testMachine() Machine {
	seq := 0
	return Machine{
		Now: func() time.Time { return time.UnixMilli(1_700_000_000_000) },
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
		Author: "Lagerleitung",
	}
}

func TestOpen(t *testing.T) {
	m := testMachine()
	ticket, err := m.Open(NewTicket{ReceiptID: "R-1", Subject: " Falsche Menge ", Priority: domain.PriorityHigh, Description: "Es fehlen 3 Stück"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if ticket.Status != domain.TicketOpen || ticket.Subject != "Falsche Menge" || ticket.ReceiptID != "R-1" {
		t.Fatalf("unexpected ticket %+v", ticket)
	}
	if len(ticket.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(ticket.Messages))
	}
	first := ticket.Messages[0]
	if first.Author != "Lagerleitung" || first.Type != domain.MessageUser || first.Text != "Es fehlen 3 Stück" {
		t.Fatalf("unexpected first message %+v", first)
	}

	defaulted, err := Machine{}.Open(NewTicket{Subject: "S", Description: "D"})
	if err != nil {
		t.Fatalf("Open with zero machine: %v", err)
	}
	if defaulted.Priority != domain.PriorityNormal || defaulted.Messages[0].Author != DefaultAuthor || defaulted.ID == "" {
		t.Fatalf("defaults not applied: %+v", defaulted)
	}
}

func TestOpenValidation(t *testing.T) {
	tests := []struct {
		name string
		in   NewTicket
		code appErrors.Code
	}{
		{"blank subject", NewTicket{Subject: "  ", Description: "D"}, appErrors.CodeInvalidTicket},
		{"blank description", NewTicket{Subject: "S"}, appErrors.CodeInvalidTicket},
		{"unknown priority", NewTicket{Subject: "S", Description: "D", Priority: "Sofort"}, appErrors.CodeInvalidPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testMachine().Open(tt.in)
			if !appErrors.IsCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	m := testMachine()
	ticket, err := m.Open(NewTicket{ReceiptID: "R-1", Subject: "S", Description: "D"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	closed, err := m.Reply(ticket, "", true)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != domain.TicketClosed || len(closed.Messages) != 2 {
		t.Fatalf("expected closed ticket with 2 messages, got %s/%d", closed.Status, len(closed.Messages))
	}
	notice := closed.Messages[1]
	if notice.Author != domain.AuthorSystem || notice.Text != ClosedNotice || !notice.IsSystem() {
		t.Fatalf("unexpected close notice %+v", notice)
	}
	if notice.Timestamp != closed.Messages[0].Timestamp {
		t.Fatal("close without reply must not shift the timestamp")
	}

	reopened, err := m.Reopen(closed)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	if reopened.Status != domain.TicketOpen || len(reopened.Messages) != 3 {
		t.Fatalf("expected open ticket with 3 messages, got %s/%d", reopened.Status, len(reopened.Messages))
	}
	if reopened.Messages[2].Text != ReopenedNotice || reopened.Messages[2].Author != domain.AuthorSystem {
		t.Fatalf("unexpected reopen notice %+v", reopened.Messages[2])
	}

	if len(ticket.Messages) != 1 || len(closed.Messages) != 2 {
		t.Fatal("earlier ticket values must not change")
	}
}

func TestReplyAndCloseStampsNoticeOneMillisecondLater(t *testing.T) {
	m := testMachine()
	ticket, _ := m.Open(NewTicket{Subject: "S", Description: "D"})
	next, err := m.Reply(ticket, "  Erledigt, danke  ", true)
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if len(next.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(next.Messages))
	}
	reply, notice := next.Messages[1], next.Messages[2]
	if reply.Text != "Erledigt, danke" || reply.Type != domain.MessageUser {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if notice.Timestamp != reply.Timestamp+1 {
		t.Fatalf("notice at %d, reply at %d", notice.Timestamp, reply.Timestamp)
	}
}

func TestReplyKeepsTicketOpen(t *testing.T) {
	m := testMachine()
	ticket, _ := m.Open(NewTicket{Subject: "S", Description: "D"})
	next, err := m.Reply(ticket, "Nachfrage", false)
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if next.Status != domain.TicketOpen || len(next.Messages) != 2 {
		t.Fatalf("unexpected ticket %+v", next)
	}
}

func TestReplyErrors(t *testing.T) {
	m := testMachine()
	ticket, _ := m.Open(NewTicket{Subject: "S", Description: "D"})

	same, err := m.Reply(ticket, "   ", false)
	if !errors.Is(err, ErrNothingToSend) {
		t.Fatalf("expected ErrNothingToSend, got %v", err)
	}
	if len(same.Messages) != 1 {
		t.Fatal("ticket must stay unchanged")
	}

	closed, _ := m.Close(ticket)
	if _, err := m.Reply(closed, "hallo", false); !appErrors.IsCode(err, appErrors.CodeInvalidTransition) {
		t.Fatalf("reply on closed ticket should fail with invalid_transition, got %v", err)
	}
	if _, err := m.Reopen(ticket); !appErrors.IsCode(err, appErrors.CodeInvalidTransition) {
		t.Fatalf("reopen on open ticket should fail, got %v", err)
	}
}

func TestForReceiptAndHasOpen(t *testing.T) {
	list := []domain.Ticket{
		{ID: "T-1", ReceiptID: "R-1", Status: domain.TicketClosed},
		{ID: "T-2", ReceiptID: "R-2", Status: domain.TicketOpen},
		{ID: "T-3", ReceiptID: "R-1", Status: domain.TicketOpen},
	}
	got := ForReceipt(list, "R-1")
	if len(got) != 2 || got[0].ID != "T-1" || got[1].ID != "T-3" {
		t.Fatalf("unexpected tickets %+v", got)
	}
	if len(ForReceipt(list, "R-9")) != 0 {
		t.Fatal("expected no tickets")
	}
	if !HasOpen(list, "R-1") || HasOpen(list[:1], "R-1") {
		t.Fatal("HasOpen mismatch")
	}
}
