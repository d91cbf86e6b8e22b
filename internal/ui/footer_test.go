package ui

import (
	"strings"
	"testing"
)

func TestKeyPill(t *testing.T) {
	pill := stripANSI(keyPill("↑↓", "Navigieren"))

	t.Run("ContainsKey", func(t *testing.T) {
		if !strings.Contains(pill, "↑↓") {
			t.Error("expected pill to contain key")
		}
	})

	t.Run("ContainsDesc", func(t *testing.T) {
		if !strings.Contains(pill, "Navigieren") {
			t.Error("expected pill to contain description")
		}
	})
}

func TestContextHints(t *testing.T) {
	t.Run("OrderList", func(t *testing.T) {
		m := &App{tab: TabOrders}
		if got := m.contextHints(); len(got) == 0 || got[0].desc != "Navigieren" {
			t.Fatalf("unexpected hints %v", got)
		}
	})

	t.Run("OrderDetail", func(t *testing.T) {
		m := &App{tab: TabOrders, orderView: OrderViewState{DetailID: "PO-1"}}
		if got := m.contextHints(); got[0].key != "w" {
			t.Fatalf("expected detail hints, got %v", got)
		}
	})

	t.Run("Confirm", func(t *testing.T) {
		m := &App{tab: TabOrders, orderView: OrderViewState{DetailID: "PO-1", Confirm: ConfirmCancel}}
		if got := m.contextHints(); got[0].key != "y" {
			t.Fatalf("expected confirm hints, got %v", got)
		}
	})

	t.Run("Reply", func(t *testing.T) {
		m := &App{tab: TabTickets, ticketView: TicketViewState{Replying: true}}
		if got := m.contextHints(); got[0].key != "^S" {
			t.Fatalf("expected reply hints, got %v", got)
		}
	})
}

func TestRenderFooter(t *testing.T) {
	m := &App{width: 160, tab: TabInventory, version: "dev"}

	footer := stripANSI(m.renderFooter())

	t.Run("ContainsInventoryKeys", func(t *testing.T) {
		if !strings.Contains(footer, "[n]+/-") {
			t.Error("expected footer to contain the quantity hint")
		}
	})

	t.Run("ContainsGlobalKeys", func(t *testing.T) {
		for _, key := range []string{"⇥", "/", "q", "?"} {
			if !strings.Contains(footer, key) {
				t.Errorf("expected footer to contain global key %q", key)
			}
		}
	})

	t.Run("ShowsVersionBeforeFirstLoad", func(t *testing.T) {
		if !strings.Contains(footer, "dev") {
			t.Error("expected version in footer status")
		}
	})
}

func TestFooterStatusShowsPrefix(t *testing.T) {
	m := &App{tab: TabInventory, inventoryView: InventoryViewState{Count: "12"}}
	if got := m.footerStatus(); got != "Menge: 12" {
		t.Fatalf("footerStatus = %q", got)
	}
}

func TestTrimHintsToFit(t *testing.T) {
	hints := append(append([]footerHint{}, ordersFooterHints...), globalFooterHints...)
	full := renderHints(hints)

	t.Run("KeepsEverythingWhenWide", func(t *testing.T) {
		got := trimHintsToFit(hints, len(globalFooterHints), len(full)+10)
		if len(got) != len(hints) {
			t.Fatalf("expected %d hints, got %d", len(hints), len(got))
		}
	})

	t.Run("DropsContextBeforeGlobals", func(t *testing.T) {
		width := len(stripANSI(renderHints(globalFooterHints))) + 2
		got := trimHintsToFit(hints, len(globalFooterHints), width)
		if len(got) != len(globalFooterHints) {
			t.Fatalf("expected only global hints, got %v", got)
		}
		if got[0] != globalFooterHints[0] {
			t.Fatalf("expected globals to survive intact, got %v", got)
		}
	})

	t.Run("CanDropEverything", func(t *testing.T) {
		if got := trimHintsToFit(hints, len(globalFooterHints), 0); len(got) != 0 {
			t.Fatalf("expected no hints, got %v", got)
		}
	})
}
