package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wareflow/internal/domain"
	"wareflow/internal/orders"
)

func TestTabNextWraps(t *testing.T) {
	assert.Equal(t, TabInventory, TabOrders.Next(1))
	assert.Equal(t, TabOrders, TabInspector.Next(1))
	assert.Equal(t, TabInspector, TabOrders.Next(-1))
	assert.Equal(t, "Bestand", TabInventory.Title())
}

func TestOrderViewStateEscapePrecedence(t *testing.T) {
	s := OrderViewState{}.OpenDetail("PO-1").Ask(ConfirmArchive)
	require.Equal(t, ConfirmArchive, s.Confirm)

	s, closed := s.Escape()
	require.True(t, closed)
	assert.Equal(t, ConfirmNone, s.Confirm)
	assert.Equal(t, "PO-1", s.DetailID)

	s, closed = s.Escape()
	require.True(t, closed)
	assert.Empty(t, s.DetailID)

	_, closed = s.Escape()
	assert.False(t, closed)
}

func TestOrderViewStateAskNeedsDetail(t *testing.T) {
	s := OrderViewState{}.Ask(ConfirmCancel)
	assert.Equal(t, ConfirmNone, s.Confirm)
}

func TestOrderViewStateNextFilterCycles(t *testing.T) {
	s := OrderViewState{Cursor: 4}
	seen := make([]orders.Filter, 0, len(orders.Filters))
	for range orders.Filters {
		s = s.NextFilter()
		seen = append(seen, s.Filter)
		assert.Zero(t, s.Cursor)
	}
	assert.Equal(t, []orders.Filter{orders.FilterOpen, orders.FilterLate, orders.FilterCompleted, orders.FilterAll}, seen)
}

func TestOrderViewStateSearchResetsCursorOnChange(t *testing.T) {
	s := OrderViewState{Cursor: 3, Search: "abc"}
	assert.Equal(t, 3, s.WithSearch("abc").Cursor)
	assert.Zero(t, s.WithSearch("abcd").Cursor)
}

func TestConfirmKindAction(t *testing.T) {
	assert.Equal(t, orders.ActionQuickReceipt, ConfirmQuickReceipt.Action())
	assert.Equal(t, orders.ActionCancel, ConfirmCancel.Action())
	assert.Equal(t, orders.ActionArchive, ConfirmArchive.Action())
	assert.Empty(t, ConfirmNone.Action())
}

func TestInventoryViewStatePrefix(t *testing.T) {
	s := InventoryViewState{}
	for _, r := range "1x2" {
		s = s.AppendDigit(r)
	}
	require.Equal(t, "12", s.Count)

	n, s := s.TakeQuantity()
	assert.Equal(t, 12, n)
	assert.Empty(t, s.Count)

	n, _ = s.TakeQuantity()
	assert.Equal(t, 1, n, "no prefix means one piece")
}

func TestInventoryViewStatePrefixIsBounded(t *testing.T) {
	s := InventoryViewState{}
	for _, r := range "12345678" {
		s = s.AppendDigit(r)
	}
	assert.Equal(t, "123456", s.Count)
}

func TestInventoryViewStateMoveDropsPrefix(t *testing.T) {
	s := InventoryViewState{Count: "5"}.Move(1, 3)
	assert.Equal(t, 1, s.Cursor)
	assert.Empty(t, s.Count)
}

func TestInventoryViewStateEscapeOrder(t *testing.T) {
	s := InventoryViewState{Search: "wago", Count: "3", Bulk: BulkRemove}

	s, closed := s.Escape()
	require.True(t, closed)
	assert.Equal(t, BulkNone, s.Bulk)

	s, _ = s.Escape()
	assert.Empty(t, s.Count)
	assert.Equal(t, "wago", s.Search)

	s, _ = s.Escape()
	assert.Empty(t, s.Search)

	_, closed = s.Escape()
	assert.False(t, closed)
}

func sampleTickets() []domain.Ticket {
	return []domain.Ticket{
		{ID: "T1", ReceiptID: "WE-1", Status: domain.TicketOpen},
		{ID: "T2", ReceiptID: "WE-2", Status: domain.TicketOpen},
		{ID: "T3", ReceiptID: "WE-1", Status: domain.TicketClosed},
	}
}

func TestTicketViewStateEnsureSelection(t *testing.T) {
	list := sampleTickets()

	s := TicketViewState{}.EnsureSelection(list)
	assert.Equal(t, "T1", s.SelectedID)

	s = TicketViewState{SelectedID: "T2"}.EnsureSelection(list)
	assert.Equal(t, "T2", s.SelectedID)

	s = TicketViewState{SelectedID: "gone", Replying: true}.EnsureSelection(list)
	assert.Equal(t, "T1", s.SelectedID)
	assert.False(t, s.Replying)

	s = TicketViewState{SelectedID: "T1"}.EnsureSelection(nil)
	assert.Empty(t, s.SelectedID)
}

func TestTicketViewStateScopeAndEscape(t *testing.T) {
	list := sampleTickets()

	s := TicketViewState{SelectedID: "T2"}.ScopeTo("WE-1", list)
	assert.Equal(t, "T1", s.SelectedID)
	assert.Len(t, s.Visible(list), 2)

	s = s.Move(1, list)
	assert.Equal(t, "T3", s.SelectedID)
	s = s.Move(5, list)
	assert.Equal(t, "T3", s.SelectedID, "move clamps at the end")

	s.Replying = true
	s, closed := s.Escape(list)
	require.True(t, closed)
	assert.False(t, s.Replying)
	assert.Equal(t, "WE-1", s.ReceiptID)

	s, closed = s.Escape(list)
	require.True(t, closed)
	assert.Empty(t, s.ReceiptID)
	assert.Equal(t, "T3", s.SelectedID)
	assert.Len(t, s.Visible(list), 3)
}

func TestTicketViewStateSelectDropsReply(t *testing.T) {
	s := TicketViewState{SelectedID: "T1", Replying: true}
	assert.True(t, s.Select("T1").Replying)
	assert.False(t, s.Select("T2").Replying)
}

func TestInspectorViewStateMove(t *testing.T) {
	s := InspectorViewState{}.Move(-1, 5)
	assert.Zero(t, s.Cursor)
	s = s.Move(10, 5)
	assert.Equal(t, 4, s.Cursor)
}
