package ui

import (
	"strings"
	"time"

	"wareflow/internal/domain"
	"wareflow/internal/inventory"
	"wareflow/internal/orders"
	"wareflow/internal/tickets"
)

// Tab identifies one of the top-level views.
type Tab int

const (
	TabOrders Tab = iota
	TabInventory
	TabTickets
	TabInspector
)

var allTabs = []Tab{TabOrders, TabInventory, TabTickets, TabInspector}

// Title is the tab caption.
func (t Tab) Title() string {
	switch t {
	case TabInventory:
		return "Bestand"
	case TabTickets:
		return "Tickets"
	case TabInspector:
		return "Inspector"
	default:
		return "Bestellungen"
	}
}

// Next cycles forward through the tabs; delta may be negative.
func (t Tab) Next(delta int) Tab {
	n := len(allTabs)
	return Tab(((int(t)+delta)%n + n) % n)
}

// ConfirmKind names the action waiting for confirmation in the order detail.
type ConfirmKind int

const (
	ConfirmNone ConfirmKind = iota
	ConfirmQuickReceipt
	ConfirmCancel
	ConfirmArchive
)

// Action maps the confirmation onto the gated order action.
func (k ConfirmKind) Action() orders.Action {
	switch k {
	case ConfirmQuickReceipt:
		return orders.ActionQuickReceipt
	case ConfirmCancel:
		return orders.ActionCancel
	case ConfirmArchive:
		return orders.ActionArchive
	default:
		return ""
	}
}

// OrderViewState is the order list configuration plus the open detail and
// confirmation. Every method returns a new value.
type OrderViewState struct {
	Filter       orders.Filter
	Search       string
	ShowArchived bool
	Cursor       int
	DetailID     string
	Confirm      ConfirmKind
}

// Query builds the aggregator query for today.
func (s OrderViewState) Query(today time.Time) orders.Query {
	return orders.Query{
		ShowArchived: s.ShowArchived,
		Search:       s.Search,
		Filter:       s.Filter,
		Today:        today,
	}
}

// Move shifts the cursor by delta within total rows.
func (s OrderViewState) Move(delta, total int) OrderViewState {
	s.Cursor = clampCursor(s.Cursor+delta, total)
	return s
}

// NextFilter selects the next chip and resets the cursor.
func (s OrderViewState) NextFilter() OrderViewState {
	idx := 0
	for i, f := range orders.Filters {
		if f == s.Filter {
			idx = i
			break
		}
	}
	s.Filter = orders.Filters[(idx+1)%len(orders.Filters)]
	s.Cursor = 0
	return s
}

// ToggleArchived flips the Archivierte toggle.
func (s OrderViewState) ToggleArchived() OrderViewState {
	s.ShowArchived = !s.ShowArchived
	s.Cursor = 0
	return s
}

// WithSearch replaces the search text.
func (s OrderViewState) WithSearch(text string) OrderViewState {
	if s.Search != text {
		s.Cursor = 0
	}
	s.Search = text
	return s
}

// OpenDetail shows the detail overlay for an order.
func (s OrderViewState) OpenDetail(id string) OrderViewState {
	s.DetailID = id
	s.Confirm = ConfirmNone
	return s
}

// Ask raises a confirmation on top of the detail. Without a detail it is a no-op.
func (s OrderViewState) Ask(kind ConfirmKind) OrderViewState {
	if s.DetailID == "" {
		return s
	}
	s.Confirm = kind
	return s
}

// Resolve drops the confirmation after it was answered.
func (s OrderViewState) Resolve() OrderViewState {
	s.Confirm = ConfirmNone
	return s
}

// Escape closes the innermost layer: the confirmation first, then the detail.
// It reports whether anything was closed.
func (s OrderViewState) Escape() (OrderViewState, bool) {
	switch {
	case s.Confirm != ConfirmNone:
		s.Confirm = ConfirmNone
		return s, true
	case s.DetailID != "":
		s.DetailID = ""
		return s, true
	default:
		return s, false
	}
}

// BulkMode is the direction of the bulk quantity input.
type BulkMode int

const (
	BulkNone BulkMode = iota
	BulkAdd
	BulkRemove
)

// InventoryViewState holds the inventory list cursor, search and the typed
// quantity prefix for quick +/- adjustments.
type InventoryViewState struct {
	Search string
	Cursor int
	Count  string
	Bulk   BulkMode
}

// Move shifts the cursor by delta within total rows and drops the prefix.
func (s InventoryViewState) Move(delta, total int) InventoryViewState {
	s.Cursor = clampCursor(s.Cursor+delta, total)
	s.Count = ""
	return s
}

// WithSearch replaces the search text.
func (s InventoryViewState) WithSearch(text string) InventoryViewState {
	if s.Search != text {
		s.Cursor = 0
	}
	s.Search = text
	return s
}

// AppendDigit extends the quantity prefix.
func (s InventoryViewState) AppendDigit(r rune) InventoryViewState {
	if r < '0' || r > '9' || len(s.Count) >= 6 {
		return s
	}
	s.Count += string(r)
	return s
}

// TakeQuantity consumes the prefix and returns the quick quantity it names.
func (s InventoryViewState) TakeQuantity() (int, InventoryViewState) {
	n := inventory.ParseQuickQuantity(s.Count)
	s.Count = ""
	return n, s
}

// StartBulk opens the bulk input for mode.
func (s InventoryViewState) StartBulk(mode BulkMode) InventoryViewState {
	s.Bulk = mode
	s.Count = ""
	return s
}

// Escape clears the bulk input first, then the prefix, then the search.
func (s InventoryViewState) Escape() (InventoryViewState, bool) {
	switch {
	case s.Bulk != BulkNone:
		s.Bulk = BulkNone
		return s, true
	case s.Count != "":
		s.Count = ""
		return s, true
	case s.Search != "":
		s.Search = ""
		s.Cursor = 0
		return s, true
	default:
		return s, false
	}
}

// TicketViewState tracks the selected ticket, an optional receipt scope and
// whether the reply box has focus.
type TicketViewState struct {
	SelectedID string
	ReceiptID  string
	Replying   bool
}

// Visible returns the tickets shown for the current receipt scope.
func (s TicketViewState) Visible(list []domain.Ticket) []domain.Ticket {
	if strings.TrimSpace(s.ReceiptID) == "" {
		return list
	}
	return tickets.ForReceipt(list, s.ReceiptID)
}

// EnsureSelection selects the first visible ticket when nothing valid is selected.
func (s TicketViewState) EnsureSelection(list []domain.Ticket) TicketViewState {
	visible := s.Visible(list)
	for _, t := range visible {
		if t.ID == s.SelectedID {
			return s
		}
	}
	s.SelectedID = ""
	s.Replying = false
	if len(visible) > 0 {
		s.SelectedID = visible[0].ID
	}
	return s
}

// Move selects the ticket delta rows away from the current one.
func (s TicketViewState) Move(delta int, list []domain.Ticket) TicketViewState {
	visible := s.Visible(list)
	if len(visible) == 0 {
		return s
	}
	idx := 0
	for i, t := range visible {
		if t.ID == s.SelectedID {
			idx = i
			break
		}
	}
	next := visible[clampCursor(idx+delta, len(visible))].ID
	if next != s.SelectedID {
		s.Replying = false
	}
	s.SelectedID = next
	return s
}

// ScopeTo limits the list to one receipt and selects its first ticket.
func (s TicketViewState) ScopeTo(receiptID string, list []domain.Ticket) TicketViewState {
	s.ReceiptID = receiptID
	s.SelectedID = ""
	return s.EnsureSelection(list)
}

// Select focuses a specific ticket.
func (s TicketViewState) Select(id string) TicketViewState {
	if s.SelectedID != id {
		s.Replying = false
	}
	s.SelectedID = id
	return s
}

// Escape leaves the reply box first, then drops the receipt scope.
func (s TicketViewState) Escape(list []domain.Ticket) (TicketViewState, bool) {
	switch {
	case s.Replying:
		s.Replying = false
		return s, true
	case s.ReceiptID != "":
		s.ReceiptID = ""
		return s.EnsureSelection(list), true
	default:
		return s, false
	}
}

// InspectorViewState is the cursor of the logic inspector table.
type InspectorViewState struct {
	Cursor int
}

// Move shifts the cursor by delta within total rows.
func (s InspectorViewState) Move(delta, total int) InspectorViewState {
	s.Cursor = clampCursor(s.Cursor+delta, total)
	return s
}
