package orders

import "wareflow/internal/domain"

// Action names an order mutation offered in the detail view.
type Action string

const (
	ActionReceive      Action = "receive"
	ActionQuickReceipt Action = "quick-receipt"
	ActionCancel       Action = "cancel"
	ActionArchive      Action = "archive"
)

// CanReceive reports whether goods may still be booked against the order.
func CanReceive(o domain.PurchaseOrder) bool {
	return !o.IsArchived && !IsComplete(o) && !o.Status.IsCancelled()
}

// CanQuickReceipt additionally requires that no receipt is linked yet.
func CanQuickReceipt(o domain.PurchaseOrder) bool {
	return CanReceive(o) && !o.HasLinkedReceipt()
}

// CanCancel additionally requires that nothing was received.
func CanCancel(o domain.PurchaseOrder) bool {
	return CanReceive(o) && o.TotalReceived() == 0
}

// CanArchive reports whether the order is still in the active list.
func CanArchive(o domain.PurchaseOrder) bool {
	return !o.IsArchived
}

// Allowed dispatches to the gate for a.
func Allowed(o domain.PurchaseOrder, a Action) bool {
	switch a {
	case ActionReceive:
		return CanReceive(o)
	case ActionQuickReceipt:
		return CanQuickReceipt(o)
	case ActionCancel:
		return CanCancel(o)
	case ActionArchive:
		return CanArchive(o)
	default:
		return false
	}
}

// HasOpenTickets reports whether an open ticket is attached to the order's receipt.
func HasOpenTickets(o domain.PurchaseOrder, tickets []domain.Ticket) bool {
	if !o.HasLinkedReceipt() {
		return false
	}
	for _, t := range tickets {
		if t.ReceiptID == o.LinkedReceiptID && t.IsOpen() {
			return true
		}
	}
	return false
}
