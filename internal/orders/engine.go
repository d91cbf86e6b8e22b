// Package orders derives purchase-order state from quantities and flags:
// completion, openness, lateness, the lifecycle shown in the stepper and the
// badge lists rendered by the order list and the inspector.
//
// Every function here is pure. Stored order status is only consulted for the
// cancelled flag and the project identity.
package orders

import (
	"time"

	"wareflow/internal/domain"
)

// Lifecycle is the simplified stage shown by the detail stepper.
type Lifecycle string

const (
	LifecycleCancelled Lifecycle = "Storniert"
	LifecycleCompleted Lifecycle = "Abgeschlossen"
	LifecyclePartial   Lifecycle = "Teillieferung"
	LifecycleOpen      Lifecycle = "Offen"
)

// IsComplete reports whether nothing remains to be delivered.
// Cancelled orders are never complete; force-closed orders always are.
// An order without ordered quantity is never complete on its own.
func IsComplete(o domain.PurchaseOrder) bool {
	if o.Status.IsCancelled() {
		return false
	}
	if o.IsForceClosed {
		return true
	}
	ordered := o.TotalOrdered()
	return ordered > 0 && o.TotalReceived() == ordered
}

// IsOpen reports whether the order still waits for goods.
func IsOpen(o domain.PurchaseOrder) bool {
	if o.IsForceClosed || o.Status.IsCancelled() {
		return false
	}
	return o.TotalReceived() < o.TotalOrdered()
}

// IsLate reports whether the expected delivery day lies before today's day.
// Both dates are compared as local calendar days.
func IsLate(o domain.PurchaseOrder, today time.Time) bool {
	if o.IsForceClosed || o.Status.IsCancelled() {
		return false
	}
	if o.TotalReceived() >= o.TotalOrdered() {
		return false
	}
	if !o.HasExpectedDelivery() {
		return false
	}
	return localDay(o.ExpectedDeliveryDate).Before(localDay(today))
}

// VisualStatus maps the order onto the stepper stages.
func VisualStatus(o domain.PurchaseOrder) Lifecycle {
	switch {
	case o.Status.IsCancelled():
		return LifecycleCancelled
	case o.IsForceClosed, IsComplete(o):
		return LifecycleCompleted
	case o.TotalReceived() > 0:
		return LifecyclePartial
	default:
		return LifecycleOpen
	}
}

// IsProject reports the order's identity: project orders carry the Projekt
// status or have "projekt" anywhere in their id.
func IsProject(o domain.PurchaseOrder) bool {
	return o.Status == domain.OrderStatusProject || containsFold(o.ID, "projekt")
}

// Progress is the received share of the ordered quantity, capped at 1.
func Progress(o domain.PurchaseOrder) float64 {
	ordered := o.TotalOrdered()
	if ordered <= 0 {
		if o.IsForceClosed {
			return 1
		}
		return 0
	}
	p := float64(o.TotalReceived()) / float64(ordered)
	if p > 1 {
		return 1
	}
	return p
}

func localDay(t time.Time) time.Time {
	local := t.Local()
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
