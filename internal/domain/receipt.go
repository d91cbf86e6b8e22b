package domain

import (
	"strings"
	"time"
)

// Known receipt status labels. The field itself is free-form.
const (
	ReceiptStatusChecking      = "In Prüfung"
	ReceiptStatusAwaitingCheck = "Wartet auf Prüfung"
	ReceiptStatusDamage        = "Schaden"
	ReceiptStatusDamaged       = "Beschädigt"
	ReceiptStatusBooked        = "Gebucht"
	ReceiptStatusCompleted     = "Abgeschlossen"
)

// ReceiptMaster collects the deliveries booked against one purchase order.
type ReceiptMaster struct {
	ID         string
	POID       string
	Status     string
	Deliveries []Delivery
}

// Delivery is a single arrival of goods.
type Delivery struct {
	ID    string
	Date  time.Time
	Items []DeliveryLine
}

// DeliveryLine records what arrived for one SKU. ZuViel counts the overage.
type DeliveryLine struct {
	SKU        string
	Received   int
	ZuViel     int
	DamageFlag bool
}

// IsChecking reports whether the receipt is awaiting or undergoing inspection.
func (r ReceiptMaster) IsChecking() bool {
	switch strings.TrimSpace(r.Status) {
	case ReceiptStatusChecking, ReceiptStatusAwaitingCheck:
		return true
	}
	return false
}

// IsDamaged reports whether the receipt status flags damage.
func (r ReceiptMaster) IsDamaged() bool {
	switch strings.TrimSpace(r.Status) {
	case ReceiptStatusDamage, ReceiptStatusDamaged:
		return true
	}
	return false
}

// HasOverageLine reports whether any delivery line carries an overage.
func (r ReceiptMaster) HasOverageLine() bool {
	for _, d := range r.Deliveries {
		for _, line := range d.Items {
			if line.ZuViel > 0 {
				return true
			}
		}
	}
	return false
}

// HasDamagedLine reports whether any delivery line was flagged as damaged.
func (r ReceiptMaster) HasDamagedLine() bool {
	for _, d := range r.Deliveries {
		for _, line := range d.Items {
			if line.DamageFlag {
				return true
			}
		}
	}
	return false
}

// Clone deep-copies deliveries and their lines.
func (r ReceiptMaster) Clone() ReceiptMaster {
	deliveries := make([]Delivery, len(r.Deliveries))
	for i, d := range r.Deliveries {
		d.Items = append([]DeliveryLine(nil), d.Items...)
		deliveries[i] = d
	}
	r.Deliveries = deliveries
	return r
}
