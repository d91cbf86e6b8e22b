package domain

import (
	"fmt"
	"strings"
	"time"
)

// LineItem is one ordered article. QuantityReceived may exceed QuantityExpected.
type LineItem struct {
	SKU              string
	Name             string
	QuantityExpected int
	QuantityReceived int
}

// PurchaseOrder is a supplier order tracked through delivery.
//
// Business rules enforced elsewhere (see package orders):
//   - Completion is recomputed from Items and flags, never stored.
//   - Status may lag behind the derived state.
//   - LinkedReceiptID is a weak reference; the receipt may not exist yet.
type PurchaseOrder struct {
	ID                   string
	Status               OrderStatus
	Supplier             string
	IsArchived           bool
	IsForceClosed        bool
	Items                []LineItem
	LinkedReceiptID      string
	DateCreated          time.Time
	ExpectedDeliveryDate time.Time
	PDFURL               string
}

// TotalOrdered sums the expected quantity of every line.
func (o PurchaseOrder) TotalOrdered() int {
	total := 0
	for _, item := range o.Items {
		total += item.QuantityExpected
	}
	return total
}

// TotalReceived sums the received quantity of every line.
func (o PurchaseOrder) TotalReceived() int {
	total := 0
	for _, item := range o.Items {
		total += item.QuantityReceived
	}
	return total
}

// HasExpectedDelivery reports whether a delivery date was set.
func (o PurchaseOrder) HasExpectedDelivery() bool {
	return !o.ExpectedDeliveryDate.IsZero()
}

// HasLinkedReceipt reports whether the order references a receipt.
func (o PurchaseOrder) HasLinkedReceipt() bool {
	return strings.TrimSpace(o.LinkedReceiptID) != ""
}

// Clone returns a copy that shares no line storage with o.
func (o PurchaseOrder) Clone() PurchaseOrder {
	o.Items = append([]LineItem(nil), o.Items...)
	return o
}

// Validate checks the shape of the record, not its lifecycle.
func (o PurchaseOrder) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return invalidOrderError("order id is required")
	}
	if err := o.Status.Validate(); err != nil {
		return err
	}
	for i, item := range o.Items {
		if item.QuantityExpected < 0 || item.QuantityReceived < 0 {
			return invalidOrderError(fmt.Sprintf("line %d (%s) has a negative quantity", i+1, item.SKU))
		}
	}
	return nil
}
