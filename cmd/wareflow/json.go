package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"wareflow/internal/orders"
	"wareflow/internal/warehouse"
)

type orderJSON struct {
	ID            string   `json:"id"`
	Supplier      string   `json:"supplier"`
	Status        string   `json:"status"`
	VisualStatus  string   `json:"visual_status"`
	Badges        []string `json:"badges"`
	Open          bool     `json:"open"`
	Late          bool     `json:"late"`
	Complete      bool     `json:"complete"`
	TotalOrdered  int      `json:"total_ordered"`
	TotalReceived int      `json:"total_received"`
	ReceiptID     string   `json:"receipt_id,omitempty"`
	ExpectedAt    string   `json:"expected_at,omitempty"`
}

// printOrdersJSON lists the orders matching q, with derived state, as an
// indented JSON array.
func printOrdersJSON(w io.Writer, q orders.Query) jsonPrinter {
	return func(ctx context.Context, svc *warehouse.Service) error {
		if svc == nil {
			return fmt.Errorf("warehouse service is nil")
		}
		snap, err := svc.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("load orders: %w", err)
		}
		today := svc.Now()
		q.Today = today
		index := orders.NewReceiptIndex(snap.Receipts)

		list := orders.Apply(snap.Orders, q)
		out := make([]orderJSON, 0, len(list))
		for _, o := range list {
			link := index.Resolve(o)
			entry := orderJSON{
				ID:            o.ID,
				Supplier:      o.Supplier,
				Status:        string(o.Status),
				VisualStatus:  string(orders.VisualStatus(o)),
				Badges:        orders.Labels(orders.PrimaryBadges(o, link)),
				Open:          orders.IsOpen(o),
				Late:          orders.IsLate(o, today),
				Complete:      orders.IsComplete(o),
				TotalOrdered:  o.TotalOrdered(),
				TotalReceived: o.TotalReceived(),
			}
			if r, ok := link.Linked(); ok {
				entry.ReceiptID = r.ID
			}
			if o.HasExpectedDelivery() {
				entry.ExpectedAt = o.ExpectedDeliveryDate.Format("2006-01-02")
			}
			out = append(out, entry)
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
}
