package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wareflow/internal/debug"
	"wareflow/internal/domain"
	"wareflow/internal/tickets"
)

// SeedDemo fills an empty store with a small warehouse so a fresh install has
// something to show. It reports whether anything was written.
func SeedDemo(ctx context.Context, s Store, now time.Time) (bool, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return false, err
	}
	items, err := s.StockItems(ctx)
	if err != nil {
		return false, err
	}
	if len(orders) > 0 || len(items) > 0 {
		return false, nil
	}

	data := DemoData(now)
	for _, item := range data.Items {
		if err := s.CreateItem(ctx, item); err != nil {
			return false, err
		}
	}
	for _, o := range data.Orders {
		if err := s.SaveOrder(ctx, o); err != nil {
			return false, err
		}
	}
	for _, r := range data.Receipts {
		if err := s.SaveReceipt(ctx, r); err != nil {
			return false, err
		}
	}
	for _, t := range data.Tickets {
		if err := s.AddTicket(ctx, t); err != nil {
			return false, err
		}
	}
	debug.Logger().Info("demo data seeded",
		zap.Int("items", len(data.Items)),
		zap.Int("orders", len(data.Orders)),
		zap.Int("receipts", len(data.Receipts)),
		zap.Int("tickets", len(data.Tickets)))
	return true, nil
}

// Dataset bundles every collection.
type Dataset struct {
	Items    []domain.StockItem
	Orders   []domain.PurchaseOrder
	Receipts []domain.ReceiptMaster
	Tickets  []domain.Ticket
}

// DemoData builds the demo dataset relative to now.
func DemoData(now time.Time) Dataset {
	day := func(offset int) time.Time {
		y, m, d := now.AddDate(0, 0, offset).Date()
		return time.Date(y, m, d, 9, 0, 0, 0, time.Local)
	}
	ms := func(offset int) int64 { return day(offset).UnixMilli() }

	items := []domain.StockItem{
		{ID: "itm-nym-315", SKU: "NYM-J-3x1.5", Name: "Mantelleitung NYM-J 3x1,5", System: "Elektro", StockLevel: 420, MinStock: 200, WarehouseLocation: "Regal A-01"},
		{ID: "itm-wago-221", SKU: "WAGO-221-413", Name: "Verbindungsklemme 3-Leiter", System: "Elektro", StockLevel: 35, MinStock: 100, WarehouseLocation: "Regal A-03"},
		{ID: "itm-ls-b16", SKU: "LS-B16", Name: "Leitungsschutzschalter B16", System: "Elektro", StockLevel: 0, MinStock: 10, WarehouseLocation: "Regal A-07"},
		{ID: "itm-cu-15", SKU: "CU-15-5M", Name: "Kupferrohr 15mm (5m)", System: "Sanitär", StockLevel: 48, MinStock: 20, WarehouseLocation: "Halle 2"},
		{ID: "itm-press-15", SKU: "PF-15-90", Name: "Pressfitting Bogen 90° 15mm", System: "Sanitär", StockLevel: 12, MinStock: 50, WarehouseLocation: "Regal C-02"},
		{ID: "itm-hk-22", SKU: "HK-22-600", Name: "Heizkörper Typ 22 600x1000", System: "Heizung", StockLevel: 6, MinStock: 4, WarehouseLocation: "Halle 1"},
		{ID: "itm-kabelbinder", SKU: "KB-200", Name: "Kabelbinder 200mm", StockLevel: 900, MinStock: 300, WarehouseLocation: "Regal B-11"},
	}

	orders := []domain.PurchaseOrder{
		{
			ID: "PO-2024-101", Status: domain.OrderStatusOpen, Supplier: "Sonepar Deutschland",
			DateCreated: day(-14), ExpectedDeliveryDate: day(-3),
			Items: []domain.LineItem{
				{SKU: "WAGO-221-413", Name: "Verbindungsklemme 3-Leiter", QuantityExpected: 200},
				{SKU: "LS-B16", Name: "Leitungsschutzschalter B16", QuantityExpected: 24},
			},
		},
		{
			ID: "PO-2024-102", Status: domain.OrderStatusPartial, Supplier: "GC Gruppe",
			DateCreated: day(-10), ExpectedDeliveryDate: day(2), LinkedReceiptID: "WE-102",
			Items: []domain.LineItem{
				{SKU: "CU-15-5M", Name: "Kupferrohr 15mm (5m)", QuantityExpected: 40, QuantityReceived: 40},
				{SKU: "PF-15-90", Name: "Pressfitting Bogen 90° 15mm", QuantityExpected: 100, QuantityReceived: 60},
			},
		},
		{
			ID: "PO-Projekt-Schule-7", Status: domain.OrderStatusProject, Supplier: "Rexel",
			DateCreated: day(-8), ExpectedDeliveryDate: day(-1), LinkedReceiptID: "WE-107",
			Items: []domain.LineItem{
				{SKU: "NYM-J-3x1.5", Name: "Mantelleitung NYM-J 3x1,5", QuantityExpected: 500, QuantityReceived: 500},
			},
		},
		{
			ID: "PO-2024-104", Status: domain.OrderStatusCompleted, Supplier: "Sonepar Deutschland",
			DateCreated: day(-6), ExpectedDeliveryDate: day(-4), LinkedReceiptID: "WE-104",
			Items: []domain.LineItem{
				{SKU: "KB-200", Name: "Kabelbinder 200mm", QuantityExpected: 500, QuantityReceived: 520},
			},
		},
		{
			ID: "PO-2024-105", Status: domain.OrderStatusOpen, Supplier: "Heizungsbau Kramer",
			DateCreated: day(-4), ExpectedDeliveryDate: day(5), LinkedReceiptID: "WE-105",
			Items: []domain.LineItem{
				{SKU: "HK-22-600", Name: "Heizkörper Typ 22 600x1000", QuantityExpected: 8},
			},
		},
		{
			ID: "PO-2024-106", Status: domain.OrderStatusCancelled, Supplier: "GC Gruppe",
			DateCreated: day(-3),
			Items: []domain.LineItem{
				{SKU: "CU-15-5M", Name: "Kupferrohr 15mm (5m)", QuantityExpected: 10},
			},
		},
		{
			ID: "PO-2024-099", Status: domain.OrderStatusPartial, Supplier: "Rexel", IsForceClosed: true, IsArchived: true,
			DateCreated: day(-40), ExpectedDeliveryDate: day(-30),
			Items: []domain.LineItem{
				{SKU: "LS-B16", Name: "Leitungsschutzschalter B16", QuantityExpected: 12, QuantityReceived: 10},
			},
		},
	}

	receipts := []domain.ReceiptMaster{
		{
			ID: "WE-102", POID: "PO-2024-102", Status: domain.ReceiptStatusDamage,
			Deliveries: []domain.Delivery{{
				ID: "LS-102-1", Date: day(-2),
				Items: []domain.DeliveryLine{
					{SKU: "CU-15-5M", Received: 40},
					{SKU: "PF-15-90", Received: 60, DamageFlag: true},
				},
			}},
		},
		{
			ID: "WE-104", POID: "PO-2024-104", Status: domain.ReceiptStatusBooked,
			Deliveries: []domain.Delivery{{
				ID: "LS-104-1", Date: day(-4),
				Items: []domain.DeliveryLine{{SKU: "KB-200", Received: 520, ZuViel: 20}},
			}},
		},
		{
			ID: "WE-107", POID: "PO-Projekt-Schule-7", Status: domain.ReceiptStatusChecking,
			Deliveries: []domain.Delivery{{
				ID: "LS-107-1", Date: day(-1),
				Items: []domain.DeliveryLine{{SKU: "NYM-J-3x1.5", Received: 500}},
			}},
		},
	}

	threads := []domain.Ticket{
		{
			ID: "TCK-1", ReceiptID: "WE-102", Subject: "Pressfittings beschädigt", Priority: domain.PriorityHigh, Status: domain.TicketOpen,
			Messages: []domain.TicketMessage{
				{ID: "MSG-1", Author: "Admin User", Text: "Karton mit 20 Bögen **eingedrückt**, Fotos folgen.", Timestamp: ms(-2), Type: domain.MessageUser},
			},
		},
		{
			ID: "TCK-2", ReceiptID: "WE-104", Subject: "Mehrlieferung Kabelbinder", Priority: domain.PriorityNormal, Status: domain.TicketClosed,
			Messages: []domain.TicketMessage{
				{ID: "MSG-2", Author: "Admin User", Text: "20 Stück zu viel geliefert. Behalten wir.", Timestamp: ms(-4), Type: domain.MessageUser},
				{ID: "MSG-3", Author: domain.AuthorSystem, Text: tickets.ClosedNotice, Timestamp: ms(-4) + 1, Type: domain.MessageSystem},
			},
		},
	}

	return Dataset{Items: items, Orders: orders, Receipts: receipts, Tickets: threads}
}
