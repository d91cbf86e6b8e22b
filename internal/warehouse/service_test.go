package warehouse

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wareflow/internal/domain"
	appErrors "wareflow/internal/errors"
	"wareflow/internal/inventory"
	"wareflow/internal/store"
	"wareflow/internal/tickets"
)

var testNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local)

func newTestService(st store.Store) *Service {
	seq := 0
	return New(st,
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id%04d", seq)
		}),
		WithAuthor("Lager"),
	)
}

func openOrder() domain.PurchaseOrder {
	return domain.PurchaseOrder{
		ID: "PO-1", Status: domain.OrderStatusOpen, Supplier: "Sonepar",
		Items: []domain.LineItem{
			{SKU: "A", Name: "Alpha", QuantityExpected: 10},
			{SKU: "B", Name: "Beta", QuantityExpected: 4},
		},
	}
}

func TestSnapshot(t *testing.T) {
	mock := store.NewMockStore()
	mock.OrdersFn = func(context.Context) ([]domain.PurchaseOrder, error) { return []domain.PurchaseOrder{openOrder()}, nil }
	mock.ReceiptsFn = func(context.Context) ([]domain.ReceiptMaster, error) { return nil, nil }
	mock.StockItemsFn = func(context.Context) ([]domain.StockItem, error) { return []domain.StockItem{{ID: "I-1"}}, nil }
	mock.TicketsFn = func(context.Context) ([]domain.Ticket, error) { return nil, nil }
	mock.MovementsFn = func(context.Context) ([]domain.StockMovement, error) { return nil, nil }

	snap, err := newTestService(mock).Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Orders, 1)
	require.Len(t, snap.Items, 1)
	require.True(t, snap.LoadedAt.Equal(testNow))

	mock.TicketsFn = nil
	_, err = newTestService(mock).Snapshot(context.Background())
	require.ErrorIs(t, err, store.ErrMockNotImplemented)
}

func TestUpdateStockLevelLogsThenUpdates(t *testing.T) {
	mock := store.NewMockStore()
	svc := newTestService(mock)

	adj, err := svc.UpdateStockLevel(context.Background(), domain.StockItem{ID: "I-1", SKU: "K", Name: "Kabel", StockLevel: 2}, -5)
	require.NoError(t, err)
	require.Equal(t, 0, adj.NewLevel)
	require.Equal(t, []string{"LogMovement", "UpdateStockLevel"}, mock.Calls)
	require.Equal(t, 2, mock.LoggedMovements[0].Quantity)
	require.Equal(t, inventory.ManualSource, mock.LoggedMovements[0].Source)
	require.Equal(t, domain.MovementContextManual, mock.LoggedMovements[0].Context)
	require.Equal(t, store.StockLevelCallArg{ItemID: "I-1", Level: 0}, mock.StockLevelCallArgs[0])
}

func TestUpdateStockLevelStopsWhenLogFails(t *testing.T) {
	mock := store.NewMockStore()
	mock.LogMovementFn = func(context.Context, domain.StockMovement) error { return errors.New("locked") }

	_, err := newTestService(mock).UpdateStockLevel(context.Background(), domain.StockItem{ID: "I-1", StockLevel: 2}, 1)
	require.Error(t, err)
	require.Equal(t, []string{"LogMovement"}, mock.Calls)
}

func TestSaveItem(t *testing.T) {
	mock := store.NewMockStore()
	svc := newTestService(mock)

	created, err := svc.SaveItem(context.Background(), inventory.Draft{SKU: "K-1", Name: "Kabel", Stock: "3"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, []string{"CreateItem"}, mock.Calls)

	_, err = svc.SaveItem(context.Background(), inventory.Draft{ID: created.ID, SKU: "K-1", Name: "Kabel 2", Stock: "3"})
	require.NoError(t, err)
	require.Equal(t, "Kabel 2", mock.UpdatedItems[0].Name)

	_, err = svc.SaveItem(context.Background(), inventory.Draft{Name: "ohne SKU"})
	require.True(t, appErrors.IsCode(err, appErrors.CodeInvalidItemData))
	require.Len(t, mock.Calls, 2)
}

func TestOrderGating(t *testing.T) {
	ctx := context.Background()
	partial := openOrder()
	partial.Items[0].QuantityReceived = 3
	archived := openOrder()
	archived.IsArchived = true
	linked := openOrder()
	linked.LinkedReceiptID = "WE-1"

	mock := store.NewMockStore()
	svc := newTestService(mock)

	_, err := svc.CancelOrder(ctx, partial)
	require.True(t, appErrors.IsCode(err, appErrors.CodeActionNotAllowed))
	_, err = svc.ArchiveOrder(ctx, archived)
	require.True(t, appErrors.IsCode(err, appErrors.CodeActionNotAllowed))
	_, _, err = svc.QuickReceipt(ctx, linked)
	require.True(t, appErrors.IsCode(err, appErrors.CodeActionNotAllowed))
	_, err = svc.ReceiveGoods(ctx, archived, ReceiveAllOpen(archived))
	require.True(t, appErrors.IsCode(err, appErrors.CodeActionNotAllowed))
	require.Empty(t, mock.Calls, "gated actions must not write")
}

func TestCancelAndArchive(t *testing.T) {
	ctx := context.Background()
	mock := store.NewMockStore()
	svc := newTestService(mock)

	cancelled, err := svc.CancelOrder(ctx, openOrder())
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusCancelled, cancelled.Status)

	archived, err := svc.ArchiveOrder(ctx, cancelled)
	require.NoError(t, err)
	require.True(t, archived.IsArchived)
	require.Len(t, mock.SavedOrders, 2)
}

func TestQuickReceipt(t *testing.T) {
	mock := store.NewMockStore()
	next, receipt, err := newTestService(mock).QuickReceipt(context.Background(), openOrder())
	require.NoError(t, err)
	require.Equal(t, "WE-ID0001", receipt.ID)
	require.Equal(t, domain.ReceiptStatusAwaitingCheck, receipt.Status)
	require.Equal(t, "PO-1", receipt.POID)
	require.Equal(t, receipt.ID, next.LinkedReceiptID)
	require.Equal(t, []string{"SaveReceipt", "SaveOrder"}, mock.Calls)
	require.Zero(t, next.TotalReceived())
}

func TestReceiveGoods(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.CreateItem(ctx, domain.StockItem{ID: "I-A", SKU: "A", Name: "Alpha", StockLevel: 1}))
	o := openOrder()
	require.NoError(t, mem.SaveOrder(ctx, o))
	svc := newTestService(mem)

	next, err := svc.ReceiveGoods(ctx, o, []ReceiveLine{{SKU: "A", Quantity: 12}, {SKU: "B", Quantity: 0}})
	require.NoError(t, err)
	require.Equal(t, 12, next.Items[0].QuantityReceived)
	require.Equal(t, domain.OrderStatusPartial, next.Status)
	require.NotEmpty(t, next.LinkedReceiptID)

	receipts, err := mem.Receipts(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	require.Equal(t, domain.ReceiptStatusBooked, receipts[0].Status)
	require.Equal(t, []domain.DeliveryLine{{SKU: "A", Received: 12, ZuViel: 2}}, receipts[0].Deliveries[0].Items)

	item, err := mem.ItemBySKU(ctx, "A")
	require.NoError(t, err)
	require.Equal(t, 13, item.StockLevel)

	movements, err := mem.Movements(ctx)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	require.Equal(t, "Wareneingang PO-1", movements[0].Source)
	require.Equal(t, domain.MovementContextPONormal, movements[0].Context)

	// the second delivery lands on the same receipt and leaves nothing open
	done, err := svc.ReceiveGoods(ctx, next, []ReceiveLine{{SKU: "B", Quantity: 4, Damaged: true}})
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusCompleted, done.Status)
	receipts, err = mem.Receipts(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	require.Len(t, receipts[0].Deliveries, 2)
	require.Equal(t, domain.ReceiptStatusDamage, receipts[0].Status)
}

func TestReceiveGoodsProjectContext(t *testing.T) {
	ctx := context.Background()
	mock := store.NewMockStore()
	mock.ReceiptsFn = func(context.Context) ([]domain.ReceiptMaster, error) { return nil, nil }
	mock.ItemBySKUFn = func(_ context.Context, sku string) (domain.StockItem, error) {
		return domain.StockItem{ID: "I-" + sku, SKU: sku, StockLevel: 0}, nil
	}
	o := openOrder()
	o.Status = domain.OrderStatusProject

	next, err := newTestService(mock).ReceiveGoods(ctx, o, ReceiveAllOpen(o))
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusProject, next.Status, "project identity is kept")
	require.Len(t, mock.LoggedMovements, 2)
	for _, m := range mock.LoggedMovements {
		require.Equal(t, domain.MovementContextPOProject, m.Context)
	}
	require.Equal(t, []string{"SaveReceipt", "SaveOrder", "LogMovement", "UpdateStockLevel", "LogMovement", "UpdateStockLevel"}, mock.Calls)
}

func TestReceiveGoodsValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(store.NewMockStore())
	o := openOrder()

	_, err := svc.ReceiveGoods(ctx, o, []ReceiveLine{{SKU: "A", Quantity: -1}})
	require.True(t, appErrors.IsCode(err, appErrors.CodeInvalidQuantity))
	_, err = svc.ReceiveGoods(ctx, o, []ReceiveLine{{SKU: "Z", Quantity: 1}})
	require.True(t, appErrors.IsCode(err, appErrors.CodeInvalidOrderData))
	_, err = svc.ReceiveGoods(ctx, o, []ReceiveLine{{SKU: "A"}})
	require.True(t, appErrors.IsCode(err, appErrors.CodeInvalidQuantity))
}

func TestSyncStatus(t *testing.T) {
	o := openOrder()
	require.Equal(t, domain.OrderStatusOpen, SyncStatus(o))
	o.Items[0].QuantityReceived = 1
	require.Equal(t, domain.OrderStatusPartial, SyncStatus(o))
	o.IsForceClosed = true
	require.Equal(t, domain.OrderStatusCompleted, SyncStatus(o))
	o.Status = domain.OrderStatusCancelled
	require.Equal(t, domain.OrderStatusCancelled, SyncStatus(o))
}

func TestOverage(t *testing.T) {
	require.Equal(t, 0, overage(0, 10, 10))
	require.Equal(t, 2, overage(0, 12, 10))
	require.Equal(t, 3, overage(10, 13, 10))
	require.Equal(t, 1, overage(8, 11, 10))
}

func TestTicketFlow(t *testing.T) {
	ctx := context.Background()
	mock := store.NewMockStore()
	svc := newTestService(mock)

	ticket, err := svc.AddTicket(ctx, tickets.NewTicket{ReceiptID: "WE-1", Subject: "Schaden", Description: "Palette gekippt"})
	require.NoError(t, err)
	require.Equal(t, "Lager", ticket.Messages[0].Author)
	require.Equal(t, testNow.UnixMilli(), ticket.Messages[0].Timestamp)

	closed, err := svc.ReplyTicket(ctx, ticket, "Ersatz bestellt", true)
	require.NoError(t, err)
	require.Equal(t, domain.TicketClosed, closed.Status)
	require.Len(t, closed.Messages, 3)

	_, err = svc.ReplyTicket(ctx, closed, "noch was", false)
	require.True(t, appErrors.IsCode(err, appErrors.CodeInvalidTransition))

	reopened, err := svc.ReopenTicket(ctx, closed)
	require.NoError(t, err)
	require.Equal(t, domain.TicketOpen, reopened.Status)
	require.Equal(t, []string{"AddTicket", "UpdateTicket", "UpdateTicket"}, mock.Calls)

	_, err = svc.AddTicket(ctx, tickets.NewTicket{Subject: "leer"})
	require.True(t, appErrors.IsCode(err, appErrors.CodeInvalidTicket))
}
