package store

import (
	"context"
	"errors"
	"sync"

	"wareflow/internal/domain"
)

// ErrMockNotImplemented is returned when a MockStore read lacks an override.
var ErrMockNotImplemented = errors.New("store.MockStore: method not implemented")

// MockStore is a test double for Store. Reads fail unless stubbed; writes
// default to no-ops and are recorded.
type MockStore struct {
	OrdersFn           func(context.Context) ([]domain.PurchaseOrder, error)
	ReceiptsFn         func(context.Context) ([]domain.ReceiptMaster, error)
	StockItemsFn       func(context.Context) ([]domain.StockItem, error)
	TicketsFn          func(context.Context) ([]domain.Ticket, error)
	MovementsFn        func(context.Context) ([]domain.StockMovement, error)
	ItemBySKUFn        func(context.Context, string) (domain.StockItem, error)
	SaveOrderFn        func(context.Context, domain.PurchaseOrder) error
	SaveReceiptFn      func(context.Context, domain.ReceiptMaster) error
	UpdateStockLevelFn func(context.Context, string, int) error
	CreateItemFn       func(context.Context, domain.StockItem) error
	UpdateItemFn       func(context.Context, domain.StockItem) error
	LogMovementFn      func(context.Context, domain.StockMovement) error
	AddTicketFn        func(context.Context, domain.Ticket) error
	UpdateTicketFn     func(context.Context, domain.Ticket) error

	mu sync.Mutex
	// Calls lists invoked write methods in order.
	Calls              []string
	SavedOrders        []domain.PurchaseOrder
	SavedReceipts      []domain.ReceiptMaster
	StockLevelCallArgs []StockLevelCallArg
	CreatedItems       []domain.StockItem
	UpdatedItems       []domain.StockItem
	LoggedMovements    []domain.StockMovement
	AddedTickets       []domain.Ticket
	UpdatedTickets     []domain.Ticket
	OrdersCallCount    int
	ItemBySKUCallCount int
	ClosedCallCount    int
	ItemBySKUCallArgs  []string
}

// StockLevelCallArg captures arguments passed to UpdateStockLevel.
type StockLevelCallArg struct {
	ItemID string
	Level  int
}

var _ Store = (*MockStore)(nil)

// NewMockStore returns a MockStore with zeroed handlers.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) record(name string) {
	m.Calls = append(m.Calls, name)
}

// Orders invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockStore) Orders(ctx context.Context) ([]domain.PurchaseOrder, error) {
	m.mu.Lock()
	m.OrdersCallCount++
	m.mu.Unlock()
	if m.OrdersFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.OrdersFn(ctx)
}

// Receipts invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockStore) Receipts(ctx context.Context) ([]domain.ReceiptMaster, error) {
	if m.ReceiptsFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.ReceiptsFn(ctx)
}

// StockItems invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockStore) StockItems(ctx context.Context) ([]domain.StockItem, error) {
	if m.StockItemsFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.StockItemsFn(ctx)
}

// Tickets invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockStore) Tickets(ctx context.Context) ([]domain.Ticket, error) {
	if m.TicketsFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.TicketsFn(ctx)
}

// Movements invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockStore) Movements(ctx context.Context) ([]domain.StockMovement, error) {
	if m.MovementsFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.MovementsFn(ctx)
}

// ItemBySKU invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockStore) ItemBySKU(ctx context.Context, sku string) (domain.StockItem, error) {
	m.mu.Lock()
	m.ItemBySKUCallCount++
	m.ItemBySKUCallArgs = append(m.ItemBySKUCallArgs, sku)
	m.mu.Unlock()
	if m.ItemBySKUFn == nil {
		return domain.StockItem{}, ErrMockNotImplemented
	}
	return m.ItemBySKUFn(ctx, sku)
}

// SaveOrder invokes the configured stub or returns nil (no-op by default).
func (m *MockStore) SaveOrder(ctx context.Context, o domain.PurchaseOrder) error {
	m.mu.Lock()
	m.record("SaveOrder")
	m.SavedOrders = append(m.SavedOrders, o.Clone())
	m.mu.Unlock()
	if m.SaveOrderFn == nil {
		return nil
	}
	return m.SaveOrderFn(ctx, o)
}

// SaveReceipt invokes the configured stub or returns nil (no-op by default).
func (m *MockStore) SaveReceipt(ctx context.Context, r domain.ReceiptMaster) error {
	m.mu.Lock()
	m.record("SaveReceipt")
	m.SavedReceipts = append(m.SavedReceipts, r.Clone())
	m.mu.Unlock()
	if m.SaveReceiptFn == nil {
		return nil
	}
	return m.SaveReceiptFn(ctx, r)
}

// UpdateStockLevel invokes the configured stub or returns nil (no-op by default).
func (m *MockStore) UpdateStockLevel(ctx context.Context, itemID string, level int) error {
	m.mu.Lock()
	m.record("UpdateStockLevel")
	m.StockLevelCallArgs = append(m.StockLevelCallArgs, StockLevelCallArg{ItemID: itemID, Level: level})
	m.mu.Unlock()
	if m.UpdateStockLevelFn == nil {
		return nil
	}
	return m.UpdateStockLevelFn(ctx, itemID, level)
}

// CreateItem invokes the configured stub or returns nil (no-op by default).
func (m *MockStore) CreateItem(ctx context.Context, item domain.StockItem) error {
	m.mu.Lock()
	m.record("CreateItem")
	m.CreatedItems = append(m.CreatedItems, item)
	m.mu.Unlock()
	if m.CreateItemFn == nil {
		return nil
	}
	return m.CreateItemFn(ctx, item)
}

// UpdateItem invokes the configured stub or returns nil (no-op by default).
func (m *MockStore) UpdateItem(ctx context.Context, item domain.StockItem) error {
	m.mu.Lock()
	m.record("UpdateItem")
	m.UpdatedItems = append(m.UpdatedItems, item)
	m.mu.Unlock()
	if m.UpdateItemFn == nil {
		return nil
	}
	return m.UpdateItemFn(ctx, item)
}

// LogMovement invokes the configured stub or returns nil (no-op by default).
func (m *MockStore) LogMovement(ctx context.Context, mv domain.StockMovement) error {
	m.mu.Lock()
	m.record("LogMovement")
	m.LoggedMovements = append(m.LoggedMovements, mv)
	m.mu.Unlock()
	if m.LogMovementFn == nil {
		return nil
	}
	return m.LogMovementFn(ctx, mv)
}

// AddTicket invokes the configured stub or returns nil (no-op by default).
func (m *MockStore) AddTicket(ctx context.Context, t domain.Ticket) error {
	m.mu.Lock()
	m.record("AddTicket")
	m.AddedTickets = append(m.AddedTickets, t.Clone())
	m.mu.Unlock()
	if m.AddTicketFn == nil {
		return nil
	}
	return m.AddTicketFn(ctx, t)
}

// UpdateTicket invokes the configured stub or returns nil (no-op by default).
func (m *MockStore) UpdateTicket(ctx context.Context, t domain.Ticket) error {
	m.mu.Lock()
	m.record("UpdateTicket")
	m.UpdatedTickets = append(m.UpdatedTickets, t.Clone())
	m.mu.Unlock()
	if m.UpdateTicketFn == nil {
		return nil
	}
	return m.UpdateTicketFn(ctx, t)
}

// Close records the call.
func (m *MockStore) Close() error {
	m.mu.Lock()
	m.ClosedCallCount++
	m.mu.Unlock()
	return nil
}
