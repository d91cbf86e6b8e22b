package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"wareflow/internal/domain"
	appErrors "wareflow/internal/errors"
)

// Memory is a process-local Store. It copies values on the way in and out so
// callers never share slices with it.
type Memory struct {
	mu        sync.RWMutex
	orders    map[string]domain.PurchaseOrder
	receipts  map[string]domain.ReceiptMaster
	items     map[string]domain.StockItem
	tickets   map[string]domain.Ticket
	movements []domain.StockMovement
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		orders:   make(map[string]domain.PurchaseOrder),
		receipts: make(map[string]domain.ReceiptMaster),
		items:    make(map[string]domain.StockItem),
		tickets:  make(map[string]domain.Ticket),
	}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Orders(context.Context) ([]domain.PurchaseOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.PurchaseOrder, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateCreated.Equal(out[j].DateCreated) {
			return out[i].ID > out[j].ID
		}
		return out[i].DateCreated.After(out[j].DateCreated)
	})
	return out, nil
}

func (m *Memory) Receipts(context.Context) ([]domain.ReceiptMaster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ReceiptMaster, 0, len(m.receipts))
	for _, r := range m.receipts {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) StockItems(context.Context) ([]domain.StockItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.StockItem, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].SKU < out[j].SKU
	})
	return out, nil
}

func (m *Memory) Tickets(context.Context) ([]domain.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		oi, oj := openedAt(out[i]), openedAt(out[j])
		if oi != oj {
			return oi > oj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Movements returns the audit log, newest first.
func (m *Memory) Movements(context.Context) ([]domain.StockMovement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]domain.StockMovement(nil), m.movements...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (m *Memory) ItemBySKU(_ context.Context, sku string) (domain.StockItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, it := range m.items {
		if it.SKU == sku {
			return it, nil
		}
	}
	return domain.StockItem{}, notFound("item", sku)
}

func (m *Memory) SaveOrder(_ context.Context, o domain.PurchaseOrder) error {
	if err := o.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o.Clone()
	return nil
}

func (m *Memory) SaveReceipt(_ context.Context, r domain.ReceiptMaster) error {
	if strings.TrimSpace(r.ID) == "" {
		return appErrors.New(appErrors.CodeInvalidOrderData, "receipt id is required", nil)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts[r.ID] = r.Clone()
	return nil
}

func (m *Memory) UpdateStockLevel(_ context.Context, itemID string, level int) error {
	if level < 0 {
		return appErrors.New(appErrors.CodeInvalidQuantity, "stock level must not be negative", nil)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[itemID]
	if !ok {
		return notFound("item", itemID)
	}
	it.StockLevel = level
	m.items[itemID] = it
	return nil
}

func (m *Memory) CreateItem(_ context.Context, item domain.StockItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.items[item.ID]; exists || m.skuTaken(item.SKU, "") {
		return conflict("item", item.SKU)
	}
	m.items[item.ID] = item
	return nil
}

func (m *Memory) UpdateItem(_ context.Context, item domain.StockItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return notFound("item", item.ID)
	}
	if m.skuTaken(item.SKU, item.ID) {
		return conflict("item", item.SKU)
	}
	m.items[item.ID] = item
	return nil
}

func (m *Memory) skuTaken(sku, exceptID string) bool {
	for id, it := range m.items {
		if id != exceptID && it.SKU == sku {
			return true
		}
	}
	return false
}

func (m *Memory) LogMovement(_ context.Context, movement domain.StockMovement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements = append(m.movements, movement)
	return nil
}

func (m *Memory) AddTicket(_ context.Context, t domain.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tickets[t.ID]; exists {
		return conflict("ticket", t.ID)
	}
	m.tickets[t.ID] = t.Clone()
	return nil
}

func (m *Memory) UpdateTicket(_ context.Context, t domain.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tickets[t.ID]; !ok {
		return notFound("ticket", t.ID)
	}
	m.tickets[t.ID] = t.Clone()
	return nil
}
