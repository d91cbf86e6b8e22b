// Package warehouse binds the pure engines to the store. Every mutation the
// UI offers goes through Service, which re-checks the same gates the UI uses.
package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wareflow/internal/debug"
	"wareflow/internal/domain"
	appErrors "wareflow/internal/errors"
	"wareflow/internal/inventory"
	"wareflow/internal/orders"
	"wareflow/internal/store"
	"wareflow/internal/tickets"
)

// ReceiptSourcePrefix starts the movement source of goods booked against an order.
const ReceiptSourcePrefix = "Wareneingang "

// Service performs warehouse mutations.
type Service struct {
	store    store.Store
	adjuster *inventory.Adjuster
	tickets  tickets.Machine
	now      func() time.Time
	newID    func() string
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source for movements, deliveries and messages.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithAuthor sets the name signing ticket messages.
func WithAuthor(author string) Option {
	return func(s *Service) {
		s.tickets.Author = strings.TrimSpace(author)
	}
}

// New wires a Service over st.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store: st,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tickets.Now = s.now
	s.tickets.NewID = s.newID
	s.adjuster = inventory.NewAdjuster(st, st, inventory.WithClock(s.now), inventory.WithIDGenerator(s.newID))
	return s
}

// Now returns the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Snapshot is every collection loaded at one point in time.
type Snapshot struct {
	Orders    []domain.PurchaseOrder
	Receipts  []domain.ReceiptMaster
	Items     []domain.StockItem
	Tickets   []domain.Ticket
	Movements []domain.StockMovement
	LoadedAt  time.Time
}

// Snapshot loads all collections.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.Orders, err = s.store.Orders(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Receipts, err = s.store.Receipts(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Items, err = s.store.StockItems(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Tickets, err = s.store.Tickets(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Movements, err = s.store.Movements(ctx); err != nil {
		return Snapshot{}, err
	}
	snap.LoadedAt = s.now()
	return snap, nil
}

// Inventory

// UpdateStockLevel applies a manual +/- change to item.
func (s *Service) UpdateStockLevel(ctx context.Context, item domain.StockItem, amount int) (inventory.Adjustment, error) {
	adj, err := s.adjuster.Adjust(ctx, item, amount)
	if err != nil {
		return adj, err
	}
	if !adj.NoOp() {
		debug.Logger().Debug("stock adjusted",
			zap.String("sku", item.SKU),
			zap.Int("previous", adj.Previous),
			zap.Int("level", adj.NewLevel))
	}
	return adj, nil
}

// SaveItem creates or updates the item described by the form draft.
func (s *Service) SaveItem(ctx context.Context, d inventory.Draft) (domain.StockItem, error) {
	item, err := d.Build()
	if err != nil {
		return domain.StockItem{}, err
	}
	if d.IsNew() {
		err = s.store.CreateItem(ctx, item)
	} else {
		err = s.store.UpdateItem(ctx, item)
	}
	if err != nil {
		return domain.StockItem{}, err
	}
	return item, nil
}

// Orders

// ArchiveOrder hides the order from the default list.
func (s *Service) ArchiveOrder(ctx context.Context, o domain.PurchaseOrder) (domain.PurchaseOrder, error) {
	if err := gate(o, orders.ActionArchive); err != nil {
		return o, err
	}
	next := o.Clone()
	next.IsArchived = true
	if err := s.store.SaveOrder(ctx, next); err != nil {
		return o, err
	}
	debug.Logger().Debug("order archived", zap.String("id", o.ID))
	return next, nil
}

// CancelOrder marks an order without any received goods as Storniert.
func (s *Service) CancelOrder(ctx context.Context, o domain.PurchaseOrder) (domain.PurchaseOrder, error) {
	if err := gate(o, orders.ActionCancel); err != nil {
		return o, err
	}
	next := o.Clone()
	next.Status = domain.OrderStatusCancelled
	if err := s.store.SaveOrder(ctx, next); err != nil {
		return o, err
	}
	debug.Logger().Debug("order cancelled", zap.String("id", o.ID))
	return next, nil
}

// QuickReceipt pre-registers a goods receipt awaiting inspection and links it
// to the order. No goods are booked.
func (s *Service) QuickReceipt(ctx context.Context, o domain.PurchaseOrder) (domain.PurchaseOrder, domain.ReceiptMaster, error) {
	if err := gate(o, orders.ActionQuickReceipt); err != nil {
		return o, domain.ReceiptMaster{}, err
	}
	receipt := domain.ReceiptMaster{
		ID:     s.receiptID(),
		POID:   o.ID,
		Status: domain.ReceiptStatusAwaitingCheck,
	}
	if err := s.store.SaveReceipt(ctx, receipt); err != nil {
		return o, domain.ReceiptMaster{}, err
	}
	next := o.Clone()
	next.LinkedReceiptID = receipt.ID
	if err := s.store.SaveOrder(ctx, next); err != nil {
		return o, domain.ReceiptMaster{}, err
	}
	debug.Logger().Debug("receipt pre-registered", zap.String("order", o.ID), zap.String("receipt", receipt.ID))
	return next, receipt, nil
}

// ReceiveLine is one row of the receive-goods form.
type ReceiveLine struct {
	SKU      string
	Quantity int
	Damaged  bool
}

// ReceiveGoods books a delivery against the order: line quantities grow, the
// receipt gains a delivery, matching stock items are increased and every
// increase is logged as a po-normal or po-project movement.
func (s *Service) ReceiveGoods(ctx context.Context, o domain.PurchaseOrder, lines []ReceiveLine) (domain.PurchaseOrder, error) {
	if err := gate(o, orders.ActionReceive); err != nil {
		return o, err
	}
	booked, err := normaliseLines(o, lines)
	if err != nil {
		return o, err
	}

	next := o.Clone()
	delivery := domain.Delivery{ID: s.newID(), Date: s.now()}
	damaged := false
	for _, line := range booked {
		for i := range next.Items {
			item := &next.Items[i]
			if item.SKU != line.SKU {
				continue
			}
			before := item.QuantityReceived
			item.QuantityReceived += line.Quantity
			delivery.Items = append(delivery.Items, domain.DeliveryLine{
				SKU:        line.SKU,
				Received:   line.Quantity,
				ZuViel:     overage(before, item.QuantityReceived, item.QuantityExpected),
				DamageFlag: line.Damaged,
			})
			break
		}
		damaged = damaged || line.Damaged
	}

	receipt, err := s.receiptFor(ctx, next)
	if err != nil {
		return o, err
	}
	receipt.Deliveries = append(receipt.Deliveries, delivery)
	if damaged {
		receipt.Status = domain.ReceiptStatusDamage
	} else if !receipt.IsDamaged() {
		receipt.Status = domain.ReceiptStatusBooked
	}
	if err := s.store.SaveReceipt(ctx, receipt); err != nil {
		return o, err
	}

	next.LinkedReceiptID = receipt.ID
	next.Status = SyncStatus(next)
	if err := s.store.SaveOrder(ctx, next); err != nil {
		return o, err
	}

	movementCtx := domain.MovementContextPONormal
	if orders.IsProject(next) {
		movementCtx = domain.MovementContextPOProject
	}
	for _, line := range booked {
		item, err := s.store.ItemBySKU(ctx, line.SKU)
		if appErrors.IsCode(err, appErrors.CodeNotFound) {
			debug.Logger().Debug("received sku not in stock list", zap.String("sku", line.SKU))
			continue
		}
		if err != nil {
			return next, err
		}
		if _, err := s.adjuster.Book(ctx, item, line.Quantity, ReceiptSourcePrefix+next.ID, movementCtx); err != nil {
			return next, err
		}
	}

	debug.Logger().Debug("goods received",
		zap.String("order", next.ID),
		zap.String("receipt", receipt.ID),
		zap.Int("lines", len(booked)),
		zap.String("status", string(next.Status)))
	return next, nil
}

// ReceiveAllOpen builds form lines for every open quantity of the order.
func ReceiveAllOpen(o domain.PurchaseOrder) []ReceiveLine {
	lines := make([]ReceiveLine, 0, len(o.Items))
	for _, item := range o.Items {
		if open := item.QuantityExpected - item.QuantityReceived; open > 0 {
			lines = append(lines, ReceiveLine{SKU: item.SKU, Quantity: open})
		}
	}
	return lines
}

// SyncStatus derives the stored status from quantities. Storniert and
// Projekt are identities and stay as they are. Nothing left open counts as
// Abgeschlossen even when more arrived than ordered.
func SyncStatus(o domain.PurchaseOrder) domain.OrderStatus {
	switch {
	case o.Status == domain.OrderStatusCancelled, o.Status == domain.OrderStatusProject:
		return o.Status
	case orders.IsComplete(o), !orders.IsOpen(o) && o.TotalReceived() > 0:
		return domain.OrderStatusCompleted
	case o.TotalReceived() > 0:
		return domain.OrderStatusPartial
	default:
		return domain.OrderStatusOpen
	}
}

func (s *Service) receiptFor(ctx context.Context, o domain.PurchaseOrder) (domain.ReceiptMaster, error) {
	receipts, err := s.store.Receipts(ctx)
	if err != nil {
		return domain.ReceiptMaster{}, err
	}
	if r, ok := orders.NewReceiptIndex(receipts).Lookup(o.ID); ok {
		return r, nil
	}
	id := o.LinkedReceiptID
	if strings.TrimSpace(id) == "" {
		id = s.receiptID()
	}
	return domain.ReceiptMaster{ID: id, POID: o.ID}, nil
}

func (s *Service) receiptID() string {
	id := s.newID()
	if len(id) > 8 {
		id = id[:8]
	}
	return "WE-" + strings.ToUpper(id)
}

func normaliseLines(o domain.PurchaseOrder, lines []ReceiveLine) ([]ReceiveLine, error) {
	known := make(map[string]bool, len(o.Items))
	for _, item := range o.Items {
		known[item.SKU] = true
	}
	out := make([]ReceiveLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 0 {
			return nil, appErrors.New(appErrors.CodeInvalidQuantity, fmt.Sprintf("quantity for %s must not be negative", line.SKU), nil)
		}
		if !known[line.SKU] {
			return nil, appErrors.New(appErrors.CodeInvalidOrderData, fmt.Sprintf("%s is not part of order %s", line.SKU, o.ID), nil)
		}
		if line.Quantity == 0 {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return nil, appErrors.New(appErrors.CodeInvalidQuantity, "nothing to receive", nil)
	}
	return out, nil
}

// overage is the part of this delivery that pushed the line past its expected quantity.
func overage(before, after, expected int) int {
	if after <= expected {
		return 0
	}
	if before >= expected {
		return after - before
	}
	return after - expected
}

func gate(o domain.PurchaseOrder, a orders.Action) error {
	if orders.Allowed(o, a) {
		return nil
	}
	return appErrors.New(appErrors.CodeActionNotAllowed, fmt.Sprintf("%s is not allowed for order %s", a, o.ID), nil)
}

// Tickets

// AddTicket opens a ticket on a receipt.
func (s *Service) AddTicket(ctx context.Context, in tickets.NewTicket) (domain.Ticket, error) {
	t, err := s.tickets.Open(in)
	if err != nil {
		return domain.Ticket{}, err
	}
	if err := s.store.AddTicket(ctx, t); err != nil {
		return domain.Ticket{}, err
	}
	return t, nil
}

// ReplyTicket appends a reply and optionally closes the ticket.
func (s *Service) ReplyTicket(ctx context.Context, t domain.Ticket, text string, closeAfter bool) (domain.Ticket, error) {
	next, err := s.tickets.Reply(t, text, closeAfter)
	if err != nil {
		return t, err
	}
	if err := s.store.UpdateTicket(ctx, next); err != nil {
		return t, err
	}
	return next, nil
}

// ReopenTicket moves a closed ticket back to Open.
func (s *Service) ReopenTicket(ctx context.Context, t domain.Ticket) (domain.Ticket, error) {
	next, err := s.tickets.Reopen(t)
	if err != nil {
		return t, err
	}
	if err := s.store.UpdateTicket(ctx, next); err != nil {
		return t, err
	}
	return next, nil
}
