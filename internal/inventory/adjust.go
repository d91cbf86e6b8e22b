// Package inventory plans and applies manual stock changes. Levels never drop
// below zero and every applied change is logged as a movement before the new
// level is written.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wareflow/internal/domain"
	appErrors "wareflow/internal/errors"
)

// ManualSource is the movement source recorded for changes made from the stock view.
const ManualSource = "Manuell (Bestand)"

// Adjustment is the outcome of applying a signed amount to an item's level.
type Adjustment struct {
	ItemID   string
	Previous int
	NewLevel int
	Diff     int
	Action   domain.MovementAction
	Quantity int
}

// NoOp reports whether the level stays unchanged.
func (a Adjustment) NoOp() bool {
	return a.Diff == 0
}

// Plan computes the clamped level for item after adding amount.
func Plan(item domain.StockItem, amount int) Adjustment {
	newLevel := item.StockLevel + amount
	if newLevel < 0 {
		newLevel = 0
	}
	diff := newLevel - item.StockLevel
	adj := Adjustment{
		ItemID:   item.ID,
		Previous: item.StockLevel,
		NewLevel: newLevel,
		Diff:     diff,
		Action:   domain.MovementAdd,
		Quantity: diff,
	}
	if diff < 0 {
		adj.Action = domain.MovementRemove
		adj.Quantity = -diff
	}
	return adj
}

// MovementLogger appends stock movements to the audit log.
type MovementLogger interface {
	LogMovement(ctx context.Context, m domain.StockMovement) error
}

// LevelUpdater persists a new stock level.
type LevelUpdater interface {
	UpdateStockLevel(ctx context.Context, itemID string, level int) error
}

// Adjuster applies adjustments through its collaborators.
type Adjuster struct {
	log    MovementLogger
	levels LevelUpdater
	now    func() time.Time
	newID  func() string
}

// Option customises an Adjuster.
type Option func(*Adjuster)

// WithClock overrides the movement timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Adjuster) {
		if now != nil {
			a.now = now
		}
	}
}

// WithIDGenerator overrides the movement id source.
func WithIDGenerator(newID func() string) Option {
	return func(a *Adjuster) {
		if newID != nil {
			a.newID = newID
		}
	}
}

// NewAdjuster wires an Adjuster. The same store usually satisfies both interfaces.
func NewAdjuster(log MovementLogger, levels LevelUpdater, opts ...Option) *Adjuster {
	a := &Adjuster{
		log:    log,
		levels: levels,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Adjust applies a manual change of amount to item.
func (a *Adjuster) Adjust(ctx context.Context, item domain.StockItem, amount int) (Adjustment, error) {
	return a.Book(ctx, item, amount, ManualSource, domain.MovementContextManual)
}

// Book applies amount to item and records the movement under source and
// movementCtx. Nothing happens when the clamped level equals the current one.
// The movement is logged first; if logging fails the level is left alone.
func (a *Adjuster) Book(ctx context.Context, item domain.StockItem, amount int, source string, movementCtx domain.MovementContext) (Adjustment, error) {
	adj := Plan(item, amount)
	if adj.NoOp() {
		return adj, nil
	}
	movement := domain.StockMovement{
		ID:        a.newID(),
		ItemID:    item.ID,
		ItemName:  item.Name,
		Action:    adj.Action,
		Quantity:  adj.Quantity,
		Source:    source,
		Context:   movementCtx,
		Timestamp: a.now(),
	}
	if err := a.log.LogMovement(ctx, movement); err != nil {
		return adj, appErrors.New(appErrors.CodeStoreFailed, fmt.Sprintf("log movement for %s", item.SKU), err)
	}
	if err := a.levels.UpdateStockLevel(ctx, item.ID, adj.NewLevel); err != nil {
		return adj, appErrors.New(appErrors.CodeStoreFailed, fmt.Sprintf("update stock level for %s", item.SKU), err)
	}
	return adj, nil
}
