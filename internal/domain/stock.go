package domain

import (
	"strings"
	"time"
)

// StockItem is an article held in the warehouse.
type StockItem struct {
	ID                string
	SKU               string
	Name              string
	System            string
	StockLevel        int
	MinStock          int
	WarehouseLocation string
}

// StockStatus classifies an item's level against its threshold.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "In Stock"
	StockStatusLowStock   StockStatus = "Low Stock"
	StockStatusOutOfStock StockStatus = "Out of Stock"
)

// Status classifies the item: out of stock at or below zero, low below MinStock.
func (i StockItem) Status() StockStatus {
	switch {
	case i.StockLevel <= 0:
		return StockStatusOutOfStock
	case i.StockLevel < i.MinStock:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// Validate checks required fields and non-negative numbers.
func (i StockItem) Validate() error {
	if strings.TrimSpace(i.SKU) == "" {
		return invalidItemError("sku is required")
	}
	if strings.TrimSpace(i.Name) == "" {
		return invalidItemError("name is required")
	}
	if i.StockLevel < 0 {
		return invalidItemError("stock level must not be negative")
	}
	if i.MinStock < 0 {
		return invalidItemError("minimum stock must not be negative")
	}
	return nil
}

// MovementAction is the direction of a stock movement.
type MovementAction string

const (
	MovementAdd    MovementAction = "add"
	MovementRemove MovementAction = "remove"
)

// MovementContext tags where a movement originated.
type MovementContext string

const (
	MovementContextNormal    MovementContext = "normal"
	MovementContextProject   MovementContext = "project"
	MovementContextManual    MovementContext = "manual"
	MovementContextPONormal  MovementContext = "po-normal"
	MovementContextPOProject MovementContext = "po-project"
)

// StockMovement is one audit log entry for a stock change.
type StockMovement struct {
	ID        string
	ItemID    string
	ItemName  string
	Action    MovementAction
	Quantity  int
	Source    string
	Context   MovementContext
	Timestamp time.Time
}
