package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"wareflow/internal/domain"
	appErrors "wareflow/internal/errors"
)

// Draft holds the raw text of the item form. An empty ID means a new item.
type Draft struct {
	ID       string
	SKU      string
	Name     string
	System   string
	Location string
	Stock    string
	MinStock string
}

// DraftFrom fills the form from an existing item.
func DraftFrom(item domain.StockItem) Draft {
	return Draft{
		ID:       item.ID,
		SKU:      item.SKU,
		Name:     item.Name,
		System:   item.System,
		Location: item.WarehouseLocation,
		Stock:    strconv.Itoa(item.StockLevel),
		MinStock: strconv.Itoa(item.MinStock),
	}
}

// IsNew reports whether saving the draft creates an item.
func (d Draft) IsNew() bool {
	return strings.TrimSpace(d.ID) == ""
}

// Build validates the draft and converts it to an item. New items get a fresh id.
// Blank number fields count as zero.
func (d Draft) Build() (domain.StockItem, error) {
	stock, err := parseCount("Bestand", d.Stock)
	if err != nil {
		return domain.StockItem{}, err
	}
	minStock, err := parseCount("Mindestbestand", d.MinStock)
	if err != nil {
		return domain.StockItem{}, err
	}
	item := domain.StockItem{
		ID:                strings.TrimSpace(d.ID),
		SKU:               strings.TrimSpace(d.SKU),
		Name:              strings.TrimSpace(d.Name),
		System:            strings.TrimSpace(d.System),
		WarehouseLocation: strings.TrimSpace(d.Location),
		StockLevel:        stock,
		MinStock:          minStock,
	}
	if err := item.Validate(); err != nil {
		return domain.StockItem{}, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return item, nil
}

func parseCount(field, raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, appErrors.New(appErrors.CodeInvalidQuantity, fmt.Sprintf("%s must be a whole number", field), err)
	}
	if n < 0 {
		return 0, appErrors.New(appErrors.CodeInvalidQuantity, fmt.Sprintf("%s must not be negative", field), nil)
	}
	return n, nil
}
