package orders

import "wareflow/internal/domain"

// FallbackSystem is shown when no stock item matches a line's SKU.
const FallbackSystem = "Material"

// ItemLookup finds the stock item for a SKU.
type ItemLookup func(sku string) (domain.StockItem, bool)

// LineView is a line item prepared for the detail table.
type LineView struct {
	Item    domain.LineItem
	System  string
	Open    int
	Short   bool
	Perfect bool
	Over    bool
	// Voided marks a short line on a force-closed order: the rest was written off.
	Voided bool
}

// LineViews derives per-line display data. lookup may be nil.
func LineViews(o domain.PurchaseOrder, lookup ItemLookup) []LineView {
	views := make([]LineView, 0, len(o.Items))
	for _, item := range o.Items {
		system := FallbackSystem
		if lookup != nil {
			if stock, ok := lookup(item.SKU); ok && stock.System != "" {
				system = stock.System
			}
		}
		open := item.QuantityExpected - item.QuantityReceived
		if open < 0 {
			open = 0
		}
		short := item.QuantityReceived < item.QuantityExpected
		views = append(views, LineView{
			Item:    item,
			System:  system,
			Open:    open,
			Short:   short,
			Perfect: item.QuantityReceived == item.QuantityExpected,
			Over:    item.QuantityReceived > item.QuantityExpected,
			Voided:  short && o.IsForceClosed,
		})
	}
	return views
}

// LookupFromItems builds an ItemLookup over a stock snapshot.
func LookupFromItems(items []domain.StockItem) ItemLookup {
	bySKU := make(map[string]domain.StockItem, len(items))
	for _, it := range items {
		if _, exists := bySKU[it.SKU]; !exists {
			bySKU[it.SKU] = it
		}
	}
	return func(sku string) (domain.StockItem, bool) {
		it, ok := bySKU[sku]
		return it, ok
	}
}
