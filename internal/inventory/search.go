package inventory

import (
	"sort"
	"strings"

	"wareflow/internal/domain"
)

// Search returns the items whose name, SKU or system contains term, ignoring
// case. A blank term returns every item. Items are ordered by name, then SKU.
func Search(items []domain.StockItem, term string) []domain.StockItem {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]domain.StockItem, 0, len(items))
	for _, item := range items {
		if needle == "" || matches(item, needle) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

func matches(item domain.StockItem, needle string) bool {
	return strings.Contains(strings.ToLower(item.Name), needle) ||
		strings.Contains(strings.ToLower(item.SKU), needle) ||
		strings.Contains(strings.ToLower(item.System), needle)
}

// Summary counts items per stock status.
type Summary struct {
	Total      int
	InStock    int
	LowStock   int
	OutOfStock int
}

// Summarize classifies every item.
func Summarize(items []domain.StockItem) Summary {
	s := Summary{Total: len(items)}
	for _, item := range items {
		switch item.Status() {
		case domain.StockStatusOutOfStock:
			s.OutOfStock++
		case domain.StockStatusLowStock:
			s.LowStock++
		default:
			s.InStock++
		}
	}
	return s
}

// FindBySKU returns the first item carrying sku.
func FindBySKU(items []domain.StockItem, sku string) (domain.StockItem, bool) {
	for _, item := range items {
		if item.SKU == sku {
			return item, true
		}
	}
	return domain.StockItem{}, false
}
