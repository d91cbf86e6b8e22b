package orders

import (
	"sort"
	"strings"
	"time"

	"wareflow/internal/domain"
)

// Filter selects one bucket of the order list.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterOpen      Filter = "open"
	FilterLate      Filter = "late"
	FilterCompleted Filter = "completed"
)

// Filters lists the buckets in chip order.
var Filters = []Filter{FilterAll, FilterOpen, FilterLate, FilterCompleted}

// Label is the chip caption.
func (f Filter) Label() string {
	switch f {
	case FilterOpen:
		return "Offen"
	case FilterLate:
		return "Verspätet"
	case FilterCompleted:
		return "Erledigt"
	default:
		return "Alle"
	}
}

// ParseFilter maps a filter name onto a bucket; unknown names select all.
func ParseFilter(raw string) Filter {
	switch Filter(strings.ToLower(strings.TrimSpace(raw))) {
	case FilterOpen:
		return FilterOpen
	case FilterLate:
		return FilterLate
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Query is the list configuration: archive toggle, free text and bucket.
type Query struct {
	ShowArchived bool
	Search       string
	Filter       Filter
	Today        time.Time
}

// Counts are the per-bucket totals shown on the chips. Buckets overlap.
type Counts struct {
	All       int
	Open      int
	Late      int
	Completed int
}

// For returns the count behind a chip.
func (c Counts) For(f Filter) int {
	switch f {
	case FilterOpen:
		return c.Open
	case FilterLate:
		return c.Late
	case FilterCompleted:
		return c.Completed
	default:
		return c.All
	}
}

// Count tallies orders per bucket in one pass. Search text does not narrow
// the counts; archived orders are skipped unless shown.
func Count(list []domain.PurchaseOrder, q Query) Counts {
	var c Counts
	for _, o := range list {
		if o.IsArchived && !q.ShowArchived {
			continue
		}
		c.All++
		if IsOpen(o) {
			c.Open++
		}
		if IsLate(o, q.Today) {
			c.Late++
		}
		if IsComplete(o) {
			c.Completed++
		}
	}
	return c
}

// Apply filters and sorts the list newest first. The input is left untouched.
func Apply(list []domain.PurchaseOrder, q Query) []domain.PurchaseOrder {
	term := strings.TrimSpace(q.Search)
	out := make([]domain.PurchaseOrder, 0, len(list))
	for _, o := range list {
		if o.IsArchived && !q.ShowArchived {
			continue
		}
		if term != "" && !containsFold(o.ID, term) && !containsFold(o.Supplier, term) {
			continue
		}
		if !Matches(o, q.Filter, q.Today) {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DateCreated.Equal(out[j].DateCreated) {
			return out[i].ID > out[j].ID
		}
		return out[i].DateCreated.After(out[j].DateCreated)
	})
	return out
}

// Matches applies a single bucket predicate.
func Matches(o domain.PurchaseOrder, f Filter, today time.Time) bool {
	switch f {
	case FilterOpen:
		return IsOpen(o)
	case FilterLate:
		return IsLate(o, today)
	case FilterCompleted:
		return IsComplete(o)
	default:
		return true
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
