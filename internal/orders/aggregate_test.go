package orders

import (
	"reflect"
	"testing"
	"time"

	"wareflow/internal/domain"
)

func sampleOrders() []domain.PurchaseOrder {
	day := func(offset int) time.Time { return today.AddDate(0, 0, offset) }

	lateOpen := order("PO-1001", domain.OrderStatusOpen, [2]int{10, 0})
	lateOpen.Supplier = "Würth"
	lateOpen.DateCreated = day(-20)
	lateOpen.ExpectedDeliveryDate = day(-2)

	partial := order("PO-1002", domain.OrderStatusPartial, [2]int{10, 4})
	partial.Supplier = "Hilti"
	partial.DateCreated = day(-10)
	partial.ExpectedDeliveryDate = day(3)

	done := order("PO-1003", domain.OrderStatusCompleted, [2]int{5, 5})
	done.Supplier = "Würth"
	done.DateCreated = day(-5)
	done.ExpectedDeliveryDate = day(-8)

	archived := order("PO-1004", domain.OrderStatusOpen, [2]int{5, 0})
	archived.Supplier = "Bosch"
	archived.IsArchived = true
	archived.DateCreated = day(-1)
	archived.ExpectedDeliveryDate = day(-1)

	cancelled := order("PO-1005", domain.OrderStatusCancelled, [2]int{5, 0})
	cancelled.Supplier = "Bosch"
	cancelled.DateCreated = day(-3)

	return []domain.PurchaseOrder{lateOpen, partial, done, archived, cancelled}
}

func ids(list []domain.PurchaseOrder) []string {
	out := make([]string, len(list))
	for i, o := range list {
		out[i] = o.ID
	}
	return out
}

func TestCount(t *testing.T) {
	list := sampleOrders()

	got := Count(list, Query{Today: today})
	want := Counts{All: 4, Open: 2, Late: 1, Completed: 1}
	if got != want {
		t.Fatalf("Count = %+v, want %+v", got, want)
	}

	withArchived := Count(list, Query{Today: today, ShowArchived: true})
	want = Counts{All: 5, Open: 3, Late: 2, Completed: 1}
	if withArchived != want {
		t.Fatalf("Count with archived = %+v, want %+v", withArchived, want)
	}
	if withArchived.For(FilterLate) != 2 || withArchived.For(FilterAll) != 5 {
		t.Fatal("Counts.For returned the wrong bucket")
	}

	searched := Count(list, Query{Today: today, Search: "hilti"})
	if searched.All != 4 {
		t.Fatalf("search must not narrow counts, got %+v", searched)
	}
}

func TestApply(t *testing.T) {
	list := sampleOrders()
	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"all newest first", Query{Filter: FilterAll}, []string{"PO-1005", "PO-1003", "PO-1002", "PO-1001"}},
		{"open", Query{Filter: FilterOpen}, []string{"PO-1002", "PO-1001"}},
		{"late", Query{Filter: FilterLate}, []string{"PO-1001"}},
		{"completed", Query{Filter: FilterCompleted}, []string{"PO-1003"}},
		{"supplier search", Query{Filter: FilterAll, Search: "WÜRTH"}, []string{"PO-1003", "PO-1001"}},
		{"id search", Query{Filter: FilterAll, Search: "1002"}, []string{"PO-1002"}},
		{"search and bucket", Query{Filter: FilterOpen, Search: "würth"}, []string{"PO-1001"}},
		{"archived shown", Query{Filter: FilterLate, ShowArchived: true}, []string{"PO-1004", "PO-1001"}},
		{"no match", Query{Filter: FilterAll, Search: "nobody"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.q.Today = today
			got := ids(Apply(list, tt.q))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Apply = %v, want %v", got, tt.want)
			}
		})
	}

	if list[0].ID != "PO-1001" {
		t.Fatal("Apply must not reorder its input")
	}
}

func TestApplyTiesSortByIDDescending(t *testing.T) {
	created := today.AddDate(0, 0, -1)
	a := order("PO-A", domain.OrderStatusOpen, [2]int{1, 0})
	b := order("PO-B", domain.OrderStatusOpen, [2]int{1, 0})
	a.DateCreated, b.DateCreated = created, created
	got := ids(Apply([]domain.PurchaseOrder{a, b}, Query{Today: today}))
	if !reflect.DeepEqual(got, []string{"PO-B", "PO-A"}) {
		t.Fatalf("unexpected tie order %v", got)
	}
}

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"open":      FilterOpen,
		" LATE ":    FilterLate,
		"completed": FilterCompleted,
		"":          FilterAll,
		"weird":     FilterAll,
	}
	for raw, want := range cases {
		if got := ParseFilter(raw); got != want {
			t.Fatalf("ParseFilter(%q) = %s, want %s", raw, got, want)
		}
	}
	if FilterLate.Label() != "Verspätet" || FilterAll.Label() != "Alle" {
		t.Fatal("unexpected filter labels")
	}
}
