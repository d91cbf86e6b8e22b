package orders

import (
	"reflect"
	"testing"

	"wareflow/internal/domain"
)

func TestPrimaryBadgesProjectDone(t *testing.T) {
	o := order("PO-100", domain.OrderStatusProject, [2]int{10, 10})
	got := Labels(PrimaryBadges(o, ReceiptLink{}))
	want := []string{"Projekt", "Erledigt"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("badges = %v, want %v", got, want)
	}
}

func TestPrimaryBadgesIdentity(t *testing.T) {
	byID := order("PO-Projekt-7", domain.OrderStatusOpen, [2]int{1, 0})
	if got := PrimaryBadges(byID, ReceiptLink{})[0].Label; got != LabelProject {
		t.Fatalf("id containing projekt should yield Projekt, got %s", got)
	}
	stock := order("PO-8", domain.OrderStatusOpen, [2]int{1, 0})
	if got := PrimaryBadges(stock, ReceiptLink{})[0].Label; got != LabelStock {
		t.Fatalf("plain order should yield Lager, got %s", got)
	}
}

func TestPrimaryBadgesLifecycle(t *testing.T) {
	archived := order("PO-1", domain.OrderStatusCancelled, [2]int{5, 0})
	archived.IsArchived = true
	forced := order("PO-3", domain.OrderStatusOpen, [2]int{5, 2})
	forced.IsForceClosed = true
	forcedEmpty := order("PO-9", domain.OrderStatusOpen)
	forcedEmpty.IsForceClosed = true

	tests := []struct {
		name string
		o    domain.PurchaseOrder
		want []string
	}{
		{"archived beats cancelled", archived, []string{"Lager", "Archiviert"}},
		{"cancelled", order("PO-2", domain.OrderStatusCancelled, [2]int{5, 0}), []string{"Lager", "STORNIERT"}},
		{"force closed", forced, []string{"Lager", "Erledigt"}},
		{"open", order("PO-4", domain.OrderStatusOpen, [2]int{5, 0}), []string{"Lager", "Offen"}},
		{"partial", order("PO-5", domain.OrderStatusOpen, [2]int{5, 2}), []string{"Lager", "Teillieferung"}},
		{"done", order("PO-6", domain.OrderStatusOpen, [2]int{5, 5}), []string{"Lager", "Erledigt"}},
		{"overage", order("PO-7", domain.OrderStatusOpen, [2]int{5, 8}), []string{"Lager", "Übermenge"}},
		{"nothing ordered", order("PO-8", domain.OrderStatusOpen), []string{"Lager"}},
		{"nothing ordered but force closed", forcedEmpty, []string{"Lager", "Erledigt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Labels(PrimaryBadges(tt.o, ReceiptLink{}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("badges = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrimaryBadgesReceiptProcess(t *testing.T) {
	o := order("PO-1", domain.OrderStatusOpen, [2]int{5, 2})
	tests := []struct {
		status string
		want   []string
	}{
		{domain.ReceiptStatusChecking, []string{"Lager", "Teillieferung", "In Prüfung"}},
		{domain.ReceiptStatusAwaitingCheck, []string{"Lager", "Teillieferung", "In Prüfung"}},
		{domain.ReceiptStatusDamage, []string{"Lager", "Teillieferung", "Schaden"}},
		{domain.ReceiptStatusDamaged, []string{"Lager", "Teillieferung", "Schaden"}},
		{domain.ReceiptStatusBooked, []string{"Lager", "Teillieferung"}},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			link := ReceiptLink{State: LinkLinked, Receipt: domain.ReceiptMaster{ID: "R-1", POID: "PO-1", Status: tt.status}}
			got := Labels(PrimaryBadges(o, link))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("badges = %v, want %v", got, tt.want)
			}
		})
	}

	pending := ReceiptLink{State: LinkPending}
	if got := Labels(PrimaryBadges(o, pending)); len(got) != 2 {
		t.Fatalf("pending link should not add a process badge, got %v", got)
	}
}

func TestDiagnosticBadges(t *testing.T) {
	full := order("PO-1", domain.OrderStatusCompleted, [2]int{5, 5}, [2]int{3, 3})
	partialStored := order("PO-2", domain.OrderStatusPartial, [2]int{5, 2})
	openStored := order("PO-3", domain.OrderStatusOpen, [2]int{5, 0})
	overLines := domain.ReceiptMaster{ID: "R-1", Status: domain.ReceiptStatusBooked, Deliveries: []domain.Delivery{
		{Items: []domain.DeliveryLine{{SKU: "SKU-A", Received: 6, ZuViel: 1}}},
	}}
	damagedLines := domain.ReceiptMaster{ID: "R-2", Status: domain.ReceiptStatusDamage, Deliveries: []domain.Delivery{
		{Items: []domain.DeliveryLine{{SKU: "SKU-A", Received: 2, DamageFlag: true}}},
	}}

	tests := []struct {
		name string
		o    domain.PurchaseOrder
		link ReceiptLink
		want []string
	}{
		{"overage lines with everything received", full, ReceiptLink{State: LinkLinked, Receipt: overLines}, []string{"Lager", "Erledigt", "Übermenge"}},
		{"overage lines with shortfall", partialStored, ReceiptLink{State: LinkLinked, Receipt: overLines}, []string{"Lager", "Teillieferung"}},
		{"damage from status and lines once", partialStored, ReceiptLink{State: LinkLinked, Receipt: damagedLines}, []string{"Lager", "Teillieferung", "Schaden"}},
		{"pending and unprocessed", openStored, ReceiptLink{State: LinkPending}, []string{"Lager", "Offen", "In Prüfung"}},
		{"pending but processed", partialStored, ReceiptLink{State: LinkPending}, []string{"Lager", "Teillieferung"}},
		{"no link", openStored, ReceiptLink{}, []string{"Lager", "Offen"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Labels(DiagnosticBadges(tt.o, tt.link))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("badges = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiagnosticSharesIdentityAndLifecycle(t *testing.T) {
	samples := []domain.PurchaseOrder{
		order("PO-100", domain.OrderStatusProject, [2]int{10, 10}),
		order("PO-101", domain.OrderStatusOpen, [2]int{10, 0}),
		order("PO-102", domain.OrderStatusOpen, [2]int{10, 4}),
		order("PO-103", domain.OrderStatusCancelled, [2]int{10, 0}),
		order("PO-104", domain.OrderStatusOpen),
	}
	for _, o := range samples {
		primary := PrimaryBadges(o, ReceiptLink{})
		diagnostic := DiagnosticBadges(o, ReceiptLink{})
		if !reflect.DeepEqual(primary, diagnostic) {
			t.Fatalf("%s: primary %v and diagnostic %v disagree without a receipt", o.ID, Labels(primary), Labels(diagnostic))
		}
	}
}

func TestReceiptIndexResolve(t *testing.T) {
	receipts := []domain.ReceiptMaster{
		{ID: "R-1", POID: "PO-1", Status: domain.ReceiptStatusChecking},
		{ID: "R-dup", POID: "PO-1", Status: domain.ReceiptStatusDamage},
		{ID: "R-2", POID: "PO-2"},
		{ID: "R-orphan"},
	}
	ix := NewReceiptIndex(receipts)
	if ix.Len() != 2 {
		t.Fatalf("expected 2 indexed orders, got %d", ix.Len())
	}

	linked := ix.Resolve(domain.PurchaseOrder{ID: "PO-1", LinkedReceiptID: "R-1"})
	r, ok := linked.Linked()
	if linked.State != LinkLinked || !ok || r.ID != "R-1" {
		t.Fatalf("expected first receipt to win, got %+v", linked)
	}

	unreferenced := ix.Resolve(domain.PurchaseOrder{ID: "PO-2"})
	if unreferenced.State != LinkLinked {
		t.Fatalf("receipt found by poId should link even without linked id, got %s", unreferenced.State)
	}

	pending := ix.Resolve(domain.PurchaseOrder{ID: "PO-3", LinkedReceiptID: "R-3"})
	if pending.State != LinkPending {
		t.Fatalf("expected pending, got %s", pending.State)
	}
	if _, ok := pending.Linked(); ok {
		t.Fatal("pending link must not expose a receipt")
	}

	none := ix.Resolve(domain.PurchaseOrder{ID: "PO-4"})
	if none.State != LinkNone || none.State.String() != "none" {
		t.Fatalf("expected none, got %s", none.State)
	}
	if LinkPending.String() != "pending" || LinkLinked.String() != "linked" {
		t.Fatal("unexpected link state names")
	}
}
