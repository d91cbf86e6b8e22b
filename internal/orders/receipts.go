package orders

import "wareflow/internal/domain"

// LinkState describes how an order relates to its goods receipt.
type LinkState int

const (
	// LinkNone means the order references no receipt and none points at it.
	LinkNone LinkState = iota
	// LinkPending means the order references a receipt that is not synced yet.
	LinkPending
	// LinkLinked means a receipt with a matching poId exists.
	LinkLinked
)

func (s LinkState) String() string {
	switch s {
	case LinkPending:
		return "pending"
	case LinkLinked:
		return "linked"
	default:
		return "none"
	}
}

// ReceiptLink is the resolved association between an order and its receipt.
// Receipt is only meaningful when State is LinkLinked.
type ReceiptLink struct {
	State   LinkState
	Receipt domain.ReceiptMaster
}

// Linked returns the receipt when one was found.
func (l ReceiptLink) Linked() (domain.ReceiptMaster, bool) {
	if l.State != LinkLinked {
		return domain.ReceiptMaster{}, false
	}
	return l.Receipt, true
}

// ReceiptIndex resolves receipts by the order they belong to.
type ReceiptIndex struct {
	byPO map[string]domain.ReceiptMaster
}

// NewReceiptIndex indexes receipts by poId. When several receipts name the
// same order the first one wins.
func NewReceiptIndex(receipts []domain.ReceiptMaster) ReceiptIndex {
	byPO := make(map[string]domain.ReceiptMaster, len(receipts))
	for _, r := range receipts {
		if r.POID == "" {
			continue
		}
		if _, exists := byPO[r.POID]; exists {
			continue
		}
		byPO[r.POID] = r
	}
	return ReceiptIndex{byPO: byPO}
}

// Lookup returns the receipt booked against poID.
func (ix ReceiptIndex) Lookup(poID string) (domain.ReceiptMaster, bool) {
	r, ok := ix.byPO[poID]
	return r, ok
}

// Resolve links an order to its receipt. A linked id without a matching
// receipt is pending rather than missing.
func (ix ReceiptIndex) Resolve(o domain.PurchaseOrder) ReceiptLink {
	if r, ok := ix.byPO[o.ID]; ok {
		return ReceiptLink{State: LinkLinked, Receipt: r}
	}
	if o.HasLinkedReceipt() {
		return ReceiptLink{State: LinkPending}
	}
	return ReceiptLink{State: LinkNone}
}

// Len returns the number of indexed orders.
func (ix ReceiptIndex) Len() int {
	return len(ix.byPO)
}
