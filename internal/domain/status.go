package domain

import "strings"

// OrderStatus is the stored status of a purchase order. It is a hint only:
// completion, openness and lateness are always derived from quantities and flags.
type OrderStatus string

const (
	OrderStatusUnknown   OrderStatus = ""
	OrderStatusOpen      OrderStatus = "Offen"
	OrderStatusProject   OrderStatus = "Projekt"
	OrderStatusPartial   OrderStatus = "Teilweise geliefert"
	OrderStatusCompleted OrderStatus = "Abgeschlossen"
	OrderStatusCancelled OrderStatus = "Storniert"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusOpen:      {},
	OrderStatusProject:   {},
	OrderStatusPartial:   {},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// Storniert and Abgeschlossen have no outgoing transitions.
var allowedOrderTransitions = map[OrderStatus]map[OrderStatus]struct{}{
	OrderStatusOpen: {
		OrderStatusPartial:   {},
		OrderStatusCompleted: {},
		OrderStatusCancelled: {},
	},
	OrderStatusProject: {
		OrderStatusCompleted: {},
		OrderStatusCancelled: {},
	},
	OrderStatusPartial: {
		OrderStatusCompleted: {},
	},
}

// ParseOrderStatus normalises an incoming status label. Matching ignores case
// and surrounding whitespace; the canonical label is returned.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return OrderStatusUnknown, invalidStatusError("blank")
	}
	for status := range validOrderStatuses {
		if strings.EqualFold(string(status), trimmed) {
			return status, nil
		}
	}
	return OrderStatusUnknown, invalidStatusError(raw)
}

// Validate ensures the status is one of the known labels.
func (s OrderStatus) Validate() error {
	if _, ok := validOrderStatuses[s]; !ok {
		return invalidStatusError(string(s))
	}
	return nil
}

// IsCancelled reports whether the order was cancelled (Storniert).
func (s OrderStatus) IsCancelled() bool {
	return s == OrderStatusCancelled
}

// CanTransitionTo verifies whether a stored status change is allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if s == target {
		return nil
	}
	if transitions, ok := allowedOrderTransitions[s]; ok {
		if _, allowed := transitions[target]; allowed {
			return nil
		}
	}
	return invalidTransitionError(string(s), string(target))
}
