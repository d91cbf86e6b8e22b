package domain

import (
	"testing"

	appErrors "wareflow/internal/errors"
)

func TestOrderStatusValidate(t *testing.T) {
	valid := []OrderStatus{OrderStatusOpen, OrderStatusProject, OrderStatusPartial, OrderStatusCompleted, OrderStatusCancelled}
	for _, status := range valid {
		if err := status.Validate(); err != nil {
			t.Errorf("expected %q to be valid, got error: %v", status, err)
		}
	}

	invalid := []OrderStatus{OrderStatusUnknown, OrderStatus("Geliefert"), OrderStatus("offen")}
	for _, status := range invalid {
		if err := status.Validate(); err == nil {
			t.Errorf("expected %q to be invalid", status)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	cases := map[string]OrderStatus{
		"Offen":               OrderStatusOpen,
		" projekt ":           OrderStatusProject,
		"teilweise geliefert": OrderStatusPartial,
		"ABGESCHLOSSEN":       OrderStatusCompleted,
		"Storniert":           OrderStatusCancelled,
	}
	for raw, expected := range cases {
		got, err := ParseOrderStatus(raw)
		if err != nil {
			t.Fatalf("ParseOrderStatus(%q) returned error: %v", raw, err)
		}
		if got != expected {
			t.Fatalf("ParseOrderStatus(%q) = %q, want %q", raw, got, expected)
		}
	}

	for _, raw := range []string{"", "  ", "pending"} {
		_, err := ParseOrderStatus(raw)
		if err == nil {
			t.Fatalf("expected ParseOrderStatus(%q) to return error", raw)
		}
		if !appErrors.IsCode(err, appErrors.CodeInvalidStatus) {
			t.Fatalf("expected invalid_status code, got %v", appErrors.CodeOf(err))
		}
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusOpen, OrderStatusPartial, true},
		{OrderStatusOpen, OrderStatusCompleted, true},
		{OrderStatusOpen, OrderStatusCancelled, true},
		{OrderStatusProject, OrderStatusCancelled, true},
		{OrderStatusProject, OrderStatusPartial, false},
		{OrderStatusPartial, OrderStatusCompleted, true},
		{OrderStatusPartial, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusOpen, false},
		{OrderStatusCancelled, OrderStatusOpen, false},
		{OrderStatusCancelled, OrderStatusCancelled, true},
	}
	for _, tt := range tests {
		err := tt.from.CanTransitionTo(tt.to)
		if tt.allowed && err != nil {
			t.Errorf("%s -> %s should be allowed, got %v", tt.from, tt.to, err)
		}
		if !tt.allowed {
			if err == nil {
				t.Errorf("%s -> %s should be rejected", tt.from, tt.to)
			} else if !appErrors.IsCode(err, appErrors.CodeInvalidTransition) {
				t.Errorf("%s -> %s: expected invalid_transition, got %v", tt.from, tt.to, appErrors.CodeOf(err))
			}
		}
	}
}
