package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOfWalksWrappedChain(t *testing.T) {
	base := New(CodeInvalidQuantity, "quantity must be positive", nil)
	wrapped := fmt.Errorf("adjust stock: %w", base)

	if got := CodeOf(wrapped); got != CodeInvalidQuantity {
		t.Fatalf("expected %s, got %s", CodeInvalidQuantity, got)
	}
	if !IsCode(wrapped, CodeInvalidQuantity) {
		t.Fatal("expected IsCode to match wrapped code")
	}
	if IsCode(wrapped, CodeNotFound) {
		t.Fatal("did not expect IsCode to match a different code")
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if got := CodeOf(errors.New("boom")); got != CodeUnknown {
		t.Fatalf("expected unknown code, got %s", got)
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("disk full")
	tests := []struct {
		name string
		err  Error
		want string
	}{
		{name: "message only", err: New(CodeNotFound, "order not found", nil), want: "order not found"},
		{name: "message and cause", err: New(CodeStoreFailed, "save order", cause), want: "save order: disk full"},
		{name: "cause only", err: New(CodeStoreFailed, "", cause), want: "disk full"},
		{name: "code only", err: New(CodeActionNotAllowed, "", nil), want: "action_not_allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
	if !errors.Is(New(CodeStoreFailed, "save", cause), cause) {
		t.Fatal("expected Unwrap to expose the cause")
	}
}
