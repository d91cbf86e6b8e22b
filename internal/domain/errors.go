package domain

import (
	"fmt"

	appErrors "wareflow/internal/errors"
)

func invalidStatusError(status string) error {
	return appErrors.New(appErrors.CodeInvalidStatus, fmt.Sprintf("invalid status: %s", status), nil)
}

func invalidPriorityError(priority string) error {
	return appErrors.New(appErrors.CodeInvalidPriority, fmt.Sprintf("invalid priority: %s", priority), nil)
}

func invalidTransitionError(from, to string) error {
	return appErrors.New(appErrors.CodeInvalidTransition, fmt.Sprintf("cannot transition from %s to %s", from, to), nil)
}

func invalidOrderError(reason string) error {
	return appErrors.New(appErrors.CodeInvalidOrderData, reason, nil)
}

func invalidItemError(reason string) error {
	return appErrors.New(appErrors.CodeInvalidItemData, reason, nil)
}
