package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// InvalidOperationError reports an order mutation rejected because of the
// order's current status, e.g. cancelling a completed order.
type InvalidOperationError struct {
	Status string
}

func (e InvalidOperationError) Error() string {
	return fmt.Sprintf("cannot cancel order with status: %s", e.Status)
}
