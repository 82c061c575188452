package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrSubscriptionNotFound    = errors.New("subscription not found")
	ErrSubscriptionCancelled   = errors.New("subscription cancelled")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrReferenceRequired       = errors.New("transaction reference is required")
	ErrReferenceConsumed       = errors.New("transaction reference already consumed")
	ErrInvalidAmount           = errors.New("payment amount must not be negative")
	ErrInvalidDuration         = errors.New("duration must be positive")
	ErrGrantNotFound           = errors.New("module grant not found")
	ErrPaymentNotFound         = errors.New("payment record not found")
)

func ErrInvalidTransition(from, to string) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}
