package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionStatus_IsEntitled(t *testing.T) {
	tests := []struct {
		status   SubscriptionStatus
		entitled bool
	}{
		{StatusActive, true},
		{StatusTrialing, true},
		{StatusGracePeriod, true},
		{StatusPendingPayment, false},
		{StatusExpired, false},
		{StatusCancelled, false},
		{StatusNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.entitled, tt.status.IsEntitled())
		})
	}
}

func TestSubscriptionStatus_CanTransitionTo(t *testing.T) {
	t.Run("cancelled is terminal", func(t *testing.T) {
		assert.True(t, StatusCancelled.IsTerminal())
		for status := range ValidStatuses {
			assert.False(t, StatusCancelled.CanTransitionTo(status), "cancelled -> %s", status)
		}
	})

	t.Run("expired can reactivate on payment", func(t *testing.T) {
		assert.True(t, StatusExpired.CanTransitionTo(StatusActive))
		assert.False(t, StatusExpired.CanTransitionTo(StatusTrialing))
	})

	t.Run("unknown status transitions nowhere", func(t *testing.T) {
		assert.False(t, SubscriptionStatus("suspended").CanTransitionTo(StatusActive))
	})
}
