package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cvo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
	vo "github.com/servio-inc/servio/internal/domain/subscription/valueobjects"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func trialSub(t *testing.T) *Subscription {
	t.Helper()
	sub, err := NewTrialSubscription("sub_abc123", 42, cvo.TierGrowth, nil, 14, baseTime)
	require.NoError(t, err)
	return sub
}

func pendingSub(t *testing.T) *Subscription {
	t.Helper()
	sub, err := NewPendingSubscription("sub_def456", 42, cvo.TierGrowth, nil, baseTime)
	require.NoError(t, err)
	return sub
}

func activeSub(t *testing.T) *Subscription {
	t.Helper()
	sub := pendingSub(t)
	require.NoError(t, sub.ActivateWithPayment("txn-001", 63300, cvo.BillingCycleAnnual, baseTime))
	return sub
}

func TestNewTrialSubscription(t *testing.T) {
	sub := trialSub(t)

	assert.Equal(t, vo.StatusTrialing, sub.Status())
	assert.Equal(t, baseTime.AddDate(0, 0, 14), sub.EndDate())
	assert.Equal(t, 1, sub.Version())
}

func TestNewTrialSubscription_Invalid(t *testing.T) {
	_, err := NewTrialSubscription("sub_abc123", 42, cvo.TierGrowth, nil, 0, baseTime)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = NewTrialSubscription("sub_abc123", 0, cvo.TierGrowth, nil, 14, baseTime)
	assert.Error(t, err)

	_, err = NewTrialSubscription("sub_abc123", 42, cvo.PlanTier("platinum"), nil, 14, baseTime)
	assert.ErrorIs(t, err, cvo.ErrInvalidPlanTier)
}

func TestNewPendingSubscription(t *testing.T) {
	sub := pendingSub(t)

	assert.Equal(t, vo.StatusPendingPayment, sub.Status())
	assert.True(t, sub.EndDate().IsZero())
}

func TestActivateWithPayment_FromPending(t *testing.T) {
	sub := pendingSub(t)

	err := sub.ActivateWithPayment("txn-001", 63300, cvo.BillingCycleAnnual, baseTime)

	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Equal(t, cvo.BillingCycleAnnual, sub.Cycle())
	assert.Equal(t, int64(63300), sub.AmountPaid())
	assert.Equal(t, "txn-001", sub.LastReference())
	assert.Equal(t, baseTime.AddDate(0, 0, 365), sub.EndDate())
	assert.Equal(t, 2, sub.Version())
}

func TestActivateWithPayment_FromTrial(t *testing.T) {
	sub := trialSub(t)

	err := sub.ActivateWithPayment("txn-002", 7200, cvo.BillingCycleMonthly, baseTime.AddDate(0, 0, 7))

	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
}

func TestActivateWithPayment_RenewalExtendsFromNow(t *testing.T) {
	sub := activeSub(t)
	// renew well before the old end date
	renewAt := baseTime.AddDate(0, 0, 100)

	err := sub.ActivateWithPayment("txn-002", 13500, cvo.BillingCycleQuarterly, renewAt)

	require.NoError(t, err)
	// the new end date anchors on the renewal instant, not on the old expiry
	assert.Equal(t, renewAt.AddDate(0, 0, 90), sub.EndDate())
	assert.Equal(t, cvo.BillingCycleQuarterly, sub.Cycle())
}

func TestActivateWithPayment_CancelledIsTerminal(t *testing.T) {
	sub := activeSub(t)
	require.NoError(t, sub.Cancel("fraud", baseTime.AddDate(0, 0, 1)))

	err := sub.ActivateWithPayment("txn-003", 5000, cvo.BillingCycleMonthly, baseTime.AddDate(0, 0, 2))

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Equal(t, vo.StatusCancelled, sub.Status())
}

func TestActivateWithPayment_Validation(t *testing.T) {
	sub := pendingSub(t)

	assert.ErrorIs(t, sub.ActivateWithPayment("", 5000, cvo.BillingCycleMonthly, baseTime), ErrReferenceRequired)
	assert.ErrorIs(t, sub.ActivateWithPayment("txn-001", -1, cvo.BillingCycleMonthly, baseTime), ErrInvalidAmount)
	assert.ErrorIs(t, sub.ActivateWithPayment("txn-001", 5000, cvo.BillingCycle("weekly"), baseTime), cvo.ErrInvalidBillingCycle)
	assert.Equal(t, vo.StatusPendingPayment, sub.Status(), "failed activation must not mutate state")
}

func TestActivateForDays(t *testing.T) {
	sub := activeSub(t)

	err := sub.ActivateForDays("manual-001", 10000, 45, baseTime.AddDate(0, 0, 10))

	require.NoError(t, err)
	assert.Equal(t, baseTime.AddDate(0, 0, 55), sub.EndDate())
	assert.Equal(t, int64(10000), sub.AmountPaid())
}

func TestActivateForDays_Invalid(t *testing.T) {
	sub := activeSub(t)

	assert.ErrorIs(t, sub.ActivateForDays("manual-001", 10000, 0, baseTime), ErrInvalidDuration)
	assert.ErrorIs(t, sub.ActivateForDays("", 10000, 30, baseTime), ErrReferenceRequired)
}

func TestCancel(t *testing.T) {
	sub := activeSub(t)
	cancelAt := baseTime.AddDate(0, 0, 3)

	require.NoError(t, sub.Cancel("account closed", cancelAt))

	assert.Equal(t, vo.StatusCancelled, sub.Status())
	require.NotNil(t, sub.CancelledAt())
	assert.Equal(t, cancelAt, *sub.CancelledAt())
	require.NotNil(t, sub.CancelReason())
	assert.Equal(t, "account closed", *sub.CancelReason())

	// cancelling again is a no-op
	version := sub.Version()
	require.NoError(t, sub.Cancel("again", cancelAt))
	assert.Equal(t, version, sub.Version())
}

func TestCancel_RequiresReason(t *testing.T) {
	sub := activeSub(t)
	assert.Error(t, sub.Cancel("", baseTime))
}

func TestEffectiveStatus_LazyDegradation(t *testing.T) {
	sub := activeSub(t)
	end := sub.EndDate()
	graceDays := 3

	tests := []struct {
		name string
		now  time.Time
		want vo.SubscriptionStatus
	}{
		{"before end", end.Add(-time.Hour), vo.StatusActive},
		{"at end", end, vo.StatusActive},
		{"inside grace", end.AddDate(0, 0, 2), vo.StatusGracePeriod},
		{"grace boundary", end.AddDate(0, 0, graceDays), vo.StatusGracePeriod},
		{"past grace", end.AddDate(0, 0, graceDays).Add(time.Second), vo.StatusExpired},
		{"long past", end.AddDate(1, 0, 0), vo.StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sub.EffectiveStatus(tt.now, graceDays))
			// evaluation never mutates the stored status
			assert.Equal(t, vo.StatusActive, sub.Status())
		})
	}
}

func TestEffectiveStatus_TrialDegrades(t *testing.T) {
	sub := trialSub(t)
	end := sub.EndDate()

	assert.Equal(t, vo.StatusTrialing, sub.EffectiveStatus(end.Add(-time.Hour), 3))
	assert.Equal(t, vo.StatusGracePeriod, sub.EffectiveStatus(end.AddDate(0, 0, 1), 3))
	assert.Equal(t, vo.StatusExpired, sub.EffectiveStatus(end.AddDate(0, 0, 4), 3))
}

func TestEffectiveStatus_TerminalAndPendingUnaffected(t *testing.T) {
	pending := pendingSub(t)
	assert.Equal(t, vo.StatusPendingPayment, pending.EffectiveStatus(baseTime.AddDate(1, 0, 0), 3))

	cancelled := activeSub(t)
	require.NoError(t, cancelled.Cancel("closed", baseTime))
	assert.Equal(t, vo.StatusCancelled, cancelled.EffectiveStatus(baseTime.AddDate(1, 0, 0), 3))
}

func TestIsEntitled(t *testing.T) {
	sub := activeSub(t)
	end := sub.EndDate()

	assert.True(t, sub.IsEntitled(end.Add(-time.Hour), 3))
	assert.True(t, sub.IsEntitled(end.AddDate(0, 0, 2), 3), "grace period keeps entitlements")
	assert.False(t, sub.IsEntitled(end.AddDate(0, 0, 10), 3))
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, vo.StatusPendingPayment.CanTransitionTo(vo.StatusActive))
	assert.True(t, vo.StatusTrialing.CanTransitionTo(vo.StatusActive))
	assert.True(t, vo.StatusGracePeriod.CanTransitionTo(vo.StatusActive))
	assert.True(t, vo.StatusExpired.CanTransitionTo(vo.StatusActive))
	assert.False(t, vo.StatusCancelled.CanTransitionTo(vo.StatusActive))
	assert.False(t, vo.StatusCancelled.CanTransitionTo(vo.StatusExpired))
	assert.True(t, vo.StatusCancelled.IsTerminal())
}
